package ingest

import (
	"strings"

	"github.com/ALT-F4-LLC/hours/internal/model"
)

// Table names as they appear in the export archive.
const (
	TableTimeLogs      = "timelogs.csv"
	TableNamespaces    = "namespaces.csv"
	TableLabels        = "labels.csv"
	TableUsers         = "users.csv"
	TableProjects      = "projects.csv"
	TableIssues        = "issues.csv"
	TableMergeRequests = "merge_requests.csv"
	TableLabelLinks    = "label_links.csv"
)

// Tables lists every table an export must contain, in import order.
var Tables = []string{
	TableTimeLogs,
	TableNamespaces,
	TableLabels,
	TableUsers,
	TableProjects,
	TableIssues,
	TableMergeRequests,
	TableLabelLinks,
}

// Export holds every decoded row of one export, in source order.
type Export struct {
	TimeLogs      []model.TimeLog
	Namespaces    []model.Namespace
	Labels        []model.Label
	Users         []model.User
	Projects      []model.Project
	Issues        []model.Issue
	MergeRequests []model.MergeRequest
	LabelLinks    []model.LabelLink
}

// Decode converts tokenized tables into typed records. Every table in Tables
// must be present; the first malformed row aborts the whole decode.
func Decode(tables map[string][]Row) (*Export, error) {
	for _, name := range Tables {
		if _, ok := tables[name]; !ok {
			return nil, &MissingTableError{Table: name}
		}
	}

	var exp Export
	var err error
	if exp.TimeLogs, err = decodeAll(TableTimeLogs, tables[TableTimeLogs], decodeTimeLog); err != nil {
		return nil, err
	}
	if exp.Namespaces, err = decodeAll(TableNamespaces, tables[TableNamespaces], decodeNamespace); err != nil {
		return nil, err
	}
	if exp.Labels, err = decodeAll(TableLabels, tables[TableLabels], decodeLabel); err != nil {
		return nil, err
	}
	if exp.Users, err = decodeAll(TableUsers, tables[TableUsers], decodeUser); err != nil {
		return nil, err
	}
	if exp.Projects, err = decodeAll(TableProjects, tables[TableProjects], decodeProject); err != nil {
		return nil, err
	}
	if exp.Issues, err = decodeAll(TableIssues, tables[TableIssues], decodeIssue); err != nil {
		return nil, err
	}
	if exp.MergeRequests, err = decodeAll(TableMergeRequests, tables[TableMergeRequests], decodeMergeRequest); err != nil {
		return nil, err
	}
	if exp.LabelLinks, err = decodeAll(TableLabelLinks, tables[TableLabelLinks], decodeLabelLink); err != nil {
		return nil, err
	}
	return &exp, nil
}

func decodeAll[T any](table string, rows []Row, decode func(*rowReader) T) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		r := newRowReader(table, i+1, row)
		item := decode(r)
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, item)
	}
	return out, nil
}

func decodeTimeLog(r *rowReader) model.TimeLog {
	return model.TimeLog{
		ID:             r.integer("id"),
		TimeSpent:      r.bigInteger("time_spent"),
		UserID:         r.integer("user_id"),
		CreatedAt:      r.timestamp("created_at"),
		UpdatedAt:      r.optTimestamp("updated_at"),
		IssueID:        r.optInteger("issue_id"),
		MergeRequestID: r.optInteger("merge_request_id"),
	}
}

func decodeNamespace(r *rowReader) model.Namespace {
	return model.Namespace{
		ID:          r.integer("id"),
		Name:        r.str("name"),
		Description: r.str("description"),
	}
}

func decodeLabel(r *rowReader) model.Label {
	return model.Label{
		ID:          r.integer("id"),
		Title:       r.str("title"),
		Color:       r.str("color"),
		Description: r.str("description"),
	}
}

func decodeUser(r *rowReader) model.User {
	return model.User{
		ID:    r.integer("id"),
		Email: r.str("email"),
		Name:  r.str("name"),
	}
}

func decodeProject(r *rowReader) model.Project {
	return model.Project{
		ID:          r.integer("id"),
		Name:        r.str("name"),
		Description: r.str("description"),
		NamespaceID: r.integer("namespace_id"),
	}
}

func decodeIssue(r *rowReader) model.Issue {
	return model.Issue{
		ID:          r.integer("id"),
		AuthorID:    r.optInteger("author_id"),
		ProjectID:   r.integer("project_id"),
		CreatedAt:   r.optTimestamp("created_at"),
		Title:       r.str("title"),
		Description: r.str("description"),
	}
}

func decodeMergeRequest(r *rowReader) model.MergeRequest {
	return model.MergeRequest{
		ID:              r.integer("id"),
		AuthorID:        r.optInteger("author_id"),
		TargetProjectID: r.integer("target_project_id"),
		TargetBranch:    r.str("target_branch"),
		SourceBranch:    r.str("source_branch"),
		CreatedAt:       r.optTimestamp("created_at"),
		Title:           r.str("title"),
	}
}

func decodeLabelLink(r *rowReader) model.LabelLink {
	link := model.LabelLink{
		ID:       r.integer("id"),
		LabelID:  r.integer("label_id"),
		TargetID: r.integer("target_id"),
	}
	raw := r.str("target_type")
	link.TargetType = model.TargetType(strings.TrimSpace(raw))
	if r.err == nil {
		if err := model.ValidateTargetType(link.TargetType); err != nil {
			r.fail("target_type", raw, "unknown target type", err)
		}
	}
	return link
}
