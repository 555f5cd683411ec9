package ingest

import (
	"strconv"

	"github.com/ALT-F4-LLC/hours/internal/model"
)

// Index holds the keyed entity tables of one export. Time logs and label
// links are not keyed; they stay in source order.
type Index struct {
	Users         map[int]model.User
	Namespaces    map[int]model.Namespace
	Projects      map[int]model.Project
	Issues        map[int]model.Issue
	MergeRequests map[int]model.MergeRequest
	Labels        map[int]model.Label

	TimeLogs   []model.TimeLog
	LabelLinks []model.LabelLink
}

// BuildIndex keys every entity table by primary id. A repeated id within one
// table is reported as a malformed row.
func BuildIndex(exp *Export) (*Index, error) {
	idx := &Index{
		TimeLogs:   exp.TimeLogs,
		LabelLinks: exp.LabelLinks,
	}
	var err error
	if idx.Users, err = keyBy(TableUsers, exp.Users, func(u model.User) int { return u.ID }); err != nil {
		return nil, err
	}
	if idx.Namespaces, err = keyBy(TableNamespaces, exp.Namespaces, func(n model.Namespace) int { return n.ID }); err != nil {
		return nil, err
	}
	if idx.Projects, err = keyBy(TableProjects, exp.Projects, func(p model.Project) int { return p.ID }); err != nil {
		return nil, err
	}
	if idx.Issues, err = keyBy(TableIssues, exp.Issues, func(i model.Issue) int { return i.ID }); err != nil {
		return nil, err
	}
	if idx.MergeRequests, err = keyBy(TableMergeRequests, exp.MergeRequests, func(m model.MergeRequest) int { return m.ID }); err != nil {
		return nil, err
	}
	if idx.Labels, err = keyBy(TableLabels, exp.Labels, func(l model.Label) int { return l.ID }); err != nil {
		return nil, err
	}
	return idx, nil
}

func keyBy[T any](table string, items []T, id func(T) int) (map[int]T, error) {
	m := make(map[int]T, len(items))
	for i, item := range items {
		k := id(item)
		if _, dup := m[k]; dup {
			return nil, &MalformedRowError{
				Table:  table,
				Row:    i + 1,
				Field:  "id",
				Value:  strconv.Itoa(k),
				Reason: "duplicate id",
			}
		}
		m[k] = item
	}
	return m, nil
}

// Counts reports the number of rows per table.
func (idx *Index) Counts() map[string]int {
	return map[string]int{
		TableTimeLogs:      len(idx.TimeLogs),
		TableNamespaces:    len(idx.Namespaces),
		TableLabels:        len(idx.Labels),
		TableUsers:         len(idx.Users),
		TableProjects:      len(idx.Projects),
		TableIssues:        len(idx.Issues),
		TableMergeRequests: len(idx.MergeRequests),
		TableLabelLinks:    len(idx.LabelLinks),
	}
}
