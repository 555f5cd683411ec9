package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ALT-F4-LLC/hours/internal/model"
)

const (
	// UnknownProduct is the product of an entry whose issue carries no
	// product-bearing label.
	UnknownProduct = "neznámý"

	// NoLabels is the LABEL dimension value of an entry without labels.
	NoLabels = "bez štítku"

	// SyntheticIssueTitle names the stand-in issue of entries logged against
	// a merge request only.
	SyntheticIssueTitle = "MergeRequest"
)

// IssueRef is the issue an entry resolves to: either a real issue or the
// synthetic stand-in used when the entry has no issue_id.
type IssueRef struct {
	issue          model.Issue
	mergeRequestID *int
	synthetic      bool
}

// Synthetic reports whether the entry had no issue_id.
func (r IssueRef) Synthetic() bool { return r.synthetic }

// Issue returns the resolved issue; ok is false for the synthetic issue.
func (r IssueRef) Issue() (model.Issue, bool) { return r.issue, !r.synthetic }

// Title is the issue title, or SyntheticIssueTitle.
func (r IssueRef) Title() string {
	if r.synthetic {
		return SyntheticIssueTitle
	}
	return r.issue.Title
}

// Cell formats the reference as "[<id>] <title>". The synthetic issue has no
// id of its own and shows the merge request id as "[!<id>]".
func (r IssueRef) Cell() string {
	if !r.synthetic {
		return fmt.Sprintf("[%d] %s", r.issue.ID, r.issue.Title)
	}
	id := "-"
	if r.mergeRequestID != nil {
		id = "!" + strconv.Itoa(*r.mergeRequestID)
	}
	return fmt.Sprintf("[%s] %s", id, SyntheticIssueTitle)
}

func timeLogRef(tl model.TimeLog) string {
	return fmt.Sprintf("time log %d", tl.ID)
}

// ResolveIssue returns the entry's issue when issue_id is set, otherwise the
// synthetic issue.
func (s *Snapshot) ResolveIssue(tl model.TimeLog) (IssueRef, error) {
	if tl.IssueID == nil {
		return IssueRef{mergeRequestID: tl.MergeRequestID, synthetic: true}, nil
	}
	issue, ok := s.idx.Issues[*tl.IssueID]
	if !ok {
		return IssueRef{}, &UnresolvedError{Kind: KindIssue, ID: *tl.IssueID, Ref: timeLogRef(tl)}
	}
	return IssueRef{issue: issue, mergeRequestID: tl.MergeRequestID}, nil
}

// ResolveProject prefers merge_request_id: when it is set the project is the
// merge request's target project, otherwise the resolved issue's project.
// An entry setting both ids can therefore resolve its issue and its project
// through different records.
func (s *Snapshot) ResolveProject(tl model.TimeLog) (model.Project, error) {
	var projectID int
	if tl.MergeRequestID != nil {
		mr, ok := s.idx.MergeRequests[*tl.MergeRequestID]
		if !ok {
			return model.Project{}, &UnresolvedError{Kind: KindMergeRequest, ID: *tl.MergeRequestID, Ref: timeLogRef(tl)}
		}
		projectID = mr.TargetProjectID
	} else {
		ref, err := s.ResolveIssue(tl)
		if err != nil {
			return model.Project{}, err
		}
		issue, ok := ref.Issue()
		if !ok {
			return model.Project{}, &UnresolvedError{
				Kind: KindProject,
				Ref:  timeLogRef(tl) + " without issue or merge request",
			}
		}
		projectID = issue.ProjectID
	}

	project, ok := s.idx.Projects[projectID]
	if !ok {
		return model.Project{}, &UnresolvedError{Kind: KindProject, ID: projectID, Ref: timeLogRef(tl)}
	}
	return project, nil
}

// ResolveNamespace returns the namespace of the entry's project.
func (s *Snapshot) ResolveNamespace(tl model.TimeLog) (model.Namespace, error) {
	project, err := s.ResolveProject(tl)
	if err != nil {
		return model.Namespace{}, err
	}
	ns, ok := s.idx.Namespaces[project.NamespaceID]
	if !ok {
		return model.Namespace{}, &UnresolvedError{
			Kind: KindNamespace,
			ID:   project.NamespaceID,
			Ref:  fmt.Sprintf("project %d", project.ID),
		}
	}
	return ns, nil
}

// ResolveProduct returns the product attached to the entry's issue, or
// UnknownProduct. The synthetic issue never carries a product.
func (s *Snapshot) ResolveProduct(tl model.TimeLog) (string, error) {
	ref, err := s.ResolveIssue(tl)
	if err != nil {
		return "", err
	}
	if issue, ok := ref.Issue(); ok {
		if p, ok := s.issueProducts[issue.ID]; ok {
			return p, nil
		}
	}
	return UnknownProduct, nil
}

// ResolveUser returns the user who logged the entry.
func (s *Snapshot) ResolveUser(tl model.TimeLog) (model.User, error) {
	u, ok := s.idx.Users[tl.UserID]
	if !ok {
		return model.User{}, &UnresolvedError{Kind: KindUser, ID: tl.UserID, Ref: timeLogRef(tl)}
	}
	return u, nil
}

// ResolveLabels returns the sorted label titles of the entry's issue. For the
// synthetic issue the merge request's labels are used instead.
func (s *Snapshot) ResolveLabels(tl model.TimeLog) ([]string, error) {
	ref, err := s.ResolveIssue(tl)
	if err != nil {
		return nil, err
	}
	if issue, ok := ref.Issue(); ok {
		return s.issueLabels[issue.ID], nil
	}
	if tl.MergeRequestID == nil {
		return nil, nil
	}
	if _, ok := s.idx.MergeRequests[*tl.MergeRequestID]; !ok {
		return nil, &UnresolvedError{Kind: KindMergeRequest, ID: *tl.MergeRequestID, Ref: timeLogRef(tl)}
	}
	return s.mrLabels[*tl.MergeRequestID], nil
}

// Label extracts the value of one dimension from an entry.
func (s *Snapshot) Label(tl model.TimeLog, d model.Dimension) (string, error) {
	switch d {
	case model.DimensionNamespace:
		ns, err := s.ResolveNamespace(tl)
		return ns.Name, err
	case model.DimensionProject:
		p, err := s.ResolveProject(tl)
		return p.Name, err
	case model.DimensionIssue:
		ref, err := s.ResolveIssue(tl)
		return ref.Title(), err
	case model.DimensionUser:
		u, err := s.ResolveUser(tl)
		return u.Name, err
	case model.DimensionProduct:
		return s.ResolveProduct(tl)
	case model.DimensionLabel:
		labels, err := s.ResolveLabels(tl)
		if err != nil {
			return "", err
		}
		if len(labels) == 0 {
			return NoLabels, nil
		}
		return strings.Join(labels, ", "), nil
	default:
		return "", model.ValidateDimension(d)
	}
}
