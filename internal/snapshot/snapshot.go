// Package snapshot holds one fully resolved import and publishes it to
// concurrent readers.
package snapshot

import (
	"sort"
	"time"

	"github.com/ALT-F4-LLC/hours/internal/ingest"
	"github.com/ALT-F4-LLC/hours/internal/model"
)

// Snapshot is an immutable view of one import: the entity index plus the
// labels and products attached to each issue and merge request. Nothing
// mutates a Snapshot after Build returns; callers must treat returned slices
// as read-only.
type Snapshot struct {
	idx *ingest.Index

	issueLabels   map[int][]string
	mrLabels      map[int][]string
	issueProducts map[int]string
	mrProducts    map[int]string

	source     string
	importedAt time.Time
}

// Build attaches labels and products to the indexed entities. Any dangling
// reference in the label links aborts the build.
func Build(idx *ingest.Index, source string, importedAt time.Time) (*Snapshot, error) {
	s := &Snapshot{
		idx:        idx,
		source:     source,
		importedAt: importedAt.UTC(),
	}
	if err := s.attachLabels(); err != nil {
		return nil, err
	}
	return s, nil
}

// Source is the name of the archive the snapshot was built from.
func (s *Snapshot) Source() string { return s.source }

// ImportedAt is when the snapshot was built.
func (s *Snapshot) ImportedAt() time.Time { return s.importedAt }

// TimeLogs returns every time log in source order.
func (s *Snapshot) TimeLogs() []model.TimeLog { return s.idx.TimeLogs }

// Counts reports the number of rows per export table.
func (s *Snapshot) Counts() map[string]int { return s.idx.Counts() }

// User looks up a user by id.
func (s *Snapshot) User(id int) (model.User, bool) {
	u, ok := s.idx.Users[id]
	return u, ok
}

// Users returns every user ordered by id.
func (s *Snapshot) Users() []model.User {
	users := make([]model.User, 0, len(s.idx.Users))
	for _, u := range s.idx.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// IssueLabels returns the sorted label titles attached to an issue.
func (s *Snapshot) IssueLabels(id int) []string { return s.issueLabels[id] }

// MergeRequestLabels returns the sorted label titles attached to a merge request.
func (s *Snapshot) MergeRequestLabels(id int) []string { return s.mrLabels[id] }

// IssueProduct returns the product derived for an issue, if any.
func (s *Snapshot) IssueProduct(id int) (string, bool) {
	p, ok := s.issueProducts[id]
	return p, ok
}

// MergeRequestProduct returns the product derived for a merge request, if any.
func (s *Snapshot) MergeRequestProduct(id int) (string, bool) {
	p, ok := s.mrProducts[id]
	return p, ok
}
