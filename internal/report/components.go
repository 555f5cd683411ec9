package report

import (
	"errors"
	"sort"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

var errNoDimensions = errors.New("at least one dimension is required")

// Components returns the distinct labels of d across the entries inside w,
// sorted lexicographically.
func Components(s *snapshot.Snapshot, w filter.Window, d model.Dimension) ([]string, error) {
	if err := model.ValidateDimension(d); err != nil {
		return nil, err
	}
	return components(s, filter.TimeLogs(s.TimeLogs(), w), d)
}

func components(s *snapshot.Snapshot, entries []model.TimeLog, d model.Dimension) ([]string, error) {
	seen := make(map[string]struct{})
	for _, tl := range entries {
		l, err := s.Label(tl, d)
		if err != nil {
			return nil, err
		}
		seen[l] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out, nil
}

// AllComponents returns Components for every selectable dimension.
func AllComponents(s *snapshot.Snapshot, w filter.Window) (map[model.Dimension][]string, error) {
	entries := filter.TimeLogs(s.TimeLogs(), w)
	out := make(map[model.Dimension][]string, len(model.Dimensions))
	for _, d := range model.Dimensions {
		c, err := components(s, entries, d)
		if err != nil {
			return nil, err
		}
		out[d] = c
	}
	return out, nil
}

// Users returns every user ordered by name, then id.
func Users(s *snapshot.Snapshot) []model.User {
	users := s.Users()
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users
}
