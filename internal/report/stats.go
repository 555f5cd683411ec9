package report

import (
	"sort"
	"time"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

// Total is the time summed under one dimension label.
type Total struct {
	Label   string `json:"label"`
	Seconds int64  `json:"seconds"`
}

// Stats summarizes a snapshot and the entries inside one window.
type Stats struct {
	Source       string                      `json:"source"`
	ImportedAt   time.Time                   `json:"imported_at"`
	Tables       map[string]int              `json:"tables"`
	Entries      int                         `json:"entries"`
	TotalSeconds int64                       `json:"total_seconds"`
	Dimensions   map[model.Dimension][]Total `json:"dimensions"`
}

// Summarize counts the rows of every table and totals the entries inside w
// per label of every dimension, largest total first.
func Summarize(s *snapshot.Snapshot, w filter.Window) (*Stats, error) {
	entries := filter.TimeLogs(s.TimeLogs(), w)
	st := &Stats{
		Source:     s.Source(),
		ImportedAt: s.ImportedAt(),
		Tables:     s.Counts(),
		Entries:    len(entries),
		Dimensions: make(map[model.Dimension][]Total, len(model.Dimensions)),
	}
	for _, tl := range entries {
		st.TotalSeconds += tl.TimeSpent
	}
	for _, d := range model.Dimensions {
		tree, err := Aggregate(entries, TimeSpent, []Extractor{DimensionExtractor(s, d)})
		if err != nil {
			return nil, err
		}
		totals := make([]Total, 0, len(tree.Children))
		for _, c := range tree.Children {
			totals = append(totals, Total{Label: c.Name, Seconds: c.Value})
		}
		sortTotals(totals)
		st.Dimensions[d] = totals
	}
	return st, nil
}

func sortTotals(totals []Total) {
	// Children arrive name-sorted, which stays the tie-break.
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Seconds > totals[j].Seconds
	})
}
