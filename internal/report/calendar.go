package report

import (
	"time"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

// Day is one calendar day of a user's year.
type Day struct {
	Date    string `json:"date"`
	Minutes int64  `json:"minutes"`
	Time    string `json:"time"`
	Seconds int64  `json:"-"`
}

// Calendar sums one user's time per UTC day of year. Every day of the year
// is present, in ascending order; minutes truncate toward zero.
func Calendar(s *snapshot.Snapshot, year, userID int) ([]Day, error) {
	if _, ok := s.User(userID); !ok {
		return nil, &snapshot.UnresolvedError{
			Kind: snapshot.KindUser,
			ID:   userID,
			Ref:  "calendar request",
		}
	}

	perDay := make(map[string]int64)
	for _, tl := range filter.ByUser(filter.TimeLogs(s.TimeLogs(), filter.Year(year)), userID) {
		perDay[tl.CreatedAt.UTC().Format(filter.DateLayout)] += tl.TimeSpent
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	days := make([]Day, 0, 366)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(filter.DateLayout)
		secs := perDay[key]
		days = append(days, Day{
			Date:    key,
			Minutes: secs / 60,
			Time:    FormatDuration(secs),
			Seconds: secs,
		})
	}
	return days, nil
}
