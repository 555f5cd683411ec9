package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ALT-F4-LLC/hours/internal/model"
)

// DateLayout is the calendar date format accepted for window bounds.
const DateLayout = "2006-01-02"

// Window is an open time interval: both From and To are excluded.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether From < t < To.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.From) && t.Before(w.To)
}

// Degenerate reports whether From is after To. A degenerate window matches
// nothing; it is not an error.
func (w Window) Degenerate() bool {
	return w.From.After(w.To)
}

func (w Window) String() string {
	return fmt.Sprintf("(%s, %s)", w.From.UTC().Format(time.DateTime), w.To.UTC().Format(time.DateTime))
}

// TimeLogs returns the entries created strictly inside w, in input order.
func TimeLogs(entries []model.TimeLog, w Window) []model.TimeLog {
	if w.Degenerate() {
		return nil
	}
	var out []model.TimeLog
	for _, tl := range entries {
		if w.Contains(tl.CreatedAt) {
			out = append(out, tl)
		}
	}
	return out
}

// ByUser returns the entries logged by userID, in input order.
func ByUser(entries []model.TimeLog, userID int) []model.TimeLog {
	var out []model.TimeLog
	for _, tl := range entries {
		if tl.UserID == userID {
			out = append(out, tl)
		}
	}
	return out
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseWindow builds a window from two YYYY-MM-DD dates.
func ParseWindow(from, to string) (Window, error) {
	f, err := ParseDate(from)
	if err != nil {
		return Window{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return Window{}, err
	}
	return Window{From: f, To: t}, nil
}

// Month returns the window from midnight on the first day of t's month (UTC)
// to midnight on the first day of the next month.
func Month(t time.Time) Window {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{From: start, To: start.AddDate(0, 1, 0)}
}

// Year returns the calendar window of year: Jan 1 00:00:00 to Dec 31
// 23:59:59 UTC, both excluded.
func Year(year int) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Window{From: start, To: start.AddDate(1, 0, 0).Add(-time.Second)}
}
