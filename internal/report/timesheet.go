package report

import (
	"fmt"
	"sort"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

// TimesheetHeader is the header row of every timesheet sheet.
var TimesheetHeader = []string{"Datum", "Hodiny", "Namespace", "Project", "Produkt", "Issue"}

// TimesheetRow is one time entry of a user's timesheet.
type TimesheetRow struct {
	Date      string `json:"date"`
	Duration  string `json:"duration"`
	Seconds   int64  `json:"seconds"`
	Namespace string `json:"namespace"`
	Project   string `json:"project"`
	Product   string `json:"product"`
	Issue     string `json:"issue"`
}

// Cells returns the row in TimesheetHeader order.
func (r TimesheetRow) Cells() []string {
	return []string{r.Date, r.Duration, r.Namespace, r.Project, r.Product, r.Issue}
}

// Sheet is the timesheet of one user.
type Sheet struct {
	User model.User     `json:"user"`
	Rows []TimesheetRow `json:"rows"`
}

// Title is the sheet title, "<name> (<id>)".
func (sh Sheet) Title() string {
	return fmt.Sprintf("%s (%d)", sh.User.Name, sh.User.ID)
}

// Total sums the seconds of every row.
func (sh Sheet) Total() int64 {
	var sum int64
	for _, r := range sh.Rows {
		sum += r.Seconds
	}
	return sum
}

// Timesheet returns one sheet per user with entries inside w, users ordered
// by id and rows by creation time. Users without entries are skipped.
func Timesheet(s *snapshot.Snapshot, w filter.Window) ([]Sheet, error) {
	entries := filter.TimeLogs(s.TimeLogs(), w)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	byUser := make(map[int][]model.TimeLog)
	for _, tl := range entries {
		if _, err := s.ResolveUser(tl); err != nil {
			return nil, err
		}
		byUser[tl.UserID] = append(byUser[tl.UserID], tl)
	}

	var sheets []Sheet
	for _, u := range s.Users() {
		logs := byUser[u.ID]
		if len(logs) == 0 {
			continue
		}
		sheet := Sheet{User: u, Rows: make([]TimesheetRow, 0, len(logs))}
		for _, tl := range logs {
			row, err := timesheetRow(s, tl)
			if err != nil {
				return nil, err
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func timesheetRow(s *snapshot.Snapshot, tl model.TimeLog) (TimesheetRow, error) {
	ns, err := s.ResolveNamespace(tl)
	if err != nil {
		return TimesheetRow{}, err
	}
	project, err := s.ResolveProject(tl)
	if err != nil {
		return TimesheetRow{}, err
	}
	product, err := s.ResolveProduct(tl)
	if err != nil {
		return TimesheetRow{}, err
	}
	issue, err := s.ResolveIssue(tl)
	if err != nil {
		return TimesheetRow{}, err
	}
	return TimesheetRow{
		Date:      tl.CreatedAt.UTC().Format(filter.DateLayout),
		Duration:  FormatDuration(tl.TimeSpent),
		Seconds:   tl.TimeSpent,
		Namespace: ns.Name,
		Project:   project.Name,
		Product:   product,
		Issue:     issue.Cell(),
	}, nil
}
