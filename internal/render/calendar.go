package render

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

const (
	monthWidth       = 22 // seven 3-column day cells plus a margin
	monthGap         = 2
	maxMonthsPerRow  = 4
	defaultTermWidth = 100
)

// terminalWidth returns the current terminal width, falling back to a default.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

type calendarMonth struct {
	month time.Month
	days  []datedDay
	total int64
}

type datedDay struct {
	date time.Time
	day  report.Day
}

func groupByMonth(days []report.Day) []calendarMonth {
	var months []calendarMonth
	for _, d := range days {
		date, err := time.Parse(filter.DateLayout, d.Date)
		if err != nil {
			continue
		}
		if len(months) == 0 || months[len(months)-1].month != date.Month() {
			months = append(months, calendarMonth{month: date.Month()})
		}
		m := &months[len(months)-1]
		m.days = append(m.days, datedDay{date: date, day: d})
		m.total += d.Seconds
	}
	return months
}

func yearTotal(days []report.Day) int64 {
	var sum int64
	for _, d := range days {
		sum += d.Seconds
	}
	return sum
}

// RenderCalendar renders a user's year as a grid of month calendars, with
// each day shaded by the time logged on it.
func RenderCalendar(user model.User, year int, days []report.Day) string {
	if len(days) == 0 {
		return EmptyState("No calendar days.", "", false)
	}
	if !ColorsEnabled() {
		return renderPlainCalendar(user, year, days)
	}
	return renderColorCalendar(user, year, days, terminalWidth())
}

func renderColorCalendar(user model.User, year int, days []report.Day, width int) string {
	months := groupByMonth(days)

	perRow := (width + monthGap) / (monthWidth + monthGap)
	if perRow < 1 {
		perRow = 1
	}
	if perRow > maxMonthsPerRow {
		perRow = maxMonthsPerRow
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorFromName(model.DimensionUser.Color()))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	title := fmt.Sprintf("%s  %s",
		titleStyle.Render(fmt.Sprintf("%s (%d) %d", user.Name, user.ID, year)),
		dimStyle.Render("total "+report.FormatDuration(yearTotal(days))),
	)

	gap := strings.Repeat(" ", monthGap)
	rows := []string{title}
	for i := 0; i < len(months); i += perRow {
		end := min(i+perRow, len(months))
		blocks := make([]string, 0, 2*(end-i))
		for j := i; j < end; j++ {
			if j > i {
				blocks = append(blocks, gap)
			}
			blocks = append(blocks, renderColorMonth(months[j]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return strings.Join(rows, "\n\n")
}

func renderColorMonth(m calendarMonth) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Width(monthWidth).
		Align(lipgloss.Center)
	totalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Width(monthWidth).
		Align(lipgloss.Center)
	weekdayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	lines := []string{
		headerStyle.Render(m.month.String()),
		totalStyle.Render(report.FormatDuration(m.total)),
		weekdayStyle.Render("Mo Tu We Th Fr Sa Su"),
	}

	var week strings.Builder
	week.WriteString(strings.Repeat("   ", weekdayOffset(m.days[0].date)))
	for _, d := range m.days {
		week.WriteString(dayStyle(d.day.Seconds).Render(fmt.Sprintf("%2d", d.date.Day())) + " ")
		if d.date.Weekday() == time.Sunday {
			lines = append(lines, week.String())
			week.Reset()
		}
	}
	if week.Len() > 0 {
		lines = append(lines, week.String())
	}
	return lipgloss.NewStyle().Width(monthWidth).Render(strings.Join(lines, "\n"))
}

// weekdayOffset counts the cells before t in a Monday-first week.
func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// dayStyle shades a day by the time logged on it.
func dayStyle(seconds int64) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch {
	case seconds < 0:
		return s.Foreground(ColorFromName("red"))
	case seconds == 0:
		return s.Foreground(lipgloss.Color("8"))
	case seconds < 2*3600:
		return s.Foreground(lipgloss.Color("2"))
	case seconds < 6*3600:
		return s.Foreground(ColorFromName("green"))
	default:
		return s.Foreground(ColorFromName("green")).Bold(true).Reverse(true)
	}
}

func renderPlainCalendar(user model.User, year int, days []report.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d) %d  total %s\n", user.Name, user.ID, year, report.FormatDuration(yearTotal(days)))

	for _, m := range groupByMonth(days) {
		fmt.Fprintf(&b, "\n=== %s (%s) ===\n", m.month, report.FormatDuration(m.total))
		active := 0
		for _, d := range m.days {
			if d.day.Seconds == 0 {
				continue
			}
			active++
			fmt.Fprintf(&b, "  %s %s %10s  %d min\n",
				d.day.Date, d.date.Weekday().String()[:3], d.day.Time, d.day.Minutes)
		}
		if active == 0 {
			b.WriteString("  no time logged\n")
		}
	}
	return b.String()
}
