package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

const maxIssueWidth = 48

// StyledText applies a lipgloss style to text when colors are enabled.
// When colors are disabled, it returns the plain text unchanged.
func StyledText(text string, style lipgloss.Style) string {
	if ColorsEnabled() {
		return style.Render(text)
	}
	return text
}

// ColorFromName maps model color name strings to lipgloss colors.
func ColorFromName(name string) lipgloss.Color {
	switch name {
	case "red":
		return lipgloss.Color("9")
	case "yellow":
		return lipgloss.Color("11")
	case "blue":
		return lipgloss.Color("12")
	case "green":
		return lipgloss.Color("10")
	case "magenta":
		return lipgloss.Color("13")
	case "gray":
		return lipgloss.Color("8")
	default:
		return lipgloss.Color("15")
	}
}

// truncate shortens a string to maxLen runes, appending an ellipsis if truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// EmptyState renders a styled empty-state message with an optional contextual hint.
// When colors are enabled the message is rendered in dim gray and the hint is italic.
// When quiet is true the hint is suppressed.
func EmptyState(message, hint string, quiet bool) string {
	if !ColorsEnabled() {
		if quiet || hint == "" {
			return message
		}
		return message + "\n" + hint
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	result := dimStyle.Render(message)
	if !quiet && hint != "" {
		result += "\n" + hintStyle.Render(hint)
	}
	return result
}

func styledTable(headers []string, rows [][]string, colColor func(row, col int) (lipgloss.Color, bool)) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}
			if colColor != nil {
				if c, ok := colColor(row, col); ok {
					return s.Foreground(c)
				}
			}
			return s
		})
	return t.Render()
}

// timesheetColumns colors the dimension columns of a timesheet row.
var timesheetColumns = map[int]model.Dimension{
	2: model.DimensionNamespace,
	3: model.DimensionProject,
	4: model.DimensionProduct,
	5: model.DimensionIssue,
}

// RenderTimesheet renders one table per user sheet, each headed by the sheet
// title and its total.
func RenderTimesheet(sheets []report.Sheet) string {
	if len(sheets) == 0 {
		return EmptyState("No time logged in this window.", "Try a wider window with --from and --to.", false)
	}
	if !ColorsEnabled() {
		return renderPlainTimesheet(sheets)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorFromName(model.DimensionUser.Color()))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var sections []string
	for _, sh := range sheets {
		rows := make([][]string, 0, len(sh.Rows))
		negative := make([]bool, len(sh.Rows))
		for i, r := range sh.Rows {
			cells := r.Cells()
			cells[5] = truncate(cells[5], maxIssueWidth)
			rows = append(rows, cells)
			negative[i] = r.Seconds < 0
		}
		body := styledTable(report.TimesheetHeader, rows, func(row, col int) (lipgloss.Color, bool) {
			if row < 0 || row >= len(rows) {
				return "", false
			}
			if col == 1 && negative[row] {
				return ColorFromName("red"), true
			}
			if d, ok := timesheetColumns[col]; ok {
				return ColorFromName(d.Color()), true
			}
			return "", false
		})
		header := fmt.Sprintf("%s  %s",
			titleStyle.Render(sh.Title()),
			dimStyle.Render(fmt.Sprintf("%s entries, total %s", humanize.Comma(int64(len(sh.Rows))), report.FormatDuration(sh.Total()))),
		)
		sections = append(sections, header+"\n"+body)
	}
	return strings.Join(sections, "\n\n")
}

func renderPlainTimesheet(sheets []report.Sheet) string {
	var b strings.Builder
	for i, sh := range sheets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "=== %s (total %s) ===\n", sh.Title(), report.FormatDuration(sh.Total()))
		fmt.Fprintf(&b, "%-10s %10s  %-16s %-16s %-12s %s\n",
			"Datum", "Hodiny", "Namespace", "Project", "Produkt", "Issue")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 100))
		for _, r := range sh.Rows {
			fmt.Fprintf(&b, "%-10s %10s  %-16s %-16s %-12s %s\n",
				r.Date, r.Duration,
				truncate(r.Namespace, 16), truncate(r.Project, 16), truncate(r.Product, 12),
				truncate(r.Issue, maxIssueWidth),
			)
		}
	}
	return b.String()
}

// RenderUsers renders users as an ID/Name/Email table.
func RenderUsers(users []model.User) string {
	if len(users) == 0 {
		return EmptyState("No users found.", "Import an export with: hours import <archive>", false)
	}
	if !ColorsEnabled() {
		var b strings.Builder
		fmt.Fprintf(&b, "%-8s %-30s %s\n", "ID", "Name", "Email")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 70))
		for _, u := range users {
			fmt.Fprintf(&b, "%-8d %-30s %s\n", u.ID, truncate(u.Name, 30), u.Email)
		}
		return b.String()
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{fmt.Sprintf("%d", u.ID), u.Name, u.Email})
	}
	return styledTable([]string{"ID", "Name", "Email"}, rows, func(row, col int) (lipgloss.Color, bool) {
		if col == 1 {
			return ColorFromName(model.DimensionUser.Color()), true
		}
		return "", false
	})
}

// RenderComponents renders the distinct labels of each dimension in dims
// order. Dimensions missing from comps are skipped.
func RenderComponents(dims []model.Dimension, comps map[model.Dimension][]string) string {
	var sections []string
	for _, d := range dims {
		labels, ok := comps[d]
		if !ok {
			continue
		}
		sections = append(sections, renderComponentList(d, labels))
	}
	if len(sections) == 0 {
		return EmptyState("No components found.", "", false)
	}
	return strings.Join(sections, "\n\n")
}

func renderComponentList(d model.Dimension, labels []string) string {
	heading := fmt.Sprintf("%s (%d)", d, len(labels))
	if !ColorsEnabled() {
		var b strings.Builder
		b.WriteString(heading + "\n")
		for _, l := range labels {
			b.WriteString("  " + l + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	headStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorFromName(d.Color()))
	itemStyle := lipgloss.NewStyle().Foreground(ColorFromName(d.Color()))
	lines := []string{headStyle.Render(heading)}
	for _, l := range labels {
		lines = append(lines, "  "+itemStyle.Render("▸ "+l))
	}
	return strings.Join(lines, "\n")
}
