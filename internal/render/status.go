package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/ingest"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

// DefaultTopN caps the labels shown per dimension in RenderStats.
const DefaultTopN = 5

// RenderStatus renders what is currently loaded: the source archive, when it
// was imported and how many time log entries it holds.
func RenderStatus(source string, importedAt time.Time, timeLogs int) string {
	if !ColorsEnabled() {
		return fmt.Sprintf("Source:    %s\nImported:  %s (%s)\nTime logs: %s\n",
			source,
			importedAt.UTC().Format(time.RFC3339),
			humanize.Time(importedAt),
			humanize.Comma(int64(timeLogs)),
		)
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Source:   "), valueStyle.Render(source)),
		fmt.Sprintf("%s %s %s", labelStyle.Render("Imported: "),
			importedAt.UTC().Format(time.RFC3339), labelStyle.Render("("+humanize.Time(importedAt)+")")),
		fmt.Sprintf("%s %s", labelStyle.Render("Time logs:"), valueStyle.Render(humanize.Comma(int64(timeLogs)))),
	}
	return strings.Join(lines, "\n")
}

// RenderStats renders table row counts followed by the top labels of every
// dimension inside the window. top <= 0 shows every label.
func RenderStats(st *report.Stats, w filter.Window, top int) string {
	if !ColorsEnabled() {
		return renderPlainStats(st, w, top)
	}

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var sections []string
	sections = append(sections, RenderStatus(st.Source, st.ImportedAt, st.Tables[ingest.TableTimeLogs]))

	var tables []string
	for _, name := range sortedTables(st.Tables) {
		tables = append(tables, fmt.Sprintf("  %s %s", dimStyle.Render(fmt.Sprintf("%-22s", name)), humanize.Comma(int64(st.Tables[name]))))
	}
	sections = append(sections, sectionStyle.Render("Tables")+"\n"+strings.Join(tables, "\n"))

	sections = append(sections, fmt.Sprintf("%s %s\n%s",
		sectionStyle.Render("Window"),
		dimStyle.Render(w.String()),
		fmt.Sprintf("  %s entries, total %s", humanize.Comma(int64(st.Entries)), report.FormatDuration(st.TotalSeconds)),
	))

	for _, d := range model.Dimensions {
		totals := st.Dimensions[d]
		if len(totals) == 0 {
			continue
		}
		color := ColorFromName(d.Color())
		root := fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(d)),
			dimStyle.Render(fmt.Sprintf("(%d)", len(totals))),
		)
		t := tree.New().Root(root)
		for _, tot := range limitTotals(totals, top) {
			t.Child(fmt.Sprintf("%s  %s",
				lipgloss.NewStyle().Foreground(color).Render(truncate(tot.Label, maxIssueWidth)),
				dimStyle.Render(report.FormatDuration(tot.Seconds)),
			))
		}
		sections = append(sections, t.String())
	}
	return strings.Join(sections, "\n\n")
}

func renderPlainStats(st *report.Stats, w filter.Window, top int) string {
	var b strings.Builder
	b.WriteString(RenderStatus(st.Source, st.ImportedAt, st.Tables[ingest.TableTimeLogs]))

	b.WriteString("\nTables:\n")
	for _, name := range sortedTables(st.Tables) {
		fmt.Fprintf(&b, "  %-22s %s\n", name, humanize.Comma(int64(st.Tables[name])))
	}

	fmt.Fprintf(&b, "\nWindow %s: %s entries, total %s\n",
		w, humanize.Comma(int64(st.Entries)), report.FormatDuration(st.TotalSeconds))

	for _, d := range model.Dimensions {
		totals := st.Dimensions[d]
		if len(totals) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d)\n", d, len(totals))
		for _, tot := range limitTotals(totals, top) {
			fmt.Fprintf(&b, "  %-48s %12s\n", truncate(tot.Label, maxIssueWidth), report.FormatDuration(tot.Seconds))
		}
	}
	return b.String()
}

func sortedTables(tables map[string]int) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func limitTotals(totals []report.Total, top int) []report.Total {
	if top <= 0 || len(totals) <= top {
		return totals
	}
	return totals[:top]
}
