package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

// RenderHierarchy renders the aggregation tree with the summed duration of
// every node. Level i is colored after dims[i].
func RenderHierarchy(root *report.Node, dims []model.Dimension) string {
	if root == nil || len(root.Children) == 0 {
		return EmptyState("No time logged in this window.", "Try a wider window with --from and --to.", false)
	}
	if !ColorsEnabled() {
		var b strings.Builder
		fmt.Fprintf(&b, "Total %s\n", report.FormatDuration(root.Total()))
		for _, c := range root.Children {
			renderPlainNode(&b, c, 0)
		}
		return b.String()
	}

	rootStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	t := tree.New().Root(rootStyle.Render("Total " + report.FormatDuration(root.Total())))
	for _, c := range root.Children {
		t.Child(styledNode(c, dims, 0))
	}
	return t.String()
}

func nodeLabel(n *report.Node) (string, string) {
	return n.Name, report.FormatDuration(n.Total())
}

func styledNode(n *report.Node, dims []model.Dimension, depth int) any {
	color := ColorFromName("white")
	if depth < len(dims) {
		color = ColorFromName(dims[depth].Color())
	}
	name, dur := nodeLabel(n)
	durStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	if n.Total() < 0 {
		durStyle = durStyle.Foreground(ColorFromName("red"))
	}
	label := fmt.Sprintf("%s  %s",
		lipgloss.NewStyle().Foreground(color).Render(name),
		durStyle.Render(dur),
	)
	if n.IsLeaf() {
		return label
	}
	sub := tree.Root(label)
	for _, c := range n.Children {
		sub.Child(styledNode(c, dims, depth+1))
	}
	return sub
}

func renderPlainNode(b *strings.Builder, n *report.Node, depth int) {
	name, dur := nodeLabel(n)
	fmt.Fprintf(b, "%s%s  %s\n", strings.Repeat("  ", depth), name, dur)
	for _, c := range n.Children {
		renderPlainNode(b, c, depth+1)
	}
}
