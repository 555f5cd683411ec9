package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

// ColorsEnabled returns whether terminal colors should be used.
// It returns false if the NO_COLOR environment variable is set (any value)
// or if TERM is set to "dumb".
func ColorsEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// RenderMarkdown renders markdown text for terminal display.
// When colors are disabled, it returns the content unmodified.
func RenderMarkdown(content string) (string, error) {
	if content == "" {
		return "", nil
	}

	if !ColorsEnabled() {
		return content, nil
	}

	rendered, err := glamour.RenderWithEnvironmentConfig(content)
	if err != nil {
		return content, err
	}

	return strings.TrimSpace(rendered), nil
}

// HierarchyMarkdown writes the aggregation tree as a markdown report: a
// heading naming the window, the grand total and one nested list item per
// node.
func HierarchyMarkdown(root *report.Node, dims []model.Dimension, w filter.Window) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Hours %s to %s\n\n",
		w.From.UTC().Format(filter.DateLayout), w.To.UTC().Format(filter.DateLayout))

	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = string(d)
	}
	fmt.Fprintf(&b, "Grouped by %s.\n\n", strings.Join(names, " › "))
	fmt.Fprintf(&b, "**Total:** `%s`\n\n", report.FormatDuration(root.Total()))

	if len(root.Children) == 0 {
		b.WriteString("_No time logged in this window._\n")
		return b.String()
	}
	for _, c := range root.Children {
		writeMarkdownNode(&b, c, 0)
	}
	return b.String()
}

func writeMarkdownNode(b *strings.Builder, n *report.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Fprintf(b, "%s- %s `%s`\n", indent, escapeMarkdown(n.Name), report.FormatDuration(n.Value))
		return
	}
	fmt.Fprintf(b, "%s- **%s** `%s`\n", indent, escapeMarkdown(n.Name), report.FormatDuration(n.Total()))
	for _, c := range n.Children {
		writeMarkdownNode(b, c, depth+1)
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
