package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALT-F4-LLC/hours/internal/render"
)

type notice struct {
	icon  string
	label string
	color lipgloss.Color
	bold  bool
}

var (
	noticeOK    = notice{icon: "✔", color: "2"}
	noticeInfo  = notice{icon: "ℹ", color: "8"}
	noticeWarn  = notice{icon: "⚠", label: "Warning:", color: "3", bold: true}
	noticeError = notice{icon: "✘", label: "Error:", color: "1", bold: true}
)

// writeNotice prints one prefixed line. Plain mode drops the icon and keeps
// the label.
func writeNotice(w io.Writer, n notice, msg string) {
	if !render.ColorsEnabled() {
		if n.label == "" {
			fmt.Fprintln(w, msg)
			return
		}
		fmt.Fprintf(w, "%s %s\n", n.label, msg)
		return
	}
	style := lipgloss.NewStyle().Foreground(n.color).Bold(n.bold)
	parts := []string{style.Render(n.icon)}
	if n.label != "" {
		parts = append(parts, style.Render(n.label))
	}
	if n == noticeInfo {
		msg = style.Render(msg)
	}
	parts = append(parts, msg)
	fmt.Fprintln(w, strings.Join(parts, " "))
}

// writeHumanSuccess prints message. Multi-line reports are printed as-is;
// a single line gets a check mark.
func writeHumanSuccess(w io.Writer, message string) {
	switch {
	case message == "":
	case strings.Contains(message, "\n"):
		fmt.Fprintln(w, message)
	default:
		writeNotice(w, noticeOK, message)
	}
}

func writeHumanError(w io.Writer, err error) {
	writeNotice(w, noticeError, err.Error())
}
