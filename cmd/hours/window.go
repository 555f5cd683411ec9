package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/output"
)

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Window start, YYYY-MM-DD (default: first day of this month)")
	cmd.Flags().String("to", "", "Window end, YYYY-MM-DD (default: first day of next month)")
}

// getWindow reads --from and --to. Either bound defaults to the matching
// bound of the current calendar month.
func getWindow(cmd *cobra.Command) (filter.Window, error) {
	w := filter.Month(time.Now())

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from != "" {
		t, err := filter.ParseDate(from)
		if err != nil {
			return filter.Window{}, cmdErr(err, output.ErrValidation)
		}
		w.From = t
	}
	if to != "" {
		t, err := filter.ParseDate(to)
		if err != nil {
			return filter.Window{}, cmdErr(err, output.ErrValidation)
		}
		w.To = t
	}
	if w.Degenerate() {
		getWriter(cmd).Warn("window %s is empty, --from must be before --to", w)
	}
	return w, nil
}
