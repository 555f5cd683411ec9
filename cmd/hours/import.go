package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/render"
)

type importResult struct {
	Source     string         `json:"source"`
	ImportedAt time.Time      `json:"imported_at"`
	TimeLogs   int            `json:"timelogs"`
	Tables     map[string]int `json:"tables"`
}

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Validate an export archive and report what it holds",
	Long: `Read every table of a GitLab export archive, resolve label links and
build a snapshot. Nothing is written; the command fails on the first
malformed row or dangling reference.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationSkipArchive: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		a := getApp(cmd)

		path, err := filepath.Abs(args[0])
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		snap, err := a.pub.ImportFile(cmd.Context(), path)
		if err != nil {
			return domainErr(err)
		}

		result := importResult{
			Source:     snap.Source(),
			ImportedAt: snap.ImportedAt(),
			TimeLogs:   len(snap.TimeLogs()),
			Tables:     snap.Counts(),
		}
		var message string
		if !w.JSONMode {
			message = fmt.Sprintf("Imported %s timelogs from %s\n%s",
				humanize.Comma(int64(result.TimeLogs)), filepath.Base(path), formatTableCounts(result.Tables))
		}
		w.Success(result, message)
		return nil
	},
}

func formatTableCounts(tables map[string]int) string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %-22s %s", name, humanize.Comma(int64(tables[name]))))
	}
	return render.StyledText(strings.Join(lines, "\n"), dimStyle)
}

func init() {
	rootCmd.AddCommand(importCmd)
}
