package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/render"
)

type statusResult struct {
	HasData    bool      `json:"has_data"`
	Source     string    `json:"source"`
	ImportedAt time.Time `json:"imported_at"`
	TimeLogs   int       `json:"timelogs"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which archive is loaded and when it was imported",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		snap, err := getApp(cmd).pub.Current()
		if err != nil {
			return domainErr(err)
		}
		result := statusResult{
			HasData:    true,
			Source:     snap.Source(),
			ImportedAt: snap.ImportedAt(),
			TimeLogs:   len(snap.TimeLogs()),
		}
		w.Success(result, render.RenderStatus(result.Source, result.ImportedAt, result.TimeLogs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
