package main

import (
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Table sizes and per-dimension totals for a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		a := getApp(cmd)

		win, err := getWindow(cmd)
		if err != nil {
			return err
		}
		st, err := a.svc.Stats(win)
		if err != nil {
			return domainErr(err)
		}

		top, _ := cmd.Flags().GetInt("top")
		return w.Report(st, func() (string, error) {
			return render.RenderStats(st, win, top), nil
		})
	},
}

func init() {
	addWindowFlags(statsCmd)
	statsCmd.Flags().Int("top", render.DefaultTopN, "Labels shown per dimension (0 for all)")
	rootCmd.AddCommand(statsCmd)
}
