package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/render"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print hours version information",
	Annotations: map[string]string{annotationSkipArchive: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		w := getWriter(cmd)

		msg := fmt.Sprintf("hours version %s %s",
			render.StyledText(version, boldStyle),
			render.StyledText(fmt.Sprintf("(commit: %s, built: %s)", commit, buildDate), dimStyle),
		)

		w.Success(struct {
			Version   string `json:"version"`
			Commit    string `json:"commit"`
			BuildDate string `json:"build_date"`
		}{
			Version:   version,
			Commit:    commit,
			BuildDate: buildDate,
		}, msg)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
