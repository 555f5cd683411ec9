package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/render"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

type timesheetFile struct {
	Path   string `json:"path"`
	Sheets int    `json:"sheets"`
}

var timesheetCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Per-user timesheets for a window",
	Long: `Show one timesheet per user with time logged inside the window, or write
them to an .xlsx workbook with one sheet per user.`,
	Example: `  hours timesheet --from 2024-01-01 --to 2024-02-01
  hours timesheet --from 2024-01-01 --to 2024-02-01 --out january.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		a := getApp(cmd)

		win, err := getWindow(cmd)
		if err != nil {
			return err
		}
		sheets, err := a.svc.Timesheet(win)
		if err != nil {
			return domainErr(err)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return w.Report(sheets, func() (string, error) {
				return render.RenderTimesheet(sheets), nil
			})
		}

		if err := writeWorkbookFile(out, sheets); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		w.Success(timesheetFile{Path: out, Sheets: len(sheets)},
			fmt.Sprintf("Wrote %d sheet(s) to %s", len(sheets), out))
		return nil
	},
}

func writeWorkbookFile(path string, sheets []report.Sheet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := report.WriteWorkbook(f, sheets); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func init() {
	addWindowFlags(timesheetCmd)
	timesheetCmd.Flags().StringP("out", "o", "", "Write an .xlsx workbook to this path")
	rootCmd.AddCommand(timesheetCmd)
}
