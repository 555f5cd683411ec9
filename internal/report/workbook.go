package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetName     = 31
	emptySheetName   = "Timesheet"
	defaultSheetName = "Sheet1"
)

// SheetName makes title usable as a worksheet name: forbidden characters
// become "_", surrounding apostrophes are dropped and the result is cut to
// 31 characters.
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, title)
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if strings.TrimSpace(name) == "" {
		name = emptySheetName
	}
	return name
}

func uniqueSheetName(title string, used map[string]bool) string {
	name := SheetName(title)
	base := name
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

// WriteWorkbook writes the timesheet as an .xlsx workbook with one worksheet
// per sheet. Without sheets the workbook holds a single header-only
// "Timesheet" worksheet.
func WriteWorkbook(w io.Writer, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if len(sheets) == 0 {
		if err := f.SetSheetName(defaultSheetName, emptySheetName); err != nil {
			return err
		}
		if err := writeSheet(f, emptySheetName, header, nil); err != nil {
			return err
		}
		return f.Write(w)
	}

	used := make(map[string]bool, len(sheets))
	for i, sh := range sheets {
		name := uniqueSheetName(sh.Title(), used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheetName, name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, header, sh.Rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, headerStyle int, rows []TimesheetRow) error {
	if err := f.SetSheetRow(name, "A1", toCells(TimesheetHeader)); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "F1", headerStyle); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, toCells(r.Cells())); err != nil {
			return fmt.Errorf("writing %s row %d: %w", name, i+2, err)
		}
	}
	if err := f.SetColWidth(name, "A", "B", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(name, "C", "E", 20); err != nil {
		return err
	}
	return f.SetColWidth(name, "F", "F", 48)
}

func toCells(values []string) *[]any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &cells
}
