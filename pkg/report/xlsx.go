package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	fieldsSheet = "Fields"
	linesSheet  = "Lines"
)

// WriteXLSX writes a workbook with every extracted field on the Fields sheet
// and every line on the Lines sheet, one row per entry.
func WriteXLSX(w io.Writer, summaries []Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", fieldsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	writeRow(f, fieldsSheet, 1, "Image", "Key", "Value")
	writeRow(f, linesSheet, 1, "Image", "Line", "Text")

	fieldRow, lineRow := 2, 2
	for _, s := range summaries {
		if s.KeyValues != nil {
			for _, k := range s.KeyValues.Keys() {
				v, _ := s.KeyValues.Get(k)
				writeRow(f, fieldsSheet, fieldRow, s.ImageKey, k, v)
				fieldRow++
			}
		}
		for i, text := range s.AllText {
			writeRow(f, linesSheet, lineRow, s.ImageKey, i+1, text)
			lineRow++
		}
	}

	_ = f.SetColWidth(fieldsSheet, "A", "A", 24)
	_ = f.SetColWidth(fieldsSheet, "B", "C", 32)
	_ = f.SetColWidth(linesSheet, "C", "C", 48)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
