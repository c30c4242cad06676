package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/record"
	"github.com/anstrom/portmerge/internal/risk"
)

const (
	fontFamily = "宋体"
	fontSize   = 12
	warnColor  = "FF0000"
)

// columnWidths of the survey sheet, A through F.
var columnWidths = []float64{36, 12, 12, 18, 11, 28}

// XLSXSink writes the port survey workbook.
type XLSXSink struct {
	Path string
	// Sheet renames the first sheet when set.
	Sheet string
}

// NewXLSXSink creates a workbook sink writing to path.
func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{Path: path}
}

// Target returns the workbook path.
func (s *XLSXSink) Target() string {
	return s.Path
}

// Write renders records into a single styled sheet and saves the workbook,
// replacing any existing file.
func (s *XLSXSink) Write(records []record.ScanRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if s.Sheet != "" && s.Sheet != sheet {
		if err := f.SetSheetName(sheet, s.Sheet); err != nil {
			return errors.ErrOutputWrite(s.Path, err)
		}
		sheet = s.Sheet
	}

	if err := writeRows(f, sheet, records); err != nil {
		return errors.ErrOutputWrite(s.Path, err)
	}
	if err := styleSheet(f, sheet, records); err != nil {
		return errors.ErrOutputWrite(s.Path, err)
	}

	if err := ensureParentDir(s.Path); err != nil {
		return err
	}
	if err := f.SaveAs(s.Path); err != nil {
		return errors.ErrOutputWrite(s.Path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, records []record.ScanRecord) error {
	header := toCells(record.Columns())
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := toCells(records[i].Values())
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return nil
}

func styleSheet(f *excelize.File, sheet string, records []record.ScanRecord) error {
	lastCol, err := excelize.ColumnNumberToName(len(columnWidths))
	if err != nil {
		return err
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	base, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: fontFamily, Size: fontSize}})
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: fontFamily, Size: fontSize, Bold: true}})
	if err != nil {
		return err
	}
	warn, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: fontFamily, Size: fontSize, Color: warnColor}})
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	lastRow := len(records) + 1
	if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("%s%d", lastCol, lastRow), base); err != nil {
		return err
	}
	for i := range records {
		for j, v := range records[i].Values() {
			if v != risk.Warning {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, warn); err != nil {
				return err
			}
		}
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
