package output

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteXLSX writes one worksheet per table. Numeric cells are stored as
// numbers so they can be summed in a spreadsheet.
func WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range report.Tables {
		sheet := sheetName(table.Title, i)
		index, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}

		for col, header := range table.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
				return err
			}
		}

		for r, row := range table.Rows {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				if err := f.SetCellValue(sheet, cell, cellValue(value)); err != nil {
					return err
				}
			}
		}

		if n := len(table.Headers); n > 0 {
			last, _ := excelize.ColumnNumberToName(n)
			if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
				return err
			}
		}
	}

	if report.RunID != "" {
		f.SetDocProps(&excelize.DocProperties{Identifier: report.RunID, Creator: "pcp"})
	}

	if len(report.Tables) > 0 {
		f.DeleteSheet("Sheet1")
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func sheetName(title string, i int) string {
	if title == "" || title == "Sheet1" {
		title = fmt.Sprintf("Report %d", i+1)
	}
	if len(title) > maxSheetName {
		title = title[:maxSheetName]
	}
	return title
}

func cellValue(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
