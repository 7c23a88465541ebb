package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rollbook/attendance-back/internal/models"
)

const sheetName = "Attendance"

// WriteXLSX writes the same projection as WriteCSV as a spreadsheet.
func WriteXLSX(w io.Writer, rows []models.AttendanceRow) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, name := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := record(r)
		row := make([]interface{}, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}
