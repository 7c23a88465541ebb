// Package export projects ledger rows into downloadable files.
package export

import (
	"encoding/csv"
	"io"

	"github.com/rollbook/attendance-back/internal/attendance"
	"github.com/rollbook/attendance-back/internal/models"
)

// Header is the fixed export column order. An empty result still gets it.
var Header = []string{"Student", "Roll No", "Class", "Date", "Status", "Marked By"}

// WriteCSV streams rows as UTF-8 comma-separated text; encoding/csv quotes
// values containing the delimiter.
func WriteCSV(w io.Writer, rows []models.AttendanceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(r models.AttendanceRow) []string {
	return []string{
		r.Student,
		r.RollNo,
		r.ClassName,
		r.Date.Format(attendance.DateLayout),
		string(r.Status),
		r.MarkedBy,
	}
}
