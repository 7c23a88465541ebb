package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rollbook/attendance-back/internal/export"
	"github.com/rollbook/attendance-back/internal/models"
)

func day(s string) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return d
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))

	assert.Equal(t, "Student,Roll No,Class,Date,Status,Marked By\n", buf.String(),
		"empty result is a header-only file, not an error")
}

func TestWriteCSVQuotesDelimiters(t *testing.T) {
	rows := []models.AttendanceRow{
		{Student: "Singh, Vikram", RollNo: "C05-001", ClassName: "Class 5",
			Date: day("2024-01-10"), Status: models.StatusPresent, MarkedBy: "teacher3"},
		{Student: "Ann", RollNo: "C05-002", ClassName: "Class 5",
			Date: day("2024-01-09"), Status: models.StatusAbsent, MarkedBy: "teacher3"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, rows))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, export.Header, parsed[0])
	assert.Equal(t, []string{"Singh, Vikram", "C05-001", "Class 5", "2024-01-10", "Present", "teacher3"}, parsed[1])
	assert.Equal(t, []string{"Ann", "C05-002", "Class 5", "2024-01-09", "Absent", "teacher3"}, parsed[2])
}

func TestWriteXLSX(t *testing.T) {
	rows := []models.AttendanceRow{
		{Student: "Ann", RollNo: "C01-001", ClassName: "Class 1",
			Date: day("2024-01-10"), Status: models.StatusPresent, MarkedBy: "admin"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, export.Header, got[0])
	assert.Equal(t, []string{"Ann", "C01-001", "Class 1", "2024-01-10", "Present", "admin"}, got[1])
}
