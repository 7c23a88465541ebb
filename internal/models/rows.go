package models

import "time"

// AttendanceRow is the joined read model behind the view page and the
// exports: one ledger record plus the student and class it belongs to.
type AttendanceRow struct {
	ID        uint
	Student   string
	RollNo    string
	ClassName string
	Date      time.Time
	Status    Status
	MarkedBy  string
}
