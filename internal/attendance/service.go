// Package attendance is the ledger: it records and reads attendance while
// enforcing the one-record-per-student-per-day invariant and the caller's
// class visibility.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rollbook/attendance-back/internal/auth"
	"github.com/rollbook/attendance-back/internal/db"
	"github.com/rollbook/attendance-back/internal/models"
)

// DateLayout is what the date form field posts.
const DateLayout = "2006-01-02"

var (
	// ErrDuplicateRecord is the expected re-mark/race outcome: the record for
	// this (student, date) already exists. Recoverable, surfaced as a warning.
	ErrDuplicateRecord = errors.New("attendance already marked for this student on this date")
	ErrInvalidStatus   = errors.New("status must be Present or Absent")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrStudentNotFound = errors.New("student not found")
)

// Mark inserts exactly one record for (studentID, date), stamped with the
// caller's username. The insert is atomic: the unique index decides
// duplicates, never a prior existence check.
func Mark(ctx context.Context, id *auth.Identity, studentID uint, date string, status models.Status) error {
	if id == nil {
		return auth.ErrUnauthenticated
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return ErrInvalidDate
	}

	student, err := db.StudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("looking up student %d: %w", studentID, err)
	}
	if err := auth.Authorize(ctx, id, student.ClassID); err != nil {
		return err
	}

	rec := models.AttendanceRecord{
		StudentID: student.ID,
		Date:      day,
		Status:    status,
		MarkedBy:  id.Username,
	}
	if err := db.CreateAttendance(ctx, &rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return fmt.Errorf("inserting attendance: %w", err)
	}
	return nil
}

// Query returns the ledger rows for one class, newest date first. The class
// must be visible to the caller.
func Query(ctx context.Context, id *auth.Identity, classID uint) ([]models.AttendanceRow, error) {
	if err := auth.Authorize(ctx, id, classID); err != nil {
		return nil, err
	}
	return db.AttendanceByClasses(ctx, []uint{classID})
}

// QueryVisible returns rows for every class the caller may see; used by the
// exports when no class is picked.
func QueryVisible(ctx context.Context, id *auth.Identity) ([]models.AttendanceRow, error) {
	ids, err := auth.VisibleClassIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return db.AttendanceByClasses(ctx, ids)
}

// ListStudents returns a class roster for the marking page, ordered by name.
func ListStudents(ctx context.Context, id *auth.Identity, classID uint) ([]models.Student, error) {
	if err := auth.Authorize(ctx, id, classID); err != nil {
		return nil, err
	}
	return db.StudentsByClass(ctx, classID)
}
