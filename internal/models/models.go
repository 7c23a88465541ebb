package models

import "time"

// Status is an attendance status. The ledger only knows these two values.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

type Admin struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:50;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"` // bcrypt hash
	CreatedAt time.Time
}

type Teacher struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:150;not null"`
	Username  string  `gorm:"size:50;uniqueIndex;not null"`
	Password  string  `gorm:"size:255;not null"` // bcrypt hash
	Classes   []Class `gorm:"many2many:teacher_classes;"`
	CreatedAt time.Time
}

type Class struct {
	ID        uint      `gorm:"primaryKey"`
	ClassName string    `gorm:"size:50;uniqueIndex;not null"`
	Students  []Student `gorm:"foreignKey:ClassID"`
}

type Student struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null"`
	RollNo    string `gorm:"size:50"`
	ClassID   uint   `gorm:"not null;index"`
	CreatedAt time.Time

	Class Class `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// AttendanceRecord is one marking of one student on one date. The composite
// unique index is the ledger's central invariant: at most one record per
// (student_id, date).
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey"`
	StudentID uint      `gorm:"not null;uniqueIndex:uniq_student_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uniq_student_date"`
	Status    Status    `gorm:"size:10;not null"`
	MarkedBy  string    `gorm:"size:100"`
	CreatedAt time.Time

	Student Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
