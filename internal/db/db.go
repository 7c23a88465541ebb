package db

import (
	"context"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rollbook/attendance-back/internal/models"
)

var DB *gorm.DB

// InitDB connects to Postgres and migrates the schema. Fatal on failure:
// there is nothing to serve without a database.
func InitDB(dsn string) {
	if err := Open(postgres.Open(dsn)); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	log.Println("database connected and migrated")
}

// Open connects through any gorm dialector and runs migrations. Split out of
// InitDB so tests can point the package at an in-memory database.
func Open(dialector gorm.Dialector) error {
	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the ledger depends on.
	g, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	if err := g.AutoMigrate(
		&models.Admin{},
		&models.Teacher{},
		&models.Class{},
		&models.Student{},
		&models.AttendanceRecord{},
	); err != nil {
		return err
	}
	DB = g
	return nil
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// -------------------- CREDENTIALS --------------------

func AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func TeacherByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := DB.WithContext(ctx).Preload("Classes").Where("username = ?", username).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ListTeachers returns name+username pairs for the teacher login dropdown.
func ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := DB.WithContext(ctx).Select("name", "username").Order("name").Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

// -------------------- REGISTRY --------------------

func AllClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := DB.WithContext(ctx).Order("id").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func ClassesByIDs(ctx context.Context, ids []uint) ([]models.Class, error) {
	var classes []models.Class
	if len(ids) == 0 {
		return classes, nil
	}
	if err := DB.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func StudentByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := DB.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func StudentsByClass(ctx context.Context, classID uint) ([]models.Student, error) {
	var students []models.Student
	if err := DB.WithContext(ctx).Where("class_id = ?", classID).Order("name").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// -------------------- LEDGER --------------------

// CreateAttendance performs the single atomic insert; the unique index on
// (student_id, date) is the only duplicate check. Callers translate
// gorm.ErrDuplicatedKey.
func CreateAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	return DB.WithContext(ctx).Create(rec).Error
}

// AttendanceByClasses returns the joined ledger rows for the given classes,
// newest date first, ties broken by insertion order.
func AttendanceByClasses(ctx context.Context, classIDs []uint) ([]models.AttendanceRow, error) {
	rows := []models.AttendanceRow{}
	if len(classIDs) == 0 {
		return rows, nil
	}
	err := DB.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Select("attendance_records.id, students.name AS student, students.roll_no, classes.class_name, attendance_records.date, attendance_records.status, attendance_records.marked_by").
		Joins("JOIN students ON students.id = attendance_records.student_id").
		Joins("JOIN classes ON classes.id = students.class_id").
		Where("classes.id IN ?", classIDs).
		Order("attendance_records.date DESC, attendance_records.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
