// Package dbtest points the db package at a throwaway in-memory database and
// offers fixture builders for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"

	"github.com/rollbook/attendance-back/internal/db"
	"github.com/rollbook/attendance-back/internal/models"
)

// Open swaps db.DB for an in-memory sqlite database for the duration of the
// test. sqlite's unique-constraint errors translate to gorm.ErrDuplicatedKey
// just like Postgres', so the ledger's duplicate path is exercised for real.
func Open(t *testing.T) {
	t.Helper()
	prev := db.DB
	if err := db.Open(sqlite.Open(":memory:")); err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	// One connection: every pool connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
		db.DB = prev
	})
}

// Hash bcrypts a password at minimum cost; tests do not need slow hashes.
func Hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return string(h)
}

func CreateAdmin(t *testing.T, username, password string) models.Admin {
	t.Helper()
	admin := models.Admin{Username: username, Password: Hash(t, password)}
	if err := db.DB.Create(&admin).Error; err != nil {
		t.Fatalf("creating admin: %v", err)
	}
	return admin
}

func CreateTeacher(t *testing.T, name, username, password string, classes ...models.Class) models.Teacher {
	t.Helper()
	teacher := models.Teacher{Name: name, Username: username, Password: Hash(t, password), Classes: classes}
	if err := db.DB.Create(&teacher).Error; err != nil {
		t.Fatalf("creating teacher: %v", err)
	}
	return teacher
}

func CreateClass(t *testing.T, name string) models.Class {
	t.Helper()
	class := models.Class{ClassName: name}
	if err := db.DB.Create(&class).Error; err != nil {
		t.Fatalf("creating class: %v", err)
	}
	return class
}

func CreateStudent(t *testing.T, name, rollNo string, classID uint) models.Student {
	t.Helper()
	student := models.Student{Name: name, RollNo: rollNo, ClassID: classID}
	if err := db.DB.Create(&student).Error; err != nil {
		t.Fatalf("creating student: %v", err)
	}
	return student
}
