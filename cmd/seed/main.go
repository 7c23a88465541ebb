// Command seed provisions the database the application assumes: the default
// admin, five teachers with their class assignments, eight classes and fifty
// students per class. Each group is skipped when rows already exist, so the
// command is safe to re-run.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/rollbook/attendance-back/internal/config"
	"github.com/rollbook/attendance-back/internal/db"
	"github.com/rollbook/attendance-back/internal/models"
)

const (
	defaultAdminPass   = "admin123"
	defaultTeacherPass = "teach123"
	classCount         = 8
	studentsPerClass   = 50
)

var teacherDefs = []struct {
	Name     string
	Username string
	Classes  []int // 1-based class numbers
}{
	{"Rajesh Kumar", "teacher1", []int{1, 2}},
	{"Sneha Gupta", "teacher2", []int{3, 4}},
	{"Vikram Singh", "teacher3", []int{5}},
	{"Pooja Sharma", "teacher4", []int{6, 7}},
	{"Amit Verma", "teacher5", []int{8}},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env")
	}

	cfg := config.Load()
	db.InitDB(cfg.DBUrl)
	ctx := context.Background()

	if err := seedAdmin(ctx); err != nil {
		log.Fatal(err)
	}
	classes, err := seedClasses(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := seedTeachers(ctx, classes); err != nil {
		log.Fatal(err)
	}
	if err := seedStudents(ctx, classes); err != nil {
		log.Fatal(err)
	}

	log.Println("database setup completed successfully")
}

func seedAdmin(ctx context.Context) error {
	var count int64
	if err := db.DB.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("default admin already exists")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := db.DB.WithContext(ctx).Create(&models.Admin{Username: "admin", Password: string(hash)}).Error; err != nil {
		return err
	}
	log.Println("default admin created -> username: admin")
	return nil
}

func seedClasses(ctx context.Context) ([]models.Class, error) {
	var count int64
	if err := db.DB.WithContext(ctx).Model(&models.Class{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		classes := make([]models.Class, 0, classCount)
		for i := 1; i <= classCount; i++ {
			classes = append(classes, models.Class{ClassName: fmt.Sprintf("Class %d", i)})
		}
		if err := db.DB.WithContext(ctx).Create(&classes).Error; err != nil {
			return nil, err
		}
		log.Printf("inserted classes 1..%d", classCount)
	} else {
		log.Println("classes already inserted")
	}
	return db.AllClasses(ctx)
}

func seedTeachers(ctx context.Context, classes []models.Class) error {
	var count int64
	if err := db.DB.WithContext(ctx).Model(&models.Teacher{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("teachers already exist")
		return nil
	}
	for _, def := range teacherDefs {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultTeacherPass), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		teacher := models.Teacher{Name: def.Name, Username: def.Username, Password: string(hash)}
		for _, n := range def.Classes {
			if n < 1 || n > len(classes) {
				return fmt.Errorf("teacher %s references missing class %d", def.Username, n)
			}
			teacher.Classes = append(teacher.Classes, classes[n-1])
		}
		if err := db.DB.WithContext(ctx).Create(&teacher).Error; err != nil {
			return err
		}
	}
	log.Printf("inserted %d teachers with default password", len(teacherDefs))
	return nil
}

func seedStudents(ctx context.Context, classes []models.Class) error {
	var count int64
	if err := db.DB.WithContext(ctx).Model(&models.Student{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("%d students already exist, skipping student insertion", count)
		return nil
	}
	students := make([]models.Student, 0, len(classes)*studentsPerClass)
	for _, class := range classes {
		for i := 1; i <= studentsPerClass; i++ {
			students = append(students, models.Student{
				Name:    fmt.Sprintf("Student_C%d_%d", class.ID, i),
				RollNo:  fmt.Sprintf("C%02d-%03d", class.ID, i),
				ClassID: class.ID,
			})
		}
	}
	if err := db.DB.WithContext(ctx).CreateInBatches(&students, 200).Error; err != nil {
		return err
	}
	log.Printf("inserted %d students (%d per class)", len(students), studentsPerClass)
	return nil
}
