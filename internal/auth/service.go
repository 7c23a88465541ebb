package auth

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rollbook/attendance-back/internal/db"
	"github.com/rollbook/attendance-back/internal/models"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers get no hint which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden means the session is valid but the class is outside its
	// visible set. A hard failure, never a silent filter.
	ErrForbidden = errors.New("class not permitted for this account")
	// ErrUnauthenticated means no session at all.
	ErrUnauthenticated = errors.New("not signed in")
)

// Identity is what a session carries: who the caller is and, for teachers,
// which classes they may act on. Admins carry an empty set and are permitted
// everywhere.
type Identity struct {
	ID       uint
	Username string
	Role     string
	ClassIDs []uint
}

// Authenticate looks the account up in the table for the claimed role and
// verifies the password against the stored bcrypt hash.
func Authenticate(ctx context.Context, role, username, password string) (*Identity, error) {
	switch role {
	case RoleAdmin:
		admin, err := db.AdminByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return &Identity{ID: admin.ID, Username: admin.Username, Role: RoleAdmin}, nil

	case RoleTeacher:
		teacher, err := db.TeacherByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		if bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return &Identity{
			ID:       teacher.ID,
			Username: teacher.Username,
			Role:     RoleTeacher,
			ClassIDs: classIDSet(teacher.Classes),
		}, nil
	}
	return nil, ErrInvalidCredentials
}

// classIDSet collapses the assigned classes to a sorted, duplicate-free id
// slice.
func classIDSet(classes []models.Class) []uint {
	seen := make(map[uint]struct{}, len(classes))
	ids := make([]uint, 0, len(classes))
	for _, c := range classes {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// VisibleClassIDs computes the caller's visible class set: every class for
// admins (at call time), exactly the assigned set for teachers.
func VisibleClassIDs(ctx context.Context, id *Identity) ([]uint, error) {
	if id == nil {
		return nil, ErrUnauthenticated
	}
	if id.Role == RoleAdmin {
		classes, err := db.AllClasses(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]uint, 0, len(classes))
		for _, c := range classes {
			ids = append(ids, c.ID)
		}
		return ids, nil
	}
	return append([]uint(nil), id.ClassIDs...), nil
}

// VisibleClasses is VisibleClassIDs with full rows, ordered by id, for the
// class pickers.
func VisibleClasses(ctx context.Context, id *Identity) ([]models.Class, error) {
	if id == nil {
		return nil, ErrUnauthenticated
	}
	if id.Role == RoleAdmin {
		return db.AllClasses(ctx)
	}
	return db.ClassesByIDs(ctx, id.ClassIDs)
}

// Authorize fails with ErrForbidden unless classID is visible to the caller.
// Every class-scoped read or write goes through here before touching data.
func Authorize(ctx context.Context, id *Identity, classID uint) error {
	if id == nil {
		return ErrUnauthenticated
	}
	if id.Role == RoleAdmin {
		return nil
	}
	for _, cid := range id.ClassIDs {
		if cid == classID {
			return nil
		}
	}
	return ErrForbidden
}
