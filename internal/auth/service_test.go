package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollbook/attendance-back/internal/auth"
	"github.com/rollbook/attendance-back/internal/db/dbtest"
)

func TestAuthenticateAdmin(t *testing.T) {
	dbtest.Open(t)
	dbtest.CreateAdmin(t, "admin", "admin123")
	ctx := context.Background()

	id, err := auth.Authenticate(ctx, auth.RoleAdmin, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", id.Username)
	assert.Equal(t, auth.RoleAdmin, id.Role)
	assert.Empty(t, id.ClassIDs)

	_, err = auth.Authenticate(ctx, auth.RoleAdmin, "admin", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, auth.RoleAdmin, "nobody", "admin123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthenticateTeacher(t *testing.T) {
	dbtest.Open(t)
	c5 := dbtest.CreateClass(t, "Class 5")
	c6 := dbtest.CreateClass(t, "Class 6")
	dbtest.CreateTeacher(t, "Vikram Singh", "teacher3", "teach123", c6, c5)
	ctx := context.Background()

	id, err := auth.Authenticate(ctx, auth.RoleTeacher, "teacher3", "teach123")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTeacher, id.Role)
	assert.Equal(t, []uint{c5.ID, c6.ID}, id.ClassIDs)

	// The lookup is scoped to the claimed role's table.
	_, err = auth.Authenticate(ctx, auth.RoleAdmin, "teacher3", "teach123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "superuser", "teacher3", "teach123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestVisibleClasses(t *testing.T) {
	dbtest.Open(t)
	c1 := dbtest.CreateClass(t, "Class 1")
	c2 := dbtest.CreateClass(t, "Class 2")
	dbtest.CreateClass(t, "Class 3")
	dbtest.CreateAdmin(t, "admin", "admin123")
	dbtest.CreateTeacher(t, "Rajesh Kumar", "teacher1", "teach123", c1, c2)
	ctx := context.Background()

	teacher, err := auth.Authenticate(ctx, auth.RoleTeacher, "teacher1", "teach123")
	require.NoError(t, err)
	ids, err := auth.VisibleClassIDs(ctx, teacher)
	require.NoError(t, err)
	assert.Equal(t, []uint{c1.ID, c2.ID}, ids, "teachers see exactly their assigned set")

	admin, err := auth.Authenticate(ctx, auth.RoleAdmin, "admin", "admin123")
	require.NoError(t, err)
	ids, err = auth.VisibleClassIDs(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, ids, 3, "admins see the full class set")

	// Admin visibility is computed at call time, not login time.
	c4 := dbtest.CreateClass(t, "Class 4")
	ids, err = auth.VisibleClassIDs(ctx, admin)
	require.NoError(t, err)
	assert.Contains(t, ids, c4.ID)
}

func TestAuthorize(t *testing.T) {
	dbtest.Open(t)
	c1 := dbtest.CreateClass(t, "Class 1")
	c2 := dbtest.CreateClass(t, "Class 2")
	dbtest.CreateAdmin(t, "admin", "admin123")
	dbtest.CreateTeacher(t, "Amit Verma", "teacher5", "teach123", c1)
	ctx := context.Background()

	teacher, err := auth.Authenticate(ctx, auth.RoleTeacher, "teacher5", "teach123")
	require.NoError(t, err)
	assert.NoError(t, auth.Authorize(ctx, teacher, c1.ID))
	assert.ErrorIs(t, auth.Authorize(ctx, teacher, c2.ID), auth.ErrForbidden)

	admin, err := auth.Authenticate(ctx, auth.RoleAdmin, "admin", "admin123")
	require.NoError(t, err)
	assert.NoError(t, auth.Authorize(ctx, admin, c2.ID))

	assert.ErrorIs(t, auth.Authorize(ctx, nil, c1.ID), auth.ErrUnauthenticated)
}
