package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassroomLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	teacher := env.register(t, "mr-t", true)
	other := env.register(t, "ms-o", true)
	alice := env.register(t, "alice", false)
	bob := env.register(t, "bob", false)

	_, err := env.svc.CreateClassroom(ctx, alice.ID, "Econ", "")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = env.svc.CreateClassroom(ctx, teacher.ID, "  ", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	room, err := env.svc.CreateClassroom(ctx, teacher.ID, "Econ 101", "Personal finance")
	require.NoError(t, err)
	assert.Len(t, room.InviteCode, utils.InviteCodeLength)
	assert.True(t, room.IsActive)

	_, err = env.svc.JoinClassroom(ctx, alice.ID, strings.ToLower(room.InviteCode))
	require.NoError(t, err)
	_, err = env.svc.JoinClassroom(ctx, alice.ID, room.InviteCode)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = env.svc.JoinClassroom(ctx, alice.ID, "NOPE0000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = env.svc.JoinClassroom(ctx, other.ID, room.InviteCode)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	detail, err := env.svc.GetClassroom(ctx, teacher.ID, room.ID)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, detail.Teacher.ID)
	require.Len(t, detail.Students, 1)
	assert.Equal(t, alice.ID, detail.Students[0].ID)

	_, err = env.svc.GetClassroom(ctx, alice.ID, room.ID)
	assert.NoError(t, err)
	_, err = env.svc.GetClassroom(ctx, bob.ID, room.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = env.svc.GetClassroom(ctx, other.ID, room.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	rooms, err := env.svc.ListClassrooms(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	rooms, err = env.svc.ListClassrooms(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	inactive := false
	name := "Econ 102"
	updated, err := env.svc.UpdateClassroom(ctx, teacher.ID, room.ID, ClassroomUpdate{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Econ 102", updated.Name)
	assert.False(t, updated.IsActive)

	_, err = env.svc.JoinClassroom(ctx, bob.ID, room.InviteCode)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = env.svc.UpdateClassroom(ctx, other.ID, room.ID, ClassroomUpdate{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, env.svc.DeleteClassroom(ctx, other.ID, room.ID), apperr.ErrNotFound)

	require.NoError(t, env.svc.DeleteClassroom(ctx, teacher.ID, room.ID))
	_, err = env.svc.GetClassroom(ctx, teacher.ID, room.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCareers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	teacher := env.register(t, "mr-t", true)
	alice := env.register(t, "alice", false)

	career := &models.Career{Title: "Nurse", BaseSalaryMin: d("50000"), BaseSalaryMax: d("70000")}
	_, err := env.svc.CreateCareer(ctx, alice.ID, career)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.svc.CreateCareer(ctx, teacher.ID, &models.Career{Title: "Chef", BaseSalaryMin: d("50000"), BaseSalaryMax: d("40000")})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	created, err := env.svc.CreateCareer(ctx, teacher.ID, career)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := env.svc.GetCareer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nurse", got.Title)

	app, err := env.svc.ApplyForCareer(ctx, alice.ID, created.ID, "I like helping")
	require.NoError(t, err)
	assert.Equal(t, "pending", app.Status)

	_, err = env.svc.ApplyForCareer(ctx, alice.ID, created.ID, "again")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = env.svc.ApplyForCareer(ctx, alice.ID, 999, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	apps, err := env.svc.ListApplications(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	careers, err := env.svc.ListCareers(ctx)
	require.NoError(t, err)
	assert.Len(t, careers, 1)
}
