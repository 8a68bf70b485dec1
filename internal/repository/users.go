package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
)

const userColumns = `id, email, username, password_hash, full_name, is_active, is_teacher, created_at`

// CreateUser creates a new user in the database
func (q *Queries) CreateUser(ctx context.Context, user *models.User) error {
	id, err := q.insert(ctx, `
		INSERT INTO users (email, username, password_hash, full_name, is_active, is_teacher, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.Username, user.PasswordHash, user.FullName, user.IsActive, user.IsTeacher, user.CreatedAt)
	if err != nil {
		return wrapErr("create user", err)
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by id
func (q *Queries) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	if err := q.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapErr(fmt.Sprintf("get user %d", id), err)
	}
	return user, nil
}

// FindUserByLogin retrieves a user by username or email
func (q *Queries) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	user := &models.User{}
	err := q.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE username = ? OR email = ?`, login, login)
	if err != nil {
		return nil, wrapErr("find user", err)
	}
	return user, nil
}

// ListUsers returns every user ordered by id
func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := q.sel(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, wrapErr("list users", err)
	}
	return users, nil
}

// CheckUserUnique reports a Conflict when another user already has the username or email
func (q *Queries) CheckUserUnique(ctx context.Context, username, email string, excludeID int64) error {
	var taken []string
	err := q.sel(ctx, &taken, `
		SELECT CASE WHEN username = ? THEN 'username' ELSE 'email' END
		FROM users
		WHERE (username = ? OR email = ?) AND id <> ?`,
		username, username, email, excludeID)
	if err != nil {
		return wrapErr("check user", err)
	}
	if len(taken) > 0 {
		return apperr.Conflict("%s already registered", taken[0])
	}
	return nil
}

// UpdateUser stores the editable user fields
func (q *Queries) UpdateUser(ctx context.Context, user *models.User) error {
	return q.execOne(ctx, fmt.Sprintf("user %d", user.ID), `
		UPDATE users SET email = ?, username = ?, full_name = ?, is_active = ?
		WHERE id = ?`,
		user.Email, user.Username, user.FullName, user.IsActive, user.ID)
}
