package service

import (
	"context"
	"strings"

	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
)

// UserUpdate holds the optional fields a user may change on themselves
type UserUpdate struct {
	Email    *string
	Username *string
	FullName *string
}

// GetUser returns a user by id
func (s *Service) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.Queries().GetUser(ctx, userID)
}

// UpdateUser applies a partial update, rejecting a username or email already in use
func (s *Service) UpdateUser(ctx context.Context, userID int64, in UserUpdate) (*models.User, error) {
	var user *models.User
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		var err error
		if user, err = q.GetUser(ctx, userID); err != nil {
			return err
		}
		if in.Email != nil {
			user.Email = strings.ToLower(*in.Email)
		}
		if in.Username != nil {
			user.Username = *in.Username
		}
		if in.FullName != nil {
			user.FullName = *in.FullName
		}
		if err := q.CheckUserUnique(ctx, user.Username, user.Email, user.ID); err != nil {
			return err
		}
		return q.UpdateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("User %d updated", user.ID)
	return user, nil
}

// ListUsers returns every user; teachers only
func (s *Service) ListUsers(ctx context.Context, actorID int64) ([]models.User, error) {
	q := s.repo.Queries()
	if _, err := s.teacher(ctx, q, actorID); err != nil {
		return nil, err
	}
	return q.ListUsers(ctx)
}

// GetUserAsTeacher returns any user's record; teachers only
func (s *Service) GetUserAsTeacher(ctx context.Context, actorID, userID int64) (*models.User, error) {
	q := s.repo.Queries()
	if _, err := s.teacher(ctx, q, actorID); err != nil {
		return nil, err
	}
	return q.GetUser(ctx, userID)
}
