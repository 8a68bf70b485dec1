package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is a new account request
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FullName  string
	IsTeacher bool
}

// Register creates a new user with hashed password. Students also get an
// empty financial profile and a starter portfolio.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock()
	user := &models.User{
		Email:        strings.ToLower(in.Email),
		Username:     in.Username,
		PasswordHash: string(hashedPassword),
		FullName:     in.FullName,
		IsActive:     true,
		IsTeacher:    in.IsTeacher,
		CreatedAt:    now,
	}

	err = s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if err := q.CheckUserUnique(ctx, user.Username, user.Email, 0); err != nil {
			return err
		}
		if err := q.CreateUser(ctx, user); err != nil {
			return err
		}
		if user.IsTeacher {
			return nil
		}
		if _, err := s.createProfile(ctx, q, user.ID); err != nil {
			return err
		}
		_, err := s.createPortfolio(ctx, q, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user by username or email and returns a JWT token
func (s *Service) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.repo.Queries().FindUserByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}
	if !user.IsActive {
		return "", apperr.Unauthorized("account disabled")
	}

	// Generate JWT
	now := s.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
