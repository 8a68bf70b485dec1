package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
)

// ListCareers returns every career
func (s *Service) ListCareers(ctx context.Context) ([]models.Career, error) {
	return s.repo.Queries().ListCareers(ctx)
}

// GetCareer returns a career by id
func (s *Service) GetCareer(ctx context.Context, careerID int64) (*models.Career, error) {
	return s.repo.Queries().GetCareer(ctx, careerID)
}

// CreateCareer adds a career; teachers only
func (s *Service) CreateCareer(ctx context.Context, teacherID int64, career *models.Career) (*models.Career, error) {
	if strings.TrimSpace(career.Title) == "" {
		return nil, apperr.InvalidArgument("career title is required")
	}
	if career.BaseSalaryMin.IsNegative() || career.BaseSalaryMax.LessThan(career.BaseSalaryMin) {
		return nil, apperr.InvalidArgument("salary range must satisfy 0 <= min <= max")
	}
	if career.StudentLoanAmount.IsNegative() {
		return nil, apperr.InvalidArgument("student loan amount must not be negative")
	}

	q := s.repo.Queries()
	if _, err := s.teacher(ctx, q, teacherID); err != nil {
		return nil, err
	}
	career.ID = 0
	career.CreatedAt = s.clock()
	if err := q.CreateCareer(ctx, career); err != nil {
		return nil, err
	}

	s.log.Infof("Career %d (%s) created by teacher %d", career.ID, career.Title, teacherID)
	return career, nil
}

// ApplyForCareer records an application; applying twice is a Conflict
func (s *Service) ApplyForCareer(ctx context.Context, userID, careerID int64, coverLetter string) (*models.CareerApplication, error) {
	app := &models.CareerApplication{
		UserID:      userID,
		CareerID:    careerID,
		CoverLetter: coverLetter,
		Status:      "pending",
		CreatedAt:   s.clock(),
	}
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := q.GetCareer(ctx, careerID); err != nil {
			return err
		}
		err := q.CreateApplication(ctx, app)
		if errors.Is(err, apperr.ErrConflict) {
			return apperr.Conflict("already applied to career %d", careerID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("User %d applied to career %d", userID, careerID)
	return app, nil
}

// ListApplications returns the user's career applications
func (s *Service) ListApplications(ctx context.Context, userID int64) ([]models.CareerApplication, error) {
	return s.repo.Queries().ListApplicationsByUser(ctx, userID)
}
