package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

const careerColumns = `id, title, description, education_required, requires_student_loan,
	student_loan_amount, base_salary_min, base_salary_max, industry, created_at`

// CreateCareer creates a new career
func (q *Queries) CreateCareer(ctx context.Context, c *models.Career) error {
	id, err := q.insert(ctx, `
		INSERT INTO careers (title, description, education_required, requires_student_loan,
			student_loan_amount, base_salary_min, base_salary_max, industry, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.EducationRequired, c.RequiresStudentLoan,
		c.StudentLoanAmount, c.BaseSalaryMin, c.BaseSalaryMax, c.Industry, c.CreatedAt)
	if err != nil {
		return wrapErr("create career", err)
	}
	c.ID = id
	return nil
}

// GetCareer retrieves a career by id
func (q *Queries) GetCareer(ctx context.Context, id int64) (*models.Career, error) {
	c := &models.Career{}
	if err := q.get(ctx, c, `SELECT `+careerColumns+` FROM careers WHERE id = ?`, id); err != nil {
		return nil, wrapErr(fmt.Sprintf("get career %d", id), err)
	}
	return c, nil
}

// FindCareerByTitle retrieves a career by its exact title
func (q *Queries) FindCareerByTitle(ctx context.Context, title string) (*models.Career, error) {
	c := &models.Career{}
	if err := q.get(ctx, c, `SELECT `+careerColumns+` FROM careers WHERE title = ?`, title); err != nil {
		return nil, wrapErr("find career "+title, err)
	}
	return c, nil
}

// ListCareers returns every career ordered by title
func (q *Queries) ListCareers(ctx context.Context) ([]models.Career, error) {
	out := []models.Career{}
	if err := q.sel(ctx, &out, `SELECT `+careerColumns+` FROM careers ORDER BY title`); err != nil {
		return nil, wrapErr("list careers", err)
	}
	return out, nil
}

// CreateApplication records a career application; one per user and career
func (q *Queries) CreateApplication(ctx context.Context, a *models.CareerApplication) error {
	id, err := q.insert(ctx, `
		INSERT INTO career_applications (user_id, career_id, cover_letter, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.UserID, a.CareerID, a.CoverLetter, a.Status, a.CreatedAt)
	if err != nil {
		return wrapErr("apply for career", err)
	}
	a.ID = id
	return nil
}

// ListApplicationsByUser returns a user's applications, newest first
func (q *Queries) ListApplicationsByUser(ctx context.Context, userID int64) ([]models.CareerApplication, error) {
	out := []models.CareerApplication{}
	err := q.sel(ctx, &out, `
		SELECT id, user_id, career_id, cover_letter, status, created_at
		FROM career_applications WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, wrapErr("list applications", err)
	}
	return out, nil
}
