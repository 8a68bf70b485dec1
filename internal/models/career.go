package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Career is a job a student can pick, driving salary and student loan
type Career struct {
	ID                  int64           `json:"id" db:"id"`
	Title               string          `json:"title" db:"title"`
	Description         string          `json:"description" db:"description"`
	EducationRequired   string          `json:"education_required" db:"education_required"`
	RequiresStudentLoan bool            `json:"requires_student_loan" db:"requires_student_loan"`
	StudentLoanAmount   decimal.Decimal `json:"student_loan_amount" db:"student_loan_amount"`
	BaseSalaryMin       decimal.Decimal `json:"base_salary_min" db:"base_salary_min"`
	BaseSalaryMax       decimal.Decimal `json:"base_salary_max" db:"base_salary_max"`
	Industry            string          `json:"industry" db:"industry"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}

// MidSalary is the salary a student starts on after choosing the career
func (c Career) MidSalary() decimal.Decimal {
	return c.BaseSalaryMin.Add(c.BaseSalaryMax).Div(decimal.NewFromInt(2))
}

// CareerApplication records a student's application to a career
type CareerApplication struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CareerID    int64     `json:"career_id" db:"career_id"`
	CoverLetter string    `json:"cover_letter" db:"cover_letter"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
