package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

const profileColumns = `id, user_id, career_id, current_salary, weekly_income, net_weekly_income,
	student_loan_balance, student_loan_weekly_payment, savings_balance, emergency_fund,
	housing_type, housing_weekly_cost, property_value, weekly_expenses, weeks_played,
	total_tax_paid, created_at, updated_at`

// CreateProfile creates a financial profile; a user has at most one
func (q *Queries) CreateProfile(ctx context.Context, p *models.FinancialProfile) error {
	id, err := q.insert(ctx, `
		INSERT INTO financial_profiles (user_id, career_id, current_salary, weekly_income, net_weekly_income,
			student_loan_balance, student_loan_weekly_payment, savings_balance, emergency_fund,
			housing_type, housing_weekly_cost, property_value, weekly_expenses, weeks_played,
			total_tax_paid, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.CareerID, p.CurrentSalary, p.WeeklyIncome, p.NetWeeklyIncome,
		p.StudentLoanBalance, p.StudentLoanWeeklyPayment, p.SavingsBalance, p.EmergencyFund,
		p.HousingType, p.HousingWeeklyCost, p.PropertyValue, p.WeeklyExpenses, p.WeeksPlayed,
		p.TotalTaxPaid, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return wrapErr("create profile", err)
	}
	p.ID = id
	return nil
}

// GetProfile retrieves a profile by id, locking the row when forUpdate is set
func (q *Queries) GetProfile(ctx context.Context, id int64, forUpdate bool) (*models.FinancialProfile, error) {
	p := &models.FinancialProfile{}
	err := q.get(ctx, p, `SELECT `+profileColumns+` FROM financial_profiles WHERE id = ?`+q.lock(forUpdate), id)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get profile %d", id), err)
	}
	return p, nil
}

// GetProfileByUser retrieves the profile owned by a user
func (q *Queries) GetProfileByUser(ctx context.Context, userID int64, forUpdate bool) (*models.FinancialProfile, error) {
	p := &models.FinancialProfile{}
	err := q.get(ctx, p, `SELECT `+profileColumns+` FROM financial_profiles WHERE user_id = ?`+q.lock(forUpdate), userID)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get profile for user %d", userID), err)
	}
	return p, nil
}

// ListProfileIDs returns every profile id in ascending order
func (q *Queries) ListProfileIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	if err := q.sel(ctx, &ids, `SELECT id FROM financial_profiles ORDER BY id`); err != nil {
		return nil, wrapErr("list profiles", err)
	}
	return ids, nil
}

// UpdateProfile stores every mutable profile field
func (q *Queries) UpdateProfile(ctx context.Context, p *models.FinancialProfile) error {
	return q.execOne(ctx, fmt.Sprintf("profile %d", p.ID), `
		UPDATE financial_profiles SET
			career_id = ?, current_salary = ?, weekly_income = ?, net_weekly_income = ?,
			student_loan_balance = ?, student_loan_weekly_payment = ?, savings_balance = ?,
			emergency_fund = ?, housing_type = ?, housing_weekly_cost = ?, property_value = ?,
			weekly_expenses = ?, weeks_played = ?, total_tax_paid = ?, updated_at = ?
		WHERE id = ?`,
		p.CareerID, p.CurrentSalary, p.WeeklyIncome, p.NetWeeklyIncome,
		p.StudentLoanBalance, p.StudentLoanWeeklyPayment, p.SavingsBalance,
		p.EmergencyFund, p.HousingType, p.HousingWeeklyCost, p.PropertyValue,
		p.WeeklyExpenses, p.WeeksPlayed, p.TotalTaxPaid, p.UpdatedAt, p.ID)
}
