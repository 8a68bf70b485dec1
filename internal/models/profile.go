package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Housing types
const (
	HousingRenting  = "renting"
	HousingMortgage = "mortgage"
	HousingOwned    = "owned"
)

// FinancialProfile is a student's simulated personal finances
type FinancialProfile struct {
	ID                       int64           `json:"id" db:"id"`
	UserID                   int64           `json:"user_id" db:"user_id"`
	CareerID                 *int64          `json:"career_id" db:"career_id"`
	CurrentSalary            decimal.Decimal `json:"current_salary" db:"current_salary"`
	WeeklyIncome             decimal.Decimal `json:"weekly_income" db:"weekly_income"`
	NetWeeklyIncome          decimal.Decimal `json:"net_weekly_income" db:"net_weekly_income"`
	StudentLoanBalance       decimal.Decimal `json:"student_loan_balance" db:"student_loan_balance"`
	StudentLoanWeeklyPayment decimal.Decimal `json:"student_loan_weekly_payment" db:"student_loan_weekly_payment"`
	SavingsBalance           decimal.Decimal `json:"savings_balance" db:"savings_balance"`
	EmergencyFund            decimal.Decimal `json:"emergency_fund" db:"emergency_fund"`
	HousingType              string          `json:"housing_type" db:"housing_type"`
	HousingWeeklyCost        decimal.Decimal `json:"housing_weekly_cost" db:"housing_weekly_cost"`
	PropertyValue            decimal.Decimal `json:"property_value" db:"property_value"`
	WeeklyExpenses           decimal.Decimal `json:"weekly_expenses" db:"weekly_expenses"`
	WeeksPlayed              int             `json:"weeks_played" db:"weeks_played"`
	TotalTaxPaid             decimal.Decimal `json:"total_tax_paid" db:"total_tax_paid"`
	CreatedAt                time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at" db:"updated_at"`
}
