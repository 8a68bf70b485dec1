package models

import "github.com/shopspring/decimal"

// TriggeredEvent is a financial event that fired during a simulated week
type TriggeredEvent struct {
	EventID   int64           `json:"event_id"`
	Title     string          `json:"title"`
	EventType string          `json:"event_type"`
	Amount    decimal.Decimal `json:"amount"` // signed impact
}

// WeeklySimulationResult is the outcome of advancing a profile by one week
type WeeklySimulationResult struct {
	GrossIncome       decimal.Decimal  `json:"gross_income"`
	Tax               decimal.Decimal  `json:"tax_amount"`
	NetIncome         decimal.Decimal  `json:"net_income"`
	LoanPayment       decimal.Decimal  `json:"student_loan_payment"`
	HousingCost       decimal.Decimal  `json:"housing_cost"`
	OtherExpenses     decimal.Decimal  `json:"other_expenses"`
	EventImpact       decimal.Decimal  `json:"event_impact"`
	Remaining         decimal.Decimal  `json:"remaining_amount"`
	Events            []TriggeredEvent `json:"events"`
	NewSavingsBalance decimal.Decimal  `json:"new_savings_balance"`
	NewLoanBalance    decimal.Decimal  `json:"new_student_loan_balance"`
	WeeksPlayed       int              `json:"weeks_played"`
}

// FinancialSummary represents a student's banking overview
type FinancialSummary struct {
	TotalCash           decimal.Decimal  `json:"total_cash"`
	TotalDebt           decimal.Decimal  `json:"total_debt"`
	NetWorth            decimal.Decimal  `json:"net_worth"`
	MonthlyDebtPayments decimal.Decimal  `json:"monthly_debt_payments"`
	CreditScore         *int             `json:"credit_score"`
	NumberOfAccounts    int              `json:"number_of_accounts"`
	NumberOfLoans       int              `json:"number_of_loans"`
	DebtToIncomeRatio   *decimal.Decimal `json:"debt_to_income_ratio"`
}

// CreditReport is a credit score snapshot with its category and factor hints
type CreditReport struct {
	CreditScore
	Category     string            `json:"category"`
	ScoreFactors map[string]string `json:"score_factors"`
}
