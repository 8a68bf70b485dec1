package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan types
const (
	LoanStudent    = "student"
	LoanPersonal   = "personal"
	LoanAuto       = "auto"
	LoanCreditCard = "credit_card"
	LoanMortgage   = "mortgage"
)

// Loan statuses
const (
	LoanActive  = "active"
	LoanPaidOff = "paid_off"
)

// Loan represents a loan, credit card or mortgage
type Loan struct {
	ID             int64           `json:"id" db:"id"`
	UserID         int64           `json:"user_id" db:"user_id"`
	LoanType       string          `json:"loan_type" db:"loan_type"`
	Principal      decimal.Decimal `json:"principal" db:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	TermMonths     int             `json:"term_months" db:"term_months"`
	CurrentBalance decimal.Decimal `json:"current_balance" db:"current_balance"`
	MinimumPayment decimal.Decimal `json:"minimum_payment" db:"minimum_payment"`
	CreditLimit    decimal.Decimal `json:"credit_limit" db:"credit_limit"`
	PropertyValue  decimal.Decimal `json:"property_value" db:"property_value"`
	Status         string          `json:"status" db:"status"`
	NextDueDate    time.Time       `json:"next_due_date" db:"next_due_date"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// LoanPayment is an immutable ledger entry for one payment
type LoanPayment struct {
	ID               int64           `json:"id" db:"id"`
	LoanID           int64           `json:"loan_id" db:"loan_id"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	PrincipalPortion decimal.Decimal `json:"principal_portion" db:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion" db:"interest_portion"`
	BalanceAfter     decimal.Decimal `json:"balance_after" db:"balance_after"`
	OnTime           bool            `json:"on_time" db:"on_time"`
	PaidAt           time.Time       `json:"paid_at" db:"paid_at"`
}

// CreditScore is a point-in-time credit score snapshot
type CreditScore struct {
	ID                int64           `json:"id" db:"id"`
	UserID            int64           `json:"user_id" db:"user_id"`
	Score             int             `json:"score" db:"score"`
	ScoreRange        string          `json:"score_range" db:"score_range"`
	CreditUtilization decimal.Decimal `json:"credit_utilization" db:"credit_utilization"`
	TotalAccounts     int             `json:"total_accounts" db:"total_accounts"`
	OpenAccounts      int             `json:"open_accounts" db:"open_accounts"`
	ScoreDate         time.Time       `json:"score_date" db:"score_date"`
}
