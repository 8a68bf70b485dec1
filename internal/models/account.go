package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types
const (
	AccountChecking = "checking"
	AccountSavings  = "savings"
)

// BankAccount represents a simulated bank account
type BankAccount struct {
	ID               int64           `json:"id" db:"id"`
	UserID           int64           `json:"user_id" db:"user_id"`
	AccountNumber    string          `json:"account_number" db:"account_number"`
	AccountType      string          `json:"account_type" db:"account_type"`
	AccountName      string          `json:"account_name" db:"account_name"`
	BankName         string          `json:"bank_name" db:"bank_name"`
	CurrentBalance   decimal.Decimal `json:"current_balance" db:"current_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance" db:"available_balance"`
	InterestRate     decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	MinimumBalance   decimal.Decimal `json:"minimum_balance" db:"minimum_balance"`
	IsPrimary        bool            `json:"is_primary" db:"is_primary"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// BankTransaction is an immutable posting against a bank account
type BankTransaction struct {
	ID              int64           `json:"id" db:"id"`
	AccountID       int64           `json:"account_id" db:"account_id"`
	TransactionType string          `json:"transaction_type" db:"transaction_type"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Description     string          `json:"description" db:"description"`
	Category        string          `json:"category" db:"category"`
	Status          string          `json:"status" db:"status"`
	BalanceAfter    decimal.Decimal `json:"balance_after" db:"balance_after"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
}
