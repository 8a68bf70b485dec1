package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TxSalary      = "salary"
	TxTax         = "tax"
	TxHousing     = "housing"
	TxExpense     = "expense"
	TxStudentLoan = "student_loan"
	TxEvent       = "event"
	TxBuy         = "buy"
	TxSell        = "sell"
	TxLoanPayment = "loan_payment"
	TxDownPayment = "down_payment"
)

// Transaction represents an immutable simulated economic event
type Transaction struct {
	ID              int64               `json:"id" db:"id"`
	UserID          int64               `json:"user_id" db:"user_id"`
	PortfolioID     *int64              `json:"portfolio_id" db:"portfolio_id"`
	StockID         *int64              `json:"stock_id" db:"stock_id"`
	TransactionType string              `json:"transaction_type" db:"transaction_type"`
	Amount          decimal.Decimal     `json:"amount" db:"amount"`
	Description     string              `json:"description" db:"description"`
	Category        string              `json:"category" db:"category"`
	Shares          decimal.NullDecimal `json:"shares" db:"shares"`
	PricePerShare   decimal.NullDecimal `json:"price_per_share" db:"price_per_share"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
}
