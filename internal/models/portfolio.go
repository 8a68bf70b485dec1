package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is a student's brokerage account
type Portfolio struct {
	ID            int64           `json:"id" db:"id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	Name          string          `json:"name" db:"name"`
	CashBalance   decimal.Decimal `json:"cash_balance" db:"cash_balance"`
	TotalInvested decimal.Decimal `json:"total_invested" db:"total_invested"`
	TotalValue    decimal.Decimal `json:"total_value" db:"total_value"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// Holding is a position in one stock
type Holding struct {
	ID           int64           `json:"id" db:"id"`
	PortfolioID  int64           `json:"portfolio_id" db:"portfolio_id"`
	StockID      int64           `json:"stock_id" db:"stock_id"`
	Shares       decimal.Decimal `json:"shares" db:"shares"`
	AveragePrice decimal.Decimal `json:"average_price" db:"average_price"`
	CurrentValue decimal.Decimal `json:"current_value" db:"current_value"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// HoldingWithStock is a holding joined with its stock
type HoldingWithStock struct {
	Holding
	Stock Stock `json:"stock"`
}

// PortfolioWithHoldings is a portfolio and all of its positions
type PortfolioWithHoldings struct {
	Portfolio
	Holdings []HoldingWithStock `json:"holdings"`
}
