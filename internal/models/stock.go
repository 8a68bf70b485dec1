package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is a tradable security with a simulated price
type Stock struct {
	ID                 int64           `json:"id" db:"id"`
	Symbol             string          `json:"symbol" db:"symbol"`
	CompanyName        string          `json:"company_name" db:"company_name"`
	CurrentPrice       decimal.Decimal `json:"current_price" db:"current_price"`
	DailyChange        decimal.Decimal `json:"daily_change" db:"daily_change"`
	DailyChangePercent decimal.Decimal `json:"daily_change_percent" db:"daily_change_percent"`
	MarketCap          decimal.Decimal `json:"market_cap" db:"market_cap"`
	DividendYield      decimal.Decimal `json:"dividend_yield" db:"dividend_yield"`
	LastUpdated        time.Time       `json:"last_updated" db:"last_updated"`
}
