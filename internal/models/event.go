package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventBonus       = "bonus"
	EventFine        = "fine"
	EventEmergency   = "emergency"
	EventOpportunity = "opportunity"
)

// FinancialEvent is a random weekly event definition
type FinancialEvent struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	EventType   string          `json:"event_type" db:"event_type"`
	AmountMin   decimal.Decimal `json:"amount_min" db:"amount_min"`
	AmountMax   decimal.Decimal `json:"amount_max" db:"amount_max"`
	Probability float64         `json:"probability" db:"probability"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
