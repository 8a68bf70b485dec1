package finance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCreditScore is given to users with no loan history.
const DefaultCreditScore = 650

const (
	minCreditScore = 300
	maxCreditScore = 850
)

// LoanHistory is what the score sees of one loan.
type LoanHistory struct {
	LoanType       string
	CreditLimit    decimal.Decimal
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	Payments       int
	OnTimePayments int
}

// CreditScore combines payment history (35), utilization (30), history length (15),
// credit mix (10) and new credit (10) into a 0-100 composite scaled onto 300-850.
func CreditScore(history []LoanHistory, now time.Time) int {
	if len(history) == 0 {
		return DefaultCreditScore
	}

	var payments, onTime int
	limit, used := decimal.Zero, decimal.Zero
	oldest := history[0].CreatedAt
	types := make(map[string]struct{})
	recent := 0
	for _, h := range history {
		payments += h.Payments
		onTime += h.OnTimePayments
		if h.LoanType == "credit_card" {
			limit = limit.Add(h.CreditLimit)
			used = used.Add(h.CurrentBalance)
		}
		if h.CreatedAt.Before(oldest) {
			oldest = h.CreatedAt
		}
		types[h.LoanType] = struct{}{}
		if now.Sub(h.CreatedAt) < 90*24*time.Hour {
			recent++
		}
	}

	paymentHistory := float64(onTime) / math.Max(float64(payments), 1) * 35

	utilization := 25.0
	if limit.IsPositive() {
		ratio := used.Div(limit).InexactFloat64()
		utilization = math.Max(0, (1-ratio)*30)
	}

	months := math.Floor(now.Sub(oldest).Hours()/24) / 30
	length := math.Min(15, months/120*15)
	if length < 0 {
		length = 0
	}

	mix := math.Min(10, float64(len(types))*2.5)
	newCredit := math.Max(0, 10-float64(recent)*2)

	composite := paymentHistory + utilization + length + mix + newCredit
	score := int(minCreditScore + composite/100*(maxCreditScore-minCreditScore))
	return max(minCreditScore, min(maxCreditScore, score))
}

// CreditUtilization is the percentage of credit-card limits in use, 0 without cards.
func CreditUtilization(history []LoanHistory) decimal.Decimal {
	limit, used := decimal.Zero, decimal.Zero
	for _, h := range history {
		if h.LoanType == "credit_card" {
			limit = limit.Add(h.CreditLimit)
			used = used.Add(h.CurrentBalance)
		}
	}
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return RoundCents(used.Div(limit).Mul(hundred))
}

// ScoreCategory names the band a score falls in.
func ScoreCategory(score int) string {
	switch {
	case score >= 800:
		return "Exceptional"
	case score >= 740:
		return "Very Good"
	case score >= 670:
		return "Good"
	case score >= 580:
		return "Fair"
	default:
		return "Poor"
	}
}
