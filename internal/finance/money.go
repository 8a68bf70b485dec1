// Package finance holds the closed-form calculators and random draws behind the
// weekly simulation: tax, loan repayment, affordability, credit scoring, event
// sampling and price movement.
package finance

import "github.com/shopspring/decimal"

var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Random is the source of uniform draws in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Weekly converts an annual amount to a weekly one.
func Weekly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(weeksPerYear)
}

func uniform(rng Random, lo, hi decimal.Decimal) decimal.Decimal {
	return lo.Add(hi.Sub(lo).Mul(decimal.NewFromFloat(rng.Float64())))
}

func uniformFloat(rng Random, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func intBetween(rng Random, lo, hi int) int {
	n := lo + int(rng.Float64()*float64(hi-lo+1))
	if n > hi {
		return hi
	}
	return n
}
