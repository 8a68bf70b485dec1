package finance

import "github.com/shopspring/decimal"

// TaxBracket taxes income up to Ceiling at Rate. A zero Ceiling marks the top,
// open-ended bracket.
type TaxBracket struct {
	Ceiling decimal.Decimal
	Rate    decimal.Decimal
}

// TaxSchedule is a progressive schedule ordered by ascending ceiling.
type TaxSchedule []TaxBracket

// PAYESchedule is the simplified five-bracket schedule used by the simulation.
var PAYESchedule = TaxSchedule{
	{Ceiling: decimal.NewFromInt(14000), Rate: decimal.RequireFromString("0.105")},
	{Ceiling: decimal.NewFromInt(48000), Rate: decimal.RequireFromString("0.175")},
	{Ceiling: decimal.NewFromInt(70000), Rate: decimal.RequireFromString("0.30")},
	{Ceiling: decimal.NewFromInt(180000), Rate: decimal.RequireFromString("0.33")},
	{Rate: decimal.RequireFromString("0.39")},
}

// Tax returns the tax owed on annual income: the full tax of every bracket below
// plus the marginal rate on the excess over the current bracket's floor.
func (s TaxSchedule) Tax(income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}

	tax := decimal.Zero
	floor := decimal.Zero
	for _, b := range s {
		if b.Ceiling.IsZero() || income.LessThanOrEqual(b.Ceiling) {
			return tax.Add(income.Sub(floor).Mul(b.Rate))
		}
		tax = tax.Add(b.Ceiling.Sub(floor).Mul(b.Rate))
		floor = b.Ceiling
	}
	return tax
}

// AnnualTax applies PAYESchedule.
func AnnualTax(income decimal.Decimal) decimal.Decimal {
	return PAYESchedule.Tax(income)
}
