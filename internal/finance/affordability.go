package finance

import (
	"math"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/shopspring/decimal"
)

var (
	// FrontEndRatio caps housing payments as a share of gross monthly income.
	FrontEndRatio = decimal.RequireFromString("0.28")
	// BackEndRatio caps all debt payments as a share of gross monthly income.
	BackEndRatio = decimal.RequireFromString("0.36")

	// share of the housing payment left after property taxes and insurance
	principalInterestShare = decimal.RequireFromString("0.85")
	recommendedDownShare   = decimal.RequireFromString("0.2")
)

// AffordabilityInput describes a prospective buyer.
type AffordabilityInput struct {
	AnnualIncome        decimal.Decimal
	MonthlyDebtPayments decimal.Decimal
	DownPayment         decimal.Decimal
	InterestRate        decimal.Decimal
	TermYears           int
}

// AffordabilityResult is the largest purchase the buyer can sustain.
type AffordabilityResult struct {
	MaxHomePrice           decimal.Decimal `json:"max_home_price"`
	MaxLoanAmount          decimal.Decimal `json:"max_loan_amount"`
	MaxMonthlyPayment      decimal.Decimal `json:"max_monthly_payment"`
	RecommendedDownPayment decimal.Decimal `json:"recommended_down_payment"`
	FrontEndRatioUsed      decimal.Decimal `json:"front_end_ratio_used"`
	BackEndRatioUsed       decimal.Decimal `json:"back_end_ratio_used"`
	MonthlyIncome          decimal.Decimal `json:"monthly_income"`
}

// Affordability takes the lower of the front-end and back-end payment ceilings
// and inverts the annuity formula to find the largest loan that payment carries.
func Affordability(in AffordabilityInput) (AffordabilityResult, error) {
	if in.TermYears <= 0 {
		return AffordabilityResult{}, apperr.InvalidArgument("term must be positive, got %d years", in.TermYears)
	}
	if in.AnnualIncome.IsNegative() || in.MonthlyDebtPayments.IsNegative() || in.DownPayment.IsNegative() {
		return AffordabilityResult{}, apperr.InvalidArgument("income, debt payments and down payment must not be negative")
	}
	if in.InterestRate.IsNegative() {
		return AffordabilityResult{}, apperr.InvalidArgument("interest rate must not be negative")
	}

	monthlyIncome := in.AnnualIncome.Div(monthsPerYear)
	maxHousing := monthlyIncome.Mul(FrontEndRatio)
	maxAdditionalDebt := monthlyIncome.Mul(BackEndRatio).Sub(in.MonthlyDebtPayments)
	maxPayment := decimal.Max(decimal.Min(maxHousing, maxAdditionalDebt), decimal.Zero)

	payments := int64(in.TermYears) * 12
	var maxLoan decimal.Decimal
	if in.InterestRate.IsZero() {
		maxLoan = maxPayment.Mul(decimal.NewFromInt(payments))
	} else {
		r := in.InterestRate.Div(monthsPerYear)
		factor := decimal.NewFromFloat(math.Pow(1+r.InexactFloat64(), float64(payments)))
		adjusted := maxPayment.Mul(principalInterestShare)
		maxLoan = adjusted.Mul(factor.Sub(decimal.NewFromInt(1))).Div(r.Mul(factor))
	}

	maxPrice := maxLoan.Add(in.DownPayment)
	return AffordabilityResult{
		MaxHomePrice:           RoundCents(maxPrice),
		MaxLoanAmount:          RoundCents(maxLoan),
		MaxMonthlyPayment:      RoundCents(maxPayment),
		RecommendedDownPayment: RoundCents(maxPrice.Mul(recommendedDownShare)),
		FrontEndRatioUsed:      FrontEndRatio,
		BackEndRatioUsed:       BackEndRatio,
		MonthlyIncome:          RoundCents(monthlyIncome),
	}, nil
}
