package finance

import (
	"math"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/shopspring/decimal"
)

// AmortizedPayment returns the constant monthly payment that retires principal
// over termMonths at annualRate (a fraction, 0.065 = 6.5%):
//
//	payment = P * r(1+r)^n / ((1+r)^n - 1),  r = annualRate / 12
//
// A zero rate splits the principal evenly. The result is not rounded.
func AmortizedPayment(principal, annualRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, apperr.InvalidArgument("term must be positive, got %d", termMonths)
	}
	if principal.IsNegative() {
		return decimal.Zero, apperr.InvalidArgument("principal must not be negative")
	}
	if annualRate.IsNegative() {
		return decimal.Zero, apperr.InvalidArgument("interest rate must not be negative")
	}

	n := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return principal.Div(n), nil
	}

	// The power is taken in float64; everything else stays decimal.
	r := annualRate.Div(monthsPerYear)
	factor := decimal.NewFromFloat(math.Pow(1+r.InexactFloat64(), float64(termMonths)))
	return principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1))), nil
}

// LoanQuote summarises a loan for the calculator endpoint.
type LoanQuote struct {
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	LoanType       string          `json:"loan_type"`
}

// QuoteLoan computes the rounded monthly payment, total paid and total interest.
func QuoteLoan(amount, annualRate decimal.Decimal, termMonths int, loanType string) (LoanQuote, error) {
	payment, err := AmortizedPayment(amount, annualRate, termMonths)
	if err != nil {
		return LoanQuote{}, err
	}
	payment = RoundCents(payment)
	totalPaid := payment.Mul(decimal.NewFromInt(int64(termMonths)))

	return LoanQuote{
		LoanAmount:     amount,
		AnnualRate:     annualRate,
		TermMonths:     termMonths,
		MonthlyPayment: payment,
		TotalPaid:      RoundCents(totalPaid),
		TotalInterest:  RoundCents(totalPaid.Sub(amount)),
		LoanType:       loanType,
	}, nil
}

// MonthlyInterest is one month of interest on balance, in cents.
func MonthlyInterest(balance, annualRate decimal.Decimal) decimal.Decimal {
	return RoundCents(balance.Mul(annualRate).Div(monthsPerYear))
}

// PaymentSplit is how one payment is applied to a loan.
type PaymentSplit struct {
	Amount       decimal.Decimal
	Interest     decimal.Decimal
	Principal    decimal.Decimal
	BalanceAfter decimal.Decimal
}

// SplitPayment applies amount to balance: interest first, the rest to principal.
// Payments larger than balance plus interest are reduced to the payoff amount.
func SplitPayment(balance, annualRate, amount decimal.Decimal) (PaymentSplit, error) {
	if !amount.IsPositive() {
		return PaymentSplit{}, apperr.InvalidArgument("payment amount must be positive")
	}
	if !balance.IsPositive() {
		return PaymentSplit{}, apperr.InvalidArgument("loan is already paid off")
	}

	interest := MonthlyInterest(balance, annualRate)
	if payoff := balance.Add(interest); amount.GreaterThan(payoff) {
		amount = payoff
	}
	if amount.LessThanOrEqual(interest) {
		return PaymentSplit{}, apperr.InvalidArgument("payment %s does not cover interest %s", amount.StringFixed(2), interest.StringFixed(2))
	}

	principal := amount.Sub(interest)
	return PaymentSplit{
		Amount:       amount,
		Interest:     interest,
		Principal:    principal,
		BalanceAfter: balance.Sub(principal),
	}, nil
}

var (
	cardMinimumRate  = decimal.RequireFromString("0.03")
	cardMinimumFloor = decimal.NewFromInt(25)
)

// CreditCardMinimum is 3% of the balance, at least 25, never more than the balance.
func CreditCardMinimum(balance decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	minimum := decimal.Max(RoundCents(balance.Mul(cardMinimumRate)), cardMinimumFloor)
	return decimal.Min(minimum, balance)
}
