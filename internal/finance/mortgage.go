package finance

import (
	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/shopspring/decimal"
)

var pmiRate = decimal.RequireFromString("0.005")

// MortgageInput describes a home purchase for the mortgage calculator.
type MortgageInput struct {
	HomePrice       decimal.Decimal
	DownPayment     decimal.Decimal
	InterestRate    decimal.Decimal
	TermYears       int
	PropertyTaxRate decimal.Decimal
	InsuranceAnnual decimal.Decimal
	HOAMonthly      decimal.Decimal
}

// MortgageBreakdown is the monthly cost of owning the home.
type MortgageBreakdown struct {
	LoanAmount               decimal.Decimal `json:"loan_amount"`
	MonthlyPrincipalInterest decimal.Decimal `json:"monthly_principal_interest"`
	MonthlyPropertyTax       decimal.Decimal `json:"monthly_property_tax"`
	MonthlyInsurance         decimal.Decimal `json:"monthly_insurance"`
	MonthlyPMI               decimal.Decimal `json:"monthly_pmi"`
	MonthlyHOA               decimal.Decimal `json:"monthly_hoa"`
	TotalMonthlyPayment      decimal.Decimal `json:"total_monthly_payment"`
	TotalInterest            decimal.Decimal `json:"total_interest"`
	TotalPaid                decimal.Decimal `json:"total_paid"`
	DownPaymentPercentage    decimal.Decimal `json:"down_payment_percentage"`
	LoanToValue              decimal.Decimal `json:"loan_to_value"`
}

// Mortgage prices a purchase. PMI applies while the down payment is under 20%.
func Mortgage(in MortgageInput) (MortgageBreakdown, error) {
	if !in.HomePrice.IsPositive() {
		return MortgageBreakdown{}, apperr.InvalidArgument("home price must be positive")
	}
	if in.DownPayment.IsNegative() || in.DownPayment.GreaterThan(in.HomePrice) {
		return MortgageBreakdown{}, apperr.InvalidArgument("down payment must be between 0 and the home price")
	}

	loan := in.HomePrice.Sub(in.DownPayment)
	months := in.TermYears * 12
	payment, err := AmortizedPayment(loan, in.InterestRate, months)
	if err != nil {
		return MortgageBreakdown{}, err
	}
	payment = RoundCents(payment)

	propertyTax := in.HomePrice.Mul(in.PropertyTaxRate).Div(monthsPerYear)
	insurance := in.InsuranceAnnual.Div(monthsPerYear)
	pmi := decimal.Zero
	if in.DownPayment.LessThan(in.HomePrice.Mul(recommendedDownShare)) {
		pmi = loan.Mul(pmiRate).Div(monthsPerYear)
	}
	total := payment.Add(propertyTax).Add(insurance).Add(in.HOAMonthly).Add(pmi)
	totalPaid := payment.Mul(decimal.NewFromInt(int64(months)))

	return MortgageBreakdown{
		LoanAmount:               RoundCents(loan),
		MonthlyPrincipalInterest: payment,
		MonthlyPropertyTax:       RoundCents(propertyTax),
		MonthlyInsurance:         RoundCents(insurance),
		MonthlyPMI:               RoundCents(pmi),
		MonthlyHOA:               RoundCents(in.HOAMonthly),
		TotalMonthlyPayment:      RoundCents(total),
		TotalInterest:            RoundCents(totalPaid.Sub(loan)),
		TotalPaid:                RoundCents(totalPaid),
		DownPaymentPercentage:    RoundCents(in.DownPayment.Div(in.HomePrice).Mul(hundred)),
		LoanToValue:              RoundCents(loan.Div(in.HomePrice).Mul(hundred)),
	}, nil
}
