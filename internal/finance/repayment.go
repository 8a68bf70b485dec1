package finance

import "github.com/shopspring/decimal"

var (
	// StudentLoanThreshold is the annual income below which nothing is repaid.
	StudentLoanThreshold = decimal.NewFromInt(22828)
	// StudentLoanRate is the share of income above the threshold that is repaid.
	StudentLoanRate = decimal.RequireFromString("0.12")
)

// IncomeContingentRepayment is the annual student loan levy on income. It does
// not amortize: the balance shrinks only as fast as the levy allows.
func IncomeContingentRepayment(balance, annualIncome decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() || annualIncome.LessThan(StudentLoanThreshold) {
		return decimal.Zero
	}
	return annualIncome.Sub(StudentLoanThreshold).Mul(StudentLoanRate)
}

// WeeklyStudentLoanPayment is a week of the levy, capped at the outstanding balance.
func WeeklyStudentLoanPayment(balance, annualIncome decimal.Decimal) decimal.Decimal {
	payment := RoundCents(Weekly(IncomeContingentRepayment(balance, annualIncome)))
	return decimal.Min(payment, decimal.Max(balance, decimal.Zero))
}
