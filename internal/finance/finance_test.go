package finance

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// scripted replays fixed draws, cycling when exhausted.
type scripted struct {
	vals []float64
	i    int
}

func (s *scripted) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestAnnualTax(t *testing.T) {
	tests := []struct {
		income string
		want   string
	}{
		{"0", "0"},
		{"-100", "0"},
		{"10000", "1050"},
		{"14000", "1470"},
		{"48000", "7420"},
		{"65000", "12520"},
		{"70000", "14020"},
		{"180000", "50320"},
		{"200000", "58120"},
	}
	for _, tt := range tests {
		t.Run(tt.income, func(t *testing.T) {
			got := AnnualTax(d(tt.income))
			assert.True(t, d(tt.want).Equal(got), "AnnualTax(%s) = %s, want %s", tt.income, got, tt.want)
		})
	}
}

func TestAnnualTaxContinuousAtBoundaries(t *testing.T) {
	cent := d("0.01")
	for _, b := range []string{"14000", "48000", "70000", "180000"} {
		at := AnnualTax(d(b))
		above := AnnualTax(d(b).Add(cent))
		jump := above.Sub(at)
		assert.True(t, jump.IsPositive(), "tax must increase past %s", b)
		assert.True(t, jump.LessThanOrEqual(cent.Mul(d("0.39"))), "tax jumps by %s at %s", jump, b)
	}
}

func TestAmortizedPayment(t *testing.T) {
	t.Run("zero rate splits evenly", func(t *testing.T) {
		for _, n := range []int{1, 7, 12, 360} {
			got, err := AmortizedPayment(d("12000"), decimal.Zero, n)
			require.NoError(t, err)
			assert.True(t, d("12000").Div(decimal.NewFromInt(int64(n))).Equal(got))
		}
	})

	t.Run("thirty year mortgage", func(t *testing.T) {
		got, err := AmortizedPayment(d("200000"), d("0.065"), 360)
		require.NoError(t, err)
		assert.Equal(t, "1264.14", got.StringFixed(2))
	})

	t.Run("zero term is rejected", func(t *testing.T) {
		_, err := AmortizedPayment(d("1000"), d("0.05"), 0)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	})

	t.Run("negative inputs are rejected", func(t *testing.T) {
		_, err := AmortizedPayment(d("-1"), d("0.05"), 12)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
		_, err = AmortizedPayment(d("1000"), d("-0.05"), 12)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	})

	t.Run("payments cover principal", func(t *testing.T) {
		for _, p := range []string{"500", "10000", "350000"} {
			for _, r := range []string{"0", "0.01", "0.065", "0.2"} {
				for _, n := range []int{1, 12, 60, 360} {
					got, err := AmortizedPayment(d(p), d(r), n)
					require.NoError(t, err)
					assert.True(t, got.IsPositive())
					total := got.Mul(decimal.NewFromInt(int64(n)))
					assert.True(t, total.Round(6).GreaterThanOrEqual(d(p)), "P=%s r=%s n=%d total=%s", p, r, n, total)
				}
			}
		}
	})
}

func TestQuoteLoan(t *testing.T) {
	q, err := QuoteLoan(d("10000"), d("0.05"), 36, models.LoanPersonal)
	require.NoError(t, err)
	assert.Equal(t, "299.71", q.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "10789.56", q.TotalPaid.StringFixed(2))
	assert.Equal(t, "789.56", q.TotalInterest.StringFixed(2))
	assert.Equal(t, models.LoanPersonal, q.LoanType)
}

func TestSplitPayment(t *testing.T) {
	split, err := SplitPayment(d("1000"), d("0.12"), d("100"))
	require.NoError(t, err)
	assert.Equal(t, "10.00", split.Interest.StringFixed(2))
	assert.Equal(t, "90.00", split.Principal.StringFixed(2))
	assert.Equal(t, "910.00", split.BalanceAfter.StringFixed(2))

	payoff, err := SplitPayment(d("1000"), d("0.12"), d("5000"))
	require.NoError(t, err)
	assert.Equal(t, "1010.00", payoff.Amount.StringFixed(2))
	assert.True(t, payoff.BalanceAfter.IsZero())

	_, err = SplitPayment(d("1000"), d("0.12"), d("5"))
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	_, err = SplitPayment(decimal.Zero, d("0.12"), d("5"))
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestCreditCardMinimum(t *testing.T) {
	assert.Equal(t, "25.00", CreditCardMinimum(d("100")).StringFixed(2))
	assert.Equal(t, "60.00", CreditCardMinimum(d("2000")).StringFixed(2))
	assert.Equal(t, "10.00", CreditCardMinimum(d("10")).StringFixed(2))
	assert.True(t, CreditCardMinimum(decimal.Zero).IsZero())
}

func TestStudentLoanRepayment(t *testing.T) {
	assert.Equal(t, "5060.64", IncomeContingentRepayment(d("50000"), d("65000")).StringFixed(2))
	assert.Equal(t, "97.32", WeeklyStudentLoanPayment(d("50000"), d("65000")).StringFixed(2))
	assert.True(t, IncomeContingentRepayment(d("50000"), d("20000")).IsZero(), "below threshold")
	assert.True(t, IncomeContingentRepayment(decimal.Zero, d("65000")).IsZero(), "no balance")
	assert.Equal(t, "50.00", WeeklyStudentLoanPayment(d("50"), d("65000")).StringFixed(2), "capped at balance")
}

func TestAffordability(t *testing.T) {
	t.Run("zero rate uses straight line", func(t *testing.T) {
		res, err := Affordability(AffordabilityInput{
			AnnualIncome: d("120000"), DownPayment: d("50000"), InterestRate: decimal.Zero, TermYears: 30,
		})
		require.NoError(t, err)
		assert.Equal(t, "2800.00", res.MaxMonthlyPayment.StringFixed(2))
		assert.Equal(t, "1008000.00", res.MaxLoanAmount.StringFixed(2))
		assert.Equal(t, "1058000.00", res.MaxHomePrice.StringFixed(2))
		assert.Equal(t, "10000.00", res.MonthlyIncome.StringFixed(2))
	})

	t.Run("back end ratio binds with existing debt", func(t *testing.T) {
		res, err := Affordability(AffordabilityInput{
			AnnualIncome: d("120000"), MonthlyDebtPayments: d("1500"), InterestRate: decimal.Zero, TermYears: 30,
		})
		require.NoError(t, err)
		assert.Equal(t, "2100.00", res.MaxMonthlyPayment.StringFixed(2))
	})

	t.Run("amortized inversion", func(t *testing.T) {
		res, err := Affordability(AffordabilityInput{
			AnnualIncome: d("120000"), InterestRate: d("0.065"), TermYears: 30,
		})
		require.NoError(t, err)
		assert.InDelta(t, 376541.75, res.MaxLoanAmount.InexactFloat64(), 0.05)
		assert.True(t, res.MaxHomePrice.Equal(res.MaxLoanAmount))
	})

	t.Run("debt above ceiling affords nothing", func(t *testing.T) {
		res, err := Affordability(AffordabilityInput{
			AnnualIncome: d("60000"), MonthlyDebtPayments: d("5000"), DownPayment: d("10000"), InterestRate: d("0.05"), TermYears: 30,
		})
		require.NoError(t, err)
		assert.True(t, res.MaxLoanAmount.IsZero())
		assert.Equal(t, "10000.00", res.MaxHomePrice.StringFixed(2))
	})

	t.Run("zero term", func(t *testing.T) {
		_, err := Affordability(AffordabilityInput{AnnualIncome: d("1"), TermYears: 0})
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	})
}

func TestMortgage(t *testing.T) {
	in := MortgageInput{
		HomePrice:       d("400000"),
		DownPayment:     d("80000"),
		InterestRate:    d("0.065"),
		TermYears:       30,
		PropertyTaxRate: d("0.012"),
		InsuranceAnnual: d("1200"),
	}
	res, err := Mortgage(in)
	require.NoError(t, err)
	assert.Equal(t, "320000.00", res.LoanAmount.StringFixed(2))
	assert.Equal(t, "2022.62", res.MonthlyPrincipalInterest.StringFixed(2))
	assert.Equal(t, "400.00", res.MonthlyPropertyTax.StringFixed(2))
	assert.Equal(t, "100.00", res.MonthlyInsurance.StringFixed(2))
	assert.True(t, res.MonthlyPMI.IsZero(), "20% down carries no PMI")
	assert.Equal(t, "2522.62", res.TotalMonthlyPayment.StringFixed(2))
	assert.Equal(t, "80.00", res.LoanToValue.StringFixed(2))

	in.DownPayment = d("40000")
	res, err = Mortgage(in)
	require.NoError(t, err)
	assert.Equal(t, "150.00", res.MonthlyPMI.StringFixed(2))

	in.DownPayment = d("500000")
	_, err = Mortgage(in)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestCreditScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no history", func(t *testing.T) {
		assert.Equal(t, 650, CreditScore(nil, now))
	})

	t.Run("single seasoned loan", func(t *testing.T) {
		history := []LoanHistory{{
			LoanType:       models.LoanPersonal,
			CurrentBalance: d("5000"),
			CreatedAt:      now.AddDate(0, 0, -400),
			Payments:       10,
			OnTimePayments: 10,
		}}
		// 35 + 25 + 400/30/120*15 + 2.5 + 10 = 74.17 -> 707
		assert.Equal(t, 707, CreditScore(history, now))
	})

	t.Run("always within range", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		types := []string{models.LoanStudent, models.LoanPersonal, models.LoanAuto, models.LoanCreditCard, models.LoanMortgage}
		for i := 0; i < 200; i++ {
			n := 1 + rng.IntN(6)
			history := make([]LoanHistory, n)
			for j := range history {
				payments := rng.IntN(50)
				history[j] = LoanHistory{
					LoanType:       types[rng.IntN(len(types))],
					CreditLimit:    decimal.NewFromInt(int64(rng.IntN(10000))),
					CurrentBalance: decimal.NewFromInt(int64(rng.IntN(20000))),
					CreatedAt:      now.AddDate(0, 0, -rng.IntN(6000)),
					Payments:       payments,
					OnTimePayments: rng.IntN(payments + 1),
				}
			}
			score := CreditScore(history, now)
			assert.GreaterOrEqual(t, score, 300)
			assert.LessOrEqual(t, score, 850)
		}
	})

	t.Run("utilization", func(t *testing.T) {
		history := []LoanHistory{{LoanType: models.LoanCreditCard, CreditLimit: d("1000"), CurrentBalance: d("250")}}
		assert.Equal(t, "25.00", CreditUtilization(history).StringFixed(2))
		assert.True(t, CreditUtilization(nil).IsZero())
	})
}

func TestScoreCategory(t *testing.T) {
	assert.Equal(t, "Exceptional", ScoreCategory(810))
	assert.Equal(t, "Very Good", ScoreCategory(740))
	assert.Equal(t, "Good", ScoreCategory(700))
	assert.Equal(t, "Fair", ScoreCategory(580))
	assert.Equal(t, "Poor", ScoreCategory(300))
}

func TestSampleEvents(t *testing.T) {
	defs := []models.FinancialEvent{
		{ID: 1, Title: "Bonus", EventType: models.EventBonus, AmountMin: d("100"), AmountMax: d("200"), Probability: 0.5},
		{ID: 2, Title: "Parking Fine", EventType: models.EventFine, AmountMin: d("50"), AmountMax: d("50"), Probability: 0.1},
		{ID: 3, Title: "Freelance", EventType: models.EventOpportunity, AmountMin: d("10"), AmountMax: d("20"), Probability: 0.2},
	}

	t.Run("several events fire in one week", func(t *testing.T) {
		rng := &scripted{vals: []float64{0.2, 0.05, 0.9, 0.5, 0.9}}
		events := SampleEvents(rng, defs)
		require.Len(t, events, 2)
		assert.Equal(t, "150.00", events[0].Amount.StringFixed(2))
		assert.Equal(t, "-50.00", events[1].Amount.StringFixed(2))
		assert.Equal(t, "100.00", EventImpact(events).StringFixed(2))
	})

	t.Run("nothing fires", func(t *testing.T) {
		events := SampleEvents(&scripted{vals: []float64{0.99}}, defs)
		assert.Empty(t, events)
		assert.True(t, EventImpact(events).IsZero())
	})
}

func TestRandomWalk(t *testing.T) {
	move := RandomWalk(&scripted{vals: []float64{0.75}}, d("100"), DefaultVolatility)
	assert.Equal(t, "101.50", move.Price.StringFixed(2))
	assert.Equal(t, "1.50", move.Change.StringFixed(2))
	assert.Equal(t, "1.50", move.ChangePercent.StringFixed(2))

	floored := RandomWalk(&scripted{vals: []float64{0}}, d("1"), 1.0)
	assert.Equal(t, "0.01", floored.Price.StringFixed(2))
}

func TestSimulatedMarket(t *testing.T) {
	data := SimulateMarket(&scripted{vals: []float64{0.5}}, "California", "condo")
	assert.Equal(t, int64(450000), data.MedianHomePrice)
	assert.Equal(t, "Warm", data.MarketTemperature)

	listings := SimulateListings(rand.New(rand.NewPCG(7, 7)), ListingFilter{MinPrice: 100000, MaxPrice: 300000})
	assert.GreaterOrEqual(t, len(listings), 10)
	assert.LessOrEqual(t, len(listings), 25)
	for i, l := range listings {
		assert.GreaterOrEqual(t, l.Price, int64(100000))
		assert.LessOrEqual(t, l.Price, int64(300000))
		if i > 0 {
			assert.LessOrEqual(t, listings[i-1].Price, l.Price)
		}
	}
}
