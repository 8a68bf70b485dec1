package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/finance"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
)

// DefaultMortgageRate is used when no rate is given and the key rate is unavailable
var DefaultMortgageRate = decimal.RequireFromString("0.065")

// AffordabilityRequest asks how much home the income supports. A nil rate means
// the current lending rate.
type AffordabilityRequest struct {
	AnnualIncome        decimal.Decimal
	MonthlyDebtPayments decimal.Decimal
	DownPayment         decimal.Decimal
	InterestRate        *decimal.Decimal
	TermYears           int
}

// defaultRate is the lending rate from the key rate, or DefaultMortgageRate
func (s *Service) defaultRate(ctx context.Context) decimal.Decimal {
	if s.rates == nil {
		return DefaultMortgageRate
	}
	quote, err := s.KeyRate(ctx)
	if err != nil {
		s.log.Warnf("Falling back to default mortgage rate: %v", err)
		return DefaultMortgageRate
	}
	return quote.LendingRate
}

// Affordability computes the maximum home price for the student
func (s *Service) Affordability(ctx context.Context, userID int64, in AffordabilityRequest) (finance.AffordabilityResult, error) {
	if _, err := s.student(ctx, s.repo.Queries(), userID); err != nil {
		return finance.AffordabilityResult{}, err
	}
	rate := s.defaultRate(ctx)
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}
	return finance.Affordability(finance.AffordabilityInput{
		AnnualIncome:        in.AnnualIncome,
		MonthlyDebtPayments: in.MonthlyDebtPayments,
		DownPayment:         in.DownPayment,
		InterestRate:        rate,
		TermYears:           in.TermYears,
	})
}

// MortgageCalculator prices a mortgage for the student
func (s *Service) MortgageCalculator(ctx context.Context, userID int64, in finance.MortgageInput) (finance.MortgageBreakdown, error) {
	if _, err := s.student(ctx, s.repo.Queries(), userID); err != nil {
		return finance.MortgageBreakdown{}, err
	}
	return finance.Mortgage(in)
}

// MarketData simulates local housing market statistics
func (s *Service) MarketData(location, propertyType string) finance.MarketData {
	return finance.SimulateMarket(s.rng, location, propertyType)
}

// Listings simulates homes for sale matching the filter
func (s *Service) Listings(ctx context.Context, userID int64, f finance.ListingFilter) ([]finance.Listing, error) {
	if _, err := s.student(ctx, s.repo.Queries(), userID); err != nil {
		return nil, err
	}
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return nil, apperr.InvalidArgument("min price above max price")
	}
	return finance.SimulateListings(s.rng, f), nil
}

// MortgageRequest buys a home with a mortgage
type MortgageRequest struct {
	HomePrice    decimal.Decimal
	DownPayment  decimal.Decimal
	InterestRate decimal.Decimal
	TermYears    int
}

// TakeMortgage pays the down payment from savings, opens a mortgage loan and
// moves the profile into mortgage housing at the weekly equivalent of the
// monthly payment.
func (s *Service) TakeMortgage(ctx context.Context, userID int64, in MortgageRequest) (*models.Loan, error) {
	breakdown, err := finance.Mortgage(finance.MortgageInput{
		HomePrice:    in.HomePrice,
		DownPayment:  in.DownPayment,
		InterestRate: in.InterestRate,
		TermYears:    in.TermYears,
	})
	if err != nil {
		return nil, err
	}

	var loan *models.Loan
	err = s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		profile, err := q.GetProfileByUser(ctx, userID, true)
		if err != nil {
			return err
		}
		if profile.HousingType == models.HousingMortgage {
			return apperr.Conflict("user %d already has a mortgage", userID)
		}
		if profile.SavingsBalance.LessThan(in.DownPayment) {
			return apperr.InsufficientFunds("down payment %s exceeds savings %s",
				in.DownPayment.StringFixed(2), profile.SavingsBalance.StringFixed(2))
		}

		now := s.clock()
		loan = &models.Loan{
			UserID:         userID,
			LoanType:       models.LoanMortgage,
			Principal:      breakdown.LoanAmount,
			InterestRate:   in.InterestRate,
			TermMonths:     in.TermYears * 12,
			CurrentBalance: breakdown.LoanAmount,
			MinimumPayment: breakdown.MonthlyPrincipalInterest,
			PropertyValue:  in.HomePrice,
			Status:         models.LoanActive,
			NextDueDate:    now.AddDate(0, 1, 0),
			CreatedAt:      now,
		}
		if err := q.CreateLoan(ctx, loan); err != nil {
			return err
		}

		profile.SavingsBalance = profile.SavingsBalance.Sub(in.DownPayment)
		profile.HousingType = models.HousingMortgage
		profile.HousingWeeklyCost = finance.RoundCents(breakdown.MonthlyPrincipalInterest.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(52)))
		profile.PropertyValue = in.HomePrice
		profile.UpdatedAt = now
		if err := q.UpdateProfile(ctx, profile); err != nil {
			return err
		}

		if in.DownPayment.IsPositive() {
			return q.CreateTransaction(ctx, &models.Transaction{
				UserID:          userID,
				TransactionType: models.TxDownPayment,
				Amount:          in.DownPayment.Neg(),
				Description:     fmt.Sprintf("Down payment on %s home", in.HomePrice.StringFixed(0)),
				Category:        "housing",
				CreatedAt:       now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Mortgage %d of %s opened for user %d", loan.ID, loan.Principal, userID)
	return loan, nil
}
