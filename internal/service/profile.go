package service

import (
	"context"
	"errors"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/finance"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
)

// ProfileUpdate holds the optional profile fields a student may edit
type ProfileUpdate struct {
	CareerID          *int64
	CurrentSalary     *decimal.Decimal
	HousingType       *string
	HousingWeeklyCost *decimal.Decimal
	WeeklyExpenses    *decimal.Decimal
}

func (s *Service) createProfile(ctx context.Context, q *repository.Queries, userID int64) (*models.FinancialProfile, error) {
	now := s.clock()
	profile := &models.FinancialProfile{
		UserID:      userID,
		HousingType: models.HousingRenting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := q.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the student's profile, creating an empty one on first access
func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.FinancialProfile, error) {
	var profile *models.FinancialProfile
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		var err error
		profile, err = q.GetProfileByUser(ctx, userID, false)
		if errors.Is(err, apperr.ErrNotFound) {
			profile, err = s.createProfile(ctx, q, userID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a partial profile edit. Choosing a career sets the salary
// to the middle of its range, recomputes weekly income and takes on the career's
// student loan.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*models.FinancialProfile, error) {
	var profile *models.FinancialProfile
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		var err error
		if profile, err = q.GetProfileByUser(ctx, userID, true); err != nil {
			return err
		}

		if in.CurrentSalary != nil {
			if in.CurrentSalary.IsNegative() {
				return apperr.InvalidArgument("salary must not be negative")
			}
			profile.CurrentSalary = *in.CurrentSalary
		}
		if in.HousingType != nil {
			switch *in.HousingType {
			case models.HousingRenting, models.HousingMortgage, models.HousingOwned:
				profile.HousingType = *in.HousingType
			default:
				return apperr.InvalidArgument("unknown housing type %q", *in.HousingType)
			}
		}
		if in.HousingWeeklyCost != nil {
			if in.HousingWeeklyCost.IsNegative() {
				return apperr.InvalidArgument("housing cost must not be negative")
			}
			profile.HousingWeeklyCost = *in.HousingWeeklyCost
		}
		if in.WeeklyExpenses != nil {
			if in.WeeklyExpenses.IsNegative() {
				return apperr.InvalidArgument("weekly expenses must not be negative")
			}
			profile.WeeklyExpenses = *in.WeeklyExpenses
		}
		if in.CareerID != nil {
			career, err := q.GetCareer(ctx, *in.CareerID)
			if err != nil {
				return err
			}
			profile.CareerID = &career.ID
			profile.CurrentSalary = career.MidSalary()
			if career.RequiresStudentLoan {
				profile.StudentLoanBalance = career.StudentLoanAmount
			}
		}
		applyIncome(profile)

		profile.UpdatedAt = s.clock()
		return q.UpdateProfile(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Profile %d updated for user %d", profile.ID, userID)
	return profile, nil
}

// applyIncome derives the weekly figures from the annual salary
func applyIncome(p *models.FinancialProfile) {
	p.WeeklyIncome = finance.RoundCents(finance.Weekly(p.CurrentSalary))
	weeklyTax := finance.RoundCents(finance.Weekly(finance.AnnualTax(p.CurrentSalary)))
	p.NetWeeklyIncome = p.WeeklyIncome.Sub(weeklyTax)
	p.StudentLoanWeeklyPayment = finance.WeeklyStudentLoanPayment(p.StudentLoanBalance, p.CurrentSalary)
}
