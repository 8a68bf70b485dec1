package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/openbanqr/internal/finance"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
)

// AdvanceWeek simulates one week for a profile: income, tax, student loan,
// housing, expenses and random events. The profile update and every ledger
// entry commit together or not at all.
func (s *Service) AdvanceWeek(ctx context.Context, profileID int64) (*models.WeeklySimulationResult, error) {
	var (
		result *models.WeeklySimulationResult
		user   *models.User
	)
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		profile, err := q.GetProfile(ctx, profileID, true)
		if err != nil {
			return err
		}
		if user, err = q.GetUser(ctx, profile.UserID); err != nil {
			return err
		}
		defs, err := q.ListActiveEvents(ctx)
		if err != nil {
			return err
		}

		now := s.clock()
		result = simulateWeek(profile, finance.SampleEvents(s.rng, defs))
		profile.UpdatedAt = now
		if err := q.UpdateProfile(ctx, profile); err != nil {
			return err
		}
		for _, tx := range weekTransactions(profile.UserID, result, now) {
			if err := q.CreateTransaction(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Week %d simulated for profile %d", result.WeeksPlayed, profileID)

	if s.notifier != nil {
		if err := s.notifier.WeeklyStatement(ctx, user, result); err != nil {
			s.log.Warnf("Failed to send weekly statement to user %d: %v", user.ID, err)
		}
	}
	return result, nil
}

// AdvanceWeekForUser simulates a week for the student's own profile
func (s *Service) AdvanceWeekForUser(ctx context.Context, userID int64) (*models.WeeklySimulationResult, error) {
	q := s.repo.Queries()
	if _, err := s.student(ctx, q, userID); err != nil {
		return nil, err
	}
	profile, err := q.GetProfileByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return s.AdvanceWeek(ctx, profile.ID)
}

// simulateWeek applies one week to the profile in memory and reports the breakdown.
// A negative remainder is absorbed: savings never decrease.
func simulateWeek(p *models.FinancialProfile, events []models.TriggeredEvent) *models.WeeklySimulationResult {
	gross := finance.RoundCents(finance.Weekly(p.CurrentSalary))
	tax := finance.RoundCents(finance.Weekly(finance.AnnualTax(p.CurrentSalary)))
	loanPayment := finance.WeeklyStudentLoanPayment(p.StudentLoanBalance, p.CurrentSalary)

	net := gross.Sub(tax).Sub(loanPayment)
	impact := finance.EventImpact(events)
	remaining := net.Sub(p.HousingWeeklyCost).Sub(p.WeeklyExpenses).Add(impact)

	p.WeeksPlayed++
	p.TotalTaxPaid = p.TotalTaxPaid.Add(tax)
	p.SavingsBalance = p.SavingsBalance.Add(decimal.Max(decimal.Zero, remaining))
	p.StudentLoanBalance = decimal.Max(decimal.Zero, p.StudentLoanBalance.Sub(loanPayment))
	p.WeeklyIncome = gross
	p.NetWeeklyIncome = gross.Sub(tax)
	p.StudentLoanWeeklyPayment = finance.WeeklyStudentLoanPayment(p.StudentLoanBalance, p.CurrentSalary)

	if events == nil {
		events = []models.TriggeredEvent{}
	}
	return &models.WeeklySimulationResult{
		GrossIncome:       gross,
		Tax:               tax,
		NetIncome:         net,
		LoanPayment:       loanPayment,
		HousingCost:       p.HousingWeeklyCost,
		OtherExpenses:     p.WeeklyExpenses,
		EventImpact:       impact,
		Remaining:         remaining,
		Events:            events,
		NewSavingsBalance: p.SavingsBalance,
		NewLoanBalance:    p.StudentLoanBalance,
		WeeksPlayed:       p.WeeksPlayed,
	}
}

// weekTransactions is the audit trail of one simulated week
func weekTransactions(userID int64, r *models.WeeklySimulationResult, at time.Time) []*models.Transaction {
	entry := func(kind string, amount decimal.Decimal, description, category string) *models.Transaction {
		return &models.Transaction{
			UserID:          userID,
			TransactionType: kind,
			Amount:          amount,
			Description:     description,
			Category:        category,
			CreatedAt:       at,
		}
	}

	txs := []*models.Transaction{
		entry(models.TxSalary, r.GrossIncome, "Weekly salary", "income"),
		entry(models.TxTax, r.Tax.Neg(), "PAYE tax", "tax"),
		entry(models.TxHousing, r.HousingCost.Neg(), "Housing cost", "housing"),
		entry(models.TxExpense, r.OtherExpenses.Neg(), "Other expenses", "expense"),
	}
	if r.LoanPayment.IsPositive() {
		txs = append(txs, entry(models.TxStudentLoan, r.LoanPayment.Neg(), "Student loan payment", "debt"))
	}
	for _, e := range r.Events {
		txs = append(txs, entry(models.TxEvent, e.Amount, fmt.Sprintf("Event: %s", e.Title), e.EventType))
	}
	return txs
}
