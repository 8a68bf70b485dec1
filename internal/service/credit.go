package service

import (
	"context"
	"errors"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/finance"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
)

// creditScoreMaxAge is how long a snapshot is served before it is recomputed
const creditScoreMaxAge = 30 * 24 * time.Hour

// loanHistory gathers what the credit score sees of the user's loans
func loanHistory(ctx context.Context, q *repository.Queries, userID int64) ([]models.Loan, []finance.LoanHistory, error) {
	loans, err := q.ListLoans(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	stats, err := q.ListPaymentStats(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	byLoan := make(map[int64]repository.PaymentStats, len(stats))
	for _, st := range stats {
		byLoan[st.LoanID] = st
	}

	history := make([]finance.LoanHistory, 0, len(loans))
	for _, l := range loans {
		st := byLoan[l.ID]
		history = append(history, finance.LoanHistory{
			LoanType:       l.LoanType,
			CreditLimit:    l.CreditLimit,
			CurrentBalance: l.CurrentBalance,
			CreatedAt:      l.CreatedAt,
			Payments:       st.Total,
			OnTimePayments: st.OnTime,
		})
	}
	return loans, history, nil
}

// ComputeCreditScore scores the user's current loan and payment history
func (s *Service) ComputeCreditScore(ctx context.Context, userID int64) (int, error) {
	_, history, err := loanHistory(ctx, s.repo.Queries(), userID)
	if err != nil {
		return 0, err
	}
	return finance.CreditScore(history, s.clock()), nil
}

// CreditReport returns the latest snapshot, taking a new one when none exists
// or the latest is more than 30 days old.
func (s *Service) CreditReport(ctx context.Context, userID int64) (*models.CreditReport, error) {
	var snapshot *models.CreditScore
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		now := s.clock()
		latest, err := q.LatestCreditScore(ctx, userID)
		if err == nil && now.Sub(latest.ScoreDate) <= creditScoreMaxAge {
			snapshot = latest
			return nil
		}
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		loans, history, err := loanHistory(ctx, q, userID)
		if err != nil {
			return err
		}
		open := 0
		for _, l := range loans {
			if l.Status == models.LoanActive {
				open++
			}
		}
		snapshot = &models.CreditScore{
			UserID:            userID,
			Score:             finance.CreditScore(history, now),
			ScoreRange:        "FICO",
			CreditUtilization: finance.CreditUtilization(history),
			TotalAccounts:     len(loans),
			OpenAccounts:      open,
			ScoreDate:         now,
		}
		if err := q.CreateCreditScore(ctx, snapshot); err != nil {
			return err
		}
		s.log.Infof("Credit score %d recorded for user %d", snapshot.Score, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.CreditReport{
		CreditScore:  *snapshot,
		Category:     finance.ScoreCategory(snapshot.Score),
		ScoreFactors: scoreFactors(snapshot),
	}, nil
}

func scoreFactors(c *models.CreditScore) map[string]string {
	rate := func(ok bool, good, bad string) string {
		if ok {
			return good
		}
		return bad
	}
	return map[string]string{
		"payment_history":       rate(c.Score > finance.DefaultCreditScore, "Good", "Needs Improvement"),
		"credit_utilization":    rate(c.CreditUtilization.LessThan(decimal.NewFromInt(30)), "Good", "High"),
		"credit_history_length": rate(c.TotalAccounts > 2, "Good", "Short"),
		"credit_mix":            rate(c.TotalAccounts > 3, "Good", "Limited"),
		"new_credit":            "Good",
	}
}
