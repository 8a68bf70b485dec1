package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/Dan9191/openbanqr/internal/utils"
	"github.com/shopspring/decimal"
)

const bankName = "OpenBanqr Bank"

// account templates opened for every student on first access
var defaultAccounts = []models.BankAccount{
	{
		AccountType:      models.AccountChecking,
		AccountName:      "Primary Checking",
		CurrentBalance:   decimal.NewFromInt(1000),
		AvailableBalance: decimal.NewFromInt(1000),
		InterestRate:     decimal.RequireFromString("0.001"),
		IsPrimary:        true,
	},
	{
		AccountType:      models.AccountSavings,
		AccountName:      "Primary Savings",
		CurrentBalance:   decimal.NewFromInt(500),
		AvailableBalance: decimal.NewFromInt(500),
		InterestRate:     decimal.RequireFromString("0.015"),
		MinimumBalance:   decimal.NewFromInt(100),
	},
}

// accountPrefix keeps checking and savings numbers visually distinct
var accountPrefix = map[string]string{
	models.AccountChecking: "4010",
	models.AccountSavings:  "4020",
}

// ensureAccounts returns the student's accounts, opening the defaults when there are none
func (s *Service) ensureAccounts(ctx context.Context, q *repository.Queries, userID int64) ([]models.BankAccount, error) {
	accounts, err := q.ListAccounts(ctx, userID)
	if err != nil || len(accounts) > 0 {
		return accounts, err
	}

	now := s.clock()
	for _, tmpl := range defaultAccounts {
		account := tmpl
		account.UserID = userID
		account.BankName = bankName
		account.CreatedAt = now
		if account.AccountNumber, err = utils.GenerateAccountNumber(accountPrefix[account.AccountType], 12); err != nil {
			return nil, err
		}
		if err := q.CreateAccount(ctx, &account); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	s.log.Infof("Default bank accounts opened for user %d", userID)
	return accounts, nil
}

// ListAccounts returns the student's bank accounts
func (s *Service) ListAccounts(ctx context.Context, userID int64) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		var err error
		accounts, err = s.ensureAccounts(ctx, q, userID)
		return err
	})
	return accounts, err
}

// ListAccountTransactions returns the newest postings of one of the user's accounts
func (s *Service) ListAccountTransactions(ctx context.Context, userID, accountID int64, limit int) ([]models.BankTransaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	if limit > MaxTransactionLimit {
		limit = MaxTransactionLimit
	}
	q := s.repo.Queries()
	if _, err := q.GetAccount(ctx, accountID, userID, false); err != nil {
		return nil, err
	}
	return q.ListBankTransactions(ctx, accountID, limit)
}

// TransferInput moves money between two accounts of the same user
type TransferInput struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
	Description   string
}

// Transfer moves funds between the user's own accounts and posts a
// transaction on each side.
func (s *Service) Transfer(ctx context.Context, userID int64, in TransferInput) ([]models.BankTransaction, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.InvalidArgument("transfer amount must be positive")
	}
	if in.FromAccountID == in.ToAccountID {
		return nil, apperr.InvalidArgument("cannot transfer to the same account")
	}

	var posted []models.BankTransaction
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		// lock in id order so opposite transfers cannot deadlock
		first, second := in.FromAccountID, in.ToAccountID
		if second < first {
			first, second = second, first
		}
		a, err := q.GetAccount(ctx, first, userID, true)
		if err != nil {
			return err
		}
		b, err := q.GetAccount(ctx, second, userID, true)
		if err != nil {
			return err
		}
		from, to := a, b
		if from.ID != in.FromAccountID {
			from, to = b, a
		}

		if from.AvailableBalance.LessThan(in.Amount) {
			return apperr.InsufficientFunds("available balance %s", from.AvailableBalance.StringFixed(2))
		}
		from.CurrentBalance = from.CurrentBalance.Sub(in.Amount)
		from.AvailableBalance = from.AvailableBalance.Sub(in.Amount)
		to.CurrentBalance = to.CurrentBalance.Add(in.Amount)
		to.AvailableBalance = to.AvailableBalance.Add(in.Amount)
		if err := q.UpdateAccountBalance(ctx, from); err != nil {
			return err
		}
		if err := q.UpdateAccountBalance(ctx, to); err != nil {
			return err
		}

		now := s.clock()
		description := in.Description
		if description == "" {
			description = "Transfer between accounts"
		}
		posted = []models.BankTransaction{
			{
				AccountID: from.ID, TransactionType: "transfer", Amount: in.Amount.Neg(),
				Description: fmt.Sprintf("%s: to %s", description, to.AccountName), Category: "transfer",
				Status: "posted", BalanceAfter: from.CurrentBalance, TransactionDate: now,
			},
			{
				AccountID: to.ID, TransactionType: "transfer", Amount: in.Amount,
				Description: fmt.Sprintf("%s: from %s", description, from.AccountName), Category: "transfer",
				Status: "posted", BalanceAfter: to.CurrentBalance, TransactionDate: now,
			},
		}
		for i := range posted {
			if err := q.CreateBankTransaction(ctx, &posted[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Transferred %s from account %d to account %d", in.Amount, in.FromAccountID, in.ToAccountID)
	return posted, nil
}

// postToAccount moves money in or out of a locked account and records the posting
func postToAccount(ctx context.Context, q *repository.Queries, a *models.BankAccount, amount decimal.Decimal, kind, description, category string, now time.Time) error {
	a.CurrentBalance = a.CurrentBalance.Add(amount)
	a.AvailableBalance = a.AvailableBalance.Add(amount)
	if err := q.UpdateAccountBalance(ctx, a); err != nil {
		return err
	}
	return q.CreateBankTransaction(ctx, &models.BankTransaction{
		AccountID:       a.ID,
		TransactionType: kind,
		Amount:          amount,
		Description:     description,
		Category:        category,
		Status:          "posted",
		BalanceAfter:    a.CurrentBalance,
		TransactionDate: now,
	})
}

// FinancialSummary totals the student's cash, debt and debt service
func (s *Service) FinancialSummary(ctx context.Context, userID int64) (*models.FinancialSummary, error) {
	q := s.repo.Queries()
	if _, err := s.student(ctx, q, userID); err != nil {
		return nil, err
	}
	accounts, err := q.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	loans, err := q.ListLoans(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &models.FinancialSummary{
		NumberOfAccounts: len(accounts),
		NumberOfLoans:    len(loans),
	}
	for _, a := range accounts {
		summary.TotalCash = summary.TotalCash.Add(a.CurrentBalance)
	}
	for _, l := range loans {
		summary.TotalDebt = summary.TotalDebt.Add(l.CurrentBalance)
		summary.MonthlyDebtPayments = summary.MonthlyDebtPayments.Add(l.MinimumPayment)
	}
	summary.NetWorth = summary.TotalCash.Sub(summary.TotalDebt)
	summary.TotalCash = summary.TotalCash.Round(2)
	summary.TotalDebt = summary.TotalDebt.Round(2)
	summary.NetWorth = summary.NetWorth.Round(2)
	summary.MonthlyDebtPayments = summary.MonthlyDebtPayments.Round(2)

	if latest, err := q.LatestCreditScore(ctx, userID); err == nil {
		summary.CreditScore = &latest.Score
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	if profile, err := q.GetProfileByUser(ctx, userID, false); err == nil && profile.CurrentSalary.IsPositive() {
		ratio := summary.MonthlyDebtPayments.Div(profile.CurrentSalary.Div(decimal.NewFromInt(12))).Round(4)
		summary.DebtToIncomeRatio = &ratio
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	return summary, nil
}

// KeyRateQuote is the central bank key rate and the lending rate derived from it
type KeyRateQuote struct {
	KeyRate     decimal.Decimal `json:"key_rate"`
	Margin      decimal.Decimal `json:"margin"`
	LendingRate decimal.Decimal `json:"lending_rate"`
}

// KeyRate fetches the key rate and adds the configured margin. LendingRate is an
// annual fraction ready for the loan calculators.
func (s *Service) KeyRate(ctx context.Context) (*KeyRateQuote, error) {
	if s.rates == nil {
		return nil, apperr.NotFound("key rate source")
	}
	rate, err := s.rates.KeyRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get key rate: %w", err)
	}
	margin := decimal.NewFromFloat(s.config.RatesMargin)
	return &KeyRateQuote{
		KeyRate:     rate,
		Margin:      margin,
		LendingRate: rate.Add(margin).Div(decimal.NewFromInt(100)).Round(4),
	}, nil
}
