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

// LoanRequest opens a new loan or credit card
type LoanRequest struct {
	LoanType     string
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int
}

// ListLoans returns the student's loans
func (s *Service) ListLoans(ctx context.Context, userID int64) ([]models.Loan, error) {
	q := s.repo.Queries()
	if _, err := s.student(ctx, q, userID); err != nil {
		return nil, err
	}
	return q.ListLoans(ctx, userID)
}

// QuoteLoan prices a loan without opening it
func (s *Service) QuoteLoan(amount, rate decimal.Decimal, termMonths int, loanType string) (finance.LoanQuote, error) {
	return finance.QuoteLoan(amount, rate, termMonths, loanType)
}

// OpenLoan opens a loan. Instalment loans are disbursed into the primary
// checking account; a credit card only opens a line of credit.
func (s *Service) OpenLoan(ctx context.Context, userID int64, in LoanRequest) (*models.Loan, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.InvalidArgument("loan amount must be positive")
	}
	if in.InterestRate.IsNegative() {
		return nil, apperr.InvalidArgument("interest rate must not be negative")
	}

	now := s.clock()
	loan := &models.Loan{
		UserID:       userID,
		LoanType:     in.LoanType,
		Principal:    in.Amount,
		InterestRate: in.InterestRate,
		TermMonths:   in.TermMonths,
		Status:       models.LoanActive,
		NextDueDate:  now.AddDate(0, 1, 0),
		CreatedAt:    now,
	}
	switch in.LoanType {
	case models.LoanCreditCard:
		loan.CreditLimit = in.Amount
		loan.CurrentBalance = decimal.Zero
		loan.TermMonths = 0
	case models.LoanStudent, models.LoanPersonal, models.LoanAuto:
		payment, err := finance.AmortizedPayment(in.Amount, in.InterestRate, in.TermMonths)
		if err != nil {
			return nil, err
		}
		loan.CurrentBalance = in.Amount
		loan.MinimumPayment = finance.RoundCents(payment)
	case models.LoanMortgage:
		return nil, apperr.InvalidArgument("mortgages are taken out through a property purchase")
	default:
		return nil, apperr.InvalidArgument("unknown loan type %q", in.LoanType)
	}

	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		if err := q.CreateLoan(ctx, loan); err != nil {
			return err
		}
		if loan.LoanType == models.LoanCreditCard {
			return nil
		}
		if _, err := s.ensureAccounts(ctx, q, userID); err != nil {
			return err
		}
		checking, err := q.GetPrimaryAccount(ctx, userID, true)
		if err != nil {
			return err
		}
		return postToAccount(ctx, q, checking, loan.Principal, "loan_disbursement",
			fmt.Sprintf("Disbursement of %s loan %d", loan.LoanType, loan.ID), "loan", now)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Loan %d (%s, %s) opened for user %d", loan.ID, loan.LoanType, loan.Principal, userID)
	return loan, nil
}

// LoanPaymentResult is a recorded payment and the loan after it
type LoanPaymentResult struct {
	Payment models.LoanPayment `json:"payment"`
	Loan    models.Loan        `json:"loan"`
}

// PayLoan pays a loan from the primary checking account. The payment covers
// one month of interest first; the rest reduces the balance. A payment made
// after the due date is recorded as late.
func (s *Service) PayLoan(ctx context.Context, userID, loanID int64, amount decimal.Decimal) (*LoanPaymentResult, error) {
	var out LoanPaymentResult
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		loan, err := q.GetLoan(ctx, loanID, userID, true)
		if err != nil {
			return err
		}
		if loan.Status == models.LoanPaidOff {
			return apperr.InvalidArgument("loan %d is already paid off", loan.ID)
		}
		split, err := finance.SplitPayment(loan.CurrentBalance, loan.InterestRate, amount)
		if err != nil {
			return err
		}

		if _, err := s.ensureAccounts(ctx, q, userID); err != nil {
			return err
		}
		checking, err := q.GetPrimaryAccount(ctx, userID, true)
		if err != nil {
			return err
		}
		if checking.AvailableBalance.LessThan(split.Amount) {
			return apperr.InsufficientFunds("available balance %s", checking.AvailableBalance.StringFixed(2))
		}

		now := s.clock()
		payment := models.LoanPayment{
			LoanID:           loan.ID,
			Amount:           split.Amount,
			PrincipalPortion: split.Principal,
			InterestPortion:  split.Interest,
			BalanceAfter:     split.BalanceAfter,
			OnTime:           !now.After(loan.NextDueDate),
			PaidAt:           now,
		}
		if err := q.CreateLoanPayment(ctx, &payment); err != nil {
			return err
		}

		loan.CurrentBalance = split.BalanceAfter
		switch {
		case !loan.CurrentBalance.IsPositive():
			loan.Status = models.LoanPaidOff
			loan.MinimumPayment = decimal.Zero
		case loan.LoanType == models.LoanCreditCard:
			loan.MinimumPayment = finance.CreditCardMinimum(loan.CurrentBalance)
			loan.NextDueDate = loan.NextDueDate.AddDate(0, 1, 0)
		default:
			loan.MinimumPayment = decimal.Min(loan.MinimumPayment, loan.CurrentBalance)
			loan.NextDueDate = loan.NextDueDate.AddDate(0, 1, 0)
		}
		if err := q.UpdateLoan(ctx, loan); err != nil {
			return err
		}

		description := fmt.Sprintf("Payment on %s loan %d", loan.LoanType, loan.ID)
		if err := postToAccount(ctx, q, checking, split.Amount.Neg(), models.TxLoanPayment, description, "debt", now); err != nil {
			return err
		}
		if err := q.CreateTransaction(ctx, &models.Transaction{
			UserID:          userID,
			TransactionType: models.TxLoanPayment,
			Amount:          split.Amount.Neg(),
			Description:     description,
			Category:        "debt",
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		out = LoanPaymentResult{Payment: payment, Loan: *loan}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Payment %s recorded on loan %d", out.Payment.Amount, loanID)
	return &out, nil
}
