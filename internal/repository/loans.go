package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

const loanColumns = `id, user_id, loan_type, principal, interest_rate, term_months, current_balance,
	minimum_payment, credit_limit, property_value, status, next_due_date, created_at`

// CreateLoan creates a loan, credit card or mortgage
func (q *Queries) CreateLoan(ctx context.Context, l *models.Loan) error {
	id, err := q.insert(ctx, `
		INSERT INTO loans (user_id, loan_type, principal, interest_rate, term_months, current_balance,
			minimum_payment, credit_limit, property_value, status, next_due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.UserID, l.LoanType, l.Principal, l.InterestRate, l.TermMonths, l.CurrentBalance,
		l.MinimumPayment, l.CreditLimit, l.PropertyValue, l.Status, l.NextDueDate, l.CreatedAt)
	if err != nil {
		return wrapErr("create loan", err)
	}
	l.ID = id
	return nil
}

// GetLoan retrieves a loan owned by the user
func (q *Queries) GetLoan(ctx context.Context, id, userID int64, forUpdate bool) (*models.Loan, error) {
	l := &models.Loan{}
	err := q.get(ctx, l, `SELECT `+loanColumns+` FROM loans WHERE id = ? AND user_id = ?`+q.lock(forUpdate), id, userID)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get loan %d", id), err)
	}
	return l, nil
}

// ListLoans returns every loan of a user, oldest first
func (q *Queries) ListLoans(ctx context.Context, userID int64) ([]models.Loan, error) {
	out := []models.Loan{}
	if err := q.sel(ctx, &out, `SELECT `+loanColumns+` FROM loans WHERE user_id = ? ORDER BY created_at, id`, userID); err != nil {
		return nil, wrapErr("list loans", err)
	}
	return out, nil
}

// UpdateLoan stores a loan's balance, status and due date
func (q *Queries) UpdateLoan(ctx context.Context, l *models.Loan) error {
	return q.execOne(ctx, fmt.Sprintf("loan %d", l.ID), `
		UPDATE loans SET current_balance = ?, minimum_payment = ?, status = ?, next_due_date = ?
		WHERE id = ?`,
		l.CurrentBalance, l.MinimumPayment, l.Status, l.NextDueDate, l.ID)
}

// CreateLoanPayment appends a payment to the loan ledger
func (q *Queries) CreateLoanPayment(ctx context.Context, p *models.LoanPayment) error {
	id, err := q.insert(ctx, `
		INSERT INTO loan_payments (loan_id, amount, principal_portion, interest_portion, balance_after, on_time, paid_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.LoanID, p.Amount, p.PrincipalPortion, p.InterestPortion, p.BalanceAfter, p.OnTime, p.PaidAt)
	if err != nil {
		return wrapErr("create loan payment", err)
	}
	p.ID = id
	return nil
}

// ListLoanPayments returns a loan's payments, oldest first
func (q *Queries) ListLoanPayments(ctx context.Context, loanID int64) ([]models.LoanPayment, error) {
	out := []models.LoanPayment{}
	err := q.sel(ctx, &out, `
		SELECT id, loan_id, amount, principal_portion, interest_portion, balance_after, on_time, paid_at
		FROM loan_payments WHERE loan_id = ? ORDER BY paid_at, id`, loanID)
	if err != nil {
		return nil, wrapErr("list loan payments", err)
	}
	return out, nil
}

// PaymentStats counts payments per loan for a user
type PaymentStats struct {
	LoanID int64 `db:"loan_id"`
	Total  int   `db:"total"`
	OnTime int   `db:"on_time"`
}

// ListPaymentStats returns payment counts for each of the user's loans that has payments
func (q *Queries) ListPaymentStats(ctx context.Context, userID int64) ([]PaymentStats, error) {
	out := []PaymentStats{}
	err := q.sel(ctx, &out, `
		SELECT p.loan_id AS loan_id, COUNT(*) AS total,
			SUM(CASE WHEN p.on_time THEN 1 ELSE 0 END) AS on_time
		FROM loan_payments p
		JOIN loans l ON l.id = p.loan_id
		WHERE l.user_id = ?
		GROUP BY p.loan_id`, userID)
	if err != nil {
		return nil, wrapErr("count loan payments", err)
	}
	return out, nil
}
