package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

const accountColumns = `id, user_id, account_number, account_type, account_name, bank_name,
	current_balance, available_balance, interest_rate, minimum_balance, is_primary, created_at`

// CreateAccount creates a new bank account
func (q *Queries) CreateAccount(ctx context.Context, a *models.BankAccount) error {
	id, err := q.insert(ctx, `
		INSERT INTO bank_accounts (user_id, account_number, account_type, account_name, bank_name,
			current_balance, available_balance, interest_rate, minimum_balance, is_primary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.AccountNumber, a.AccountType, a.AccountName, a.BankName,
		a.CurrentBalance, a.AvailableBalance, a.InterestRate, a.MinimumBalance, a.IsPrimary, a.CreatedAt)
	if err != nil {
		return wrapErr("create account", err)
	}
	a.ID = id
	return nil
}

// GetAccount retrieves an account owned by the user
func (q *Queries) GetAccount(ctx context.Context, id, userID int64, forUpdate bool) (*models.BankAccount, error) {
	a := &models.BankAccount{}
	err := q.get(ctx, a, `SELECT `+accountColumns+` FROM bank_accounts WHERE id = ? AND user_id = ?`+q.lock(forUpdate), id, userID)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get account %d", id), err)
	}
	return a, nil
}

// GetPrimaryAccount retrieves the user's primary account
func (q *Queries) GetPrimaryAccount(ctx context.Context, userID int64, forUpdate bool) (*models.BankAccount, error) {
	a := &models.BankAccount{}
	err := q.get(ctx, a, `
		SELECT `+accountColumns+` FROM bank_accounts
		WHERE user_id = ? AND is_primary = ?
		ORDER BY id LIMIT 1`+q.lock(forUpdate), userID, true)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get primary account for user %d", userID), err)
	}
	return a, nil
}

// ListAccounts returns a user's accounts, primary first
func (q *Queries) ListAccounts(ctx context.Context, userID int64) ([]models.BankAccount, error) {
	out := []models.BankAccount{}
	err := q.sel(ctx, &out, `SELECT `+accountColumns+` FROM bank_accounts WHERE user_id = ? ORDER BY is_primary DESC, id`, userID)
	if err != nil {
		return nil, wrapErr("list accounts", err)
	}
	return out, nil
}

// UpdateAccountBalance stores an account's balances
func (q *Queries) UpdateAccountBalance(ctx context.Context, a *models.BankAccount) error {
	return q.execOne(ctx, fmt.Sprintf("account %d", a.ID), `
		UPDATE bank_accounts SET current_balance = ?, available_balance = ? WHERE id = ?`,
		a.CurrentBalance, a.AvailableBalance, a.ID)
}

// CreateBankTransaction posts a transaction against an account
func (q *Queries) CreateBankTransaction(ctx context.Context, t *models.BankTransaction) error {
	id, err := q.insert(ctx, `
		INSERT INTO bank_transactions (account_id, transaction_type, amount, description, category,
			status, balance_after, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.AccountID, t.TransactionType, t.Amount, t.Description, t.Category,
		t.Status, t.BalanceAfter, t.TransactionDate)
	if err != nil {
		return wrapErr("create bank transaction", err)
	}
	t.ID = id
	return nil
}

// ListBankTransactions returns an account's postings, newest first
func (q *Queries) ListBankTransactions(ctx context.Context, accountID int64, limit int) ([]models.BankTransaction, error) {
	out := []models.BankTransaction{}
	err := q.sel(ctx, &out, `
		SELECT id, account_id, transaction_type, amount, description, category, status,
			balance_after, transaction_date
		FROM bank_transactions
		WHERE account_id = ?
		ORDER BY transaction_date DESC, id DESC
		LIMIT ?`, accountID, limit)
	if err != nil {
		return nil, wrapErr("list bank transactions", err)
	}
	return out, nil
}
