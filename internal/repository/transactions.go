package repository

import (
	"context"

	"github.com/Dan9191/openbanqr/internal/models"
)

// CreateTransaction appends a transaction to the ledger
func (q *Queries) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	id, err := q.insert(ctx, `
		INSERT INTO transactions (user_id, portfolio_id, stock_id, transaction_type, amount,
			description, category, shares, price_per_share, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.PortfolioID, t.StockID, t.TransactionType, t.Amount,
		t.Description, t.Category, t.Shares, t.PricePerShare, t.CreatedAt)
	if err != nil {
		return wrapErr("create transaction", err)
	}
	t.ID = id
	return nil
}

// ListTransactions returns a user's most recent transactions, newest first
func (q *Queries) ListTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	out := []models.Transaction{}
	err := q.sel(ctx, &out, `
		SELECT id, user_id, portfolio_id, stock_id, transaction_type, amount, description,
			category, shares, price_per_share, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, wrapErr("list transactions", err)
	}
	return out, nil
}
