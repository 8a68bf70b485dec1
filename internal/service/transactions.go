package service

import (
	"context"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultTransactionLimit = 50
	MaxTransactionLimit     = 500
)

// TransactionInput is a manually recorded transaction
type TransactionInput struct {
	TransactionType string
	Amount          decimal.Decimal
	Description     string
	Category        string
}

// ListTransactions returns the user's newest transactions
func (s *Service) ListTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	if limit > MaxTransactionLimit {
		limit = MaxTransactionLimit
	}
	return s.repo.Queries().ListTransactions(ctx, userID, limit)
}

// CreateTransaction appends a manual entry to the user's ledger
func (s *Service) CreateTransaction(ctx context.Context, userID int64, in TransactionInput) (*models.Transaction, error) {
	if in.TransactionType == "" {
		return nil, apperr.InvalidArgument("transaction type is required")
	}
	tx := &models.Transaction{
		UserID:          userID,
		TransactionType: in.TransactionType,
		Amount:          in.Amount,
		Description:     in.Description,
		Category:        in.Category,
		CreatedAt:       s.clock(),
	}
	if err := s.repo.Queries().CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.log.Infof("Transaction %d recorded for user %d", tx.ID, userID)
	return tx, nil
}
