package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

// CreateCreditScore stores a credit score snapshot
func (q *Queries) CreateCreditScore(ctx context.Context, c *models.CreditScore) error {
	id, err := q.insert(ctx, `
		INSERT INTO credit_scores (user_id, score, score_range, credit_utilization, total_accounts, open_accounts, score_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Score, c.ScoreRange, c.CreditUtilization, c.TotalAccounts, c.OpenAccounts, c.ScoreDate)
	if err != nil {
		return wrapErr("create credit score", err)
	}
	c.ID = id
	return nil
}

// LatestCreditScore retrieves the user's newest snapshot
func (q *Queries) LatestCreditScore(ctx context.Context, userID int64) (*models.CreditScore, error) {
	c := &models.CreditScore{}
	err := q.get(ctx, c, `
		SELECT id, user_id, score, score_range, credit_utilization, total_accounts, open_accounts, score_date
		FROM credit_scores WHERE user_id = ?
		ORDER BY score_date DESC, id DESC LIMIT 1`, userID)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get credit score for user %d", userID), err)
	}
	return c, nil
}
