package repository

import (
	"context"

	"github.com/Dan9191/openbanqr/internal/models"
)

const eventColumns = `id, title, description, event_type, amount_min, amount_max, probability, is_active, created_at`

// CreateEvent creates a new event definition
func (q *Queries) CreateEvent(ctx context.Context, e *models.FinancialEvent) error {
	id, err := q.insert(ctx, `
		INSERT INTO financial_events (title, description, event_type, amount_min, amount_max, probability, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Description, e.EventType, e.AmountMin, e.AmountMax, e.Probability, e.IsActive, e.CreatedAt)
	if err != nil {
		return wrapErr("create event", err)
	}
	e.ID = id
	return nil
}

// FindEventByTitle retrieves an event definition by title
func (q *Queries) FindEventByTitle(ctx context.Context, title string) (*models.FinancialEvent, error) {
	e := &models.FinancialEvent{}
	if err := q.get(ctx, e, `SELECT `+eventColumns+` FROM financial_events WHERE title = ?`, title); err != nil {
		return nil, wrapErr("find event "+title, err)
	}
	return e, nil
}

// ListActiveEvents returns the active event definitions in a stable order
func (q *Queries) ListActiveEvents(ctx context.Context) ([]models.FinancialEvent, error) {
	out := []models.FinancialEvent{}
	err := q.sel(ctx, &out, `SELECT `+eventColumns+` FROM financial_events WHERE is_active = ? ORDER BY id`, true)
	if err != nil {
		return nil, wrapErr("list events", err)
	}
	return out, nil
}
