package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

const portfolioColumns = `id, user_id, name, cash_balance, total_invested, total_value, created_at, updated_at`

const holdingColumns = `h.id, h.portfolio_id, h.stock_id, h.shares, h.average_price, h.current_value, h.created_at, h.updated_at`

// CreatePortfolio creates a new portfolio
func (q *Queries) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	id, err := q.insert(ctx, `
		INSERT INTO portfolios (user_id, name, cash_balance, total_invested, total_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.CashBalance, p.TotalInvested, p.TotalValue, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return wrapErr("create portfolio", err)
	}
	p.ID = id
	return nil
}

// GetPortfolio retrieves a portfolio by id
func (q *Queries) GetPortfolio(ctx context.Context, id int64, forUpdate bool) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	err := q.get(ctx, p, `SELECT `+portfolioColumns+` FROM portfolios WHERE id = ?`+q.lock(forUpdate), id)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get portfolio %d", id), err)
	}
	return p, nil
}

// GetPortfolioByUser retrieves a user's first portfolio
func (q *Queries) GetPortfolioByUser(ctx context.Context, userID int64, forUpdate bool) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	err := q.get(ctx, p, `
		SELECT `+portfolioColumns+` FROM portfolios WHERE user_id = ?
		ORDER BY id LIMIT 1`+q.lock(forUpdate), userID)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get portfolio for user %d", userID), err)
	}
	return p, nil
}

// UpdatePortfolio stores the portfolio balances
func (q *Queries) UpdatePortfolio(ctx context.Context, p *models.Portfolio) error {
	return q.execOne(ctx, fmt.Sprintf("portfolio %d", p.ID), `
		UPDATE portfolios SET cash_balance = ?, total_invested = ?, total_value = ?, updated_at = ?
		WHERE id = ?`,
		p.CashBalance, p.TotalInvested, p.TotalValue, p.UpdatedAt, p.ID)
}

// ListPortfolioIDsHolding returns, in id order, the portfolios with a position in the stock
func (q *Queries) ListPortfolioIDsHolding(ctx context.Context, stockID int64) ([]int64, error) {
	ids := []int64{}
	err := q.sel(ctx, &ids, `SELECT DISTINCT portfolio_id FROM stock_holdings WHERE stock_id = ? ORDER BY portfolio_id`, stockID)
	if err != nil {
		return nil, wrapErr("list portfolios holding stock", err)
	}
	return ids, nil
}

// GetHolding retrieves the position of a portfolio in a stock
func (q *Queries) GetHolding(ctx context.Context, portfolioID, stockID int64) (*models.Holding, error) {
	h := &models.Holding{}
	err := q.get(ctx, h, `
		SELECT `+holdingColumns+` FROM stock_holdings h
		WHERE h.portfolio_id = ? AND h.stock_id = ?`, portfolioID, stockID)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get holding of stock %d", stockID), err)
	}
	return h, nil
}

// ListHoldings returns a portfolio's positions joined with their stocks
func (q *Queries) ListHoldings(ctx context.Context, portfolioID int64) ([]models.HoldingWithStock, error) {
	out := []models.HoldingWithStock{}
	err := q.sel(ctx, &out, `
		SELECT `+holdingColumns+`,
			s.id AS "stock.id", s.symbol AS "stock.symbol", s.company_name AS "stock.company_name",
			s.current_price AS "stock.current_price", s.daily_change AS "stock.daily_change",
			s.daily_change_percent AS "stock.daily_change_percent", s.market_cap AS "stock.market_cap",
			s.dividend_yield AS "stock.dividend_yield", s.last_updated AS "stock.last_updated"
		FROM stock_holdings h
		JOIN stocks s ON s.id = h.stock_id
		WHERE h.portfolio_id = ?
		ORDER BY s.symbol`, portfolioID)
	if err != nil {
		return nil, wrapErr("list holdings", err)
	}
	return out, nil
}

// CreateHolding opens a position
func (q *Queries) CreateHolding(ctx context.Context, h *models.Holding) error {
	id, err := q.insert(ctx, `
		INSERT INTO stock_holdings (portfolio_id, stock_id, shares, average_price, current_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.PortfolioID, h.StockID, h.Shares, h.AveragePrice, h.CurrentValue, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return wrapErr("create holding", err)
	}
	h.ID = id
	return nil
}

// UpdateHolding stores a position's shares, average price and value
func (q *Queries) UpdateHolding(ctx context.Context, h *models.Holding) error {
	return q.execOne(ctx, fmt.Sprintf("holding %d", h.ID), `
		UPDATE stock_holdings SET shares = ?, average_price = ?, current_value = ?, updated_at = ?
		WHERE id = ?`,
		h.Shares, h.AveragePrice, h.CurrentValue, h.UpdatedAt, h.ID)
}

// DeleteHolding closes a position
func (q *Queries) DeleteHolding(ctx context.Context, id int64) error {
	return q.execOne(ctx, fmt.Sprintf("holding %d", id), `DELETE FROM stock_holdings WHERE id = ?`, id)
}
