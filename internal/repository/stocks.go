package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/models"
)

const stockColumns = `id, symbol, company_name, current_price, daily_change, daily_change_percent,
	market_cap, dividend_yield, last_updated`

// CreateStock creates a new stock
func (q *Queries) CreateStock(ctx context.Context, s *models.Stock) error {
	id, err := q.insert(ctx, `
		INSERT INTO stocks (symbol, company_name, current_price, daily_change, daily_change_percent,
			market_cap, dividend_yield, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Symbol, s.CompanyName, s.CurrentPrice, s.DailyChange, s.DailyChangePercent,
		s.MarketCap, s.DividendYield, s.LastUpdated)
	if err != nil {
		return wrapErr("create stock", err)
	}
	s.ID = id
	return nil
}

// GetStock retrieves a stock by id
func (q *Queries) GetStock(ctx context.Context, id int64, forUpdate bool) (*models.Stock, error) {
	s := &models.Stock{}
	if err := q.get(ctx, s, `SELECT `+stockColumns+` FROM stocks WHERE id = ?`+q.lock(forUpdate), id); err != nil {
		return nil, wrapErr(fmt.Sprintf("get stock %d", id), err)
	}
	return s, nil
}

// FindStockBySymbol retrieves a stock by ticker symbol
func (q *Queries) FindStockBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	s := &models.Stock{}
	if err := q.get(ctx, s, `SELECT `+stockColumns+` FROM stocks WHERE symbol = ?`, symbol); err != nil {
		return nil, wrapErr("find stock "+symbol, err)
	}
	return s, nil
}

// ListStocks returns every stock ordered by symbol
func (q *Queries) ListStocks(ctx context.Context) ([]models.Stock, error) {
	out := []models.Stock{}
	if err := q.sel(ctx, &out, `SELECT `+stockColumns+` FROM stocks ORDER BY symbol`); err != nil {
		return nil, wrapErr("list stocks", err)
	}
	return out, nil
}

// UpdateStockPrice stores a stock's price fields
func (q *Queries) UpdateStockPrice(ctx context.Context, s *models.Stock) error {
	return q.execOne(ctx, fmt.Sprintf("stock %d", s.ID), `
		UPDATE stocks SET current_price = ?, daily_change = ?, daily_change_percent = ?, last_updated = ?
		WHERE id = ?`,
		s.CurrentPrice, s.DailyChange, s.DailyChangePercent, s.LastUpdated, s.ID)
}
