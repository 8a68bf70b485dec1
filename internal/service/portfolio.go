package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/finance"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
)

// StartingCash is the cash every new portfolio begins with
var StartingCash = decimal.NewFromInt(1000)

// Trade is a buy or sell order at a given price
type Trade struct {
	PortfolioID int64
	StockID     int64
	Shares      decimal.Decimal
	Price       decimal.Decimal
}

func (t Trade) validate() error {
	if !t.Shares.IsPositive() {
		return apperr.InvalidArgument("shares must be positive")
	}
	if !t.Price.IsPositive() {
		return apperr.InvalidArgument("price must be positive")
	}
	return nil
}

func (s *Service) createPortfolio(ctx context.Context, q *repository.Queries, userID int64) (*models.Portfolio, error) {
	now := s.clock()
	p := &models.Portfolio{
		UserID:      userID,
		Name:        "My Portfolio",
		CashBalance: StartingCash,
		TotalValue:  StartingCash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := q.CreatePortfolio(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) portfolioFor(ctx context.Context, q *repository.Queries, userID int64, forUpdate bool) (*models.Portfolio, error) {
	p, err := q.GetPortfolioByUser(ctx, userID, forUpdate)
	if errors.Is(err, apperr.ErrNotFound) {
		return s.createPortfolio(ctx, q, userID)
	}
	return p, err
}

// GetPortfolio returns the student's portfolio with its holdings, creating it on first access
func (s *Service) GetPortfolio(ctx context.Context, userID int64) (*models.PortfolioWithHoldings, error) {
	var out *models.PortfolioWithHoldings
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		p, err := s.portfolioFor(ctx, q, userID, false)
		if err != nil {
			return err
		}
		holdings, err := q.ListHoldings(ctx, p.ID)
		if err != nil {
			return err
		}
		out = &models.PortfolioWithHoldings{Portfolio: *p, Holdings: holdings}
		return nil
	})
	return out, err
}

// Buy debits cash and adds shares at the trade price, keeping the holding's
// average cost as the weighted mean of all buys.
func (s *Service) Buy(ctx context.Context, t Trade) (*models.Transaction, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var tx *models.Transaction
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		portfolio, stock, err := lockTrade(ctx, q, t)
		if err != nil {
			return err
		}

		cost := t.Shares.Mul(t.Price)
		if portfolio.CashBalance.LessThan(cost) {
			return apperr.InsufficientFunds("need %s, have %s", cost.StringFixed(2), portfolio.CashBalance.StringFixed(2))
		}
		now := s.clock()
		portfolio.CashBalance = portfolio.CashBalance.Sub(cost)
		portfolio.TotalInvested = portfolio.TotalInvested.Add(cost)

		holding, err := q.GetHolding(ctx, portfolio.ID, stock.ID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			holding = &models.Holding{
				PortfolioID:  portfolio.ID,
				StockID:      stock.ID,
				Shares:       t.Shares,
				AveragePrice: t.Price,
				CurrentValue: t.Shares.Mul(stock.CurrentPrice),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := q.CreateHolding(ctx, holding); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			total := holding.Shares.Add(t.Shares)
			basis := holding.Shares.Mul(holding.AveragePrice).Add(cost)
			holding.AveragePrice = basis.Div(total)
			holding.Shares = total
			holding.CurrentValue = total.Mul(stock.CurrentPrice)
			holding.UpdatedAt = now
			if err := q.UpdateHolding(ctx, holding); err != nil {
				return err
			}
		}

		if err := s.revalue(ctx, q, portfolio); err != nil {
			return err
		}
		tx = tradeTransaction(portfolio, stock, models.TxBuy, cost.Neg(), t, now)
		return q.CreateTransaction(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Portfolio %d bought %s shares of stock %d at %s", t.PortfolioID, t.Shares, t.StockID, t.Price)
	return tx, nil
}

// Sell credits the proceeds at the trade price and removes the shares. The
// cost basis of the sold shares leaves total_invested; a holding at exactly
// zero shares is deleted.
func (s *Service) Sell(ctx context.Context, t Trade) (*models.Transaction, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var tx *models.Transaction
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		portfolio, stock, err := lockTrade(ctx, q, t)
		if err != nil {
			return err
		}
		holding, err := q.GetHolding(ctx, portfolio.ID, stock.ID)
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.InsufficientShares("no shares of %s held", stock.Symbol)
		}
		if err != nil {
			return err
		}
		if holding.Shares.LessThan(t.Shares) {
			return apperr.InsufficientShares("have %s shares of %s", holding.Shares, stock.Symbol)
		}

		now := s.clock()
		proceeds := t.Shares.Mul(t.Price)
		portfolio.CashBalance = portfolio.CashBalance.Add(proceeds)

		holding.Shares = holding.Shares.Sub(t.Shares)
		if holding.Shares.IsZero() {
			if err := q.DeleteHolding(ctx, holding.ID); err != nil {
				return err
			}
		} else {
			holding.CurrentValue = holding.Shares.Mul(stock.CurrentPrice)
			holding.UpdatedAt = now
			if err := q.UpdateHolding(ctx, holding); err != nil {
				return err
			}
		}

		// The basis is rebuilt from what is still held so a full exit leaves exactly zero.
		left, err := q.ListHoldings(ctx, portfolio.ID)
		if err != nil {
			return err
		}
		portfolio.TotalInvested = costBasis(left)

		if err := s.revalue(ctx, q, portfolio); err != nil {
			return err
		}
		tx = tradeTransaction(portfolio, stock, models.TxSell, proceeds, t, now)
		return q.CreateTransaction(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Portfolio %d sold %s shares of stock %d at %s", t.PortfolioID, t.Shares, t.StockID, t.Price)
	return tx, nil
}

// TradeForUser runs a buy or sell against the student's own portfolio
func (s *Service) TradeForUser(ctx context.Context, userID int64, side string, stockID int64, shares, price decimal.Decimal) (*models.Transaction, error) {
	var portfolioID int64
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		if _, err := s.student(ctx, q, userID); err != nil {
			return err
		}
		p, err := s.portfolioFor(ctx, q, userID, false)
		if err != nil {
			return err
		}
		portfolioID = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	t := Trade{PortfolioID: portfolioID, StockID: stockID, Shares: shares, Price: price}
	switch side {
	case models.TxBuy:
		return s.Buy(ctx, t)
	case models.TxSell:
		return s.Sell(ctx, t)
	default:
		return nil, apperr.InvalidArgument("unknown trade side %q", side)
	}
}

// lockTrade locks the traded stock and then the portfolio. Price updates lock
// in the same order (stock, then each holding portfolio), so a trade waits
// for an in-flight price change and never marks a holding at the old price.
func lockTrade(ctx context.Context, q *repository.Queries, t Trade) (*models.Portfolio, *models.Stock, error) {
	stock, err := q.GetStock(ctx, t.StockID, true)
	if err != nil {
		return nil, nil, err
	}
	portfolio, err := q.GetPortfolio(ctx, t.PortfolioID, true)
	if err != nil {
		return nil, nil, err
	}
	return portfolio, stock, nil
}

func costBasis(holdings []models.HoldingWithStock) decimal.Decimal {
	basis := decimal.Zero
	for _, h := range holdings {
		basis = basis.Add(h.Shares.Mul(h.AveragePrice))
	}
	return basis
}

func tradeTransaction(p *models.Portfolio, stock *models.Stock, kind string, amount decimal.Decimal, t Trade, at time.Time) *models.Transaction {
	verb := "Bought"
	if kind == models.TxSell {
		verb = "Sold"
	}
	return &models.Transaction{
		UserID:          p.UserID,
		PortfolioID:     &p.ID,
		StockID:         &stock.ID,
		TransactionType: kind,
		Amount:          amount,
		Description:     fmt.Sprintf("%s %s shares of %s", verb, t.Shares, stock.Symbol),
		Category:        "investment",
		Shares:          decimal.NewNullDecimal(t.Shares),
		PricePerShare:   decimal.NewNullDecimal(t.Price),
		CreatedAt:       at,
	}
}

// revalue marks every holding of a locked portfolio to market and stores
// total_value = cash + sum of holding values.
func (s *Service) revalue(ctx context.Context, q *repository.Queries, p *models.Portfolio) error {
	holdings, err := q.ListHoldings(ctx, p.ID)
	if err != nil {
		return err
	}
	now := s.clock()
	total := p.CashBalance
	for _, h := range holdings {
		value := h.Shares.Mul(h.Stock.CurrentPrice)
		if !value.Equal(h.CurrentValue) {
			h.Holding.CurrentValue = value
			h.Holding.UpdatedAt = now
			if err := q.UpdateHolding(ctx, &h.Holding); err != nil {
				return err
			}
		}
		total = total.Add(value)
	}
	p.TotalValue = total
	p.UpdatedAt = now
	return q.UpdatePortfolio(ctx, p)
}

// ListStocks returns every stock
func (s *Service) ListStocks(ctx context.Context) ([]models.Stock, error) {
	return s.repo.Queries().ListStocks(ctx)
}

// GetStock returns a stock by id
func (s *Service) GetStock(ctx context.Context, stockID int64) (*models.Stock, error) {
	return s.repo.Queries().GetStock(ctx, stockID, false)
}

// UpdateStockPrice sets a stock's price and revalues every portfolio holding it.
// Setting the same price twice leaves the same state.
func (s *Service) UpdateStockPrice(ctx context.Context, stockID int64, price decimal.Decimal) (*models.Stock, error) {
	if !price.IsPositive() {
		return nil, apperr.InvalidArgument("price must be positive")
	}
	var stock *models.Stock
	err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
		var err error
		if stock, err = q.GetStock(ctx, stockID, true); err != nil {
			return err
		}
		if !price.Equal(stock.CurrentPrice) {
			stock.DailyChange = price.Sub(stock.CurrentPrice)
			stock.DailyChangePercent = finance.RoundCents(stock.DailyChange.Div(stock.CurrentPrice).Mul(decimal.NewFromInt(100)))
			stock.CurrentPrice = price
		}
		stock.LastUpdated = s.clock()
		return s.applyPrice(ctx, q, stock)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Stock %s price set to %s", stock.Symbol, stock.CurrentPrice)
	return stock, nil
}

// SetStockPriceAsTeacher is UpdateStockPrice restricted to teachers
func (s *Service) SetStockPriceAsTeacher(ctx context.Context, actorID, stockID int64, price decimal.Decimal) (*models.Stock, error) {
	if _, err := s.teacher(ctx, s.repo.Queries(), actorID); err != nil {
		return nil, err
	}
	return s.UpdateStockPrice(ctx, stockID, price)
}

// RefreshPrices moves every stock by a random walk. Each stock and the
// portfolios holding it are updated in their own transaction, so on failure
// the count of stocks already committed is returned with the error.
func (s *Service) RefreshPrices(ctx context.Context) (int, error) {
	stocks, err := s.repo.Queries().ListStocks(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, listed := range stocks {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		err := s.repo.WithTx(ctx, func(q *repository.Queries) error {
			stock, err := q.GetStock(ctx, listed.ID, true)
			if err != nil {
				return err
			}
			move := finance.RandomWalk(s.rng, stock.CurrentPrice, finance.DefaultVolatility)
			stock.CurrentPrice = move.Price
			stock.DailyChange = move.Change
			stock.DailyChangePercent = move.ChangePercent
			stock.LastUpdated = s.clock()
			return s.applyPrice(ctx, q, stock)
		})
		if err != nil {
			return updated, fmt.Errorf("failed to refresh %s: %w", listed.Symbol, err)
		}
		updated++
	}

	s.log.Infof("Refreshed prices of %d stocks", updated)
	return updated, nil
}

// applyPrice stores the stock's price and revalues the portfolios holding it,
// locking them in id order.
func (s *Service) applyPrice(ctx context.Context, q *repository.Queries, stock *models.Stock) error {
	if err := q.UpdateStockPrice(ctx, stock); err != nil {
		return err
	}
	ids, err := q.ListPortfolioIDsHolding(ctx, stock.ID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		p, err := q.GetPortfolio(ctx, id, true)
		if err != nil {
			return err
		}
		if err := s.revalue(ctx, q, p); err != nil {
			return err
		}
	}
	return nil
}
