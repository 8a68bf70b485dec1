// Package seed loads the built-in catalog of careers, stocks and weekly events.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Career is a catalog career
type Career struct {
	Title               string          `yaml:"title"`
	Description         string          `yaml:"description"`
	EducationRequired   string          `yaml:"education_required"`
	RequiresStudentLoan bool            `yaml:"requires_student_loan"`
	StudentLoanAmount   decimal.Decimal `yaml:"student_loan_amount"`
	BaseSalaryMin       decimal.Decimal `yaml:"base_salary_min"`
	BaseSalaryMax       decimal.Decimal `yaml:"base_salary_max"`
	Industry            string          `yaml:"industry"`
}

// Stock is a catalog stock with its opening price
type Stock struct {
	Symbol        string          `yaml:"symbol"`
	CompanyName   string          `yaml:"company_name"`
	CurrentPrice  decimal.Decimal `yaml:"current_price"`
	MarketCap     decimal.Decimal `yaml:"market_cap"`
	DividendYield decimal.Decimal `yaml:"dividend_yield"`
}

// Event is a catalog weekly event definition
type Event struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	EventType   string          `yaml:"event_type"`
	AmountMin   decimal.Decimal `yaml:"amount_min"`
	AmountMax   decimal.Decimal `yaml:"amount_max"`
	Probability float64         `yaml:"probability"`
}

// Catalog is the full seed data set
type Catalog struct {
	Careers []Career `yaml:"careers"`
	Stocks  []Stock  `yaml:"stocks"`
	Events  []Event  `yaml:"events"`
}

// Result counts the records Apply inserted
type Result struct {
	Careers int
	Stocks  int
	Events  int
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and checks a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for _, career := range c.Careers {
		if career.BaseSalaryMax.LessThan(career.BaseSalaryMin) {
			return nil, fmt.Errorf("career %q: salary max below min", career.Title)
		}
	}
	for _, s := range c.Stocks {
		if !s.CurrentPrice.IsPositive() {
			return nil, fmt.Errorf("stock %s: price must be positive", s.Symbol)
		}
	}
	for _, e := range c.Events {
		if e.Probability < 0 || e.Probability > 1 {
			return nil, fmt.Errorf("event %q: probability out of range", e.Title)
		}
		if e.AmountMax.LessThan(e.AmountMin) {
			return nil, fmt.Errorf("event %q: amount max below min", e.Title)
		}
	}
	return &c, nil
}

// StockModels converts the catalog stocks into unsaved records
func (c *Catalog) StockModels(now time.Time) []models.Stock {
	out := make([]models.Stock, 0, len(c.Stocks))
	for _, s := range c.Stocks {
		out = append(out, models.Stock{
			Symbol:        s.Symbol,
			CompanyName:   s.CompanyName,
			CurrentPrice:  s.CurrentPrice,
			MarketCap:     s.MarketCap,
			DividendYield: s.DividendYield,
			LastUpdated:   now,
		})
	}
	return out
}

// Apply inserts every catalog record not already present, matching careers and
// events by title and stocks by symbol. Running it twice inserts nothing new.
func Apply(ctx context.Context, repo *repository.Repository, c *Catalog, now time.Time) (Result, error) {
	var res Result
	err := repo.WithTx(ctx, func(q *repository.Queries) error {
		for _, career := range c.Careers {
			_, err := q.FindCareerByTitle(ctx, career.Title)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			err = q.CreateCareer(ctx, &models.Career{
				Title:               career.Title,
				Description:         career.Description,
				EducationRequired:   career.EducationRequired,
				RequiresStudentLoan: career.RequiresStudentLoan,
				StudentLoanAmount:   career.StudentLoanAmount,
				BaseSalaryMin:       career.BaseSalaryMin,
				BaseSalaryMax:       career.BaseSalaryMax,
				Industry:            career.Industry,
				CreatedAt:           now,
			})
			if err != nil {
				return err
			}
			res.Careers++
		}

		for _, stock := range c.StockModels(now) {
			_, err := q.FindStockBySymbol(ctx, stock.Symbol)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			if err := q.CreateStock(ctx, &stock); err != nil {
				return err
			}
			res.Stocks++
		}

		for _, e := range c.Events {
			_, err := q.FindEventByTitle(ctx, e.Title)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			err = q.CreateEvent(ctx, &models.FinancialEvent{
				Title:       e.Title,
				Description: e.Description,
				EventType:   e.EventType,
				AmountMin:   e.AmountMin,
				AmountMax:   e.AmountMax,
				Probability: e.Probability,
				IsActive:    true,
				CreatedAt:   now,
			})
			if err != nil {
				return err
			}
			res.Events++
		}
		return nil
	})
	return res, err
}
