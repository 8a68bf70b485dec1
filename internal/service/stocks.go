package service

import (
	"context"

	"github.com/Dan9191/openbanqr/internal/seed"
)

// InitializeResult reports what InitializeStocks did
type InitializeResult struct {
	Created   int `json:"created"`
	Refreshed int `json:"refreshed"`
}

// InitializeStocks loads the catalog stocks into an empty market, or moves the
// prices of an already populated one; teachers only.
func (s *Service) InitializeStocks(ctx context.Context, teacherID int64) (*InitializeResult, error) {
	q := s.repo.Queries()
	if _, err := s.teacher(ctx, q, teacherID); err != nil {
		return nil, err
	}
	existing, err := q.ListStocks(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		n, err := s.RefreshPrices(ctx)
		if err != nil {
			return nil, err
		}
		return &InitializeResult{Refreshed: n}, nil
	}

	catalog, err := seed.Default()
	if err != nil {
		return nil, err
	}
	catalog.Careers, catalog.Events = nil, nil
	res, err := seed.Apply(ctx, s.repo, catalog, s.clock())
	if err != nil {
		return nil, err
	}

	s.log.Infof("Initialized %d stocks", res.Stocks)
	return &InitializeResult{Created: res.Stocks}, nil
}
