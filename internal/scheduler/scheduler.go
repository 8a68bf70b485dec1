// Package scheduler runs periodic jobs outside of request handling.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// jobTimeout bounds a single price refresh run
const jobTimeout = 2 * time.Minute

// PriceRefresher moves stock prices and revalues the portfolios holding them
type PriceRefresher interface {
	RefreshPrices(ctx context.Context) (int, error)
}

// Scheduler wraps a cron runner; overlapping runs of a job are skipped
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

func New(log *logrus.Logger) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		log:  log,
	}
}

// SchedulePriceRefresh registers the refresh job; an empty spec leaves it disabled
func (s *Scheduler) SchedulePriceRefresh(spec string, r PriceRefresher) error {
	if spec == "" {
		s.log.Info("Price refresh disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { s.refresh(r) }); err != nil {
		return fmt.Errorf("failed to schedule price refresh %q: %w", spec, err)
	}
	s.log.Infof("Price refresh scheduled: %s", spec)
	return nil
}

func (s *Scheduler) refresh(r PriceRefresher) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := r.RefreshPrices(ctx)
	if err != nil {
		s.log.Errorf("Scheduled price refresh failed after %d stocks: %v", n, err)
		return
	}
	s.log.Infof("Scheduled price refresh updated %d stocks in %s", n, time.Since(start))
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stopped before running jobs finished")
	}
}
