package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/Dan9191/openbanqr/internal/finance"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Notifier delivers the weekly statement after a simulated week commits
type Notifier interface {
	WeeklyStatement(ctx context.Context, user *models.User, result *models.WeeklySimulationResult) error
}

// RateSource supplies the central bank key rate as an annual percentage
type RateSource interface {
	KeyRate(ctx context.Context) (decimal.Decimal, error)
}

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
	rng      finance.Random
	notifier Notifier
	rates    RateSource
}

// Option customises a Service
type Option func(*Service)

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRandom replaces the random source used for events, prices and listings
func WithRandom(rng finance.Random) Option {
	return func(s *Service) { s.rng = &lockedRandom{src: rng} }
}

// WithNotifier enables weekly statement delivery
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithRateSource enables key-rate lookups
func WithRateSource(r RateSource) Option {
	return func(s *Service) { s.rates = r }
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, opts ...Option) *Service {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Service{
		repo:   repo,
		log:    log,
		config: cfg,
		now:    time.Now,
		rng:    &lockedRandom{src: rand.New(rand.NewPCG(seed, seed>>1|1))},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// lockedRandom serialises draws from a source shared across requests
type lockedRandom struct {
	mu  sync.Mutex
	src finance.Random
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

// student loads the user and rejects teachers, who have no personal finances
func (s *Service) student(ctx context.Context, q *repository.Queries, userID int64) (*models.User, error) {
	user, err := q.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsTeacher {
		return nil, apperr.Forbidden("teachers cannot access student finances")
	}
	return user, nil
}

// teacher loads the user and rejects students
func (s *Service) teacher(ctx context.Context, q *repository.Queries, userID int64) (*models.User, error) {
	user, err := q.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsTeacher {
		return nil, apperr.Forbidden("only teachers can do this")
	}
	return user, nil
}
