package service

import (
	"context"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type testEnv struct {
	svc   *Service
	repo  *repository.Repository
	clock *fakeClock
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	db, err := repository.Open("sqlite", filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour, RatesMargin: 2, RandomSeed: 7}

	clock := &fakeClock{t: start}
	opts = append([]Option{WithClock(clock.Now), WithRandom(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return &testEnv{svc: NewService(repo, log, cfg, opts...), repo: repo, clock: clock}
}

func (e *testEnv) register(t *testing.T, name string, teacher bool) *models.User {
	t.Helper()
	u, err := e.svc.Register(context.Background(), RegisterInput{
		Email: name + "@example.com", Username: name, Password: "password123", IsTeacher: teacher,
	})
	require.NoError(t, err)
	return u
}

// student registers a student and overwrites profile fields with set
func (e *testEnv) student(t *testing.T, name string, set func(p *models.FinancialProfile)) (*models.User, *models.FinancialProfile) {
	t.Helper()
	ctx := context.Background()
	u := e.register(t, name, false)
	q := e.repo.Queries()
	p, err := q.GetProfileByUser(ctx, u.ID, false)
	require.NoError(t, err)
	if set != nil {
		set(p)
		require.NoError(t, q.UpdateProfile(ctx, p))
	}
	return u, p
}

func TestRegisterCreatesStudentProfileAndPortfolio(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	u := env.register(t, "alice", false)
	assert.NotEqual(t, "password123", u.PasswordHash)

	q := env.repo.Queries()
	profile, err := q.GetProfileByUser(ctx, u.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.HousingRenting, profile.HousingType)

	portfolio, err := q.GetPortfolioByUser(ctx, u.ID, false)
	require.NoError(t, err)
	assert.True(t, portfolio.CashBalance.Equal(StartingCash))
	assert.True(t, portfolio.TotalValue.Equal(StartingCash))

	teacher := env.register(t, "mr-t", true)
	_, err = q.GetProfileByUser(ctx, teacher.ID, false)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice", false)

	_, err := env.svc.Register(ctx, RegisterInput{Email: "other@example.com", Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = env.svc.Register(ctx, RegisterInput{Email: "ALICE@example.com", Username: "alice2", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "alice", false)

	for _, login := range []string{"alice", "alice@example.com"} {
		token, err := env.svc.Login(ctx, login, "password123")
		require.NoError(t, err)

		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		}, jwt.WithTimeFunc(env.clock.Now))
		require.NoError(t, err)
		assert.Equal(t, strconv.FormatInt(u.ID, 10), claims.Subject)
		assert.Equal(t, start.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	}

	_, err := env.svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = env.svc.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice", false)
	env.register(t, "bob", false)

	name := "Alice L."
	got, err := env.svc.UpdateUser(ctx, alice.ID, UserUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", got.FullName)

	taken := "bob"
	_, err = env.svc.UpdateUser(ctx, alice.ID, UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestListUsersTeacherOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	student := env.register(t, "alice", false)
	teacher := env.register(t, "mr-t", true)

	_, err := env.svc.ListUsers(ctx, student.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	users, err := env.svc.ListUsers(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	teacher := env.register(t, "mr-t", true)

	_, err := env.svc.GetProfile(ctx, teacher.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// a student whose profile was never created gets one on first access
	orphan := &models.User{Email: "o@example.com", Username: "orphan", PasswordHash: "x", IsActive: true, CreatedAt: start}
	require.NoError(t, env.repo.Queries().CreateUser(ctx, orphan))
	profile, err := env.svc.GetProfile(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, orphan.ID, profile.UserID)
}

func TestUpdateProfileWithCareer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u, _ := env.student(t, "alice", nil)

	career := &models.Career{
		Title: "Software Engineer", RequiresStudentLoan: true, StudentLoanAmount: d("35000"),
		BaseSalaryMin: d("65000"), BaseSalaryMax: d("95000"), CreatedAt: start,
	}
	require.NoError(t, env.repo.Queries().CreateCareer(ctx, career))

	housing := models.HousingRenting
	profile, err := env.svc.UpdateProfile(ctx, u.ID, ProfileUpdate{CareerID: &career.ID, HousingType: &housing})
	require.NoError(t, err)

	assert.Equal(t, career.ID, *profile.CareerID)
	assert.True(t, profile.CurrentSalary.Equal(d("80000")), profile.CurrentSalary.String())
	assert.True(t, profile.WeeklyIncome.Equal(d("1538.46")), profile.WeeklyIncome.String())
	assert.True(t, profile.StudentLoanBalance.Equal(d("35000")))
	assert.True(t, profile.StudentLoanWeeklyPayment.IsPositive())

	missing := int64(999)
	_, err = env.svc.UpdateProfile(ctx, u.ID, ProfileUpdate{CareerID: &missing})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	bad := "castle"
	_, err = env.svc.UpdateProfile(ctx, u.ID, ProfileUpdate{HousingType: &bad})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "alice", false)

	_, err := env.svc.CreateTransaction(ctx, u.ID, TransactionInput{TransactionType: "expense", Amount: d("-12.50"), Category: "food"})
	require.NoError(t, err)
	_, err = env.svc.CreateTransaction(ctx, u.ID, TransactionInput{Amount: d("1")})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	txs, err := env.svc.ListTransactions(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(d("-12.50")))
}
