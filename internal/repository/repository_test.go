package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func createUser(t *testing.T, q *Queries, name string, teacher bool) *models.User {
	t.Helper()
	u := &models.User{
		Email: name + "@example.com", Username: name, PasswordHash: "x",
		IsActive: true, IsTeacher: teacher, CreatedAt: now,
	}
	require.NoError(t, q.CreateUser(context.Background(), u))
	return u
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name string
		op   string
		err  error
		kind error
		msg  string
	}{
		{name: "no rows", op: "get stock", err: sql.ErrNoRows, kind: apperr.ErrNotFound, msg: "stock: not found"},
		{name: "percent in name", op: "find code 100%", err: sql.ErrNoRows, kind: apperr.ErrNotFound, msg: "code 100%: not found"},
		{name: "sqlite unique", op: "create user", err: errors.New("UNIQUE constraint failed: users.email"), kind: apperr.ErrConflict},
		{name: "other", op: "list stocks", err: errors.New("disk I/O error"), msg: "failed to list stocks: disk I/O error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapErr(tt.op, tt.err)
			assert.Equal(t, tt.kind, apperr.Kind(err))
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
			}
		})
	}
}

func TestExecOneMissingRow(t *testing.T) {
	q := newTestRepo(t).Queries()
	err := q.execOne(context.Background(), "user 42%", "DELETE FROM users WHERE id = ?", 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "user 42%: not found")
}

func TestMigrateIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	assert.NoError(t, repo.Migrate(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	q := newTestRepo(t).Queries()

	alice := createUser(t, q, "alice", false)
	assert.NotZero(t, alice.ID)

	got, err := q.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.CreatedAt.Equal(now))

	byEmail, err := q.FindUserByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = q.GetUser(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	dup := &models.User{Email: "other@example.com", Username: "alice", PasswordHash: "x", CreatedAt: now}
	assert.ErrorIs(t, q.CreateUser(ctx, dup), apperr.ErrConflict)

	assert.ErrorIs(t, q.CheckUserUnique(ctx, "alice", "new@example.com", 0), apperr.ErrConflict)
	assert.NoError(t, q.CheckUserUnique(ctx, "alice", "alice@example.com", alice.ID))

	alice.FullName = "Alice Liddell"
	require.NoError(t, q.UpdateUser(ctx, alice))
	got, err = q.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", got.FullName)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	err := repo.WithTx(ctx, func(q *Queries) error {
		createUser(t, q, "bob", false)
		return apperr.InvalidArgument("stop")
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	users, err := repo.Queries().ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestClassrooms(t *testing.T) {
	ctx := context.Background()
	q := newTestRepo(t).Queries()
	teacher := createUser(t, q, "teach", true)
	student := createUser(t, q, "stu", false)

	c := &models.Classroom{Name: "Finance 101", InviteCode: "ABCD1234", TeacherID: teacher.ID, IsActive: true, CreatedAt: now}
	require.NoError(t, q.CreateClassroom(ctx, c))

	exists, err := q.InviteCodeExists(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := q.FindActiveClassroomByCode(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	require.NoError(t, q.AddClassroomMember(ctx, c.ID, student.ID))
	assert.ErrorIs(t, q.AddClassroomMember(ctx, c.ID, student.ID), apperr.ErrConflict)

	member, err := q.IsClassroomMember(ctx, c.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, member)

	students, err := q.ListClassroomStudents(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "stu", students[0].Username)

	enrolled, err := q.ListClassroomsByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, enrolled, 1)

	require.NoError(t, q.DeleteClassroom(ctx, c.ID))
	_, err = q.GetClassroom(ctx, c.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPortfolioHoldings(t *testing.T) {
	ctx := context.Background()
	q := newTestRepo(t).Queries()
	u := createUser(t, q, "trader", false)

	p := &models.Portfolio{UserID: u.ID, Name: "My Portfolio", CashBalance: decimal.NewFromInt(1000), TotalValue: decimal.NewFromInt(1000), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, q.CreatePortfolio(ctx, p))
	s := &models.Stock{Symbol: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: decimal.RequireFromString("150.25"), LastUpdated: now}
	require.NoError(t, q.CreateStock(ctx, s))

	h := &models.Holding{PortfolioID: p.ID, StockID: s.ID, Shares: decimal.NewFromInt(2), AveragePrice: decimal.RequireFromString("150.25"), CurrentValue: decimal.RequireFromString("300.5"), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, q.CreateHolding(ctx, h))

	holdings, err := q.ListHoldings(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "AAPL", holdings[0].Stock.Symbol)
	assert.True(t, holdings[0].Shares.Equal(decimal.NewFromInt(2)))
	assert.True(t, holdings[0].Stock.CurrentPrice.Equal(decimal.RequireFromString("150.25")))

	ids, err := q.ListPortfolioIDsHolding(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{p.ID}, ids)

	byUser, err := q.GetPortfolioByUser(ctx, u.ID, true)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byUser.ID)

	require.NoError(t, q.DeleteHolding(ctx, h.ID))
	_, err = q.GetHolding(ctx, p.ID, s.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	q := newTestRepo(t).Queries()
	u := createUser(t, q, "saver", false)

	for i := 0; i < 3; i++ {
		tx := &models.Transaction{
			UserID: u.ID, TransactionType: models.TxSalary, Amount: decimal.NewFromInt(int64(100 * (i + 1))),
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, q.CreateTransaction(ctx, tx))
	}
	price := decimal.NewNullDecimal(decimal.NewFromInt(10))
	require.NoError(t, q.CreateTransaction(ctx, &models.Transaction{
		UserID: u.ID, TransactionType: models.TxBuy, Amount: decimal.NewFromInt(-10),
		Shares: decimal.NewNullDecimal(decimal.NewFromInt(1)), PricePerShare: price, CreatedAt: now.Add(5 * time.Hour),
	}))

	txs, err := q.ListTransactions(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TxBuy, txs[0].TransactionType)
	assert.True(t, txs[0].PricePerShare.Valid)
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(300)))
	assert.False(t, txs[1].Shares.Valid)
}

func TestLoanPaymentStats(t *testing.T) {
	ctx := context.Background()
	q := newTestRepo(t).Queries()
	u := createUser(t, q, "borrower", false)

	l := &models.Loan{UserID: u.ID, LoanType: models.LoanPersonal, Principal: decimal.NewFromInt(1000), InterestRate: decimal.RequireFromString("0.08"),
		TermMonths: 12, CurrentBalance: decimal.NewFromInt(1000), Status: models.LoanActive, NextDueDate: now, CreatedAt: now}
	require.NoError(t, q.CreateLoan(ctx, l))
	for _, onTime := range []bool{true, true, false} {
		require.NoError(t, q.CreateLoanPayment(ctx, &models.LoanPayment{LoanID: l.ID, Amount: decimal.NewFromInt(90), OnTime: onTime, PaidAt: now}))
	}

	stats, err := q.ListPaymentStats(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, PaymentStats{LoanID: l.ID, Total: 3, OnTime: 2}, stats[0])

	_, err = q.GetLoan(ctx, l.ID, u.ID+1, false)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLatestCreditScore(t *testing.T) {
	ctx := context.Background()
	q := newTestRepo(t).Queries()
	u := createUser(t, q, "scored", false)

	_, err := q.LatestCreditScore(ctx, u.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, q.CreateCreditScore(ctx, &models.CreditScore{UserID: u.ID, Score: 650, ScoreRange: "FICO", ScoreDate: now.AddDate(0, -2, 0)}))
	require.NoError(t, q.CreateCreditScore(ctx, &models.CreditScore{UserID: u.ID, Score: 700, ScoreRange: "FICO", ScoreDate: now}))

	latest, err := q.LatestCreditScore(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, latest.Score)
}
