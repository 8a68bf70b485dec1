package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graduate(p *models.FinancialProfile) {
	p.CurrentSalary = d("65000")
	p.HousingWeeklyCost = d("300")
	p.WeeklyExpenses = d("200")
	p.StudentLoanBalance = d("35000")
}

type recordingNotifier struct {
	users   []int64
	results []*models.WeeklySimulationResult
	err     error
}

func (n *recordingNotifier) WeeklyStatement(_ context.Context, u *models.User, r *models.WeeklySimulationResult) error {
	n.users = append(n.users, u.ID)
	n.results = append(n.results, r)
	return n.err
}

func TestAdvanceWeek(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	env := newTestEnv(t, WithNotifier(notifier))
	u, profile := env.student(t, "alice", graduate)

	result, err := env.svc.AdvanceWeek(ctx, profile.ID)
	require.NoError(t, err)

	assert.True(t, result.GrossIncome.Equal(d("1250")), result.GrossIncome.String())
	assert.True(t, result.Tax.Equal(d("240.77")), result.Tax.String())
	assert.True(t, result.LoanPayment.Equal(d("97.32")), result.LoanPayment.String())
	assert.True(t, result.NetIncome.Equal(d("911.91")), result.NetIncome.String())
	assert.True(t, result.Remaining.Equal(d("411.91")), result.Remaining.String())
	assert.True(t, result.NewSavingsBalance.Equal(d("411.91")))
	assert.True(t, result.NewLoanBalance.Equal(d("34902.68")))
	assert.Equal(t, 1, result.WeeksPlayed)
	assert.NotNil(t, result.Events)

	stored, err := env.repo.Queries().GetProfile(ctx, profile.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.WeeksPlayed)
	assert.True(t, stored.SavingsBalance.Equal(d("411.91")))
	assert.True(t, stored.TotalTaxPaid.Equal(d("240.77")))
	assert.True(t, stored.StudentLoanBalance.Equal(d("34902.68")))

	txs, err := env.svc.ListTransactions(ctx, u.ID, 0)
	require.NoError(t, err)
	kinds := map[string]string{}
	for _, tx := range txs {
		kinds[tx.TransactionType] = tx.Amount.String()
	}
	assert.Equal(t, map[string]string{
		models.TxSalary:      "1250",
		models.TxTax:         "-240.77",
		models.TxHousing:     "-300",
		models.TxExpense:     "-200",
		models.TxStudentLoan: "-97.32",
	}, kinds)

	assert.Equal(t, []int64{u.ID}, notifier.users)
}

func TestAdvanceWeekAbsorbsShortfall(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u, profile := env.student(t, "alice", func(p *models.FinancialProfile) {
		p.HousingWeeklyCost = d("300")
		p.WeeklyExpenses = d("200")
		p.SavingsBalance = d("50")
	})

	result, err := env.svc.AdvanceWeek(ctx, profile.ID)
	require.NoError(t, err)
	assert.True(t, result.Remaining.Equal(d("-500")), result.Remaining.String())
	assert.True(t, result.NewSavingsBalance.Equal(d("50")))

	txs, err := env.svc.ListTransactions(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 4)
}

func TestAdvanceWeekTriggersEvents(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, profile := env.student(t, "alice", graduate)

	q := env.repo.Queries()
	require.NoError(t, q.CreateEvent(ctx, &models.FinancialEvent{
		Title: "Birthday money", EventType: models.EventBonus,
		AmountMin: d("100"), AmountMax: d("100"), Probability: 1, IsActive: true, CreatedAt: start,
	}))
	require.NoError(t, q.CreateEvent(ctx, &models.FinancialEvent{
		Title: "Never happens", EventType: models.EventFine,
		AmountMin: d("10"), AmountMax: d("20"), Probability: 0, IsActive: true, CreatedAt: start,
	}))

	result, err := env.svc.AdvanceWeek(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Birthday money", result.Events[0].Title)
	assert.True(t, result.EventImpact.Equal(d("100")))
	assert.True(t, result.Remaining.Equal(d("511.91")), result.Remaining.String())

	txs, err := env.svc.ListTransactions(ctx, profile.UserID, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 6)
}

func TestAdvanceWeekIsAtomic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, profile := env.student(t, "alice", graduate)

	_, err := env.repo.DB().ExecContext(ctx, "DROP TABLE transactions")
	require.NoError(t, err)

	_, err = env.svc.AdvanceWeek(ctx, profile.ID)
	require.Error(t, err)

	stored, err := env.repo.Queries().GetProfile(ctx, profile.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.WeeksPlayed)
	assert.True(t, stored.SavingsBalance.IsZero())
	assert.True(t, stored.StudentLoanBalance.Equal(d("35000")))
	assert.True(t, stored.TotalTaxPaid.IsZero())
}

func TestAdvanceWeekNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.AdvanceWeek(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAdvanceWeekNotifierFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	env := newTestEnv(t, WithNotifier(notifier))
	u, _ := env.student(t, "alice", graduate)

	result, err := env.svc.AdvanceWeekForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.WeeksPlayed)
	assert.Len(t, notifier.results, 1)

	teacher := env.register(t, "mr-t", true)
	_, err = env.svc.AdvanceWeekForUser(ctx, teacher.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
