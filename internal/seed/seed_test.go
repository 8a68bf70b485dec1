package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Careers, 6)
	assert.Len(t, c.Stocks, 6)
	assert.Len(t, c.Events, 6)
	assert.Equal(t, "Software Engineer", c.Careers[0].Title)
	assert.True(t, c.Careers[0].StudentLoanAmount.Equal(decimal.NewFromInt(35000)))
	assert.True(t, c.Stocks[0].CurrentPrice.Equal(decimal.RequireFromString("175.50")))
}

func TestParseRejectsBadCatalog(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "salary range", yaml: "careers:\n  - {title: X, base_salary_min: \"10\", base_salary_max: \"5\"}\n"},
		{name: "price", yaml: "stocks:\n  - {symbol: X, current_price: \"0\"}\n"},
		{name: "probability", yaml: "events:\n  - {title: X, probability: 1.5}\n"},
		{name: "syntax", yaml: "careers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := repository.Open("sqlite", filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewRepository(db)
	require.NoError(t, repo.Migrate(ctx))

	c, err := Default()
	require.NoError(t, err)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := Apply(ctx, repo, c, now)
	require.NoError(t, err)
	assert.Equal(t, Result{Careers: 6, Stocks: 6, Events: 6}, first)

	second, err := Apply(ctx, repo, c, now)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	events, err := repo.Queries().ListActiveEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 6)
}
