package audit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/pkg/config"
	"github.com/wonny/fundwise/pkg/database"
	"github.com/wonny/fundwise/pkg/logger"
)

var _ contracts.SnapshotStore = (*Repository)(nil)

// 익명 사용자는 DB에 접근하지 않음 (pool nil이어도 안전)
func TestRepository_AnonymousIsNoop(t *testing.T) {
	repo := NewRepository(nil, logger.Nop())
	ctx := context.Background()

	id, err := repo.SavePortfolioSnapshot(ctx, "", &contracts.Recommendation{})
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, repo.LogInteraction(ctx, "", "generate", nil))

	saved, err := repo.GetLatestPortfolio(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, saved)

	score, err := repo.GetUserRiskScore(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, score)
}

func TestRepository_RoundTrip(t *testing.T) {
	if testing.Short() || os.Getenv("DATABASE_URL") == "" {
		t.Skip("requires DATABASE_URL")
	}

	ctx := context.Background()
	cfg := &config.Config{Database: config.DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		MaxConns:        2,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}}
	db, err := database.New(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db.Pool, logger.Nop())
	rec := &contracts.Recommendation{
		RequestID:    "req-1",
		MarketStatus: contracts.MarketStatus{Phase: contracts.PhaseNeutral},
		Allocation:   contracts.AllocationPlan{contracts.AssetEquity: 0.6, contracts.AssetDebt: 0.4},
		Portfolio: contracts.Portfolio{
			{FundID: "F1", FundName: "Alpha Bluechip", AssetClass: contracts.AssetEquity, Amount: 60000, Weight: 0.6},
		},
		ConfigHash: "abc",
	}

	id, err := repo.SavePortfolioSnapshot(ctx, "test-user", rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	saved, err := repo.GetLatestPortfolio(ctx, "test-user")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, 0.6, saved.Allocation.Weight(contracts.AssetEquity))
	assert.True(t, saved.Portfolio.ContainsFund("F1"))
}
