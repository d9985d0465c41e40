package brain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/internal/allocation"
	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/market"
	"github.com/wonny/fundwise/internal/portfolio"
	"github.com/wonny/fundwise/internal/s0_data"
	"github.com/wonny/fundwise/internal/s1_universe"
	"github.com/wonny/fundwise/internal/s2_scoring"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

type fakeFeatures struct {
	table *contracts.FeatureTable
	err   error
}

func (f *fakeFeatures) LoadLatest(ctx context.Context) (*contracts.FeatureTable, error) {
	return f.table, f.err
}

type failingMarket struct{}

func (failingMarket) Status(ctx context.Context) (*contracts.MarketStatus, error) {
	return nil, errors.New("index feed down")
}

type fakeSnapshots struct {
	saveErr  error
	saved    int
	actions  []string
	riskCall int
}

func (f *fakeSnapshots) SavePortfolioSnapshot(ctx context.Context, userID string, rec *contracts.Recommendation) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved++
	return "snap-1", nil
}

func (f *fakeSnapshots) LogInteraction(ctx context.Context, userID, action string, details interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeSnapshots) GetLatestPortfolio(ctx context.Context, userID string) (*contracts.SavedPortfolio, error) {
	return nil, nil
}

func (f *fakeSnapshots) GetUserRiskScore(ctx context.Context, userID string) (*float64, error) {
	f.riskCall++
	score := 6.5
	return &score, nil
}

var asOf = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func fund(id string, cat contracts.AssetCategory, sharpe, dd, pos, vol float64) contracts.FundRecord {
	aum := 5000.0
	return contracts.FundRecord{
		FundFeatureSnapshot: contracts.FundFeatureSnapshot{
			FundID:         id,
			AsOfDate:       asOf,
			Sharpe:         contracts.Float(sharpe),
			MaxDrawdown:    contracts.Float(dd),
			PctPosMonths36: contracts.Float(pos),
			AnnVol:         contracts.Float(vol),
			Ret3M:          contracts.Float(sharpe / 10),
			Ret6M:          contracts.Float(sharpe / 5),
		},
		Metadata: &contracts.FundMetadata{
			FundID:   id,
			FundName: fmt.Sprintf("%s %s Fund - Regular Growth", id, cat.Label()),
			Category: cat.Label(),
			AUMCr:    &aum,
		},
		Canonical: cat,
	}
}

func fixtureTable() *contracts.FeatureTable {
	records := []contracts.FundRecord{
		fund("LC1", contracts.CategoryLargeCap, 1.2, -0.20, 0.70, 0.15),
		fund("LC2", contracts.CategoryLargeCap, 0.9, -0.25, 0.65, 0.16),
		fund("MC1", contracts.CategoryMidCap, 1.1, -0.30, 0.62, 0.20),
		fund("MC2", contracts.CategoryMidCap, 0.8, -0.35, 0.60, 0.22),
		fund("SC1", contracts.CategorySmallCap, 1.0, -0.40, 0.58, 0.25),
		fund("FC1", contracts.CategoryFlexiCap, 1.05, -0.22, 0.66, 0.17),
		fund("LQ1", contracts.CategoryLiquid, 2.0, -0.01, 0.99, 0.01),
		fund("LQ2", contracts.CategoryLiquid, 1.8, -0.01, 0.98, 0.01),
		fund("CB1", contracts.CategoryCorporateBond, 1.4, -0.03, 0.90, 0.02),
		fund("GT1", contracts.CategoryGilt, 0.7, -0.06, 0.75, 0.04),
		fund("GD1", contracts.CategoryGold, 0.6, -0.15, 0.55, 0.14),
	}
	return &contracts.FeatureTable{AsOfDate: asOf, Records: records}
}

func newTestEngine(t *testing.T, features contracts.FeatureStore, mkt contracts.MarketPhaseProvider, store contracts.SnapshotStore) *Engine {
	t.Helper()

	cfg := strategyconfig.Default()
	log := logger.Nop()

	eng, err := NewEngine(cfg, Components{
		Features: features,
		Market:   mkt,
		Filter:   s1_universe.NewFilter(cfg, log),
		Scorer:   s2_scoring.NewScorer(cfg, log),
		Policy:   allocation.NewPolicy(cfg, log),
		Selector: portfolio.NewSelector(cfg, portfolio.DefaultConstraints(), log),
		Store:    store,
	}, log)
	require.NoError(t, err)
	return eng
}

func moderateProfile(amount float64) contracts.UserProfile {
	age := 35
	return contracts.UserProfile{
		Amount:        amount,
		HorizonYears:  5,
		RiskTolerance: contracts.RiskModerate,
		Age:           &age,
	}
}

func TestRecommend_FullPortfolio(t *testing.T) {
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), nil)

	rec, err := eng.Recommend(context.Background(), moderateProfile(100000))
	require.NoError(t, err)

	assert.NotEmpty(t, rec.RequestID)
	assert.Equal(t, eng.ConfigHash(), rec.ConfigHash)
	assert.Equal(t, asOf, rec.AsOfDate)
	assert.Empty(t, rec.UnfilledSlots)

	// equity_standard 3슬롯 + debt_standard 2슬롯
	require.Len(t, rec.Portfolio, 5)
	assert.InDelta(t, 100000.0, rec.Portfolio.TotalAmount(), 0.05)
	assert.InDelta(t, 1.0, rec.Portfolio.TotalWeight(), 0.001)

	seen := map[string]bool{}
	for _, item := range rec.Portfolio {
		assert.False(t, seen[item.FundID], "duplicate fund %s", item.FundID)
		seen[item.FundID] = true
	}

	assert.Contains(t, rec.Explanation, "Equity")
	assert.Greater(t, rec.ConfidenceScore, 70.0)
	assert.NotEmpty(t, rec.StabilityLabel)
	assert.Len(t, rec.Sections["equity"], 3)
	assert.Len(t, rec.Sections["debt"], 2)
}

func TestRecommend_LargeAmountAddsCommodity(t *testing.T) {
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), nil)

	rec, err := eng.Recommend(context.Background(), moderateProfile(1000000))
	require.NoError(t, err)

	require.Len(t, rec.Sections["commodity"], 1)
	assert.Equal(t, "GD1", rec.Sections["commodity"][0].FundID)
	assert.Greater(t, rec.Allocation.Weight(contracts.AssetCommodity), 0.0)
}

func TestRecommend_LowRiskUsesDefensiveSlots(t *testing.T) {
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), nil)

	profile := contracts.UserProfile{Amount: 100000, HorizonYears: 5, RiskTolerance: contracts.RiskLow}
	rec, err := eng.Recommend(context.Background(), profile)
	require.NoError(t, err)

	assert.True(t, rec.Portfolio.ContainsFund("GT1"))
	assert.False(t, rec.Portfolio.ContainsFund("CB1"))
	assert.Greater(t, rec.Allocation.Weight(contracts.AssetDebt), rec.Allocation.Weight(contracts.AssetEquity))
}

func TestRecommend_InvalidProfile(t *testing.T) {
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), nil)

	_, err := eng.Recommend(context.Background(), contracts.UserProfile{HorizonYears: 5, RiskTolerance: contracts.RiskHigh})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestRecommend_EmptyFeatureStore(t *testing.T) {
	tests := []struct {
		name     string
		features *fakeFeatures
	}{
		{"no rows", &fakeFeatures{table: &contracts.FeatureTable{}}},
		{"store error", &fakeFeatures{err: fmt.Errorf("load: %w", s0_data.ErrEmptyFeatureStore)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(t, tt.features, market.NewStaticProvider(contracts.PhaseNeutral), nil)

			_, err := eng.Recommend(context.Background(), moderateProfile(100000))
			assert.ErrorIs(t, err, ErrEmptyFeatureStore)
		})
	}
}

func TestRecommend_MarketFailureIsNeutral(t *testing.T) {
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()}, failingMarket{}, nil)

	rec, err := eng.Recommend(context.Background(), moderateProfile(100000))
	require.NoError(t, err)
	assert.Equal(t, contracts.PhaseNeutral, rec.MarketStatus.Phase)
}

func TestRecommendForUser_Persists(t *testing.T) {
	store := &fakeSnapshots{}
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), store)

	rec, err := eng.RecommendForUser(context.Background(), "user-42", moderateProfile(100000))
	require.NoError(t, err)

	assert.Equal(t, 1, store.saved)
	assert.Equal(t, []string{"generate_portfolio"}, store.actions)
	assert.Equal(t, "snap-1", rec.SnapshotID)
	require.NotNil(t, rec.HistoricRiskScore)
	assert.Equal(t, 6.5, *rec.HistoricRiskScore)
}

func TestRecommendForUser_PersistenceFailureIsSoft(t *testing.T) {
	store := &fakeSnapshots{saveErr: errors.New("db down")}
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), store)

	rec, err := eng.RecommendForUser(context.Background(), "user-42", moderateProfile(100000))
	require.NoError(t, err)
	assert.Empty(t, rec.SnapshotID)
	assert.NotEmpty(t, rec.Portfolio)
}

func TestRecommend_AnonymousSkipsStore(t *testing.T) {
	store := &fakeSnapshots{}
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), store)

	_, err := eng.Recommend(context.Background(), moderateProfile(100000))
	require.NoError(t, err)
	assert.Zero(t, store.saved)
	assert.Zero(t, store.riskCall)
}

func TestRanked(t *testing.T) {
	eng := newTestEngine(t, &fakeFeatures{table: fixtureTable()},
		market.NewStaticProvider(contracts.PhaseNeutral), nil)

	ranked, err := eng.Ranked(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 11, ranked.BeforeCount)
	assert.Equal(t, 11, ranked.AfterCount)
	require.Len(t, ranked.Funds, 11)
	assert.Equal(t, 1, ranked.Funds[0].Rank)
	assert.NotNil(t, ranked.Quality)
}

func TestNewEngine_MissingComponent(t *testing.T) {
	_, err := NewEngine(strategyconfig.Default(), Components{}, logger.Nop())
	assert.Error(t, err)
}
