package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

func item(name string, class contracts.AssetClass, cat contracts.AssetCategory, amount float64) contracts.PortfolioItem {
	return contracts.PortfolioItem{
		FundName:          name,
		AssetClass:        class,
		CanonicalCategory: cat,
		Category:          cat.Label(),
		Amount:            amount,
	}
}

func samplePortfolio() contracts.Portfolio {
	return contracts.Portfolio{
		item("Alpha Bluechip", contracts.AssetEquity, contracts.CategoryLargeCap, 50000),
		item("Beta Smallcap", contracts.AssetEquity, contracts.CategorySmallCap, 20000),
		item("Gamma Corporate Bond", contracts.AssetDebt, contracts.CategoryCorporateBond, 20000),
		item("Delta Liquid", contracts.AssetDebt, contracts.CategoryLiquid, 10000),
	}
}

func TestRun_2008Crash(t *testing.T) {
	sim := NewSimulator(strategyconfig.Default(), logger.Nop())

	result, err := sim.Run(samplePortfolio(), "2008_CRASH")
	require.NoError(t, err)

	assert.Equal(t, "2008_CRASH", result.Scenario)
	assert.Equal(t, 100000.0, result.InitialValue)
	assert.InDelta(t, 64100.0, result.FinalValue, 0.01)
	assert.InDelta(t, -35.9, result.DrawdownPct, 0.001)

	require.Len(t, result.Details, 4)
	assert.InDelta(t, -50.0, result.Details[0].ChangePct, 1e-9)
	assert.InDelta(t, 25000.0, result.Details[0].Simulated, 0.01)
	assert.InDelta(t, -65.0, result.Details[1].ChangePct, 1e-9)
	assert.InDelta(t, 8.0, result.Details[2].ChangePct, 1e-9)
	assert.InDelta(t, 5.0, result.Details[3].ChangePct, 1e-9)
	assert.Equal(t, 50000.0, result.Details[0].Original)
}

func TestRun_RateHikeDebtLoses(t *testing.T) {
	sim := NewSimulator(strategyconfig.Default(), logger.Nop())

	p := contracts.Portfolio{
		item("Gamma Gilt", contracts.AssetDebt, contracts.CategoryGilt, 10000),
	}
	result, err := sim.Run(p, "2022_RATES")
	require.NoError(t, err)
	assert.InDelta(t, 9800.0, result.FinalValue, 0.01)
	assert.InDelta(t, -2.0, result.DrawdownPct, 0.001)
}

func TestRun_UnknownScenario(t *testing.T) {
	sim := NewSimulator(strategyconfig.Default(), logger.Nop())

	_, err := sim.Run(samplePortfolio(), "1929_CRASH")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestRun_EmptyPortfolio(t *testing.T) {
	sim := NewSimulator(strategyconfig.Default(), logger.Nop())

	_, err := sim.Run(nil, "2008_CRASH")
	assert.ErrorIs(t, err, ErrEmptyPortfolio)
}

func TestShock_UnknownClassUnaffected(t *testing.T) {
	scenario, ok := strategyconfig.Default().ScenarioByID("2020_COVID")
	require.True(t, ok)

	assert.Equal(t, 0.0, Shock(scenario, contracts.PortfolioItem{AssetClass: "Real Estate", Amount: 100}))
	assert.Equal(t, 0.0, Shock(scenario, item("Gold ETF", contracts.AssetCommodity, contracts.CategoryGold, 100)))
	assert.InDelta(t, -0.38, Shock(scenario, item("Flexi", contracts.AssetEquity, contracts.CategoryFlexiCap, 100)), 1e-12)
}

func TestScenarios(t *testing.T) {
	sim := NewSimulator(strategyconfig.Default(), logger.Nop())

	ids := make([]string, 0)
	for _, s := range sim.Scenarios() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"2008_CRASH", "2020_COVID", "2022_RATES"}, ids)
}

func TestShock_FallsBackToCategoryLabel(t *testing.T) {
	scenario, ok := strategyconfig.Default().ScenarioByID("2008_CRASH")
	require.True(t, ok)

	// API 요청은 canonical_category 없이 표시 라벨만 보낼 수 있음
	smallCap := contracts.PortfolioItem{AssetClass: contracts.AssetEquity, Category: "Small Cap", Amount: 100}
	assert.InDelta(t, -0.65, Shock(scenario, smallCap), 1e-12)

	liquid := contracts.PortfolioItem{AssetClass: contracts.AssetDebt, Category: "Liquid", Amount: 100}
	assert.InDelta(t, 0.05, Shock(scenario, liquid), 1e-12)
}
