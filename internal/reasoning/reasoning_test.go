package reasoning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
)

func newReasoner() *Reasoner {
	return NewReasoner(strategyconfig.Default())
}

func portfolio(equityW, debtW, score float64) contracts.Portfolio {
	return contracts.Portfolio{
		{FundID: "E", AssetClass: contracts.AssetEquity, Weight: equityW, Score: score},
		{FundID: "D", AssetClass: contracts.AssetDebt, Weight: debtW, Score: score},
	}
}

func TestReasoner_Confidence(t *testing.T) {
	r := newReasoner()

	tests := []struct {
		name  string
		p     contracts.Portfolio
		phase contracts.MarketPhase
		want  float64
	}{
		{"neutral base plus quality", portfolio(0.5, 0.5, 50), contracts.PhaseNeutral, 80},
		{"overheated cautious", portfolio(0.5, 0.5, 50), contracts.PhaseOverheated, 90},
		{"overheated aggressive", portfolio(0.8, 0.2, 50), contracts.PhaseOverheated, 70},
		{"undervalued aggressive", portfolio(0.7, 0.3, 50), contracts.PhaseUndervalued, 90},
		{"undervalued cautious", portfolio(0.4, 0.6, 50), contracts.PhaseUndervalued, 80},
		{"cap at 99", portfolio(0.7, 0.3, 100), contracts.PhaseUndervalued, 99},
		{"rounded to one decimal", portfolio(0.5, 0.5, 63.33), contracts.PhaseNeutral, 82.7},
		{"empty portfolio", contracts.Portfolio{}, contracts.PhaseNeutral, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.Confidence(tt.p, tt.phase), 1e-9)
		})
	}
}

func TestReasoner_StabilityLabel(t *testing.T) {
	r := newReasoner()
	assert.Equal(t, LabelHigh, r.StabilityLabel(80.1))
	assert.Equal(t, LabelModerate, r.StabilityLabel(80))
	assert.Equal(t, LabelModerate, r.StabilityLabel(50.1))
	assert.Equal(t, LabelLow, r.StabilityLabel(50))
}

func TestReasoner_Explain(t *testing.T) {
	r := newReasoner()
	age := 30

	text := r.Explain(
		contracts.UserProfile{Amount: 100000, HorizonYears: 10, RiskTolerance: contracts.RiskHigh, Age: &age},
		contracts.AllocationPlan{contracts.AssetEquity: 0.9, contracts.AssetDebt: 0.1},
		contracts.MarketStatus{Phase: contracts.PhaseNeutral, Regime: contracts.RegimeVolatile},
	)

	assert.True(t, strings.HasPrefix(text, "We have designed a **90% Equity / 10% Debt** portfolio for you."))
	assert.Contains(t, text, "\n\n**Why this split?** At 30 years old")
	assert.Contains(t, text, "long investment horizon")
	assert.Contains(t, text, "high risk tolerance")
	assert.Contains(t, text, "\n\n**Market Sensitivity:** The market is currently experiencing **High Volatility (>20%)**. Valuations are **Fair**.")
}

func TestReasoner_ExplainDefensive(t *testing.T) {
	r := newReasoner()
	age := 58

	text := r.Explain(
		contracts.UserProfile{Amount: 800000, HorizonYears: 2, RiskTolerance: contracts.RiskLow, Age: &age},
		contracts.AllocationPlan{contracts.AssetEquity: 0.05, contracts.AssetDebt: 0.85, contracts.AssetCommodity: 0.10},
		contracts.MarketStatus{Phase: contracts.PhaseOverheated, Regime: contracts.RegimeStable},
	)

	assert.Contains(t, text, "**5% Equity / 85% Debt / 10% Commodity**")
	assert.Contains(t, text, "At 58, preserving your accumulated capital")
	assert.Contains(t, text, "within 3 years")
	assert.Contains(t, text, "preference for safety")
	assert.Contains(t, text, "**Stable (<10% Volatility)**. Valuations appear **Overheated**.")
}

func TestReasoner_ExplainNoReasons(t *testing.T) {
	r := newReasoner()
	text := r.Explain(
		contracts.UserProfile{Amount: 100000, HorizonYears: 5, RiskTolerance: contracts.RiskModerate},
		contracts.AllocationPlan{contracts.AssetEquity: 0.5, contracts.AssetDebt: 0.5},
		contracts.MarketStatus{Phase: contracts.PhaseUndervalued, Regime: contracts.RegimeNormal},
	)

	assert.Contains(t, text, "**Why this split?** \n\n")
	assert.True(t, strings.HasSuffix(text, "**Market Sensitivity:** Valuations are **Attractive**. We have maximized Equity allocation to capture potential upside."))
}
