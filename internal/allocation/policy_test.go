package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

func age(v int) *int { return &v }

func newPolicy() *Policy {
	return NewPolicy(strategyconfig.Default(), logger.Nop())
}

func TestPolicy_Allocate(t *testing.T) {
	tests := []struct {
		name      string
		profile   contracts.UserProfile
		phase     contracts.MarketPhase
		equity    float64
		debt      float64
		commodity float64
	}{
		{
			name:    "young aggressive long horizon",
			profile: contracts.UserProfile{Amount: 100000, HorizonYears: 10, RiskTolerance: contracts.RiskHigh, Age: age(30)},
			phase:   contracts.PhaseNeutral,
			equity:  0.90, debt: 0.10,
		},
		{
			name:    "50 low risk 3 years is not short horizon",
			profile: contracts.UserProfile{Amount: 100000, HorizonYears: 3, RiskTolerance: contracts.RiskLow, Age: age(50)},
			phase:   contracts.PhaseNeutral,
			equity:  0.45, debt: 0.55,
		},
		{
			name:    "short horizon",
			profile: contracts.UserProfile{Amount: 100000, HorizonYears: 2, RiskTolerance: contracts.RiskModerate},
			phase:   contracts.PhaseNeutral,
			equity:  0.25, debt: 0.75,
		},
		{
			name:    "no age moderate uses risk table",
			profile: contracts.UserProfile{Amount: 100000, HorizonYears: 5, RiskTolerance: contracts.RiskModerate},
			phase:   contracts.PhaseNeutral,
			equity:  0.50, debt: 0.50,
		},
		{
			name:    "age clamp at 0.90",
			profile: contracts.UserProfile{Amount: 100000, HorizonYears: 10, RiskTolerance: contracts.RiskModerate, Age: age(18)},
			phase:   contracts.PhaseNeutral,
			equity:  0.90, debt: 0.10,
		},
		{
			name:    "high risk capped at 1 then undervalued",
			profile: contracts.UserProfile{Amount: 100000, HorizonYears: 10, RiskTolerance: contracts.RiskHigh, Age: age(18)},
			phase:   contracts.PhaseUndervalued,
			equity:  1.00, debt: 0.00,
		},
		{
			name:    "commodity carve-out",
			profile: contracts.UserProfile{Amount: 600000, HorizonYears: 5, RiskTolerance: contracts.RiskModerate},
			phase:   contracts.PhaseNeutral,
			equity:  0.45, debt: 0.45, commodity: 0.10,
		},
		{
			name:    "commodity funded from debt when equity is zero",
			profile: contracts.UserProfile{Amount: 1000000, HorizonYears: 1, RiskTolerance: contracts.RiskLow},
			phase:   contracts.PhaseNeutral,
			equity:  0.00, debt: 0.90, commodity: 0.10,
		},
		{
			name:    "overheated shrinks equity",
			profile: contracts.UserProfile{Amount: 100000, HorizonYears: 10, RiskTolerance: contracts.RiskHigh, Age: age(30)},
			phase:   contracts.PhaseOverheated,
			equity:  0.765, debt: 0.235,
		},
	}

	p := newPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := p.Allocate(tt.profile, tt.phase)

			assert.InDelta(t, tt.equity, plan.Weight(contracts.AssetEquity), 0.006)
			assert.InDelta(t, tt.debt, plan.Weight(contracts.AssetDebt), 0.006)
			assert.InDelta(t, tt.commodity, plan.Weight(contracts.AssetCommodity), 0.006)
			assert.InDelta(t, 1.0, plan.Sum(), 0.02)
			if tt.commodity == 0 {
				assert.NotContains(t, plan, contracts.AssetCommodity)
			}
		})
	}
}

func TestPolicy_EquityNonIncreasingInAge(t *testing.T) {
	p := newPolicy()
	risks := []contracts.RiskTolerance{contracts.RiskLow, contracts.RiskModerate, contracts.RiskHigh}
	phases := []contracts.MarketPhase{contracts.PhaseOverheated, contracts.PhaseNeutral, contracts.PhaseUndervalued}

	for _, risk := range risks {
		for _, phase := range phases {
			prev := 2.0
			for a := 30; a <= 60; a++ {
				plan := p.Allocate(contracts.UserProfile{
					Amount: 100000, HorizonYears: 5, RiskTolerance: risk, Age: age(a),
				}, phase)
				eq := plan.Weight(contracts.AssetEquity)
				assert.LessOrEqual(t, eq, prev, "risk=%s phase=%s age=%d", risk, phase, a)
				prev = eq
			}
		}
	}
}

func TestPolicy_CommodityTakesFromBoth(t *testing.T) {
	p := newPolicy()
	base := contracts.UserProfile{HorizonYears: 5, RiskTolerance: contracts.RiskModerate, Age: age(40)}

	small := base
	small.Amount = 100000
	large := base
	large.Amount = 750000

	before := p.Allocate(small, contracts.PhaseNeutral)
	after := p.Allocate(large, contracts.PhaseNeutral)

	assert.InDelta(t, 0.10, after.Weight(contracts.AssetCommodity), 1e-9)
	assert.InDelta(t, before.Weight(contracts.AssetEquity)-0.05, after.Weight(contracts.AssetEquity), 0.011)
	assert.InDelta(t, before.Weight(contracts.AssetDebt)-0.05, after.Weight(contracts.AssetDebt), 0.011)
}
