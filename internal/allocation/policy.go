package allocation

import (
	"math"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

// Policy implements S3: strategic asset allocation
// ⭐ SSOT: Equity/Debt/Commodity 비중 계산은 여기서만
type Policy struct {
	config strategyconfig.Allocation
	logger *logger.Logger
}

// NewPolicy creates a new allocation Policy
func NewPolicy(cfg *strategyconfig.Config, log *logger.Logger) *Policy {
	return &Policy{
		config: cfg.Allocation,
		logger: log.WithStage(contracts.StageAllocation.String()),
	}
}

// Allocate splits capital across asset classes. Adjustments are applied in
// a fixed order and equity is clamped to [0,1] after every step.
func (p *Policy) Allocate(profile contracts.UserProfile, phase contracts.MarketPhase) contracts.AllocationPlan {
	c := p.config

	// 1. 기본 주식 비중: 나이 우선, 없으면 위험성향 표
	equity := p.baseEquity(profile)

	// 2. 위험성향 조정
	switch profile.RiskTolerance {
	case contracts.RiskHigh:
		equity = clamp01(equity + c.HighRiskBonus)
	case contracts.RiskLow:
		equity = clamp01(equity - c.LowRiskPenalty)
	}

	// 3. 단기 투자 (strict <)
	if profile.HorizonYears < c.ShortHorizon.Years {
		equity = clamp01(equity - c.ShortHorizon.Reduction)
	}

	// 4. 시장 국면
	switch phase {
	case contracts.PhaseOverheated:
		equity = clamp01(equity * c.PhaseMultipliers.Overheated)
	case contracts.PhaseUndervalued:
		equity = clamp01(equity * c.PhaseMultipliers.Undervalued)
	}

	// 5. 나머지는 채권
	debt := 1 - equity
	commodity := 0.0

	// 6. 고액 투자자 원자재 편입 (주식/채권에서 절반씩)
	if profile.Amount >= c.Commodity.MinAmount && c.Commodity.Weight > 0 {
		commodity = c.Commodity.Weight
		half := commodity / 2
		fromEquity := math.Min(half, equity)
		equity -= fromEquity
		debt -= commodity - fromEquity
		if debt < 0 {
			// 주식/채권 모두 부족: 가능한 만큼만 편입
			commodity += debt
			debt = 0
		}
	}

	plan := contracts.AllocationPlan{
		contracts.AssetEquity: contracts.Round2(equity),
		contracts.AssetDebt:   contracts.Round2(debt),
	}
	if commodity > 0 {
		plan[contracts.AssetCommodity] = contracts.Round2(commodity)
	}

	p.logger.WithFields(map[string]interface{}{
		"risk":      profile.RiskTolerance,
		"horizon":   profile.HorizonYears,
		"phase":     phase,
		"equity":    plan.Weight(contracts.AssetEquity),
		"debt":      plan.Weight(contracts.AssetDebt),
		"commodity": plan.Weight(contracts.AssetCommodity),
	}).Info("allocation computed")

	return plan
}

func (p *Policy) baseEquity(profile contracts.UserProfile) float64 {
	c := p.config
	if profile.Age != nil {
		raw := (c.AgeAnchor - float64(*profile.Age)) / 100
		return math.Max(c.AgeMinEquity, math.Min(c.AgeMaxEquity, raw))
	}

	switch profile.RiskTolerance {
	case contracts.RiskHigh:
		return c.RiskBase.High
	case contracts.RiskLow:
		return c.RiskBase.Low
	default:
		return c.RiskBase.Other
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
