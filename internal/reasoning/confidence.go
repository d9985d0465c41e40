package reasoning

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
)

// Stability labels
const (
	LabelHigh     = "High"
	LabelModerate = "Moderate"
	LabelLow      = "Low"
)

// Reasoner implements S5: confidence score and explanation
// ⭐ SSOT: S5 신뢰도/설명 문구는 여기서만
type Reasoner struct {
	config strategyconfig.Confidence
}

// NewReasoner creates a new Reasoner
func NewReasoner(cfg *strategyconfig.Config) *Reasoner {
	return &Reasoner{config: cfg.Confidence}
}

// Confidence scores how well the portfolio fits the market phase, plus a
// bonus for average fund quality. Result is capped and rounded to 0.1.
func (r *Reasoner) Confidence(portfolio contracts.Portfolio, phase contracts.MarketPhase) float64 {
	c := r.config
	score := c.Base

	equity := portfolio.ClassWeight(contracts.AssetEquity)
	debt := portfolio.ClassWeight(contracts.AssetDebt)

	switch phase {
	case contracts.PhaseOverheated:
		if debt >= c.OverheatedDebtMin {
			score += c.OverheatedDebtBonus
		}
		if equity > c.OverheatedEquityMax {
			score -= c.OverheatedEquityPenalty
		}
	case contracts.PhaseUndervalued:
		if equity >= c.UndervaluedEquityMin {
			score += c.UndervaluedEquityBonus
		}
	}

	if len(portfolio) > 0 {
		scores := make(stats.Float64Data, 0, len(portfolio))
		for _, item := range portfolio {
			scores = append(scores, item.Score)
		}
		if mean, err := scores.Mean(); err == nil {
			score += mean / 100 * c.QualityBonusMax
		}
	}

	return math.Min(c.Cap, math.Round(score*10)/10)
}

// StabilityLabel buckets a confidence score
func (r *Reasoner) StabilityLabel(score float64) string {
	switch {
	case score > r.config.HighLabelAbove:
		return LabelHigh
	case score > r.config.ModerateLabelAbove:
		return LabelModerate
	default:
		return LabelLow
	}
}
