package contracts

// Tier is a discrete quality bucket assigned by relative rank
type Tier string

const (
	TierElite    Tier = "ELITE"
	TierStrong   Tier = "STRONG"
	TierStandard Tier = "STANDARD"
)

// Built-in factor names used as keys of ScoredFund.Components
const (
	FactorReliability = "reliability"
	FactorDownside    = "downside"
	FactorQuality     = "quality"
	FactorMomentum    = "momentum"
)

// ScoredFund is a FundRecord with derived scores.
// ⭐ SSOT: S2 → S4 전달 단위 (요청마다 재계산, 영구 저장 금지)
type ScoredFund struct {
	FundRecord
	Components     map[string]float64 `json:"components"` // factor name → percentile [0,1]
	Penalty        float64            `json:"penalty"`
	CompositeScore float64            `json:"composite_score"` // [0,100]
	Rank           int                `json:"rank"`            // 1-based
	Tier           Tier               `json:"tier"`
	Rationale      string             `json:"rationale"`
}

// Component returns a component score and whether the factor exists
func (s *ScoredFund) Component(name string) (float64, bool) {
	v, ok := s.Components[name]
	return v, ok
}

// Metrics returns the metric snapshot reported with a selection
func (s *ScoredFund) Metrics() *FundMetrics {
	return &FundMetrics{
		Sharpe:    s.Sharpe,
		AnnVol:    s.AnnVol,
		AnnReturn: s.AnnReturn,
	}
}
