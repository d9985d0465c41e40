package s2_scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

// Rationale phrases
const (
	RationaleDownside    = "Superior Downside Protection"
	RationaleReliability = "High Reliability (>80% Positive Months)"
	RationaleQuality     = "Top-Tier Risk-Adjusted Returns"
	RationaleBalanced    = "Selected for Balanced Performance"
)

// standout priority: 첫 번째로 임계값을 넘는 컴포넌트만 사용
var standouts = []struct {
	component string
	phrase    string
}{
	{contracts.FactorDownside, RationaleDownside},
	{contracts.FactorReliability, RationaleReliability},
	{contracts.FactorQuality, RationaleQuality},
}

// Scorer implements S2: percentile composite score + tiers
// ⭐ SSOT: S2 점수 계산은 여기서만
type Scorer struct {
	config  strategyconfig.Scoring
	factors []WeightedFactor
	logger  *logger.Logger
}

// Option customizes a Scorer
type Option func(*Scorer)

// WithFactors replaces the built-in factor set
func WithFactors(factors ...WeightedFactor) Option {
	return func(s *Scorer) {
		s.factors = factors
	}
}

// NewScorer creates a scorer with the default factor set from config
func NewScorer(cfg *strategyconfig.Config, log *logger.Logger, opts ...Option) *Scorer {
	s := &Scorer{
		config:  cfg.Scoring,
		factors: DefaultFactors(cfg.Scoring.Weights),
		logger:  log.WithStage(contracts.StageScoring.String()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Factors returns the active factor names in weight order
func (s *Scorer) Factors() []string {
	names := make([]string, 0, len(s.factors))
	for _, f := range s.factors {
		names = append(names, f.Factor.Name())
	}
	return names
}

// Score ranks the eligible universe. The result is sorted by composite
// score descending; ties keep universe order.
func (s *Scorer) Score(universe *contracts.Universe) []contracts.ScoredFund {
	n := len(universe.Funds)
	if n == 0 {
		s.logger.Warn("empty universe, nothing to score")
		return []contracts.ScoredFund{}
	}

	inputs := make([]Inputs, n)
	for i := range universe.Funds {
		inputs[i] = NewInputs(&universe.Funds[i], s.config.Neutral)
	}

	// 팩터별 백분위 (전체 모집단 기준)
	components := make([][]float64, len(s.factors))
	for k, wf := range s.factors {
		components[k] = wf.Factor.Score(inputs)
	}

	scored := make([]contracts.ScoredFund, n)
	for i := range universe.Funds {
		comp := make(map[string]float64, len(s.factors))
		raw := 0.0
		for k, wf := range s.factors {
			comp[wf.Factor.Name()] = components[k][i]
			raw += wf.Weight * components[k][i]
		}

		penalty := s.debtPenalty(inputs[i])
		scored[i] = contracts.ScoredFund{
			FundRecord:     universe.Funds[i],
			Components:     comp,
			Penalty:        penalty,
			CompositeScore: clip(100*raw-penalty, 0, 100),
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].CompositeScore > scored[b].CompositeScore
	})

	eliteN, strongN := s.tierCounts(n)
	for i := range scored {
		scored[i].Rank = i + 1
		switch {
		case i < eliteN:
			scored[i].Tier = contracts.TierElite
		case i < eliteN+strongN:
			scored[i].Tier = contracts.TierStrong
		default:
			scored[i].Tier = contracts.TierStandard
		}
		scored[i].Rationale = s.rationale(&scored[i])
	}

	s.logger.WithFields(map[string]interface{}{
		"funds":     n,
		"elite":     eliteN,
		"strong":    strongN,
		"top_score": scored[0].CompositeScore,
		"top_fund":  scored[0].FundID,
	}).Info("scoring completed")

	return scored
}

// debtPenalty subtracts points from volatile debt funds
func (s *Scorer) debtPenalty(in Inputs) float64 {
	if !in.Canonical.IsDebt() {
		return 0
	}
	p := s.config.DebtPenalty
	switch {
	case in.AnnVol > p.UpperVol:
		return p.UpperPenalty
	case in.AnnVol > p.LowerVol:
		return p.LowerPenalty
	default:
		return 0
	}
}

// tierCounts returns floor(n·pct) for elite and strong tiers
func (s *Scorer) tierCounts(n int) (int, int) {
	elite := int(math.Floor(float64(n)*s.config.Tiers.ElitePct + 1e-9))
	strong := int(math.Floor(float64(n)*s.config.Tiers.StrongPct + 1e-9))
	return elite, strong
}

func (s *Scorer) rationale(f *contracts.ScoredFund) string {
	parts := make([]string, 0, 2)
	if f.Tier == contracts.TierElite {
		parts = append(parts, fmt.Sprintf("Top %.0f%% Consistency", s.config.Tiers.ElitePct*100))
	}

	for _, so := range standouts {
		if v, ok := f.Component(so.component); ok && v > s.config.StandoutThreshold {
			parts = append(parts, so.phrase)
			break
		}
	}

	if len(parts) == 0 {
		return RationaleBalanced
	}
	return strings.Join(parts, " | ")
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
