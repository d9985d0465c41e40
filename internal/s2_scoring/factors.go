package s2_scoring

import (
	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
)

// Inputs are the scoring metrics of one fund with missing values already
// replaced by neutral defaults
type Inputs struct {
	FundID         string
	Canonical      contracts.AssetCategory
	PctPosMonths36 float64
	MaxDrawdown    float64
	Sharpe         float64
	AnnVol         float64
	Ret3M          float64
	Ret6M          float64
	RetConsistency float64
}

// NewInputs fills missing metrics from the neutral table
func NewInputs(r *contracts.FundRecord, neutral strategyconfig.NeutralDefaults) Inputs {
	return Inputs{
		FundID:         r.FundID,
		Canonical:      r.Canonical,
		PctPosMonths36: contracts.ValueOr(r.PctPosMonths36, neutral.PctPosMonths36),
		MaxDrawdown:    contracts.ValueOr(r.MaxDrawdown, neutral.MaxDrawdown),
		Sharpe:         contracts.ValueOr(r.Sharpe, neutral.Sharpe),
		AnnVol:         contracts.ValueOr(r.AnnVol, neutral.AnnVol),
		Ret3M:          contracts.ValueOr(r.Ret3M, neutral.Ret3M),
		Ret6M:          contracts.ValueOr(r.Ret6M, neutral.Ret6M),
		RetConsistency: contracts.ValueOr(r.RetConsistency, neutral.RetConsistency),
	}
}

// Factor scores a population of funds into [0,1], higher is better
type Factor interface {
	Name() string
	Score(funds []Inputs) []float64
}

// WeightedFactor pairs a factor with its composite weight
type WeightedFactor struct {
	Factor Factor
	Weight float64
}

// MetricFactor ranks a single metric ascending across the whole population
type MetricFactor struct {
	name   string
	metric func(Inputs) float64
}

// NewMetricFactor creates an ascending percentile factor over one metric
func NewMetricFactor(name string, metric func(Inputs) float64) *MetricFactor {
	return &MetricFactor{name: name, metric: metric}
}

func (f *MetricFactor) Name() string { return f.name }

func (f *MetricFactor) Score(funds []Inputs) []float64 {
	values := make([]float64, len(funds))
	for i, in := range funds {
		values[i] = f.metric(in)
	}
	return PercentileRank(values)
}

// Reliability ranks the share of positive months over 36 months
func Reliability() Factor {
	return NewMetricFactor(contracts.FactorReliability, func(in Inputs) float64 { return in.PctPosMonths36 })
}

// Downside ranks max drawdown; a shallower (less negative) drawdown ranks higher
func Downside() Factor {
	return NewMetricFactor(contracts.FactorDownside, func(in Inputs) float64 { return in.MaxDrawdown })
}

// Quality ranks the Sharpe ratio
func Quality() Factor {
	return NewMetricFactor(contracts.FactorQuality, func(in Inputs) float64 { return in.Sharpe })
}

// MomentumFactor compares short-term returns only against peers of the
// same canonical category
type MomentumFactor struct{}

// Momentum returns the peer-relative momentum factor
func Momentum() Factor {
	return MomentumFactor{}
}

func (MomentumFactor) Name() string { return contracts.FactorMomentum }

// Score averages within-category percentiles of ret_3m and ret_6m.
// A category with a single member has no peers and gets 0.5.
func (MomentumFactor) Score(funds []Inputs) []float64 {
	out := make([]float64, len(funds))

	groups := make(map[contracts.AssetCategory][]int)
	order := make([]contracts.AssetCategory, 0)
	for i, in := range funds {
		if _, ok := groups[in.Canonical]; !ok {
			order = append(order, in.Canonical)
		}
		groups[in.Canonical] = append(groups[in.Canonical], i)
	}

	for _, cat := range order {
		members := groups[cat]
		if len(members) == 1 {
			out[members[0]] = 0.5
			continue
		}

		r3 := make([]float64, len(members))
		r6 := make([]float64, len(members))
		for k, idx := range members {
			r3[k] = funds[idx].Ret3M
			r6[k] = funds[idx].Ret6M
		}
		p3 := PercentileRank(r3)
		p6 := PercentileRank(r6)
		for k, idx := range members {
			out[idx] = (p3[k] + p6[k]) / 2
		}
	}

	return out
}

// DefaultFactors builds the built-in factor set from config weights
func DefaultFactors(w strategyconfig.FactorWeights) []WeightedFactor {
	return []WeightedFactor{
		{Factor: Reliability(), Weight: w.Reliability},
		{Factor: Downside(), Weight: w.Downside},
		{Factor: Quality(), Weight: w.Quality},
		{Factor: Momentum(), Weight: w.Momentum},
	}
}
