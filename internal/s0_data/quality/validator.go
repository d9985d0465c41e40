package quality

import (
	"fmt"
	"time"

	"github.com/wonny/fundwise/internal/contracts"
)

// Report summarizes metric coverage of one feature snapshot
type Report struct {
	AsOfDate     time.Time          `json:"as_of_date"`
	TotalFunds   int                `json:"total_funds"`
	WithMetadata int                `json:"with_metadata"`
	Coverage     map[string]float64 `json:"coverage"` // metric → non-null ratio
	QualityScore float64            `json:"quality_score"`
	Passed       bool               `json:"passed"`
}

// Config holds quality gate thresholds
type Config struct {
	MinMetadataCoverage float64 `yaml:"min_metadata_coverage"` // 0.80
	MinScore            float64 `yaml:"min_score"`             // 0.60
}

// DefaultConfig returns the thresholds used by the engine
func DefaultConfig() Config {
	return Config{
		MinMetadataCoverage: 0.80,
		MinScore:            0.60,
	}
}

// QualityGate measures how complete a feature table is.
// It never blocks a recommendation: missing metrics fall back to neutral
// defaults in S2, the report only tells how much of that happened.
type QualityGate struct {
	config Config
}

// NewQualityGate creates a new QualityGate instance
func NewQualityGate(config Config) *QualityGate {
	return &QualityGate{config: config}
}

// 가중치 (합계 = 1.0): 점수 계산에 직접 쓰이는 지표일수록 높음
var metricWeights = map[string]float64{
	"metadata":          0.20,
	"aum_cr":            0.10,
	"pct_pos_months_36": 0.15,
	"max_drawdown":      0.15,
	"sharpe":            0.15,
	"ret_3m":            0.075,
	"ret_6m":            0.075,
	"ann_vol":           0.10,
}

// Check computes per-metric coverage for a table
// ⭐ SSOT: S0 품질 리포트
func (g *QualityGate) Check(table *contracts.FeatureTable) *Report {
	report := &Report{
		AsOfDate:   table.AsOfDate,
		TotalFunds: len(table.Records),
		Coverage:   make(map[string]float64, len(metricWeights)),
	}

	if report.TotalFunds == 0 {
		return report
	}

	counts := make(map[string]int, len(metricWeights))
	for i := range table.Records {
		r := &table.Records[i]
		if r.HasMetadata() {
			counts["metadata"]++
			if r.AUM() != nil {
				counts["aum_cr"]++
			}
		}
		countIf(counts, "pct_pos_months_36", r.PctPosMonths36)
		countIf(counts, "max_drawdown", r.MaxDrawdown)
		countIf(counts, "sharpe", r.Sharpe)
		countIf(counts, "ret_3m", r.Ret3M)
		countIf(counts, "ret_6m", r.Ret6M)
		countIf(counts, "ann_vol", r.AnnVol)
	}

	n := float64(report.TotalFunds)
	for metric := range metricWeights {
		report.Coverage[metric] = float64(counts[metric]) / n
	}
	report.WithMetadata = counts["metadata"]
	report.QualityScore = g.calculateScore(report.Coverage)
	report.Passed = report.Coverage["metadata"] >= g.config.MinMetadataCoverage &&
		report.QualityScore >= g.config.MinScore

	return report
}

// Summary renders a one-line description for logs and the CLI
func (r *Report) Summary() string {
	status := "PASS"
	if !r.Passed {
		status = "WARN"
	}
	return fmt.Sprintf("%s funds=%d metadata=%.0f%% score=%.2f",
		status, r.TotalFunds, r.Coverage["metadata"]*100, r.QualityScore)
}

func countIf(counts map[string]int, key string, v *float64) {
	if v != nil {
		counts[key]++
	}
}

// calculateScore calculates overall quality score using weighted average
func (g *QualityGate) calculateScore(coverage map[string]float64) float64 {
	score := 0.0
	for key, weight := range metricWeights {
		if cov, exists := coverage[key]; exists {
			score += cov * weight
		}
	}
	return score
}
