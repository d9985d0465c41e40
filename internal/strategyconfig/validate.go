package strategyconfig

import (
	"errors"
	"fmt"
	"math"

	"github.com/wonny/fundwise/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Categories ===
	if len(cfg.Categories) == 0 {
		return ValidationError{"categories", "must not be empty"}
	}
	if err := validateRules(cfg.Categories, "categories"); err != nil {
		return err
	}
	if err := validateRules(cfg.NameRules, "name_rules"); err != nil {
		return err
	}

	// === Eligibility ===
	if cfg.Eligibility.MinAUMCr < 0 {
		return ValidationError{"eligibility.min_aum_cr", "must be >= 0"}
	}

	// === Scoring ===
	sw := cfg.Scoring.Weights
	for field, w := range map[string]float64{
		"reliability": sw.Reliability,
		"downside":    sw.Downside,
		"quality":     sw.Quality,
		"momentum":    sw.Momentum,
	} {
		if w < 0 {
			return ValidationError{"scoring.weights." + field, "must be >= 0"}
		}
	}
	if math.Abs(sw.Sum()-1.0) > 1e-6 {
		return ValidationError{"scoring.weights", fmt.Sprintf("must sum to 1.0, got %.4f", sw.Sum())}
	}

	dp := cfg.Scoring.DebtPenalty
	if dp.LowerVol < 0 || dp.LowerVol > dp.UpperVol {
		return ValidationError{"scoring.debt_penalty", "must satisfy 0 <= lower_vol <= upper_vol"}
	}
	if dp.LowerPenalty < 0 || dp.UpperPenalty < 0 {
		return ValidationError{"scoring.debt_penalty", "penalties must be >= 0"}
	}

	tiers := cfg.Scoring.Tiers
	if err := validatePctRange(tiers.ElitePct, "scoring.tiers.elite_pct"); err != nil {
		return err
	}
	if err := validatePctRange(tiers.StrongPct, "scoring.tiers.strong_pct"); err != nil {
		return err
	}
	if tiers.ElitePct+tiers.StrongPct > 1 {
		return ValidationError{"scoring.tiers", "elite_pct + strong_pct must be <= 1"}
	}
	if err := validatePctRange(cfg.Scoring.StandoutThreshold, "scoring.standout_threshold"); err != nil {
		return err
	}

	// === Allocation ===
	a := cfg.Allocation
	if a.AgeAnchor <= 0 {
		return ValidationError{"allocation.age_anchor", "must be > 0"}
	}
	if err := validatePctRange(a.AgeMinEquity, "allocation.age_min_equity"); err != nil {
		return err
	}
	if err := validatePctRange(a.AgeMaxEquity, "allocation.age_max_equity"); err != nil {
		return err
	}
	if a.AgeMinEquity > a.AgeMaxEquity {
		return ValidationError{"allocation", "age_min_equity must be <= age_max_equity"}
	}
	for field, v := range map[string]float64{
		"allocation.risk_base.high":   a.RiskBase.High,
		"allocation.risk_base.low":    a.RiskBase.Low,
		"allocation.risk_base.other":  a.RiskBase.Other,
		"allocation.commodity.weight": a.Commodity.Weight,
	} {
		if err := validatePctRange(v, field); err != nil {
			return err
		}
	}
	if a.PhaseMultipliers.Overheated <= 0 || a.PhaseMultipliers.Undervalued <= 0 {
		return ValidationError{"allocation.phase_multipliers", "must be > 0"}
	}

	// === Slots ===
	sets := cfg.Slots.Sets()
	for _, name := range []string{"equity_standard", "equity_defensive", "debt_standard", "debt_defensive", "commodity"} {
		if err := validateSlotSet(name, sets[name]); err != nil {
			return err
		}
	}

	// === Confidence ===
	c := cfg.Confidence
	if c.Cap <= 0 || c.Cap > 100 {
		return ValidationError{"confidence.cap", "must be in (0, 100]"}
	}
	if c.ModerateLabelAbove >= c.HighLabelAbove {
		return ValidationError{"confidence", "moderate_label_above must be < high_label_above"}
	}

	// === Simulation ===
	seen := make(map[string]bool)
	for i, s := range cfg.Simulation.Scenarios {
		if s.ID == "" {
			return ValidationError{fmt.Sprintf("simulation.scenarios[%d].id", i), "required"}
		}
		if seen[s.ID] {
			return ValidationError{fmt.Sprintf("simulation.scenarios[%d].id", i), "duplicate " + s.ID}
		}
		seen[s.ID] = true
	}

	// === Market ===
	m := cfg.Market
	if m.SMAWindow < 2 || m.VolWindow < 2 {
		return ValidationError{"market", "sma_window and vol_window must be >= 2"}
	}
	if m.UndervaluedDeviation >= m.OverheatedDeviation {
		return ValidationError{"market", "undervalued_deviation must be < overheated_deviation"}
	}
	if m.StableBelow >= m.VolatileAbove {
		return ValidationError{"market", "stable_below must be < volatile_above"}
	}
	if m.TradingDaysPerYear <= 0 {
		return ValidationError{"market.trading_days_per_year", "must be > 0"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// AUM 하한 0 → 유동성 필터 사실상 비활성
	if cfg.Eligibility.MinAUMCr == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_AUM_FLOOR",
			Message: "min_aum_cr = 0: liquidity floor disabled",
		})
	}

	if len(cfg.Eligibility.ShareClassKeywords) == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_SHARE_CLASS_FILTER",
			Message: "share_class_keywords empty: duplicate share classes may be recommended",
		})
	}

	// 모멘텀 과대 가중 경고
	if cfg.Scoring.Weights.Momentum > 0.4 {
		warnings = append(warnings, Warning{
			Code:    "HIGH_MOMENTUM_WEIGHT",
			Message: "momentum weight > 40%: rankings will churn with short-term returns",
		})
	}

	if len(cfg.Simulation.Scenarios) == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_SCENARIOS",
			Message: "no simulation scenarios configured",
		})
	}

	return warnings
}

// === Helper Functions ===

func validateRules(rules []CategoryRule, field string) error {
	for i, r := range rules {
		if r.Keyword == "" {
			return ValidationError{fmt.Sprintf("%s[%d].keyword", field, i), "required"}
		}
		if _, err := contracts.ParseAssetCategory(r.Category); err != nil {
			return ValidationError{fmt.Sprintf("%s[%d].category", field, i), err.Error()}
		}
	}
	return nil
}

func validateSlotSet(name string, slots []Slot) error {
	field := "slots." + name
	if len(slots) == 0 {
		return ValidationError{field, "must not be empty"}
	}

	weights := make([]float64, 0, len(slots))
	for i, s := range slots {
		slotField := fmt.Sprintf("%s[%d]", field, i)
		if s.Name == "" {
			return ValidationError{slotField + ".name", "required"}
		}
		if len(s.Categories) == 0 {
			return ValidationError{slotField + ".categories", "must not be empty"}
		}
		for _, c := range append(append([]string{}, s.Categories...), s.Fallback...) {
			if _, err := contracts.ParseAssetCategory(c); err != nil {
				return ValidationError{slotField, err.Error()}
			}
		}
		if s.TopK < 0 {
			return ValidationError{slotField + ".top_k", "must be >= 0"}
		}
		weights = append(weights, s.Weight)
	}

	if err := validateWeightsSum(weights, 1.0, 1e-6); err != nil {
		return ValidationError{field, err.Error()}
	}
	return nil
}

func validateWeightsSum(weights []float64, target float64, epsilon float64) error {
	if len(weights) == 0 {
		return errors.New("must not be empty")
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-target) > epsilon {
		return fmt.Errorf("must sum to %.2f, got %.4f", target, sum)
	}
	return nil
}

// validatePctRange는 퍼센트 값이 0~1 범위인지 검증
func validatePctRange(pct float64, field string) error {
	if pct < 0 || pct > 1 {
		return ValidationError{field, "must be in range [0, 1]"}
	}
	return nil
}
