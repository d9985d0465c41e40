package strategyconfig

// Config는 펀드 추천 엔진의 전체 정책 설정
// ⭐ SSOT: 모든 임계값/가중치는 여기서만 정의
type Config struct {
	Meta        Meta           `yaml:"meta" json:"meta"`
	Categories  []CategoryRule `yaml:"categories" json:"categories"`
	NameRules   []CategoryRule `yaml:"name_rules" json:"name_rules"`
	Eligibility Eligibility    `yaml:"eligibility" json:"eligibility"`
	Scoring     Scoring        `yaml:"scoring" json:"scoring"`
	Allocation  Allocation     `yaml:"allocation" json:"allocation"`
	Slots       Slots          `yaml:"slots" json:"slots"`
	Confidence  Confidence     `yaml:"confidence" json:"confidence"`
	Simulation  Simulation     `yaml:"simulation" json:"simulation"`
	Market      Market         `yaml:"market" json:"market"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// CategoryRule maps a case-insensitive keyword to a canonical category id
// 순서 중요: 더 구체적인 키워드가 먼저 ("large & mid cap" → "mid cap")
type CategoryRule struct {
	Keyword  string `yaml:"keyword" json:"keyword"`
	Category string `yaml:"category" json:"category"`
}

// Eligibility S1: 투자 가능 펀드 조건
type Eligibility struct {
	MinAUMCr           float64  `yaml:"min_aum_cr" json:"min_aum_cr"`
	RiskKeywords       []string `yaml:"risk_keywords" json:"risk_keywords"`
	ShareClassKeywords []string `yaml:"share_class_keywords" json:"share_class_keywords"`
}

// Scoring S2: 백분위 팩터 가중치
type Scoring struct {
	Weights           FactorWeights   `yaml:"weights" json:"weights"`
	Neutral           NeutralDefaults `yaml:"neutral" json:"neutral"`
	DebtPenalty       DebtPenalty     `yaml:"debt_penalty" json:"debt_penalty"`
	Tiers             Tiers           `yaml:"tiers" json:"tiers"`
	StandoutThreshold float64         `yaml:"standout_threshold" json:"standout_threshold"`
}

type FactorWeights struct {
	Reliability float64 `yaml:"reliability" json:"reliability"`
	Downside    float64 `yaml:"downside" json:"downside"`
	Quality     float64 `yaml:"quality" json:"quality"`
	Momentum    float64 `yaml:"momentum" json:"momentum"`
}

// Sum returns the sum of all weights
func (w FactorWeights) Sum() float64 {
	return w.Reliability + w.Downside + w.Quality + w.Momentum
}

// NeutralDefaults replace missing metrics before ranking
type NeutralDefaults struct {
	PctPosMonths36 float64 `yaml:"pct_pos_months_36" json:"pct_pos_months_36"`
	MaxDrawdown    float64 `yaml:"max_drawdown" json:"max_drawdown"`
	Sharpe         float64 `yaml:"sharpe" json:"sharpe"`
	AnnVol         float64 `yaml:"ann_vol" json:"ann_vol"`
	Ret3M          float64 `yaml:"ret_3m" json:"ret_3m"`
	Ret6M          float64 `yaml:"ret_6m" json:"ret_6m"`
	RetConsistency float64 `yaml:"ret_consistency" json:"ret_consistency"`
}

type DebtPenalty struct {
	UpperVol     float64 `yaml:"upper_vol" json:"upper_vol"`
	UpperPenalty float64 `yaml:"upper_penalty" json:"upper_penalty"`
	LowerVol     float64 `yaml:"lower_vol" json:"lower_vol"`
	LowerPenalty float64 `yaml:"lower_penalty" json:"lower_penalty"`
}

type Tiers struct {
	ElitePct  float64 `yaml:"elite_pct" json:"elite_pct"`
	StrongPct float64 `yaml:"strong_pct" json:"strong_pct"`
}

// Allocation S3: 자산군 비중 정책
type Allocation struct {
	AgeAnchor        float64           `yaml:"age_anchor" json:"age_anchor"`
	AgeMinEquity     float64           `yaml:"age_min_equity" json:"age_min_equity"`
	AgeMaxEquity     float64           `yaml:"age_max_equity" json:"age_max_equity"`
	RiskBase         RiskTable         `yaml:"risk_base" json:"risk_base"`
	HighRiskBonus    float64           `yaml:"high_risk_bonus" json:"high_risk_bonus"`
	LowRiskPenalty   float64           `yaml:"low_risk_penalty" json:"low_risk_penalty"`
	ShortHorizon     ShortHorizon      `yaml:"short_horizon" json:"short_horizon"`
	PhaseMultipliers PhaseMultipliers  `yaml:"phase_multipliers" json:"phase_multipliers"`
	Commodity        CommodityCarveOut `yaml:"commodity" json:"commodity"`
}

type RiskTable struct {
	High  float64 `yaml:"high" json:"high"`
	Low   float64 `yaml:"low" json:"low"`
	Other float64 `yaml:"other" json:"other"`
}

type ShortHorizon struct {
	Years     float64 `yaml:"years" json:"years"` // strict: horizon < years
	Reduction float64 `yaml:"reduction" json:"reduction"`
}

type PhaseMultipliers struct {
	Overheated  float64 `yaml:"overheated" json:"overheated"`
	Undervalued float64 `yaml:"undervalued" json:"undervalued"`
}

type CommodityCarveOut struct {
	MinAmount float64 `yaml:"min_amount" json:"min_amount"`
	Weight    float64 `yaml:"weight" json:"weight"`
}

// Slots S4: 자산군별 슬롯 세트
type Slots struct {
	EquityStandard  []Slot `yaml:"equity_standard" json:"equity_standard"`
	EquityDefensive []Slot `yaml:"equity_defensive" json:"equity_defensive"`
	DebtStandard    []Slot `yaml:"debt_standard" json:"debt_standard"`
	DebtDefensive   []Slot `yaml:"debt_defensive" json:"debt_defensive"`
	Commodity       []Slot `yaml:"commodity" json:"commodity"`
}

// Sets returns slot sets keyed by their config name
func (s Slots) Sets() map[string][]Slot {
	return map[string][]Slot{
		"equity_standard":  s.EquityStandard,
		"equity_defensive": s.EquityDefensive,
		"debt_standard":    s.DebtStandard,
		"debt_defensive":   s.DebtDefensive,
		"commodity":        s.Commodity,
	}
}

// Slot is one named position inside an asset class
type Slot struct {
	Name               string   `yaml:"name" json:"name"`
	Weight             float64  `yaml:"weight" json:"weight"` // 자산군 내 비중
	Categories         []string `yaml:"categories" json:"categories"`
	Fallback           []string `yaml:"fallback,omitempty" json:"fallback,omitempty"`
	FallbackAnyInClass bool     `yaml:"fallback_any_in_class,omitempty" json:"fallback_any_in_class,omitempty"`
	TopK               int      `yaml:"top_k,omitempty" json:"top_k,omitempty"` // 0 = 1
}

// Picks returns the effective number of funds for this slot
func (s Slot) Picks() int {
	if s.TopK <= 0 {
		return 1
	}
	return s.TopK
}

// Confidence S5: 안정성 점수
type Confidence struct {
	Base                    float64 `yaml:"base" json:"base"`
	OverheatedDebtMin       float64 `yaml:"overheated_debt_min" json:"overheated_debt_min"`
	OverheatedDebtBonus     float64 `yaml:"overheated_debt_bonus" json:"overheated_debt_bonus"`
	OverheatedEquityMax     float64 `yaml:"overheated_equity_max" json:"overheated_equity_max"`
	OverheatedEquityPenalty float64 `yaml:"overheated_equity_penalty" json:"overheated_equity_penalty"`
	UndervaluedEquityMin    float64 `yaml:"undervalued_equity_min" json:"undervalued_equity_min"`
	UndervaluedEquityBonus  float64 `yaml:"undervalued_equity_bonus" json:"undervalued_equity_bonus"`
	QualityBonusMax         float64 `yaml:"quality_bonus_max" json:"quality_bonus_max"`
	Cap                     float64 `yaml:"cap" json:"cap"`
	HighLabelAbove          float64 `yaml:"high_label_above" json:"high_label_above"`
	ModerateLabelAbove      float64 `yaml:"moderate_label_above" json:"moderate_label_above"`
}

// Simulation 스트레스 시나리오
type Simulation struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario is a named shock table (fractional returns)
type Scenario struct {
	ID          string  `yaml:"id" json:"id"`
	Description string  `yaml:"description" json:"description"`
	Equity      float64 `yaml:"equity" json:"equity"`
	Debt        float64 `yaml:"debt" json:"debt"`
	Liquid      float64 `yaml:"liquid" json:"liquid"`
	Commodity   float64 `yaml:"commodity" json:"commodity"`
	LargeCapAdj float64 `yaml:"large_cap_adj" json:"large_cap_adj"`
	SmallCapAdj float64 `yaml:"small_cap_adj" json:"small_cap_adj"`
}

// Market 시장 국면 판정
type Market struct {
	SMAWindow            int     `yaml:"sma_window" json:"sma_window"`
	VolWindow            int     `yaml:"vol_window" json:"vol_window"`
	OverheatedDeviation  float64 `yaml:"overheated_deviation" json:"overheated_deviation"`
	UndervaluedDeviation float64 `yaml:"undervalued_deviation" json:"undervalued_deviation"`
	VolatileAbove        float64 `yaml:"volatile_above" json:"volatile_above"`
	StableBelow          float64 `yaml:"stable_below" json:"stable_below"`
	TradingDaysPerYear   int     `yaml:"trading_days_per_year" json:"trading_days_per_year"`
}
