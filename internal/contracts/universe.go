package contracts

import "time"

// StepCount records how many funds survived one eligibility rule
type StepCount struct {
	Rule    string `json:"rule"`
	Before  int    `json:"before"`
	After   int    `json:"after"`
	Skipped bool   `json:"skipped,omitempty"`
}

// Universe is the eligible subset of the feature table
// ⭐ SSOT: S1 → S2 전달 단위
type Universe struct {
	AsOfDate    time.Time         `json:"as_of_date"`
	Funds       []FundRecord      `json:"funds"`
	Excluded    map[string]string `json:"excluded"` // fund_id → reason
	BeforeCount int               `json:"before_count"`
	AfterCount  int               `json:"after_count"`
	StepCounts  []StepCount       `json:"step_counts"`
}

// Selection is the slot selector output before confidence scoring
// ⭐ SSOT: S4 결과
type Selection struct {
	Portfolio Portfolio            `json:"portfolio"`
	Planned   AllocationPlan       `json:"planned"`  // policy output
	Reported  AllocationPlan       `json:"reported"` // recomputed from amounts
	Sections  map[string]Portfolio `json:"sections"`
	Unfilled  []string             `json:"unfilled,omitempty"`
}
