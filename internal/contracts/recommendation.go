package contracts

import "time"

// Recommendation is the full engine response for one request
type Recommendation struct {
	RequestID         string               `json:"request_id"`
	Profile           UserProfile          `json:"user_profile"`
	MarketStatus      MarketStatus         `json:"market_status"`
	Allocation        AllocationPlan       `json:"allocation"`
	PlannedAllocation AllocationPlan       `json:"planned_allocation"`
	Portfolio         Portfolio            `json:"portfolio"`
	Sections          map[string]Portfolio `json:"sections"`
	UnfilledSlots     []string             `json:"unfilled_slots,omitempty"`
	Explanation       string               `json:"explanation"`
	ConfidenceScore   float64              `json:"confidence_score"`
	StabilityLabel    string               `json:"stability_label"`
	AsOfDate          time.Time            `json:"as_of_date"`
	StrategyID        string               `json:"strategy_id"`
	ConfigHash        string               `json:"config_hash"`
	GeneratedAt       time.Time            `json:"generated_at"`

	// 저장된 사용자 위험 점수 (참고용, 배분에는 사용하지 않음)
	HistoricRiskScore *float64 `json:"historic_risk_score,omitempty"`
	SnapshotID        string   `json:"snapshot_id,omitempty"`
}

// SectionsOf groups a portfolio by lower-case asset class name
func SectionsOf(p Portfolio) map[string]Portfolio {
	return map[string]Portfolio{
		"equity":    p.ByAssetClass(AssetEquity),
		"debt":      p.ByAssetClass(AssetDebt),
		"commodity": p.ByAssetClass(AssetCommodity),
	}
}

// SavedPortfolio is a persisted snapshot read back for a user
type SavedPortfolio struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Portfolio   Portfolio      `json:"portfolio"`
	Allocation  AllocationPlan `json:"allocation"`
	MarketPhase MarketPhase    `json:"market_phase"`
	ConfigHash  string         `json:"config_hash"`
	SavedAt     time.Time      `json:"saved_at"`
}
