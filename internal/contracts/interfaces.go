package contracts

import "context"

// FeatureStore returns the latest joined feature table (S0)
// ⭐ SSOT: 최신 as_of_date 선택은 이 인터페이스의 책임
type FeatureStore interface {
	LoadLatest(ctx context.Context) (*FeatureTable, error)
}

// MarketPhaseProvider returns the current macro signal
type MarketPhaseProvider interface {
	Status(ctx context.Context) (*MarketStatus, error)
}

// EligibilityFilter drops ineligible funds (S1)
type EligibilityFilter interface {
	Apply(table *FeatureTable) *Universe
}

// Scorer assigns composite scores and tiers (S2)
type Scorer interface {
	Score(universe *Universe) []ScoredFund
}

// AllocationPolicy splits capital across asset classes (S3)
type AllocationPolicy interface {
	Allocate(profile UserProfile, phase MarketPhase) AllocationPlan
}

// SlotSelector turns a plan into concrete fund purchases (S4)
type SlotSelector interface {
	Select(scored []ScoredFund, plan AllocationPlan, profile UserProfile) *Selection
}

// SnapshotStore persists recommendations and user interactions
type SnapshotStore interface {
	SavePortfolioSnapshot(ctx context.Context, userID string, rec *Recommendation) (string, error)
	LogInteraction(ctx context.Context, userID, action string, details interface{}) error
	GetLatestPortfolio(ctx context.Context, userID string) (*SavedPortfolio, error)
	GetUserRiskScore(ctx context.Context, userID string) (*float64, error)
}
