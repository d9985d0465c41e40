package brain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/reasoning"
	"github.com/wonny/fundwise/internal/s0_data"
	"github.com/wonny/fundwise/internal/s0_data/quality"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
	"github.com/wonny/fundwise/pkg/redis"
)

var (
	// ErrInvalidProfile wraps a UserProfile validation failure
	ErrInvalidProfile = errors.New("invalid user profile")
	// ErrEmptyFeatureStore is returned when S0 produced no rows
	ErrEmptyFeatureStore = s0_data.ErrEmptyFeatureStore
)

// asOfDater is implemented by stores that can report the latest snapshot date
// without loading it (lets Ranked hit the cache before S0)
type asOfDater interface {
	LatestAsOfDate(ctx context.Context) (time.Time, error)
}

// Components are the stage implementations an Engine runs.
// Store and Cache are optional.
type Components struct {
	Features contracts.FeatureStore
	Market   contracts.MarketPhaseProvider
	Filter   contracts.EligibilityFilter
	Scorer   contracts.Scorer
	Policy   contracts.AllocationPolicy
	Selector contracts.SlotSelector
	Store    contracts.SnapshotStore
	Cache    *redis.Cache
}

// Engine coordinates S0 → S5 for one request
// ⭐ SSOT: 파이프라인 조율은 여기서만 (요청 간 가변 상태 없음)
type Engine struct {
	components  Components
	reasoner    *reasoning.Reasoner
	qualityGate *quality.QualityGate
	config      *strategyconfig.Config
	configHash  string
	logger      *logger.Logger
}

// RankedTable is the scored, tiered fund table of one snapshot
type RankedTable struct {
	AsOfDate    time.Time              `json:"as_of_date"`
	ConfigHash  string                 `json:"config_hash"`
	Funds       []contracts.ScoredFund `json:"funds"`
	BeforeCount int                    `json:"before_count"`
	AfterCount  int                    `json:"after_count"`
	Excluded    map[string]string      `json:"excluded"`
	Quality     *quality.Report        `json:"quality"`
}

// NewEngine creates a new engine
func NewEngine(cfg *strategyconfig.Config, c Components, log *logger.Logger) (*Engine, error) {
	if c.Features == nil || c.Market == nil || c.Filter == nil ||
		c.Scorer == nil || c.Policy == nil || c.Selector == nil {
		return nil, errors.New("engine: missing pipeline component")
	}

	hash, err := strategyconfig.Hash(cfg)
	if err != nil {
		return nil, fmt.Errorf("hash strategy config: %w", err)
	}

	return &Engine{
		components:  c,
		reasoner:    reasoning.NewReasoner(cfg),
		qualityGate: quality.NewQualityGate(quality.DefaultConfig()),
		config:      cfg,
		configHash:  hash,
		logger:      log,
	}, nil
}

// ConfigHash returns the hash stamped into recommendations and cache keys
func (e *Engine) ConfigHash() string {
	return e.configHash
}

// Config returns the strategy config the engine runs with
func (e *Engine) Config() *strategyconfig.Config {
	return e.config
}

// Recommend runs the pipeline for an anonymous request
func (e *Engine) Recommend(ctx context.Context, profile contracts.UserProfile) (*contracts.Recommendation, error) {
	return e.RecommendForUser(ctx, "", profile)
}

// RecommendForUser runs S0 → S5 and, for a known user, persists a snapshot.
// Only invalid input and an empty feature store are fatal.
func (e *Engine) RecommendForUser(ctx context.Context, userID string, profile contracts.UserProfile) (*contracts.Recommendation, error) {
	startTime := time.Now()

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	requestID := uuid.NewString()
	log := e.logger.WithRequestID(requestID)

	log.WithFields(map[string]interface{}{
		"amount":         profile.Amount,
		"horizon_years":  profile.HorizonYears,
		"risk_tolerance": profile.RiskTolerance,
		"user":           userID != "",
	}).Info("Starting recommendation")

	// S0 ~ S2: 스코어 테이블 (캐시 가능)
	ranked, err := e.Ranked(ctx)
	if err != nil {
		return nil, err
	}

	// 시장 국면 (실패해도 NEUTRAL)
	status := e.marketStatus(ctx, log)

	// S3: Allocation
	plan := e.components.Policy.Allocate(profile, status.Phase)
	log.WithStage(contracts.StageAllocation.String()).WithFields(map[string]interface{}{
		"phase":  status.Phase,
		"equity": plan.Weight(contracts.AssetEquity),
		"debt":   plan.Weight(contracts.AssetDebt),
	}).Info("S3 completed")

	// S4: Selection
	selection := e.components.Selector.Select(ranked.Funds, plan, profile)
	log.WithStage(contracts.StageSelection.String()).WithFields(map[string]interface{}{
		"funds":    len(selection.Portfolio),
		"unfilled": len(selection.Unfilled),
		"invested": selection.Portfolio.TotalAmount(),
	}).Info("S4 completed")

	// S5: Confidence
	confidence := e.reasoner.Confidence(selection.Portfolio, status.Phase)

	rec := &contracts.Recommendation{
		RequestID:         requestID,
		Profile:           profile,
		MarketStatus:      *status,
		Allocation:        selection.Reported,
		PlannedAllocation: selection.Planned,
		Portfolio:         selection.Portfolio,
		Sections:          selection.Sections,
		UnfilledSlots:     selection.Unfilled,
		Explanation:       e.reasoner.Explain(profile, selection.Reported, *status),
		ConfidenceScore:   confidence,
		StabilityLabel:    e.reasoner.StabilityLabel(confidence),
		AsOfDate:          ranked.AsOfDate,
		StrategyID:        e.config.Meta.StrategyID,
		ConfigHash:        e.configHash,
		GeneratedAt:       time.Now(),
	}

	if userID != "" && e.components.Store != nil {
		e.persist(ctx, log, userID, rec)
	}

	log.WithFields(map[string]interface{}{
		"confidence": confidence,
		"label":      rec.StabilityLabel,
		"duration":   time.Since(startTime).Seconds(),
	}).Info("Recommendation completed")

	return rec, nil
}

// Ranked returns the scored table of the latest snapshot.
// The table is cached per (as_of_date, config hash).
func (e *Engine) Ranked(ctx context.Context) (*RankedTable, error) {
	if dater, ok := e.components.Features.(asOfDater); ok && e.components.Cache != nil {
		asOf, err := dater.LatestAsOfDate(ctx)
		if err == nil {
			var cached RankedTable
			found, cacheErr := e.components.Cache.Get(ctx, e.rankedKey(asOf), &cached)
			if cacheErr == nil && found {
				return &cached, nil
			}
		}
	}

	table, report, err := e.loadFeatures(ctx)
	if err != nil {
		return nil, err
	}

	ranked := e.score(table, report)

	if e.components.Cache != nil {
		if err := e.components.Cache.Set(ctx, e.rankedKey(ranked.AsOfDate), ranked, redis.TTLDaily); err != nil {
			e.logger.WithError(err).Warn("ranked table cache write failed")
		}
	}

	return ranked, nil
}

// WarmRanked recomputes the ranked table and overwrites the cache entry
func (e *Engine) WarmRanked(ctx context.Context) (*RankedTable, error) {
	table, report, err := e.loadFeatures(ctx)
	if err != nil {
		return nil, err
	}

	ranked := e.score(table, report)
	if e.components.Cache != nil {
		if err := e.components.Cache.Set(ctx, e.rankedKey(ranked.AsOfDate), ranked, redis.TTLDaily); err != nil {
			return ranked, fmt.Errorf("cache ranked table: %w", err)
		}
	}
	return ranked, nil
}

// MarketStatus returns the provider's status, NEUTRAL on failure
func (e *Engine) MarketStatus(ctx context.Context) *contracts.MarketStatus {
	return e.marketStatus(ctx, e.logger)
}

// LatestPortfolio returns the last saved portfolio of a user (nil if none)
func (e *Engine) LatestPortfolio(ctx context.Context, userID string) (*contracts.SavedPortfolio, error) {
	if e.components.Store == nil {
		return nil, nil
	}
	return e.components.Store.GetLatestPortfolio(ctx, userID)
}

// LogInteraction records a user action, best effort
func (e *Engine) LogInteraction(ctx context.Context, userID, action string, details interface{}) {
	if userID == "" || e.components.Store == nil {
		return
	}
	if err := e.components.Store.LogInteraction(ctx, userID, action, details); err != nil {
		e.logger.WithError(err).WithField("action", action).Warn("interaction log failed")
	}
}

// loadFeatures runs S0 and the quality report
func (e *Engine) loadFeatures(ctx context.Context) (*contracts.FeatureTable, *quality.Report, error) {
	log := e.logger.WithStage(contracts.StageFeatures.String())

	table, err := e.components.Features.LoadLatest(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("S0 failed: %w", err)
	}
	if table == nil || len(table.Records) == 0 {
		return nil, nil, ErrEmptyFeatureStore
	}

	report := e.qualityGate.Check(table)
	log.WithFields(map[string]interface{}{
		"rows":             len(table.Records),
		"as_of_date":       table.AsOfDate.Format("2006-01-02"),
		"missing_metadata": table.MissingMetadata,
		"quality_score":    report.QualityScore,
		"passed":           report.Passed,
	}).Info("S0 completed")

	return table, report, nil
}

// score runs S1 and S2 on a loaded table
func (e *Engine) score(table *contracts.FeatureTable, report *quality.Report) *RankedTable {
	universe := e.components.Filter.Apply(table)
	scored := e.components.Scorer.Score(universe)

	e.logger.WithStage(contracts.StageScoring.String()).WithFields(map[string]interface{}{
		"eligible": universe.AfterCount,
		"scored":   len(scored),
	}).Info("S2 completed")

	return &RankedTable{
		AsOfDate:    table.AsOfDate,
		ConfigHash:  e.configHash,
		Funds:       scored,
		BeforeCount: universe.BeforeCount,
		AfterCount:  universe.AfterCount,
		Excluded:    universe.Excluded,
		Quality:     report,
	}
}

func (e *Engine) marketStatus(ctx context.Context, log *logger.Logger) *contracts.MarketStatus {
	status, err := e.components.Market.Status(ctx)
	if err != nil || status == nil {
		log.WithError(err).Warn("market status unavailable, assuming neutral")
		return contracts.NeutralStatus("Market status unavailable, assuming Neutral.")
	}
	return status
}

// persist saves the snapshot and interaction log; failures are logged only
func (e *Engine) persist(ctx context.Context, log *logger.Logger, userID string, rec *contracts.Recommendation) {
	store := e.components.Store
	log = log.WithUserID(userID)

	if score, err := store.GetUserRiskScore(ctx, userID); err != nil {
		log.WithError(err).Warn("risk score lookup failed")
	} else {
		rec.HistoricRiskScore = score
	}

	id, err := store.SavePortfolioSnapshot(ctx, userID, rec)
	if err != nil {
		log.WithError(err).Warn("portfolio snapshot not saved")
	} else {
		rec.SnapshotID = id
	}

	if err := store.LogInteraction(ctx, userID, "generate_portfolio", rec.Allocation); err != nil {
		log.WithError(err).Warn("interaction log failed")
	}
}

func (e *Engine) rankedKey(asOf time.Time) string {
	return redis.RankedKey(asOf.Format("2006-01-02"), e.configHash)
}
