package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/pkg/logger"
)

// Repository persists recommendations and user interactions.
// Tables: audit.user_portfolios, audit.interaction_logs, audit.user_profiles
// ⭐ SSOT: 사용자 이력 저장/조회는 여기서만
type Repository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewRepository creates a new audit repository
func NewRepository(pool *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{
		pool:   pool,
		logger: log.WithStage("audit"),
	}
}

// SavePortfolioSnapshot stores a recommendation and returns its id.
// Anonymous users (empty id) are not persisted.
func (r *Repository) SavePortfolioSnapshot(ctx context.Context, userID string, rec *contracts.Recommendation) (string, error) {
	if userID == "" || rec == nil {
		return "", nil
	}

	portfolioJSON, err := json.Marshal(rec.Portfolio)
	if err != nil {
		return "", fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO audit.user_portfolios (
			id, user_id, request_id, portfolio_data,
			allocation_equity, allocation_debt, allocation_commodity,
			market_phase, config_hash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	_, err = r.pool.Exec(ctx, query,
		id, userID, rec.RequestID, portfolioJSON,
		rec.Allocation.Weight(contracts.AssetEquity),
		rec.Allocation.Weight(contracts.AssetDebt),
		rec.Allocation.Weight(contracts.AssetCommodity),
		string(rec.MarketStatus.Phase), rec.ConfigHash,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save portfolio snapshot: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"snapshot_id": id,
		"user_id":     userID,
		"funds":       len(rec.Portfolio),
	}).Debug("portfolio snapshot saved")

	return id, nil
}

// LogInteraction records a user action (e.g. "generate", "simulate")
func (r *Repository) LogInteraction(ctx context.Context, userID, action string, details interface{}) error {
	if userID == "" {
		return nil
	}

	detailsJSON := []byte("{}")
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal interaction details: %w", err)
		}
		detailsJSON = data
	}

	query := `
		INSERT INTO audit.interaction_logs (user_id, action_type, details, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := r.pool.Exec(ctx, query, userID, action, detailsJSON); err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}
	return nil
}

// GetLatestPortfolio returns the most recent snapshot, or nil if none exists
func (r *Repository) GetLatestPortfolio(ctx context.Context, userID string) (*contracts.SavedPortfolio, error) {
	if userID == "" {
		return nil, nil
	}

	query := `
		SELECT id, user_id, portfolio_data,
		       allocation_equity, allocation_debt, allocation_commodity,
		       market_phase, config_hash, created_at
		FROM audit.user_portfolios
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		saved         contracts.SavedPortfolio
		portfolioJSON []byte
		equity, debt  float64
		commodity     float64
		phase         string
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&saved.ID, &saved.UserID, &portfolioJSON,
		&equity, &debt, &commodity,
		&phase, &saved.ConfigHash, &saved.SavedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest portfolio: %w", err)
	}

	if err := json.Unmarshal(portfolioJSON, &saved.Portfolio); err != nil {
		return nil, fmt.Errorf("failed to unmarshal portfolio: %w", err)
	}

	saved.MarketPhase = contracts.MarketPhase(phase)
	saved.Allocation = contracts.AllocationPlan{
		contracts.AssetEquity: equity,
		contracts.AssetDebt:   debt,
	}
	if commodity > 0 {
		saved.Allocation[contracts.AssetCommodity] = commodity
	}

	return &saved, nil
}

// GetUserRiskScore returns the persisted numeric risk score, or nil if unset
func (r *Repository) GetUserRiskScore(ctx context.Context, userID string) (*float64, error) {
	if userID == "" {
		return nil, nil
	}

	query := `SELECT risk_score FROM audit.user_profiles WHERE user_id = $1`

	var score *float64
	err := r.pool.QueryRow(ctx, query, userID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user risk score: %w", err)
	}
	return score, nil
}
