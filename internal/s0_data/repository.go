package s0_data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/pkg/logger"
)

// ErrEmptyFeatureStore is returned when no feature snapshot exists
var ErrEmptyFeatureStore = errors.New("feature store is empty")

// Repository reads the feature store from PostgreSQL
//
// Tables:
//
//	data.fund_features (fund_id, as_of_date, ann_return, ann_vol, sharpe, max_drawdown,
//	                    pct_pos_months_36, ret_3m, ret_6m, ret_consistency)
//	data.funds         (fund_id, fund_name, category, aum_cr, expense_ratio,
//	                    top10_concentration, rating, turnover)
type Repository struct {
	db     *pgxpool.Pool
	canon  *Canonicalizer
	logger *logger.Logger
}

// NewRepository creates a new Repository instance
func NewRepository(db *pgxpool.Pool, canon *Canonicalizer, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		canon:  canon,
		logger: log.WithStage(contracts.StageFeatures.String()),
	}
}

// Pool returns the underlying database pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.db
}

// LoadLatest returns the latest snapshot joined with metadata
// ⭐ SSOT: S0 → S1 피처 테이블 생성
func (r *Repository) LoadLatest(ctx context.Context) (*contracts.FeatureTable, error) {
	asOf, err := r.LatestAsOfDate(ctx)
	if err != nil {
		return nil, err
	}

	// LEFT JOIN: 메타데이터 누락은 에러가 아니라 S1에서 제외
	query := `
		SELECT
			f.fund_id, f.as_of_date,
			f.ann_return, f.ann_vol, f.sharpe, f.max_drawdown,
			f.pct_pos_months_36, f.ret_3m, f.ret_6m, f.ret_consistency,
			m.fund_id IS NOT NULL AS has_meta,
			COALESCE(m.fund_name, ''), COALESCE(m.category, ''),
			m.aum_cr, m.expense_ratio, m.top10_concentration, m.rating, m.turnover
		FROM data.fund_features f
		LEFT JOIN data.funds m ON m.fund_id = f.fund_id
		WHERE f.as_of_date = $1
		ORDER BY f.fund_id
	`

	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("query fund features: %w", err)
	}
	defer rows.Close()

	table := &contracts.FeatureTable{
		AsOfDate: asOf,
		Records:  make([]contracts.FundRecord, 0),
	}

	for rows.Next() {
		var (
			rec     contracts.FundRecord
			hasMeta bool
			meta    contracts.FundMetadata
		)
		err := rows.Scan(
			&rec.FundID, &rec.AsOfDate,
			&rec.AnnReturn, &rec.AnnVol, &rec.Sharpe, &rec.MaxDrawdown,
			&rec.PctPosMonths36, &rec.Ret3M, &rec.Ret6M, &rec.RetConsistency,
			&hasMeta,
			&meta.FundName, &meta.Category,
			&meta.AUMCr, &meta.ExpenseRatio, &meta.Top10Concentration, &meta.Rating, &meta.Turnover,
		)
		if err != nil {
			return nil, fmt.Errorf("scan fund feature: %w", err)
		}

		if hasMeta {
			meta.FundID = rec.FundID
			rec.Metadata = &meta
		} else {
			table.MissingMetadata++
		}
		table.Records = append(table.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fund features: %w", err)
	}

	unknown := r.canon.Apply(table.Records)

	r.logger.WithFields(map[string]interface{}{
		"as_of_date":       asOf.Format("2006-01-02"),
		"rows":             len(table.Records),
		"missing_metadata": table.MissingMetadata,
		"unknown_category": unknown,
	}).Info("feature snapshot loaded")

	return table, nil
}

// LatestAsOfDate returns MAX(as_of_date) or ErrEmptyFeatureStore
func (r *Repository) LatestAsOfDate(ctx context.Context) (time.Time, error) {
	var asOf *time.Time
	err := r.db.QueryRow(ctx, `SELECT MAX(as_of_date) FROM data.fund_features`).Scan(&asOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("query latest as_of_date: %w", err)
	}
	if asOf == nil {
		return time.Time{}, ErrEmptyFeatureStore
	}
	return *asOf, nil
}

// ListFunds returns fund metadata ordered by AUM (largest first)
func (r *Repository) ListFunds(ctx context.Context, limit int) ([]contracts.FundMetadata, error) {
	query := `
		SELECT fund_id, fund_name, category,
			aum_cr, expense_ratio, top10_concentration, rating, turnover
		FROM data.funds
		ORDER BY aum_cr DESC NULLS LAST, fund_id
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query funds: %w", err)
	}
	defer rows.Close()

	funds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (contracts.FundMetadata, error) {
		var m contracts.FundMetadata
		err := row.Scan(
			&m.FundID, &m.FundName, &m.Category,
			&m.AUMCr, &m.ExpenseRatio, &m.Top10Concentration, &m.Rating, &m.Turnover,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect funds: %w", err)
	}

	return funds, nil
}
