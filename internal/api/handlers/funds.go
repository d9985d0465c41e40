package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/wonny/fundwise/internal/apperrors"
	"github.com/wonny/fundwise/internal/brain"
	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/s2_scoring"
	"github.com/wonny/fundwise/pkg/logger"
	"github.com/wonny/fundwise/pkg/redis"
)

// FundLister lists fund metadata (Postgres repository or CSV store)
type FundLister interface {
	ListFunds(ctx context.Context, limit int) ([]contracts.FundMetadata, error)
}

// FundHandler serves fund lists and ranked tables
type FundHandler struct {
	lister FundLister
	engine *brain.Engine
	cache  *redis.Cache
	logger *logger.Logger
}

// NewFundHandler creates a new fund handler; cache may be nil
func NewFundHandler(lister FundLister, engine *brain.Engine, cache *redis.Cache, log *logger.Logger) *FundHandler {
	return &FundHandler{
		lister: lister,
		engine: engine,
		cache:  cache,
		logger: log,
	}
}

// RankedFund is one row of the ranked endpoint
type RankedFund struct {
	Rank           int                     `json:"rank"`
	FundID         string                  `json:"fund_id"`
	FundName       string                  `json:"fund_name"`
	Category       string                  `json:"category"`
	AssetClass     contracts.AssetClass    `json:"asset_class"`
	CompositeScore float64                 `json:"composite_score"`
	Tier           contracts.Tier          `json:"tier"`
	Components     map[string]float64      `json:"components"`
	Rationale      string                  `json:"rationale"`
	Metrics        *contracts.FundMetrics  `json:"metrics,omitempty"`
	Canonical      contracts.AssetCategory `json:"canonical_category"`
}

// RankedResponse is the body of GET /api/funds/ranked
type RankedResponse struct {
	AsOfDate   time.Time    `json:"as_of_date"`
	ConfigHash string       `json:"config_hash"`
	Eligible   int          `json:"eligible"`
	Funds      []RankedFund `json:"funds"`
}

// List returns fund metadata
// GET /api/funds?limit=100
func (h *FundHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	load := func() (interface{}, error) {
		return h.lister.ListFunds(ctx, limit)
	}

	var funds []contracts.FundMetadata
	if h.cache != nil {
		err = h.cache.GetOrSet(ctx, redis.FundListKey(limit), &funds, redis.TTLMedium, load)
	} else {
		var v interface{}
		v, err = load()
		if err == nil {
			funds = v.([]contracts.FundMetadata)
		}
	}
	if err != nil {
		respondError(w, r, h.logger, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	respondJSON(w, http.StatusOK, funds)
}

// Ranked returns the best funds of a class or category
// GET /api/funds/ranked?category=equity&topk=10
func (h *FundHandler) Ranked(w http.ResponseWriter, r *http.Request) {
	filter, err := s2_scoring.ParseFilter(r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	topK, err := queryInt(r, "topk", 10)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	table, err := h.engine.Ranked(r.Context())
	if err != nil {
		respondError(w, r, h.logger, engineError(err))
		return
	}

	top := s2_scoring.Top(table.Funds, filter, topK)
	out := make([]RankedFund, 0, len(top))
	for i := range top {
		f := &top[i]
		out = append(out, RankedFund{
			Rank:           f.Rank,
			FundID:         f.FundID,
			FundName:       f.Name(),
			Category:       f.RawCategory(),
			AssetClass:     f.Canonical.AssetClass(),
			CompositeScore: f.CompositeScore,
			Tier:           f.Tier,
			Components:     f.Components,
			Rationale:      f.Rationale,
			Metrics:        f.Metrics(),
			Canonical:      f.Canonical,
		})
	}

	respondJSON(w, http.StatusOK, RankedResponse{
		AsOfDate:   table.AsOfDate,
		ConfigHash: table.ConfigHash,
		Eligible:   table.AfterCount,
		Funds:      out,
	})
}
