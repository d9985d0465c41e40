package handlers

import (
	"errors"
	"net/http"

	"github.com/wonny/fundwise/internal/apperrors"
	"github.com/wonny/fundwise/internal/brain"
	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/pkg/logger"
)

// RecommendHandler serves portfolio recommendations
// ⭐ SSOT: 추천 API 핸들러는 이 구조체에서만
type RecommendHandler struct {
	engine *brain.Engine
	logger *logger.Logger
}

// NewRecommendHandler creates a new recommend handler
func NewRecommendHandler(engine *brain.Engine, log *logger.Logger) *RecommendHandler {
	return &RecommendHandler{
		engine: engine,
		logger: log,
	}
}

// RecommendRequest is the investor profile body
type RecommendRequest struct {
	Amount             float64 `json:"amount" validate:"required,gt=0"`
	HorizonYears       float64 `json:"horizon_years" validate:"required,gt=0"`
	RiskTolerance      string  `json:"risk_tolerance" validate:"required"`
	Age                *int    `json:"age,omitempty" validate:"omitempty,gt=0,lte=120"`
	Goal               string  `json:"goal,omitempty" validate:"max=200"`
	CurrentInvestments float64 `json:"current_investments,omitempty" validate:"gte=0"`
}

// Profile converts the request into a validated UserProfile
func (req *RecommendRequest) Profile() (contracts.UserProfile, error) {
	risk, err := contracts.ParseRiskTolerance(req.RiskTolerance)
	if err != nil {
		return contracts.UserProfile{}, apperrors.WithMessage(apperrors.ErrInvalidProfile, err.Error())
	}

	return contracts.UserProfile{
		Amount:             req.Amount,
		HorizonYears:       req.HorizonYears,
		RiskTolerance:      risk,
		Age:                req.Age,
		Goal:               req.Goal,
		CurrentInvestments: req.CurrentInvestments,
	}, nil
}

// Recommend builds a portfolio for the posted profile
// POST /api/recommend
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	profile, err := req.Profile()
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	rec, err := h.engine.RecommendForUser(r.Context(), userID(r), profile)
	if err != nil {
		respondError(w, r, h.logger, engineError(err))
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// LatestPortfolio returns the caller's most recently saved portfolio
// GET /api/portfolio/latest
func (h *RecommendHandler) LatestPortfolio(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, r, h.logger, apperrors.ErrUnauthorized)
		return
	}

	saved, err := h.engine.LatestPortfolio(r.Context(), uid)
	if err != nil {
		respondError(w, r, h.logger, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if saved == nil {
		respondError(w, r, h.logger, apperrors.ErrPortfolioNotFound)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

// engineError maps fatal engine errors to API errors
func engineError(err error) error {
	switch {
	case errors.Is(err, brain.ErrInvalidProfile):
		return apperrors.WithMessage(apperrors.ErrInvalidProfile, err.Error())
	case errors.Is(err, brain.ErrEmptyFeatureStore):
		return apperrors.Wrap(apperrors.ErrNoFeatureData, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
