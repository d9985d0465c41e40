package handlers

import (
	"errors"
	"net/http"

	"github.com/wonny/fundwise/internal/apperrors"
	"github.com/wonny/fundwise/internal/brain"
	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/simulation"
	"github.com/wonny/fundwise/pkg/logger"
)

// SimulationHandler replays portfolios against stress scenarios
type SimulationHandler struct {
	simulator *simulation.Simulator
	engine    *brain.Engine
	logger    *logger.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(sim *simulation.Simulator, engine *brain.Engine, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		simulator: sim,
		engine:    engine,
		logger:    log,
	}
}

// SimulateRequest is the body of POST /api/simulate
type SimulateRequest struct {
	Portfolio  contracts.Portfolio `json:"portfolio" validate:"required,min=1,dive"`
	ScenarioID string              `json:"scenario_id" validate:"required"`
}

// ScenarioInfo describes one available scenario
type ScenarioInfo struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Equity      float64 `json:"equity"`
	Debt        float64 `json:"debt"`
	Liquid      float64 `json:"liquid"`
	Commodity   float64 `json:"commodity"`
}

// Simulate runs one scenario
// POST /api/simulate
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	result, err := h.simulator.Run(req.Portfolio, req.ScenarioID)
	switch {
	case errors.Is(err, simulation.ErrUnknownScenario):
		respondError(w, r, h.logger, apperrors.WithMessage(apperrors.ErrUnknownScenario, err.Error()))
		return
	case errors.Is(err, simulation.ErrEmptyPortfolio):
		respondError(w, r, h.logger, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	case err != nil:
		respondError(w, r, h.logger, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.engine.LogInteraction(r.Context(), userID(r), "simulate", map[string]interface{}{
		"scenario":     result.Scenario,
		"drawdown_pct": result.DrawdownPct,
	})

	respondJSON(w, http.StatusOK, result)
}

// Scenarios lists the configured scenarios
// GET /api/simulate/scenarios
func (h *SimulationHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := h.simulator.Scenarios()
	out := make([]ScenarioInfo, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, ScenarioInfo{
			ID:          s.ID,
			Description: s.Description,
			Equity:      s.Equity,
			Debt:        s.Debt,
			Liquid:      s.Liquid,
			Commodity:   s.Commodity,
		})
	}
	respondJSON(w, http.StatusOK, out)
}
