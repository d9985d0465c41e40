package handlers

import (
	"net/http"

	"github.com/wonny/fundwise/internal/brain"
	"github.com/wonny/fundwise/pkg/logger"
)

// MarketHandler exposes the current market status
type MarketHandler struct {
	engine *brain.Engine
	logger *logger.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(engine *brain.Engine, log *logger.Logger) *MarketHandler {
	return &MarketHandler{engine: engine, logger: log}
}

// GetStatus returns phase, regime and details
// GET /api/market
func (h *MarketHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.MarketStatus(r.Context()))
}
