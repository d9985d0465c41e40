package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/wonny/fundwise/pkg/logger"
)

// HealthCheck probes one backing dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness plus the state of backing stores
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	logger  *logger.Logger
}

// NewHealthHandler creates a health handler; checks may be empty
func NewHealthHandler(checks map[string]HealthCheck, log *logger.Logger) *HealthHandler {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
		logger:  log,
	}
}

// HealthResponse is the /health body
type HealthResponse struct {
	Status     string            `json:"status"` // ok, degraded
	Service    string            `json:"service"`
	Components map[string]string `json:"components,omitempty"`
}

// Check runs every probe and answers 503 when any fails
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Service:    "fundwise-api",
		Components: make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			resp.Status = "degraded"
			resp.Components[name] = err.Error()
			h.logger.WithField("component", name).WithError(err).Warn("health check failed")
			continue
		}
		resp.Components[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}
