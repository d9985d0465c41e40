package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/fundwise/internal/api/handlers"
	"github.com/wonny/fundwise/internal/apperrors"
	"github.com/wonny/fundwise/pkg/logger"
)

// Handlers groups the endpoint handlers wired into the router
type Handlers struct {
	Recommend  *handlers.RecommendHandler
	Funds      *handlers.FundHandler
	Simulation *handlers.SimulationHandler
	Market     *handlers.MarketHandler
	Health     *handlers.HealthHandler // nil = liveness only
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, limiter *rate.Limiter, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	health := h.Health
	if health == nil {
		health = handlers.NewHealthHandler(nil, log)
	}
	r.HandleFunc("/health", health.Check).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Recommendation
	api.HandleFunc("/recommend", h.Recommend.Recommend).Methods("POST")
	api.HandleFunc("/portfolio/latest", h.Recommend.LatestPortfolio).Methods("GET")

	// Funds
	api.HandleFunc("/funds", h.Funds.List).Methods("GET")
	api.HandleFunc("/funds/ranked", h.Funds.Ranked).Methods("GET")

	// Simulation
	api.HandleFunc("/simulate", h.Simulation.Simulate).Methods("POST")
	api.HandleFunc("/simulate/scenarios", h.Simulation.Scenarios).Methods("GET")

	// Market
	api.HandleFunc("/market", h.Market.GetStatus).Methods("GET")

	if limiter != nil {
		api.Use(rateLimitMiddleware(limiter))
	}

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					writeAppError(w, apperrors.ErrInternalServer)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware throttles /api with a shared token bucket
func rateLimitMiddleware(limiter *rate.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeAppError(w, apperrors.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAppError(w http.ResponseWriter, e *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    e.Code,
		"message": e.Message,
	})
}
