package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/pkg/logger"
)

// MarketRefresher recomputes and caches the market status
type MarketRefresher interface {
	Refresh(ctx context.Context) (*contracts.MarketStatus, error)
}

// MarketJob refreshes the cached market phase
type MarketJob struct {
	provider MarketRefresher
	logger   *logger.Logger
}

// NewMarketJob creates a new market job
func NewMarketJob(provider MarketRefresher, log *logger.Logger) *MarketJob {
	return &MarketJob{
		provider: provider,
		logger:   log,
	}
}

// Name returns the job name
func (j *MarketJob) Name() string {
	return "market_status"
}

// Schedule returns the cron schedule (hourly, with seconds)
func (j *MarketJob) Schedule() string {
	return "0 0 * * * *"
}

// Run executes the market refresh
func (j *MarketJob) Run(ctx context.Context) error {
	status, err := j.provider.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh market status: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"phase":  status.Phase,
		"regime": status.Regime,
	}).Debug("Market status refreshed")

	return nil
}
