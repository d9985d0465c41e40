package market

import (
	"context"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

// SeriesSource returns up to n most recent index closes, oldest first
type SeriesSource interface {
	Closes(ctx context.Context, symbol string, n int) ([]float64, error)
}

// StaticProvider always reports a fixed phase (tests, offline CLI)
type StaticProvider struct {
	phase contracts.MarketPhase
}

// NewStaticProvider creates a fixed-phase provider
func NewStaticProvider(phase contracts.MarketPhase) *StaticProvider {
	return &StaticProvider{phase: phase}
}

// Status implements contracts.MarketPhaseProvider
func (p *StaticProvider) Status(ctx context.Context) (*contracts.MarketStatus, error) {
	status := contracts.NeutralStatus("Static market phase " + string(p.phase) + ".")
	status.Phase = p.phase
	return status, nil
}

// IndexProvider computes the phase from an index close series.
// Source failures degrade to NEUTRAL, they never fail a recommendation.
type IndexProvider struct {
	source SeriesSource
	symbol string
	config strategyconfig.Market
	logger *logger.Logger
}

// NewIndexProvider creates a series-backed provider
func NewIndexProvider(source SeriesSource, symbol string, cfg *strategyconfig.Config, log *logger.Logger) *IndexProvider {
	return &IndexProvider{
		source: source,
		symbol: symbol,
		config: cfg.Market,
		logger: log.WithField("symbol", symbol),
	}
}

// Status implements contracts.MarketPhaseProvider
func (p *IndexProvider) Status(ctx context.Context) (*contracts.MarketStatus, error) {
	// SMA 윈도우 + 여유분
	n := p.config.SMAWindow
	if p.config.VolWindow+1 > n {
		n = p.config.VolWindow + 1
	}

	closes, err := p.source.Closes(ctx, p.symbol, n)
	if err != nil {
		p.logger.WithError(err).Warn("market series unavailable, assuming neutral")
		status := contracts.NeutralStatus("Error analyzing market, defaulted to Neutral.")
		status.Symbol = p.symbol
		return status, nil
	}

	status := Analyze(p.symbol, closes, p.config)
	p.logger.WithFields(map[string]interface{}{
		"phase":      status.Phase,
		"regime":     status.Regime,
		"volatility": status.Volatility,
		"closes":     len(closes),
	}).Info("market status computed")

	return status, nil
}
