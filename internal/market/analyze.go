package market

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
)

// Analyze derives phase and regime from closes ordered oldest → newest.
// Insufficient history yields NEUTRAL with an explanatory detail.
func Analyze(symbol string, closes []float64, cfg strategyconfig.Market) *contracts.MarketStatus {
	if len(closes) < cfg.SMAWindow || len(closes) < cfg.VolWindow+1 {
		status := contracts.NeutralStatus(fmt.Sprintf(
			"Insufficient market history (%d of %d closes), assuming Neutral.", len(closes), cfg.SMAWindow))
		status.Symbol = symbol
		return status
	}

	current := closes[len(closes)-1]
	sma, err := stats.Mean(stats.Float64Data(closes[len(closes)-cfg.SMAWindow:]))
	if err != nil || sma == 0 {
		status := contracts.NeutralStatus("Market data unusable, assuming Neutral.")
		status.Symbol = symbol
		return status
	}

	// 일간 수익률 (최근 vol_window개)
	tail := closes[len(closes)-cfg.VolWindow-1:]
	returns := make(stats.Float64Data, 0, cfg.VolWindow)
	for i := 1; i < len(tail); i++ {
		if tail[i-1] == 0 {
			continue
		}
		returns = append(returns, tail[i]/tail[i-1]-1)
	}

	vol := 0.0
	if sd, err := returns.StandardDeviationSample(); err == nil && !math.IsNaN(sd) {
		vol = sd * math.Sqrt(float64(cfg.TradingDaysPerYear)) * 100
	}

	regime := contracts.RegimeNormal
	switch {
	case vol > cfg.VolatileAbove:
		regime = contracts.RegimeVolatile
	case vol < cfg.StableBelow:
		regime = contracts.RegimeStable
	}

	deviation := (current - sma) / sma
	phase, label := contracts.PhaseNeutral, "Neutral"
	switch {
	case deviation > cfg.OverheatedDeviation:
		phase, label = contracts.PhaseOverheated, "Overheated"
	case deviation < cfg.UndervaluedDeviation:
		phase, label = contracts.PhaseUndervalued, "Undervalued"
	}

	return &contracts.MarketStatus{
		Symbol:       symbol,
		Phase:        phase,
		Regime:       regime,
		Volatility:   math.Round(vol*10) / 10,
		CurrentLevel: current,
		SMA:          sma,
		Details: fmt.Sprintf("%s %s Market. %s @ %d. Volatility: %d%%.",
			regime, label, symbol, int(current), int(vol)),
		AsOf: time.Now(),
	}
}
