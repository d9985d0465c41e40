package contracts

import (
	"fmt"
	"strings"
	"time"
)

// MarketPhase is the externally supplied macro regime label
type MarketPhase string

const (
	PhaseOverheated  MarketPhase = "OVERHEATED"
	PhaseNeutral     MarketPhase = "NEUTRAL"
	PhaseUndervalued MarketPhase = "UNDERVALUED"
)

// ParseMarketPhase parses a phase label (case-insensitive)
func ParseMarketPhase(s string) (MarketPhase, error) {
	switch MarketPhase(strings.ToUpper(strings.TrimSpace(s))) {
	case PhaseOverheated:
		return PhaseOverheated, nil
	case PhaseNeutral, "":
		return PhaseNeutral, nil
	case PhaseUndervalued:
		return PhaseUndervalued, nil
	default:
		return PhaseNeutral, fmt.Errorf("unknown market phase %q", s)
	}
}

// MarketRegime is the volatility regime label
type MarketRegime string

const (
	RegimeVolatile MarketRegime = "Volatile"
	RegimeNormal   MarketRegime = "Normal"
	RegimeStable   MarketRegime = "Stable"
)

// MarketStatus is what the market-phase provider returns
type MarketStatus struct {
	Symbol       string       `json:"symbol,omitempty"`
	Phase        MarketPhase  `json:"phase"`
	Regime       MarketRegime `json:"regime"`
	Volatility   float64      `json:"volatility,omitempty"` // annualized, percent
	CurrentLevel float64      `json:"current_level,omitempty"`
	SMA          float64      `json:"sma,omitempty"`
	Details      string       `json:"details"`
	AsOf         time.Time    `json:"as_of"`
}

// NeutralStatus is the fallback when no signal can be derived
func NeutralStatus(details string) *MarketStatus {
	return &MarketStatus{
		Phase:   PhaseNeutral,
		Regime:  RegimeNormal,
		Details: details,
		AsOf:    time.Now(),
	}
}
