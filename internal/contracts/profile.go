package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// RiskTolerance is the user's stated appetite for volatility
type RiskTolerance string

const (
	RiskLow      RiskTolerance = "Low"
	RiskModerate RiskTolerance = "Moderate"
	RiskHigh     RiskTolerance = "High"
)

// ParseRiskTolerance accepts the canonical names and common aliases
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "conservative", "safety":
		return RiskLow, nil
	case "moderate", "medium", "balanced":
		return RiskModerate, nil
	case "high", "aggressive":
		return RiskHigh, nil
	default:
		return "", fmt.Errorf("unknown risk tolerance %q", s)
	}
}

// UserProfile is the immutable per-request investor input
type UserProfile struct {
	Amount             float64       `json:"amount"`
	HorizonYears       float64       `json:"horizon_years"`
	RiskTolerance      RiskTolerance `json:"risk_tolerance"`
	Age                *int          `json:"age,omitempty"`
	Goal               string        `json:"goal,omitempty"`
	CurrentInvestments float64       `json:"current_investments,omitempty"`
}

// Validate checks the fields the engine cannot run without
func (p *UserProfile) Validate() error {
	if p.Amount <= 0 {
		return errors.New("amount must be > 0")
	}
	if p.HorizonYears <= 0 {
		return errors.New("horizon_years must be > 0")
	}
	switch p.RiskTolerance {
	case RiskLow, RiskModerate, RiskHigh:
	default:
		return fmt.Errorf("risk_tolerance must be Low, Moderate or High, got %q", p.RiskTolerance)
	}
	if p.Age != nil && *p.Age <= 0 {
		return errors.New("age must be > 0 when present")
	}
	return nil
}

// IsLowRisk reports whether the defensive slot sets apply
func (p *UserProfile) IsLowRisk() bool {
	return p.RiskTolerance == RiskLow
}
