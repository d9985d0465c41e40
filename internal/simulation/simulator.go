package simulation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

var (
	// ErrUnknownScenario is returned for a scenario id not in the strategy config
	ErrUnknownScenario = errors.New("unknown scenario")
	// ErrEmptyPortfolio is returned when there is nothing to revalue
	ErrEmptyPortfolio = errors.New("portfolio has no invested amount")
)

// FundImpact is the revaluation of one portfolio item
type FundImpact struct {
	Fund      string  `json:"fund"`
	Original  float64 `json:"original"`
	Simulated float64 `json:"simulated"`
	ChangePct float64 `json:"change_pct"`
}

// Result is the outcome of replaying a portfolio against one scenario
type Result struct {
	Scenario     string       `json:"scenario"`
	Description  string       `json:"description"`
	InitialValue float64      `json:"initial_value"`
	FinalValue   float64      `json:"final_value"`
	DrawdownPct  float64      `json:"drawdown_pct"`
	Details      []FundImpact `json:"details"`
}

// Simulator replays portfolios against historical shock tables
type Simulator struct {
	config *strategyconfig.Config
	logger *logger.Logger
}

// NewSimulator creates a new simulator
func NewSimulator(cfg *strategyconfig.Config, log *logger.Logger) *Simulator {
	return &Simulator{
		config: cfg,
		logger: log.WithStage("simulation"),
	}
}

// Scenarios lists the configured scenarios
func (s *Simulator) Scenarios() []strategyconfig.Scenario {
	return s.config.Simulation.Scenarios
}

// Run applies scenario shocks to every item and sums the result
func (s *Simulator) Run(portfolio contracts.Portfolio, scenarioID string) (*Result, error) {
	scenario, ok := s.config.ScenarioByID(scenarioID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, scenarioID)
	}

	initial := decimal.Zero
	final := decimal.Zero
	details := make([]FundImpact, 0, len(portfolio))

	for _, item := range portfolio {
		shock := Shock(scenario, item)
		amount := decimal.NewFromFloat(item.Amount)
		simulated := amount.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(shock)))

		initial = initial.Add(amount)
		final = final.Add(simulated)

		details = append(details, FundImpact{
			Fund:      item.FundName,
			Original:  item.Amount,
			Simulated: simulated.Round(2).InexactFloat64(),
			ChangePct: decimal.NewFromFloat(shock).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64(),
		})
	}

	if !initial.IsPositive() {
		return nil, ErrEmptyPortfolio
	}

	drawdown := final.Sub(initial).Div(initial).Mul(decimal.NewFromInt(100))

	result := &Result{
		Scenario:     scenario.ID,
		Description:  scenario.Description,
		InitialValue: initial.Round(2).InexactFloat64(),
		FinalValue:   final.Round(2).InexactFloat64(),
		DrawdownPct:  drawdown.Round(2).InexactFloat64(),
		Details:      details,
	}

	s.logger.WithFields(map[string]interface{}{
		"scenario":     scenario.ID,
		"funds":        len(portfolio),
		"drawdown_pct": result.DrawdownPct,
	}).Info("scenario simulated")

	return result, nil
}

// Shock returns the fractional return a scenario applies to one item.
// Unknown asset classes are unaffected.
func Shock(scenario strategyconfig.Scenario, item contracts.PortfolioItem) float64 {
	category := item.CanonicalCategory
	if category == "" || category == contracts.CategoryUnknown {
		category = contracts.CategoryFromLabel(item.Category)
	}

	switch item.AssetClass {
	case contracts.AssetEquity:
		shock := scenario.Equity
		switch category {
		case contracts.CategoryLargeCap:
			shock += scenario.LargeCapAdj
		case contracts.CategorySmallCap:
			shock += scenario.SmallCapAdj
		}
		return shock
	case contracts.AssetDebt:
		if category.IsCashLike() {
			return scenario.Liquid
		}
		return scenario.Debt
	case contracts.AssetCommodity:
		return scenario.Commodity
	default:
		return 0
	}
}
