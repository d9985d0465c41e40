package reasoning

import (
	"fmt"
	"math"
	"strings"

	"github.com/wonny/fundwise/internal/contracts"
)

// Explain renders the plain-language summary shown with a recommendation
func (r *Reasoner) Explain(profile contracts.UserProfile, plan contracts.AllocationPlan, status contracts.MarketStatus) string {
	equity := pct(plan.Weight(contracts.AssetEquity))
	debt := pct(plan.Weight(contracts.AssetDebt))
	commodity := pct(plan.Weight(contracts.AssetCommodity))

	split := fmt.Sprintf("%d%% Equity / %d%% Debt", equity, debt)
	if commodity > 0 {
		split += fmt.Sprintf(" / %d%% Commodity", commodity)
	}
	intro := fmt.Sprintf("We have designed a **%s** portfolio for you.", split)

	return fmt.Sprintf("%s\n\n**Why this split?** %s\n\n**Market Sensitivity:** %s",
		intro,
		allocationReasons(profile, equity, debt),
		marketContext(status),
	)
}

func allocationReasons(profile contracts.UserProfile, equity, debt int) string {
	reasons := make([]string, 0, 3)

	// 나이
	if profile.Age != nil {
		age := *profile.Age
		if age < 40 && equity > 60 {
			reasons = append(reasons, fmt.Sprintf("At %d years old, you have a long runway to compound wealth, justifying a higher equity exposure.", age))
		} else if age > 50 && debt > 40 {
			reasons = append(reasons, fmt.Sprintf("At %d, preserving your accumulated capital is key, hence the significant debt cushion.", age))
		}
	}

	// 투자 기간
	if profile.HorizonYears > 7 && equity > 60 {
		reasons = append(reasons, "Your long investment horizon allows you to ride out short-term market volatility for higher returns.")
	} else if profile.HorizonYears < 3 && debt > 60 {
		reasons = append(reasons, "Since you need the money soon (within 3 years), we prioritized stability over aggressive growth.")
	}

	// 위험 성향
	if profile.RiskTolerance == contracts.RiskHigh && equity > 70 {
		reasons = append(reasons, "Reflecting your high risk tolerance, this portfolio is aggressively positioned for maximum growth.")
	} else if profile.RiskTolerance == contracts.RiskLow && debt > 70 {
		reasons = append(reasons, "We respected your preference for safety by keeping exposure to volatile stocks minimal.")
	}

	return strings.Join(reasons, " ")
}

func marketContext(status contracts.MarketStatus) string {
	var b strings.Builder

	switch status.Regime {
	case contracts.RegimeVolatile:
		b.WriteString("The market is currently experiencing **High Volatility (>20%)**. ")
	case contracts.RegimeStable:
		b.WriteString("The market is currently **Stable (<10% Volatility)**. ")
	}

	switch status.Phase {
	case contracts.PhaseOverheated:
		b.WriteString("Valuations appear **Overheated**. To protect your capital from potential corrections, we have increased allocation to Debt/Liquid funds.")
	case contracts.PhaseUndervalued:
		b.WriteString("Valuations are **Attractive**. We have maximized Equity allocation to capture potential upside.")
	default:
		b.WriteString("Valuations are **Fair**. We have maintained a standard allocation aligned with your goals.")
	}

	return b.String()
}

// pct converts a weight to a whole percentage
func pct(w float64) int {
	return int(math.Round(w * 100))
}
