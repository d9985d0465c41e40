package s0_data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
)

func TestCanonicalizer_Canonical(t *testing.T) {
	canon := NewCanonicalizer(strategyconfig.Default())

	tests := []struct {
		name     string
		category string
		fund     string
		want     contracts.AssetCategory
	}{
		{"large cap", "Large Cap Fund", "", contracts.CategoryLargeCap},
		{"large & mid before mid", "Large & Mid Cap Fund", "", contracts.CategoryLargeMidCap},
		{"mid cap", "Mid Cap Fund", "", contracts.CategoryMidCap},
		{"case insensitive", "SMALL CAP FUND", "", contracts.CategorySmallCap},
		{"ultra short before liquid", "Ultra Short Duration Fund", "", contracts.CategoryUltraShortDuration},
		{"banking psu", "Banking and PSU Fund", "", contracts.CategoryBankingPSU},
		{"gilt", "Gilt Fund with 10 year constant duration", "", contracts.CategoryGilt},
		{"thematic", "Sectoral/Thematic", "", contracts.CategoryThematic},
		{"unmatched category ignores name", "Credit Risk Fund", "Bluechip Fund", contracts.CategoryUnknown},
		{"name fallback bluechip", "", "Axis Bluechip Fund - Regular Plan", contracts.CategoryLargeCap},
		{"name fallback tax saver", "", "DSP Tax Saver Fund", contracts.CategoryELSS},
		{"name fallback nifty", "", "UTI Nifty 50 Index Fund", contracts.CategoryIndexFund},
		{"nothing to go on", "", "", contracts.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canon.Canonical(tt.category, tt.fund))
		})
	}
}

func TestCanonicalizer_Apply(t *testing.T) {
	canon := NewCanonicalizer(strategyconfig.Default())

	records := []contracts.FundRecord{
		{FundFeatureSnapshot: contracts.FundFeatureSnapshot{FundID: "A"},
			Metadata: &contracts.FundMetadata{FundName: "Alpha", Category: "Liquid Fund"}},
		{FundFeatureSnapshot: contracts.FundFeatureSnapshot{FundID: "B"}},
		{FundFeatureSnapshot: contracts.FundFeatureSnapshot{FundID: "C"},
			Metadata: &contracts.FundMetadata{FundName: "Gamma", Category: "Arbitrage Fund"}},
	}

	unknown := canon.Apply(records)

	assert.Equal(t, 2, unknown)
	assert.Equal(t, contracts.CategoryLiquid, records[0].Canonical)
	assert.Equal(t, contracts.CategoryUnknown, records[1].Canonical)
	assert.Equal(t, contracts.CategoryUnknown, records[2].Canonical)
}
