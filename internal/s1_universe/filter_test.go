package s1_universe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

func fund(id, name, category string, canonical contracts.AssetCategory, aum *float64) contracts.FundRecord {
	return contracts.FundRecord{
		FundFeatureSnapshot: contracts.FundFeatureSnapshot{FundID: id},
		Metadata: &contracts.FundMetadata{
			FundID:   id,
			FundName: name,
			Category: category,
			AUMCr:    aum,
		},
		Canonical: canonical,
	}
}

func newFilter() *Filter {
	return NewFilter(strategyconfig.Default(), logger.Nop())
}

func TestFilter_Apply(t *testing.T) {
	big := contracts.Float(5000)
	table := &contracts.FeatureTable{
		AsOfDate: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Records: []contracts.FundRecord{
			fund("F1", "Alpha Large Cap Fund - Regular Growth", "Large Cap Fund", contracts.CategoryLargeCap, big),
			{FundFeatureSnapshot: contracts.FundFeatureSnapshot{FundID: "F2"}},
			fund("F3", "Tiny Mid Cap Fund", "Mid Cap Fund", contracts.CategoryMidCap, contracts.Float(200)),
			fund("F4", "No AUM Fund", "Mid Cap Fund", contracts.CategoryMidCap, nil),
			fund("F5", "Arbitrage Fund", "Arbitrage Fund", contracts.CategoryUnknown, big),
			fund("F6", "Safe Income Fund", "Credit Risk Fund", contracts.CategoryCorporateBond, big),
			fund("F7", "Alpha Large Cap Fund - Direct Plan", "Large Cap Fund", contracts.CategoryLargeCap, big),
			fund("F8", "Beta Liquid Fund IDCW", "Liquid Fund", contracts.CategoryLiquid, big),
			fund("F9", "Gamma Liquid Fund", "Liquid Fund", contracts.CategoryLiquid, big),
		},
	}

	u := newFilter().Apply(table)

	assert.Equal(t, table.AsOfDate, u.AsOfDate)
	assert.Equal(t, 9, u.BeforeCount)
	assert.Equal(t, 2, u.AfterCount)
	require.Len(t, u.Funds, 2)
	assert.Equal(t, "F1", u.Funds[0].FundID, "order preserved")
	assert.Equal(t, "F9", u.Funds[1].FundID)

	assert.Equal(t, ReasonMissingMetadata, u.Excluded["F2"])
	assert.Contains(t, u.Excluded["F3"], ReasonLowAUM)
	assert.Equal(t, ReasonMissingAUM, u.Excluded["F4"])
	assert.Contains(t, u.Excluded["F5"], ReasonCategory)
	assert.Contains(t, u.Excluded["F6"], ReasonRiskKeyword)
	assert.Contains(t, u.Excluded["F7"], ReasonShareClass)
	assert.Contains(t, u.Excluded["F8"], "IDCW")
	assert.Len(t, u.Excluded, 7)

	require.Len(t, u.StepCounts, 5)
	assert.Equal(t, contracts.StepCount{Rule: StepMetadata, Before: 9, After: 8}, u.StepCounts[0])
	assert.Equal(t, contracts.StepCount{Rule: StepLiquidity, Before: 8, After: 6}, u.StepCounts[1])
	assert.Equal(t, 2, u.StepCounts[4].After)
}

func TestFilter_NoAUMSkipsLiquidity(t *testing.T) {
	table := &contracts.FeatureTable{
		Records: []contracts.FundRecord{
			fund("F1", "Alpha Large Cap Fund", "Large Cap Fund", contracts.CategoryLargeCap, nil),
			fund("F2", "Beta Mid Cap Fund", "Mid Cap Fund", contracts.CategoryMidCap, nil),
		},
	}

	u := newFilter().Apply(table)

	assert.Equal(t, 2, u.AfterCount, "all-null AUM must not shrink the universe")
	liquidity := u.StepCounts[1]
	assert.Equal(t, StepLiquidity, liquidity.Rule)
	assert.True(t, liquidity.Skipped)
	assert.Equal(t, liquidity.Before, liquidity.After)
}

func TestFilter_EmptyTable(t *testing.T) {
	u := newFilter().Apply(&contracts.FeatureTable{})
	assert.Empty(t, u.Funds)
	assert.Zero(t, u.AfterCount)
	assert.Empty(t, u.Excluded)
}

func TestContainsAny(t *testing.T) {
	assert.Equal(t, "Direct", containsAny("alpha fund - DIRECT growth", []string{"Direct", "IDCW"}))
	assert.Equal(t, "", containsAny("alpha fund - regular", []string{"Direct", ""}))
}
