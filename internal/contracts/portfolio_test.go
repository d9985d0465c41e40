package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePortfolio() Portfolio {
	return Portfolio{
		{FundID: "F1", AssetClass: AssetEquity, Weight: 0.5, Amount: 50000},
		{FundID: "F2", AssetClass: AssetEquity, Weight: 0.2, Amount: 20000},
		{FundID: "F3", AssetClass: AssetDebt, Weight: 0.3, Amount: 30000},
	}
}

func TestPortfolio_Totals(t *testing.T) {
	p := samplePortfolio()

	assert.InDelta(t, 100000, p.TotalAmount(), 1e-9)
	assert.InDelta(t, 1.0, p.TotalWeight(), 1e-9)
	assert.InDelta(t, 0.7, p.ClassWeight(AssetEquity), 1e-9)
	assert.Zero(t, p.ClassWeight(AssetCommodity))
}

func TestPortfolio_Lookup(t *testing.T) {
	p := samplePortfolio()

	assert.True(t, p.ContainsFund("F2"))
	assert.False(t, p.ContainsFund("F9"))
	assert.Equal(t, []string{"F1", "F2", "F3"}, p.FundIDs())
	assert.Len(t, p.ByAssetClass(AssetEquity), 2)
	assert.Empty(t, p.ByAssetClass(AssetCommodity))

	sections := SectionsOf(p)
	assert.Len(t, sections["debt"], 1)
	assert.NotNil(t, sections["commodity"])
}

func TestAllocationPlan(t *testing.T) {
	plan := AllocationPlan{AssetEquity: 0.55, AssetDebt: 0.35, AssetCommodity: 0.10}

	assert.InDelta(t, 1.0, plan.Sum(), 1e-9)
	assert.Equal(t, 0.35, plan.Weight(AssetDebt))
	assert.Zero(t, AllocationPlan{}.Weight(AssetEquity))
	assert.Equal(t, 0.12, Round2(0.1249))
	assert.Equal(t, 0.3333, Round4(1.0/3))
}

func TestFundRecord_Accessors(t *testing.T) {
	r := FundRecord{FundFeatureSnapshot: FundFeatureSnapshot{FundID: "X"}}
	assert.False(t, r.HasMetadata())
	assert.Empty(t, r.Name())
	assert.Nil(t, r.AUM())

	r.Metadata = &FundMetadata{FundName: "Alpha Fund", Category: "Large Cap Fund", AUMCr: Float(1500)}
	assert.True(t, r.HasMetadata())
	assert.Equal(t, "Alpha Fund", r.Name())
	assert.Equal(t, "Large Cap Fund", r.RawCategory())
	assert.Equal(t, 1500.0, *r.AUM())

	assert.Equal(t, 2.0, ValueOr(nil, 2.0))
	assert.Equal(t, 3.0, ValueOr(Float(3.0), 2.0))
}
