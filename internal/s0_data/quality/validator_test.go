package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/fundwise/internal/contracts"
)

func record(id string, meta bool, metric *float64) contracts.FundRecord {
	r := contracts.FundRecord{
		FundFeatureSnapshot: contracts.FundFeatureSnapshot{
			FundID:         id,
			PctPosMonths36: metric,
			MaxDrawdown:    metric,
			Sharpe:         metric,
			Ret3M:          metric,
			Ret6M:          metric,
			AnnVol:         metric,
		},
	}
	if meta {
		r.Metadata = &contracts.FundMetadata{FundID: id, AUMCr: metric}
	}
	return r
}

func TestQualityGate_Check(t *testing.T) {
	gate := NewQualityGate(DefaultConfig())
	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	t.Run("complete table passes", func(t *testing.T) {
		table := &contracts.FeatureTable{
			AsOfDate: date,
			Records: []contracts.FundRecord{
				record("A", true, contracts.Float(0.5)),
				record("B", true, contracts.Float(0.2)),
			},
		}

		report := gate.Check(table)
		assert.Equal(t, date, report.AsOfDate)
		assert.Equal(t, 2, report.TotalFunds)
		assert.Equal(t, 2, report.WithMetadata)
		assert.InDelta(t, 1.0, report.QualityScore, 1e-9)
		assert.True(t, report.Passed)
		assert.Contains(t, report.Summary(), "PASS")
	})

	t.Run("half missing fails", func(t *testing.T) {
		table := &contracts.FeatureTable{
			AsOfDate: date,
			Records: []contracts.FundRecord{
				record("A", true, contracts.Float(0.5)),
				record("B", false, nil),
			},
		}

		report := gate.Check(table)
		assert.InDelta(t, 0.5, report.Coverage["metadata"], 1e-9)
		assert.InDelta(t, 0.5, report.Coverage["sharpe"], 1e-9)
		assert.InDelta(t, 0.5, report.QualityScore, 1e-9)
		assert.False(t, report.Passed)
		assert.Contains(t, report.Summary(), "WARN")
	})

	t.Run("empty table", func(t *testing.T) {
		report := gate.Check(&contracts.FeatureTable{AsOfDate: date})
		assert.Zero(t, report.TotalFunds)
		assert.False(t, report.Passed)
	})
}
