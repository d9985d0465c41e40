package s2_scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileRank(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{"empty", nil, []float64{}},
		{"single", []float64{3}, []float64{1}},
		{"distinct", []float64{10, 30, 20, 40}, []float64{0.25, 0.75, 0.5, 1}},
		{"ties average", []float64{1, 2, 2, 3}, []float64{0.25, 0.625, 0.625, 1}},
		{"all equal", []float64{5, 5, 5, 5}, []float64{0.625, 0.625, 0.625, 0.625}},
		{"negatives", []float64{-0.5, -0.1, -0.3}, []float64{1.0 / 3, 1, 2.0 / 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentileRank(tt.values)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12, "index %d", i)
			}
		})
	}
}

func TestPercentileRank_Bounds(t *testing.T) {
	values := []float64{0.3, 0.9, 0.1, 0.5, 0.7, 0.2}
	got := PercentileRank(values)

	max, min := 0.0, 1.0
	for _, v := range got {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	assert.Equal(t, 1.0, max)
	assert.InDelta(t, 1.0/6, min, 1e-12)
}
