package s2_scoring

import "sort"

// PercentileRank returns the percentile rank of every value in [1/n, 1].
// Ties share the average of their ordinal ranks; the maximum maps to 1.0.
func PercentileRank(values []float64) []float64 {
	n := len(values)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	for start := 0; start < n; {
		end := start + 1
		for end < n && values[idx[end]] == values[idx[start]] {
			end++
		}
		// ordinal ranks start+1 .. end → 평균
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg / float64(n)
		}
		start = end
	}

	return ranks
}
