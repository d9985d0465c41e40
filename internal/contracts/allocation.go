package contracts

import "math"

// AllocationPlan maps asset class to a target weight in [0,1]
type AllocationPlan map[AssetClass]float64

// Weight returns the weight of a class (0 when absent)
func (p AllocationPlan) Weight(c AssetClass) float64 {
	return p[c]
}

// Sum returns the total weight
func (p AllocationPlan) Sum() float64 {
	var total float64
	for _, w := range p {
		total += w
	}
	return total
}

// Round2 rounds to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
