package contracts

// PortfolioItem is one fund purchase in a recommended portfolio
type PortfolioItem struct {
	FundID            string        `json:"fund_id"`
	FundName          string        `json:"fund_name"`
	Category          string        `json:"category"`
	CanonicalCategory AssetCategory `json:"canonical_category"`
	AssetClass        AssetClass    `json:"asset_class"`
	Slot              string        `json:"slot"`
	Weight            float64       `json:"weight"` // fraction of total capital
	Amount            float64       `json:"amount"`
	Score             float64       `json:"score"`
	Rationale         string        `json:"rationale"`
	Metrics           *FundMetrics  `json:"metrics,omitempty"`
}

// Portfolio is the ordered list of items for one request
// ⭐ SSOT: S4 → S5 전달 단위
type Portfolio []PortfolioItem

// TotalAmount returns the sum of item amounts
func (p Portfolio) TotalAmount() float64 {
	var total float64
	for _, item := range p {
		total += item.Amount
	}
	return total
}

// TotalWeight returns the sum of item weights
func (p Portfolio) TotalWeight() float64 {
	var total float64
	for _, item := range p {
		total += item.Weight
	}
	return total
}

// ClassWeight returns the summed weight of one asset class
func (p Portfolio) ClassWeight(class AssetClass) float64 {
	var total float64
	for _, item := range p {
		if item.AssetClass == class {
			total += item.Weight
		}
	}
	return total
}

// ContainsFund reports whether a fund id is already present
func (p Portfolio) ContainsFund(fundID string) bool {
	for _, item := range p {
		if item.FundID == fundID {
			return true
		}
	}
	return false
}

// ByAssetClass returns items of one asset class in portfolio order
func (p Portfolio) ByAssetClass(class AssetClass) Portfolio {
	out := make(Portfolio, 0)
	for _, item := range p {
		if item.AssetClass == class {
			out = append(out, item)
		}
	}
	return out
}

// FundIDs returns ids in order
func (p Portfolio) FundIDs() []string {
	ids := make([]string, 0, len(p))
	for _, item := range p {
		ids = append(ids, item.FundID)
	}
	return ids
}
