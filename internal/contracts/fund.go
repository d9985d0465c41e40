package contracts

import "time"

// FundFeatureSnapshot is one fund's derived metrics for a single as-of date.
// Immutable once computed; later dates supersede it.
type FundFeatureSnapshot struct {
	FundID         string    `json:"fund_id"`
	AsOfDate       time.Time `json:"as_of_date"`
	AnnReturn      *float64  `json:"ann_return,omitempty"`
	AnnVol         *float64  `json:"ann_vol,omitempty"`
	Sharpe         *float64  `json:"sharpe,omitempty"`
	MaxDrawdown    *float64  `json:"max_drawdown,omitempty"`
	PctPosMonths36 *float64  `json:"pct_pos_months_36,omitempty"`
	Ret3M          *float64  `json:"ret_3m,omitempty"`
	Ret6M          *float64  `json:"ret_6m,omitempty"`
	RetConsistency *float64  `json:"ret_consistency,omitempty"`
}

// FundMetadata holds slow-changing per-fund attributes
type FundMetadata struct {
	FundID             string   `json:"fund_id"`
	FundName           string   `json:"fund_name"`
	Category           string   `json:"category"` // free text, e.g. "Large Cap Fund"
	AUMCr              *float64 `json:"aum_cr,omitempty"`
	ExpenseRatio       *float64 `json:"expense_ratio,omitempty"`
	Top10Concentration *float64 `json:"top10_concentration,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
	Turnover           *float64 `json:"turnover,omitempty"`
}

// FundRecord is a feature row joined with its metadata.
// ⭐ SSOT: S0 → S1 전달 단위
type FundRecord struct {
	FundFeatureSnapshot
	Metadata  *FundMetadata `json:"metadata,omitempty"` // nil = join failure
	Canonical AssetCategory `json:"canonical_category"`
}

// HasMetadata reports whether the metadata join succeeded
func (r *FundRecord) HasMetadata() bool {
	return r.Metadata != nil
}

// Name returns the fund name or "" when metadata is missing
func (r *FundRecord) Name() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.FundName
}

// RawCategory returns the free-text category or "" when metadata is missing
func (r *FundRecord) RawCategory() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.Category
}

// AUM returns assets under management in Cr, nil when unknown
func (r *FundRecord) AUM() *float64 {
	if r.Metadata == nil {
		return nil
	}
	return r.Metadata.AUMCr
}

// FeatureTable is the latest-dated snapshot handed to the engine
type FeatureTable struct {
	AsOfDate        time.Time    `json:"as_of_date"`
	Records         []FundRecord `json:"records"`
	MissingMetadata int          `json:"missing_metadata"`
}

// FundMetrics is the metric snapshot attached to a portfolio item
type FundMetrics struct {
	Sharpe    *float64 `json:"sharpe,omitempty"`
	AnnVol    *float64 `json:"ann_vol,omitempty"`
	AnnReturn *float64 `json:"ann_return,omitempty"`
}

// Float returns a pointer to v (nullable metric literal)
func Float(v float64) *float64 {
	return &v
}

// ValueOr dereferences p, falling back to def when p is nil
func ValueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
