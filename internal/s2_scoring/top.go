package s2_scoring

import (
	"fmt"
	"strings"

	"github.com/wonny/fundwise/internal/contracts"
)

// Filter restricts a ranked table to an asset class or a category
type Filter struct {
	AssetClass contracts.AssetClass
	Category   contracts.AssetCategory
}

// ParseFilter accepts "", an asset class ("equity"), a category id
// ("large_cap") or a category label ("Large Cap")
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Filter{}, nil
	}

	for _, class := range contracts.AllAssetClasses() {
		if strings.EqualFold(s, string(class)) {
			return Filter{AssetClass: class}, nil
		}
	}

	if cat, err := contracts.ParseAssetCategory(s); err == nil && cat.Known() {
		return Filter{Category: cat}, nil
	}

	for _, class := range contracts.AllAssetClasses() {
		for _, cat := range contracts.CategoriesOf(class) {
			if strings.EqualFold(s, cat.Label()) {
				return Filter{Category: cat}, nil
			}
		}
	}

	return Filter{}, fmt.Errorf("unknown category filter %q", s)
}

// Matches reports whether a fund passes the filter
func (f Filter) Matches(fund *contracts.ScoredFund) bool {
	if f.Category != "" && fund.Canonical != f.Category {
		return false
	}
	if f.AssetClass != "" && fund.Canonical.AssetClass() != f.AssetClass {
		return false
	}
	return true
}

// Top returns the best k funds passing the filter (k <= 0 means all).
// scored must already be in rank order.
func Top(scored []contracts.ScoredFund, filter Filter, k int) []contracts.ScoredFund {
	out := make([]contracts.ScoredFund, 0)
	for i := range scored {
		if !filter.Matches(&scored[i]) {
			continue
		}
		out = append(out, scored[i])
		if k > 0 && len(out) == k {
			break
		}
	}
	return out
}
