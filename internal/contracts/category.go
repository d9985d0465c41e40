package contracts

import (
	"fmt"
	"strings"
)

// AssetClass is the top-level bucket an allocation plan splits capital into
type AssetClass string

const (
	AssetEquity    AssetClass = "Equity"
	AssetDebt      AssetClass = "Debt"
	AssetCommodity AssetClass = "Commodity"
)

// AllAssetClasses returns asset classes in reporting order
func AllAssetClasses() []AssetClass {
	return []AssetClass{AssetEquity, AssetDebt, AssetCommodity}
}

// AssetCategory is the canonical fund category.
// ⭐ SSOT: 자유 텍스트 카테고리는 로드 시점에 한 번만 이 값으로 정규화됨
type AssetCategory string

const (
	CategoryLargeCap           AssetCategory = "large_cap"
	CategoryMidCap             AssetCategory = "mid_cap"
	CategorySmallCap           AssetCategory = "small_cap"
	CategoryFlexiCap           AssetCategory = "flexi_cap"
	CategoryLargeMidCap        AssetCategory = "large_mid_cap"
	CategoryMultiCap           AssetCategory = "multi_cap"
	CategoryIndexFund          AssetCategory = "index_fund"
	CategoryELSS               AssetCategory = "elss"
	CategoryLiquid             AssetCategory = "liquid"
	CategoryCorporateBond      AssetCategory = "corporate_bond"
	CategoryGilt               AssetCategory = "gilt"
	CategoryBankingPSU         AssetCategory = "banking_psu"
	CategoryOvernight          AssetCategory = "overnight"
	CategoryMoneyMarket        AssetCategory = "money_market"
	CategoryUltraShortDuration AssetCategory = "ultra_short_duration"
	CategoryLowDuration        AssetCategory = "low_duration"
	CategoryGold               AssetCategory = "gold"
	CategoryCommodity          AssetCategory = "commodity"
	CategoryThematic           AssetCategory = "thematic"
	CategoryUnknown            AssetCategory = "unknown"
)

type categoryInfo struct {
	label string
	class AssetClass
}

var categoryTable = map[AssetCategory]categoryInfo{
	CategoryLargeCap:           {"Large Cap", AssetEquity},
	CategoryMidCap:             {"Mid Cap", AssetEquity},
	CategorySmallCap:           {"Small Cap", AssetEquity},
	CategoryFlexiCap:           {"Flexi Cap", AssetEquity},
	CategoryLargeMidCap:        {"Large & Mid Cap", AssetEquity},
	CategoryMultiCap:           {"Multi Cap", AssetEquity},
	CategoryIndexFund:          {"Index Fund", AssetEquity},
	CategoryELSS:               {"ELSS", AssetEquity},
	CategoryThematic:           {"Sectoral/Thematic", AssetEquity},
	CategoryLiquid:             {"Liquid", AssetDebt},
	CategoryCorporateBond:      {"Corporate Bond", AssetDebt},
	CategoryGilt:               {"Gilt", AssetDebt},
	CategoryBankingPSU:         {"Banking and PSU", AssetDebt},
	CategoryOvernight:          {"Overnight", AssetDebt},
	CategoryMoneyMarket:        {"Money Market", AssetDebt},
	CategoryUltraShortDuration: {"Ultra Short Duration", AssetDebt},
	CategoryLowDuration:        {"Low Duration", AssetDebt},
	CategoryGold:               {"Gold", AssetCommodity},
	CategoryCommodity:          {"Commodity", AssetCommodity},
}

// ParseAssetCategory parses a canonical identifier such as "large_cap"
func ParseAssetCategory(s string) (AssetCategory, error) {
	c := AssetCategory(strings.ToLower(strings.TrimSpace(s)))
	if c == CategoryUnknown {
		return c, nil
	}
	if _, ok := categoryTable[c]; !ok {
		return CategoryUnknown, fmt.Errorf("unknown asset category %q", s)
	}
	return c, nil
}

// CategoryFromLabel maps a display label ("Large Cap") back to its category.
// Matching is exact but case-insensitive; anything else is Unknown.
func CategoryFromLabel(label string) AssetCategory {
	label = strings.TrimSpace(label)
	for _, c := range allCategories {
		if strings.EqualFold(categoryTable[c].label, label) {
			return c
		}
	}
	return CategoryUnknown
}

// Known reports whether the category is anything but Unknown
func (c AssetCategory) Known() bool {
	_, ok := categoryTable[c]
	return ok
}

// Label returns the display label (e.g. "Large Cap")
func (c AssetCategory) Label() string {
	if info, ok := categoryTable[c]; ok {
		return info.label
	}
	return "Unknown"
}

// AssetClass returns the asset class; Unknown maps to ""
func (c AssetCategory) AssetClass() AssetClass {
	return categoryTable[c].class
}

// IsDebt reports whether the category belongs to the debt whitelist
func (c AssetCategory) IsDebt() bool {
	return c.AssetClass() == AssetDebt
}

// IsCashLike reports debt categories that behave like cash in a stress scenario
func (c AssetCategory) IsCashLike() bool {
	switch c {
	case CategoryLiquid, CategoryOvernight, CategoryMoneyMarket:
		return true
	}
	return false
}

// CategoriesOf returns every known category of an asset class
func CategoriesOf(class AssetClass) []AssetCategory {
	out := make([]AssetCategory, 0)
	for _, c := range allCategories {
		if c.AssetClass() == class {
			out = append(out, c)
		}
	}
	return out
}

// allCategories fixes iteration order for CategoriesOf
var allCategories = []AssetCategory{
	CategoryLargeCap, CategoryMidCap, CategorySmallCap, CategoryFlexiCap,
	CategoryLargeMidCap, CategoryMultiCap, CategoryIndexFund, CategoryELSS,
	CategoryThematic,
	CategoryLiquid, CategoryCorporateBond, CategoryGilt, CategoryBankingPSU,
	CategoryOvernight, CategoryMoneyMarket, CategoryUltraShortDuration, CategoryLowDuration,
	CategoryGold, CategoryCommodity,
}
