package s0_data

import (
	"strings"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
)

type rule struct {
	keyword  string
	category contracts.AssetCategory
}

// Canonicalizer maps free-text fund categories to contracts.AssetCategory
// ⭐ SSOT: 카테고리 문자열 매칭은 여기서만 (하위 단계는 enum만 사용)
type Canonicalizer struct {
	categoryRules []rule
	nameRules     []rule
}

// NewCanonicalizer builds a canonicalizer from strategy rules.
// Rules were validated by strategyconfig.Validate; unparsable ids map to Unknown.
func NewCanonicalizer(cfg *strategyconfig.Config) *Canonicalizer {
	return &Canonicalizer{
		categoryRules: compileRules(cfg.Categories),
		nameRules:     compileRules(cfg.NameRules),
	}
}

func compileRules(in []strategyconfig.CategoryRule) []rule {
	out := make([]rule, 0, len(in))
	for _, r := range in {
		cat, _ := contracts.ParseAssetCategory(r.Category)
		out = append(out, rule{
			keyword:  strings.ToLower(r.Keyword),
			category: cat,
		})
	}
	return out
}

// Canonical returns the category for raw category text, falling back to
// name rules only when the category text is empty
func (c *Canonicalizer) Canonical(rawCategory, fundName string) contracts.AssetCategory {
	category := strings.ToLower(strings.TrimSpace(rawCategory))
	if category != "" {
		return match(c.categoryRules, category)
	}

	name := strings.ToLower(strings.TrimSpace(fundName))
	if name == "" {
		return contracts.CategoryUnknown
	}
	return match(c.nameRules, name)
}

// Apply sets Canonical on every record in place and returns the unknown count
func (c *Canonicalizer) Apply(records []contracts.FundRecord) int {
	unknown := 0
	for i := range records {
		r := &records[i]
		if !r.HasMetadata() {
			r.Canonical = contracts.CategoryUnknown
			unknown++
			continue
		}
		r.Canonical = c.Canonical(r.Metadata.Category, r.Metadata.FundName)
		if !r.Canonical.Known() {
			unknown++
		}
	}
	return unknown
}

func match(rules []rule, text string) contracts.AssetCategory {
	for _, r := range rules {
		if strings.Contains(text, r.keyword) {
			return r.category
		}
	}
	return contracts.CategoryUnknown
}
