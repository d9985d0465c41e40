package portfolio

import (
	"slices"
	"strings"

	"github.com/wonny/fundwise/internal/contracts"
)

// Constraints are operator overrides applied on top of slot rules
// ⭐ SSOT: 포트폴리오 제약조건은 여기서만
type Constraints struct {
	BlackList []string // 제외 펀드 (fund_id), EXCLUDE_FUNDS
	MinScore  float64  // composite score 하한, 0 = 비활성 (MIN_FUND_SCORE)
}

// NewConstraints trims and de-duplicates the blacklist
func NewConstraints(blackList []string, minScore float64) Constraints {
	ids := make([]string, 0, len(blackList))
	for _, id := range blackList {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return Constraints{BlackList: ids, MinScore: minScore}
}

// IsBlackListed checks if a fund id is in the blacklist
func (c *Constraints) IsBlackListed(fundID string) bool {
	return slices.Contains(c.BlackList, fundID)
}

// Allows reports whether a scored fund may fill a slot
func (c *Constraints) Allows(f *contracts.ScoredFund) bool {
	return !c.IsBlackListed(f.FundID) && f.CompositeScore >= c.MinScore
}

// DefaultConstraints returns no overrides
func DefaultConstraints() Constraints {
	return Constraints{BlackList: []string{}}
}
