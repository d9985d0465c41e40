package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

// Selector implements S4: slot-based fund selection
// ⭐ SSOT: S4 펀드 선택 + 금액 배분은 여기서만
type Selector struct {
	slots       strategyconfig.Slots
	constraints Constraints
	logger      *logger.Logger
}

// NewSelector creates a new slot selector
func NewSelector(cfg *strategyconfig.Config, constraints Constraints, log *logger.Logger) *Selector {
	return &Selector{
		slots:       cfg.Slots,
		constraints: constraints,
		logger:      log.WithStage(contracts.StageSelection.String()),
	}
}

// SlotSet returns the slots used for an asset class and profile
func (s *Selector) SlotSet(class contracts.AssetClass, profile contracts.UserProfile) []strategyconfig.Slot {
	switch class {
	case contracts.AssetEquity:
		if profile.IsLowRisk() {
			return s.slots.EquityDefensive
		}
		return s.slots.EquityStandard
	case contracts.AssetDebt:
		if profile.IsLowRisk() {
			return s.slots.DebtDefensive
		}
		return s.slots.DebtStandard
	case contracts.AssetCommodity:
		return s.slots.Commodity
	}
	return nil
}

// Select fills every slot of every funded asset class from the scored
// table (rank order) and reconciles weights with actual amounts
func (s *Selector) Select(scored []contracts.ScoredFund, plan contracts.AllocationPlan, profile contracts.UserProfile) *contracts.Selection {
	total := decimal.NewFromFloat(profile.Amount)
	used := make(map[string]bool)

	type pending struct {
		item   contracts.PortfolioItem
		amount decimal.Decimal
	}
	picked := make([]pending, 0)
	unfilled := make([]string, 0)

	for _, class := range contracts.AllAssetClasses() {
		weight := plan.Weight(class)
		if weight <= 0 {
			continue
		}
		budget := total.Mul(decimal.NewFromFloat(weight))

		for _, slot := range s.SlotSet(class, profile) {
			funds := s.pick(scored, slot, class, used)
			if len(funds) == 0 {
				unfilled = append(unfilled, slot.Name)
				s.logger.WithFields(map[string]interface{}{
					"class": class,
					"slot":  slot.Name,
				}).Warn("slot left unfilled")
				continue
			}

			per := budget.Mul(decimal.NewFromFloat(slot.Weight)).
				Div(decimal.NewFromInt(int64(len(funds)))).
				Round(2)

			for _, f := range funds {
				used[f.FundID] = true
				picked = append(picked, pending{
					amount: per,
					item: contracts.PortfolioItem{
						FundID:            f.FundID,
						FundName:          f.Name(),
						Category:          f.RawCategory(),
						CanonicalCategory: f.Canonical,
						AssetClass:        class,
						Slot:              slot.Name,
						Amount:            per.InexactFloat64(),
						Score:             f.CompositeScore,
						Rationale:         f.Rationale,
						Metrics:           f.Metrics(),
					},
				})
			}
		}
	}

	// 실제 금액 기준으로 비중 재계산
	sum := decimal.Zero
	classSum := make(map[contracts.AssetClass]decimal.Decimal)
	for _, p := range picked {
		sum = sum.Add(p.amount)
		classSum[p.item.AssetClass] = classSum[p.item.AssetClass].Add(p.amount)
	}

	portfolio := make(contracts.Portfolio, 0, len(picked))
	for _, p := range picked {
		item := p.item
		if sum.IsPositive() {
			item.Weight = p.amount.Div(sum).Round(4).InexactFloat64()
		}
		portfolio = append(portfolio, item)
	}

	reported := contracts.AllocationPlan{}
	if sum.IsPositive() {
		for _, class := range contracts.AllAssetClasses() {
			if cs, ok := classSum[class]; ok {
				reported[class] = cs.Div(sum).Round(2).InexactFloat64()
			}
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"items":    len(portfolio),
		"unfilled": len(unfilled),
		"invested": sum.StringFixed(2),
	}).Info("portfolio selected")

	return &contracts.Selection{
		Portfolio: portfolio,
		Planned:   plan,
		Reported:  reported,
		Sections:  contracts.SectionsOf(portfolio),
		Unfilled:  unfilled,
	}
}

// pick returns up to top_k funds: preferred categories, then fallback
// categories, then any fund of the class when allowed
func (s *Selector) pick(scored []contracts.ScoredFund, slot strategyconfig.Slot, class contracts.AssetClass, used map[string]bool) []*contracts.ScoredFund {
	k := slot.Picks()

	if funds := s.topIn(scored, categorySet(slot.Categories), used, k); len(funds) > 0 {
		return funds
	}
	if len(slot.Fallback) > 0 {
		if funds := s.topIn(scored, categorySet(slot.Fallback), used, k); len(funds) > 0 {
			return funds
		}
	}
	if slot.FallbackAnyInClass {
		return s.topIn(scored, categorySet(categoryIDs(contracts.CategoriesOf(class))), used, k)
	}
	return nil
}

func (s *Selector) topIn(scored []contracts.ScoredFund, cats map[contracts.AssetCategory]bool, used map[string]bool, k int) []*contracts.ScoredFund {
	out := make([]*contracts.ScoredFund, 0, k)
	for i := range scored {
		f := &scored[i]
		if !cats[f.Canonical] || used[f.FundID] || !s.constraints.Allows(f) {
			continue
		}
		out = append(out, f)
		if len(out) == k {
			break
		}
	}
	return out
}

func categorySet(ids []string) map[contracts.AssetCategory]bool {
	set := make(map[contracts.AssetCategory]bool, len(ids))
	for _, id := range ids {
		if c, err := contracts.ParseAssetCategory(id); err == nil {
			set[c] = true
		}
	}
	return set
}

func categoryIDs(cats []contracts.AssetCategory) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = string(c)
	}
	return ids
}
