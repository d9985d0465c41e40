package s1_universe

import (
	"fmt"
	"strings"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

// Exclusion reasons recorded in Universe.Excluded
const (
	ReasonMissingMetadata = "missing metadata"
	ReasonLowAUM          = "aum below floor"
	ReasonMissingAUM      = "aum unknown"
	ReasonCategory        = "category not whitelisted"
	ReasonRiskKeyword     = "risk keyword"
	ReasonShareClass      = "share class"
)

// Rule names recorded in Universe.StepCounts
const (
	StepMetadata   = "metadata"
	StepLiquidity  = "liquidity"
	StepCategory   = "category"
	StepRisk       = "risk_keyword"
	StepShareClass = "share_class"
)

// Filter applies hard eligibility rules to a feature table
type Filter struct {
	config strategyconfig.Eligibility
	logger *logger.Logger
}

// NewFilter creates a new eligibility Filter
func NewFilter(cfg *strategyconfig.Config, log *logger.Logger) *Filter {
	return &Filter{
		config: cfg.Eligibility,
		logger: log.WithStage(contracts.StageEligibility.String()),
	}
}

// Apply returns the eligible universe. Order of funds is preserved.
// ⭐ SSOT: S1 → S2 유니버스 생성
func (f *Filter) Apply(table *contracts.FeatureTable) *contracts.Universe {
	universe := &contracts.Universe{
		AsOfDate:    table.AsOfDate,
		Excluded:    make(map[string]string),
		BeforeCount: len(table.Records),
		StepCounts:  make([]contracts.StepCount, 0, 5),
	}

	funds := table.Records

	// 1. 메타데이터 조인 실패
	funds = f.step(universe, StepMetadata, funds, func(r *contracts.FundRecord) string {
		if !r.HasMetadata() {
			return ReasonMissingMetadata
		}
		return ""
	})

	// 2. 유동성 하한: AUM이 하나라도 있을 때만 적용
	if hasAnyAUM(funds) {
		funds = f.step(universe, StepLiquidity, funds, func(r *contracts.FundRecord) string {
			aum := r.AUM()
			if aum == nil {
				return ReasonMissingAUM
			}
			if *aum < f.config.MinAUMCr {
				return fmt.Sprintf("%s (%.0f Cr)", ReasonLowAUM, *aum)
			}
			return ""
		})
	} else {
		universe.StepCounts = append(universe.StepCounts, contracts.StepCount{
			Rule:    StepLiquidity,
			Before:  len(funds),
			After:   len(funds),
			Skipped: true,
		})
		f.logger.WithField("funds", len(funds)).Warn("no aum data, liquidity floor skipped")
	}

	// 3. 카테고리 화이트리스트
	funds = f.step(universe, StepCategory, funds, func(r *contracts.FundRecord) string {
		if !r.Canonical.Known() {
			return fmt.Sprintf("%s (%s)", ReasonCategory, r.RawCategory())
		}
		return ""
	})

	// 4. 위험 키워드 (이름 또는 카테고리)
	funds = f.step(universe, StepRisk, funds, func(r *contracts.FundRecord) string {
		if kw := containsAny(r.Name()+" "+r.RawCategory(), f.config.RiskKeywords); kw != "" {
			return fmt.Sprintf("%s (%s)", ReasonRiskKeyword, kw)
		}
		return ""
	})

	// 5. 중복 클래스 (Direct/IDCW/...)
	funds = f.step(universe, StepShareClass, funds, func(r *contracts.FundRecord) string {
		if kw := containsAny(r.Name(), f.config.ShareClassKeywords); kw != "" {
			return fmt.Sprintf("%s (%s)", ReasonShareClass, kw)
		}
		return ""
	})

	universe.Funds = funds
	universe.AfterCount = len(funds)

	f.logger.WithFields(map[string]interface{}{
		"before":   universe.BeforeCount,
		"after":    universe.AfterCount,
		"excluded": len(universe.Excluded),
	}).Info("eligibility filter applied")

	return universe
}

// step keeps funds for which check returns "" and records the rest
func (f *Filter) step(u *contracts.Universe, name string, in []contracts.FundRecord, check func(*contracts.FundRecord) string) []contracts.FundRecord {
	out := make([]contracts.FundRecord, 0, len(in))
	for i := range in {
		if reason := check(&in[i]); reason != "" {
			u.Excluded[in[i].FundID] = reason
			continue
		}
		out = append(out, in[i])
	}

	u.StepCounts = append(u.StepCounts, contracts.StepCount{
		Rule:   name,
		Before: len(in),
		After:  len(out),
	})
	f.logger.WithFields(map[string]interface{}{
		"rule":   name,
		"before": len(in),
		"after":  len(out),
	}).Debug("eligibility step")

	return out
}

func hasAnyAUM(funds []contracts.FundRecord) bool {
	for i := range funds {
		if funds[i].AUM() != nil {
			return true
		}
	}
	return false
}

// containsAny returns the first keyword found in text (case-insensitive)
func containsAny(text string, keywords []string) string {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}
