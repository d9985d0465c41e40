package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그와 스냅샷에서 이 상수를 사용해야 함
//
// 파이프라인 흐름 (요청마다 1회):
//   S0 → S1 → S2 → S3 → S4 → S5
//   Features  Eligibility  Scoring  Allocation  Selection  Confidence

// Stage represents a pipeline stage
type Stage string

const (
	// StageFeatures S0: 최신 피처 스냅샷 + 메타데이터 로드
	// 위치: internal/s0_data/
	StageFeatures Stage = "S0_FEATURES"

	// StageEligibility S1: 투자 가능 펀드 필터링 (AUM, 카테고리, 클래스)
	// 위치: internal/s1_universe/
	StageEligibility Stage = "S1_ELIGIBILITY"

	// StageScoring S2: 백분위 기반 종합 점수 + 티어
	// 위치: internal/s2_scoring/
	StageScoring Stage = "S2_SCORING"

	// StageAllocation S3: Equity/Debt/Commodity 비중 결정
	// 위치: internal/allocation/
	StageAllocation Stage = "S3_ALLOCATION"

	// StageSelection S4: 슬롯별 펀드 선택 + 금액 배분
	// 위치: internal/portfolio/
	StageSelection Stage = "S4_SELECTION"

	// StageConfidence S5: 안정성 점수 + 설명 문구
	// 위치: internal/reasoning/
	StageConfidence Stage = "S5_CONFIDENCE"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageFeatures:
		return "S0"
	case StageEligibility:
		return "S1"
	case StageScoring:
		return "S2"
	case StageAllocation:
		return "S3"
	case StageSelection:
		return "S4"
	case StageConfidence:
		return "S5"
	default:
		return "UNKNOWN"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageFeatures,
		StageEligibility,
		StageScoring,
		StageAllocation,
		StageSelection,
		StageConfidence,
	}
}
