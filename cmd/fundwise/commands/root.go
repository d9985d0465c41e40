package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyPath string
	featuresPath string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundwise",
	Short: "Fundwise - 펀드 스코어링 & 포트폴리오 구성 엔진",
	Long: `Fundwise Unified CLI

펀드 피처 테이블에서 투자자 프로필에 맞는 포트폴리오를 구성합니다.
S0 피처 → S1 적격성 → S2 스코어링 → S3 자산배분 → S4 슬롯 선택 → S5 신뢰도.

Usage:
  go run ./cmd/fundwise [command]

Examples:
  go run ./cmd/fundwise recommend --amount 500000 --horizon 7 --risk Moderate
  go run ./cmd/fundwise score --category equity --top 10 --features ./funds.csv
  go run ./cmd/fundwise simulate --scenario 2008_CRASH --amount 100000 --risk High
  go run ./cmd/fundwise api`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&strategyPath, "strategy", "", "strategy YAML (default: built-in defaults or STRATEGY_PATH)")
	rootCmd.PersistentFlags().StringVar(&featuresPath, "features", "", "feature CSV export (switches S0 to the CSV store)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
