package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// marketCmd represents the market command
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "시장 국면 조회",
	Long: `MARKET_SOURCE 설정에 따라 현재 시장 국면과 변동성 레짐을 출력합니다.

Sources:
  static   - MARKET_PHASE 고정값
  postgres - index_prices 테이블의 종가 시계열
  http     - MARKET_DATA_URL JSON 엔드포인트

Example:
  go run ./cmd/fundwise market
  MARKET_SOURCE=postgres go run ./cmd/fundwise market --refresh`,
	RunE: runMarket,
}

var (
	marketRefresh bool
	marketJSON    bool
)

func init() {
	rootCmd.AddCommand(marketCmd)

	marketCmd.Flags().BoolVar(&marketRefresh, "refresh", false, "bypass the cache and recompute")
	marketCmd.Flags().BoolVar(&marketJSON, "json", false, "print the status as JSON")
}

func runMarket(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	status := rt.engine.MarketStatus(ctx)
	if marketRefresh {
		if status, err = rt.market.Refresh(ctx); err != nil {
			return fmt.Errorf("refresh market status: %w", err)
		}
	}

	if marketJSON {
		return PrintJSON(status)
	}

	PrintHeader("Market Status", map[string]string{
		"Source": rt.cfg.Market.Source,
		"Phase":  string(status.Phase),
		"Regime": string(status.Regime),
		"As of":  status.AsOf.Format("2006-01-02 15:04"),
	}, []string{"Source", "Phase", "Regime", "As of"})
	fmt.Fprintln(out, status.Details)
	return nil
}
