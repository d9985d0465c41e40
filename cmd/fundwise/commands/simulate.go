package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/simulation"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "시나리오 스트레스 테스트",
	Long: `포트폴리오를 과거 위기 시나리오에 재생하고 손실률을 출력합니다.

포트폴리오는 --from (포트폴리오 배열 또는 recommend --json 출력) 으로
읽거나, 프로필 플래그로 즉석에서 추천을 생성합니다.
--scenario 를 생략하면 모든 시나리오를 실행합니다.

Example:
  go run ./cmd/fundwise simulate --amount 100000 --horizon 7 --risk High
  go run ./cmd/fundwise simulate --from rec.json --scenario 2008_CRASH`,
	RunE: runSimulate,
}

var (
	simulateProfile  profileFlags
	simulateFrom     string
	simulateScenario string
	simulateJSON     bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateProfile.bind(simulateCmd)
	simulateCmd.Flags().StringVar(&simulateFrom, "from", "", "portfolio JSON file")
	simulateCmd.Flags().StringVar(&simulateScenario, "scenario", "", "scenario id (default: all)")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "print results as JSON")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	var portfolio contracts.Portfolio
	if simulateFrom != "" {
		portfolio, err = readPortfolio(simulateFrom)
		if err != nil {
			return err
		}
	} else {
		profile, err := simulateProfile.profile()
		if err != nil {
			return fmt.Errorf("invalid profile (or pass --from): %w", err)
		}
		rec, err := rt.engine.Recommend(ctx, profile)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		portfolio = rec.Portfolio
	}

	scenarioIDs := []string{simulateScenario}
	if simulateScenario == "" {
		scenarioIDs = scenarioIDs[:0]
		for _, s := range rt.sim.Scenarios() {
			scenarioIDs = append(scenarioIDs, s.ID)
		}
	}

	results := make([]*simulation.Result, 0, len(scenarioIDs))
	for _, id := range scenarioIDs {
		result, err := rt.sim.Run(portfolio, id)
		if err != nil {
			return fmt.Errorf("simulate %s: %w", id, err)
		}
		results = append(results, result)
	}

	if simulateJSON {
		return PrintJSON(results)
	}

	for _, result := range results {
		printSimulation(result)
	}
	return nil
}

// readPortfolio accepts either a bare portfolio array or a recommendation
func readPortfolio(path string) (contracts.Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("portfolio file is empty")
	}

	if data[0] == '[' {
		var p contracts.Portfolio
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode portfolio: %w", err)
		}
		return p, nil
	}

	var rec contracts.Recommendation
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode recommendation: %w", err)
	}
	return rec.Portfolio, nil
}

func printSimulation(result *simulation.Result) {
	PrintHeader("Scenario: "+result.Scenario, map[string]string{
		"Event":    result.Description,
		"Initial":  formatAmount(result.InitialValue),
		"Final":    formatAmount(result.FinalValue),
		"Drawdown": fmt.Sprintf("%.2f%%", result.DrawdownPct),
	}, []string{"Event", "Initial", "Final", "Drawdown"})

	widths := []int{36, 14, 14, 8}
	PrintTableHeader([]string{"Fund", "Original", "Simulated", "Change"}, widths)
	for _, d := range result.Details {
		PrintTableRow([]string{
			d.Fund,
			formatAmount(d.Original),
			formatAmount(d.Simulated),
			fmt.Sprintf("%+.1f%%", d.ChangePct),
		}, widths)
	}
}
