package commands

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/s2_scoring"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "펀드 스코어 테이블 조회",
	Long: `최신 스냅샷에 S1 적격성 필터와 S2 스코어링을 적용하고 순위표를 출력합니다.

--category 는 자산군 (equity, debt, commodity) 또는 카테고리
(large_cap, "Large Cap" 등)를 받습니다.

Example:
  go run ./cmd/fundwise score --top 20
  go run ./cmd/fundwise score --category debt --top 5
  go run ./cmd/fundwise score --export ranked.csv`,
	RunE: runScore,
}

var (
	scoreCategory string
	scoreTop      int
	scoreExport   string
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreCategory, "category", "", "asset class or category filter")
	scoreCmd.Flags().IntVar(&scoreTop, "top", 20, "number of funds to show (0 = all)")
	scoreCmd.Flags().StringVar(&scoreExport, "export", "", "write the filtered table to a CSV file")
}

// scoreRow is one line of the CSV export
type scoreRow struct {
	Rank        int     `csv:"rank"`
	FundID      string  `csv:"fund_id"`
	FundName    string  `csv:"fund_name"`
	Category    string  `csv:"category"`
	AssetClass  string  `csv:"asset_class"`
	Score       float64 `csv:"composite_score"`
	Tier        string  `csv:"tier"`
	Reliability float64 `csv:"reliability"`
	Downside    float64 `csv:"downside"`
	Quality     float64 `csv:"quality"`
	Momentum    float64 `csv:"momentum"`
	Penalty     float64 `csv:"penalty"`
	Rationale   string  `csv:"rationale"`
}

func newScoreRow(f *contracts.ScoredFund) *scoreRow {
	return &scoreRow{
		Rank:        f.Rank,
		FundID:      f.FundID,
		FundName:    f.Name(),
		Category:    f.Canonical.Label(),
		AssetClass:  string(f.Canonical.AssetClass()),
		Score:       contracts.Round2(f.CompositeScore),
		Tier:        string(f.Tier),
		Reliability: contracts.Round4(f.Components[contracts.FactorReliability]),
		Downside:    contracts.Round4(f.Components[contracts.FactorDownside]),
		Quality:     contracts.Round4(f.Components[contracts.FactorQuality]),
		Momentum:    contracts.Round4(f.Components[contracts.FactorMomentum]),
		Penalty:     f.Penalty,
		Rationale:   f.Rationale,
	}
}

func runScore(cmd *cobra.Command, args []string) error {
	filter, err := s2_scoring.ParseFilter(scoreCategory)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	table, err := rt.engine.Ranked(ctx)
	if err != nil {
		return fmt.Errorf("score funds: %w", err)
	}

	top := s2_scoring.Top(table.Funds, filter, scoreTop)

	PrintHeader("Fund Ranking", map[string]string{
		"Snapshot": table.AsOfDate.Format("2006-01-02"),
		"Eligible": fmt.Sprintf("%d of %d", table.AfterCount, table.BeforeCount),
		"Filter":   orDefault(scoreCategory, "all"),
		"Config":   table.ConfigHash,
	}, []string{"Snapshot", "Eligible", "Filter", "Config"})

	if table.Quality != nil && !table.Quality.Passed {
		PrintWarning(fmt.Sprintf("Data quality below threshold (score %.2f)", table.Quality.QualityScore))
	}

	widths := []int{4, 36, 18, 6, 8, 40}
	PrintTableHeader([]string{"#", "Fund", "Category", "Score", "Tier", "Rationale"}, widths)
	for i := range top {
		f := &top[i]
		PrintTableRow([]string{
			fmt.Sprintf("%d", f.Rank),
			f.Name(),
			f.Canonical.Label(),
			fmt.Sprintf("%.1f", f.CompositeScore),
			string(f.Tier),
			f.Rationale,
		}, widths)
	}

	if scoreExport != "" {
		if err := exportScores(scoreExport, top); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Exported %d funds to %s", len(top), scoreExport))
	}

	return nil
}

// exportScores writes the ranked rows as CSV
func exportScores(path string, funds []contracts.ScoredFund) error {
	rows := make([]*scoreRow, 0, len(funds))
	for i := range funds {
		rows = append(rows, newScoreRow(&funds[i]))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write export csv: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
