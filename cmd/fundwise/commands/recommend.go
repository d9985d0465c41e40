package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/fundwise/internal/contracts"
)

// profileFlags are the investor inputs shared by recommend and simulate
type profileFlags struct {
	amount  float64
	horizon float64
	risk    string
	age     int
	goal    string
	current float64
}

func (f *profileFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "investment amount")
	cmd.Flags().Float64Var(&f.horizon, "horizon", 0, "investment horizon in years")
	cmd.Flags().StringVar(&f.risk, "risk", "Moderate", "risk tolerance (Low|Moderate|High)")
	cmd.Flags().IntVar(&f.age, "age", 0, "investor age (optional)")
	cmd.Flags().StringVar(&f.goal, "goal", "", "investment goal (optional)")
	cmd.Flags().Float64Var(&f.current, "current", 0, "current investments (optional)")
}

// profile converts flags into a validated UserProfile
func (f *profileFlags) profile() (contracts.UserProfile, error) {
	risk, err := contracts.ParseRiskTolerance(f.risk)
	if err != nil {
		return contracts.UserProfile{}, err
	}

	p := contracts.UserProfile{
		Amount:             f.amount,
		HorizonYears:       f.horizon,
		RiskTolerance:      risk,
		Goal:               f.goal,
		CurrentInvestments: f.current,
	}
	if f.age > 0 {
		age := f.age
		p.Age = &age
	}

	if err := p.Validate(); err != nil {
		return contracts.UserProfile{}, err
	}
	return p, nil
}

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "포트폴리오 추천",
	Long: `투자자 프로필로 S0 → S5 파이프라인을 실행하고 추천 포트폴리오를 출력합니다.

--user 를 지정하면 스냅샷과 상호작용 로그를 저장합니다 (DB 필요).

Example:
  go run ./cmd/fundwise recommend --amount 500000 --horizon 7 --risk Moderate
  go run ./cmd/fundwise recommend --amount 50000 --horizon 2 --risk Low --json`,
	RunE: runRecommend,
}

var (
	recommendProfile profileFlags
	recommendUser    string
	recommendJSON    bool
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendProfile.bind(recommendCmd)
	recommendCmd.Flags().StringVar(&recommendUser, "user", "", "user id (enables persistence)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the raw recommendation as JSON")
	_ = recommendCmd.MarkFlagRequired("amount")
	_ = recommendCmd.MarkFlagRequired("horizon")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	profile, err := recommendProfile.profile()
	if err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	rec, err := rt.engine.RecommendForUser(ctx, recommendUser, profile)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if recommendJSON {
		return PrintJSON(rec)
	}

	printRecommendation(rec)
	return nil
}

func printRecommendation(rec *contracts.Recommendation) {
	p := rec.Profile
	PrintHeader("Portfolio Recommendation", map[string]string{
		"Request":  rec.RequestID,
		"Amount":   formatAmount(p.Amount),
		"Horizon":  fmt.Sprintf("%g years", p.HorizonYears),
		"Risk":     string(p.RiskTolerance),
		"Market":   fmt.Sprintf("%s (%s)", rec.MarketStatus.Phase, rec.MarketStatus.Regime),
		"Snapshot": rec.AsOfDate.Format("2006-01-02"),
	}, []string{"Request", "Amount", "Horizon", "Risk", "Market", "Snapshot"})

	fmt.Fprintln(out, "\nAllocation:")
	for _, class := range contracts.AllAssetClasses() {
		if w := rec.Allocation.Weight(class); w > 0 {
			PrintKeyValue(string(class), formatPct(w), 10)
		}
	}

	fmt.Fprintln(out, "\nPortfolio:")
	widths := []int{18, 36, 9, 7, 14, 6}
	PrintTableHeader([]string{"Slot", "Fund", "Class", "Weight", "Amount", "Score"}, widths)
	for _, item := range rec.Portfolio {
		PrintTableRow([]string{
			item.Slot,
			item.FundName,
			string(item.AssetClass),
			formatPct(item.Weight),
			formatAmount(item.Amount),
			fmt.Sprintf("%.1f", item.Score),
		}, widths)
	}

	if len(rec.UnfilledSlots) > 0 {
		PrintWarning("Unfilled slots: " + strings.Join(rec.UnfilledSlots, ", "))
	}

	fmt.Fprintln(out)
	PrintSeparator()
	fmt.Fprintln(out, rec.Explanation)
	PrintSeparator()
	PrintKeyValue("Confidence", fmt.Sprintf("%.1f (%s)", rec.ConfidenceScore, rec.StabilityLabel), 10)
	PrintKeyValue("Config", rec.ConfigHash, 10)
	if rec.SnapshotID != "" {
		PrintSuccess("Snapshot saved: " + rec.SnapshotID)
	}
}
