package commands

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/fundwise/internal/scheduler"
	"github.com/wonny/fundwise/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행
  status  - 작업 실행 상태 조회

Example:
  go run ./cmd/fundwise scheduler start
  go run ./cmd/fundwise scheduler list
  go run ./cmd/fundwise scheduler run rescore`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- rescore: 매일 06:30 (스코어 테이블 캐시 갱신)
- market_status: 매시 정각 (시장 국면 캐시 갱신)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "작업 실행 상태 조회",
		RunE:  showStatus,
	}
)

var rescoreSchedule string

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)

	schedulerCmd.PersistentFlags().StringVar(&rescoreSchedule, "rescore-schedule", "", "cron spec with seconds for the rescore job")
}

// newScheduler registers the rescore and market jobs
func newScheduler(rt *runtime) (*scheduler.Scheduler, error) {
	sched := scheduler.New(rt.log)

	if err := sched.AddJob(jobs.NewRescoreJob(rt.engine, rescoreSchedule, rt.log)); err != nil {
		return nil, err
	}
	if err := sched.AddJob(jobs.NewMarketJob(rt.market, rt.log)); err != nil {
		return nil, err
	}

	return sched, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(out, "=== Fundwise Scheduler ===")

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	sched, err := newScheduler(rt)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	// Start scheduler
	sched.Start()

	fmt.Fprintln(out, "\n✅ Scheduler started successfully")
	fmt.Fprintln(out, "\nRegistered jobs:")
	PrintList(sched.Jobs())
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Fprintln(out, "\nShutting down scheduler...")
	sched.Stop()
	fmt.Fprintln(out, "Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	sched, err := newScheduler(rt)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Fprintln(out, "Registered jobs:")
	stats := sched.Stats()
	for _, name := range sched.Jobs() {
		PrintKeyValue(name, stats[name].Schedule, 14)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Fprintf(out, "Running job: %s\n", jobName)

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	sched, err := newScheduler(rt)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	result, err := sched.RunNow(cmd.Context(), jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("job %s failed after %d attempts: %s", jobName, result.Attempts, result.Error)
	}

	PrintSuccess(fmt.Sprintf("Job %s completed in %.2fs", jobName, result.Duration.Seconds()))
	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	sched, err := newScheduler(rt)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	stats := sched.Stats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Job Statistics:")
	fmt.Fprintln(out)

	for _, name := range names {
		stat := stats[name]
		fmt.Fprintf(out, "📊 %s\n", name)
		fmt.Fprintf(out, "   Schedule: %s\n", stat.Schedule)
		fmt.Fprintf(out, "   Total Runs: %d\n", stat.TotalRuns)
		fmt.Fprintf(out, "   Success Rate: %.1f%%\n", stat.SuccessRate*100)
		fmt.Fprintf(out, "   Failures: %d\n", stat.FailureCount)

		if stat.LastRun != nil {
			fmt.Fprintf(out, "   Last Run: %s\n", stat.LastRun.Format("2006-01-02 15:04:05"))
		}
		if stat.LastError != "" {
			fmt.Fprintf(out, "   Last Error: %s\n", stat.LastError)
		}

		fmt.Fprintln(out)
	}

	return nil
}
