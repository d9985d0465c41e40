package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/fundwise/internal/api"
	"github.com/wonny/fundwise/internal/api/handlers"
	"github.com/wonny/fundwise/pkg/config"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                  - Health check
  POST /api/recommend           - 포트폴리오 추천 (X-User-ID 선택)
  GET  /api/portfolio/latest    - 마지막 저장 포트폴리오 (X-User-ID 필수)
  GET  /api/funds               - 펀드 메타데이터 목록
  GET  /api/funds/ranked        - 스코어 순위표
  POST /api/simulate            - 시나리오 스트레스 테스트
  GET  /api/simulate/scenarios  - 시나리오 목록
  GET  /api/market              - 시장 국면

Example:
  go run ./cmd/fundwise api
  go run ./cmd/fundwise api --port 8080 --with-scheduler`,
	RunE: runAPIServer,
}

var (
	apiPort          string
	apiWithScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
	apiCmd.Flags().BoolVar(&apiWithScheduler, "with-scheduler", false, "run the rescore and market jobs in-process")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(out, "=== Fundwise API Server ===")

	// 1. Runtime (config, logger, engine)
	rt, err := newRuntime(cmd.Context(), func(cfg *config.Config) {
		if apiPort != "" {
			cfg.Port = apiPort
		}
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	log := rt.log
	log.WithFields(map[string]interface{}{
		"port": rt.cfg.Port,
		"env":  rt.cfg.Env,
	}).Info("Initializing API server")

	// 2. Health probes
	checks := map[string]handlers.HealthCheck{}
	if rt.db != nil {
		checks["database"] = func(ctx context.Context) error {
			_, err := rt.db.HealthCheck(ctx)
			return err
		}
	}
	if rt.redis.Enabled() {
		checks["redis"] = rt.redis.Ping
	}

	// 3. Handlers and router
	router := api.NewRouter(api.Handlers{
		Recommend:  handlers.NewRecommendHandler(rt.engine, log),
		Funds:      handlers.NewFundHandler(rt.funds, rt.engine, rt.cache, log),
		Simulation: handlers.NewSimulationHandler(rt.sim, rt.engine, log),
		Market:     handlers.NewMarketHandler(rt.engine, log),
		Health:     handlers.NewHealthHandler(checks, log),
	}, api.NewLimiter(rt.cfg), log)

	// 4. Optional in-process scheduler
	if apiWithScheduler {
		sched, err := newScheduler(rt)
		if err != nil {
			return fmt.Errorf("init scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 5. Serve until Ctrl+C / SIGTERM, then shut down gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ready := make(chan string, 1)
	defer close(ready)
	go func() {
		if addr, ok := <-ready; ok {
			fmt.Fprintf(out, "\n✅ Server listening on %s\n", addr)
			fmt.Fprintln(out, "\nPress Ctrl+C to stop")
		}
	}()

	server := api.New(rt.cfg, log, router)
	if err := server.Run(ctx, ready); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}
