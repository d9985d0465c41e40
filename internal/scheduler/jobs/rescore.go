package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/fundwise/internal/brain"
	"github.com/wonny/fundwise/pkg/logger"
)

// RankedWarmer recomputes and caches the ranked fund table
type RankedWarmer interface {
	WarmRanked(ctx context.Context) (*brain.RankedTable, error)
}

// RescoreJob warms the ranked-table cache once a day
// ⭐ SSOT: 점수 테이블 갱신 스케줄은 이 Job에서만
type RescoreJob struct {
	engine   RankedWarmer
	schedule string
	logger   *logger.Logger
}

// NewRescoreJob creates a new rescore job; empty schedule = 06:30 daily
func NewRescoreJob(engine RankedWarmer, schedule string, log *logger.Logger) *RescoreJob {
	if schedule == "" {
		schedule = "0 30 6 * * *" // 피처 ETL(야간) 이후
	}
	return &RescoreJob{
		engine:   engine,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *RescoreJob) Name() string {
	return "rescore"
}

// Schedule returns the cron schedule (with seconds)
func (j *RescoreJob) Schedule() string {
	return j.schedule
}

// Run executes S0 → S2 and stores the table
func (j *RescoreJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled rescore")

	table, err := j.engine.WarmRanked(ctx)
	if err != nil {
		return fmt.Errorf("warm ranked table: %w", err)
	}

	fields := map[string]interface{}{
		"as_of_date": table.AsOfDate.Format("2006-01-02"),
		"eligible":   table.AfterCount,
		"scored":     len(table.Funds),
	}
	if table.Quality != nil {
		fields["quality_score"] = table.Quality.QualityScore
		if !table.Quality.Passed {
			j.logger.WithFields(fields).Warn("Feature quality below threshold, neutral defaults in use")
		}
	}
	j.logger.WithFields(fields).Info("Rescore completed")

	return nil
}
