package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/pkg/logger"
)

type countingJob struct {
	name     string
	failures int // 처음 n번 실패
	calls    int
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return "0 0 * * * *" }

func (j *countingJob) Run(ctx context.Context) error {
	j.calls++
	if j.calls <= j.failures {
		return errors.New("transient")
	}
	return nil
}

func TestRunNow_RetriesUntilSuccess(t *testing.T) {
	s := New(logger.Nop(), WithRetry(3, time.Millisecond))
	job := &countingJob{name: "rescore", failures: 2}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "rescore")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Attempts)

	stats := s.Stats()["rescore"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1.0, stats.SuccessRate)
}

func TestRunNow_GivesUp(t *testing.T) {
	s := New(logger.Nop(), WithRetry(1, time.Millisecond))
	job := &countingJob{name: "market_status", failures: 10}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "market_status")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, "transient", result.Error)

	history, err := s.History("market_status")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.Equal(t, 1, s.Stats()["market_status"].FailureCount)
}

func TestAddJob_DuplicateAndRemove(t *testing.T) {
	s := New(logger.Nop())
	require.NoError(t, s.AddJob(&countingJob{name: "a"}))
	assert.Error(t, s.AddJob(&countingJob{name: "a"}))
	require.NoError(t, s.AddJob(&countingJob{name: "b"}))

	assert.Equal(t, []string{"a", "b"}, s.Jobs())

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.Jobs())
	assert.Error(t, s.RemoveJob("a"))

	_, err := s.RunNow(context.Background(), "a")
	assert.Error(t, err)
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(logger.Nop())
	err := s.AddJob(&badScheduleJob{})
	assert.Error(t, err)
}

type badScheduleJob struct{}

func (badScheduleJob) Name() string                  { return "bad" }
func (badScheduleJob) Schedule() string              { return "every tuesday" }
func (badScheduleJob) Run(ctx context.Context) error { return nil }

func TestJobHistory_Cap(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+5; i++ {
		h.AddResult(JobResult{Success: i%2 == 0})
	}
	assert.Len(t, h.Results, historyLimit)
	assert.InDelta(t, 0.5, h.SuccessRate(), 0.01)
}
