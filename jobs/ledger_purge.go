package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/budgetly/budgetly/internal/account"
	jobmetrics "github.com/budgetly/budgetly/internal/jobs"
)

// Purger removes expired ledger rows.
type Purger interface {
	Purge(ctx context.Context) (account.PurgeResult, error)
}

// LedgerPurgeJob clears expired verification and reset records on a schedule.
type LedgerPurgeJob struct {
	Purger  Purger
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	Timeout time.Duration
}

// NewLedgerPurgeJob wires dependencies for the purge handler.
func NewLedgerPurgeJob(purger Purger, logger *slog.Logger, metrics *jobmetrics.Metrics) *LedgerPurgeJob {
	return &LedgerPurgeJob{Purger: purger, Logger: logger, Metrics: metrics, Timeout: time.Minute}
}

// NewLedgerPurgeTask builds the scheduled purge task.
func NewLedgerPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerPurge, nil)
}

// Handle processes TaskLedgerPurge tasks.
func (j *LedgerPurgeJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Purger == nil {
		return errors.New("ledger purge: handler not configured")
	}
	logger := j.logger()
	tracker := j.metrics().Track(TaskLedgerPurge)

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	started := time.Now()
	res, err := j.Purger.Purge(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "purge expired ledgers", slog.Any("error", err))
		return tracker.End(err)
	}
	j.metrics().AddPurged("verifications", int64(res.Verifications))
	j.metrics().AddPurged("users", res.Users)
	j.metrics().AddPurged("resets", res.Resets)
	logger.InfoContext(ctx, "purged expired ledgers",
		slog.Int("verifications", res.Verifications),
		slog.Int64("users", res.Users),
		slog.Int64("resets", res.Resets),
		slog.Duration("duration", time.Since(started)),
	)
	return tracker.End(nil)
}

func (j *LedgerPurgeJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *LedgerPurgeJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
