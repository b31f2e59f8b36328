package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/budgetly/budgetly/internal/account"
	jobmetrics "github.com/budgetly/budgetly/internal/jobs"
)

type purgeFunc func(ctx context.Context) (account.PurgeResult, error)

func (f purgeFunc) Purge(ctx context.Context) (account.PurgeResult, error) { return f(ctx) }

func TestLedgerPurgeJob(t *testing.T) {
	calls := 0
	job := NewLedgerPurgeJob(purgeFunc(func(ctx context.Context) (account.PurgeResult, error) {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return account.PurgeResult{Verifications: 2, Users: 2, Resets: 1}, nil
	}), nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	assert.NoError(t, job.Handle(context.Background(), NewLedgerPurgeTask()))
	assert.Equal(t, 1, calls)
}

func TestLedgerPurgeJobPropagatesFailure(t *testing.T) {
	boom := errors.New("db down")
	job := NewLedgerPurgeJob(purgeFunc(func(context.Context) (account.PurgeResult, error) {
		return account.PurgeResult{}, boom
	}), nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	assert.ErrorIs(t, job.Handle(context.Background(), NewLedgerPurgeTask()), boom)
}

func TestLedgerPurgeJobRequiresPurger(t *testing.T) {
	var job *LedgerPurgeJob
	assert.Error(t, job.Handle(context.Background(), NewLedgerPurgeTask()))
}
