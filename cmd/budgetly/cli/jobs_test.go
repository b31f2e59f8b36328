package cli

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetly/budgetly/jobs"
)

func TestTriggerEnqueuesLedgerPurge(t *testing.T) {
	mr := miniredis.RunT(t)
	ops := NewJobsCLI(mr.Addr())
	t.Cleanup(func() { _ = ops.Close() })

	info, err := ops.Trigger(context.Background(), jobs.TaskLedgerPurge)
	require.NoError(t, err)
	assert.Equal(t, jobs.TaskLedgerPurge, info.Type)
	assert.Equal(t, jobs.QueueDefault, info.Queue)

	pending, err := mr.List("asynq:{default}:pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestTriggerRejectsUnknownJob(t *testing.T) {
	mr := miniredis.RunT(t)
	ops := NewJobsCLI(mr.Addr())
	t.Cleanup(func() { _ = ops.Close() })

	_, err := ops.Trigger(context.Background(), "inventory:revalue")
	assert.Error(t, err)
}

func TestNilJobsCLI(t *testing.T) {
	var ops *JobsCLI
	_, err := ops.InspectQueue(context.Background())
	assert.Error(t, err)
}
