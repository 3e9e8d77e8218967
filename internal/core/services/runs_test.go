package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repopulse/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/repopulse/internal/core/domain"
)

func TestRunService_RecordAndGet(t *testing.T) {
	store := memory.NewRunStore()
	service := NewRunService(store)
	finished := time.Date(2017, 4, 10, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return finished }
	started := finished.Add(-time.Minute)
	ctx := context.Background()

	result := domain.NewTraversalResult()
	result.RepositoryCount = 2
	result.Qualified = []string{"core"}
	result.Disqualified = []string{"docs"}
	result.Commits["core"] = []string{"abc"}

	run, err := service.Record(ctx, testRequest([]string{"*"}, nil), started, result)

	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "acme", run.Organization)
	assert.Equal(t, started, run.StartedAt)
	assert.Equal(t, finished, run.FinishedAt)

	require.NoError(t, store.SaveCommitDetail(ctx, run.ID, domain.CommitDetail{SHA: "abc"}))

	got, details, err := service.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, got.Commits["core"])
	require.Len(t, details, 1)
	assert.Equal(t, "abc", details[0].SHA)
}

func TestRunService_RecordAssignsUniqueIDs(t *testing.T) {
	service := NewRunService(memory.NewRunStore())
	ctx := context.Background()

	a, err := service.Record(ctx, testRequest([]string{"*"}, nil), time.Now(), domain.NewTraversalResult())
	require.NoError(t, err)
	b, err := service.Record(ctx, testRequest([]string{"*"}, nil), time.Now(), domain.NewTraversalResult())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)

	runs, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown run", func(t *testing.T) {
		_, _, err := NewRunService(memory.NewRunStore()).Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("nil result", func(t *testing.T) {
		_, err := NewRunService(memory.NewRunStore()).Record(ctx, testRequest(nil, nil), time.Now(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no store", func(t *testing.T) {
		service := NewRunService(nil)
		_, err := service.List(ctx)
		assert.Error(t, err)
		_, _, err = service.Get(ctx, "x")
		assert.Error(t, err)
	})
}
