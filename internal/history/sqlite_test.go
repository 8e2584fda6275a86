package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRun(t *testing.T) {
	run := NewRun("todo-app", "Todo App", true)
	require.NotEmpty(t, run.ID)
	require.Equal(t, "todo-app", run.Plug)
	require.True(t, run.Published)
	require.False(t, run.StartedAt.IsZero())

	other := NewRun("todo-app", "Todo App", true)
	require.NotEqual(t, run.ID, other.ID)
}

func TestRunFinish(t *testing.T) {
	run := NewRun("todo-app", "Todo App", false)
	run.Finish(nil)
	require.Equal(t, StatusSuccess, run.Status)
	require.Empty(t, run.Error)

	failed := NewRun("todo-app", "Todo App", true)
	failed.Finish(errors.New("push rejected"))
	require.Equal(t, StatusFailed, failed.Status)
	require.Equal(t, "push rejected", failed.Error)
}

func TestSQLiteStoreAppendAndRecent(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := NewRun("hello-plug", "Hello Plug", false)
	first.StartedAt = base
	first.Finish(nil)

	second := NewRun("todo-app", "Todo App", true)
	second.StartedAt = base.Add(time.Minute)
	second.Finish(errors.New("no remote configured"))

	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first
	require.Equal(t, "todo-app", runs[0].Plug)
	require.Equal(t, StatusFailed, runs[0].Status)
	require.Equal(t, "no remote configured", runs[0].Error)
	require.True(t, runs[0].Published)
	require.Equal(t, base.Add(time.Minute), runs[0].StartedAt)

	require.Equal(t, "hello-plug", runs[1].Plug)
	require.Equal(t, StatusSuccess, runs[1].Status)
	require.False(t, runs[1].Published)
}

func TestSQLiteStoreRecentLimit(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := NewRun("plug", "Plug", false)
		run.StartedAt = base.Add(time.Duration(i) * time.Second)
		run.Finish(nil)
		require.NoError(t, store.Append(ctx, run))
	}

	runs, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestSQLiteStorePersistsToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)

	run := NewRun("todo-app", "Todo App", false)
	run.Finish(nil)
	require.NoError(t, store.Append(context.Background(), run))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	runs, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, run.ID, runs[0].ID)
}
