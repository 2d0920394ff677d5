package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_LoadMissing(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestFileRepository_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	repo := NewFileRepository(dir)

	rep := New("script.txt", "merge")
	rep.OuterIterations = 2
	rep.InnerIterations = 3
	rep.Transitions = 4
	rep.Events = 1
	rep.ErrorsReported = 1
	rep.LastError = "beginLumi: lifecycle: transient fault"
	rep.Hooks["beginRun"] = 1
	rep.Finish(rep.StartedAt.Add(250 * time.Millisecond))

	require.NoError(t, repo.Save(context.Background(), rep))

	info, err := os.Stat(repo.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rep.SessionID, got.SessionID)
	assert.Equal(t, rep.LastError, got.LastError)
	assert.Equal(t, rep.Hooks, got.Hooks)
	assert.True(t, rep.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, 250*time.Millisecond, got.Duration())
	assert.False(t, got.Clean())
}

func TestFileRepository_SaveReplaces(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	first := New("a", "merge")
	second := New("b", "no-merge")

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.SessionID, got.SessionID)
	assert.Equal(t, "no-merge", got.Policy)
}

func TestFileRepository_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("{not json"), 0o600))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.json")
}

func TestFileRepository_SaveCanceled(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, repo.Save(ctx, New("a", "merge")), context.Canceled)
	_, err := os.Stat(repo.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestReport_Duration(t *testing.T) {
	r := New("x", "merge")
	assert.Zero(t, r.Duration())
	assert.True(t, r.Clean())
}
