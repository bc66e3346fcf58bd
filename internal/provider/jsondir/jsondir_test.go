package jsondir

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, stage core.Stage, symbol, content string) {
	t.Helper()
	dir := filepath.Join(root, string(stage))
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, symbol+".json"), []byte(content), 0644))
}

func TestNew_RequiresDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = New(file, nil)
	assert.Error(t, err)
}

func TestLoadStage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, core.StageDaily, "ACME",
		`{"dates": ["2024-01-03", "2024-01-02"], "columns": {"close": [11, 10], "high": [11.5, 10.5]}}`)

	p, err := New(root, nil)
	require.NoError(t, err)

	tables, err := p.LoadStage(context.Background(), core.StageDaily, []string{"ACME", "GHOST"})
	require.NoError(t, err)

	acme := tables["ACME"]
	require.NotNil(t, acme)
	assert.Equal(t, 2, acme.Len())

	// Rows come back date-sorted regardless of file order
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), acme.Date(0))
	closes, err := acme.Column(series.ColClose)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11}, closes)

	// Absent file yields an empty table, never a missing entry
	ghost := tables["GHOST"]
	require.NotNil(t, ghost)
	assert.True(t, ghost.Empty())
}

func TestLoadStage_MalformedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, core.StageDaily, "BAD", `{"dates": ["2024-01-02"], "columns"`)

	p, err := New(root, nil)
	require.NoError(t, err)

	_, err = p.LoadStage(context.Background(), core.StageDaily, []string{"BAD"})
	assert.Error(t, err, "corrupt data must surface, not auto-pass")
}

func TestLoadStage_ColumnLengthMismatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, core.StageDaily, "SKEW",
		`{"dates": ["2024-01-02", "2024-01-03"], "columns": {"close": [10]}}`)

	p, err := New(root, nil)
	require.NoError(t, err)

	_, err = p.LoadStage(context.Background(), core.StageDaily, []string{"SKEW"})
	assert.Error(t, err)
}

func TestLoadStage_BadDate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, core.StageWeekly, "WHEN",
		`{"dates": ["02/01/2024"], "columns": {"close": [10]}}`)

	p, err := New(root, nil)
	require.NoError(t, err)

	_, err = p.LoadStage(context.Background(), core.StageWeekly, []string{"WHEN"})
	assert.Error(t, err)
}

func TestLoadStage_Cancellation(t *testing.T) {
	p, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.LoadStage(ctx, core.StageDaily, []string{"ACME"})
	assert.ErrorIs(t, err, context.Canceled)
}
