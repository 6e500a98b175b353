package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerodados/aeromapa/internal/pipeline"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSummary() pipeline.Summary {
	return pipeline.Summary{
		Total:     10,
		OK:        8,
		Swapped:   1,
		Scaled:    2,
		ByStatus:  map[string]int{"ok": 8, "missing_lat": 1, "out_of_range": 1},
		LatColumn: "Latitude",
		LonColumn: "Longitude",
	}
}

func TestSQLiteCreateAndListRuns(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "AerodromosPrivados", sampleSummary())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "AerodromosPrivados", run.Dataset)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, 8, runs[0].Summary.OK)
	assert.Equal(t, 1, runs[0].Summary.ByStatus["missing_lat"])
}

func TestSQLiteListRunsLimit(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.CreateRun(ctx, "ds", sampleSummary())
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLiteListRunsEmpty(t *testing.T) {
	s := newTestSQLite(t)

	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	assert.Error(t, err)
}

func TestOpenSQLiteDefault(t *testing.T) {
	s, err := Open(context.Background(), "", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.CreateRun(context.Background(), "ds", sampleSummary())
	assert.NoError(t, err)
}
