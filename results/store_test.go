package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montelab/montelab/montecarlo"
)

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	res := &montecarlo.Result{
		Iterations:    1000,
		Mean:          3.14,
		StandardError: 0.01,
		Elapsed:       250 * time.Millisecond,
	}
	require.NoError(t, store.Record(ctx, "pi", "", 42, res))
	require.NoError(t, store.Record(ctx, "dice", "dice=3", 42, res))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "dice", runs[0].Scenario)
	assert.Equal(t, "dice=3", runs[0].Params)
	assert.Equal(t, uint64(42), runs[0].Seed)
	assert.Equal(t, uint64(1000), runs[1].Iterations)
	assert.InDelta(t, 3.14, runs[1].Mean, 1e-12)
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	res := &montecarlo.Result{Iterations: 1}
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, "pi", "", uint64(i), res))
	}
	runs, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestOpenValidation(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
