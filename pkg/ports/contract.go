package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTraceStoreContract runs a suite of tests to verify that a TraceStore
// implementation adheres to the defined interface contract.
func RunTraceStoreContract(t *testing.T, store TraceStore) {
	ctx := context.Background()
	traceID := "contract-test-trace-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Trace {
		report := &domain.SortReport{
			Steps: []domain.Step{
				{Kind: domain.StepStart, Array: []int{2, 1}, PivotIndex: -1, Left: 0, Right: 1, Comparing: []int{}, Swapping: []int{}},
				{Kind: domain.StepCompleted, Array: []int{1, 2}, PivotIndex: -1, Left: -1, Right: -1, Comparing: []int{}, Swapping: []int{}, Completed: true, Comparisons: 1, Swaps: 1},
			},
			TotalComparisons: 1,
			TotalSwaps:       1,
			FinalArray:       []int{1, 2},
		}
		return domain.NewTrace(id, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), []int{2, 1}, report)
	}

	t.Run("Save and Load", func(t *testing.T) {
		trace := sample(traceID)

		err := store.Save(ctx, trace)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, traceID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, trace.ID, loaded.ID)
		assert.True(t, trace.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, trace.Input, loaded.Input)
		assert.Equal(t, trace.Report, loaded.Report)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		trace := sample(traceID)
		require.NoError(t, store.Save(ctx, trace))

		// Mutating the saved value must not leak into the store.
		trace.Report.FinalArray[0] = 99

		loaded, err := store.Load(ctx, traceID)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, loaded.Report.FinalArray)

		loaded.Report.Steps[0].Array[0] = 42
		again, err := store.Load(ctx, traceID)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1}, again.Report.Steps[0].Array)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(traceID)))

		err := store.Delete(ctx, traceID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound, "Load after Delete should return ErrTraceNotFound")

		assert.NoError(t, store.Delete(ctx, traceID), "Delete of a missing trace should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := traceID + "-1"
		id2 := traceID + "-2"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.NotContains(t, ids, traceID)
	})
}
