package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	newResult := func(id string) *domain.Result {
		return &domain.Result{
			ID:           id,
			DefinitionID: "palindrome",
			Input:        "0#0",
			Final:        domain.Snapshot{Step: 4, State: 2, Stack: "S", Head: 3},
			Trace: []domain.Snapshot{
				{Step: 0, State: 0, Stack: "S"},
				{Step: 4, State: 2, Stack: "S", Head: 3},
			},
			Verdict:   domain.Verdict{Accepted: true, Reason: domain.ReasonAcceptingState},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		result := newResult(runID)

		err := store.Save(ctx, result)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, result.DefinitionID, loaded.DefinitionID)
		assert.Equal(t, result.Verdict, loaded.Verdict)
		assert.Equal(t, result.Final, loaded.Final)
		assert.Equal(t, result.Trace, loaded.Trace)
		assert.True(t, result.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newResult(runID))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, newResult(id1)))
		require.NoError(t, store.Save(ctx, newResult(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
