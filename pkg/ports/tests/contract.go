package tests

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// expected maps every ID the loader must serve to the definition it must return.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, expected map[string]*domain.Definition) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetDefinition_Success", func(t *testing.T) {
		for id, want := range expected {
			got, err := loader.GetDefinition(ctx, id)
			require.NoError(t, err, "unexpected error getting definition %s", id)
			assert.Equal(t, want, got, "definition mismatch for %s", id)
		}
	})

	t.Run("GetDefinition_NotFound", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "non-existent-automaton")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("ListDefinitions", func(t *testing.T) {
		ids, err := loader.ListDefinitions(ctx)
		require.NoError(t, err)

		want := make([]string, 0, len(expected))
		for id := range expected {
			want = append(want, id)
		}
		sort.Strings(want)
		assert.Equal(t, want, ids)
	})
}
