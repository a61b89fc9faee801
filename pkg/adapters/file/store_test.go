package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pushdown/pkg/adapters/file"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Result{ID: "abc", DefinitionID: "palindrome"}))

	_, err := os.Stat(filepath.Join(dir, "abc.json"))
	assert.NoError(t, err, "run should be stored as <id>.json")

	// Stray files are not runs.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-abc-123.json"), []byte("{}"), 0644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)
}

func TestFileStore_Overwrite(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Result{ID: "r", Input: "first"}))
	require.NoError(t, store.Save(ctx, &domain.Result{ID: "r", Input: "second"}))

	loaded, err := store.Load(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Input)
}

func TestFileStore_EmptyID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	assert.Error(t, store.Save(context.Background(), &domain.Result{}))
	_, err := store.Load(context.Background(), "")
	assert.Error(t, err)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "never-created"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
