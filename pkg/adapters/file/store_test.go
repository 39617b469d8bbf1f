package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/quicktrace/pkg/adapters/file"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunTraceStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(filepath.Join(dir, "nested", "traces"))
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "missing directory lists as empty")

	trace := domain.NewTrace("abc", time.Now().UTC(), []int{1}, &domain.SortReport{FinalArray: []int{1}})
	require.NoError(t, store.Save(ctx, trace))

	_, err = os.Stat(filepath.Join(dir, "nested", "traces", "abc.json"))
	require.NoError(t, err)

	// Stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "traces", "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "traces", ".abc-1.tmp"), []byte("{}"), 0644))

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)

	// IDs are listed whatever they start with.
	require.NoError(t, store.Save(ctx, domain.NewTrace("tmp-run", time.Now().UTC(), []int{2}, &domain.SortReport{FinalArray: []int{2}})))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "tmp-run"}, ids)
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		err := store.Save(ctx, &domain.Trace{ID: id})
		assert.Error(t, err, id)
		assert.ErrorIs(t, err, domain.ErrInvalidTraceID, id)
		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidTraceID, id)
		assert.NotErrorIs(t, err, domain.ErrTraceNotFound, id)
		assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrInvalidTraceID, id)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTraceNotFound)
}
