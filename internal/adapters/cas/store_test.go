package cas_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/hbuild/internal/adapters/cas"
	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/core/domain"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := newStore()

	entries, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "x64", "Debug", domain.CacheFileName))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "x64", "Debug", domain.CacheFileName)
	store := newStore()

	require.NoError(t, store.Save(ctx, path, map[string]string{"core/core.obj": "abc"}))

	entries, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"core/core.obj": "abc"}, entries)
}

func TestStore_SaveUnionsWithDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), domain.CacheFileName)

	// Two builds of the same output folder that loaded the same empty state.
	first := newStore()
	second := newStore()

	require.NoError(t, first.Save(ctx, path, map[string]string{"a.obj": "1", "shared.obj": "old"}))
	require.NoError(t, second.Save(ctx, path, map[string]string{"b.obj": "2", "shared.obj": "new"}))

	entries, err := newStore().Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.obj": "1", "b.obj": "2", "shared.obj": "new"}, entries)
}

func TestStore_SaveIsDeterministic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	entries := map[string]string{"z.obj": "1", "a.obj": "2", "m.obj": "3"}

	one := filepath.Join(dir, "one.cache")
	two := filepath.Join(dir, "two.cache")
	require.NoError(t, newStore().Save(ctx, one, entries))
	require.NoError(t, newStore().Save(ctx, two, entries))

	a, err := os.ReadFile(one)
	require.NoError(t, err)
	b, err := os.ReadFile(two)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), domain.CacheFileName)
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o600))

	var logs bytes.Buffer
	store := cas.NewStore(logger.NewWithWriter(&logs))

	entries, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, logs.String(), "discarding unreadable object cache")

	require.NoError(t, store.Save(ctx, path, map[string]string{"main.obj": "d1"}))
	entries, err = store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"main.obj": "d1"}, entries)
}

func TestStore_ReadFailure(t *testing.T) {
	// A directory in place of the cache file cannot be read.
	path := t.TempDir()

	_, err := newStore().Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheReadFailed))
}

func newStore() *cas.Store {
	return cas.NewStore(logger.NewWithWriter(io.Discard))
}
