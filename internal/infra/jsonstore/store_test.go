package jsonstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "board.json"))
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	value, err := store.Get("voix-kanban-state")

	require.NoError(t, err)
	assert.Nil(t, value)
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "reads must not create the file")
}

func TestStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("board", []byte(`{"tasks":[],"columns":[]}`)))
	value, err := store.Get("board")

	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[],"columns":[]}`, string(value))

	require.NoError(t, store.Set("board", []byte(`{"tasks":[1]}`)))
	value, err = store.Get("board")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[1]}`, string(value))
}

func TestStore_SetRejectsNonJSON(t *testing.T) {
	store := newTestStore(t)

	err := store.Set("board", []byte("{oops"))

	assert.ErrorIs(t, err, ErrNotJSON)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("a", []byte(`1`)))
	require.NoError(t, store.Set("b", []byte(`2`)))

	require.NoError(t, store.Delete("a"))
	require.NoError(t, store.Delete("missing"))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.json")
	require.NoError(t, New(path).Set("k", []byte(`"v"`)))

	value, err := New(path).Get("k")

	require.NoError(t, err)
	assert.Equal(t, `"v"`, string(value))
}

func TestStore_CorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("not json"), 0o600))

	_, err := store.Get("k")

	assert.Error(t, err)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	store := newTestStore(t)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Set(string(rune('a'+n)), []byte(`true`)))
		}(i)
	}
	wg.Wait()

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 10)
}
