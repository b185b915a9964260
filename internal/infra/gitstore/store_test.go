package gitstore

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return repo, dir
}

func TestStore_GetMissing(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "kanban-test")

	data, err := store.Get("voix-kanban-state")

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_SetGet(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "kanban-test")

	// Execute
	require.NoError(t, store.Set("voix-kanban-state", []byte(`{"tasks":[],"columns":[]}`)))
	require.NoError(t, store.Set("voix-kanban-state", []byte(`{"tasks":[{"id":"t1"}]}`)))

	// Assert
	data, err := store.Get("voix-kanban-state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[{"id":"t1"}]}`, string(data))

	ref, err := repo.Reference(plumbing.ReferenceName("refs/kanban-test/state/voix-kanban-state"), true)
	require.NoError(t, err)
	assert.False(t, ref.Hash().IsZero())
}

func TestStore_SetLargeBlob(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "kanban-test")
	big := make([]byte, 256*1024)
	for i := range big {
		big[i] = byte('a' + i%26)
	}

	require.NoError(t, store.Set("big", big))
	data, err := store.Get("big")

	require.NoError(t, err)
	assert.Equal(t, big, data)
}

func TestStore_DeleteAndKeys(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "kanban-test")
	require.NoError(t, store.Set("b", []byte("2")))
	require.NoError(t, store.Set("a", []byte("1")))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, store.Delete("a"))
	require.NoError(t, store.Delete("a"), "deleting a missing key is not an error")

	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	repo, _ := setupTestRepo(t)
	one := NewWithRepo(repo, "board-one")
	two := NewWithRepo(repo, "board-two")

	require.NoError(t, one.Set("state", []byte("one")))

	data, err := two.Get("state")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_InvalidKey(t *testing.T) {
	repo, _ := setupTestRepo(t)
	store := NewWithRepo(repo, "")

	assert.Error(t, store.Set("", []byte("x")))
	assert.Error(t, store.Set("a..b", []byte("x")))
	assert.Error(t, store.Set("a b", []byte("x")))
}

func TestNew_InitializesMissingRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "board")

	store, err := New(dir, "")
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("v")))

	reopened, err := New(dir, "")
	require.NoError(t, err)
	data, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(data))
}

func TestStore_PushFetch(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	// Setup: a bare remote and two clones of it
	remoteDir := t.TempDir()
	_, err := git.PlainInit(remoteDir, true)
	require.NoError(t, err)

	local, localDir := setupTestRepo(t)
	_, err = local.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remoteDir}})
	require.NoError(t, err)
	other, otherDir := setupTestRepo(t)
	_, err = other.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remoteDir}})
	require.NoError(t, err)

	pusher, err := New(localDir, "kanban-test")
	require.NoError(t, err)
	fetcher, err := New(otherDir, "kanban-test")
	require.NoError(t, err)

	// Execute
	require.NoError(t, pusher.Set("state", []byte("shared")))
	require.NoError(t, pusher.Push())
	require.NoError(t, fetcher.Fetch())

	// Assert
	data, err := fetcher.Get("state")
	require.NoError(t, err)
	assert.Equal(t, "shared", string(data))
}
