package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/infra/crypto"
	"github.com/runoshun/kanban/internal/infra/gitstore"
	"github.com/runoshun/kanban/internal/infra/jsonstore"
	"github.com/runoshun/kanban/internal/infra/sqlitestore"
	"github.com/runoshun/kanban/internal/testutil"
)

func writeBoardConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(domain.BoardConfigPath(dir), []byte(content), 0o600))
}

func newTestContainer(t *testing.T, configContent string) *Container {
	t.Helper()
	dataDir := t.TempDir()
	if configContent != "" {
		writeBoardConfig(t, dataDir, configContent)
	}
	c, err := New(Config{DataDir: dataDir, GlobalDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_Backends(t *testing.T) {
	tests := []struct {
		check  func(t *testing.T, state domain.StateStore)
		name   string
		config string
	}{
		{
			name:   "default json",
			config: "",
			check: func(t *testing.T, state domain.StateStore) {
				_, ok := state.(*jsonstore.Store)
				assert.True(t, ok)
			},
		},
		{
			name:   "sqlite",
			config: "[storage]\nbackend = \"sqlite\"\n",
			check: func(t *testing.T, state domain.StateStore) {
				_, ok := state.(*sqlitestore.Store)
				assert.True(t, ok)
			},
		},
		{
			name:   "git",
			config: "[storage]\nbackend = \"git\"\npath = \"repo\"\n",
			check: func(t *testing.T, state domain.StateStore) {
				_, ok := state.(*gitstore.Store)
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContainer(t, tt.config)
			tt.check(t, c.State)

			// Execute: a persisted command reaches the backend
			_, err := c.Store.CreateTask(board.CreateTaskInput{Title: "Persist me"})
			require.NoError(t, err)

			// Assert
			raw, err := c.State.Get(domain.DefaultStateKey)
			require.NoError(t, err)
			assert.Contains(t, string(raw), "Persist me")
		})
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	dataDir := t.TempDir()
	writeBoardConfig(t, dataDir, "[storage]\nbackend = \"redis\"\n")

	_, err := New(Config{DataDir: dataDir, GlobalDir: t.TempDir()})

	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestNew_AppliesConfig(t *testing.T) {
	c := newTestContainer(t, `
[user]
id = "kai"
name = "Kai Tanaka"

[[teammates]]
id = "kai"
name = "Kai Tanaka"

[[teammates]]
id = "sam"
name = "Sam Lee"
`)

	assert.Equal(t, "kai", c.Store.CurrentUser().ID)
	require.Len(t, c.Store.Teammates(), 2)
	id, err := c.Store.ResolveAssignee("Sam Lee")
	require.NoError(t, err)
	assert.Equal(t, "sam", id)
}

func TestNew_LogsConfigWarnings(t *testing.T) {
	c := newTestContainer(t, "[storage]\nbogus = 1\n")

	require.NoError(t, c.Close())

	data, err := os.ReadFile(domain.LogPath(c.Config.DataDir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "unknown key in [storage]: bogus")
}

func TestNew_EncryptedStorage(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	c := newTestContainer(t, "[storage]\nbackend = \"git\"\nencryption_key = \""+key+"\"\n")

	enc, ok := c.State.(*crypto.Store)
	require.True(t, ok)
	_, err = c.Store.CreateTask(board.CreateTaskInput{Title: "Secret plan"})
	require.NoError(t, err)

	// Assert: backend holds ciphertext, the wrapper returns plaintext
	raw, err := enc.Inner().Get(domain.DefaultStateKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Secret plan")
	plain, err := c.State.Get(domain.DefaultStateKey)
	require.NoError(t, err)
	assert.Contains(t, string(plain), "Secret plan")

	_, ok = c.Syncer()
	assert.True(t, ok)
}

func TestNew_InvalidEncryptionKey(t *testing.T) {
	dataDir := t.TempDir()
	writeBoardConfig(t, dataDir, "[storage]\nencryption_key = \"abc\"\n")

	_, err := New(Config{DataDir: dataDir, GlobalDir: t.TempDir()})

	assert.ErrorIs(t, err, crypto.ErrInvalidKey)
}

func TestNewWithDeps(t *testing.T) {
	state := testutil.NewMockStateStore()
	logger := &testutil.RecordingLogger{}

	c := NewWithDeps(Config{DataDir: t.TempDir(), GlobalDir: t.TempDir()}, nil, state, &testutil.MockClock{}, testutil.NewSequentialIDs(), logger)

	id, err := c.Store.CreateTask(board.CreateTaskInput{Title: "From deps"})
	require.NoError(t, err)
	assert.Equal(t, "task-new1", id)
	assert.Positive(t, state.Writes())
	assert.NotNil(t, c.Tools)
	assert.Equal(t, domain.DefaultServerAddr, c.AppConfig.Server.Addr)
}

func TestContainer_Syncer(t *testing.T) {
	jsonContainer := newTestContainer(t, "")
	_, ok := jsonContainer.Syncer()
	assert.False(t, ok)

	gitContainer := newTestContainer(t, "[storage]\nbackend = \"git\"\n")
	_, ok = gitContainer.Syncer()
	assert.True(t, ok)
	_, err := os.Stat(filepath.Join(gitContainer.Config.DataDir, ".git"))
	assert.NoError(t, err)
}

func TestContainer_ServerAndAuth(t *testing.T) {
	c := newTestContainer(t, "[server]\njwt_secret = \"s3cret\"\n")

	assert.NotNil(t, c.Server(""))
	assert.True(t, c.Auth().Enabled())
}
