package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_BoardConfigOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[storage]
backend = "sqlite"
key = "team-board"

[log]
level = "debug"

[server]
addr = ":9000"
allowed_origins = ["http://localhost:5173"]

[user]
id = "ava"
name = "Ava Patel"

[[teammates]]
id = "ava"
name = "Ava Patel"
role = "Design"
email = "ava@example.com"

[[teammates]]
id = "kai"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
	require.NoError(t, err)

	// Assert
	assert.Equal(t, domain.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "team-board", cfg.Storage.Key)
	assert.Equal(t, domain.DefaultGitNamespace, cfg.Storage.Namespace)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "ava", cfg.User.ID)
	assert.Equal(t, "Ava Patel", cfg.User.Name)
	assert.Equal(t, domain.DefaultCurrentUser().Role, cfg.User.Role, "unset user fields keep defaults")
	require.Len(t, cfg.Teammates, 2)
	assert.Equal(t, "ava@example.com", cfg.Teammates[0].Email)
	assert.Equal(t, "kai", cfg.Teammates[1].Name, "name defaults to id")
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_BoardOverridesGlobal(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[storage]
backend = "git"
namespace = "shared"
encryption_key = "global-key"

[log]
level = "warn"

[server]
jwt_secret = "global-secret"
`)
	writeConfig(t, dataDir, `
[storage]
backend = "json"

[log]
level = "error"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()
	require.NoError(t, err)

	// Assert
	assert.Equal(t, domain.BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, "shared", cfg.Storage.Namespace)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "global-secret", cfg.Server.JWTSecret)
	assert.Equal(t, "global-key", cfg.Storage.EncryptionKey)
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[storage]
engine = "postgres"

[[teammates]]
id = "ava"
nickname = "A"

[[teammates]]
name = "No Id"

[workers]
default = "claude"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[[teammates]] #2 has no id; skipped",
		"unknown key in [[teammates]] #1: nickname",
		"unknown key in [storage]: engine",
		"unknown section: workers",
	}, cfg.Warnings)
	require.Len(t, cfg.Teammates, 1)
	assert.Equal(t, "ava", cfg.Teammates[0].ID)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[storage\nbackend = ")

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	assert.Error(t, err)
}

func TestLoader_Load_RenderedTemplateRoundTrips(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, domain.RenderConfigTemplate(domain.NewDefaultConfig()))

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.NewDefaultConfig().Storage, cfg.Storage)
}

func TestDefaultDataDir(t *testing.T) {
	t.Run("KANBAN_DIR wins", func(t *testing.T) {
		t.Setenv("KANBAN_DIR", "/tmp/board")
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
		assert.Equal(t, "/tmp/board", DefaultDataDir())
	})

	t.Run("XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("KANBAN_DIR", "")
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
		assert.Equal(t, filepath.Join("/tmp/xdg", "kanban"), DefaultDataDir())
	})
}
