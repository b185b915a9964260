package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/kanban/internal/domain"
)

// ConfigInfo describes one config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Manager manages configuration files.
type Manager struct {
	dataDir       string // Board data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/kanban)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// GetBoardConfigInfo returns information about the board-local config file.
func (m *Manager) GetBoardConfigInfo() ConfigInfo {
	return getConfigInfo(domain.BoardConfigPath(m.dataDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() ConfigInfo {
	if m.globalConfDir == "" {
		return ConfigInfo{}
	}
	return getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// getConfigInfo reads a config file and returns its info.
func getConfigInfo(path string) ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return ConfigInfo{Path: path}
	}
	return ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitBoardConfig creates a board-local config file from the default template.
func (m *Manager) InitBoardConfig(cfg *domain.Config) (string, error) {
	if err := os.MkdirAll(m.dataDir, 0o750); err != nil {
		return "", err
	}
	path := domain.BoardConfigPath(m.dataDir)
	return path, initConfig(path, cfg)
}

// InitGlobalConfig creates a global config file from the default template.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) (string, error) {
	if m.globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return "", err
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)
	return path, initConfig(path, cfg)
}

// initConfig creates a config file with default template.
func initConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	return os.WriteFile(path, []byte(domain.RenderConfigTemplate(cfg)), 0o600)
}
