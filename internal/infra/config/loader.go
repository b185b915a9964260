// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/kanban/internal/domain"
)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Board data directory holding the board-local config.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/kanban)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// DefaultDataDir resolves the board data directory: $KANBAN_DIR, then
// $XDG_DATA_HOME/kanban, then ~/.local/share/kanban.
func DefaultDataDir() string {
	if dir := os.Getenv("KANBAN_DIR"); dir != "" {
		return dir
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+domain.AppDirName)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, domain.AppDirName)
}

// Load returns the merged configuration (board + global).
// Board config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	board, err := l.LoadBoard()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- board (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if board != nil {
		base = mergeConfigs(base, board)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadBoard returns only the board-local configuration.
func (l *Loader) LoadBoard() (*domain.Config, error) {
	if l.dataDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.BoardConfigPath(l.dataDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "storage":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "backend":
						res.Storage.Backend = stringValue(v)
					case "path":
						res.Storage.Path = stringValue(v)
					case "key":
						res.Storage.Key = stringValue(v)
					case "namespace":
						res.Storage.Namespace = stringValue(v)
					case "encryption_key":
						res.Storage.EncryptionKey = stringValue(v)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [storage]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						res.Log.Level = stringValue(v)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		case "server":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "addr":
						res.Server.Addr = stringValue(v)
					case "jwt_secret":
						res.Server.JWTSecret = stringValue(v)
					case "allowed_origins":
						res.Server.AllowedOrigins = stringList(v)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
					}
				}
			}
		case "user":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "id":
						res.User.ID = stringValue(v)
					case "name":
						res.User.Name = stringValue(v)
					case "role":
						res.User.Role = stringValue(v)
					case "email":
						res.User.Email = stringValue(v)
					case "status":
						res.User.Status = stringValue(v)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [user]: %s", k))
					}
				}
			}
		case "teammates":
			mates, unknowns := parseTeammates(value)
			res.Teammates = mates
			warnings = append(warnings, unknowns...)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseTeammates parses [[teammates]] tables. Entries without an id are skipped.
func parseTeammates(value any) ([]domain.Teammate, []string) {
	list, ok := value.([]any)
	if !ok {
		return nil, []string{"invalid [[teammates]]: expected an array of tables"}
	}

	var mates []domain.Teammate
	var warnings []string
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var mate domain.Teammate
		for k, v := range m {
			switch k {
			case "id":
				mate.ID = stringValue(v)
			case "name":
				mate.Name = stringValue(v)
			case "role":
				mate.Role = stringValue(v)
			case "email":
				mate.Email = stringValue(v)
			default:
				warnings = append(warnings, fmt.Sprintf("unknown key in [[teammates]] #%d: %s", i+1, k))
			}
		}
		if mate.ID == "" {
			warnings = append(warnings, fmt.Sprintf("[[teammates]] #%d has no id; skipped", i+1))
			continue
		}
		if mate.Name == "" {
			mate.Name = mate.ID
		}
		mates = append(mates, mate)
	}
	return mates, warnings
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Teammates: base.Teammates,
		Storage:   base.Storage,
		Server:    base.Server,
		User:      base.User,
		Log:       base.Log,
		Warnings:  append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	// A roster replaces the lower layer's roster as a whole.
	if len(override.Teammates) > 0 {
		result.Teammates = override.Teammates
	}

	if override.Storage.Backend != "" {
		result.Storage.Backend = override.Storage.Backend
	}
	if override.Storage.Path != "" {
		result.Storage.Path = override.Storage.Path
	}
	if override.Storage.Key != "" {
		result.Storage.Key = override.Storage.Key
	}
	if override.Storage.Namespace != "" {
		result.Storage.Namespace = override.Storage.Namespace
	}
	if override.Storage.EncryptionKey != "" {
		result.Storage.EncryptionKey = override.Storage.EncryptionKey
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.JWTSecret != "" {
		result.Server.JWTSecret = override.Server.JWTSecret
	}
	if len(override.Server.AllowedOrigins) > 0 {
		result.Server.AllowedOrigins = override.Server.AllowedOrigins
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	// Merge user: override individual fields, not the entire user
	if override.User.ID != "" {
		result.User.ID = override.User.ID
	}
	if override.User.Name != "" {
		result.User.Name = override.User.Name
	}
	if override.User.Role != "" {
		result.User.Role = override.User.Role
	}
	if override.User.Email != "" {
		result.User.Email = override.User.Email
	}
	if override.User.Status != "" {
		result.User.Status = override.User.Status
	}

	return result
}
