package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Teammates []Teammate    `toml:"teammates"` // Roster from [[teammates]]; empty = built-in roster
	Warnings  []string      `toml:"-"`
	Storage   StorageConfig `toml:"storage"`
	Server    ServerConfig  `toml:"server"`
	User      CurrentUser   `toml:"user"`
	Log       LogConfig     `toml:"log"`
}

// StorageConfig holds settings for board persistence from [storage] section.
type StorageConfig struct {
	Backend       string `toml:"backend,omitempty"`        // "json" (default), "sqlite" or "git"
	Path          string `toml:"path,omitempty"`           // File or repository path; relative to the data dir
	Key           string `toml:"key,omitempty"`            // State key (default: "voix-kanban-state")
	Namespace     string `toml:"namespace,omitempty"`      // Git ref namespace (default: "kanban")
	EncryptionKey string `toml:"encryption_key,omitempty"` // Hex AES-256 key; encrypts state at rest when set
}

// ServerConfig holds HTTP settings from [server] section.
type ServerConfig struct {
	Addr           string   `toml:"addr,omitempty"`       // Listen address (default: "127.0.0.1:8787")
	JWTSecret      string   `toml:"jwt_secret,omitempty"` // Enables bearer-token auth when set
	AllowedOrigins []string `toml:"allowed_origins,omitempty"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendGit    = "git"
)

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultServerAddr    = "127.0.0.1:8787"
	DefaultGitNamespace  = "kanban"
	DefaultStateFileName = "board.json"
	DefaultSQLiteName    = "board.db"
)

// Directory and file names.
const (
	AppDirName     = "kanban"      // Directory name under XDG roots
	ConfigFileName = "config.toml" // Config file name
	LogsDirName    = "logs"        // Log directory inside the data dir
	LogFileName    = "kanban.log"  // Log file name
)

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// BoardConfigPath returns the board-local config path inside a data dir.
func BoardConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// LogPath returns the log file path inside a data dir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogsDirName, LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:   BackendJSON,
			Key:       DefaultStateKey,
			Namespace: DefaultGitNamespace,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		User: DefaultCurrentUser(),
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Roster returns the configured teammates, or the built-in roster.
func (c *Config) Roster() []Teammate {
	if len(c.Teammates) == 0 {
		return DefaultRoster()
	}
	return append([]Teammate{}, c.Teammates...)
}

// StoragePath resolves the backend path against dataDir.
func (c *Config) StoragePath(dataDir string) string {
	path := c.Storage.Path
	if path == "" {
		switch c.Storage.Backend {
		case BackendSQLite:
			path = DefaultSQLiteName
		case BackendGit:
			path = "."
		default:
			path = DefaultStateFileName
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}

// templateData holds all data for rendering the config template.
type templateData struct {
	Backend  string
	Key      string
	Addr     string
	LogLevel string
	User     CurrentUser
}

// RenderConfigTemplate renders the commented config file written by "config init".
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		Backend:  cfg.Storage.Backend,
		Key:      cfg.Storage.Key,
		Addr:     cfg.Server.Addr,
		LogLevel: cfg.Log.Level,
		User:     cfg.User,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
