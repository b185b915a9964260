// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/infra/config"
	"github.com/runoshun/kanban/internal/infra/crypto"
	"github.com/runoshun/kanban/internal/infra/gitstore"
	"github.com/runoshun/kanban/internal/infra/idgen"
	"github.com/runoshun/kanban/internal/infra/jsonstore"
	"github.com/runoshun/kanban/internal/infra/logging"
	"github.com/runoshun/kanban/internal/infra/sqlitestore"
	"github.com/runoshun/kanban/internal/server"
	"github.com/runoshun/kanban/internal/tool"
)

// Config holds the application paths.
type Config struct {
	DataDir   string // Board data directory (config.toml, board state, logs)
	GlobalDir string // Global config directory; empty uses the XDG default
}

// Container provides dependency injection for the application.
// It holds the board store and every adapter bound to it.
type Container struct {
	// Ports (interfaces bound to implementations)
	State  domain.StateStore
	Clock  domain.Clock
	IDs    domain.IDGenerator
	Logger domain.Logger

	// Pointer fields
	Store         *board.Store
	Tools         *tool.Dispatcher
	ConfigLoader  *config.Loader
	ConfigManager *config.Manager
	Slog          *slog.Logger
	AppConfig     *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a Container for the board in cfg.DataDir, choosing the storage
// backend from the loaded configuration.
func New(cfg Config) (*Container, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir()
	}

	var loader *config.Loader
	var manager *config.Manager
	if cfg.GlobalDir != "" {
		loader = config.NewLoaderWithGlobalDir(cfg.DataDir, cfg.GlobalDir)
		manager = config.NewManagerWithGlobalDir(cfg.DataDir, cfg.GlobalDir)
	} else {
		loader = config.NewLoader(cfg.DataDir)
		manager = config.NewManager(cfg.DataDir)
	}

	appConfig, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	state, closer, err := openStateStore(appConfig, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if key := appConfig.Storage.EncryptionKey; key != "" {
		enc, encErr := crypto.NewEncryptor(key)
		if encErr != nil {
			if closer != nil {
				_ = closer.Close()
			}
			return nil, fmt.Errorf("storage encryption: %w", encErr)
		}
		state = crypto.Wrap(state, enc)
	}

	fileLogger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))
	for _, w := range appConfig.Warnings {
		fileLogger.Warn("config", w)
	}

	c := newContainer(cfg, appConfig, state, domain.RealClock{}, idgen.UUID{}, fileLogger)
	c.ConfigLoader = loader
	c.ConfigManager = manager
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	c.closers = append(c.closers, fileLogger)
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, state domain.StateStore, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	c := newContainer(cfg, appConfig, state, clock, ids, logger)
	c.ConfigLoader = config.NewLoaderWithGlobalDir(cfg.DataDir, cfg.GlobalDir)
	c.ConfigManager = config.NewManagerWithGlobalDir(cfg.DataDir, cfg.GlobalDir)
	return c
}

func newContainer(cfg Config, appConfig *domain.Config, state domain.StateStore, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *Container {
	user := appConfig.User
	store := board.New(board.Options{
		State:  state,
		Clock:  clock,
		IDs:    ids,
		Logger: logger,
		User:   &user,
		Key:    appConfig.Storage.Key,
		Roster: appConfig.Roster(),
	})

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))

	return &Container{
		State:     state,
		Clock:     clock,
		IDs:       ids,
		Logger:    logger,
		Store:     store,
		Tools:     tool.New(store, logger),
		Slog:      slogger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// openStateStore opens the configured persistence backend.
// The returned closer is nil for backends that hold no resources.
func openStateStore(cfg *domain.Config, dataDir string) (domain.StateStore, io.Closer, error) {
	path := cfg.StoragePath(dataDir)
	switch cfg.Storage.Backend {
	case "", domain.BackendJSON:
		return jsonstore.New(path), nil, nil
	case domain.BackendSQLite:
		if err := os.MkdirAll(dataDir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		s, err := sqlitestore.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s, nil
	case domain.BackendGit:
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create repository dir: %w", err)
		}
		s, err := gitstore.New(path, cfg.Storage.Namespace)
		if err != nil {
			return nil, nil, fmt.Errorf("open git store: %w", err)
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("%q: %w", cfg.Storage.Backend, domain.ErrUnknownBackend)
	}
}

// Server returns an HTTP server for the board. An empty addr uses the configured address.
func (c *Container) Server(addr string) *server.Server {
	if addr == "" {
		addr = c.AppConfig.Server.Addr
	}
	return server.New(server.Options{
		Store:          c.Store,
		Tools:          c.Tools,
		Logger:         c.Logger,
		Slog:           c.Slog,
		Addr:           addr,
		JWTSecret:      c.AppConfig.Server.JWTSecret,
		AllowedOrigins: c.AppConfig.Server.AllowedOrigins,
	})
}

// Auth returns the token issuer configured for the server.
func (c *Container) Auth() *server.Auth {
	return server.NewAuth(c.AppConfig.Server.JWTSecret)
}

// Syncer is implemented by backends that can exchange state with a remote.
type Syncer interface {
	Push() error
	Fetch() error
}

// Syncer returns the state backend as a Syncer, if it supports remote sync.
func (c *Container) Syncer() (Syncer, bool) {
	state := c.State
	if enc, ok := state.(*crypto.Store); ok {
		state = enc.Inner()
	}
	s, ok := state.(Syncer)
	return s, ok
}

// Close releases backend and log resources.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
