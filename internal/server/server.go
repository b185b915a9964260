// Package server exposes the board over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/tool"
)

// Options configures a Server.
// Fields are ordered to minimize memory padding.
type Options struct {
	Store          *board.Store
	Tools          *tool.Dispatcher
	Logger         domain.Logger
	Slog           *slog.Logger
	Addr           string
	JWTSecret      string
	AllowedOrigins []string
}

// Server serves the board API.
type Server struct {
	store       *board.Store
	tools       *tool.Dispatcher
	hub         *Hub
	auth        *Auth
	cors        *cors.Cors
	logger      domain.Logger
	slog        *slog.Logger
	unsubscribe func()
	handler     http.Handler
	addr        string
}

const catServer = "server"

// New creates a Server and subscribes it to board changes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = domain.NopLogger{}
	}
	if opts.Slog == nil {
		opts.Slog = slog.Default()
	}
	if opts.Tools == nil {
		opts.Tools = tool.New(opts.Store, opts.Logger)
	}
	if opts.Addr == "" {
		opts.Addr = domain.DefaultServerAddr
	}

	s := &Server{
		store:  opts.Store,
		tools:  opts.Tools,
		hub:    NewHub(opts.Tools, opts.Logger),
		auth:   NewAuth(opts.JWTSecret),
		logger: opts.Logger,
		slog:   opts.Slog,
		addr:   opts.Addr,
	}
	s.handler = s.routes(opts.AllowedOrigins)
	s.unsubscribe = s.store.Subscribe(func(c board.Change) {
		s.hub.Broadcast(Message{
			Type: TypeBoardChanged,
			Data: changeBody{Command: c.Command, Persisted: c.Persisted},
		})
	})
	return s
}

// Handler returns the HTTP handler with CORS and auth applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Auth returns the token issuer used by the server.
func (s *Server) Auth() *Auth {
	return s.auth
}

func (s *Server) routes(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.auth.Middleware)
	api.HandleFunc("/board", s.handleBoard).Methods(http.MethodGet)
	api.HandleFunc("/context", s.handleContext).Methods(http.MethodGet)
	api.HandleFunc("/tools", s.handleTools).Methods(http.MethodGet)
	api.HandleFunc("/tools/{name}", s.handleCall).Methods(http.MethodPost)
	api.HandleFunc("/ws", s.handleWebSocket)

	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if len(allowedOrigins) == 0 {
		// Same-origin only; "*" must be configured explicitly.
		opts.AllowOriginFunc = func(string) bool { return false }
	}
	s.cors = cors.New(opts)
	return s.cors.Handler(r)
}

// checkOrigin admits requests without an Origin header (non-browser
// clients), same-host pages, and configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return s.cors.OriginAllowed(r)
}

// Run serves on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.unsubscribe()

	go s.hub.Run(ctx)

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.slog.Info("server started", "addr", ln.Addr().String(), "auth", s.auth.Enabled())
	s.logger.Info(catServer, fmt.Sprintf("listening on %s", ln.Addr()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.slog.Info("server stopped")
	s.logger.Info(catServer, "stopped")
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Browsers do not apply CORS to WebSocket, so the handshake checks origins itself.
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(catWS, fmt.Sprintf("upgrade failed: %v", err))
		return
	}
	if err := s.hub.attach(r.Context(), conn, subjectFrom(r.Context())); err != nil {
		s.logger.Warn(catWS, fmt.Sprintf("attach failed: %v", err))
		_ = conn.Close()
	}
}
