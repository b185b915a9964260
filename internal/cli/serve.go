package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/server"
)

// errAuthDisabled is returned by the token command when no secret is configured.
var errAuthDisabled = errors.New("server.jwt_secret is not configured")

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP and WebSocket",
		Long: `Serve the board API until interrupted.

Endpoints:
  GET  /api/health         Liveness check (no auth)
  GET  /api/board          Board snapshot
  GET  /api/context        Context blocks (?block=name for one)
  GET  /api/tools          Tool definitions
  POST /api/tools/{name}   Call a tool with a JSON payload
  GET  /api/ws             WebSocket: call tools, receive board_changed events

When server.jwt_secret is set, requests need "Authorization: Bearer <token>"
(see 'kanban token').`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := c.Server(addr)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving board on %s\n", serveAddr(c, addr))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")
	return cmd
}

func serveAddr(c *app.Container, addr string) string {
	if addr != "" {
		return addr
	}
	return c.AppConfig.Server.Addr
}

// newTokenCommand creates the token command.
func newTokenCommand(c *app.Container) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token",
		Long: `Issue a signed bearer token for the HTTP/WebSocket API.

WebSocket clients that cannot set headers may pass it as ?token=<token>.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := c.Auth()
			if !auth.Enabled() {
				return errAuthDisabled
			}
			token, err := auth.Issue(subject, ttl)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "agent", "Token subject (caller name)")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultTokenTTL, "Token lifetime")
	return cmd
}
