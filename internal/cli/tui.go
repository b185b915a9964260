package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/tui"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `kanban` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	var serveAddr string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long: `Launch the interactive terminal user interface for the board.

With --serve, the HTTP/WebSocket API runs alongside the UI on the same board,
so tool calls from an agent show up live in the terminal.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c, serveAddr)
		},
	}
	cmd.Flags().StringVar(&serveAddr, "serve", "", "Also serve the HTTP/WebSocket API on this address")
	return cmd
}

// launchTUI runs the board TUI, optionally serving the API in the background.
func launchTUI(c *app.Container, serveAddr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	if serveAddr != "" {
		// Process logs would draw over the alternate screen.
		c.Slog = slog.New(slog.NewTextHandler(io.Discard, nil))
		srv := c.Server(serveAddr)
		go func() { serveErr <- srv.Run(ctx) }()
	}

	model := tui.New(c.Store)
	defer model.Close()
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	cancel()
	if serveAddr != "" {
		if srvErr := <-serveErr; srvErr != nil && !errors.Is(srvErr, context.Canceled) {
			return errors.Join(err, srvErr)
		}
	}
	return err
}
