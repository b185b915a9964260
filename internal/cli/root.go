// Package cli provides the command-line interface for kanban.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/runoshun/kanban/internal/app"
)

// Command group IDs.
const (
	groupBoard  = "board"
	groupServer = "server"
	groupSetup  = "setup"
)

// NewRootCommand creates the root command for kanban.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var dataDir string
	var serveAddr string

	root := &cobra.Command{
		Use:   "kanban",
		Short: "Kanban board for humans and automated agents",
		Long: `kanban is a kanban board whose every operation is also exposed as a
named tool, so a person in the terminal UI and an agent calling tools over
HTTP or WebSocket edit the same board.

Running kanban without a subcommand opens the terminal UI.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c, serveAddr)
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "dir", "", "Board data directory (default: $KANBAN_DIR or ~/.local/share/kanban)")
	root.Flags().StringVar(&serveAddr, "serve", "", "Also serve the HTTP/WebSocket API on this address")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupBoard, Title: "Board Commands:"},
		&cobra.Group{ID: groupServer, Title: "Server & Tools:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Board commands
	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupBoard

	listCmd := newListCommand(c)
	listCmd.GroupID = groupBoard

	newCmd := newNewCommand(c)
	newCmd.GroupID = groupBoard

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupBoard

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupBoard

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupBoard

	resetCmd := newResetCommand(c)
	resetCmd.GroupID = groupBoard

	// Server & tool commands
	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupServer

	toolCmd := newToolCommand(c)
	toolCmd.GroupID = groupServer

	toolsCmd := newToolsCommand(c)
	toolsCmd.GroupID = groupServer

	tokenCmd := newTokenCommand(c)
	tokenCmd.GroupID = groupServer

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	syncCmd := newSyncCommand(c)
	syncCmd.GroupID = groupSetup

	root.AddCommand(
		tuiCmd,
		listCmd,
		newCmd,
		showCmd,
		exportCmd,
		importCmd,
		resetCmd,
		serveCmd,
		toolCmd,
		toolsCmd,
		tokenCmd,
		configCmd,
		syncCmd,
	)

	return root
}

// DataDirFromArgs extracts the --dir flag value before the container is built.
// Unknown flags are ignored; an empty result means the default data dir.
func DataDirFromArgs(args []string) string {
	fs := pflag.NewFlagSet("kanban", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	dir := fs.String("dir", "", "")
	_ = fs.Parse(args)
	return *dir
}
