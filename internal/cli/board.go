package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/infra/boardfile"
)

// errSyncUnsupported is returned by sync for backends without a remote.
var errSyncUnsupported = errors.New("sync requires the git storage backend")

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export columns and tasks",
		Long: `Export the board's columns and tasks as YAML (default) or JSON.

Without -o the export is written to stdout. With -o and no --format, the
format follows the file extension.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			f, err := exportFormat(format, output)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer func() {
					if cerr := file.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = file
			}

			if err := boardfile.Encode(w, c.Store.State(), f, c.Clock.Now()); err != nil {
				return err
			}
			if output != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported board to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

func exportFormat(format, output string) (string, error) {
	if format == "" && output != "" {
		return boardfile.FormatFromPath(output)
	}
	return boardfile.ParseFormat(format)
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the board from an export",
		Long: `Replace the board's columns and tasks with the contents of an export file.

The format follows the file extension unless --format is given. The file is
validated first; on any error the board is left unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := exportFormat(format, path)
			if err != nil {
				return err
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer func() { _ = file.Close() }()

			state, err := boardfile.Decode(file, f)
			if err != nil {
				return err
			}
			if err := c.Store.ReplaceState(state); err != nil {
				return fmt.Errorf("replace board: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d column(s) and %d task(s)\n", len(c.Store.Columns()), len(state.Tasks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: yaml or json")
	return cmd
}

// newResetCommand creates the reset command.
func newResetCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the sample board",
		Long:  `Replace every column and task with the default columns and sample tasks.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return errors.New("reset discards every task; pass --force to confirm")
			}
			if err := c.Store.Reset(); err != nil {
				return fmt.Errorf("reset board: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Board reset to defaults")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm discarding the current board")
	return cmd
}

// newSyncCommand creates the sync command for git-backed boards.
func newSyncCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Exchange board state with the git remote",
		Long: `Push or fetch board state refs to and from the "origin" remote.
Only available with the git storage backend.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Push board state to origin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, ok := c.Syncer()
			if !ok {
				return errSyncUnsupported
			}
			if err := s.Push(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Pushed board state")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Fetch board state from origin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, ok := c.Syncer()
			if !ok {
				return errSyncUnsupported
			}
			if err := s.Fetch(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Fetched board state")
			return nil
		},
	})
	return cmd
}
