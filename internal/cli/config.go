package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/infra/config"
	"github.com/runoshun/kanban/internal/infra/crypto"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage kanban configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))
	cmd.AddCommand(newConfigKeygenCommand())

	return cmd
}

const secretMask = "********"

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.
The JWT secret and the storage encryption key are masked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []config.ConfigInfo{
				c.ConfigManager.GetGlobalConfigInfo(),
				c.ConfigManager.GetBoardConfigInfo(),
			} {
				if info.Path == "" {
					continue
				}
				if info.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			effective := *c.AppConfig
			if effective.Server.JWTSecret != "" {
				effective.Server.JWTSecret = secretMask
			}
			if effective.Storage.EncryptionKey != "" {
				effective.Storage.EncryptionKey = secretMask
			}
			effective.Teammates = effective.Roster()
			data, err := toml.Marshal(effective)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, _ = fmt.Fprintln(w, "[Effective config]")
			_, _ = fmt.Fprint(w, string(data))
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with defaults",
		Long: `Create a commented config file with default values.

By default the board-local config (<data dir>/config.toml) is created.
Use --global to create the user-wide config instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := domain.NewDefaultConfig()

			var path string
			var err error
			if global {
				path, err = c.ConfigManager.InitGlobalConfig(cfg)
			} else {
				path, err = c.ConfigManager.InitBoardConfig(cfg)
			}
			if err != nil {
				return fmt.Errorf("init config at %s: %w", path, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Create the global config")
	return cmd
}

// newConfigKeygenCommand creates the config keygen subcommand.
func newConfigKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a storage encryption key",
		Long: `Generate a random key for encrypting board state at rest.

Put the printed value in the [storage] section:

  encryption_key = "<key>"

Existing plaintext state stays readable and is encrypted on the next write.
Losing the key makes the encrypted board unreadable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
