package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/tool"
)

// newToolCommand creates the tool command for calling a named tool.
func newToolCommand(c *app.Container) *cobra.Command {
	var payload string
	var sets []string

	cmd := &cobra.Command{
		Use:   "tool NAME",
		Short: "Call a board tool",
		Long: `Call a named board tool, exactly as an agent would over HTTP.

The payload is a JSON object given with --payload, extended or overridden
by --set key=value pairs. Values given with --set are parsed as JSON when
possible (numbers, booleans, null) and used as plain strings otherwise.

The response is printed as JSON. Its status is one of:
  ok         The command was applied
  ignored    The payload did not match the tool's schema
  unchanged  The command was valid but changed nothing
  failed     The command failed

Examples:
  kanban tool create_task --set title="Write release notes" --set columnId=todo --set assigneeId=mia
  kanban tool move_task --payload '{"id":"task-1","toColumnId":"done"}'
  kanban tool assign_task --set id=task-2 --set assigneeId=null`,
		Args: cobra.ExactArgs(1),
		// Stdout carries only the JSON response
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var resp tool.Response
			var err error
			if len(sets) == 0 && payload != "" {
				resp, err = c.Tools.CallJSON(cmd.Context(), name, []byte(payload))
			} else {
				p, perr := buildPayload(payload, sets)
				if perr != nil {
					return perr
				}
				resp, err = c.Tools.Call(cmd.Context(), name, p)
			}
			if err != nil {
				return err
			}

			if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if resp.Status == tool.StatusFailed {
				return fmt.Errorf("%s failed: %s", name, resp.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "JSON object payload")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Payload field as key=value (repeatable)")
	return cmd
}

// buildPayload merges the --payload object with --set pairs.
func buildPayload(raw string, sets []string) (tool.Payload, error) {
	p := tool.Payload{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("parse --payload: %w", err)
		}
	}
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", kv)
		}
		p[strings.TrimSpace(key)] = parseSetValue(value)
	}
	return p, nil
}

// parseSetValue decodes JSON scalars and falls back to the raw string.
func parseSetValue(value string) any {
	var v any
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return value
	}
	switch v.(type) {
	case map[string]any, []any:
		return value
	}
	return v
}

// newToolsCommand creates the tools command for listing tool definitions.
func newToolsCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List board tools",
		Long:  `List every tool with its payload fields. Use --json for the machine-readable schema.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs := c.Tools.Definitions()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), defs)
			}
			return printDefinitions(cmd.OutOrStdout(), defs)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printDefinitions(out io.Writer, defs []tool.Definition) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, def := range defs {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", def.Name, def.Description)
		for _, p := range def.Props {
			flags := p.Type
			if p.Required {
				flags += ", required"
			}
			if p.Nullable {
				flags += ", nullable"
			}
			_, _ = fmt.Fprintf(w, "  %s\t(%s) %s\n", p.Name, flags, p.Description)
		}
	}
	return w.Flush()
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
