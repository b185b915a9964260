package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
)

// newListCommand creates the list command for printing the board.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Search   string
		Assignee string
		Mine     bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks by column",
		Long: `List the board's tasks grouped by column.

Filters match the UI: --search matches title and description, --assignee
takes a teammate id, name or email ("unassigned" for tasks without one),
and --mine shows only your tasks.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := board.SetFiltersInput{}
			if cmd.Flags().Changed("search") {
				in.SearchQuery = &opts.Search
			}
			if cmd.Flags().Changed("assignee") {
				assignee := opts.Assignee
				if strings.EqualFold(assignee, "unassigned") {
					assignee = domain.UnassignedFilter
				}
				in.AssigneeID = &assignee
			}
			if opts.Mine {
				in.ShowOnlyMine = &opts.Mine
			}
			c.Store.SetFilters(in)

			out := cmd.OutOrStdout()
			if summary := c.Store.FilterSummary(); len(summary) > 0 {
				_, _ = fmt.Fprintf(out, "Filters: %s\n\n", strings.Join(summary, ", "))
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, g := range c.Store.VisibleTasksByColumn() {
				title := g.Column.Title
				if !g.Known {
					title = fmt.Sprintf("(missing column %s)", g.Column.ID)
				}
				_, _ = fmt.Fprintf(w, "%s (%d)\n", title, len(g.Tasks))
				for _, t := range g.Tasks {
					_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
						t.ID, t.Title, c.Store.AssigneeLabel(t.AssigneeID), domain.FormatMinutes(t.TotalMinutes))
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "\n%d task(s), %s logged\n", c.Store.FilteredCount(), domain.FormatMinutes(c.Store.TotalTimeLogged()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Search title and description")
	cmd.Flags().StringVarP(&opts.Assignee, "assignee", "a", "", "Filter by assignee")
	cmd.Flags().BoolVar(&opts.Mine, "mine", false, "Show only my tasks")
	return cmd
}

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Column      string
		Assignee    string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task at the top of the board.

An unknown or empty --column places the task in the default column. An
--assignee that does not match a teammate leaves the task unassigned.

Examples:
  kanban new --title "Write release notes"
  kanban new --title "Fix login" --column in-progress --assignee mia`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := c.Store.CreateTask(board.CreateTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				ColumnID:    opts.Column,
				AssigneeID:  opts.Assignee,
			})
			if err != nil {
				return fmt.Errorf("create task: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Task title (required)")
	cmd.Flags().StringVarP(&opts.Description, "body", "b", "", "Task description")
	cmd.Flags().StringVarP(&opts.Column, "column", "c", "", "Column id")
	cmd.Flags().StringVarP(&opts.Assignee, "assignee", "a", "", "Teammate id, name or email")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// newShowCommand creates the show command for printing context blocks.
func newShowCommand(c *app.Container) *cobra.Command {
	var block string
	var taskID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show board context",
		Long: `Show the plain-text context an agent sees: one block per task, then
the columns, assignments, interaction, profile and board_summary blocks.

Use --block to print a single block, or --task to print one task's block.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if taskID != "" {
				block = "task_" + taskID
			}
			if block != "" {
				b, ok := c.Store.ContextBlock(block)
				if !ok {
					return fmt.Errorf("unknown context block %q", block)
				}
				_, _ = fmt.Fprintln(out, b.Text)
				return nil
			}
			for _, b := range c.Store.Context() {
				_, _ = fmt.Fprintf(out, "## %s\n%s\n\n", b.Name, b.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&block, "block", "", "Context block name")
	cmd.Flags().StringVar(&taskID, "task", "", "Task id")
	return cmd
}
