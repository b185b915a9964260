package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// New Command Tests
// =============================================================================

func TestNewNewCommand_CreateTask(t *testing.T) {
	// Setup
	c, state := newTestContainer(t)

	cmd := newNewCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--title", "Test task", "--body", "Details", "--column", "done", "--assignee", "Mia"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Created task task-new1")

	task, ok := c.Store.Task("task-new1")
	require.True(t, ok)
	assert.Equal(t, "Test task", task.Title)
	assert.Equal(t, "Details", task.Description)
	assert.Equal(t, "done", task.ColumnID)
	assert.Equal(t, "mia", task.AssigneeID)
	assert.Positive(t, state.Writes())
}

func TestNewNewCommand_RequiresTitle(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newNewCommand(c)
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
	assert.Len(t, c.Store.Tasks(), 4)
}

func TestNewNewCommand_BlankTitle(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newNewCommand(c)
	cmd.SetArgs([]string{"--title", "   "})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "create task")
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestNewListCommand(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newListCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "To Do (1)")
	assert.Contains(t, out, "In Progress (2)")
	assert.Contains(t, out, "task-1")
	assert.Contains(t, out, "Design landing page")
	assert.Contains(t, out, "4 task(s), 1h 15m logged")
	assert.NotContains(t, out, "Filters:")
}

func TestNewListCommand_Filters(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "search",
			args:    []string{"--search", "polish"},
			want:    []string{"task-4", "1 task(s)"},
			notWant: []string{"task-1"},
		},
		{
			name:    "assignee by name",
			args:    []string{"--assignee", "Mia"},
			want:    []string{"task-3"},
			notWant: []string{"task-2"},
		},
		{
			name:    "mine",
			args:    []string{"--mine"},
			want:    []string{"task-2", "Filters:"},
			notWant: []string{"task-3"},
		},
		{
			name: "unassigned",
			args: []string{"--assignee", "unassigned"},
			want: []string{"0 task(s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t)

			cmd := newListCommand(c)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())

			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

// =============================================================================
// Show Command Tests
// =============================================================================

func TestNewShowCommand(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newShowCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "## task_task-1")
	assert.Contains(t, out, "## columns")
	assert.Contains(t, out, "## board_summary")
}

func TestNewShowCommand_Block(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newShowCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--task", "task-1"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Task ID: task-1")
	assert.NotContains(t, buf.String(), "##")

	unknown := newShowCommand(c)
	unknown.SetArgs([]string{"--block", "nope"})
	assert.ErrorContains(t, unknown.Execute(), `unknown context block "nope"`)
}
