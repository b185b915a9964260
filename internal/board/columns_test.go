package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
)

func TestStore_AddColumn(t *testing.T) {
	s, state, _ := newTestStore(t)

	id := s.AddColumn(AddColumnInput{})

	assert.Equal(t, "col-new1", id)
	cols := s.Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, domain.Column{ID: "col-new1", Title: "Column 4", Color: "#a855f7"}, cols[3])
	assert.Equal(t, 1, state.Writes())
}

func TestStore_AddColumn_Position(t *testing.T) {
	tests := []struct {
		position *int
		name     string
		want     []string
	}{
		{name: "front", position: ptr(0), want: []string{"col-new1", "todo", "in-progress", "done"}},
		{name: "middle", position: ptr(2), want: []string{"todo", "in-progress", "col-new1", "done"}},
		{name: "end", position: ptr(3), want: []string{"todo", "in-progress", "done", "col-new1"}},
		{name: "out of range appends", position: ptr(9), want: []string{"todo", "in-progress", "done", "col-new1"}},
		{name: "negative appends", position: ptr(-1), want: []string{"todo", "in-progress", "done", "col-new1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestStore(t)

			s.AddColumn(AddColumnInput{Title: "  Review ", Color: "#123456", Position: tt.position})

			cols := s.Columns()
			assert.Equal(t, tt.want, columnIDs(cols))
			for _, c := range cols {
				if c.ID == "col-new1" {
					assert.Equal(t, "Review", c.Title)
					assert.Equal(t, "#123456", c.Color)
				}
			}
		})
	}
}

func TestStore_RenameColumn(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.RenameColumn("todo", "  Backlog "))
	require.NoError(t, s.RenameColumn("done", "   "))
	assert.ErrorIs(t, s.RenameColumn("missing", "x"), domain.ErrColumnNotFound)

	cols := s.Columns()
	assert.Equal(t, "Backlog", cols[0].Title)
	assert.Equal(t, domain.UntitledColumn, cols[2].Title)
}

func TestStore_SetColumnColor(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.SetColumnColor("todo", "#000000"))
	require.NoError(t, s.SetColumnColor("in-progress", ""))
	assert.ErrorIs(t, s.SetColumnColor("missing", "#fff"), domain.ErrColumnNotFound)

	cols := s.Columns()
	assert.Equal(t, "#000000", cols[0].Color)
	assert.Equal(t, "#0ea5e9", cols[1].Color)
}

func TestStore_RemoveColumn_ReassignsTasks(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.RemoveColumn("in-progress"))

	assert.Equal(t, []string{"todo", "done"}, columnIDs(s.Columns()))
	assert.Len(t, s.Tasks(), 4)
	for _, id := range []string{"task-2", "task-3"} {
		task, _ := s.Task(id)
		assert.Equal(t, "todo", task.ColumnID)
	}
}

func TestStore_RemoveColumn_FirstColumnFallsBackToNewFirst(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.RemoveColumn("todo"))

	task, _ := s.Task("task-1")
	assert.Equal(t, "in-progress", task.ColumnID)
}

func TestStore_RemoveColumn_LastColumn(t *testing.T) {
	s, state, _ := newTestStore(t)
	require.NoError(t, s.RemoveColumn("todo"))
	require.NoError(t, s.RemoveColumn("done"))
	writes := state.Writes()

	err := s.RemoveColumn("in-progress")

	assert.ErrorIs(t, err, domain.ErrLastColumn)
	assert.Equal(t, []string{"in-progress"}, columnIDs(s.Columns()))
	assert.Len(t, s.Tasks(), 4)
	assert.Equal(t, writes, state.Writes())
	assert.ErrorIs(t, s.RemoveColumn("missing"), domain.ErrLastColumn)
}

func TestStore_RemoveColumn_Unknown(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.ErrorIs(t, s.RemoveColumn("missing"), domain.ErrColumnNotFound)
	assert.Len(t, s.Columns(), 3)
}

func TestStore_ReorderColumn(t *testing.T) {
	tests := []struct {
		id      string
		want    []string
		toIndex int
	}{
		{id: "done", toIndex: 0, want: []string{"done", "todo", "in-progress"}},
		{id: "todo", toIndex: 1, want: []string{"in-progress", "todo", "done"}},
		{id: "todo", toIndex: 99, want: []string{"in-progress", "done", "todo"}},
		{id: "done", toIndex: -3, want: []string{"done", "todo", "in-progress"}},
		{id: "in-progress", toIndex: 1, want: []string{"todo", "in-progress", "done"}},
	}
	for _, tt := range tests {
		s, _, _ := newTestStore(t)

		require.NoError(t, s.ReorderColumn(tt.id, tt.toIndex))

		assert.Equal(t, tt.want, columnIDs(s.Columns()), "%s -> %d", tt.id, tt.toIndex)
	}
}

func TestStore_ReorderColumn_Unknown(t *testing.T) {
	s, state, _ := newTestStore(t)

	assert.ErrorIs(t, s.ReorderColumn("missing", 0), domain.ErrColumnNotFound)
	assert.Equal(t, 0, state.Writes())
}
