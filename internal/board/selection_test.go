package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
)

func TestStore_Click(t *testing.T) {
	tests := []struct {
		name       string
		clicks     []click
		wantSel    []string
		wantAnchor string
	}{
		{
			name:       "plain click replaces",
			clicks:     []click{{"task-1", domain.ClickReplace}, {"task-3", domain.ClickReplace}},
			wantSel:    []string{"task-3"},
			wantAnchor: "task-3",
		},
		{
			name:       "toggle adds and anchors",
			clicks:     []click{{"task-1", domain.ClickReplace}, {"task-3", domain.ClickToggle}},
			wantSel:    []string{"task-1", "task-3"},
			wantAnchor: "task-3",
		},
		{
			name:       "toggle removes without moving anchor",
			clicks:     []click{{"task-1", domain.ClickReplace}, {"task-3", domain.ClickToggle}, {"task-1", domain.ClickToggle}},
			wantSel:    []string{"task-3"},
			wantAnchor: "task-3",
		},
		{
			name:       "range forward",
			clicks:     []click{{"task-1", domain.ClickReplace}, {"task-3", domain.ClickRange}},
			wantSel:    []string{"task-1", "task-2", "task-3"},
			wantAnchor: "task-3",
		},
		{
			name:       "range backward",
			clicks:     []click{{"task-4", domain.ClickReplace}, {"task-2", domain.ClickRange}},
			wantSel:    []string{"task-2", "task-3", "task-4"},
			wantAnchor: "task-4",
		},
		{
			name:       "range without anchor selects clicked",
			clicks:     []click{{"task-2", domain.ClickRange}},
			wantSel:    []string{"task-2"},
			wantAnchor: "task-2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, state, _ := newTestStore(t)

			for _, c := range tt.clicks {
				require.NoError(t, s.Click(c.id, c.mode))
			}

			ui := s.Interaction()
			assert.Equal(t, tt.wantSel, ui.SelectedTaskIDs)
			assert.Equal(t, tt.wantAnchor, ui.LastSelectedTaskID)
			assert.Equal(t, 0, state.Writes())
		})
	}
}

type click struct {
	id   string
	mode domain.ClickMode
}

func TestStore_Click_RangeUsesVisibleColumnOrder(t *testing.T) {
	s, _, _ := newTestStore(t)
	// Global order puts task-2 after task-4; column order does not.
	require.NoError(t, s.MoveTask(MoveTaskInput{ID: "task-2", ToColumnID: "in-progress"}))
	require.Equal(t, []string{"task-1", "task-3", "task-4", "task-2"}, taskIDs(s.Tasks()))

	require.NoError(t, s.Click("task-1", domain.ClickReplace))
	require.NoError(t, s.Click("task-2", domain.ClickRange))

	assert.Equal(t, []string{"task-1", "task-3", "task-2"}, s.Interaction().SelectedTaskIDs)
}

func TestStore_Click_RangeAnchorFilteredOut(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Click("task-1", domain.ClickReplace))
	s.SetFilters(SetFiltersInput{AssigneeID: ptr("mia")})

	require.NoError(t, s.Click("task-3", domain.ClickRange))

	assert.Equal(t, []string{"task-3"}, s.Interaction().SelectedTaskIDs)
}

func TestStore_Click_UnknownTask(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.ErrorIs(t, s.Click("missing", domain.ClickReplace), domain.ErrTaskNotFound)
}

func TestStore_Click_PlainClosesContextMenu(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.OpenContextMenu("task-1"))

	require.NoError(t, s.Click("task-2", domain.ClickReplace))

	assert.False(t, s.Interaction().ContextMenu.Open)
}

func TestStore_Hover(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.SetHover("task-2")
	assert.Equal(t, "task-2", s.Interaction().HoveredTaskID)

	s.ClearHover()
	assert.Empty(t, s.Interaction().HoveredTaskID)
}

func TestStore_SetTextSelection(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.SetTextSelection("  landing page  ")
	ui := s.Interaction()
	assert.True(t, ui.TextSelectionOn)
	assert.Equal(t, "landing page", ui.SelectedText)

	s.SetTextSelection(strings.Repeat("ü", 400))
	assert.Equal(t, domain.MaxSelectedTextLength, len([]rune(s.Interaction().SelectedText)))

	s.SetTextSelection("   ")
	ui = s.Interaction()
	assert.False(t, ui.TextSelectionOn)
	assert.Empty(t, ui.SelectedText)
}

func TestStore_TaskModal(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.ErrorIs(t, s.OpenTaskModal("missing"), domain.ErrTaskNotFound)
	assert.Empty(t, s.Interaction().ActiveModalTaskID)

	require.NoError(t, s.OpenTaskModal("task-3"))
	task, ok := s.ActiveTask()
	require.True(t, ok)
	assert.Equal(t, "task-3", task.ID)

	s.CloseTaskModal()
	_, ok = s.ActiveTask()
	assert.False(t, ok)
}

func TestStore_Drag_UnselectedTaskBecomesSelection(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Click("task-1", domain.ClickReplace))

	require.NoError(t, s.StartDrag("task-3"))

	ui := s.Interaction()
	assert.Equal(t, []string{"task-3"}, ui.SelectedTaskIDs)
	assert.Equal(t, []string{"task-3"}, ui.DraggedTaskIDs)
}

func TestStore_Drop_PreservesGlobalOrder(t *testing.T) {
	s, state, _ := newTestStore(t)
	require.NoError(t, s.Click("task-3", domain.ClickReplace))
	require.NoError(t, s.Click("task-1", domain.ClickToggle))
	require.NoError(t, s.StartDrag("task-1"))
	s.DragOver("done")
	assert.Equal(t, "done", s.Interaction().DragOverColumnID)

	require.NoError(t, s.Drop("done"))

	assert.Equal(t, []string{"task-4", "task-1", "task-3"}, taskIDs(s.VisibleTasksByColumn().Get("done")))
	ui := s.Interaction()
	assert.Empty(t, ui.DraggedTaskIDs)
	assert.Empty(t, ui.DragOverColumnID)
	assert.Equal(t, 1, state.Writes())
}

func TestStore_Drop_UsesSelectionWithoutDrag(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.ErrorIs(t, s.Drop("done"), domain.ErrNothingSelected)

	require.NoError(t, s.Click("task-2", domain.ClickReplace))
	assert.ErrorIs(t, s.Drop("missing"), domain.ErrColumnNotFound)
	require.NoError(t, s.Drop("done"))

	task, _ := s.Task("task-2")
	assert.Equal(t, "done", task.ColumnID)
}

func TestStore_DragOverAndLeave(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.DragOver("done")
	assert.Empty(t, s.Interaction().DragOverColumnID, "no drag in progress")

	require.NoError(t, s.StartDrag("task-1"))
	s.DragOver("done")
	s.DragLeave("todo")
	assert.Equal(t, "done", s.Interaction().DragOverColumnID)
	s.DragLeave("done")
	assert.Empty(t, s.Interaction().DragOverColumnID)

	s.EndDrag()
	assert.Empty(t, s.Interaction().DraggedTaskIDs)
}

func TestStore_ColumnDrag(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.ErrorIs(t, s.DropColumn("todo"), domain.ErrNoChange)
	assert.ErrorIs(t, s.StartColumnDrag("missing"), domain.ErrColumnNotFound)

	require.NoError(t, s.StartColumnDrag("done"))
	assert.ErrorIs(t, s.DropColumn("done"), domain.ErrNoChange)
	assert.ErrorIs(t, s.DropColumn("missing"), domain.ErrColumnNotFound)
	require.NoError(t, s.DropColumn("todo"))

	assert.Equal(t, []string{"done", "todo", "in-progress"}, columnIDs(s.Columns()))
	assert.Empty(t, s.Interaction().DraggedColumnID)

	require.NoError(t, s.StartColumnDrag("todo"))
	s.EndColumnDrag()
	assert.Empty(t, s.Interaction().DraggedColumnID)
}
