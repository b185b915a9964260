package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/testutil"
)

var fixedNow = time.Date(2025, 5, 12, 14, 30, 0, 0, time.UTC)

// newTestStore returns a store on the default board backed by an in-memory state store.
func newTestStore(t *testing.T) (*Store, *testutil.MockStateStore, *testutil.RecordingLogger) {
	t.Helper()
	state := testutil.NewMockStateStore()
	logger := &testutil.RecordingLogger{}
	s := New(Options{
		State:  state,
		Clock:  &testutil.MockClock{NowTime: fixedNow},
		IDs:    testutil.NewSequentialIDs(),
		Logger: logger,
	})
	return s, state, logger
}

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
	}
	return ids
}

func columnIDs(cols []domain.Column) []string {
	ids := make([]string, len(cols))
	for i := range cols {
		ids[i] = cols[i].ID
	}
	return ids
}

func ptr[T any](v T) *T { return &v }

func TestNew_DefaultBoard(t *testing.T) {
	s, state, _ := newTestStore(t)

	assert.Equal(t, []string{"todo", "in-progress", "done"}, columnIDs(s.Columns()))
	assert.Equal(t, []string{"task-1", "task-2", "task-3", "task-4"}, taskIDs(s.Tasks()))
	assert.Len(t, s.Teammates(), 14)
	assert.Equal(t, "leo", s.CurrentUser().ID)
	assert.Equal(t, 0, state.Writes(), "loading must not write")
}

func TestNew_Defaults(t *testing.T) {
	s := New(Options{})

	assert.Len(t, s.Tasks(), 4)
	id, err := s.CreateTask(CreateTaskInput{Title: "Works without a backend"})
	require.NoError(t, err)
	assert.Regexp(t, `^task-[0-9a-z]+$`, id)
}

func TestStore_Subscribe(t *testing.T) {
	s, _, _ := newTestStore(t)
	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) {
		// Subscribers run outside the lock and may read the store.
		_ = s.Tasks()
		changes = append(changes, c)
	})

	_, err := s.CreateTask(CreateTaskInput{Title: "Watch me"})
	require.NoError(t, err)
	s.SetHover("task-1")
	_, err = s.CreateTask(CreateTaskInput{Title: "  "})
	require.ErrorIs(t, err, domain.ErrEmptyTitle)

	unsubscribe()
	s.ClearHover()

	require.Len(t, changes, 2)
	assert.Equal(t, Change{Command: "create_task", Persisted: true}, changes[0])
	assert.Equal(t, Change{Command: "hover_task", Persisted: false}, changes[1])
}

func TestStore_Snapshot(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.SetFilters(SetFiltersInput{SearchQuery: ptr("  VOIX ")})
	require.NoError(t, s.Click("task-2", domain.ClickReplace))
	s.SetHover("task-3")

	snap := s.Snapshot()

	assert.Len(t, snap.Tasks, 4)
	assert.Equal(t, []string{"task-2"}, taskIDs(snap.FilteredTasks))
	assert.Equal(t, "voix", snap.Filters.SearchQuery)
	assert.Equal(t, []string{"task-2"}, snap.SelectedTaskIDs)
	require.NotNil(t, snap.HoveredTaskID)
	assert.Equal(t, "task-3", *snap.HoveredTaskID)
	assert.Nil(t, snap.ActiveModalTaskID)
	assert.Len(t, snap.Teammates, 14)
}
