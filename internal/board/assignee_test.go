package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/testutil"
)

func rosterWithEmails() []domain.Teammate {
	roster := domain.DefaultRoster()
	for i := range roster {
		roster[i].Email = roster[i].ID + "@voix.demo"
	}
	return roster
}

func TestStore_ResolveAssignee_Roster(t *testing.T) {
	roster := rosterWithEmails()
	s := New(Options{State: testutil.NewMockStateStore(), IDs: testutil.NewSequentialIDs(), Roster: roster})

	for _, m := range roster {
		for _, input := range []string{m.ID, m.Name, strings.ToUpper(m.Email), "  " + m.Email + "  ", strings.ToLower(m.Name)} {
			got, err := s.ResolveAssignee(input)
			require.NoError(t, err, input)
			assert.Equal(t, m.ID, got, input)
		}
	}
}

func TestStore_ResolveAssignee_Tokens(t *testing.T) {
	s, _, _ := newTestStore(t)

	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "me", want: "leo"},
		{input: "ME", want: "leo"},
		{input: "current_user", want: "leo"},
		{input: "Current_User", want: "leo"},
		{input: "", want: ""},
		{input: domain.UnassignedFilter, want: ""},
		{input: "  leo  ", want: "leo"},
		{input: "   ", wantErr: domain.ErrUnresolvedAssignee},
		{input: "  " + domain.UnassignedFilter + " ", wantErr: domain.ErrUnresolvedAssignee},
		{input: "ghost", wantErr: domain.ErrUnresolvedAssignee},
	}
	for _, tt := range tests {
		got, err := s.ResolveAssignee(tt.input)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestStore_AssignTask(t *testing.T) {
	s, state, _ := newTestStore(t)

	require.NoError(t, s.AssignTask("task-3", "Kai Müller"))

	task, _ := s.Task("task-3")
	assert.Equal(t, "kai", task.AssigneeID)
	assert.Equal(t, 1, state.Writes())
}

func TestStore_AssignTask_BlankKeepsAssignee(t *testing.T) {
	s, state, _ := newTestStore(t)

	err := s.AssignTask("task-1", "   ")

	assert.ErrorIs(t, err, domain.ErrUnresolvedAssignee)
	task, _ := s.Task("task-1")
	assert.Equal(t, "ava", task.AssigneeID)
	assert.Equal(t, 0, state.Writes())
}

func TestStore_AssignTask_NoChange(t *testing.T) {
	s, state, _ := newTestStore(t)

	assert.ErrorIs(t, s.AssignTask("task-1", "ava"), domain.ErrNoChange)
	assert.ErrorIs(t, s.AssignTask("task-1", "AVA PATEL"), domain.ErrNoChange)
	assert.Equal(t, 0, state.Writes())
}

func TestStore_AssignTask_Unresolved(t *testing.T) {
	s, state, logger := newTestStore(t)

	err := s.AssignTask("task-3", "ghost")

	assert.ErrorIs(t, err, domain.ErrUnresolvedAssignee)
	task, _ := s.Task("task-3")
	assert.Equal(t, "mia", task.AssigneeID)
	assert.Equal(t, 0, state.Writes())
	assert.Equal(t, 1, logger.Count("WARN"))
}

func TestStore_AssignTask_UnknownTask(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.ErrorIs(t, s.AssignTask("missing", "ava"), domain.ErrTaskNotFound)
}

func TestStore_UnassignTask(t *testing.T) {
	s, state, _ := newTestStore(t)

	require.NoError(t, s.UnassignTask("task-1"))
	assert.ErrorIs(t, s.UnassignTask("task-1"), domain.ErrNoChange)
	assert.ErrorIs(t, s.AssignTask("task-1", domain.UnassignedFilter), domain.ErrNoChange)

	task, _ := s.Task("task-1")
	assert.Empty(t, task.AssigneeID)
	assert.Equal(t, 1, state.Writes())
}

func TestStore_AssignTask_CurrentUserOutsideRoster(t *testing.T) {
	user := domain.CurrentUser{ID: "guest", Name: "Guest User"}
	s := New(Options{State: testutil.NewMockStateStore(), IDs: testutil.NewSequentialIDs(), User: &user})

	assert.ErrorIs(t, s.AssignTask("task-1", "me"), domain.ErrUnresolvedAssignee)
}
