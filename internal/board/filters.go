package board

import (
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// SetFiltersInput contains filter changes. Nil fields are left unchanged.
type SetFiltersInput struct {
	SearchQuery  *string
	AssigneeID   *string // "__unassigned__" (any case), "", "all", or an assignee to normalize
	ShowOnlyMine *bool
}

// ColumnGroup is one column and its visible tasks.
type ColumnGroup struct {
	Column domain.Column
	Tasks  []domain.Task
	Known  bool // false for tasks whose column no longer exists
}

// ColumnGroups is the visible board in column order.
type ColumnGroups []ColumnGroup

// Get returns the tasks of the group with the given column id.
func (g ColumnGroups) Get(columnID string) []domain.Task {
	for _, group := range g {
		if group.Column.ID == columnID {
			return group.Tasks
		}
	}
	return nil
}

// SetFilters updates the filter state. An assignee that cannot be resolved
// resets the assignee filter to all.
func (s *Store) SetFilters(in SetFiltersInput) {
	_ = s.mutate("set_filters", func() (bool, error) {
		if in.SearchQuery != nil {
			s.filters.SearchQuery = *in.SearchQuery
		}
		if in.AssigneeID != nil {
			s.filters.AssigneeFilter = s.assigneeFilterFor(*in.AssigneeID)
		}
		if in.ShowOnlyMine != nil {
			s.filters.ShowOnlyMine = *in.ShowOnlyMine
		}
		return false, nil
	})
}

func (s *Store) assigneeFilterFor(raw string) string {
	switch {
	case strings.EqualFold(raw, domain.UnassignedFilter):
		return domain.UnassignedFilter
	case raw == "" || raw == "all":
		return ""
	}
	id, err := s.resolveAssignee(raw)
	if err != nil {
		return ""
	}
	return id
}

// ClearFilters resets search, assignee filter and mine-only.
func (s *Store) ClearFilters() {
	_ = s.mutate("clear_filters", func() (bool, error) {
		s.filters = domain.FilterState{}
		return false, nil
	})
}

// Filters returns the current filter state.
func (s *Store) Filters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// HasActiveFilters reports whether any filter restricts the board.
func (s *Store) HasActiveFilters() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.IsActive()
}

// FilterSummary describes the active filters.
func (s *Store) FilterSummary() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Summary(s.roster)
}

func (s *Store) filteredTasks() []domain.Task {
	out := make([]domain.Task, 0, len(s.tasks))
	for i := range s.tasks {
		if domain.Matches(&s.tasks[i], s.filters, s.user.ID) {
			out = append(out, s.tasks[i])
		}
	}
	return out
}

// FilteredTasks returns the tasks passing the filters, in global order.
func (s *Store) FilteredTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneTasks(s.filteredTasks())
}

// FilteredCount returns the number of tasks passing the filters.
func (s *Store) FilteredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filteredTasks())
}

func (s *Store) visibleTasksByColumn() ColumnGroups {
	groups := make(ColumnGroups, len(s.columns))
	index := make(map[string]int, len(s.columns))
	for i, col := range s.columns {
		groups[i] = ColumnGroup{Column: col, Tasks: []domain.Task{}, Known: true}
		index[col.ID] = i
	}
	for _, task := range s.filteredTasks() {
		i, ok := index[task.ColumnID]
		if !ok {
			groups = append(groups, ColumnGroup{Column: domain.Column{ID: task.ColumnID, Title: task.ColumnID}})
			i = len(groups) - 1
			index[task.ColumnID] = i
		}
		groups[i].Tasks = append(groups[i].Tasks, task.Clone())
	}
	return groups
}

// VisibleTasksByColumn groups the filtered tasks by column. Every column is
// present, possibly empty; tasks in unknown columns are grouped after.
func (s *Store) VisibleTasksByColumn() ColumnGroups {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleTasksByColumn()
}

// orderedTaskIDs flattens the visible tasks of known columns in board order.
func (s *Store) orderedTaskIDs() []string {
	var ids []string
	for _, group := range s.visibleTasksByColumn() {
		if !group.Known {
			continue
		}
		for _, task := range group.Tasks {
			ids = append(ids, task.ID)
		}
	}
	return ids
}

// OrderedTaskIDs returns the visible task ids in column-grouped order.
func (s *Store) OrderedTaskIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderedTaskIDs()
}

func (s *Store) totalTimeLogged() int {
	total := 0
	for i := range s.tasks {
		total += s.tasks[i].TotalMinutes
	}
	return total
}

// TotalTimeLogged sums totalMinutes over every task.
func (s *Store) TotalTimeLogged() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalTimeLogged()
}

func (s *Store) countTasks(pred func(*domain.Task) bool) int {
	n := 0
	for i := range s.tasks {
		if pred(&s.tasks[i]) {
			n++
		}
	}
	return n
}

func (s *Store) myOpen() int {
	return s.countTasks(func(t *domain.Task) bool {
		return t.AssigneeID == s.user.ID && t.ColumnID != domain.DoneColumnID
	})
}

func (s *Store) myCompleted() int {
	return s.countTasks(func(t *domain.Task) bool {
		return t.AssigneeID == s.user.ID && t.ColumnID == domain.DoneColumnID
	})
}

func (s *Store) doneCount() int {
	return s.countTasks(func(t *domain.Task) bool { return t.ColumnID == domain.DoneColumnID })
}

// MyOpenTasksCount counts the current user's tasks outside the done column.
func (s *Store) MyOpenTasksCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.myOpen()
}

// MyCompletedTasksCount counts the current user's tasks in the done column.
func (s *Store) MyCompletedTasksCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.myCompleted()
}

// DoneTasksCount counts tasks in the done column.
func (s *Store) DoneTasksCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doneCount()
}

// UpcomingTasksCount counts tasks outside the done column.
func (s *Store) UpcomingTasksCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks) - s.doneCount()
}

// MyTasksPreview returns the first few tasks assigned to the current user.
func (s *Store) MyTasksPreview() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for i := range s.tasks {
		if len(out) == domain.PreviewLimit {
			break
		}
		if s.tasks[i].AssigneeID == s.user.ID {
			out = append(out, s.tasks[i].Clone())
		}
	}
	return out
}

// ProfileStats summarizes the current user's workload.
func (s *Store) ProfileStats() domain.ProfileStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ProfileStats{
		Open:       s.myOpen(),
		Closed:     s.myCompleted(),
		TotalTime:  domain.FormatMinutes(s.totalTimeLogged()),
		DoneColumn: s.doneCount(),
	}
}

// AssigneeLabel returns "Unassigned", the teammate name, or "Unknown (<id>)".
func (s *Store) AssigneeLabel(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.AssigneeLabel(s.roster, id)
}

// CurrentUserInitials returns up to two initials of the current user's name.
func (s *Store) CurrentUserInitials() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Initials(s.user.Name)
}
