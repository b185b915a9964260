package board

import (
	"fmt"
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// CreateTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	Title       string // Required; trimmed
	Description string // Optional; trimmed
	ColumnID    string // Unknown or empty falls back to the default column
	AssigneeID  string // Normalized; unresolved means unassigned
}

// UpdateTaskInput contains the parameters for patching a task.
// Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string // Trimmed
	ColumnID    *string // Unknown column ids are ignored
	AssigneeID  *string // Present = normalized; "" clears
	ID          string
}

// MoveTaskInput contains the parameters for moving a task.
type MoveTaskInput struct {
	Position   *int // Nil or negative appends to the end of the global order
	ID         string
	ToColumnID string // Unknown or empty keeps the current column
}

// CreateTask adds a task at the front of the board and selects it.
func (s *Store) CreateTask(in CreateTaskInput) (string, error) {
	var id string
	err := s.mutate("create_task", func() (bool, error) {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			return false, domain.ErrEmptyTitle
		}
		assignee, err := s.resolveAssignee(in.AssigneeID)
		if err != nil {
			s.logger.Warn(catAssign, fmt.Sprintf("create: ignoring unresolved assignee %q", in.AssigneeID))
			assignee = ""
		}
		task := domain.Task{
			ID:          s.ids.NewID("task"),
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			ColumnID:    s.fallbackColumn(in.ColumnID),
			AssigneeID:  assignee,
			TimeEntries: []domain.TimeEntry{},
			Comments:    []domain.Comment{},
		}
		s.tasks = append([]domain.Task{task}, s.tasks...)
		s.setSelection([]string{task.ID})
		id = task.ID
		s.logger.Debug(catStore, fmt.Sprintf("created task %s in %s", task.ID, task.ColumnID))
		return true, nil
	})
	return id, err
}

// fallbackColumn returns columnID when it exists, else "todo" when present,
// else the first column.
func (s *Store) fallbackColumn(columnID string) string {
	if s.hasColumn(columnID) {
		return columnID
	}
	if s.hasColumn(domain.DefaultColumnID) {
		return domain.DefaultColumnID
	}
	return s.columns[0].ID
}

// UpdateTask applies a partial patch. An unresolved assignee rejects the whole patch.
func (s *Store) UpdateTask(in UpdateTaskInput) error {
	return s.mutate("update_task", func() (bool, error) {
		i := s.taskIndex(in.ID)
		if i < 0 {
			return false, fmt.Errorf("update %q: %w", in.ID, domain.ErrTaskNotFound)
		}
		var assignee string
		if in.AssigneeID != nil {
			var err error
			if assignee, err = s.resolveAssignee(*in.AssigneeID); err != nil {
				s.logger.Warn(catAssign, fmt.Sprintf("unable to interpret assignee %q", *in.AssigneeID))
				return false, err
			}
		}

		task := &s.tasks[i]
		changed := false
		if in.Title != nil {
			if title := strings.TrimSpace(*in.Title); title != "" && title != task.Title {
				task.Title = title
				changed = true
			}
		}
		if in.Description != nil {
			if desc := strings.TrimSpace(*in.Description); desc != task.Description {
				task.Description = desc
				changed = true
			}
		}
		if in.ColumnID != nil && s.hasColumn(*in.ColumnID) && *in.ColumnID != task.ColumnID {
			task.ColumnID = *in.ColumnID
			changed = true
		}
		if in.AssigneeID != nil && assignee != task.AssigneeID {
			task.AssigneeID = assignee
			changed = true
		}
		if !changed {
			return false, domain.ErrNoChange
		}
		return true, nil
	})
}

// MoveTask removes a task from the global order and reinserts it, optionally
// in another column. A non-negative position makes it the Nth task of its column.
func (s *Store) MoveTask(in MoveTaskInput) error {
	return s.mutate("move_task", func() (bool, error) {
		if !s.moveTask(in) {
			return false, fmt.Errorf("move %q: %w", in.ID, domain.ErrTaskNotFound)
		}
		return true, nil
	})
}

func (s *Store) moveTask(in MoveTaskInput) bool {
	idx := s.taskIndex(in.ID)
	if idx < 0 {
		return false
	}
	task := s.tasks[idx]
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	if s.hasColumn(in.ToColumnID) {
		task.ColumnID = in.ToColumnID
	}

	insertAt := len(s.tasks)
	if in.Position != nil && *in.Position >= 0 {
		count := 0
		for i := range s.tasks {
			if s.tasks[i].ColumnID != task.ColumnID {
				continue
			}
			if count == *in.Position {
				insertAt = i
				break
			}
			count++
		}
	}
	s.tasks = append(s.tasks[:insertAt:insertAt], append([]domain.Task{task}, s.tasks[insertAt:]...)...)
	return true
}

// DeleteTask removes a task and clears every interaction reference to it.
func (s *Store) DeleteTask(id string) error {
	return s.mutate("delete_task", func() (bool, error) {
		if !s.deleteTask(id) {
			return false, fmt.Errorf("delete %q: %w", id, domain.ErrTaskNotFound)
		}
		return true, nil
	})
}

func (s *Store) deleteTask(id string) bool {
	idx := s.taskIndex(id)
	if idx < 0 {
		return false
	}
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	s.ui.ForgetTask(id)
	return true
}

// AddTimeEntry appends a time entry and adds minutes to the task total.
func (s *Store) AddTimeEntry(taskID string, minutes int, note string) error {
	return s.mutate("add_time_entry", func() (bool, error) {
		i := s.taskIndex(taskID)
		if i < 0 {
			return false, fmt.Errorf("add time entry to %q: %w", taskID, domain.ErrTaskNotFound)
		}
		if minutes <= 0 {
			return false, domain.ErrInvalidMinutes
		}
		task := &s.tasks[i]
		task.TimeEntries = append(task.TimeEntries, domain.TimeEntry{
			ID:        s.ids.NewID("time"),
			Minutes:   minutes,
			Note:      note,
			CreatedAt: s.clock.Now().UTC(),
		})
		task.TotalMinutes += minutes
		return true, nil
	})
}

// AddComment appends a trimmed comment to a task.
func (s *Store) AddComment(taskID, text string) error {
	return s.mutate("add_comment", func() (bool, error) {
		i := s.taskIndex(taskID)
		if i < 0 {
			return false, fmt.Errorf("comment on %q: %w", taskID, domain.ErrTaskNotFound)
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return false, domain.ErrEmptyComment
		}
		task := &s.tasks[i]
		task.Comments = append(task.Comments, domain.Comment{
			ID:        s.ids.NewID("comment"),
			Text:      trimmed,
			CreatedAt: s.clock.Now().UTC(),
		})
		return true, nil
	})
}

// DuplicateTasks clones the given tasks with fresh ids and a " (copy)" title
// suffix, and prepends the clones in the given order. Unknown ids are skipped.
func (s *Store) DuplicateTasks(ids []string) ([]string, error) {
	var created []string
	err := s.mutate("duplicate_tasks", func() (bool, error) {
		created = s.duplicateTasks(ids)
		if len(created) == 0 {
			return false, domain.ErrNothingSelected
		}
		return true, nil
	})
	return created, err
}

func (s *Store) duplicateTasks(ids []string) []string {
	clones := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		i := s.taskIndex(id)
		if i < 0 {
			continue
		}
		clone := s.tasks[i].Clone()
		clone.ID = s.ids.NewID("task")
		clone.Title += " (copy)"
		for j := range clone.TimeEntries {
			clone.TimeEntries[j].ID = s.ids.NewID("time")
		}
		for j := range clone.Comments {
			clone.Comments[j].ID = s.ids.NewID("comment")
		}
		clones = append(clones, clone)
	}
	created := make([]string, len(clones))
	for i := range clones {
		created[i] = clones[i].ID
	}
	if len(clones) > 0 {
		s.tasks = append(clones, s.tasks...)
	}
	return created
}
