package board

import (
	"fmt"
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// setSelection replaces the selection with the unique ids and anchors on the last one.
func (s *Store) setSelection(ids []string) {
	unique := domain.UniqueIDs(ids)
	s.ui.SelectedTaskIDs = unique
	s.ui.LastSelectedTaskID = ""
	if len(unique) > 0 {
		s.ui.LastSelectedTaskID = unique[len(unique)-1]
	}
}

// SetSelection replaces the selection.
func (s *Store) SetSelection(ids []string) {
	_ = s.mutate("set_selection", func() (bool, error) {
		s.setSelection(ids)
		return false, nil
	})
}

// Click applies a task click. Replace selects only id; Toggle flips its
// membership; Range selects the visible run between the anchor and id.
func (s *Store) Click(id string, mode domain.ClickMode) error {
	return s.mutate("click_task", func() (bool, error) {
		if s.taskIndex(id) < 0 {
			return false, fmt.Errorf("click %q: %w", id, domain.ErrTaskNotFound)
		}
		switch mode {
		case domain.ClickRange:
			s.selectRangeTo(id)
		case domain.ClickToggle:
			if s.ui.IsSelected(id) {
				remaining := make([]string, 0, len(s.ui.SelectedTaskIDs))
				for _, sel := range s.ui.SelectedTaskIDs {
					if sel != id {
						remaining = append(remaining, sel)
					}
				}
				s.ui.SelectedTaskIDs = remaining
			} else {
				s.ui.SelectedTaskIDs = append(s.ui.SelectedTaskIDs, id)
				s.ui.LastSelectedTaskID = id
			}
		default:
			s.setSelection([]string{id})
			s.closeContextMenu()
		}
		return false, nil
	})
}

func (s *Store) selectRangeTo(target string) {
	anchor := s.ui.LastSelectedTaskID
	if anchor == "" {
		anchor = target
	}
	ordered := s.orderedTaskIDs()
	start, end := indexOf(ordered, anchor), indexOf(ordered, target)
	if start < 0 || end < 0 {
		s.setSelection([]string{target})
		return
	}
	if start > end {
		start, end = end, start
	}
	s.setSelection(ordered[start : end+1])
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// ClearSelection empties the selection and its anchor.
func (s *Store) ClearSelection() {
	s.SetSelection(nil)
}

// SetHover records the hovered task.
func (s *Store) SetHover(id string) {
	_ = s.mutate("hover_task", func() (bool, error) {
		s.ui.HoveredTaskID = id
		return false, nil
	})
}

// ClearHover clears the hovered task.
func (s *Store) ClearHover() {
	s.SetHover("")
}

// SetTextSelection records the user's free-text selection, trimmed and capped.
// Blank text marks the selection inactive.
func (s *Store) SetTextSelection(text string) {
	_ = s.mutate("text_selection", func() (bool, error) {
		snippet := strings.TrimSpace(text)
		if snippet == "" {
			s.ui.TextSelectionOn = false
			s.ui.SelectedText = ""
			return false, nil
		}
		s.ui.TextSelectionOn = true
		s.ui.SelectedText = domain.TruncateRunes(snippet, domain.MaxSelectedTextLength)
		return false, nil
	})
}

// OpenTaskModal opens the detail modal for a task.
func (s *Store) OpenTaskModal(id string) error {
	return s.mutate("open_task_modal", func() (bool, error) {
		if s.taskIndex(id) < 0 {
			return false, fmt.Errorf("open %q: %w", id, domain.ErrTaskNotFound)
		}
		s.ui.ActiveModalTaskID = id
		return false, nil
	})
}

// CloseTaskModal closes the detail modal.
func (s *Store) CloseTaskModal() {
	_ = s.mutate("close_task_modal", func() (bool, error) {
		s.ui.ActiveModalTaskID = ""
		return false, nil
	})
}

// ActiveTask returns the task shown in the modal.
func (s *Store) ActiveTask() (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.taskIndex(s.ui.ActiveModalTaskID); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return domain.Task{}, false
}

// StartDrag begins dragging the selection, selecting id alone if it is not selected.
func (s *Store) StartDrag(id string) error {
	return s.mutate("drag_start", func() (bool, error) {
		if s.taskIndex(id) < 0 {
			return false, fmt.Errorf("drag %q: %w", id, domain.ErrTaskNotFound)
		}
		if !s.ui.IsSelected(id) {
			s.setSelection([]string{id})
		}
		s.ui.DraggedTaskIDs = append([]string{}, s.ui.SelectedTaskIDs...)
		return false, nil
	})
}

// DragOver marks columnID as the drop target while a drag is active.
func (s *Store) DragOver(columnID string) {
	_ = s.mutate("drag_over", func() (bool, error) {
		if len(s.ui.DraggedTaskIDs) > 0 {
			s.ui.DragOverColumnID = columnID
		}
		return false, nil
	})
}

// DragLeave clears the drop target when leaving columnID.
func (s *Store) DragLeave(columnID string) {
	_ = s.mutate("drag_leave", func() (bool, error) {
		if len(s.ui.DraggedTaskIDs) > 0 && s.ui.DragOverColumnID == columnID {
			s.ui.DragOverColumnID = ""
		}
		return false, nil
	})
}

// EndDrag cancels a drag.
func (s *Store) EndDrag() {
	_ = s.mutate("drag_end", func() (bool, error) {
		s.clearDrag()
		return false, nil
	})
}

func (s *Store) clearDrag() {
	s.ui.DraggedTaskIDs = nil
	s.ui.DragOverColumnID = ""
}

// Drop moves the dragged tasks, or the selection when nothing is dragged, to
// columnID in their global relative order, then clears the drag state.
func (s *Store) Drop(columnID string) error {
	return s.mutate("drop_tasks", func() (bool, error) {
		if !s.hasColumn(columnID) {
			return false, fmt.Errorf("drop on %q: %w", columnID, domain.ErrColumnNotFound)
		}
		ids := s.ui.DraggedTaskIDs
		if len(ids) == 0 {
			ids = s.ui.SelectedTaskIDs
		}
		if len(ids) == 0 {
			return false, domain.ErrNothingSelected
		}
		wanted := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			wanted[id] = struct{}{}
		}
		var ordered []string
		for i := range s.tasks {
			if _, ok := wanted[s.tasks[i].ID]; ok {
				ordered = append(ordered, s.tasks[i].ID)
			}
		}
		for _, id := range ordered {
			s.moveTask(MoveTaskInput{ID: id, ToColumnID: columnID})
		}
		s.clearDrag()
		return len(ordered) > 0, nil
	})
}

// StartColumnDrag records the column being dragged.
func (s *Store) StartColumnDrag(id string) error {
	return s.mutate("column_drag_start", func() (bool, error) {
		if !s.hasColumn(id) {
			return false, fmt.Errorf("drag column %q: %w", id, domain.ErrColumnNotFound)
		}
		s.ui.DraggedColumnID = id
		return false, nil
	})
}

// EndColumnDrag cancels a column drag.
func (s *Store) EndColumnDrag() {
	_ = s.mutate("column_drag_end", func() (bool, error) {
		s.ui.DraggedColumnID = ""
		return false, nil
	})
}

// DropColumn moves the dragged column to the index of targetID.
func (s *Store) DropColumn(targetID string) error {
	return s.mutate("column_drop", func() (bool, error) {
		source := s.ui.DraggedColumnID
		if source == "" || source == targetID {
			return false, domain.ErrNoChange
		}
		target := s.columnIndex(targetID)
		if target < 0 {
			return false, fmt.Errorf("drop column on %q: %w", targetID, domain.ErrColumnNotFound)
		}
		s.reorderColumn(source, target)
		s.ui.DraggedColumnID = ""
		return true, nil
	})
}
