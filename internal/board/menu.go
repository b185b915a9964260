package board

import (
	"fmt"
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// UpdateProfileInput contains profile changes. Nil or blank fields are ignored.
type UpdateProfileInput struct {
	Name   *string
	Role   *string
	Email  *string
	Status *string
}

// OpenContextMenu opens the task menu on id and snapshots the selection as
// its targets. An unselected task becomes the sole selection first.
func (s *Store) OpenContextMenu(id string) error {
	return s.mutate("context_menu_open", func() (bool, error) {
		if s.taskIndex(id) < 0 {
			return false, fmt.Errorf("menu on %q: %w", id, domain.ErrTaskNotFound)
		}
		if !s.ui.IsSelected(id) {
			s.setSelection([]string{id})
		}
		s.ui.ContextMenu = domain.ContextMenu{
			Open:      true,
			TargetIDs: append([]string{}, s.ui.SelectedTaskIDs...),
		}
		return false, nil
	})
}

// CloseContextMenu closes the task menu.
func (s *Store) CloseContextMenu() {
	_ = s.mutate("context_menu_close", func() (bool, error) {
		s.closeContextMenu()
		return false, nil
	})
}

func (s *Store) closeContextMenu() {
	s.ui.ContextMenu = domain.ContextMenu{}
}

// menuAction runs fn over the menu targets and always closes the menu.
func (s *Store) menuAction(command string, fn func(targets []string) (bool, error)) error {
	return s.mutate(command, func() (bool, error) {
		targets := append([]string{}, s.ui.ContextMenu.TargetIDs...)
		s.closeContextMenu()
		if len(targets) == 0 {
			return false, domain.ErrNothingSelected
		}
		return fn(targets)
	})
}

// MenuOpenInModal opens the first menu target in the detail modal.
func (s *Store) MenuOpenInModal() error {
	return s.menuAction("menu_open_modal", func(targets []string) (bool, error) {
		if s.taskIndex(targets[0]) < 0 {
			return false, fmt.Errorf("open %q: %w", targets[0], domain.ErrTaskNotFound)
		}
		s.ui.ActiveModalTaskID = targets[0]
		return false, nil
	})
}

// MenuMoveTo moves every menu target to the end of columnID.
func (s *Store) MenuMoveTo(columnID string) error {
	return s.menuAction("menu_move", func(targets []string) (bool, error) {
		if !s.hasColumn(columnID) {
			return false, fmt.Errorf("move to %q: %w", columnID, domain.ErrColumnNotFound)
		}
		moved := false
		for _, id := range targets {
			moved = s.moveTask(MoveTaskInput{ID: id, ToColumnID: columnID}) || moved
		}
		return moved, nil
	})
}

// MenuAssign assigns every menu target. The assignee is resolved once up front.
func (s *Store) MenuAssign(assignee string) error {
	return s.menuAction("menu_assign", func(targets []string) (bool, error) {
		id, err := s.resolveAssignee(assignee)
		if err != nil {
			s.logger.Warn(catAssign, fmt.Sprintf("unable to interpret assignee %q", assignee))
			return false, err
		}
		changed := false
		for _, target := range targets {
			if i := s.taskIndex(target); i >= 0 && s.tasks[i].AssigneeID != id {
				s.tasks[i].AssigneeID = id
				changed = true
			}
		}
		if !changed {
			return false, domain.ErrNoChange
		}
		return true, nil
	})
}

// MenuDuplicate duplicates the menu targets.
func (s *Store) MenuDuplicate() ([]string, error) {
	var created []string
	err := s.menuAction("menu_duplicate", func(targets []string) (bool, error) {
		created = s.duplicateTasks(targets)
		if len(created) == 0 {
			return false, domain.ErrNothingSelected
		}
		return true, nil
	})
	return created, err
}

// MenuDelete deletes the menu targets.
func (s *Store) MenuDelete() error {
	return s.menuAction("menu_delete", func(targets []string) (bool, error) {
		deleted := false
		for _, id := range targets {
			deleted = s.deleteTask(id) || deleted
		}
		if !deleted {
			return false, domain.ErrTaskNotFound
		}
		return true, nil
	})
}

// MenuClearSelection clears the selection.
func (s *Store) MenuClearSelection() error {
	return s.menuAction("menu_clear_selection", func([]string) (bool, error) {
		s.setSelection(nil)
		return false, nil
	})
}

// OpenProfilePanel opens the profile panel.
func (s *Store) OpenProfilePanel() {
	s.setProfileOpen("open_profile_panel", true)
}

// CloseProfilePanel closes the profile panel.
func (s *Store) CloseProfilePanel() {
	s.setProfileOpen("close_profile_panel", false)
}

func (s *Store) setProfileOpen(command string, open bool) {
	_ = s.mutate(command, func() (bool, error) {
		s.ui.ProfileOpen = open
		return false, nil
	})
}

// UpdateProfile applies each non-blank trimmed field to the current user.
func (s *Store) UpdateProfile(in UpdateProfileInput) error {
	return s.mutate("update_profile", func() (bool, error) {
		changed := false
		apply := func(field *string, value *string) {
			if value == nil {
				return
			}
			if v := strings.TrimSpace(*value); v != "" {
				*field = v
				changed = true
			}
		}
		apply(&s.user.Name, in.Name)
		apply(&s.user.Role, in.Role)
		apply(&s.user.Email, in.Email)
		apply(&s.user.Status, in.Status)
		if !changed {
			return false, domain.ErrNoChange
		}
		return false, nil
	})
}
