package board

import (
	"fmt"
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// resolveAssignee maps raw input to a roster id.
// Clear values ("", "__unassigned__") resolve to "" and are matched exactly.
// Other input is trimmed, then resolved by self tokens, case-insensitive
// id/name/email, then literal id. Blank input is unresolved.
func (s *Store) resolveAssignee(raw string) (string, error) {
	if raw == "" || raw == domain.UnassignedFilter {
		return "", nil
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%q: %w", raw, domain.ErrUnresolvedAssignee)
	}
	lowered := strings.ToLower(text)
	id := ""
	switch {
	case lowered == "me" || lowered == "current_user":
		id = s.user.ID
	default:
		for _, m := range s.roster {
			if strings.ToLower(m.ID) == lowered ||
				strings.ToLower(m.Name) == lowered ||
				(m.Email != "" && strings.ToLower(m.Email) == lowered) {
				id = m.ID
				break
			}
		}
		if id == "" {
			id = text
		}
	}
	if _, ok := domain.FindTeammate(s.roster, id); !ok {
		return "", fmt.Errorf("%q: %w", raw, domain.ErrUnresolvedAssignee)
	}
	return id, nil
}

// ResolveAssignee exposes assignee normalization. It returns "" for clear values.
func (s *Store) ResolveAssignee(raw string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveAssignee(raw)
}

// AssignTask sets a task's assignee from raw input. "" or "__unassigned__" clears.
// Assigning the current assignee, or clearing an unassigned task, returns ErrNoChange.
func (s *Store) AssignTask(id, assignee string) error {
	return s.mutate("assign_task", func() (bool, error) {
		return true, s.setAssignee(id, assignee)
	})
}

// UnassignTask clears a task's assignee.
func (s *Store) UnassignTask(id string) error {
	return s.mutate("unassign_task", func() (bool, error) {
		return true, s.setAssignee(id, "")
	})
}

func (s *Store) setAssignee(id, raw string) error {
	i := s.taskIndex(id)
	if i < 0 {
		s.logger.Warn(catAssign, fmt.Sprintf("task not found: %s", id))
		return fmt.Errorf("assign %q: %w", id, domain.ErrTaskNotFound)
	}
	assignee, err := s.resolveAssignee(raw)
	if err != nil {
		s.logger.Warn(catAssign, fmt.Sprintf("unable to interpret assignee %q", raw))
		return err
	}
	if s.tasks[i].AssigneeID == assignee {
		return domain.ErrNoChange
	}
	s.tasks[i].AssigneeID = assignee
	return nil
}
