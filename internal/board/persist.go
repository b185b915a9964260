package board

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/runoshun/kanban/internal/domain"
)

// load reads the persisted board, replacing each unusable field with its default.
// Called once from New.
func (s *Store) load() {
	s.tasks = domain.DefaultTasks(s.clock.Now())
	s.columns = domain.DefaultColumns()
	if s.state == nil {
		return
	}

	raw, err := s.state.Get(s.key)
	if err != nil {
		s.logger.Warn(catPersist, fmt.Sprintf("failed to read stored board state, using defaults: %v", err))
		return
	}
	if raw == nil {
		return
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn(catPersist, fmt.Sprintf("failed to parse stored board state, using defaults: %v", err))
		return
	}

	if tasks, ok := decodeArray[domain.Task](doc["tasks"]); ok {
		for i := range tasks {
			tasks[i].Normalize()
		}
		s.tasks = tasks
	} else {
		s.logger.Warn(catPersist, "stored tasks are not a valid array, using defaults")
	}

	if columns, ok := decodeArray[domain.Column](doc["columns"]); ok && len(columns) > 0 {
		s.columns = columns
	} else {
		s.logger.Warn(catPersist, "stored columns are missing or empty, using defaults")
	}
}

// decodeArray decodes raw only when it is a JSON array of well-formed elements.
func decodeArray[T any](raw json.RawMessage) ([]T, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	out := []T{}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, false
	}
	return out, true
}

// persist writes {tasks, columns} to the backend. Failures are logged only.
// Must be called with s.mu held.
func (s *Store) persist() {
	if s.state == nil {
		return
	}
	data, err := json.Marshal(s.boardState())
	if err != nil {
		s.logger.Error(catPersist, fmt.Sprintf("failed to encode board state: %v", err))
		return
	}
	if err := s.state.Set(s.key, data); err != nil {
		s.logger.Warn(catPersist, fmt.Sprintf("unable to persist board state: %v", err))
	}
}

func (s *Store) boardState() domain.BoardState {
	return domain.BoardState{
		Tasks:   domain.CloneTasks(s.tasks),
		Columns: append([]domain.Column{}, s.columns...),
	}
}

// State returns the persistable portion of the board.
func (s *Store) State() domain.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardState()
}

// ReplaceState swaps in imported columns and tasks and resets interaction
// state. An empty column list keeps the board's default columns.
func (s *Store) ReplaceState(state domain.BoardState) error {
	return s.mutate("replace_state", func() (bool, error) {
		columns := append([]domain.Column{}, state.Columns...)
		if len(columns) == 0 {
			columns = domain.DefaultColumns()
		}
		tasks := domain.CloneTasks(state.Tasks)
		for i := range tasks {
			tasks[i].Normalize()
		}
		s.columns = columns
		s.tasks = tasks
		s.ui = domain.Interaction{}
		s.logger.Info(catStore, fmt.Sprintf("board replaced: %d columns, %d tasks", len(columns), len(tasks)))
		return true, nil
	})
}

// Reset restores the default columns and sample tasks.
func (s *Store) Reset() error {
	return s.ReplaceState(domain.BoardState{
		Tasks:   domain.DefaultTasks(s.clock.Now()),
		Columns: domain.DefaultColumns(),
	})
}
