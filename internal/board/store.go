// Package board implements the kanban board store: canonical columns and
// tasks, interaction and filter state, commands, and derived views.
package board

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/runoshun/kanban/internal/domain"
)

// Log categories.
const (
	catStore   = "store"
	catPersist = "persist"
	catAssign  = "assign"
)

// Options configures a Store.
// Fields are ordered to minimize memory padding.
type Options struct {
	State  domain.StateStore  // Persistence backend; nil disables persistence
	Clock  domain.Clock       // Defaults to domain.RealClock
	IDs    domain.IDGenerator // Defaults to a time-based generator
	Logger domain.Logger      // Defaults to domain.NopLogger
	User   *domain.CurrentUser
	Key    string            // State key; defaults to domain.DefaultStateKey
	Roster []domain.Teammate // Defaults to domain.DefaultRoster()
}

// Change describes a mutation delivered to subscribers.
type Change struct {
	Command   string `json:"command"`
	Persisted bool   `json:"persisted"`
}

// Store is the single board model shared by the UI, the tool adapter and the
// HTTP server. Every public method is serialized by one mutex.
type Store struct {
	state  domain.StateStore
	clock  domain.Clock
	ids    domain.IDGenerator
	logger domain.Logger
	subs   map[int]func(Change)

	key     string
	columns []domain.Column
	tasks   []domain.Task
	roster  []domain.Teammate
	user    domain.CurrentUser
	ui      domain.Interaction
	filters domain.FilterState
	nextSub int

	mu sync.Mutex
}

// New creates a Store and loads its columns and tasks from opts.State,
// falling back to defaults on missing or corrupt data.
func New(opts Options) *Store {
	s := &Store{
		state:  opts.State,
		clock:  opts.Clock,
		ids:    opts.IDs,
		logger: opts.Logger,
		key:    opts.Key,
		roster: append([]domain.Teammate{}, opts.Roster...),
		subs:   make(map[int]func(Change)),
	}
	if s.clock == nil {
		s.clock = domain.RealClock{}
	}
	if s.logger == nil {
		s.logger = domain.NopLogger{}
	}
	if s.ids == nil {
		s.ids = &timeIDs{clock: s.clock}
	}
	if s.key == "" {
		s.key = domain.DefaultStateKey
	}
	if len(s.roster) == 0 {
		s.roster = domain.DefaultRoster()
	}
	if opts.User != nil {
		s.user = *opts.User
	} else {
		s.user = domain.DefaultCurrentUser()
	}
	s.load()
	return s
}

// Subscribe registers fn to be called after every successful command.
// fn runs outside the store lock and may read the store.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// mutate runs fn under the lock, persists when fn asks for it, and notifies
// subscribers when fn succeeded.
func (s *Store) mutate(command string, fn func() (persist bool, err error)) error {
	s.mu.Lock()
	persist, err := fn()
	if err == nil && persist {
		s.persist()
	}
	var subs []func(Change)
	if err == nil {
		subs = make([]func(Change), 0, len(s.subs))
		for _, sub := range s.subs {
			subs = append(subs, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(Change{Command: command, Persisted: persist})
	}
	return err
}

// Columns returns a copy of the ordered columns.
func (s *Store) Columns() []domain.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Column{}, s.columns...)
}

// Tasks returns a copy of every task in global order.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneTasks(s.tasks)
}

// Task returns a copy of the task with the given id.
func (s *Store) Task(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return domain.Task{}, false
}

// Teammates returns the roster.
func (s *Store) Teammates() []domain.Teammate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Teammate{}, s.roster...)
}

// CurrentUser returns the signed-in user.
func (s *Store) CurrentUser() domain.CurrentUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Interaction returns a copy of the transient UI state.
func (s *Store) Interaction() domain.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.Clone()
}

// Snapshot returns the board state reported by get_board_state.
func (s *Store) Snapshot() domain.BoardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.BoardSnapshot{
		Columns:             append([]domain.Column{}, s.columns...),
		Tasks:               domain.CloneTasks(s.tasks),
		FilteredTasks:       domain.CloneTasks(s.filteredTasks()),
		HoveredTaskID:       domain.NullableID(s.ui.HoveredTaskID),
		SelectedTaskIDs:     append([]string{}, s.ui.SelectedTaskIDs...),
		TextSelectionActive: s.ui.TextSelectionOn,
		SelectedText:        s.ui.SelectedText,
		ActiveModalTaskID:   domain.NullableID(s.ui.ActiveModalTaskID),
		Teammates:           append([]domain.Teammate{}, s.roster...),
		CurrentUser:         s.user,
		Filters: domain.FilterState{
			SearchQuery:    s.filters.NormalizedSearch(),
			AssigneeFilter: s.filters.AssigneeFilter,
			ShowOnlyMine:   s.filters.ShowOnlyMine,
		},
	}
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) columnIndex(id string) int {
	for i := range s.columns {
		if s.columns[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) hasColumn(id string) bool {
	return s.columnIndex(id) >= 0
}

// timeIDs mimics the browser id scheme: prefix, base-36 time, sequence.
type timeIDs struct {
	clock domain.Clock
	seq   atomic.Uint64
}

func (g *timeIDs) NewID(prefix string) string {
	n := g.seq.Add(1)
	return prefix + "-" + strconv.FormatInt(g.clock.Now().UnixMilli(), 36) + strconv.FormatUint(n, 36)
}
