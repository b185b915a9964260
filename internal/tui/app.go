package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
)

// changeBuffer bounds the store notifications waiting for the UI loop.
const changeBuffer = 16

// Model is the main bubbletea model for the board TUI.
// Fields are ordered to minimize memory padding.
type Model struct {
	store       *board.Store
	changes     chan board.Change
	unsubscribe func()
	err         error

	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model

	status        string
	confirmAction ConfirmAction

	// Cursor over the known columns of the visible board
	col int
	row int

	mode   Mode
	width  int
	height int
}

// New creates a TUI model bound to store. Store changes made by any caller
// are delivered to the model as MsgBoardChanged.
func New(store *board.Store) *Model {
	ti := textinput.New()
	ti.CharLimit = 200

	m := &Model{
		store:   store,
		changes: make(chan board.Change, changeBuffer),
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		help:    help.New(),
		input:   ti,
		mode:    ModeNormal,
	}
	m.unsubscribe = store.Subscribe(func(c board.Change) {
		select {
		case m.changes <- c:
		default:
			// The UI re-reads the whole board on the next change anyway.
		}
	})
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// waitForChange blocks until the store reports a change.
func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return MsgBoardChanged{Command: c.Command}
	}
}

// groups returns the visible groups for known columns, in column order.
func (m *Model) groups() board.ColumnGroups {
	all := m.store.VisibleTasksByColumn()
	out := make(board.ColumnGroups, 0, len(all))
	for _, g := range all {
		if g.Known {
			out = append(out, g)
		}
	}
	return out
}

// clampCursor keeps the cursor inside the visible board.
func (m *Model) clampCursor() {
	groups := m.groups()
	if len(groups) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = clamp(m.col, 0, len(groups)-1)
	m.row = clamp(m.row, 0, len(groups[m.col].Tasks)-1)
}

// currentColumn returns the column under the cursor.
func (m *Model) currentColumn() (domain.Column, bool) {
	groups := m.groups()
	if m.col < 0 || m.col >= len(groups) {
		return domain.Column{}, false
	}
	return groups[m.col].Column, true
}

// currentTask returns the task under the cursor.
func (m *Model) currentTask() (domain.Task, bool) {
	groups := m.groups()
	if m.col < 0 || m.col >= len(groups) {
		return domain.Task{}, false
	}
	tasks := groups[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[m.row], true
}

// focusTask moves the cursor onto the task with id, if it is visible.
func (m *Model) focusTask(id string) {
	for c, g := range m.groups() {
		for r, t := range g.Tasks {
			if t.ID == id {
				m.col, m.row = c, r
				return
			}
		}
	}
}

// hover mirrors the cursor into the store hover state.
func (m *Model) hover() {
	if task, ok := m.currentTask(); ok {
		m.store.SetHover(task.ID)
		return
	}
	m.store.ClearHover()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
