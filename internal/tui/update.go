package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgBoardChanged:
		m.clampCursor()
		return m, m.waitForChange()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode.IsInputMode() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press by mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.mode = ModeNormal
		}
		return m, nil
	case ModeDetail:
		return m.handleDetailMode(msg)
	case ModeProfile:
		if key.Matches(msg, m.keys.Escape, m.keys.Profile, m.keys.Quit) {
			m.store.CloseProfilePanel()
			m.mode = ModeNormal
		}
		return m, nil
	case ModeInputTitle, ModeSearch, ModeAssigneeFilter, ModeAssign,
		ModeComment, ModeTime, ModeNewColumn, ModeRenameColumn:
		return m.handleInputMode(msg)
	}
	return m, nil
}

// handleNormalMode handles keys while browsing the board.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.store.ClearSelection()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampCursor()
		m.hover()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampCursor()
		m.hover()
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.col--
		m.clampCursor()
		m.hover()
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.col++
		m.clampCursor()
		m.hover()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m, m.withTask(func(t domain.Task) error {
			return m.store.Click(t.ID, domain.ClickToggle)
		})

	case key.Matches(msg, m.keys.RangeSel):
		return m, m.withTask(func(t domain.Task) error {
			return m.store.Click(t.ID, domain.ClickRange)
		})

	case key.Matches(msg, m.keys.ClearSel):
		m.store.ClearSelection()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m, m.withTask(func(t domain.Task) error {
			if err := m.store.OpenTaskModal(t.ID); err != nil {
				return err
			}
			m.mode = ModeDetail
			return nil
		})

	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.moveToAdjacentColumn(-1)

	case key.Matches(msg, m.keys.MoveRight):
		return m, m.moveToAdjacentColumn(1)

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveWithinColumn(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveWithinColumn(1)

	case key.Matches(msg, m.keys.Duplicate):
		return m, m.withTask(func(t domain.Task) error {
			if err := m.store.OpenContextMenu(t.ID); err != nil {
				return err
			}
			ids, err := m.store.MenuDuplicate()
			if err != nil {
				return err
			}
			m.status = fmt.Sprintf("Duplicated %d task(s)", len(ids))
			return nil
		})

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.currentTask(); !ok {
			return m, nil
		}
		m.confirmAction = ConfirmDeleteTasks
		m.mode = ModeConfirm
		return m, nil

	case key.Matches(msg, m.keys.Unassign):
		return m, m.withTask(func(t domain.Task) error {
			return m.store.UnassignTask(t.ID)
		})

	case key.Matches(msg, m.keys.Assign):
		if _, ok := m.currentTask(); !ok {
			return m, nil
		}
		return m, m.startInput(ModeAssign, "Assignee (id or name, empty to clear)", "")

	case key.Matches(msg, m.keys.Comment):
		if _, ok := m.currentTask(); !ok {
			return m, nil
		}
		return m, m.startInput(ModeComment, "Comment", "")

	case key.Matches(msg, m.keys.LogTime):
		if _, ok := m.currentTask(); !ok {
			return m, nil
		}
		return m, m.startInput(ModeTime, "Minutes", "")

	case key.Matches(msg, m.keys.New):
		return m, m.startInput(ModeInputTitle, "Task title", "")

	case key.Matches(msg, m.keys.NewColumn):
		return m, m.startInput(ModeNewColumn, "Column title", "")

	case key.Matches(msg, m.keys.Rename):
		col, ok := m.currentColumn()
		if !ok {
			return m, nil
		}
		return m, m.startInput(ModeRenameColumn, "Column title", col.Title)

	case key.Matches(msg, m.keys.RemoveCol):
		if _, ok := m.currentColumn(); !ok {
			return m, nil
		}
		m.confirmAction = ConfirmRemoveColumn
		m.mode = ModeConfirm
		return m, nil

	case key.Matches(msg, m.keys.ColLeft):
		return m, m.reorderColumn(-1)

	case key.Matches(msg, m.keys.ColRight):
		return m, m.reorderColumn(1)

	case key.Matches(msg, m.keys.Search):
		return m, m.startInput(ModeSearch, "Search", m.store.Filters().SearchQuery)

	case key.Matches(msg, m.keys.FilterUser):
		return m, m.startInput(ModeAssigneeFilter, "Assignee filter (id, name or \"unassigned\")", "")

	case key.Matches(msg, m.keys.Mine):
		mine := !m.store.Filters().ShowOnlyMine
		m.store.SetFilters(board.SetFiltersInput{ShowOnlyMine: &mine})
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilt):
		m.store.ClearFilters()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Profile):
		m.store.OpenProfilePanel()
		m.mode = ModeProfile
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

// handleDetailMode handles keys while a task is open.
func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Open, m.keys.Quit):
		m.store.CloseTaskModal()
		m.mode = ModeNormal
	case key.Matches(msg, m.keys.Comment):
		m.store.CloseTaskModal()
		return m, m.startInput(ModeComment, "Comment", "")
	case key.Matches(msg, m.keys.LogTime):
		m.store.CloseTaskModal()
		return m, m.startInput(ModeTime, "Minutes", "")
	}
	return m, nil
}

// handleConfirmMode handles the yes/no prompt.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirmAction
	m.confirmAction = ConfirmNone
	m.mode = ModeNormal

	if !key.Matches(msg, m.keys.Confirm) {
		m.status = "Cancelled"
		return m, nil
	}

	switch action {
	case ConfirmDeleteTasks:
		m.withTask(func(t domain.Task) error {
			if err := m.store.OpenContextMenu(t.ID); err != nil {
				return err
			}
			return m.store.MenuDelete()
		})
	case ConfirmRemoveColumn:
		if col, ok := m.currentColumn(); ok {
			m.setErr(m.store.RemoveColumn(col.ID))
		}
	case ConfirmNone:
	}
	m.clampCursor()
	return m, nil
}

// handleInputMode handles keys while the text input is focused.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return m, nil
	case tea.KeyEnter:
		mode, value := m.mode, m.input.Value()
		m.stopInput()
		m.submit(mode, value)
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies the value entered in an input mode.
func (m *Model) submit(mode Mode, value string) {
	m.err = nil
	switch mode {
	case ModeInputTitle:
		in := board.CreateTaskInput{Title: value}
		if col, ok := m.currentColumn(); ok {
			in.ColumnID = col.ID
		}
		id, err := m.store.CreateTask(in)
		if m.setErr(err) {
			return
		}
		m.focusTask(id)
		m.status = "Created " + id

	case ModeSearch:
		m.store.SetFilters(board.SetFiltersInput{SearchQuery: &value})

	case ModeAssigneeFilter:
		if strings.EqualFold(strings.TrimSpace(value), "unassigned") {
			value = domain.UnassignedFilter
		}
		m.store.SetFilters(board.SetFiltersInput{AssigneeID: &value})

	case ModeAssign:
		task, ok := m.currentTask()
		if !ok {
			return
		}
		if err := m.store.OpenContextMenu(task.ID); m.setErr(err) {
			return
		}
		m.setErr(m.store.MenuAssign(value))

	case ModeComment:
		m.withTask(func(t domain.Task) error {
			return m.store.AddComment(t.ID, value)
		})

	case ModeTime:
		minutes, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			m.setErr(domain.ErrInvalidMinutes)
			return
		}
		m.withTask(func(t domain.Task) error {
			return m.store.AddTimeEntry(t.ID, minutes, "")
		})

	case ModeNewColumn:
		pos := m.col + 1
		if len(m.groups()) == 0 {
			pos = 0
		}
		m.store.AddColumn(board.AddColumnInput{Title: value, Position: &pos})
		m.col = pos

	case ModeRenameColumn:
		if col, ok := m.currentColumn(); ok {
			m.setErr(m.store.RenameColumn(col.ID, value))
		}

	case ModeNormal, ModeConfirm, ModeHelp, ModeDetail, ModeProfile:
	}
}

// startInput focuses the shared text input for mode.
func (m *Model) startInput(mode Mode, placeholder, value string) tea.Cmd {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// stopInput blurs and clears the text input.
func (m *Model) stopInput() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.Reset()
}

// moveToAdjacentColumn drags the cursor task (with the selection, if it is
// part of it) into the neighboring column.
func (m *Model) moveToAdjacentColumn(delta int) tea.Cmd {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	groups := m.groups()
	target := m.col + delta
	if target < 0 || target >= len(groups) {
		return nil
	}
	if err := m.store.StartDrag(task.ID); m.setErr(err) {
		return nil
	}
	if err := m.store.Drop(groups[target].Column.ID); m.setErr(err) {
		return nil
	}
	m.focusTask(task.ID)
	return nil
}

// moveWithinColumn shifts the cursor task one slot within its column.
func (m *Model) moveWithinColumn(delta int) tea.Cmd {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	pos := m.row + delta
	if pos < 0 {
		return nil
	}
	err := m.store.MoveTask(board.MoveTaskInput{ID: task.ID, ToColumnID: task.ColumnID, Position: &pos})
	if m.setErr(err) {
		return nil
	}
	m.focusTask(task.ID)
	return nil
}

// reorderColumn moves the current column by delta and keeps the cursor on it.
func (m *Model) reorderColumn(delta int) tea.Cmd {
	col, ok := m.currentColumn()
	if !ok {
		return nil
	}
	target := m.col + delta
	if target < 0 || target >= len(m.groups()) {
		return nil
	}
	if err := m.store.ReorderColumn(col.ID, target); m.setErr(err) {
		return nil
	}
	m.col = target
	m.clampCursor()
	return nil
}

// withTask applies fn to the task under the cursor and records any error.
func (m *Model) withTask(fn func(domain.Task) error) tea.Cmd {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	m.setErr(fn(task))
	return nil
}

// setErr records err and reports whether it was non-nil.
func (m *Model) setErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrNoChange) {
		return true
	}
	m.err = err
	m.status = ""
	return true
}
