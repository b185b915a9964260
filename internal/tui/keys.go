package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Toggle     key.Binding // Toggle task in selection
	RangeSel   key.Binding // Extend selection to task
	Open       key.Binding // Open task detail
	ClearSel   key.Binding
	MoveLeft   key.Binding // Move targets to previous column
	MoveRight  key.Binding // Move targets to next column
	MoveUp     key.Binding // Move task up within its column
	MoveDown   key.Binding // Move task down within its column
	Duplicate  key.Binding
	Delete     key.Binding
	Assign     key.Binding
	Unassign   key.Binding
	Comment    key.Binding
	LogTime    key.Binding
	New        key.Binding
	NewColumn  key.Binding
	Rename     key.Binding // Rename current column
	RemoveCol  key.Binding
	ColLeft    key.Binding // Reorder column left
	ColRight   key.Binding // Reorder column right
	Search     key.Binding
	FilterUser key.Binding
	Mine       key.Binding
	ClearFilt  key.Binding
	Profile    key.Binding

	// General
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
	Confirm key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle select"),
		),
		RangeSel: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select range"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		ClearSel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear selection"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "move right"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "duplicate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Assign: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assign"),
		),
		Unassign: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unassign"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		LogTime: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "log time"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		NewColumn: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new column"),
		),
		Rename: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename column"),
		),
		RemoveCol: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "remove column"),
		),
		ColLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "column left"),
		),
		ColRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "column right"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		FilterUser: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter assignee"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "only mine"),
		),
		ClearFilt: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "clear filters"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Open, k.MoveLeft, k.MoveRight, k.Search, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Open},
		{k.Toggle, k.RangeSel, k.ClearSel, k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.New, k.Duplicate, k.Delete, k.Assign, k.Unassign, k.Comment, k.LogTime},
		{k.NewColumn, k.Rename, k.RemoveCol, k.ColLeft, k.ColRight},
		{k.Search, k.FilterUser, k.Mine, k.ClearFilt, k.Profile, k.Help, k.Quit},
	}
}
