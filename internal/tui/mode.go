// Package tui provides the terminal user interface for the kanban board.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal         Mode = iota // Default navigation mode
	ModeInputTitle                 // Title input mode (for new task)
	ModeSearch                     // Search query input mode
	ModeAssigneeFilter             // Assignee filter input mode
	ModeAssign                     // Assignee input mode
	ModeComment                    // Comment input mode
	ModeTime                       // Minutes input mode
	ModeNewColumn                  // Column title input mode (for new column)
	ModeRenameColumn               // Column title input mode
	ModeConfirm                    // Confirmation dialog mode
	ModeHelp                       // Help overlay mode
	ModeDetail                     // Task detail view mode
	ModeProfile                    // Profile panel mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInputTitle:
		return "input_title"
	case ModeSearch:
		return "search"
	case ModeAssigneeFilter:
		return "assignee_filter"
	case ModeAssign:
		return "assign"
	case ModeComment:
		return "comment"
	case ModeTime:
		return "time"
	case ModeNewColumn:
		return "new_column"
	case ModeRenameColumn:
		return "rename_column"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	case ModeDetail:
		return "detail"
	case ModeProfile:
		return "profile"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInputTitle, ModeSearch, ModeAssigneeFilter, ModeAssign,
		ModeComment, ModeTime, ModeNewColumn, ModeRenameColumn:
		return true
	case ModeNormal, ModeConfirm, ModeHelp, ModeDetail, ModeProfile:
		return false
	}
	return false
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone         ConfirmAction = iota
	ConfirmDeleteTasks                // Delete the targeted tasks
	ConfirmRemoveColumn               // Remove the current column
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDeleteTasks:
		return "delete"
	case ConfirmRemoveColumn:
		return "remove column"
	}
	return ""
}
