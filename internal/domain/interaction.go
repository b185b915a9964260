package domain

// ClickMode selects how a task click changes the selection.
type ClickMode int

// Click modes.
const (
	ClickReplace ClickMode = iota // plain click
	ClickToggle                   // ctrl/cmd click
	ClickRange                    // shift click
)

// ContextMenu is the open/targets state of the task context menu.
type ContextMenu struct {
	TargetIDs []string `json:"targetIds"`
	Open      bool     `json:"open"`
}

// Interaction holds transient UI state. It is never persisted.
type Interaction struct {
	HoveredTaskID      string      `json:"hoveredTaskId"`
	LastSelectedTaskID string      `json:"lastSelectedTaskId"`
	ActiveModalTaskID  string      `json:"activeModalTaskId"`
	DragOverColumnID   string      `json:"dragOverColumnId"`
	DraggedColumnID    string      `json:"draggedColumnId"`
	SelectedText       string      `json:"selectedText"`
	SelectedTaskIDs    []string    `json:"selectedTaskIds"`
	DraggedTaskIDs     []string    `json:"draggedTaskIds"`
	ContextMenu        ContextMenu `json:"contextMenu"`
	TextSelectionOn    bool        `json:"textSelectionActive"`
	ProfileOpen        bool        `json:"profileOpen"`
}

// IsSelected reports whether id is in the selection.
func (i *Interaction) IsSelected(id string) bool {
	for _, s := range i.SelectedTaskIDs {
		if s == id {
			return true
		}
	}
	return false
}

// ForgetTask removes every reference to a deleted task.
func (i *Interaction) ForgetTask(id string) {
	if i.HoveredTaskID == id {
		i.HoveredTaskID = ""
	}
	if i.ActiveModalTaskID == id {
		i.ActiveModalTaskID = ""
	}
	if i.LastSelectedTaskID == id {
		i.LastSelectedTaskID = ""
	}
	i.SelectedTaskIDs = removeID(i.SelectedTaskIDs, id)
	i.DraggedTaskIDs = removeID(i.DraggedTaskIDs, id)
	i.ContextMenu.TargetIDs = removeID(i.ContextMenu.TargetIDs, id)
}

// Clone returns a deep copy.
func (i Interaction) Clone() Interaction {
	c := i
	c.SelectedTaskIDs = append([]string{}, i.SelectedTaskIDs...)
	c.DraggedTaskIDs = append([]string{}, i.DraggedTaskIDs...)
	c.ContextMenu.TargetIDs = append([]string{}, i.ContextMenu.TargetIDs...)
	return c
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// UniqueIDs drops duplicates, keeping first occurrence order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
