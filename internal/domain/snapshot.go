package domain

// BoardState is the persisted portion of the board.
type BoardState struct {
	Tasks   []Task   `json:"tasks" yaml:"tasks"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// BoardSnapshot is the read-only view returned by get_board_state.
// Empty ids encode as null on the wire.
type BoardSnapshot struct {
	HoveredTaskID       *string     `json:"hoveredTaskId"`
	ActiveModalTaskID   *string     `json:"activeModalTaskId"`
	CurrentUser         CurrentUser `json:"currentUser"`
	SelectedText        string      `json:"selectedText"`
	Filters             FilterState `json:"filters"`
	Columns             []Column    `json:"columns"`
	Tasks               []Task      `json:"tasks"`
	FilteredTasks       []Task      `json:"filteredTasks"`
	SelectedTaskIDs     []string    `json:"selectedTaskIds"`
	Teammates           []Teammate  `json:"teammates"`
	TextSelectionActive bool        `json:"textSelectionActive"`
}

// ProfileStats summarizes the current user's workload.
type ProfileStats struct {
	TotalTime  string `json:"totalTime"`
	Open       int    `json:"open"`
	Closed     int    `json:"closed"`
	DoneColumn int    `json:"doneColumn"`
}

// NullableID returns nil for an empty id.
func NullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
