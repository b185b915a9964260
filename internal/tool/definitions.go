// Package tool exposes board commands to external callers as named tools
// with per-tool payload schemas.
package tool

// Prop types.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Prop describes one payload field.
// Fields are ordered to minimize memory padding.
type Prop struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Nullable    bool   `json:"nullable,omitempty"` // null is a value, not an absent field
	AllowEmpty  bool   `json:"-"`                  // A required string may be ""
}

// Definition describes a tool.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Props       []Prop `json:"props"`
	Returns     bool   `json:"returns,omitempty"` // The tool answers with a result
}

// Tool names.
const (
	CreateTask        = "create_task"
	UpdateTask        = "update_task"
	MoveTask          = "move_task"
	DeleteTask        = "delete_task"
	GetBoardState     = "get_board_state"
	AddTimeEntry      = "add_time_entry"
	AddComment        = "add_comment"
	OpenTaskModal     = "open_task_modal"
	AssignTask        = "assign_task"
	UnassignTask      = "unassign_task"
	SetFilters        = "set_filters"
	ClearFilters      = "clear_filters"
	OpenProfilePanel  = "open_profile_panel"
	CloseProfilePanel = "close_profile_panel"
	UpdateProfile     = "update_profile"
	AddColumn         = "add_column"
	RenameColumn      = "rename_column"
	RemoveColumn      = "remove_column"
	ReorderColumn     = "reorder_column"
	SetColumnColor    = "set_column_color"
)

func str(name, desc string) Prop {
	return Prop{Name: name, Type: TypeString, Description: desc}
}

func required(p Prop) Prop {
	p.Required = true
	return p
}

// definitions lists every tool in presentation order.
var definitions = []Definition{
	{
		Name:        CreateTask,
		Description: "Create a new kanban task",
		Props: []Prop{
			required(str("title", "")),
			str("description", ""),
			required(str("columnId", "Column ID: todo | in-progress | done")),
			str("assigneeId", "Teammate ID, name, email or \"me\""),
		},
		Returns: true,
	},
	{
		Name:        UpdateTask,
		Description: "Update an existing kanban task",
		Props: []Prop{
			required(str("id", "")),
			str("title", ""),
			str("description", ""),
			str("columnId", "Optional new column ID"),
			str("assigneeId", "Teammate ID, name, email, \"me\", or blank to clear"),
		},
	},
	{
		Name:        MoveTask,
		Description: "Move a task to another column and position",
		Props: []Prop{
			required(str("id", "")),
			required(str("toColumnId", "Target column ID")),
			{Name: "position", Type: TypeNumber, Description: "Zero-based index in target column (optional)"},
		},
	},
	{
		Name:        DeleteTask,
		Description: "Delete a task from the board",
		Props:       []Prop{required(str("id", ""))},
	},
	{
		Name:        GetBoardState,
		Description: "Return current columns, tasks and interaction state",
		Props:       []Prop{},
		Returns:     true,
	},
	{
		Name:        AddTimeEntry,
		Description: "Log time for a task",
		Props: []Prop{
			required(str("taskId", "Task ID")),
			{Name: "minutes", Type: TypeNumber, Description: "Minutes to log (positive integer)", Required: true},
			str("note", "Optional note"),
		},
	},
	{
		Name:        AddComment,
		Description: "Add a comment to a task",
		Props: []Prop{
			required(str("taskId", "Task ID")),
			required(str("text", "Comment text")),
		},
	},
	{
		Name:        OpenTaskModal,
		Description: "Open the detail modal for a task",
		Props:       []Prop{required(str("id", "Task ID"))},
	},
	{
		Name:        AssignTask,
		Description: "Assign a task to a teammate",
		Props: []Prop{
			required(str("id", "Task ID (taskId is accepted as an alias)")),
			{Name: "assigneeId", Type: TypeString, Description: "Teammate ID (e.g., ava, leo, mia, noor); null or blank clears", Required: true, Nullable: true},
		},
	},
	{
		Name:        UnassignTask,
		Description: "Remove any assignee from a task",
		Props:       []Prop{required(str("id", "Task ID"))},
	},
	{
		Name:        SetFilters,
		Description: "Apply kanban board filters",
		Props: []Prop{
			str("searchQuery", "Search text for title, description, or comments"),
			str("assigneeId", "Teammate ID, '__unassigned__', or blank for all"),
			{Name: "showOnlyMine", Type: TypeBoolean, Description: "true to show only current user's tasks"},
		},
	},
	{
		Name:        ClearFilters,
		Description: "Reset all kanban filters",
		Props:       []Prop{},
	},
	{
		Name:        OpenProfilePanel,
		Description: "Open the profile panel",
		Props:       []Prop{},
	},
	{
		Name:        CloseProfilePanel,
		Description: "Close the profile panel",
		Props:       []Prop{},
	},
	{
		Name:        UpdateProfile,
		Description: "Update the signed-in profile details",
		Props: []Prop{
			str("name", "Full name"),
			str("role", "Role or title"),
			str("email", "Email address"),
			str("status", "Status message"),
		},
	},
	{
		Name:        AddColumn,
		Description: "Add a new column to the board",
		Props: []Prop{
			str("title", "Column title"),
			str("color", "Hex color like #6366F1"),
			{Name: "position", Type: TypeNumber, Description: "Zero-based index for column placement"},
		},
		Returns: true,
	},
	{
		Name:        RenameColumn,
		Description: "Rename an existing column",
		Props: []Prop{
			required(str("id", "Column ID")),
			// A blank title becomes "Untitled column".
			{Name: "title", Type: TypeString, Description: "New title", Required: true, AllowEmpty: true},
		},
	},
	{
		Name:        RemoveColumn,
		Description: "Delete a column and reassign its tasks",
		Props:       []Prop{required(str("id", "Column ID"))},
	},
	{
		Name:        ReorderColumn,
		Description: "Move a column to a new position",
		Props: []Prop{
			required(str("id", "Column ID")),
			{Name: "position", Type: TypeNumber, Description: "Zero-based destination index", Required: true},
		},
	},
	{
		Name:        SetColumnColor,
		Description: "Update a column accent color",
		Props: []Prop{
			required(str("id", "Column ID")),
			required(str("color", "Hex color code")),
		},
	},
}
