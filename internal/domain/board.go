package domain

import "time"

// Well-known identifiers and limits.
const (
	DefaultStateKey       = "voix-kanban-state"
	DefaultColumnID       = "todo"
	DoneColumnID          = "done"
	UnassignedFilter      = "__unassigned__"
	UntitledColumn        = "Untitled column"
	MaxSelectedTextLength = 280
	PreviewLimit          = 5
)

// Palette is the accent color cycle used for new columns.
var Palette = []string{"#f97316", "#0ea5e9", "#10b981", "#a855f7", "#f43f5e", "#14b8a6"}

// PaletteColor returns the palette entry for index i.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Column is an ordered lane tasks belong to.
type Column struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Title string `json:"title" yaml:"title" toml:"title"`
	Color string `json:"color" yaml:"color" toml:"color"`
}

// Teammate is a roster member eligible for assignment.
type Teammate struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Role  string `json:"role" yaml:"role" toml:"role"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" toml:"email"`
}

// CurrentUser is the signed-in user.
type CurrentUser struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Name   string `json:"name" yaml:"name" toml:"name"`
	Role   string `json:"role" yaml:"role" toml:"role"`
	Email  string `json:"email" yaml:"email" toml:"email"`
	Status string `json:"status" yaml:"status" toml:"status"`
}

// DefaultColumns returns the three-lane starter board.
func DefaultColumns() []Column {
	return []Column{
		{ID: "todo", Title: "To Do", Color: "#f97316"},
		{ID: "in-progress", Title: "In Progress", Color: "#0ea5e9"},
		{ID: "done", Title: "Done", Color: "#10b981"},
	}
}

// DefaultRoster returns the built-in team.
func DefaultRoster() []Teammate {
	return []Teammate{
		{ID: "ava", Name: "Ava Patel", Role: "Design"},
		{ID: "leo", Name: "Leo Garcia", Role: "Frontend"},
		{ID: "mia", Name: "Mia Chen", Role: "Product"},
		{ID: "noor", Name: "Noor Ibrahim", Role: "QA"},
		{ID: "kai", Name: "Kai Müller", Role: "Backend"},
		{ID: "sara", Name: "Sara Novak", Role: "Project Mgmt"},
		{ID: "emiko", Name: "Emiko Tanaka", Role: "UX Research"},
		{ID: "diego", Name: "Diego Santos", Role: "DevOps"},
		{ID: "bella", Name: "Bella Rossi", Role: "Content"},
		{ID: "amir", Name: "Amir Jalali", Role: "Security"},
		{ID: "lena", Name: "Lena Vogt", Role: "Data Science"},
		{ID: "haru", Name: "Haru Watanabe", Role: "Support"},
		{ID: "quinn", Name: "Quinn Ellis", Role: "Marketing"},
		{ID: "zoe", Name: "Zoe Laurent", Role: "Customer Success"},
	}
}

// DefaultCurrentUser returns the demo signed-in user.
func DefaultCurrentUser() CurrentUser {
	return CurrentUser{
		ID:     "leo",
		Name:   "Leo Garcia",
		Role:   "Frontend Lead",
		Email:  "leo.garcia@voix.demo",
		Status: "Available · Reviewing kanban board",
	}
}

// DefaultTasks returns the sample task set, timestamped at now.
func DefaultTasks(now time.Time) []Task {
	now = now.UTC()
	return []Task{
		{
			ID:           "task-1",
			Title:        "Design landing page",
			Description:  "Create hero section and above-the-fold layout",
			ColumnID:     "todo",
			AssigneeID:   "ava",
			TotalMinutes: 45,
			TimeEntries:  []TimeEntry{{ID: "time-1", Minutes: 45, Note: "Initial wireframes", CreatedAt: now}},
			Comments:     []Comment{{ID: "comment-1", Text: "Remember to include dark mode toggle.", CreatedAt: now}},
		},
		{
			ID:          "task-2",
			Title:       "Connect VOIX tools",
			Description: "Wire up create/move/delete tools in JS",
			ColumnID:    "in-progress",
			AssigneeID:  "leo",
			TimeEntries: []TimeEntry{},
			Comments:    []Comment{},
		},
		{
			ID:          "task-3",
			Title:       "Write interaction context",
			Description: "Hover, selection, modal and active task state",
			ColumnID:    "in-progress",
			AssigneeID:  "mia",
			TimeEntries: []TimeEntry{},
			Comments:    []Comment{},
		},
		{
			ID:           "task-4",
			Title:        "Polish visual design",
			Description:  "Spacing, shadows, responsiveness",
			ColumnID:     "done",
			AssigneeID:   "noor",
			TotalMinutes: 30,
			TimeEntries:  []TimeEntry{{ID: "time-2", Minutes: 30, Note: "Tweaked spacing & shadows", CreatedAt: now}},
			Comments:     []Comment{},
		},
	}
}

// FindTeammate returns the roster member with the given id.
func FindTeammate(roster []Teammate, id string) (Teammate, bool) {
	for _, m := range roster {
		if m.ID == id {
			return m, true
		}
	}
	return Teammate{}, false
}

// AssigneeLabel returns a display name for an assignee id.
func AssigneeLabel(roster []Teammate, id string) string {
	if id == "" {
		return "Unassigned"
	}
	if m, ok := FindTeammate(roster, id); ok {
		return m.Name
	}
	return "Unknown (" + id + ")"
}
