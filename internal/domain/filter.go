package domain

import "strings"

// FilterState restricts which tasks are visible.
// Fields are ordered to minimize memory padding.
type FilterState struct {
	SearchQuery    string `json:"searchQuery"`
	AssigneeFilter string `json:"assigneeFilter"` // "" = all, UnassignedFilter, or a teammate id
	ShowOnlyMine   bool   `json:"showOnlyMine"`
}

// NormalizedSearch returns the trimmed, lower-cased search query.
func (f FilterState) NormalizedSearch() string {
	return strings.ToLower(strings.TrimSpace(f.SearchQuery))
}

// IsActive reports whether any filter restricts the board.
func (f FilterState) IsActive() bool {
	return f.NormalizedSearch() != "" || f.AssigneeFilter != "" || f.ShowOnlyMine
}

// Matches reports whether task passes every active filter.
// The mine-only, assignee and search predicates are applied conjunctively.
func Matches(task *Task, f FilterState, currentUserID string) bool {
	if f.ShowOnlyMine && task.AssigneeID != currentUserID {
		return false
	}
	if f.AssigneeFilter == UnassignedFilter {
		if task.IsAssigned() {
			return false
		}
	} else if f.AssigneeFilter != "" && task.AssigneeID != f.AssigneeFilter {
		return false
	}
	if search := f.NormalizedSearch(); search != "" {
		parts := make([]string, 0, len(task.Comments)+2)
		parts = append(parts, task.Title, task.Description)
		for _, c := range task.Comments {
			parts = append(parts, c.Text)
		}
		if !strings.Contains(strings.ToLower(strings.Join(parts, " ")), search) {
			return false
		}
	}
	return true
}

// Summary describes the active filters, e.g. `search="x"`, "assignee=Ava Patel", "only my tasks".
func (f FilterState) Summary(roster []Teammate) []string {
	var parts []string
	if search := f.NormalizedSearch(); search != "" {
		parts = append(parts, `search="`+search+`"`)
	}
	switch f.AssigneeFilter {
	case "":
	case UnassignedFilter:
		parts = append(parts, "assignee=unassigned")
	default:
		parts = append(parts, "assignee="+AssigneeLabel(roster, f.AssigneeFilter))
	}
	if f.ShowOnlyMine {
		parts = append(parts, "only my tasks")
	}
	return parts
}

// SummaryText joins Summary with commas, or returns "none".
func (f FilterState) SummaryText(roster []Teammate) string {
	parts := f.Summary(roster)
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
