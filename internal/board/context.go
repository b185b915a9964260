package board

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// Context block names. Task blocks are named "task_<id>".
const (
	BlockColumns      = "columns"
	BlockAssignments  = "assignments"
	BlockInteraction  = "interaction"
	BlockProfile      = "profile"
	BlockBoardSummary = "board_summary"
)

const timestampLayout = "2006-01-02 15:04 MST"

var whitespaceRun = regexp.MustCompile(`\s+`)

// ContextBlock is a named plain-text description of part of the board, meant
// for an automated caller that needs to understand deictic references.
type ContextBlock struct {
	Name   string `json:"name"`
	TaskID string `json:"taskId,omitempty"`
	Text   string `json:"text"`
}

// Context returns one block per task followed by the board-level blocks.
func (s *Store) Context() []ContextBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	blocks := make([]ContextBlock, 0, len(s.tasks)+5)
	for i := range s.tasks {
		blocks = append(blocks, s.taskBlock(&s.tasks[i]))
	}
	return append(blocks,
		ContextBlock{Name: BlockColumns, Text: s.columnsText()},
		ContextBlock{Name: BlockAssignments, Text: s.assignmentsText()},
		ContextBlock{Name: BlockInteraction, Text: s.interactionText()},
		ContextBlock{Name: BlockProfile, Text: s.profileText()},
		ContextBlock{Name: BlockBoardSummary, Text: s.boardSummaryText()},
	)
}

// ContextBlock returns the block with the given name.
func (s *Store) ContextBlock(name string) (ContextBlock, bool) {
	for _, b := range s.Context() {
		if b.Name == name {
			return b, true
		}
	}
	return ContextBlock{}, false
}

func (s *Store) taskBlock(task *domain.Task) ContextBlock {
	var lines []string
	lines = append(lines, "Task ID: "+task.ID, "Title: "+task.Title)
	desc := task.Description
	if desc == "" {
		desc = "No description provided."
	}
	lines = append(lines, "Description: "+desc)
	column := task.ColumnID
	if i := s.columnIndex(task.ColumnID); i >= 0 {
		column = s.columns[i].Title
	}
	lines = append(lines, "Column: "+column, "Assignee: "+domain.AssigneeLabel(s.roster, task.AssigneeID))

	if len(task.TimeEntries) == 0 {
		lines = append(lines, "Time entries: none")
	} else {
		lines = append(lines, "Time entries:")
		for i, e := range task.TimeEntries {
			note := e.Note
			if note == "" {
				note = "No note"
			}
			lines = append(lines, fmt.Sprintf("  %d. %s - %s @ %s", i+1, domain.FormatMinutes(e.Minutes), note, e.CreatedAt.Format(timestampLayout)))
		}
	}
	if len(task.Comments) == 0 {
		lines = append(lines, "Comments: none")
	} else {
		lines = append(lines, "Comments:")
		for i, c := range task.Comments {
			lines = append(lines, fmt.Sprintf("  %d. %q @ %s", i+1, c.Text, c.CreatedAt.Format(timestampLayout)))
		}
	}
	return ContextBlock{Name: "task_" + task.ID, TaskID: task.ID, Text: strings.Join(lines, "\n")}
}

func (s *Store) columnsText() string {
	lines := []string{
		"Columns configuration",
		"Active filters: " + s.filters.SummaryText(s.roster),
	}
	for i, col := range s.columns {
		count := s.countTasks(func(t *domain.Task) bool { return t.ColumnID == col.ID })
		color := col.Color
		if color == "" {
			color = "default"
		}
		lines = append(lines, fmt.Sprintf("%d. [%s] %q - Tasks: %d; Color: %s", i+1, col.ID, col.Title, count, color))
	}
	return strings.Join(lines, "\n")
}

func (s *Store) assignmentsText() string {
	lines := []string{
		"Assignments overview",
		"",
		fmt.Sprintf("Current user: %s (%s)", s.user.Name, s.user.Role),
		"",
	}
	for _, m := range s.roster {
		var mine []*domain.Task
		for i := range s.tasks {
			if s.tasks[i].AssigneeID == m.ID {
				mine = append(mine, &s.tasks[i])
			}
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) - %d task(s)", m.Name, m.Role, len(mine)))
		for _, t := range mine {
			lines = append(lines, fmt.Sprintf("  - %s [%s] in column %q", t.Title, t.ID, t.ColumnID))
		}
		lines = append(lines, "")
	}
	var unassigned []*domain.Task
	for i := range s.tasks {
		if !s.tasks[i].IsAssigned() {
			unassigned = append(unassigned, &s.tasks[i])
		}
	}
	lines = append(lines, fmt.Sprintf("Unassigned tasks (%d):", len(unassigned)))
	for _, t := range unassigned {
		lines = append(lines, fmt.Sprintf("  - %s [%s]", t.Title, t.ID))
	}
	return strings.Join(lines, "\n")
}

func (s *Store) interactionText() string {
	hovering, hovered := "no", "none"
	if s.ui.HoveredTaskID != "" {
		hovering, hovered = "yes", fmt.Sprintf("task with id %q", s.ui.HoveredTaskID)
	}
	selected := "none"
	switch n := len(s.ui.SelectedTaskIDs); {
	case n == 1:
		selected = fmt.Sprintf("task with id %q", s.ui.SelectedTaskIDs[0])
	case n > 1:
		selected = fmt.Sprintf("%d tasks (%s)", n, strings.Join(s.ui.SelectedTaskIDs, ", "))
	}
	modal := "closed"
	if s.ui.ActiveModalTaskID != "" {
		modal = fmt.Sprintf("open for task %q", s.ui.ActiveModalTaskID)
	}
	text := "no"
	if s.ui.TextSelectionOn {
		text = fmt.Sprintf("yes - %q", strings.TrimSpace(whitespaceRun.ReplaceAllString(s.ui.SelectedText, " ")))
	}
	return strings.Join([]string{
		"Interaction state. When the user makes deictic references such as 'this task' while selecting or hovering over a task, they refer to that task.",
		"",
		fmt.Sprintf("Mouse hovering over task: %s (%s)", hovering, hovered),
		"Selected tasks: " + selected,
		"Task detail modal: " + modal,
		"Any text selected in page: " + text,
	}, "\n")
}

func (s *Store) profileText() string {
	return strings.Join([]string{
		fmt.Sprintf("Signed in as %s (%s)", s.user.Name, s.user.Role),
		"Status: " + s.user.Status,
		"Email: " + s.user.Email,
		fmt.Sprintf("My open tasks: %d", s.myOpen()),
		fmt.Sprintf("My completed tasks: %d", s.myCompleted()),
		"Filters active: " + s.filters.SummaryText(s.roster),
	}, "\n")
}

func (s *Store) boardSummaryText() string {
	return strings.Join([]string{
		"Kanban board summary",
		"Active filters: " + s.filters.SummaryText(s.roster),
		"Total logged time: " + domain.FormatMinutes(s.totalTimeLogged()),
		fmt.Sprintf("Tasks on board: %d", len(s.tasks)),
		fmt.Sprintf("Visible tasks after filters: %d", len(s.filteredTasks())),
	}, "\n")
}
