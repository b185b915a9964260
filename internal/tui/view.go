package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
)

const (
	defaultWidth   = 100
	minColumnWidth = 20
	maxColumnWidth = 40
)

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case ModeHelp:
		return m.styles.App.Render(m.viewHelp())
	case ModeDetail:
		return m.styles.App.Render(m.viewDetail())
	case ModeProfile:
		return m.styles.App.Render(m.viewProfile())
	case ModeNormal, ModeConfirm, ModeInputTitle, ModeSearch, ModeAssigneeFilter,
		ModeAssign, ModeComment, ModeTime, ModeNewColumn, ModeRenameColumn:
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewBoard(),
		m.viewFooter(),
	))
}

// viewHeader renders the title, counters and active filters.
func (m *Model) viewHeader() string {
	user := m.store.CurrentUser()
	title := m.styles.HeaderText.Render("Kanban")
	counts := m.styles.CardMeta.Render(fmt.Sprintf(
		"%d tasks · %d done · %s logged · %s (%s)",
		m.store.FilteredCount(),
		m.store.DoneTasksCount(),
		domain.FormatMinutes(m.store.TotalTimeLogged()),
		user.Name,
		m.store.CurrentUserInitials(),
	))
	lines := []string{title + "  " + counts}
	if summary := m.store.FilterSummary(); len(summary) > 0 {
		lines = append(lines, m.styles.Filter.Render("Filters: "+strings.Join(summary, ", ")))
	}
	return m.styles.Header.Render(strings.Join(lines, "\n"))
}

// viewBoard renders the known columns side by side.
func (m *Model) viewBoard() string {
	groups := m.groups()
	width := m.columnWidth(len(groups))
	selected := m.store.Interaction()
	rendered := make([]string, 0, len(groups))
	for i, g := range groups {
		rendered = append(rendered, m.viewColumn(g, i == m.col, width, &selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewColumn renders one column and its cards.
func (m *Model) viewColumn(g board.ColumnGroup, active bool, width int, ui *domain.Interaction) string {
	style := m.styles.Column
	if active {
		style = m.styles.ColumnActive
	}
	title := m.styles.ColumnTitle.Foreground(columnColor(g.Column.Color)).
		Render(fmt.Sprintf("%s (%d)", truncate.StringWithTail(g.Column.Title, uint(width-6), "…"), len(g.Tasks)))

	parts := []string{title}
	if len(g.Tasks) == 0 {
		parts = append(parts, m.styles.EmptyMessage.Render("empty"))
	}
	for row, t := range g.Tasks {
		parts = append(parts, m.viewCard(t, active && row == m.row, ui.IsSelected(t.ID), width-4))
	}
	return style.Width(width).Render(strings.Join(parts, "\n"))
}

// viewCard renders one task card.
func (m *Model) viewCard(t domain.Task, cursor, selected bool, width int) string {
	style := m.styles.Card
	switch {
	case selected:
		style = m.styles.CardSelected
	case cursor:
		style = m.styles.CardCursor
	}
	inner := width - 4
	if inner < 1 {
		inner = 1
	}

	meta := "unassigned"
	if t.IsAssigned() {
		meta = domain.Initials(m.store.AssigneeLabel(t.AssigneeID))
	}
	if t.TotalMinutes > 0 {
		meta += " · " + domain.FormatMinutes(t.TotalMinutes)
	}
	if n := len(t.Comments); n > 0 {
		meta += fmt.Sprintf(" · %d comments", n)
	}

	marker := ""
	if cursor {
		marker = "▸ "
	}
	body := truncate.StringWithTail(marker+t.Title, uint(inner), "…") + "\n" +
		m.styles.CardMeta.Render(truncate.StringWithTail(meta, uint(inner), "…"))
	return style.Width(width).Render(body)
}

// viewFooter renders the prompt, status line and short help.
func (m *Model) viewFooter() string {
	var lines []string
	switch {
	case m.mode == ModeConfirm:
		lines = append(lines, m.styles.ConfirmText.Render(m.confirmPrompt()))
	case m.mode.IsInputMode():
		lines = append(lines, m.styles.InputPrompt.Render(m.input.Placeholder+": ")+m.input.View())
	}
	if m.err != nil {
		lines = append(lines, m.styles.ErrorText.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		lines = append(lines, m.styles.StatusText.Render(m.status))
	}
	if n := len(m.store.Interaction().SelectedTaskIDs); n > 0 {
		lines = append(lines, m.styles.CardMeta.Render(fmt.Sprintf("%d selected", n)))
	}
	lines = append(lines, m.help.View(m.keys))
	return m.styles.Footer.Render(strings.Join(lines, "\n"))
}

// confirmPrompt describes the pending confirmation.
func (m *Model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmDeleteTasks:
		ui := m.store.Interaction()
		n := len(ui.SelectedTaskIDs)
		if task, ok := m.currentTask(); ok && !ui.IsSelected(task.ID) {
			n = 1
		}
		return fmt.Sprintf("Delete %d task(s)? (y/n)", n)
	case ConfirmRemoveColumn:
		col, _ := m.currentColumn()
		return fmt.Sprintf("Remove column %q? Its tasks stay on the board. (y/n)", col.Title)
	case ConfirmNone:
	}
	return ""
}

// viewDetail renders the open task.
func (m *Model) viewDetail() string {
	task, ok := m.store.ActiveTask()
	if !ok {
		return m.styles.EmptyMessage.Render("Task no longer exists. Press esc.")
	}

	column := task.ColumnID
	for _, c := range m.store.Columns() {
		if c.ID == task.ColumnID {
			column = c.Title
			break
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render(task.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Column:  "), column)
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Assignee:"), m.store.AssigneeLabel(task.AssigneeID))
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Logged:  "), domain.FormatMinutes(task.TotalMinutes))
	if task.Description != "" {
		b.WriteString("\n" + task.Description + "\n")
	}
	if len(task.TimeEntries) > 0 {
		b.WriteString("\n" + m.styles.Label.Render("Time entries") + "\n")
		for _, e := range task.TimeEntries {
			fmt.Fprintf(&b, "  %s  %s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), domain.FormatMinutes(e.Minutes), e.Note)
		}
	}
	if len(task.Comments) > 0 {
		b.WriteString("\n" + m.styles.Label.Render("Comments") + "\n")
		for _, c := range task.Comments {
			fmt.Fprintf(&b, "  %s  %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Text)
		}
	}
	b.WriteString("\n" + m.styles.CardMeta.Render("c comment · t log time · esc close"))
	return m.styles.Panel.Render(b.String())
}

// viewProfile renders the current user's profile panel.
func (m *Model) viewProfile() string {
	user := m.store.CurrentUser()
	stats := m.store.ProfileStats()

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render(fmt.Sprintf("%s (%s)", user.Name, m.store.CurrentUserInitials())))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Role:  "), user.Role)
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Email: "), user.Email)
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Status:"), user.Status)
	fmt.Fprintf(&b, "\nOpen %d · Closed %d · Done column %d · Logged %s\n",
		stats.Open, stats.Closed, stats.DoneColumn, stats.TotalTime)

	if preview := m.store.MyTasksPreview(); len(preview) > 0 {
		b.WriteString("\n" + m.styles.Label.Render("My tasks") + "\n")
		for _, t := range preview {
			b.WriteString("  • " + t.Title + "\n")
		}
	}
	b.WriteString("\n" + m.styles.CardMeta.Render("esc close"))
	return m.styles.Panel.Render(b.String())
}

// viewHelp renders the full key help.
func (m *Model) viewHelp() string {
	h := m.help
	h.ShowAll = true
	return m.styles.Panel.Render(m.styles.PanelTitle.Render("Keys") + "\n" + h.View(m.keys))
}

// columnWidth divides the terminal width across n columns.
func (m *Model) columnWidth(n int) int {
	if n < 1 {
		n = 1
	}
	total := m.width
	if total <= 0 {
		total = defaultWidth
	}
	w := total/n - 1
	return clamp(w, minColumnWidth, maxColumnWidth)
}
