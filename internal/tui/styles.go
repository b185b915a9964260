package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	Cursor        lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"),
	TitleSelected: lipgloss.Color("#FFEAA7"),
	Cursor:        lipgloss.Color("#74B9FF"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App lipgloss.Style

	Header     lipgloss.Style
	HeaderText lipgloss.Style
	Filter     lipgloss.Style

	Column       lipgloss.Style
	ColumnActive lipgloss.Style
	ColumnTitle  lipgloss.Style

	Card         lipgloss.Style
	CardCursor   lipgloss.Style
	CardSelected lipgloss.Style
	CardMeta     lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Label      lipgloss.Style

	Footer       lipgloss.Style
	StatusText   lipgloss.Style
	ErrorText    lipgloss.Style
	InputPrompt  lipgloss.Style
	ConfirmText  lipgloss.Style
	EmptyMessage lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Colors.Muted).
		Foreground(Colors.TitleNormal).
		Padding(0, 1)
	column := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Colors.Muted).
		Padding(0, 1).
		MarginRight(1)

	return Styles{
		App: lipgloss.NewStyle().Padding(0, 1),

		Header:     lipgloss.NewStyle().MarginBottom(1),
		HeaderText: lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Filter:     lipgloss.NewStyle().Foreground(Colors.Warning),

		Column:       column,
		ColumnActive: column.BorderForeground(Colors.Primary),
		ColumnTitle:  lipgloss.NewStyle().Bold(true),

		Card:         card,
		CardCursor:   card.BorderForeground(Colors.Cursor),
		CardSelected: card.BorderForeground(Colors.TitleSelected).Foreground(Colors.TitleSelected),
		CardMeta:     lipgloss.NewStyle().Foreground(Colors.Muted),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Secondary).
			Padding(1, 2),
		PanelTitle: lipgloss.NewStyle().Bold(true).Foreground(Colors.Secondary).MarginBottom(1),
		Label:      lipgloss.NewStyle().Foreground(Colors.Muted),

		Footer:       lipgloss.NewStyle().MarginTop(1),
		StatusText:   lipgloss.NewStyle().Foreground(Colors.Success),
		ErrorText:    lipgloss.NewStyle().Foreground(Colors.Error),
		InputPrompt:  lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true),
		ConfirmText:  lipgloss.NewStyle().Foreground(Colors.Warning).Bold(true),
		EmptyMessage: lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),
	}
}

// columnColor returns the accent color for a column, falling back to the primary color.
func columnColor(hex string) lipgloss.Color {
	if hex == "" {
		return Colors.Primary
	}
	return lipgloss.Color(hex)
}
