package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Title     lipgloss.Style
	Dim       lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Merged    lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Elapsed   lipgloss.Style
	Pane      lipgloss.Style
}

// newStyles builds the style set around the configured accent color so the
// whole interface follows a single settings value.
func newStyles(accent string) Styles {
	a := lipgloss.Color(accent)
	return Styles{
		Tab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("243")),
		ActiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(a).
			Underline(true),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(a),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Cursor: lipgloss.NewStyle().
			Foreground(a).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Merged: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Elapsed: lipgloss.NewStyle().
			Bold(true).
			Foreground(a),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(a).
			Padding(0, 1),
	}
}
