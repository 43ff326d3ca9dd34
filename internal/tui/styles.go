package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"packaged": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"staged":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Active states
		"cleaning":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"installing": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"metadata":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"tools":      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"deploying":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Skipped
		"up to date": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		// Error
		"failed": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		// Pending
		"pending": lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
