package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the view.
type Theme struct {
	Prompt  lipgloss.Style
	Command lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Cursor  lipgloss.Style
}

// DefaultTheme is a green-on-dark shell palette.
var DefaultTheme = Theme{
	Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true),
	Command: lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")),
	Output:  lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true),
	Cursor:  lipgloss.NewStyle().Reverse(true),
}
