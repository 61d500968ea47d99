package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the application styles
type Styles struct {
	// Text hierarchy
	Title lipgloss.Style // App name in the status bar
	Body  lipgloss.Style // Normal text
	Muted lipgloss.Style // De-emphasized text

	// Tab bar
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	StoppedTab lipgloss.Style
	TabBar     lipgloss.Style
	TabPlus    lipgloss.Style

	// Status bar
	Status        lipgloss.Style
	StatusKey     lipgloss.Style
	StatusDesc    lipgloss.Style
	StatusMessage lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the default application styles using Tokyo Night palette
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(ColorForeground),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Tab: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorSurface1).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorSelection).
			Bold(true).
			Padding(0, 1),
		StoppedTab: lipgloss.NewStyle().
			Foreground(ColorError).
			Background(ColorSurface1).
			Padding(0, 1),
		TabBar: lipgloss.NewStyle().
			Background(ColorSurface1),
		TabPlus: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Background(ColorSurface1).
			Padding(0, 1),

		Status: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorSurface2),
		StatusKey: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Background(ColorSurface2),
		StatusDesc: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorSurface2),
		StatusMessage: lipgloss.NewStyle().
			Foreground(ColorInfo).
			Background(ColorSurface2),

		Error: lipgloss.NewStyle().
			Foreground(ColorError),
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),
	}
}
