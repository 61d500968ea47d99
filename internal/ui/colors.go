package ui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night-inspired color palette
// Muted, accessible, easy on eyes
var (
	// Base palette
	ColorBackground    = lipgloss.Color("#1a1b26") // Dark blue-gray
	ColorForeground    = lipgloss.Color("#a9b1d6") // Soft lavender-white
	ColorMuted         = lipgloss.Color("#565f89") // Dimmed text
	ColorBorder        = lipgloss.Color("#292e42") // Subtle borders
	ColorBorderFocused = lipgloss.Color("#7aa2f7") // Blue highlight

	// Semantic colors
	ColorPrimary   = lipgloss.Color("#7aa2f7") // Blue - primary actions, focus
	ColorSecondary = lipgloss.Color("#bb9af7") // Purple - secondary elements
	ColorSuccess   = lipgloss.Color("#9ece6a") // Green - success feedback
	ColorWarning   = lipgloss.Color("#e0af68") // Yellow - warnings
	ColorError     = lipgloss.Color("#f7768e") // Red - errors, stopped surfaces
	ColorInfo      = lipgloss.Color("#7dcfff") // Cyan - info messages

	// Surface colors for layering
	ColorSurface1 = lipgloss.Color("#1f2335") // Slightly elevated
	ColorSurface2 = lipgloss.Color("#24283b") // More elevated

	// Selection/highlight
	ColorSelection = lipgloss.Color("#33467c") // Selection background
)
