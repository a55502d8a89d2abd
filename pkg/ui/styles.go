package ui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all terminal UI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // Soft pastel salmon pink - primary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - success states
	mutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
	alertRed    = lipgloss.Color("203")     // Failure states
)

// Common Styles
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	taskStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	stepActiveStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	stepFailedStyle = lipgloss.NewStyle().
			Foreground(alertRed)

	toolStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	fileStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	progressStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	// FileHeaderStyle frames file names above rendered file contents.
	FileHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(salmonPink)
)
