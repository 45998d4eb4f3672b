// Package tui provides the presentation layer for the Specify CLI: the
// banner, interactive pickers, the live provisioning tracker, and result
// panels. It consumes internal/core but core never depends on it.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorPrimary = lipgloss.Color("#22D3EE") // Cyan
	colorSuccess = lipgloss.Color("#10B981") // Green (done)
	colorDanger  = lipgloss.Color("#EF4444") // Red (errors)
	colorWarning = lipgloss.Color("#F59E0B") // Amber (skipped)
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorBright  = lipgloss.Color("#F3F4F6") // Near-white
)

// Shared styles used across views.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	brightStyle = lipgloss.NewStyle().
			Foreground(colorBright)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	errorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(1, 2)

	warningPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWarning).
				Padding(1, 2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)
