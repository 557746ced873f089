package inbound

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorMuted  = lipgloss.Color("#6B7280")
	colorError  = lipgloss.Color("#EF4444")
	colorOK     = lipgloss.Color("#10B981")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(colorOK)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Width(3).
			Align(lipgloss.Center)

	focusedBoxStyle = boxStyle.BorderForeground(colorAccent)

	dotFilled = lipgloss.NewStyle().Foreground(colorAccent).Render("●")
	dotEmpty  = dimStyle.Render("○")
)
