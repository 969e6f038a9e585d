package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("212")
	subtle = lipgloss.Color("241")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(subtle)
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(accent).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle      = lipgloss.NewStyle().Foreground(subtle)
	doneStyle     = lipgloss.NewStyle().Foreground(subtle).Strikethrough(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	modeStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(accent).Foreground(lipgloss.Color("0"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)
	focusedPane = paneStyle.BorderForeground(accent)
)
