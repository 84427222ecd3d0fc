package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	unsyncedStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = tabStyle.Bold(true).Underline(true)
	labelStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func labelBadge(name, color string) string {
	st := labelStyle
	if color != "" {
		st = st.Foreground(lipgloss.Color(color))
	}
	return st.Render("#" + name)
}
