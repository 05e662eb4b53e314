package preview

import "github.com/charmbracelet/lipgloss"

var (
	gold = lipgloss.Color("179")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(gold)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	mutedStyle     = lipgloss.NewStyle().Faint(true)
	categoryStyle  = lipgloss.NewStyle().Foreground(gold)
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle      = lipgloss.NewStyle().Faint(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gold).
			Padding(1, 2)
)
