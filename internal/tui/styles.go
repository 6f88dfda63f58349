package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/loganmatson/playbook/internal/models"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	quoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

func skillBadge(skill string) string {
	colors := models.ColorForSkill(skill)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Background(lipgloss.Color(colors.Background)).
		Padding(0, 1).
		Render(skill)
}
