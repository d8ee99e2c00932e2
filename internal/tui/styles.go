package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("62")
	colorDanger  = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("243")
	colorText    = lipgloss.Color("252")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(1, 2, 0)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorDanger)
	selectedStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)
	statusStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			MarginLeft(2)
	selectedCardStyle = cardStyle.BorderForeground(colorPrimary)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(colorPrimary).
			Padding(0, 1)
)

const (
	badgeLayout = "Mon 02 Jan"
	timeLayout  = "15:04"
	// inputLayout is how dates are typed into the editor, in local time.
	inputLayout = "2006-01-02 15:04"
)

// Badge renders the date badge shown on an event card.
func Badge(t time.Time) string {
	return badgeStyle.Render(t.Local().Format(badgeLayout))
}

// Card renders an event card: title, date badge, time range and the action label.
func Card(title string, start, end time.Time, action string, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	head := lipgloss.NewStyle().Bold(true).Render(title)
	when := mutedStyle.Render(start.Local().Format(timeLayout) + " - " + end.Local().Format(timeLayout))
	act := mutedStyle.Render("[" + action + "]")
	if selected {
		act = selectedStyle.Render("[" + action + "]")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, Badge(start), " ", head),
		when+"  "+act,
	)
	return style.Render(body)
}

// modalBox renders a bordered dialog sized to the screen width.
func modalBox(screenWidth int, title, body string, border lipgloss.Color) string {
	w := screenWidth - 12
	if w < 20 {
		w = 20
	}
	if w > 72 {
		w = 72
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(border).Render(title)
	return lipgloss.NewStyle().
		Width(w).
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(header + "\n\n" + body)
}
