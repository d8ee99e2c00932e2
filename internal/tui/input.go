package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Input is a labelled text field. Error is shown only once the field has
// been touched or a submit was attempted.
type Input struct {
	Label   string
	Error   string
	Touched bool
	field   textinput.Model
}

// NewInput returns an unfocused input holding value.
func NewInput(label, placeholder, value string) Input {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.SetValue(value)
	return Input{Label: label, field: ti}
}

func (in Input) Value() string {
	return strings.TrimSpace(in.field.Value())
}

func (in *Input) Focus() tea.Cmd {
	return in.field.Focus()
}

func (in *Input) Blur() {
	in.field.Blur()
}

func (in Input) Focused() bool {
	return in.field.Focused()
}

// Update forwards a key to the field and marks it touched when the value changes.
func (in Input) Update(msg tea.Msg) (Input, tea.Cmd) {
	before := in.field.Value()
	var cmd tea.Cmd
	in.field, cmd = in.field.Update(msg)
	if in.field.Value() != before {
		in.Touched = true
		in.Error = ""
	}
	return in, cmd
}

var labelStyle = lipgloss.NewStyle().Width(12).Foreground(colorMuted)

func (in Input) View() string {
	label := in.Label + ":"
	if in.Focused() {
		label = selectedStyle.Render(label)
	}
	out := labelStyle.Render(label) + in.field.View()
	if in.Touched && in.Error != "" {
		out += "\n" + labelStyle.Render("") + errorStyle.Render(in.Error)
	}
	return out
}
