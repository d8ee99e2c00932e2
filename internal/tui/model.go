// Package tui is the terminal front end of the agenda client. It renders the
// presentation view-models with bubbletea and feeds user input back to them.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agenda/internal/domain"
	"agenda/internal/presentation"
)

type eventsRefreshedMsg struct{}

type contactsRefreshedMsg struct{}

type detailLoadedMsg struct {
	screen *presentation.DetailScreen
}

type mutationDoneMsg struct {
	screen    *presentation.DetailScreen
	op        string
	confirmed bool
	err       error
}

// Model is the root bubbletea model. The navigation stack decides which
// screen is rendered; modals are layered over the detail screen.
type Model struct {
	ctx      context.Context
	source   presentation.EventSource
	stack    *presentation.Stack
	list     *presentation.EventList
	contacts *presentation.ContactList
	gate     presentation.Confirmer
	policy   presentation.MutationPolicy
	logger   *slog.Logger

	detail  *presentation.DetailScreen
	editor  *editorModal
	confirm *confirmRequestMsg
	busy    bool

	cursor  int
	spinner spinner.Model
	width   int
	height  int
	status  string
}

// New builds the model over the given data layers. gate answers delete
// confirmations; in the running program it is a *ModalConfirmer.
func New(ctx context.Context, source presentation.EventSource, contacts presentation.ContactSource, gate presentation.Confirmer, policy presentation.MutationPolicy, logger *slog.Logger) *Model {
	stack := presentation.NewStack(presentation.Route{Screen: presentation.ScreenEventList})
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)
	return &Model{
		ctx:      ctx,
		source:   source,
		stack:    stack,
		list:     presentation.NewEventList(source, stack, logger),
		contacts: presentation.NewContactList(contacts, logger),
		gate:     gate,
		policy:   policy,
		logger:   logger,
		spinner:  s,
	}
}

// Run starts the program full screen and blocks until the user quits.
func Run(ctx context.Context, source presentation.EventSource, contacts presentation.ContactSource, policy presentation.MutationPolicy, logger *slog.Logger) error {
	gate := &ModalConfirmer{}
	m := New(ctx, source, contacts, gate, policy, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	gate.Bind(p.Send)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshEvents())
}

func (m *Model) refreshEvents() tea.Cmd {
	return func() tea.Msg {
		_ = m.list.Refresh(m.ctx)
		return eventsRefreshedMsg{}
	}
}

func (m *Model) refreshContacts() tea.Cmd {
	return func() tea.Msg {
		_ = m.contacts.Refresh(m.ctx)
		return contactsRefreshedMsg{}
	}
}

// openDetail navigates to the detail screen of id and mounts a fresh screen for it.
func (m *Model) openDetail(id string) tea.Cmd {
	m.list.Select(id)
	screen := presentation.NewDetailScreen(m.source, m.contacts, m.list, m.stack, m.gate, m.policy, m.logger)
	m.detail = screen
	m.editor = nil
	m.status = ""
	mount := func() tea.Msg {
		screen.Mount(m.ctx, id)
		return detailLoadedMsg{screen: screen}
	}
	return tea.Batch(mount, m.refreshContacts())
}

func (m *Model) submit(form presentation.EditableEventForm) tea.Cmd {
	screen := m.detail
	m.busy = true
	return func() tea.Msg {
		err := screen.Submit(m.ctx, form)
		return mutationDoneMsg{screen: screen, op: presentation.OpUpdate, confirmed: true, err: err}
	}
}

func (m *Model) delete() tea.Cmd {
	screen := m.detail
	m.busy = true
	return func() tea.Msg {
		confirmed, err := screen.Delete(m.ctx)
		return mutationDoneMsg{screen: screen, op: presentation.OpDelete, confirmed: confirmed, err: err}
	}
}

func (m *Model) onDetail() bool {
	return m.stack.Current().Screen == presentation.ScreenEventDetail && m.detail != nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventsRefreshedMsg:
		m.clampCursor()
		return m, nil

	case contactsRefreshedMsg:
		if m.editor != nil {
			m.editor.setContacts(m.contacts.View())
		}
		return m, nil

	case detailLoadedMsg:
		return m, nil

	case confirmRequestMsg:
		m.confirm = &msg
		return m, nil

	case mutationDoneMsg:
		return m.onMutationDone(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.answerConfirm(false)
			return m, tea.Quit
		}
		switch {
		case m.confirm != nil:
			return m.handleConfirmKey(msg)
		case m.editor != nil:
			return m.handleEditorKey(msg)
		case m.onDetail():
			return m.handleDetailKey(msg)
		default:
			return m.handleListKey(msg)
		}
	}
	return m, nil
}

func (m *Model) onMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.screen != m.detail {
		return m, nil
	}
	if msg.err != nil {
		m.status = msg.err.Error()
	} else if msg.confirmed {
		m.status = ""
	}
	if m.editor != nil {
		if !m.detail.Editor.Visible() {
			m.editor = nil
		} else {
			var fe presentation.FieldErrors
			switch {
			case errors.As(msg.err, &fe):
				m.editor.showErrors(fe)
			case msg.err != nil:
				m.editor.submitErr = msg.err.Error()
			}
		}
	}
	if !m.onDetail() {
		m.detail = nil
		m.editor = nil
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) answerConfirm(ok bool) {
	if m.confirm == nil {
		return
	}
	m.confirm.reply <- ok
	m.confirm = nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.answerConfirm(true)
	case "n", "N", "esc", "q":
		m.answerConfirm(false)
	}
	return m, nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.detail.CloseEditor()
		m.editor = nil
		return m, nil
	case "ctrl+s":
		form, errs := m.editor.form()
		if errs != nil {
			m.editor.showErrors(errs)
			return m, nil
		}
		return m, m.submit(form)
	case "ctrl+d":
		return m, m.delete()
	}
	ed, cmd := m.editor.Update(msg)
	m.editor = &ed
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "q", "esc", "backspace", "left":
		m.stack.GoBack()
		m.detail = nil
		m.status = ""
		return m, nil
	case "e":
		if m.detail.Edit() {
			ed := newEditorModal(m.detail.Editor.Form(), m.contacts.View())
			m.editor = &ed
			return m, m.refreshContacts()
		}
	case "d":
		if _, ok := m.detail.Controller.State().(presentation.Ready); ok {
			return m, m.delete()
		}
	case "r":
		screen := m.detail
		id := screen.Controller.ID()
		return m, func() tea.Msg {
			screen.Controller.Load(m.ctx, id)
			return detailLoadedMsg{screen: screen}
		}
	}
	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.list.View().Items
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter", "v":
		if m.cursor < len(items) {
			return m, m.openDetail(items[m.cursor].ID)
		}
	case "r":
		m.status = ""
		return m, m.refreshEvents()
	}
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.list.View().Items)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var body, help string
	if m.onDetail() {
		body = m.detailView()
		help = "e: edit  d: delete  r: reload  esc: back  ctrl+c: quit"
	} else {
		body = m.listView()
		help = "↑↓: move  enter: " + strings.ToLower(presentation.ViewEventActionText) + "  r: refresh  q: quit"
	}

	switch {
	case m.confirm != nil:
		p := m.confirm.prompt
		text := p.Message + "\n\n" + mutedStyle.Render("y: "+p.ConfirmLabel+"  n: "+p.CancelLabel)
		body = m.center(modalBox(m.width, p.Title, text, colorDanger))
	case m.editor != nil:
		body = m.center(m.editor.View(m.width))
	}

	status := ""
	if m.busy {
		status = m.spinner.View() + " Working..."
	} else if m.status != "" {
		status = errorStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("agenda"),
		body,
		statusStyle.Render(status),
		helpStyle.Render(help),
	)
}

func (m *Model) center(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, s)
}

func (m *Model) listView() string {
	v := m.list.View()
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Padding(1, 2, 1).Render(presentation.EventListTitle))
	b.WriteString("\n")
	switch {
	case v.Loading && len(v.Items) == 0:
		b.WriteString("  " + m.spinner.View() + " " + presentation.EventListLoading)
	case v.Error != "" && len(v.Items) == 0:
		b.WriteString("  " + errorStyle.Render(v.Error))
	case len(v.Items) == 0:
		b.WriteString("  " + mutedStyle.Render(presentation.EventListEmpty))
	default:
		if v.Error != "" {
			b.WriteString("  " + errorStyle.Render(v.Error) + "\n")
		}
		for i, e := range v.Items {
			b.WriteString(Card(e.Title, e.StartDate, e.EndDate, presentation.ViewEventActionText, i == m.cursor))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) detailView() string {
	pad := lipgloss.NewStyle().Padding(1, 2)
	switch s := m.detail.Controller.State().(type) {
	case presentation.Loading:
		return pad.Render(m.spinner.View() + " Loading event...")
	case presentation.Failed:
		return pad.Render(errorStyle.Render(s.Message))
	case presentation.NotFound:
		return pad.Render(mutedStyle.Render(presentation.NotFoundMessage))
	case presentation.Ready:
		return pad.Render(m.eventDetails(s.Event))
	}
	return ""
}

func (m *Model) eventDetails(e *domain.CalendarEvent) string {
	row := func(label, value string) string {
		return labelStyle.Render(label+":") + value
	}
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, Badge(e.StartDate), " ", lipgloss.NewStyle().Bold(true).Render(e.Title)),
		"",
		row("Start", e.StartDate.Local().Format(inputLayout)),
		row("End", e.EndDate.Local().Format(inputLayout)),
	}
	if e.Location != nil && *e.Location != "" {
		lines = append(lines, row("Location", *e.Location))
	}
	if e.Notes != nil && *e.Notes != "" {
		lines = append(lines, row("Notes", *e.Notes))
	}
	if e.ContactID != nil {
		name := *e.ContactID
		if c, ok := m.contacts.Lookup(name); ok {
			name = c.Name
		}
		lines = append(lines, row("Contact", name))
	}
	return strings.Join(lines, "\n")
}
