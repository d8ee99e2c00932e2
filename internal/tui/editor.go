package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"agenda/internal/domain"
	"agenda/internal/presentation"
)

// Editor fields in focus order. The contact picker follows the text inputs.
const (
	fieldTitle = iota
	fieldLocation
	fieldNotes
	fieldStart
	fieldEnd
	fieldOrganizer
	fieldAttendees
	fieldContact
	fieldCount
)

// errorField maps a validation key to the input that displays it.
var errorField = map[string]int{
	"title":      fieldTitle,
	"start_date": fieldStart,
	"end_date":   fieldEnd,
	"organizer":  fieldOrganizer,
}

// editorModal is the edit form shown over the detail screen.
type editorModal struct {
	id     string
	inputs [fieldContact]Input
	focus  int

	// loaded holds the start and end the editor opened with. An untouched
	// date input keeps its full precision.
	loaded [fieldCount]time.Time

	contacts        []*domain.Contact
	contactID       string
	contactsLoading bool
	contactsErr     string

	submitErr string
}

func newEditorModal(form presentation.EditableEventForm, contacts presentation.ListView[*domain.Contact]) editorModal {
	m := editorModal{id: form.ID, contactID: form.ContactID}
	m.loaded[fieldStart] = form.StartDate
	m.loaded[fieldEnd] = form.EndDate
	m.inputs[fieldTitle] = NewInput("Title", "Title", form.Title)
	m.inputs[fieldLocation] = NewInput("Location", "Location (optional)", form.Location)
	m.inputs[fieldNotes] = NewInput("Notes", "Notes (optional)", form.Notes)
	m.inputs[fieldStart] = NewInput("Start", inputLayout, formatInput(form.StartDate))
	m.inputs[fieldEnd] = NewInput("End", inputLayout, formatInput(form.EndDate))
	m.inputs[fieldOrganizer] = NewInput("Organizer", "Organizer (optional)", form.Organizer)
	m.inputs[fieldAttendees] = NewInput("Attendees", "comma separated", strings.Join(form.Attendees, ", "))
	m.inputs[fieldTitle].Focus()
	m.setContacts(contacts)
	return m
}

func formatInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(inputLayout)
}

func (m *editorModal) setContacts(v presentation.ListView[*domain.Contact]) {
	m.contacts = v.Items
	m.contactsLoading = v.Loading
	m.contactsErr = v.Error
}

// form reads the inputs back into an EditableEventForm. Unparseable dates
// are reported as field errors.
func (m editorModal) form() (presentation.EditableEventForm, presentation.FieldErrors) {
	errs := presentation.FieldErrors{}
	parse := func(field int, key string) time.Time {
		v := m.inputs[field].Value()
		if v == "" {
			return time.Time{}
		}
		if orig := m.loaded[field]; !orig.IsZero() && v == formatInput(orig) {
			return orig
		}
		t, err := time.ParseInLocation(inputLayout, v, time.Local)
		if err != nil {
			errs[key] = fmt.Sprintf("%s must look like %s", key, inputLayout)
		}
		return t
	}
	attendees := []string{}
	for _, a := range strings.Split(m.inputs[fieldAttendees].Value(), ",") {
		if a = strings.TrimSpace(a); a != "" {
			attendees = append(attendees, a)
		}
	}
	form := presentation.EditableEventForm{
		ID:        m.id,
		Title:     m.inputs[fieldTitle].Value(),
		Location:  m.inputs[fieldLocation].Value(),
		Notes:     m.inputs[fieldNotes].Value(),
		StartDate: parse(fieldStart, "start_date"),
		EndDate:   parse(fieldEnd, "end_date"),
		ContactID: m.contactID,
		Organizer: m.inputs[fieldOrganizer].Value(),
		Attendees: attendees,
	}
	if len(errs) == 0 {
		return form, nil
	}
	return form, errs
}

// showErrors marks every input touched and places each message on its field.
// Messages without a field go to the modal's error line.
func (m *editorModal) showErrors(errs presentation.FieldErrors) {
	var rest []string
	for i := range m.inputs {
		m.inputs[i].Touched = true
		m.inputs[i].Error = ""
	}
	for key, msg := range errs {
		if strings.HasPrefix(key, "attendees") {
			m.inputs[fieldAttendees].Error = msg
			continue
		}
		if f, ok := errorField[key]; ok {
			m.inputs[f].Error = msg
			continue
		}
		rest = append(rest, msg)
	}
	m.submitErr = strings.Join(rest, "; ")
}

func (m *editorModal) setFocus(f int) tea.Cmd {
	m.focus = (f + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// cycleContact moves the picker by delta over "none" plus the contact list.
func (m *editorModal) cycleContact(delta int) {
	n := len(m.contacts) + 1
	idx := 0
	for i, c := range m.contacts {
		if c.ID == m.contactID {
			idx = i + 1
		}
	}
	idx = ((idx+delta)%n + n) % n
	if idx == 0 {
		m.contactID = ""
		return
	}
	m.contactID = m.contacts[idx-1].ID
}

func (m editorModal) Update(msg tea.KeyMsg) (editorModal, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	}
	if m.focus == fieldContact {
		switch msg.String() {
		case "left", "h":
			m.cycleContact(-1)
		case "right", "l", " ":
			m.cycleContact(1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m editorModal) contactLabel() string {
	switch {
	case m.contactsLoading:
		return mutedStyle.Render(presentation.ContactListLoading)
	case m.contactsErr != "":
		return errorStyle.Render(m.contactsErr)
	}
	if m.contactID == "" {
		if len(m.contacts) == 0 {
			return mutedStyle.Render(presentation.ContactListEmpty)
		}
		return mutedStyle.Render("(none)")
	}
	for _, c := range m.contacts {
		if c.ID == m.contactID {
			if c.Email != "" {
				return c.Name + " <" + c.Email + ">"
			}
			return c.Name
		}
	}
	return mutedStyle.Render("(unknown contact)")
}

func (m editorModal) View(width int) string {
	var b strings.Builder
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	label := "Contact:"
	if m.focus == fieldContact {
		label = selectedStyle.Render(label)
	}
	b.WriteString(labelStyle.Render(label) + "< " + m.contactLabel() + " >")
	b.WriteString("\n\n")
	if m.submitErr != "" {
		b.WriteString(errorStyle.Render(m.submitErr))
		b.WriteString("\n\n")
	}
	b.WriteString(mutedStyle.Render("tab: next field  ctrl+s: save  ctrl+d: delete  esc: cancel"))
	return modalBox(width, "Edit event", b.String(), colorPrimary)
}
