package tui

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"agenda/internal/domain"
	"agenda/internal/presentation"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type memorySource struct {
	mu        sync.Mutex
	events    map[string]*domain.CalendarEvent
	updated   []presentation.EditableEventForm
	deleted   []string
	updateErr error
	listErr   error
}

func newMemorySource(events ...*domain.CalendarEvent) *memorySource {
	s := &memorySource{events: map[string]*domain.CalendarEvent{}}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *memorySource) FetchByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memorySource) Update(ctx context.Context, form presentation.EditableEventForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, form)
	if s.updateErr != nil {
		return s.updateErr
	}
	if e, ok := s.events[form.ID]; ok {
		e.Title = form.Title
	}
	return nil
}

func (s *memorySource) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	delete(s.events, id)
	return nil
}

func (s *memorySource) FetchAll(ctx context.Context) ([]*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*domain.CalendarEvent, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

type memoryContacts struct {
	contacts []*domain.Contact
}

func (c memoryContacts) FetchAll(ctx context.Context) ([]*domain.Contact, error) {
	return c.contacts, nil
}

func standup() *domain.CalendarEvent {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	return &domain.CalendarEvent{ID: "e1", Title: "Standup", StartDate: start, EndDate: start.Add(15 * time.Minute)}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command produced by feeding its messages back
// into the model. Spinner ticks are dropped so the loop ends.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

// press sends a key and returns the resulting command without running it.
func press(m *Model, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}
