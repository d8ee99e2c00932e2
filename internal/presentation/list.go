package presentation

import (
	"context"
	"log/slog"
	"sync"

	"agenda/internal/domain"
)

// Messages shown by list screens.
const (
	EventListTitle      = "Upcoming events"
	EventListLoading    = "Loading events..."
	EventListEmpty      = "No events available."
	ContactListLoading  = "Loading contacts..."
	ContactListEmpty    = "No contacts available."
	ViewEventActionText = "View"
)

// ListView is a snapshot of a list view-model: items plus loading and
// error flags. Error is empty when the last refresh succeeded.
type ListView[T any] struct {
	Items   []T
	Loading bool
	Error   string
}

type collection[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	err     string
}

func (c *collection[T]) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
}

func (c *collection[T]) finish(items []T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = err.Error()
		return
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.err = ""
}

func (c *collection[T]) view() ListView[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return ListView[T]{Items: items, Loading: c.loading, Error: c.err}
}

// EventList is the view-model behind the event list screen.
type EventList struct {
	source EventSource
	nav    Navigator
	logger *slog.Logger
	events collection[*domain.CalendarEvent]
}

// NewEventList returns an empty, idle event list.
func NewEventList(source EventSource, nav Navigator, logger *slog.Logger) *EventList {
	return &EventList{source: source, nav: nav, logger: logger}
}

// Refresh re-fetches all events. On failure the previous items are kept and
// the error message is exposed through View.
func (l *EventList) Refresh(ctx context.Context) error {
	l.events.begin()
	events, err := l.source.FetchAll(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "refresh events failed", "err", err)
	}
	l.events.finish(events, err)
	return err
}

// View returns the current snapshot.
func (l *EventList) View() ListView[*domain.CalendarEvent] {
	return l.events.view()
}

// Select translates a per-item selection into navigation to the detail screen.
func (l *EventList) Select(id string) {
	l.nav.NavigateTo(ScreenEventDetail, Params{EventID: id})
}

// ContactList is the read-only contact view-model used by the editor.
type ContactList struct {
	source   ContactSource
	logger   *slog.Logger
	contacts collection[*domain.Contact]
}

// NewContactList returns an empty, idle contact list.
func NewContactList(source ContactSource, logger *slog.Logger) *ContactList {
	return &ContactList{source: source, logger: logger}
}

func (l *ContactList) Refresh(ctx context.Context) error {
	l.contacts.begin()
	contacts, err := l.source.FetchAll(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "refresh contacts failed", "err", err)
	}
	l.contacts.finish(contacts, err)
	return err
}

func (l *ContactList) View() ListView[*domain.Contact] {
	return l.contacts.view()
}

// Lookup returns the contact with the given id from the last refresh.
func (l *ContactList) Lookup(id string) (*domain.Contact, bool) {
	if id == "" {
		return nil, false
	}
	for _, c := range l.View().Items {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
