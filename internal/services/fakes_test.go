package services

import (
	"context"
	"io"
	"log/slog"

	"agenda/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID    map[string]*domain.CalendarEvent
	err     error // if set, every call returns this error
	lastArg domain.EventFilter
}

func newFakeEventRepo(events ...*domain.CalendarEvent) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.CalendarEvent)}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.CalendarEvent) error {
	if f.err != nil {
		return f.err
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.CalendarEvent, int, error) {
	f.lastArg = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]*domain.CalendarEvent, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeContactRepo is an in-memory ContactRepository for tests.
type fakeContactRepo struct {
	byID map[string]*domain.Contact
	err  error
}

func newFakeContactRepo(contacts ...*domain.Contact) *fakeContactRepo {
	f := &fakeContactRepo{byID: make(map[string]*domain.Contact)}
	for _, c := range contacts {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	if f.err != nil {
		return f.err
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContactRepo) List(ctx context.Context) ([]*domain.Contact, error) {
	out := make([]*domain.Contact, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, f.err
}

func (f *fakeContactRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEncoder encodes an event as its title.
type fakeEncoder struct {
	contact *domain.Contact
	err     error
}

func (f *fakeEncoder) ContentType() string { return "text/calendar" }

func (f *fakeEncoder) Encode(event *domain.CalendarEvent, contact *domain.Contact) ([]byte, error) {
	f.contact = contact
	if f.err != nil {
		return nil, f.err
	}
	return []byte("BEGIN:VCALENDAR " + event.Title), nil
}

// fakeEmailService records shares.
type fakeEmailService struct {
	sent []*domain.EventShareEmailData
	err  error
}

func (f *fakeEmailService) SendEventShare(ctx context.Context, data *domain.EventShareEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

type fakeMailer struct {
	sent []*domain.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg *domain.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.name = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func strPtr(s string) *string { return &s }
