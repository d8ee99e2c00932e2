package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"agenda/internal/delivery/http/helpers"
	"agenda/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	eventUUID   = "1b4e28ba-2fa1-4d3b-a3f5-ef19b5a7633b"
	contactUUID = "6f1c9a52-8c1e-4b8e-9d8f-3a2b1c0d9e8f"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err         error
	events      map[string]*domain.CalendarEvent
	total       int
	lastFilter  domain.EventFilter
	lastCreate  *domain.CalendarEvent
	lastUpdate  *domain.CalendarEvent
	lastDelete  string
	exportData  []byte
	shareResult *domain.Contact
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.CalendarEvent) error {
	f.lastCreate = e
	if f.err != nil {
		return f.err
	}
	e.ID = eventUUID
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.CalendarEvent, int, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]*domain.CalendarEvent, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, f.total, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	f.lastUpdate = e
	if f.err != nil {
		return nil, f.err
	}
	return e, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	f.lastDelete = id
	return f.err
}

func (f *fakeEventService) ExportEvent(ctx context.Context, id string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.exportData, "text/calendar; charset=utf-8", nil
}

func (f *fakeEventService) ShareEvent(ctx context.Context, id string) (*domain.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shareResult, nil
}

// fakeContactService implements domain.ContactService for handler tests.
type fakeContactService struct {
	err        error
	contacts   []*domain.Contact
	lastCreate *domain.Contact
	lastDelete string
}

func (f *fakeContactService) CreateContact(ctx context.Context, c *domain.Contact) error {
	f.lastCreate = c
	if f.err != nil {
		return f.err
	}
	c.ID = contactUUID
	return nil
}

func (f *fakeContactService) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContactService) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	return f.contacts, f.err
}

func (f *fakeContactService) DeleteContact(ctx context.Context, id string) error {
	f.lastDelete = id
	return f.err
}

// decodeEnvelope decodes an APIResponse whose data is unmarshalled into data.
func decodeEnvelope(t *testing.T, body io.Reader, data any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&raw))
	if data != nil && len(raw.Data) > 0 && string(raw.Data) != "null" {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Error
}

func strPtr(s string) *string { return &s }
