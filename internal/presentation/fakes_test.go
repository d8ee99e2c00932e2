package presentation

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"agenda/internal/domain"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// journal records collaborator calls in order across all fakes.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) record(call string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, call)
}

func (j *journal) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.calls))
	copy(out, j.calls)
	return out
}

// fakeSource is an in-memory EventSource and ContactSource.
type fakeSource struct {
	j         *journal
	mu        sync.Mutex
	events    map[string]*domain.CalendarEvent
	fetchErr  error
	updateErr error
	deleteErr error
	listErr   error
	updated   []EditableEventForm
	// hold blocks FetchByID for an id until the channel is closed; entered
	// is signalled when such a fetch starts.
	hold    map[string]chan struct{}
	entered chan string
}

func newFakeSource(j *journal, events ...*domain.CalendarEvent) *fakeSource {
	f := &fakeSource{j: j, events: make(map[string]*domain.CalendarEvent)}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeSource) FetchByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	f.j.record("fetch:" + id)
	f.mu.Lock()
	hold := f.hold[id]
	f.mu.Unlock()
	if hold != nil {
		if f.entered != nil {
			f.entered <- id
		}
		<-hold
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSource) Update(ctx context.Context, form EditableEventForm) error {
	f.j.record("update:" + form.ID)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, form)
	return f.updateErr
}

func (f *fakeSource) Delete(ctx context.Context, id string) error {
	f.j.record("delete:" + id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, id)
	return nil
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]*domain.CalendarEvent, error) {
	f.j.record("refresh")
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.CalendarEvent, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

// fakeContacts is an in-memory ContactSource.
type fakeContacts struct {
	contacts []*domain.Contact
	err      error
}

func (f *fakeContacts) FetchAll(ctx context.Context) ([]*domain.Contact, error) {
	return f.contacts, f.err
}

// fakeNav records navigation calls.
type fakeNav struct {
	j *journal
}

func (n *fakeNav) GoBack() { n.j.record("goBack") }

func (n *fakeNav) NavigateTo(screen ScreenID, params Params) {
	n.j.record("navigate:" + string(screen) + ":" + params.EventID)
}

// fakeEditor records editor calls on top of EditorState.
type fakeEditor struct {
	EditorState
	j *journal
}

func (e *fakeEditor) Close() {
	e.j.record("closeEditor")
	e.EditorState.Close()
}

// countingConfirmer answers with decision and counts prompts.
type countingConfirmer struct {
	decision bool
	asked    int
	last     Prompt
}

func (c *countingConfirmer) Confirm(ctx context.Context, p Prompt) bool {
	c.asked++
	c.last = p
	return c.decision
}

func strPtr(s string) *string { return &s }
