package presentation

import (
	"context"
	"log/slog"
	"sync"
)

// DetailController owns the lifecycle of one selected event. It loads the
// event by identifier and publishes a DetailState on every transition.
type DetailController struct {
	source EventSource
	logger *slog.Logger

	mu          sync.Mutex
	id          string
	loaded      bool
	seq         uint64
	state       DetailState
	subscribers []func(DetailState)
}

// NewDetailController returns a controller in the Loading state; the host
// screen is expected to call OnIdentifierChanged on mount.
func NewDetailController(source EventSource, logger *slog.Logger) *DetailController {
	return &DetailController{
		source: source,
		logger: logger,
		state:  BeginLoad(),
	}
}

// ID returns the identifier of the current (or last requested) load.
func (c *DetailController) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// State returns the current presented state.
func (c *DetailController) State() DetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to be called after every published transition.
func (c *DetailController) Subscribe(fn func(DetailState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// OnIdentifierChanged starts a load when id differs from the current one,
// or when nothing has been loaded yet. It returns the resulting state.
func (c *DetailController) OnIdentifierChanged(ctx context.Context, id string) DetailState {
	c.mu.Lock()
	same := c.loaded && c.id == id
	state := c.state
	c.mu.Unlock()
	if same {
		return state
	}
	return c.Load(ctx, id)
}

// Load fetches the event with the given id. The state becomes Loading
// immediately and then exactly one terminal state. The terminal state of a
// load superseded by a later one is returned to the caller but not published.
func (c *DetailController) Load(ctx context.Context, id string) DetailState {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.id = id
	c.loaded = true
	subs := c.setLocked(BeginLoad())
	c.mu.Unlock()
	notify(subs, Loading{})

	event, err := c.source.FetchByID(ctx, id)
	next := Resolve(event, err)
	if f, ok := next.(Failed); ok {
		c.logger.ErrorContext(ctx, "load event failed", "event_id", id, "err", f.Message)
	}

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "discarding superseded load", "event_id", id)
		return next
	}
	subs = c.setLocked(next)
	c.mu.Unlock()
	notify(subs, next)
	return next
}

func (c *DetailController) setLocked(s DetailState) []func(DetailState) {
	c.state = s
	subs := make([]func(DetailState), len(c.subscribers))
	copy(subs, c.subscribers)
	return subs
}

func notify(subs []func(DetailState), s DetailState) {
	for _, fn := range subs {
		fn(s)
	}
}
