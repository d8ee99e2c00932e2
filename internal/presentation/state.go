package presentation

import (
	"errors"

	"agenda/internal/domain"
)

// DetailState is the presented state of a detail screen. Exactly one of
// Loading, Failed, Ready or NotFound.
type DetailState interface {
	isDetailState()
}

// Loading means a fetch is in flight.
type Loading struct{}

// Failed means the fetch itself failed. Message is shown verbatim.
type Failed struct {
	Message string
}

// Ready holds the loaded event.
type Ready struct {
	Event *domain.CalendarEvent
}

// NotFound means the fetch succeeded but yielded no event.
type NotFound struct{}

func (Loading) isDetailState()  {}
func (Failed) isDetailState()   {}
func (Ready) isDetailState()    {}
func (NotFound) isDetailState() {}

// NotFoundMessage is displayed for the NotFound state.
const NotFoundMessage = "Event not found."

// BeginLoad is the transition taken when a load starts.
func BeginLoad() DetailState {
	return Loading{}
}

// Resolve is the transition taken when a load completes.
func Resolve(event *domain.CalendarEvent, err error) DetailState {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NotFound{}
	case err != nil:
		return Failed{Message: err.Error()}
	case event == nil:
		return NotFound{}
	default:
		return Ready{Event: event}
	}
}

// IsTerminal reports whether s ends a load cycle.
func IsTerminal(s DetailState) bool {
	switch s.(type) {
	case Failed, Ready, NotFound:
		return true
	default:
		return false
	}
}
