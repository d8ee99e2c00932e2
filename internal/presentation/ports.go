// Package presentation holds the view-model layer of the agenda client: the
// detail controller, the mutation choreography, the confirmation gate, the
// list view-models and the navigation stack. It depends only on the data
// layer contracts declared here and is driven by a front end such as the
// terminal UI in internal/tui.
package presentation

import (
	"context"

	"agenda/internal/domain"
)

// EventSource is the event data layer consumed by the presentation core.
type EventSource interface {
	// FetchByID returns domain.ErrNotFound when no event has the id.
	FetchByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	// Update receives the full edited projection. Fields the domain entity
	// does not have (organizer, attendees) must be tolerated.
	Update(ctx context.Context, form EditableEventForm) error
	Delete(ctx context.Context, id string) error
	FetchAll(ctx context.Context) ([]*domain.CalendarEvent, error)
}

// ContactSource is the read-only contact data layer.
type ContactSource interface {
	FetchAll(ctx context.Context) ([]*domain.Contact, error)
}

// ListRefresher re-fetches a list from its data layer.
type ListRefresher interface {
	Refresh(ctx context.Context) error
}

// Editor is the editable form view hosted by the detail screen. Its submit,
// close and delete actions map to DetailScreen.Submit, CloseEditor and Delete.
type Editor interface {
	Open(form EditableEventForm)
	Close()
	Visible() bool
}
