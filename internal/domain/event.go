package domain

import (
	"context"
	"time"
)

// CalendarEvent is a calendar entry with a time range and an optional linked contact.
// swagger:model CalendarEvent
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  *string   `json:"location"`
	Notes     *string   `json:"notes"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	ContactID *string   `json:"contact_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCalendarEvent returns a new CalendarEvent with the given fields. ID is set by the service on create.
func NewCalendarEvent(title string, startDate, endDate time.Time, createdAt, updatedAt time.Time) *CalendarEvent {
	return &CalendarEvent{
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventFilter narrows event listings. From and To bound start_date (inclusive, exclusive).
type EventFilter struct {
	From *time.Time
	To   *time.Time
	PaginationParams
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *CalendarEvent) error
	GetByID(ctx context.Context, id string) (*CalendarEvent, error)
	List(ctx context.Context, filter EventFilter) ([]*CalendarEvent, int, error)
	Update(ctx context.Context, event *CalendarEvent) (*CalendarEvent, error)
	Delete(ctx context.Context, id string) error
}

// EventEncoder renders an event (and its optional contact) into a portable calendar format.
type EventEncoder interface {
	ContentType() string
	Encode(event *CalendarEvent, contact *Contact) ([]byte, error)
}

// EventService defines the business logic for calendar events.
type EventService interface {
	CreateEvent(ctx context.Context, event *CalendarEvent) error
	GetEvent(ctx context.Context, id string) (*CalendarEvent, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*CalendarEvent, int, error)
	// UpdateEvent replaces the editable fields of the event identified by event.ID.
	UpdateEvent(ctx context.Context, event *CalendarEvent) (*CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
	// ExportEvent returns the encoded event and its content type.
	ExportEvent(ctx context.Context, id string) ([]byte, string, error)
	// ShareEvent emails the encoded event to its linked contact and returns that contact.
	ShareEvent(ctx context.Context, id string) (*Contact, error)
}
