package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agenda/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contactRepo    domain.ContactRepository
	encoder        domain.EventEncoder
	emailService   domain.EmailService
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	contactRepo domain.ContactRepository,
	encoder domain.EventEncoder,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contactRepo:    contactRepo,
		encoder:        encoder,
		emailService:   emailService,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func validateEvent(e *domain.CalendarEvent) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrInvalidInput)
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrInvalidInput)
	}
	return nil
}

// normalize trims the title and turns empty optional text into NULL.
func normalize(e *domain.CalendarEvent) {
	e.Title = strings.TrimSpace(e.Title)
	for _, p := range []**string{&e.Location, &e.Notes, &e.ContactID} {
		if *p != nil && strings.TrimSpace(**p) == "" {
			*p = nil
		}
	}
}

func (s *eventService) checkContact(ctx context.Context, contactID *string) error {
	if contactID == nil {
		return nil
	}
	if _, err := s.contactRepo.GetByID(ctx, *contactID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrContactNotFound
		}
		return fmt.Errorf("get contact: %w", err)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.CalendarEvent) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalize(event)
	if err := validateEvent(event); err != nil {
		return err
	}
	if err := s.checkContact(ctx, event.ContactID); err != nil {
		return err
	}
	now := s.now().UTC()
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.CalendarEvent, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, fmt.Errorf("%w: to must not be before from", domain.ErrInvalidInput)
	}
	return s.eventRepo.List(ctx, filter)
}

// UpdateEvent keeps ID and CreatedAt from storage and replaces everything else.
func (s *eventService) UpdateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalize(event)
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	existing, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if err := s.checkContact(ctx, event.ContactID); err != nil {
		return nil, err
	}
	existing.Title = event.Title
	existing.Location = event.Location
	existing.Notes = event.Notes
	existing.StartDate = event.StartDate
	existing.EndDate = event.EndDate
	existing.ContactID = event.ContactID
	existing.UpdatedAt = s.now().UTC()
	return s.eventRepo.Update(ctx, existing)
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.Delete(ctx, id)
}

// linkedContact returns the event's contact, or nil when it has none or the
// contact no longer exists.
func (s *eventService) linkedContact(ctx context.Context, event *domain.CalendarEvent) (*domain.Contact, error) {
	if event.ContactID == nil {
		return nil, nil
	}
	contact, err := s.contactRepo.GetByID(ctx, *event.ContactID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

func (s *eventService) ExportEvent(ctx context.Context, id string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	contact, err := s.linkedContact(ctx, event)
	if err != nil {
		return nil, "", err
	}
	data, err := s.encoder.Encode(event, contact)
	if err != nil {
		return nil, "", fmt.Errorf("encode event: %w", err)
	}
	return data, s.encoder.ContentType(), nil
}

func (s *eventService) ShareEvent(ctx context.Context, id string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contact, err := s.linkedContact(ctx, event)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrContactNotFound
	}
	if strings.TrimSpace(contact.Email) == "" {
		return nil, domain.ErrNoContactEmail
	}
	data, err := s.encoder.Encode(event, contact)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	err = s.emailService.SendEventShare(ctx, &domain.EventShareEmailData{
		ContactName:  contact.Name,
		ContactEmail: contact.Email,
		Title:        event.Title,
		Location:     deref(event.Location),
		Notes:        deref(event.Notes),
		StartDate:    event.StartDate,
		EndDate:      event.EndDate,
		Calendar: domain.Attachment{
			Filename:    "event-" + event.ID + ".ics",
			ContentType: s.encoder.ContentType(),
			Data:        data,
		},
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
