// Package ical encodes calendar events as iCalendar (RFC 5545) documents.
package ical

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"agenda/internal/domain"
)

// ProductID identifies the producer in exported calendars.
const ProductID = "-//agenda//event export//EN"

// ContentType of an encoded calendar.
const ContentType = "text/calendar; charset=utf-8"

type encoder struct {
	domain string
}

// NewEncoder returns an EventEncoder producing one VEVENT per calendar. UIDs
// are the event ID qualified with uidDomain.
func NewEncoder(uidDomain string) domain.EventEncoder {
	if uidDomain == "" {
		uidDomain = "agenda.local"
	}
	return &encoder{domain: uidDomain}
}

func (e *encoder) ContentType() string {
	return ContentType
}

func (e *encoder) Encode(event *domain.CalendarEvent, contact *domain.Contact) ([]byte, error) {
	if event == nil || event.ID == "" {
		return nil, fmt.Errorf("encode: event has no id")
	}
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)

	ev := cal.AddEvent(event.ID + "@" + e.domain)
	ev.SetDtStampTime(stamp(event))
	if !event.CreatedAt.IsZero() {
		ev.SetCreatedTime(event.CreatedAt.UTC())
	}
	if !event.UpdatedAt.IsZero() {
		ev.SetModifiedAt(event.UpdatedAt.UTC())
	}
	ev.SetStartAt(event.StartDate.UTC())
	ev.SetEndAt(event.EndDate.UTC())
	ev.SetSummary(event.Title)
	if event.Location != nil && *event.Location != "" {
		ev.SetLocation(*event.Location)
	}
	if event.Notes != nil && *event.Notes != "" {
		ev.SetDescription(*event.Notes)
	}
	if contact != nil && strings.TrimSpace(contact.Email) != "" {
		ev.AddAttendee(contact.Email, ics.WithCN(contact.Name))
	}
	return []byte(cal.Serialize()), nil
}

// stamp is the DTSTAMP: last modification, else creation, else now.
func stamp(event *domain.CalendarEvent) time.Time {
	switch {
	case !event.UpdatedAt.IsZero():
		return event.UpdatedAt.UTC()
	case !event.CreatedAt.IsZero():
		return event.CreatedAt.UTC()
	default:
		return time.Now().UTC()
	}
}
