package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agenda/internal/delivery/http/helpers"
	"agenda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	start = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end   = start.Add(15 * time.Minute)
)

func standupEvent() *domain.CalendarEvent {
	return &domain.CalendarEvent{ID: eventUUID, Title: "Standup", StartDate: start, EndDate: end}
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		fakeErr    error
		wantStatus int
		wantFilter func(t *testing.T, f domain.EventFilter)
	}{
		{
			name:       "defaults",
			wantStatus: http.StatusOK,
			wantFilter: func(t *testing.T, f domain.EventFilter) {
				assert.Equal(t, domain.PaginationParams{Page: 1, PageSize: 20}, f.PaginationParams)
				assert.Nil(t, f.From)
			},
		},
		{
			name:       "range and page",
			query:      "?page=2&page_size=5&from=2025-03-01T00:00:00Z&to=2025-04-01T00:00:00Z",
			wantStatus: http.StatusOK,
			wantFilter: func(t *testing.T, f domain.EventFilter) {
				assert.Equal(t, 2, f.Page)
				assert.Equal(t, 5, f.PageSize)
				require.NotNil(t, f.From)
				require.NotNil(t, f.To)
				assert.Equal(t, time.March, f.From.Month())
			},
		},
		{name: "bad from", query: "?from=yesterday", wantStatus: http.StatusBadRequest},
		{name: "invalid range", fakeErr: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "service error", fakeErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.fakeErr, events: map[string]*domain.CalendarEvent{eventUUID: standupEvent()}, total: 6}
			c := NewEventController(testLogger, svc)
			req := httptest.NewRequest(http.MethodGet, "/events"+tt.query, nil)
			rr := httptest.NewRecorder()

			c.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var data ListEventsResponse
			require.Nil(t, decodeEnvelope(t, rr.Body, &data))
			require.Len(t, data.Items, 1)
			assert.Equal(t, 6, data.Pagination.Total)
			tt.wantFilter(t, svc.lastFilter)
		})
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantSubstr string
		wantLoc    *string
	}{
		{
			name:       "success",
			body:       `{"title":"Standup","start_date":"2025-03-01T09:00:00Z","end_date":"2025-03-01T09:15:00Z","location":"Room 1"}`,
			wantStatus: http.StatusCreated,
			wantLoc:    strPtr("Room 1"),
		},
		{
			name:       "missing title",
			body:       `{"start_date":"2025-03-01T09:00:00Z","end_date":"2025-03-01T09:15:00Z"}`,
			wantStatus: http.StatusBadRequest,
			wantSubstr: "title is required",
		},
		{
			name:       "end before start",
			body:       `{"title":"x","start_date":"2025-03-01T09:00:00Z","end_date":"2025-03-01T08:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
			wantSubstr: "end_date must not be before start_date",
		},
		{
			name:       "blank contact is unset",
			body:       `{"title":"x","start_date":"2025-03-01T09:00:00Z","end_date":"2025-03-01T09:15:00Z","contact_id":""}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "contact not a uuid",
			body:       `{"title":"x","start_date":"2025-03-01T09:00:00Z","end_date":"2025-03-01T09:15:00Z","contact_id":"c1"}`,
			wantStatus: http.StatusBadRequest,
			wantSubstr: "contact_id must be a UUID",
		},
		{
			name:       "unknown field",
			body:       `{"title":"x","colour":"red"}`,
			wantStatus: http.StatusBadRequest,
			wantSubstr: "unknown field",
		},
		{
			name:       "unknown contact",
			body:       `{"title":"x","start_date":"2025-03-01T09:00:00Z","end_date":"2025-03-01T09:15:00Z","contact_id":"` + contactUUID + `"}`,
			fakeErr:    domain.ErrContactNotFound,
			wantStatus: http.StatusBadRequest,
			wantSubstr: "contact not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.fakeErr}
			c := NewEventController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			c.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantSubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantSubstr)
			}
			if tt.wantStatus == http.StatusCreated {
				var got domain.CalendarEvent
				require.Nil(t, decodeEnvelope(t, rr.Body, &got))
				assert.Equal(t, eventUUID, got.ID)
				assert.Nil(t, svc.lastCreate.ContactID)
				assert.Equal(t, tt.wantLoc, svc.lastCreate.Location)
			}
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "success", eventID: eventUUID, wantStatus: http.StatusOK},
		{name: "not found", eventID: contactUUID, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "malformed id", eventID: "ev-1", wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "service error", eventID: eventUUID, fakeErr: errors.New("db error"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.fakeErr, events: map[string]*domain.CalendarEvent{eventUUID: standupEvent()}}
			c := NewEventController(testLogger, svc)
			req := httptest.NewRequest(http.MethodGet, "/events/"+tt.eventID, nil)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			c.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var got domain.CalendarEvent
			apiErr := decodeEnvelope(t, rr.Body, &got)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.NotContains(t, apiErr.Message, "db error", "driver text stays in the logs")
				return
			}
			assert.Equal(t, "Standup", got.Title)
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	form := `{"id":"` + eventUUID + `","title":"Daily","location":"","notes":"","start_date":"2025-03-01T09:00:00Z","end_date":"2025-03-01T09:30:00Z","contact_id":"","organizer":"ana","attendees":["c1"]}`
	tests := []struct {
		name        string
		body        string
		fakeErr     error
		wantStatus  int
		wantContact *string
	}{
		{name: "full form with ignored fields", body: form, wantStatus: http.StatusOK},
		{name: "blank contact with spaces", body: strings.Replace(form, `"contact_id":""`, `"contact_id":"  "`, 1), wantStatus: http.StatusOK},
		{name: "linked contact", body: strings.Replace(form, `"contact_id":""`, `"contact_id":"`+contactUUID+`"`, 1), wantStatus: http.StatusOK, wantContact: strPtr(contactUUID)},
		{name: "malformed contact", body: strings.Replace(form, `"contact_id":""`, `"contact_id":"c1"`, 1), wantStatus: http.StatusBadRequest},
		{name: "id mismatch", body: strings.Replace(form, eventUUID, contactUUID, 1), wantStatus: http.StatusBadRequest},
		{name: "not found", body: form, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid json", body: `{`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.fakeErr}
			c := NewEventController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPut, "/events/"+eventUUID, strings.NewReader(tt.body))
			req.SetPathValue("eventID", eventUUID)
			rr := httptest.NewRecorder()

			c.UpdateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, svc.lastUpdate)
				assert.Equal(t, eventUUID, svc.lastUpdate.ID)
				assert.Equal(t, "Daily", svc.lastUpdate.Title)
				assert.Equal(t, tt.wantContact, svc.lastUpdate.ContactID)
				assert.Nil(t, svc.lastUpdate.Location, "blank location is stored as NULL")
				assert.Nil(t, svc.lastUpdate.Notes)
			}
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"service error", errors.New("db error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.fakeErr}
			c := NewEventController(testLogger, svc)
			req := httptest.NewRequest(http.MethodDelete, "/events/"+eventUUID, nil)
			req.SetPathValue("eventID", eventUUID)
			rr := httptest.NewRecorder()

			c.DeleteEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, eventUUID, svc.lastDelete)
		})
	}
}

func TestEventController_ExportEvent(t *testing.T) {
	svc := &fakeEventService{exportData: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")}
	c := NewEventController(testLogger, svc)
	req := httptest.NewRequest(http.MethodGet, "/events/"+eventUUID+"/ics", nil)
	req.SetPathValue("eventID", eventUUID)
	rr := httptest.NewRecorder()

	c.ExportEvent(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "event-"+eventUUID+".ics")
	assert.Equal(t, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", rr.Body.String())
}

func TestEventController_ShareEvent(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"no linked contact", domain.ErrContactNotFound, http.StatusBadRequest},
		{"contact without email", domain.ErrNoContactEmail, http.StatusBadRequest},
		{"mailer failure", errors.New("ses down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.fakeErr, shareResult: &domain.Contact{Email: "ana@example.com"}}
			c := NewEventController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/events/"+eventUUID+"/share", nil)
			req.SetPathValue("eventID", eventUUID)
			rr := httptest.NewRecorder()

			c.ShareEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var got ShareEventResponse
				require.Nil(t, decodeEnvelope(t, rr.Body, &got))
				assert.Equal(t, ShareEventResponse{EventID: eventUUID, SentTo: "ana@example.com"}, got)
			}
		})
	}
}
