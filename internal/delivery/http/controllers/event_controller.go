package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"agenda/internal/delivery/http/helpers"
	"agenda/internal/domain"
)

// EventRequest is the request body for POST /events.
type EventRequest struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Location  *string   `json:"location"`
	Notes     *string   `json:"notes"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	ContactID *string   `json:"contact_id" validate:"omitempty,uuid"`
}

// Normalize implements Normalizer. Blank optional text means unset.
func (e *EventRequest) Normalize() {
	e.Location = helpers.BlankToNil(e.Location)
	e.Notes = helpers.BlankToNil(e.Notes)
	e.ContactID = helpers.BlankToNil(e.ContactID)
}

// Validate implements Validator.
func (e EventRequest) Validate() []string {
	return helpers.ValidateStruct(e)
}

func (e EventRequest) toEvent(id string) *domain.CalendarEvent {
	now := time.Now()
	event := domain.NewCalendarEvent(e.Title, e.StartDate, e.EndDate, now, now)
	event.ID = id
	event.Location = e.Location
	event.Notes = e.Notes
	event.ContactID = e.ContactID
	return event
}

// UpdateEventRequest is the request body for PUT /events/{eventID}. It carries
// the whole editable form. Organizer and attendees are accepted and ignored;
// they are not stored.
type UpdateEventRequest struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required,max=200"`
	Location  *string   `json:"location"`
	Notes     *string   `json:"notes"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	ContactID *string   `json:"contact_id" validate:"omitempty,uuid"`
	Organizer string    `json:"organizer"`
	Attendees []string  `json:"attendees"`
}

// Normalize implements Normalizer. The editor sends "" for no contact.
func (u *UpdateEventRequest) Normalize() {
	u.Location = helpers.BlankToNil(u.Location)
	u.Notes = helpers.BlankToNil(u.Notes)
	u.ContactID = helpers.BlankToNil(u.ContactID)
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	return helpers.ValidateStruct(u)
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.CalendarEvent `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListEventsResponse is the data of GET /events.
type ListEventsResponse struct {
	Items      []*domain.CalendarEvent `json:"items"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ShareEventResponse is the data of POST /events/{eventID}/share.
type ShareEventResponse struct {
	EventID string `json:"event_id"`
	SentTo  string `json:"sent_to"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// eventID returns the path identifier, writing a 404 when it cannot name a
// stored event.
func (c *EventController) eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("eventID")
	if _, err := uuid.Parse(id); err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return "", false
	}
	return id, true
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrContactNotFound), errors.Is(err, domain.ErrNoContactEmail), errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, helpers.InternalErrorMessage)
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns events ordered by start date. from/to bound start_date (inclusive, exclusive).
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param from query string false "RFC 3339 lower bound"
// @Param to query string false "RFC 3339 upper bound"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	from, err := helpers.ParseTimeQuery(r, "from")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	to, err := helpers.ParseTimeQuery(r, "to")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), domain.EventFilter{From: from, To: to, PaginationParams: params})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: events, Pagination: meta})
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent("")
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Replace an event's editable fields
// @Description Accepts the full editor form. organizer and attendees are ignored.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Editable form"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.ID != "" && req.ID != id {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "id does not match path")
		return
	}
	event := EventRequest{
		Title:     req.Title,
		Location:  req.Location,
		Notes:     req.Notes,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ContactID: req.ContactID,
	}.toEvent(id)
	updated, err := c.Service.UpdateEvent(r.Context(), event)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportEvent godoc
// @Summary Download an event as iCalendar
// @Tags events
// @Produce text/calendar
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {string} string "iCalendar document"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ics [get]
func (c *EventController) ExportEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}
	data, contentType, err := c.Service.ExportEvent(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="event-`+id+`.ics"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ShareEvent godoc
// @Summary Email an event to its linked contact
// @Description Sends the iCalendar file to the contact linked to the event.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains event_id and sent_to"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no contact or no email)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/share [post]
func (c *EventController) ShareEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}
	contact, err := c.Service.ShareEvent(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ShareEventResponse{EventID: id, SentTo: contact.Email})
}
