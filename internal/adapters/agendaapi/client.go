// Package agendaapi is the HTTP data layer of the agenda client. It talks to
// the agenda API and implements the presentation EventSource and
// ContactSource contracts.
package agendaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agenda/internal/domain"
	"agenda/internal/presentation"
)

// fetchPageSize is the page size used when walking GET /events.
const fetchPageSize = 100

// APIError is a non-2xx response. Its message is the server's error message.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("agenda api returned status: %d", e.Status)
}

// Unwrap maps 404 responses to domain.ErrNotFound.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// Client calls the agenda API with a Bearer token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient returns a client for the API at baseURL. A nil httpClient uses a
// client with a 30 second timeout.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  httpClient,
	}
}

// Events returns the event data layer.
func (c *Client) Events() *Events {
	return &Events{c: c}
}

// Contacts returns the contact data layer.
func (c *Client) Contacts() *Contacts {
	return &Contacts{c: c}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends a JSON request and decodes the envelope's data into out, if out is
// not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach agenda api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode agenda api response: %w", err)
	}
	if resp.StatusCode >= 300 || env.Error != nil {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode agenda api data: %w", err)
	}
	return nil
}

// Events implements presentation.EventSource over the API.
type Events struct {
	c *Client
}

var _ presentation.EventSource = (*Events)(nil)

// NewEvent is the body of POST /events.
type NewEvent struct {
	Title     string    `json:"title"`
	Location  *string   `json:"location,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	ContactID *string   `json:"contact_id,omitempty"`
}

// updateBody is the PUT body: the whole form with empty optional text sent
// as null.
type updateBody struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  *string   `json:"location"`
	Notes     *string   `json:"notes"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	ContactID *string   `json:"contact_id"`
	Organizer string    `json:"organizer"`
	Attendees []string  `json:"attendees"`
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func eventPath(id string) string {
	return "/events/" + url.PathEscape(id)
}

func (e *Events) FetchByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	var event domain.CalendarEvent
	if err := e.c.do(ctx, http.MethodGet, eventPath(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// FetchAll walks every page of GET /events.
func (e *Events) FetchAll(ctx context.Context) ([]*domain.CalendarEvent, error) {
	var all []*domain.CalendarEvent
	for page := 1; ; page++ {
		var data struct {
			Items      []*domain.CalendarEvent `json:"items"`
			Pagination struct {
				TotalPages int `json:"total_pages"`
			} `json:"pagination"`
		}
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(fetchPageSize))
		if err := e.c.do(ctx, http.MethodGet, "/events?"+q.Encode(), nil, &data); err != nil {
			return nil, err
		}
		all = append(all, data.Items...)
		if page >= data.Pagination.TotalPages || len(data.Items) == 0 {
			break
		}
	}
	if all == nil {
		all = []*domain.CalendarEvent{}
	}
	return all, nil
}

// Update sends the whole form. The server ignores organizer and attendees.
func (e *Events) Update(ctx context.Context, form presentation.EditableEventForm) error {
	attendees := form.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	body := updateBody{
		ID:        form.ID,
		Title:     form.Title,
		Location:  optional(form.Location),
		Notes:     optional(form.Notes),
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		ContactID: optional(form.ContactID),
		Organizer: form.Organizer,
		Attendees: attendees,
	}
	return e.c.do(ctx, http.MethodPut, eventPath(form.ID), body, nil)
}

func (e *Events) Delete(ctx context.Context, id string) error {
	return e.c.do(ctx, http.MethodDelete, eventPath(id), nil, nil)
}

// Create stores a new event and returns it with its server-assigned ID.
func (e *Events) Create(ctx context.Context, in NewEvent) (*domain.CalendarEvent, error) {
	var event domain.CalendarEvent
	if err := e.c.do(ctx, http.MethodPost, "/events", in, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Export downloads the event as an iCalendar document.
func (e *Events) Export(ctx context.Context, id string) ([]byte, error) {
	req, err := e.c.newRequest(ctx, http.MethodGet, eventPath(id)+"/ics", nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach agenda api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var env envelope
		apiErr := &APIError{Status: resp.StatusCode}
		if json.NewDecoder(resp.Body).Decode(&env) == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return nil, apiErr
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}
	return data, nil
}

// Share emails the event to its linked contact and returns the recipient.
func (e *Events) Share(ctx context.Context, id string) (string, error) {
	var data struct {
		SentTo string `json:"sent_to"`
	}
	if err := e.c.do(ctx, http.MethodPost, eventPath(id)+"/share", nil, &data); err != nil {
		return "", err
	}
	return data.SentTo, nil
}

// Contacts implements presentation.ContactSource over the API.
type Contacts struct {
	c *Client
}

var _ presentation.ContactSource = (*Contacts)(nil)

// NewContact is the body of POST /contacts.
type NewContact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c *Contacts) FetchAll(ctx context.Context) ([]*domain.Contact, error) {
	contacts := []*domain.Contact{}
	if err := c.c.do(ctx, http.MethodGet, "/contacts", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Contacts) Create(ctx context.Context, in NewContact) (*domain.Contact, error) {
	var contact domain.Contact
	if err := c.c.do(ctx, http.MethodPost, "/contacts", in, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}
