package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"agenda/internal/delivery/http/helpers"
	"agenda/internal/domain"
)

// CreateContactRequest is the request body for POST /contacts.
type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=50"`
}

// Validate implements Validator.
func (c CreateContactRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// ContactSuccessResponse is the success response envelope for single-contact endpoints.
type ContactSuccessResponse struct {
	Data  *domain.Contact   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListContactsSuccessResponse is the success response envelope for GET /contacts (200).
type ListContactsSuccessResponse struct {
	Data  []*domain.Contact `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{Logger: logger, Service: svc}
}

func (c *ContactController) contactID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("contactID")
	if _, err := uuid.Parse(id); err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "contact not found")
		return "", false
	}
	return id, true
}

func (c *ContactController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "contact not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, helpers.InternalErrorMessage)
	}
}

// ListContacts godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListContactsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contacts [get]
func (c *ContactController) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := c.Service.ListContacts(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, contacts)
}

// CreateContact godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contact body CreateContactRequest true "Contact data"
// @Success 201 {object} controllers.ContactSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contacts [post]
func (c *ContactController) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	contact := domain.NewContact(req.Name, req.Email, req.Phone, now, now)
	if err := c.Service.CreateContact(r.Context(), contact); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, contact)
}

// GetContact godoc
// @Summary Get a contact by ID
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param contactID path string true "Contact ID (UUID)"
// @Success 200 {object} controllers.ContactSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /contacts/{contactID} [get]
func (c *ContactController) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := c.contactID(w, r)
	if !ok {
		return
	}
	contact, err := c.Service.GetContact(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Delete a contact
// @Description Events linked to the contact are kept and lose the link.
// @Tags contacts
// @Security BearerAuth
// @Param contactID path string true "Contact ID (UUID)"
// @Success 204 "No content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /contacts/{contactID} [delete]
func (c *ContactController) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := c.contactID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteContact(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
