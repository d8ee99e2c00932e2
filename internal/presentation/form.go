package presentation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"agenda/internal/domain"
)

// EditableEventForm is the editor's projection of a CalendarEvent. Organizer
// and Attendees exist only here and are never written back into the entity.
type EditableEventForm struct {
	ID        string    `json:"id" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	ContactID string    `json:"contact_id"`
	Organizer string    `json:"organizer"`
	Attendees []string  `json:"attendees" validate:"dive,required"`
}

// Project derives the editor form from an event. Missing optional fields
// become empty text; organizer and attendees always start empty.
func Project(event *domain.CalendarEvent) EditableEventForm {
	return EditableEventForm{
		ID:        event.ID,
		Title:     event.Title,
		Location:  deref(event.Location),
		Notes:     deref(event.Notes),
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
		ContactID: deref(event.ContactID),
		Organizer: "",
		Attendees: []string{},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FieldErrors maps a form field (by its json name) to a validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e[k])
	}
	return strings.Join(msgs, "; ")
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate performs the editor's field-level checks. It returns nil when the
// form can be submitted.
func (f EditableEventForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if err := formValidator.Struct(f); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs[fe.Field()] = fieldMessage(fe)
			}
		} else {
			errs["form"] = err.Error()
		}
	}
	if _, ok := errs["title"]; !ok && strings.TrimSpace(f.Title) == "" {
		errs["title"] = "title is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gtefield":
		return fmt.Sprintf("%s must not be before start_date", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
