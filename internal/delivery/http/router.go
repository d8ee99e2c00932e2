package http

import (
	"log/slog"
	"net/http"

	"agenda/internal/delivery/http/controllers"
	"agenda/internal/delivery/http/helpers"
	"agenda/internal/delivery/http/middleware"
	"agenda/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, contactController *controllers.ContactController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEvent))
	mux.HandleFunc("PUT /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/ics", auth(eventController.ExportEvent))
	mux.HandleFunc("POST /events/{eventID}/share", auth(eventController.ShareEvent))

	// Contacts
	mux.HandleFunc("GET /contacts", auth(contactController.ListContacts))
	mux.HandleFunc("POST /contacts", auth(contactController.CreateContact))
	mux.HandleFunc("GET /contacts/{contactID}", auth(contactController.GetContact))
	mux.HandleFunc("DELETE /contacts/{contactID}", auth(contactController.DeleteContact))

	mux.HandleFunc("GET /health", health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
