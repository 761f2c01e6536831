package httpx

import (
	"encoding/json"
	"net/http"

	"eventconsole/internal/actions"
	"eventconsole/internal/config"
	"eventconsole/internal/http/handlers"
	middlewarex "eventconsole/internal/http/middleware"
	"eventconsole/internal/pagecache"
	"eventconsole/internal/services/customer"
	"eventconsole/internal/services/customization"
	"eventconsole/internal/services/event"
	"eventconsole/internal/services/eventtype"
	"eventconsole/internal/services/landing"
	"eventconsole/internal/services/organizer"
	"eventconsole/internal/store/repositories"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config        config.Cfg
	Views         pagecache.Cache
	Actions       *actions.Actions
	Customers     *customer.Service
	Organizers    *organizer.Service
	Events        *event.Service
	EventTypes    *eventtype.Service
	Customization *customization.Service
	Landing       *landing.Service
	Uploader      handlers.MediaUploader
	Journal       repositories.UploadJournal // nil when the journal is disabled
}

// NewRouter creates the console HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"journal": deps.Journal != nil,
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middlewarex.AdminAuth(deps.Config))
		a := deps.Actions

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", handlers.ListView(deps.Views, deps.Customers.GetAll))
			r.Post("/", handlers.Create(a.CreateCustomer))
			r.Get("/{id}", handlers.DetailView(deps.Customers.GetByID))
			r.Put("/{id}", handlers.Update(a.UpdateCustomer))
			r.Delete("/{id}", handlers.ByID(a.DeleteCustomer))
		})

		r.Route("/organizers", func(r chi.Router) {
			r.Get("/", handlers.ListView(deps.Views, deps.Organizers.GetAll))
			r.Post("/", handlers.Create(a.CreateOrganizer))
			r.Get("/{id}", handlers.DetailView(deps.Organizers.GetByID))
			r.Put("/{id}", handlers.Update(a.UpdateOrganizer))
			r.Delete("/{id}", handlers.ByID(a.DeleteOrganizer))
			r.Post("/{id}/suspend", handlers.Update(a.SuspendOrganizer))
			r.Post("/{id}/unsuspend", handlers.ByID(a.UnsuspendOrganizer))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", handlers.ListView(deps.Views, deps.Events.GetAll))
			r.Post("/", handlers.Create(a.CreateEvent))
			r.Get("/{id}", handlers.DetailView(deps.Events.GetByID))
			r.Put("/{id}", handlers.Update(a.UpdateEvent))
			r.Delete("/{id}", handlers.ByID(a.DeleteEvent))
			r.Post("/{id}/suspend", handlers.ByID(a.SuspendEvent))
			r.Post("/{id}/unsuspend", handlers.ByID(a.UnsuspendEvent))

			r.Get("/{id}/customization", handlers.DetailView(deps.Customization.GetByEvent))
			r.Put("/{id}/customization", handlers.Update(a.UpdateCustomization))
			r.Get("/{id}/landing-page", handlers.DetailView(deps.Landing.GetByEvent))
		})

		r.Route("/event-types", func(r chi.Router) {
			r.Get("/", handlers.ListView(deps.Views, deps.EventTypes.GetAll))
			r.Post("/", handlers.Create(a.CreateEventType))
			r.Get("/{id}", handlers.DetailView(deps.EventTypes.GetByID))
			r.Put("/{id}", handlers.Update(a.UpdateEventType))
			r.Delete("/{id}", handlers.ByID(a.DeleteEventType))
		})

		r.Route("/landing-pages", func(r chi.Router) {
			r.Post("/", handlers.Create(a.CreateLandingPage))
			r.Put("/{id}", handlers.Update(a.UpdateLandingPage))
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/", handlers.UploadMedia(deps.Uploader))
			if deps.Journal != nil {
				r.Get("/unconfirmed", handlers.UnconfirmedUploads(deps.Journal))
			}
		})
	})

	return r
}
