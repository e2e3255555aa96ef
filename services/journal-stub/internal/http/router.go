package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"tripjournal/services/journal-stub/internal/http/handlers"
	"tripjournal/services/journal-stub/internal/http/middleware"
	"tripjournal/services/journal-stub/internal/service"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Store       *service.JournalService
	Tokens      *service.TokenService
	Limiter     service.LoginLimiter
	Logger      *zap.Logger
	CORSOrigins []string
}

// NewRouter wires all HTTP routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = service.NoopLimiter{}
	}
	store := deps.Store

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	r.NotFound(handlers.NewDetailHandler(http.StatusNotFound, "Not Found"))
	r.MethodNotAllowed(handlers.NewDetailHandler(http.StatusMethodNotAllowed, "Method Not Allowed"))

	r.Get("/health", handlers.NewHealthHandler(time.Now()))
	r.Post("/register", handlers.NewRegisterHandler(store, deps.Tokens, logger))
	r.Post("/token", handlers.NewTokenHandler(store, deps.Tokens, limiter, logger))
	r.Get("/media/{id}/content", handlers.NewMediaContentHandler(store, logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Tokens))

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", handlers.NewCreateTripHandler(store, logger))
			r.Get("/", handlers.NewListTripsHandler(store))
			r.Get("/{id}", handlers.NewGetTripHandler(store, logger))
			r.Put("/{id}", handlers.NewUpdateTripHandler(store, logger))
			r.Delete("/{id}", handlers.NewDeleteTripHandler(store, logger))
		})
		r.Route("/events", func(r chi.Router) {
			r.Post("/", handlers.NewCreateEventHandler(store, logger))
			r.Put("/{id}", handlers.NewUpdateEventHandler(store, logger))
			r.Delete("/{id}", handlers.NewDeleteEventHandler(store, logger))
		})
		r.Route("/media", func(r chi.Router) {
			r.Post("/", handlers.NewCreateMediaHandler(store, logger))
			r.Delete("/{id}", handlers.NewDeleteMediaHandler(store, logger))
		})
	})

	return cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept"},
	}).Handler(r)
}
