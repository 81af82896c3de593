package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/history"
	"keypad-calculator/internal/observability"
)

// Config carries what the router needs from main.
type Config struct {
	Store history.Store
	// AllowedOrigin enables CORS for one browser origin; empty disables it.
	AllowedOrigin string
}

func NewRouter(cfg Config) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	if cfg.AllowedOrigin != "" {
		r.Use(corsMiddleware(cfg.AllowedOrigin))
	}

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewHandler(cfg.Store))
	history.RegisterRoutes(r, history.NewHandler(cfg.Store))

	return r
}
