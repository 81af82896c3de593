package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the compute endpoint under /api.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/calculate", h.Calculate)
}
