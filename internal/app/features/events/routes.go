// internal/app/features/events/routes.go
package events

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the events routes. Reads are public; writes pass
// through requireAdmin.
func (h *Handler) MountRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
