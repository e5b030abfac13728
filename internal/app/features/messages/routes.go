// internal/app/features/messages/routes.go
package messages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the contact routes. Submissions pass through limit;
// reading and deleting require admin.
func (h *Handler) MountRoutes(r chi.Router, limit, requireAdmin func(http.Handler) http.Handler) {
	r.With(limit).Post("/", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/", h.List)
		r.Delete("/{id}", h.Delete)
	})
}
