// internal/app/features/members/routes.go
package members

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the member routes. The list and submit routes are
// public and decide admin behavior themselves; submit passes through
// limit.
func (h *Handler) MountRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.With(limit).Post("/", h.HandleCreate)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Gate.RequireAdmin)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/approve", h.HandleApprove)
		pr.Post("/{id}/badges", h.HandleAwardBadge)
	})
}
