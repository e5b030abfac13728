// internal/app/features/orders/routes.go
package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts tracking and the admin order routes. Checkout
// (POST /) is mounted by the checkout feature on the same router.
func (h *Handler) MountRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/track", h.Track)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.UpdateStatus)
		r.Delete("/{id}", h.Delete)
	})
}
