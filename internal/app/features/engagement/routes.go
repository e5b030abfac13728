// internal/app/features/engagement/routes.go
package engagement

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes adds the like and comment routes for collection to a router
// already mounted at /api/<collection>. limit throttles both writes.
func (h *Handler) MountRoutes(r chi.Router, collection string, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/{id}/like", h.Like(collection))
	r.With(limit).Post("/{id}/comments", h.Comment(collection))
}
