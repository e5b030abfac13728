// internal/app/features/chat/routes.go
package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts POST / behind limit.
func (h *Handler) MountRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/", h.Chat)
}
