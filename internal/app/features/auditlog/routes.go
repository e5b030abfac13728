// internal/app/features/auditlog/routes.go
package auditlog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the audit log routes (typically under "/api/audit").
// Access is restricted to admins and the owner.
func (h *Handler) MountRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(requireAdmin)

		pr.Get("/", h.ServeList)
		pr.Get("/types", h.ServeTypes)
	})
}
