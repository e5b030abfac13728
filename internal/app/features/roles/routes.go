// internal/app/features/roles/routes.go
package roles

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the roles subrouter, mounted at /api/roles. The gate
// checks the owner again when the admin list changes.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Show)

	r.With(auth.RequireSignedIn).Post("/init", h.Init)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Gate.RequireOwner)
		pr.Post("/admins", h.AddAdmin)
		pr.Delete("/admins/{email}", h.RemoveAdmin)
	})
	return r
}
