// internal/app/features/upload/routes.go
package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the upload subrouter, mounted at /api/upload.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(requireAdmin).Post("/", h.HandleUpload)
	return r
}
