// internal/app/features/cart/routes.go
package cart

import "github.com/go-chi/chi/v5"

// Routes returns the cart subrouter, mounted at /api/cart.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Show)
	r.Delete("/", h.Clear)
	r.Post("/items", h.AddItem)
	r.Put("/items", h.UpdateItem)
	r.Delete("/items", h.RemoveItem)
	return r
}
