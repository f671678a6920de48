// internal/app/features/api/routes.go
package api

import "github.com/go-chi/chi/v5"

// Routes serves the all-items projection; the per-category and per-item
// projections hang off the HTML routers so their paths nest naturally.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeAllItems) // relative to the mount point
	return r
}
