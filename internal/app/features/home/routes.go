// internal/app/features/home/routes.go
package home

import (
	"github.com/dalemusser/shelfhub/internal/app/features/api"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeIndex) // relative to the mount point
	return r
}

// CategoryRoutes serves the per-category pages mounted at /categories. The
// JSON projection lives here so the path nests under the category id.
func CategoryRoutes(h *Handler, apiHandler *api.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{categoryID}/", h.ServeCategory)
	r.Get("/{categoryID}/json/", apiHandler.ServeCategoryItems)
	return r
}
