// internal/app/features/items/routes.go
package items

import (
	"github.com/dalemusser/shelfhub/internal/app/features/api"
	"github.com/go-chi/chi/v5"
)

// Routes serves everything under /items. The JSON projection lives here so
// the path nests under the item id.
func Routes(h *Handler, apiHandler *api.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/add/", h.ServeAddForm)
	r.Post("/add/", h.ServeAddSubmit)

	r.Get("/{itemID}/", h.ServeDetail)
	r.Get("/{itemID}/json/", apiHandler.ServeItem)

	r.Get("/{itemID}/edit", h.ServeEditForm)
	r.Post("/{itemID}/edit", h.ServeEditSubmit)

	r.Get("/{itemID}/delete", h.ServeDeleteForm)
	r.Post("/{itemID}/delete", h.ServeDeleteSubmit)

	return r
}
