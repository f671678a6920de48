// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// Routes returns the router for the sign-in page. The /gconnect and
// /gdisconnect endpoints sit at the root so the sign-in button's legacy
// paths keep working; bootstrap registers them directly.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	return r
}
