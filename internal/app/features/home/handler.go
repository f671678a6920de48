// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/catalog"
	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"github.com/dalemusser/shelfhub/internal/app/system/timeouts"
	"github.com/dalemusser/shelfhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type pageData struct {
	Title      string
	IsLoggedIn bool
	UserName   string
	Categories []models.Category
	Items      []models.Item
	Category   *models.Category
	ItemCount  int
}

type Handler struct {
	Svc *catalog.Service
	Log *zap.Logger
}

func NewHandler(svc *catalog.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// ServeIndex handles GET /. It shows every category alongside the latest
// items, newest first.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	user, signedIn := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		h.Log.Error("list categories failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	latest, err := h.Svc.ListLatestItems(ctx)
	if err != nil {
		h.Log.Error("list latest items failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:      "Catalog",
		Categories: cats,
		Items:      latest,
	}
	if signedIn {
		data.IsLoggedIn = true
		data.UserName = user.Name
	}

	templates.Render(w, r, "home", data)
}

// ServeCategory handles GET /categories/{categoryID}/. It lists the
// category's items by name; a category with no items renders an empty list.
func (h *Handler) ServeCategory(w http.ResponseWriter, r *http.Request) {
	catID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	user, signedIn := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		h.Log.Error("list categories failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var selected *models.Category
	for i := range cats {
		if cats[i].ID == catID {
			selected = &cats[i]
			break
		}
	}
	if selected == nil {
		http.NotFound(w, r)
		return
	}

	items, err := h.Svc.ListItemsByCategory(ctx, catID)
	if err != nil {
		h.Log.Error("list category items failed",
			zap.String("category_id", catID.Hex()), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:      selected.Name,
		Categories: cats,
		Items:      items,
		Category:   selected,
		ItemCount:  len(items),
	}
	if signedIn {
		data.IsLoggedIn = true
		data.UserName = user.Name
	}

	templates.Render(w, r, "home_category", data)
}
