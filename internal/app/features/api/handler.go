// internal/app/features/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/catalog"
	"github.com/dalemusser/shelfhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the read-only JSON projections of the catalog. Every
// endpoint is public.
type Handler struct {
	Svc *catalog.Service
	Log *zap.Logger
}

func NewHandler(svc *catalog.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// errorResponse is the JSON structure for failed lookups.
type errorResponse struct {
	Error string `json:"error"`
}

// ServeAllItems handles GET /json/.
//
// Responds 200 with every item ordered by name:
//
//	{ "Items": [ … ] }
func (h *Handler) ServeAllItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	items, err := h.Svc.ListAllItemsByName(ctx)
	if err != nil {
		h.Log.Error("list all items failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "query failed"})
		return
	}

	writeJSON(w, http.StatusOK, itemsEnvelope{Items: NewItemViews(items)})
}

// ServeCategoryItems handles GET /categories/{categoryID}/json/.
//
// An unknown category id yields an empty Items list, not an error; a
// malformed id is 404.
func (h *Handler) ServeCategoryItems(w http.ResponseWriter, r *http.Request) {
	catID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "category not found"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	items, err := h.Svc.ListItemsByCategory(ctx, catID)
	if err != nil {
		h.Log.Error("list category items failed",
			zap.String("category_id", catID.Hex()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "query failed"})
		return
	}

	writeJSON(w, http.StatusOK, itemsEnvelope{Items: NewItemViews(items)})
}

// ServeItem handles GET /items/{itemID}/json/. Unknown and malformed ids
// are both 404.
func (h *Handler) ServeItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "item not found"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	it, err := h.Svc.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "item not found"})
			return
		}
		h.Log.Error("get item failed",
			zap.String("item_id", itemID.Hex()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "query failed"})
		return
	}

	writeJSON(w, http.StatusOK, NewItemView(*it))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
