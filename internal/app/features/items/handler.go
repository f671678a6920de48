// internal/app/features/items/handler.go
package items

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/catalog"
	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"github.com/dalemusser/shelfhub/internal/app/system/gates"
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
	Item       *models.Item
	Categories []models.Category
	IsOwner    bool
	Form       formData
	Message    string
}

// formData echoes submitted values back into a re-rendered form.
type formData struct {
	Name        string
	Description string
	ImageURL    string
	CategoryID  string
}

type Handler struct {
	Svc *catalog.Service
	Log *zap.Logger
}

func NewHandler(svc *catalog.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// ServeDetail handles GET /items/{itemID}/. Owners additionally see the
// edit and delete links.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	user, signedIn := auth.CurrentUser(r)

	data := pageData{
		Title: it.Name,
		Item:  it,
	}
	if signedIn {
		data.IsLoggedIn = true
		data.UserName = user.Name
		data.IsOwner = gates.Authorize(user, gates.ActionEdit, it.OwnerID) == gates.Allowed
	}

	templates.Render(w, r, "item_detail", data)
}

// loadItem resolves {itemID} to a stored item, writing 404 for malformed
// or unknown ids.
func (h *Handler) loadItem(w http.ResponseWriter, r *http.Request) (*models.Item, bool) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "itemID"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	it, err := h.Svc.GetItem(ctx, itemID)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return it, true
}

// callerObjectID converts the signed-in identity to its stored id. Enforce
// has already run, so a parse failure means the session is corrupt.
func (h *Handler) callerObjectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	user, _ := auth.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return primitive.NilObjectID, false
	}
	uid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		h.Log.Warn("session user id is not a valid object id",
			zap.String("user_id", user.ID))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return primitive.NilObjectID, false
	}
	return uid, true
}

// itemURL is the canonical read view for an item.
func itemURL(id primitive.ObjectID) string {
	return "/items/" + id.Hex() + "/"
}

// formFields pulls the item form values from a parsed request.
func formFields(r *http.Request) catalog.Fields {
	return catalog.Fields{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		ImageURL:    r.PostFormValue("image_url"),
		CategoryID:  r.PostFormValue("category"),
	}
}

// loadCategories fetches the category list for form selects.
func (h *Handler) loadCategories(r *http.Request) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()
	return h.Svc.ListCategories(ctx)
}

// validationMessage maps a rejected create or update to the flash shown on
// the re-rendered form. Unexpected errors return "".
func validationMessage(err error) string {
	switch {
	case errors.Is(err, catalog.ErrEmptyName):
		return "Name field is required"
	case errors.Is(err, catalog.ErrInvalidCategory):
		return "Category is required"
	}
	return ""
}
