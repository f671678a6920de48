// internal/app/features/items/edit.go
package items

import (
	"context"
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"github.com/dalemusser/shelfhub/internal/app/system/gates"
	"github.com/dalemusser/shelfhub/internal/app/system/timeouts"
	"github.com/dalemusser/shelfhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeEditForm handles GET /items/{itemID}/edit.
func (h *Handler) ServeEditForm(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	if !gates.Enforce(w, r, gates.ActionEdit, it.OwnerID, itemURL(it.ID)) {
		return
	}

	h.renderEditForm(w, r, it, formData{
		Name:        it.Name,
		Description: it.Description,
		ImageURL:    it.ImageURL,
		CategoryID:  it.CategoryID.Hex(),
	}, "")
}

// ServeEditSubmit handles POST /items/{itemID}/edit. A submit without the
// confirming save field is a cancel: the item is untouched and the caller
// lands back on its read view.
func (h *Handler) ServeEditSubmit(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	if !gates.Enforce(w, r, gates.ActionEdit, it.OwnerID, itemURL(it.ID)) {
		return
	}

	if r.PostFormValue("save") != "save" {
		http.Redirect(w, r, itemURL(it.ID), http.StatusSeeOther)
		return
	}

	callerID, ok := h.callerObjectID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	if _, err := h.Svc.UpdateItem(ctx, it.ID, callerID, formFields(r)); err != nil {
		if msg := validationMessage(err); msg != "" {
			h.renderEditForm(w, r, it, formData{
				Name:        r.PostFormValue("name"),
				Description: r.PostFormValue("description"),
				ImageURL:    r.PostFormValue("image_url"),
				CategoryID:  r.PostFormValue("category"),
			}, msg)
			return
		}
		h.Log.Error("update item failed",
			zap.String("item_id", it.ID.Hex()), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, itemURL(it.ID), http.StatusSeeOther)
}

func (h *Handler) renderEditForm(w http.ResponseWriter, r *http.Request, it *models.Item, form formData, msg string) {
	cats, err := h.loadCategories(r)
	if err != nil {
		h.Log.Error("list categories failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user, _ := auth.CurrentUser(r)
	data := pageData{
		Title:      "Edit " + it.Name,
		IsLoggedIn: true,
		Item:       it,
		Categories: cats,
		Form:       form,
		Message:    msg,
	}
	if user != nil {
		data.UserName = user.Name
	}

	templates.Render(w, r, "item_edit", data)
}
