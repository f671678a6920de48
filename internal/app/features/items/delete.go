// internal/app/features/items/delete.go
package items

import (
	"context"
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"github.com/dalemusser/shelfhub/internal/app/system/gates"
	"github.com/dalemusser/shelfhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeDeleteForm handles GET /items/{itemID}/delete, the confirmation page.
func (h *Handler) ServeDeleteForm(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	if !gates.Enforce(w, r, gates.ActionDelete, it.OwnerID, itemURL(it.ID)) {
		return
	}

	user, _ := auth.CurrentUser(r)
	data := pageData{
		Title:      "Delete " + it.Name,
		IsLoggedIn: true,
		Item:       it,
	}
	if user != nil {
		data.UserName = user.Name
	}

	templates.Render(w, r, "item_delete", data)
}

// ServeDeleteSubmit handles POST /items/{itemID}/delete. A submit without
// the confirming delete field is a cancel. On success the caller lands on
// the item's category page.
func (h *Handler) ServeDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	if !gates.Enforce(w, r, gates.ActionDelete, it.OwnerID, itemURL(it.ID)) {
		return
	}

	if r.PostFormValue("delete") != "delete" {
		http.Redirect(w, r, itemURL(it.ID), http.StatusSeeOther)
		return
	}

	callerID, ok := h.callerObjectID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	if err := h.Svc.DeleteItem(ctx, it.ID, callerID); err != nil {
		h.Log.Error("delete item failed",
			zap.String("item_id", it.ID.Hex()), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/categories/"+it.CategoryID.Hex()+"/", http.StatusSeeOther)
}
