// internal/app/features/items/add.go
package items

import (
	"context"
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"github.com/dalemusser/shelfhub/internal/app/system/gates"
	"github.com/dalemusser/shelfhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeAddForm handles GET /items/add/. The form itself is public; the
// submit is gated so an anonymous visitor is sent to login only when they
// try to save.
func (h *Handler) ServeAddForm(w http.ResponseWriter, r *http.Request) {
	cats, err := h.loadCategories(r)
	if err != nil {
		h.Log.Error("list categories failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user, signedIn := auth.CurrentUser(r)
	data := pageData{
		Title:      "Add Item",
		Categories: cats,
	}
	if signedIn {
		data.IsLoggedIn = true
		data.UserName = user.Name
	}

	templates.Render(w, r, "item_add", data)
}

// ServeAddSubmit handles POST /items/add/. A submit without the confirming
// add field is a cancel: nothing is written and the caller lands on the
// index.
func (h *Handler) ServeAddSubmit(w http.ResponseWriter, r *http.Request) {
	if !gates.Enforce(w, r, gates.ActionAdd, primitive.NilObjectID, "/") {
		return
	}

	if r.PostFormValue("add") != "add" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ownerID, ok := h.callerObjectID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	created, err := h.Svc.CreateItem(ctx, ownerID, formFields(r))
	if err != nil {
		if msg := validationMessage(err); msg != "" {
			h.rerenderAddForm(w, r, msg)
			return
		}
		h.Log.Error("create item failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, itemURL(created.ID), http.StatusSeeOther)
}

// rerenderAddForm shows the add form again with the submitted values and a
// validation flash.
func (h *Handler) rerenderAddForm(w http.ResponseWriter, r *http.Request, msg string) {
	cats, err := h.loadCategories(r)
	if err != nil {
		h.Log.Error("list categories failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user, _ := auth.CurrentUser(r)
	data := pageData{
		Title:      "Add Item",
		IsLoggedIn: true,
		Categories: cats,
		Message:    msg,
		Form: formData{
			Name:        r.PostFormValue("name"),
			Description: r.PostFormValue("description"),
			ImageURL:    r.PostFormValue("image_url"),
			CategoryID:  r.PostFormValue("category"),
		},
	}
	if user != nil {
		data.UserName = user.Name
	}

	templates.Render(w, r, "item_add", data)
}
