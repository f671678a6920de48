// Package gates decides whether the caller may perform a mutating catalog
// action. It is the single authorization rule in the app: anyone signed in
// may add items; only the owner may edit or delete one.
//
// Authorize is a pure decision function. Enforce is the HTTP glue handlers
// call before any write: it performs the redirect a denial requires and
// reports whether the handler may proceed. A Forbidden denial redirects to
// the item's read view without any error message; the app deliberately does
// not confirm ownership to callers who lack it.
package gates

import (
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action is the mutating catalog operation being attempted.
type Action int

const (
	ActionAdd Action = iota
	ActionEdit
	ActionDelete
)

// Decision is the gate's verdict.
type Decision int

const (
	// Allowed lets the mutation proceed.
	Allowed Decision = iota
	// RequireLogin means no authenticated identity is present; the caller
	// is sent to the login entry point and the mutation must not run.
	RequireLogin
	// Forbidden means the caller is authenticated but does not own the
	// target item; they are sent to the item's read view and the mutation
	// must not run.
	Forbidden
)

// Authorize decides whether the identity may perform action on an item
// owned by ownerID. ownerID is ignored for ActionAdd.
func Authorize(ident *auth.SessionUser, action Action, ownerID primitive.ObjectID) Decision {
	if ident == nil {
		return RequireLogin
	}
	if action == ActionAdd {
		return Allowed
	}

	uid, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		// Malformed id in session. Fail closed; this indicates session
		// corruption, not a normal denial.
		return RequireLogin
	}
	if uid == ownerID {
		return Allowed
	}
	return Forbidden
}

// Enforce runs Authorize against the request's identity and writes the
// redirect a denial requires. itemURL is the read view used for Forbidden.
// It returns true only when the caller may proceed.
func Enforce(w http.ResponseWriter, r *http.Request, action Action, ownerID primitive.ObjectID, itemURL string) bool {
	ident, _ := auth.CurrentUser(r)

	switch Authorize(ident, action, ownerID) {
	case Allowed:
		return true
	case RequireLogin:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return false
	default:
		http.Redirect(w, r, itemURL, http.StatusSeeOther)
		return false
	}
}
