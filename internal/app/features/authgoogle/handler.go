// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/shelfhub/internal/app/store/users"
	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"github.com/dalemusser/shelfhub/internal/app/system/gauth"
	"github.com/dalemusser/shelfhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// stateLength is the size of the anti-forgery token issued by /login.
const stateLength = 32

// maxCodeBody caps the POST body read for the authorization code.
const maxCodeBody = 4096

type pageData struct {
	Title      string
	IsLoggedIn bool
	UserName   string
	State      string
	ClientID   string
}

// Handler runs the Google sign-in flow: issue an anti-forgery state on the
// login page, complete the code exchange on /gconnect, revoke and clear on
// /gdisconnect.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Provider   gauth.Provider
	Audience   string // OAuth client id tokens must be issued for
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, provider gauth.Provider, audience string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sessionMgr,
		Provider:   provider,
		Audience:   audience,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                   |
| Issues a fresh anti-forgery state, stores it in the session, and renders    |
| the sign-in page.                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate login state", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sess, _ := h.SessionMgr.GetSession(r)
	sess.Values[auth.KeyState] = state
	if err := sess.Save(r, w); err != nil {
		h.Log.Error("failed to save login state", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user, signedIn := auth.CurrentUser(r)
	data := pageData{
		Title:    "Sign In",
		State:    state,
		ClientID: h.Audience,
	}
	if signedIn {
		data.IsLoggedIn = true
		data.UserName = user.Name
	}

	templates.Render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /gconnect?state=…                                                       |
| Completes the sign-in: verifies the state against the session, exchanges    |
| the code from the POST body, cross-checks the token, and binds the local    |
| user. Failures are 401 JSON; the session is only written on success.        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeConnect(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.SessionMgr.GetSession(r)

	// The state comparison happens before any network call.
	want, _ := sess.Values[auth.KeyState].(string)
	got := r.URL.Query().Get("state")
	if want == "" || got != want {
		h.Log.Warn("login state mismatch")
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid state parameter."})
		return
	}

	code, err := io.ReadAll(io.LimitReader(r.Body, maxCodeBody))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Failed to read authorization code."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Provider)
	defer cancel()

	claims, err := h.Provider.Exchange(ctx, strings.TrimSpace(string(code)))
	if err != nil {
		h.Log.Warn("authorization code exchange failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Failed to upgrade the authorization code."})
		return
	}

	info, err := h.Provider.TokenInfo(ctx, claims.AccessToken)
	if err != nil {
		h.Log.Warn("access token verification failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Failed to verify the access token."})
		return
	}
	if info.UserID != claims.Subject {
		h.Log.Warn("token subject mismatch",
			zap.String("token_user", info.UserID), zap.String("subject", claims.Subject))
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Token's user ID doesn't match given user ID."})
		return
	}
	if info.Audience != h.Audience {
		h.Log.Warn("token audience mismatch", zap.String("audience", info.Audience))
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Token's client ID does not match app's."})
		return
	}

	// Re-posting the same credentials is a no-op.
	if tok, _ := sess.Values[auth.KeyAccessToken].(string); tok != "" {
		if sub, _ := sess.Values[auth.KeySubjectID].(string); sub == claims.Subject {
			writeJSON(w, http.StatusOK, messageResponse{Message: "Current user is already connected."})
			return
		}
	}

	profile, err := h.Provider.UserInfo(ctx, claims.AccessToken)
	if err != nil {
		h.Log.Warn("profile fetch failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Failed to obtain user info."})
		return
	}

	user, err := h.Users.GetOrCreateByEmail(ctx, profile.Email)
	if err != nil {
		h.Log.Error("user bind failed", zap.String("email", profile.Email), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to store user."})
		return
	}

	// The state is single-use: clear it along with binding the identity.
	delete(sess.Values, auth.KeyState)
	sess.Values[auth.KeyAccessToken] = claims.AccessToken
	sess.Values[auth.KeySubjectID] = claims.Subject
	sess.Values[auth.KeyUserID] = user.ID.Hex()
	sess.Values[auth.KeyEmail] = user.Email
	sess.Values[auth.KeyUsername] = profile.Name
	if err := sess.Save(r, w); err != nil {
		h.Log.Error("save session failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to store session."})
		return
	}

	h.Log.Info("user logged in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email))

	writeJSON(w, http.StatusOK, connectResponse{
		Message: "Login successful.",
		Name:    profile.Name,
		Email:   user.Email,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /gdisconnect                                                             |
| Revokes the access token and clears the session identity. The local state   |
| is cleared even when revocation fails; only the response differs.           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDisconnect(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.SessionMgr.GetSession(r)

	token, _ := sess.Values[auth.KeyAccessToken].(string)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Current user not connected."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Provider)
	defer cancel()
	revokeErr := h.Provider.Revoke(ctx, token)

	delete(sess.Values, auth.KeyAccessToken)
	delete(sess.Values, auth.KeySubjectID)
	delete(sess.Values, auth.KeyUserID)
	delete(sess.Values, auth.KeyEmail)
	delete(sess.Values, auth.KeyUsername)
	if err := sess.Save(r, w); err != nil {
		h.Log.Error("save session failed during logout", zap.Error(err))
	}

	if revokeErr != nil {
		h.Log.Warn("token revocation failed", zap.Error(revokeErr))
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Failed to revoke token for given user."})
		return
	}

	h.Log.Info("user logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type messageResponse struct {
	Message string `json:"message"`
}

type connectResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const stateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = stateAlphabet[int(b[i])%len(stateAlphabet)]
	}
	return string(b), nil
}
