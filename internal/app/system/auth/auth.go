// Package auth manages cookie sessions and the identity they carry.
//
// A SessionManager wraps a gorilla CookieStore. Session values hold the
// identity bound by the Google login flow (user id, email, display name,
// access token, external subject id) plus the pending CSRF state token
// issued by /login. LoadSessionUser promotes the bound identity into the
// request context so handlers and the authorization gate can read it
// without touching the cookie again.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys. KeyState is only set between /login and /gconnect;
// the identity keys are only set while the session is authenticated.
const (
	KeyState       = "state"
	KeyAccessToken = "access_token"
	KeySubjectID   = "subject_id"
	KeyUserID      = "user_id"
	KeyEmail       = "email"
	KeyUsername    = "username"
)

// SessionUser is the identity cached in the session and injected into
// r.Context() for authenticated requests.
type SessionUser struct {
	ID    string // hex ObjectID of the local user row
	Email string
	Name  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager owns the cookie store for one running app instance.
// There is no package-level store; every handler receives the manager it
// should use.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a SessionManager from the configured signing key.
// The secure flag controls Secure/SameSite on the cookie; use false only for
// local development over plain http.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// GetSession returns the request's session, creating a fresh one if the
// cookie is absent or fails to decode. The error reports the decode failure;
// the returned session is always usable.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error, using fresh session", zap.Error(err))
		}
	}
	return sess, err
}

// Store exposes the underlying cookie store, mainly so logout can mirror the
// store options onto the deletion cookie.
func (m *SessionManager) Store() *sessions.CookieStore {
	return m.store
}

// LoadSessionUser injects the bound identity into context if the session is
// authenticated. Requests with no identity pass through untouched.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		if id := getString(sess, KeyUserID); id != "" {
			u := &SessionUser{
				ID:    id,
				Email: getString(sess, KeyEmail),
				Name:  getString(sess, KeyUsername),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the identity in context and whether one is present.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects an identity directly into the request context,
// bypassing the session middleware. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
