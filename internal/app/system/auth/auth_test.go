package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"go.uber.org/zap"
)

const testKey = "test-session-key-for-testing-only"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return m
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	_, err := auth.NewSessionManager("", "test-session", "", false, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestLoadSessionUser_NoCookie(t *testing.T) {
	m := newManager(t)

	var sawUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawUser = auth.CurrentUser(r)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	m.LoadSessionUser(next).ServeHTTP(rec, req)

	if sawUser {
		t.Error("expected no user in context for anonymous request")
	}
}

func TestLoadSessionUser_AuthenticatedSession(t *testing.T) {
	m := newManager(t)

	// Bind an identity in a first exchange, then replay the cookie.
	req1 := httptest.NewRequest("GET", "/setup", nil)
	rec1 := httptest.NewRecorder()
	sess, _ := m.GetSession(req1)
	sess.Values[auth.KeyUserID] = "64b0c2f8a1b2c3d4e5f60718"
	sess.Values[auth.KeyEmail] = "ada@example.com"
	sess.Values[auth.KeyUsername] = "Ada"
	if err := sess.Save(req1, rec1); err != nil {
		t.Fatalf("save session: %v", err)
	}

	var got *auth.SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})

	req2 := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec1.Result().Cookies() {
		req2.AddCookie(c)
	}
	m.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != "64b0c2f8a1b2c3d4e5f60718" {
		t.Errorf("ID: got %q", got.ID)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("Email: got %q", got.Email)
	}
	if got.Name != "Ada" {
		t.Errorf("Name: got %q", got.Name)
	}
}

func TestWithTestUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Email: "x@y.z"})

	u, ok := auth.CurrentUser(req)
	if !ok || u.ID != "abc" {
		t.Fatalf("expected injected test user, got %v (ok=%v)", u, ok)
	}
}
