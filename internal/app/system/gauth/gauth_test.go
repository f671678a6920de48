package gauth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubjectFromIDToken(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"110169484474386276334"}`))
	raw := "eyJhbGciOiJub25lIn0." + payload + ".sig"

	sub, err := subjectFromIDToken(raw)
	if err != nil {
		t.Fatalf("subjectFromIDToken failed: %v", err)
	}
	if sub != "110169484474386276334" {
		t.Errorf("sub: got %q", sub)
	}
}

func TestSubjectFromIDToken_Malformed(t *testing.T) {
	if _, err := subjectFromIDToken("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
	if _, err := subjectFromIDToken("a.!!!.c"); err == nil {
		t.Error("expected error for bad base64 payload")
	}

	empty := base64.RawURLEncoding.EncodeToString([]byte(`{}`))
	if _, err := subjectFromIDToken("h." + empty + ".s"); err == nil {
		t.Error("expected error for missing sub claim")
	}
}

func TestTokenInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("access_token"); got != "tok-123" {
			t.Errorf("access_token: got %q", got)
		}
		w.Write([]byte(`{"user_id":"sub-1","issued_to":"client-1"}`))
	}))
	defer srv.Close()

	g := NewGoogle("client-1", "secret", "postmessage")
	g.TokenInfoURL = srv.URL

	info, err := g.TokenInfo(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("TokenInfo failed: %v", err)
	}
	if info.UserID != "sub-1" || info.Audience != "client-1" {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestTokenInfo_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer srv.Close()

	g := NewGoogle("client-1", "secret", "postmessage")
	g.TokenInfoURL = srv.URL

	if _, err := g.TokenInfo(context.Background(), "bad"); err == nil {
		t.Fatal("expected error for provider-reported failure")
	}
}

func TestUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-123" {
			t.Errorf("Authorization: got %q", auth)
		}
		w.Write([]byte(`{"name":"Ada Lovelace","email":"ada@example.com"}`))
	}))
	defer srv.Close()

	g := NewGoogle("client-1", "secret", "postmessage")
	g.UserInfoURL = srv.URL

	p, err := g.UserInfo(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("UserInfo failed: %v", err)
	}
	if p.Name != "Ada Lovelace" || p.Email != "ada@example.com" {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestRevoke_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGoogle("client-1", "secret", "postmessage")
	g.RevokeURL = srv.URL

	if err := g.Revoke(context.Background(), "tok"); err == nil {
		t.Fatal("expected error for non-200 revoke response")
	}
}

func TestRevoke_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != "tok" {
			t.Errorf("token: got %q", got)
		}
	}))
	defer srv.Close()

	g := NewGoogle("client-1", "secret", "postmessage")
	g.RevokeURL = srv.URL

	if err := g.Revoke(context.Background(), "tok"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
}
