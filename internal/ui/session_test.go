package ui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/me/vertexdash/internal/store"
	"github.com/me/vertexdash/pkg/model"
)

func TestSessions_CreateAndGet(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, 0)
	ctx := context.Background()

	tokenExp := time.Now().Add(48 * time.Hour)
	sess, err := sm.Open(ctx, "admin", "test-token", tokenExp)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if sess.ID == "" {
		t.Error("expected session ID to be set")
	}
	if sess.Username != "admin" {
		t.Errorf("expected Username 'admin', got %q", sess.Username)
	}
	if sess.Token != "test-token" {
		t.Errorf("expected Token 'test-token', got %q", sess.Token)
	}
	if got := sess.ExpiresAt.Sub(sess.CreatedAt); got != SessionDuration {
		t.Errorf("expected lifetime %v, got %v", SessionDuration, got)
	}

	retrieved, err := sm.Lookup(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session to be found")
	}
	if retrieved.Token != sess.Token {
		t.Errorf("expected Token %q, got %q", sess.Token, retrieved.Token)
	}
}

func TestSessions_ExpiryCappedByToken(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, 24*time.Hour)
	tokenExp := time.Now().Add(time.Hour)
	sess, err := sm.Open(context.Background(), "admin", "tok", tokenExp)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !sess.ExpiresAt.Equal(tokenExp) {
		t.Errorf("expected ExpiresAt %v, got %v", tokenExp, sess.ExpiresAt)
	}
}

func TestSessions_OpaqueToken(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, time.Hour)
	sess, err := sm.Open(context.Background(), "admin", "opaque", time.Time{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := sess.ExpiresAt.Sub(sess.CreatedAt); got != time.Hour {
		t.Errorf("expected lifetime 1h, got %v", got)
	}
}

func TestSessions_Lookup_NotFound(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, 0)

	sess, err := sm.Lookup(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if sess != nil {
		t.Error("expected nil session for nonexistent ID")
	}
}

func TestSessions_Lookup_Expired(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, 0)
	ctx := context.Background()

	sess := &model.Session{
		ID:        "sess_expired",
		Username:  "admin",
		Token:     "test-token",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	retrieved, err := sm.Lookup(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil session for expired session")
	}

	// The expired row is removed on lookup.
	raw, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("store Lookup failed: %v", err)
	}
	if raw != nil {
		t.Error("expected expired session to be deleted")
	}
}

func TestSessions_Close(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, 0)
	ctx := context.Background()

	sess, err := sm.Open(ctx, "admin", "test-token", time.Time{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := sm.Close(ctx, sess.ID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	retrieved, err := sm.Lookup(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil session after deletion")
	}
}

func TestSessions_FromRequest(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, 0)

	sess, err := sm.Open(context.Background(), "admin", "test-token", time.Time{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})

	retrieved, err := sm.FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session to be found")
	}
	if retrieved.Username != sess.Username {
		t.Errorf("expected Username %q, got %q", sess.Username, retrieved.Username)
	}
}

func TestSessions_FromRequest_NoCookie(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessions(st, 0)

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	retrieved, err := sm.FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest failed: %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil session when no cookie")
	}
}

func TestSetSessionCookie(t *testing.T) {
	sess := &model.Session{
		ID:        "sess_test123",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	w := httptest.NewRecorder()
	SetSessionCookie(w, sess, true)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("expected cookie name %q, got %q", SessionCookieName, cookie.Name)
	}
	if cookie.Value != sess.ID {
		t.Errorf("expected cookie value %q, got %q", sess.ID, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly to be true")
	}
	if !cookie.Secure {
		t.Error("expected Secure to be true")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite Lax, got %v", cookie.SameSite)
	}
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("expected cookie name %q, got %q", SessionCookieName, cookie.Name)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookie.MaxAge)
	}
}

func setupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := st.Migrate(context.Background()); err != nil {
		st.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	return st
}
