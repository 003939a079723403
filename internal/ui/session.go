package ui

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/me/vertexdash/internal/store"
	"github.com/me/vertexdash/pkg/model"
)

const (
	// SessionCookieName carries the opaque session ID. The backend token
	// itself never leaves the server.
	SessionCookieName = "vertexdash_session"
	// SessionDuration is the default session lifetime.
	SessionDuration = 24 * time.Hour
)

// Sessions keeps the backend credentials of signed-in users, keyed by an
// opaque random ID.
type Sessions struct {
	store store.Store
	ttl   time.Duration
}

// NewSessions returns a Sessions backed by st. A non-positive ttl means
// SessionDuration.
func NewSessions(st store.Store, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = SessionDuration
	}
	return &Sessions{store: st, ttl: ttl}
}

// Open records the token the backend issued for username. The session
// never outlives tokenExp; a zero tokenExp is an opaque token.
func (s *Sessions) Open(ctx context.Context, username, token string, tokenExp time.Time) (*model.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now()
	expires := now.Add(s.ttl)
	if !tokenExp.IsZero() && tokenExp.Before(expires) {
		expires = tokenExp
	}
	sess := &model.Session{
		ID:        id,
		Username:  username,
		Token:     token,
		TokenExp:  tokenExp,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Lookup returns the live session with the given ID, or nil. Expired
// sessions are deleted on sight.
func (s *Sessions) Lookup(ctx context.Context, id string) (*model.Session, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil || !sess.IsExpired() {
		return sess, nil
	}
	_ = s.store.DeleteSession(ctx, id)
	return nil, nil
}

// FromRequest looks up the session named by the request cookie.
func (s *Sessions) FromRequest(r *http.Request) (*model.Session, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil
	}
	return s.Lookup(r.Context(), c.Value)
}

// Close forgets the session and with it the backend token.
func (s *Sessions) Close(ctx context.Context, id string) error {
	return s.store.DeleteSession(ctx, id)
}

// Sweep deletes every expired session.
func (s *Sessions) Sweep(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx)
}

// SetSessionCookie points the browser at sess.
func SetSessionCookie(w http.ResponseWriter, sess *model.Session, secure bool) {
	c := sessionCookie(sess.ID)
	c.Secure = secure
	c.Expires = sess.ExpiresAt
	http.SetCookie(w, c)
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	c := sessionCookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}

// Lax so that links into the dashboard keep the user signed in.
func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sess_" + hex.EncodeToString(b), nil
}
