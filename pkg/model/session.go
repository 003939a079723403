package model

import "time"

// Session is the server-side credential slot for a logged-in user.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Token     string    `json:"-"` // backend bearer token (not exposed via JSON)
	TokenExp  time.Time `json:"-"` // zero when the token carries no expiry
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsTokenExpired reports whether the backend token has expired.
// A token without a known expiry never expires here; the backend decides.
func (s *Session) IsTokenExpired() bool {
	if s.TokenExp.IsZero() {
		return false
	}
	return time.Now().After(s.TokenExp)
}
