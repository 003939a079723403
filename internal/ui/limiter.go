package ui

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// loginLimiter throttles login attempts per client address.
type loginLimiter struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rps   float64
	burst int
}

func newLoginLimiter(rps float64, burst int) *loginLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &loginLimiter{m: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

func (l *loginLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.m[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	l.m[key] = lim
	return lim
}

// prune drops limiters that have refilled to a full bucket, which is the
// state a fresh limiter starts in. It returns how many were dropped.
func (l *loginLimiter) prune() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	dropped := 0
	for key, lim := range l.m {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.m, key)
			dropped++
		}
	}
	return dropped
}

func (l *loginLimiter) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

// Allow reports whether another attempt from key may proceed.
// A non-positive rate disables throttling.
func (l *loginLimiter) Allow(key string) bool {
	if l == nil || l.rps <= 0 {
		return true
	}
	return l.get(key).Allow()
}

// clientKey identifies the caller. RemoteAddr has already been rewritten by
// the RealIP middleware when running behind a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
