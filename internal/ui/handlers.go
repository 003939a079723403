package ui

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/vertexdash/internal/archive"
	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/form"
	"github.com/me/vertexdash/internal/metrics"
	"github.com/me/vertexdash/internal/store"
	"github.com/me/vertexdash/pkg/model"
)

// TabCookieName remembers the last opened tab.
const TabCookieName = "vertexdash_tab"

var tabs = map[string]string{
	"products": "/products",
	"sales":    "/sales",
	"report":   "/report",
}

// UI handles the web user interface.
type UI struct {
	store    store.Store
	sessions *Sessions
	backend  *backend.Client
	archiver archive.Archiver
	metrics  *metrics.Metrics
	tables   *tableRegistry
	limiter  *loginLimiter
	logger   *slog.Logger
	now      func() time.Time
	secure   bool // Use secure cookies (HTTPS)
}

// Config holds UI configuration.
type Config struct {
	Secure     bool          // Use secure cookies for HTTPS
	SessionTTL time.Duration // Session lifetime before the token's own expiry
	LoginRPS   float64       // Login attempts per second per client; <= 0 disables
	LoginBurst int
}

// New creates a new UI handler.
func New(st store.Store, client *backend.Client, logger *slog.Logger, cfg Config) *UI {
	return &UI{
		store:    st,
		sessions: NewSessions(st, cfg.SessionTTL),
		backend:  client,
		tables:   newTableRegistry(),
		limiter:  newLoginLimiter(cfg.LoginRPS, cfg.LoginBurst),
		logger:   logger.With("component", "ui"),
		now:      time.Now,
		secure:   cfg.Secure,
	}
}

// WithArchiver keeps a copy of every downloaded report.
func (ui *UI) WithArchiver(a archive.Archiver) {
	ui.archiver = a
}

// WithMetrics records table and login metrics.
func (ui *UI) WithMetrics(m *metrics.Metrics) {
	ui.metrics = m
}

// client returns a backend client carrying the session's token.
func (ui *UI) client(sess *model.Session) *backend.Client {
	return ui.backend.WithToken(sess.Token)
}

// HandleLogin renders the login page.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if sess, _ := ui.sessions.FromRequest(r); sess != nil && !sess.IsTokenExpired() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ui.render(w, http.StatusOK, "login", map[string]any{
		"Title":    "Login - Vertex Dashboard",
		"Username": "",
		"Errors":   form.FieldErrors{},
	})
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Login - Vertex Dashboard", "Username": ""}

	if !ui.limiter.Allow(clientKey(r)) {
		if ui.metrics != nil {
			ui.metrics.LoginThrottled()
		}
		data["Error"] = "Too many login attempts, please wait a moment"
		ui.render(w, http.StatusTooManyRequests, "login", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data["Error"] = "Invalid request"
		ui.render(w, http.StatusBadRequest, "login", data)
		return
	}

	f := form.ParseLogin(r.PostForm)
	data["Username"] = f.Username
	if errs := f.Validate(); !errs.OK() {
		data["Errors"] = errs
		ui.render(w, http.StatusUnprocessableEntity, "login", data)
		return
	}

	res, err := ui.backend.Login(r.Context(), f.Username, f.Password)
	if err != nil {
		ui.logger.Warn("login failed", "username", f.Username, "error", err)
		if errors.Is(err, backend.ErrUnauthorized) {
			data["Error"] = "Invalid username or password"
		} else {
			data["Error"] = backend.Message(err)
		}
		ui.render(w, http.StatusUnauthorized, "login", data)
		return
	}

	tokenExp, _ := backend.TokenExpiry(res.Token)
	sess, err := ui.sessions.Open(r.Context(), res.Username, res.Token, tokenExp)
	if err != nil {
		ui.renderError(w, "Could not start a session", err)
		return
	}

	SetSessionCookie(w, sess, ui.secure)
	ui.logger.Info("user logged in", "username", sess.Username, "session_expires", sess.ExpiresAt)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session and redirects to login.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFromContext(r.Context()); sess != nil {
		ui.endSession(w, r, sess)
		ui.logger.Info("user logged out", "username", sess.Username)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// endSession forgets the stored credential and the session's tables.
func (ui *UI) endSession(w http.ResponseWriter, r *http.Request, sess *model.Session) {
	if err := ui.sessions.Close(r.Context(), sess.ID); err != nil {
		ui.logger.Error("delete session failed", "error", err)
	}
	ui.tables.drop(sess.ID)
	ClearSessionCookie(w)
}

// expireSession handles a backend 401: the stored token is no longer valid.
func (ui *UI) expireSession(w http.ResponseWriter, r *http.Request, sess *model.Session) {
	ui.logger.Info("backend rejected token, ending session", "username", sess.Username)
	ui.endSession(w, r, sess)
	redirectToLogin(w, r)
}

// HandleHome redirects to the last opened tab.
func (ui *UI) HandleHome(w http.ResponseWriter, r *http.Request) {
	target := tabs["products"]
	if c, err := r.Cookie(TabCookieName); err == nil {
		if p, ok := tabs[c.Value]; ok {
			target = p
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (ui *UI) rememberTab(w http.ResponseWriter, tab string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TabCookieName,
		Value:    tab,
		Path:     "/",
		HttpOnly: true,
		Secure:   ui.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
	})
}

// --- Helper Methods ---

func (ui *UI) pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pageData returns the fields every protected page shares.
func pageData(r *http.Request, title, tab string) map[string]any {
	return map[string]any{
		"Title":   title + " - Vertex Dashboard",
		"Session": SessionFromContext(r.Context()),
		"Tab":     tab,
	}
}

func (ui *UI) render(w http.ResponseWriter, status int, template string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (ui *UI) renderPartial(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := renderComponent(&buf, name, data); err != nil {
		ui.logger.Error("component render failed", "component", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	ui.logger.Error(message, "error", err)
	ui.render(w, http.StatusInternalServerError, "error", map[string]any{
		"Title":   "Error - Vertex Dashboard",
		"Message": message,
	})
}

func (ui *UI) renderNotFound(w http.ResponseWriter, message string) {
	ui.render(w, http.StatusNotFound, "error", map[string]any{
		"Title":   "Not Found - Vertex Dashboard",
		"Message": message,
	})
}

// renderBackendError shows a backend failure as a banner on the error page.
func (ui *UI) renderBackendError(w http.ResponseWriter, r *http.Request, title, tab string, err error) {
	data := pageData(r, title, tab)
	data["Message"] = backend.Message(err)
	ui.render(w, http.StatusBadGateway, "error", data)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
