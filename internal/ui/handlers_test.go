package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/store"
	"github.com/me/vertexdash/pkg/model"
)

// fakeBackend serves a small product and sale catalogue.
type fakeBackend struct {
	mu           sync.Mutex
	products     []model.Product
	calls        map[string]int
	rejectTokens bool
	export       []byte
}

func newFakeBackend() *fakeBackend {
	fb := &fakeBackend{calls: map[string]int{}, export: []byte("PK\x03\x04sheet")}
	for i := 1; i <= 12; i++ {
		fb.products = append(fb.products, model.Product{
			ID:       int64(i),
			Name:     fmt.Sprintf("Widget %02d", i),
			Price:    2.5,
			Quantity: 3,
		})
	}
	return fb
}

func (fb *fakeBackend) count(key string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[key]
}

func (fb *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	track := func(key string, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			fb.mu.Lock()
			fb.calls[key]++
			reject := fb.rejectTokens
			fb.mu.Unlock()
			if key != "login" && (reject || r.Header.Get("Authorization") != "Bearer tok") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			h(w, r)
		}
	}
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("POST /api/auth/login", track("login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "admin" || body["password"] != "password123" {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]string{"token": "tok", "username": "admin"})
	}))
	mux.HandleFunc("GET /api/products/paginated", track("products.page", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		fb.mu.Lock()
		all := append([]model.Product(nil), fb.products...)
		fb.mu.Unlock()
		start := page * size
		end := start + size
		if start > len(all) {
			start = len(all)
		}
		if end > len(all) {
			end = len(all)
		}
		writeJSON(w, map[string]any{"content": all[start:end], "totalElements": len(all)})
	}))
	mux.HandleFunc("GET /api/products/active", track("products.active", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		writeJSON(w, fb.products[:1])
	}))
	mux.HandleFunc("GET /api/products/{id}", track("products.get", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.Error(w, `{"message":"Product not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, fb.products[0])
	}))
	mux.HandleFunc("POST /api/products", track("products.create", func(w http.ResponseWriter, r *http.Request) {
		var p model.Product
		_ = json.NewDecoder(r.Body).Decode(&p)
		fb.mu.Lock()
		p.ID = int64(len(fb.products) + 1)
		fb.products = append(fb.products, p)
		fb.mu.Unlock()
		writeJSON(w, p)
	}))
	mux.HandleFunc("DELETE /api/products/{id}", track("products.delete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("GET /api/sales/paginated", track("sales.page", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"data":  []model.Sale{{ID: 1, Product: &fb.products[0], Quantity: 2, Date: "2024-03-01", TotalAmount: 5}},
			"total": 1,
		})
	}))
	mux.HandleFunc("POST /api/sales", track("sales.create", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.Sale{ID: 2})
	}))
	mux.HandleFunc("GET /api/sales-report/summary", track("report.summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.SalesReport{
			TotalSales:        12345.5,
			TotalProductsSold: 1200,
			SalesTrend:        []model.TrendPoint{{Date: "2024-03-01", Sales: 5}},
		})
	}))
	mux.HandleFunc("GET /api/sales-report/excel", track("report.export", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", backend.SpreadsheetContentType)
		_, _ = w.Write(fb.export)
	}))
	return mux
}

type testEnv struct {
	ui      *UI
	store   *store.SQLiteStore
	backend *fakeBackend
	router  chi.Router
}

func setupTestUI(t *testing.T, cfg Config) *testEnv {
	t.Helper()

	fb := newFakeBackend()
	srv := httptest.NewServer(fb.handler())
	t.Cleanup(srv.Close)

	st := setupTestStore(t)
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := backend.New(backend.Config{BaseURL: srv.URL + "/api"}, logger)
	ui := New(st, client, logger, cfg)
	ui.now = func() time.Time { return time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC) }

	r := chi.NewRouter()
	ui.RegisterRoutes(r)
	return &testEnv{ui: ui, store: st, backend: fb, router: r}
}

// login stores a session carrying the fake backend's token.
func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	sess, err := env.ui.sessions.Open(context.Background(), "admin", "tok", time.Time{})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return &http.Cookie{Name: SessionCookieName, Value: sess.ID}
}

func (env *testEnv) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func postForm(target string, v url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestGuard(t *testing.T) {
	env := setupTestUI(t, Config{})

	protected := []string{"/", "/products", "/products/table", "/sales", "/sales/new", "/report", "/report/export"}
	for _, path := range protected {
		t.Run(path, func(t *testing.T) {
			w := env.do(httptest.NewRequest(http.MethodGet, path, nil), nil)
			if w.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != "/login" {
				t.Errorf("expected redirect to /login, got %q", loc)
			}
		})
	}

	t.Run("htmx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/table", nil)
		req.Header.Set("HX-Request", "true")
		w := env.do(req, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if got := w.Header().Get("HX-Redirect"); got != "/login" {
			t.Errorf("expected HX-Redirect /login, got %q", got)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		w := env.do(httptest.NewRequest(http.MethodGet, "/products", nil), &http.Cookie{Name: SessionCookieName, Value: "sess_gone"})
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", w.Code)
		}
	})

	t.Run("valid session", func(t *testing.T) {
		w := env.do(httptest.NewRequest(http.MethodGet, "/products", nil), env.login(t))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "validation",
			form:       url.Values{"username": {""}, "password": {"123"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Username is required", "Password must be at least 6 characters"},
		},
		{
			name:       "bad credentials",
			form:       url.Values{"username": {"admin"}, "password": {"wrongpass"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{"Invalid username or password"},
		},
		{
			name:       "success",
			form:       url.Values{"username": {"admin"}, "password": {"password123"}},
			wantStatus: http.StatusSeeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestUI(t, Config{})
			w := env.do(postForm("/login", tt.form), nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			for _, want := range tt.wantBody {
				if !strings.Contains(w.Body.String(), want) {
					t.Errorf("expected body to contain %q", want)
				}
			}
		})
	}

	t.Run("validation skips backend", func(t *testing.T) {
		env := setupTestUI(t, Config{})
		env.do(postForm("/login", url.Values{"username": {""}, "password": {""}}), nil)
		if n := env.backend.count("login"); n != 0 {
			t.Errorf("expected no backend login, got %d", n)
		}
	})

	t.Run("session cookie", func(t *testing.T) {
		env := setupTestUI(t, Config{})
		w := env.do(postForm("/login", url.Values{"username": {"admin"}, "password": {"password123"}}), nil)

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == SessionCookieName {
				cookie = c
			}
		}
		if cookie == nil {
			t.Fatal("expected session cookie")
		}
		sess, err := env.store.GetSession(context.Background(), cookie.Value)
		if err != nil || sess == nil {
			t.Fatalf("expected stored session, got %v, %v", sess, err)
		}
		if sess.Token != "tok" || sess.Username != "admin" {
			t.Errorf("unexpected session %+v", sess)
		}
	})
}

func TestLogin_Throttled(t *testing.T) {
	env := setupTestUI(t, Config{LoginRPS: 0.001, LoginBurst: 1})
	form := url.Values{"username": {"admin"}, "password": {"wrongpass"}}

	if w := env.do(postForm("/login", form), nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("first attempt: expected 401, got %d", w.Code)
	}
	w := env.do(postForm("/login", form), nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt: expected 429, got %d", w.Code)
	}
	if n := env.backend.count("login"); n != 1 {
		t.Errorf("expected 1 backend login, got %d", n)
	}
}

func TestLogout(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)
	env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)

	w := env.do(httptest.NewRequest(http.MethodGet, "/logout", nil), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if sess, _ := env.store.GetSession(context.Background(), cookie.Value); sess != nil {
		t.Error("expected session to be deleted")
	}
	if n := env.ui.tables.len(); n != 0 {
		t.Errorf("expected no tables, got %d", n)
	}
}

func TestHome_RemembersTab(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	if loc := w.Header().Get("Location"); loc != "/products" {
		t.Errorf("expected default /products, got %q", loc)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TabCookieName, Value: "report"})
	w = env.do(req, cookie)
	if loc := w.Header().Get("Location"); loc != "/report" {
		t.Errorf("expected /report, got %q", loc)
	}
}

func TestProducts_Table(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)
	body := w.Body.String()
	for _, want := range []string{"Welcome, admin", "Widget 01", "Widget 10", "Page 1 of 2", "$2.5"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(body, "Widget 11") {
		t.Error("second page row rendered on the first page")
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/table?action=next", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body = w.Body.String()
	if !strings.Contains(body, "Page 2 of 2") || !strings.Contains(body, "Widget 11") {
		t.Errorf("expected second page, got %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("partial must not include the layout")
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/table?action=size&size=7", nil), cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported size, got %d", w.Code)
	}

	env.do(httptest.NewRequest(http.MethodGet, "/products/table?action=size&size=20", nil), cookie)
	prefs, err := env.store.GetTablePrefs(context.Background(), "admin", productsTable)
	if err != nil || prefs == nil {
		t.Fatalf("expected saved prefs, got %v, %v", prefs, err)
	}
	if prefs.PageSize != 20 {
		t.Errorf("expected saved page size 20, got %d", prefs.PageSize)
	}
}

func TestProducts_CreateValidation(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	w := env.do(postForm("/products", url.Values{"name": {""}, "price": {"0"}, "quantity": {"-1"}}), cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	for _, want := range []string{"Product name is required", "Price must be greater than 0", "Quantity cannot be negative"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
	if n := env.backend.count("products.create"); n != 0 {
		t.Errorf("expected no backend call, got %d", n)
	}
}

func TestProducts_CreateReloadsTable(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)
	before := env.backend.count("products.page")

	w := env.do(postForm("/products", url.Values{"name": {"Gadget"}, "price": {"9.99"}, "quantity": {"4"}}), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/products" {
		t.Errorf("expected redirect to /products, got %q", loc)
	}
	if n := env.backend.count("products.create"); n != 1 {
		t.Errorf("expected 1 create, got %d", n)
	}
	if after := env.backend.count("products.page"); after != before+1 {
		t.Errorf("expected table reload, page fetches %d -> %d", before, after)
	}
}

func TestProducts_EditAndDelete(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/products/1/edit", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="Widget 01"`) {
		t.Error("expected form prefilled with product name")
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/99/edit", nil), cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/abc/edit", nil), cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for bad id, got %d", w.Code)
	}

	w = env.do(httptest.NewRequest(http.MethodPost, "/products/1/delete", nil), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if n := env.backend.count("products.delete"); n != 1 {
		t.Errorf("expected 1 delete, got %d", n)
	}
}

func TestSales_StockExceeded(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	form := url.Values{"productId": {"1"}, "quantity": {"5"}, "date": {"2024-03-05"}}
	w := env.do(postForm("/sales", form), cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Quantity exceeds available stock (3)") {
		t.Error("expected stock message")
	}
	if n := env.backend.count("sales.create"); n != 0 {
		t.Errorf("expected no backend call, got %d", n)
	}
}

func TestSales_Create(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)
	env.do(httptest.NewRequest(http.MethodGet, "/sales", nil), cookie)
	products, sales := env.backend.count("products.page"), env.backend.count("sales.page")

	form := url.Values{"productId": {"1"}, "quantity": {"2"}, "date": {"2024-03-05"}}
	w := env.do(postForm("/sales", form), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if env.backend.count("products.page") != products+1 || env.backend.count("sales.page") != sales+1 {
		t.Error("expected both tables to reload after a sale")
	}
}

func TestSales_NewForm(t *testing.T) {
	env := setupTestUI(t, Config{})
	w := env.do(httptest.NewRequest(http.MethodGet, "/sales/new", nil), env.login(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `value="2024-03-05"`) {
		t.Error("expected today's date prefilled")
	}
	if !strings.Contains(body, "$2.5") {
		t.Error("expected total preview for one unit")
	}
}

func TestReport(t *testing.T) {
	env := setupTestUI(t, Config{})
	w := env.do(httptest.NewRequest(http.MethodGet, "/report", nil), env.login(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, want := range []string{"$12,345.5", "1,200", "2024-03-01"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("expected report to contain %q", want)
		}
	}
}

func TestExport_Filename(t *testing.T) {
	env := setupTestUI(t, Config{})
	w := env.do(httptest.NewRequest(http.MethodGet, "/report/export", nil), env.login(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	want := "attachment; filename=sales-report-2024-03-05.xlsx"
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := w.Header().Get("Content-Type"); got != backend.SpreadsheetContentType {
		t.Errorf("unexpected content type %q", got)
	}
	if w.Body.String() != string(env.backend.export) {
		t.Error("body does not match the backend export")
	}
}

func TestBackendUnauthorized_EndsSession(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)
	env.backend.mu.Lock()
	env.backend.rejectTokens = true
	env.backend.mu.Unlock()

	w := env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
	if sess, _ := env.store.GetSession(context.Background(), cookie.Value); sess != nil {
		t.Error("expected session to be deleted")
	}
}

func TestProducts_PageViewRefetches(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	if w := env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie); w.Code != http.StatusOK {
		t.Fatalf("first view: expected 200, got %d", w.Code)
	}
	before := env.backend.count("products.page")

	env.backend.mu.Lock()
	env.backend.products[0].Name = "Renamed Widget"
	env.backend.mu.Unlock()

	w := env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("second view: expected 200, got %d", w.Code)
	}
	if after := env.backend.count("products.page"); after != before+1 {
		t.Errorf("expected a refetch, page fetches %d -> %d", before, after)
	}
	if !strings.Contains(w.Body.String(), "Renamed Widget") {
		t.Error("expected the renamed product in the refreshed view")
	}

	env.backend.mu.Lock()
	env.backend.rejectTokens = true
	env.backend.mu.Unlock()

	w = env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("revoked token: expected 303 to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if sess, _ := env.store.GetSession(context.Background(), cookie.Value); sess != nil {
		t.Error("expected session to be deleted")
	}
}

func TestSales_PageViewRefetches(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)

	env.do(httptest.NewRequest(http.MethodGet, "/sales", nil), cookie)
	before := env.backend.count("sales.page")

	if w := env.do(httptest.NewRequest(http.MethodGet, "/sales", nil), cookie); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if after := env.backend.count("sales.page"); after != before+1 {
		t.Errorf("expected a refetch, page fetches %d -> %d", before, after)
	}
}

func TestSweepOnce_PrunesIdleLimiters(t *testing.T) {
	env := setupTestUI(t, Config{LoginRPS: 1000, LoginBurst: 1})
	form := url.Values{"username": {"admin"}, "password": {"wrongpass"}}

	req := postForm("/login", form)
	req.RemoteAddr = "203.0.113.7:4000"
	env.do(req, nil)
	if n := env.ui.limiter.len(); n != 1 {
		t.Fatalf("expected 1 limiter, got %d", n)
	}

	time.Sleep(10 * time.Millisecond)
	if err := env.ui.SweepOnce(context.Background()); err != nil {
		t.Fatalf("SweepOnce failed: %v", err)
	}
	if n := env.ui.limiter.len(); n != 0 {
		t.Errorf("expected idle limiter to be pruned, got %d", n)
	}
}

func TestLoginLimiter_KeepsThrottledKeys(t *testing.T) {
	l := newLoginLimiter(0.001, 2)
	if !l.Allow("198.51.100.1") {
		t.Fatal("first attempt should be allowed")
	}
	l.get("198.51.100.2")

	if n := l.prune(); n != 1 {
		t.Errorf("expected 1 pruned limiter, got %d", n)
	}
	if n := l.len(); n != 1 {
		t.Errorf("expected the used limiter to remain, got %d", n)
	}
}

func TestSweepOnce(t *testing.T) {
	env := setupTestUI(t, Config{})
	cookie := env.login(t)
	env.do(httptest.NewRequest(http.MethodGet, "/products", nil), cookie)
	env.ui.tables.get("sess_orphan")

	if err := env.ui.SweepOnce(context.Background()); err != nil {
		t.Fatalf("SweepOnce failed: %v", err)
	}
	if n := env.ui.tables.len(); n != 1 {
		t.Errorf("expected 1 table session, got %d", n)
	}
}

func TestStartSweeper_InvalidCron(t *testing.T) {
	env := setupTestUI(t, Config{})
	if err := env.ui.StartSweeper(context.Background(), "not a cron"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}
