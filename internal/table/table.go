package table

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/me/vertexdash/internal/logging"
)

// DefaultPageSize is used when no WithPageSize option is given.
const DefaultPageSize = 10

// PageSizes lists the page sizes a table accepts.
var PageSizes = []int{5, 10, 20, 50}

// AllowedPageSize reports whether n is one of PageSizes.
func AllowedPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// PageRequest is what a FetchFunc is asked for. PageIndex is 0-based.
type PageRequest struct {
	PageIndex int
	PageSize  int
	Search    string
}

// PageResult is one page of items plus the total number of matching items.
type PageResult[T any] struct {
	Items []T
	Total int
}

// FetchFunc loads one page from a data source.
type FetchFunc[T any] func(ctx context.Context, req PageRequest) (PageResult[T], error)

// State is the table state after the last applied fetch.
type State[T any] struct {
	Rows      []T
	Total     int
	PageIndex int
	PageSize  int
	Search    string
}

// TotalPages returns max(ceil(Total/PageSize), 1).
func (s State[T]) TotalPages() int {
	return totalPages(s.Total, s.PageSize)
}

func totalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Table is a paginated view over a FetchFunc. It is safe for concurrent use.
type Table[T any] struct {
	name     string
	columns  []Column[T]
	fetch    FetchFunc[T]
	logger   *slog.Logger
	observer Observer

	mu       sync.Mutex
	state    State[T]
	seq      uint64 // last issued fetch
	inflight int
	lastErr  string
}

// New creates a table. No fetch happens until Reload (or a navigation call).
func New[T any](columns []Column[T], fetch FetchFunc[T], opts ...Option) (*Table[T], error) {
	if err := validateColumns(columns); err != nil {
		return nil, err
	}
	if fetch == nil {
		return nil, fmt.Errorf("table: nil fetch function")
	}

	o := options{name: "table", pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}
	if !AllowedPageSize(o.pageSize) {
		return nil, fmt.Errorf("%w: %d", ErrPageSize, o.pageSize)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	return &Table[T]{
		name:     o.name,
		columns:  slices.Clone(columns),
		fetch:    fetch,
		logger:   o.logger.With("component", "table", "table", o.name),
		observer: o.observer,
		state: State[T]{
			PageSize: o.pageSize,
			Search:   o.search,
		},
	}, nil
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.name }

// State returns a copy of the current state.
func (t *Table[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state
	s.Rows = slices.Clone(t.state.Rows)
	return s
}

// Reload refetches the current page with the current page size and search.
func (t *Table[T]) Reload(ctx context.Context) {
	t.mu.Lock()
	req := t.begin()
	t.mu.Unlock()
	t.run(ctx, req)
}

// Next moves one page forward. It reports false, without fetching, when the
// current page is the last one.
func (t *Table[T]) Next(ctx context.Context) bool {
	t.mu.Lock()
	if t.state.PageIndex >= t.state.TotalPages()-1 {
		t.mu.Unlock()
		return false
	}
	t.state.PageIndex++
	req := t.begin()
	t.mu.Unlock()
	t.run(ctx, req)
	return true
}

// Prev moves one page back. It reports false, without fetching, on page 0.
func (t *Table[T]) Prev(ctx context.Context) bool {
	t.mu.Lock()
	if t.state.PageIndex == 0 {
		t.mu.Unlock()
		return false
	}
	t.state.PageIndex--
	req := t.begin()
	t.mu.Unlock()
	t.run(ctx, req)
	return true
}

// GoTo jumps to pageIndex. It reports false, without fetching, when the index
// is outside [0, TotalPages-1].
func (t *Table[T]) GoTo(ctx context.Context, pageIndex int) bool {
	t.mu.Lock()
	if pageIndex < 0 || pageIndex > t.state.TotalPages()-1 {
		t.mu.Unlock()
		return false
	}
	t.state.PageIndex = pageIndex
	req := t.begin()
	t.mu.Unlock()
	t.run(ctx, req)
	return true
}

// SetPageSize changes the page size and refetches. The page index is
// recomputed so the first visible row stays on the new page, then clamped to
// the page range implied by the last known total.
func (t *Table[T]) SetPageSize(ctx context.Context, size int) error {
	if !AllowedPageSize(size) {
		return fmt.Errorf("%w: %d", ErrPageSize, size)
	}
	t.mu.Lock()
	old := t.state.PageSize
	idx := (t.state.PageIndex * old) / size
	if last := totalPages(t.state.Total, size) - 1; idx > last {
		idx = last
	}
	t.state.PageIndex = max(idx, 0)
	t.state.PageSize = size
	req := t.begin()
	t.mu.Unlock()
	t.run(ctx, req)
	return nil
}

// SetSearch replaces the search string, returns to the first page and
// refetches, even when the search string is unchanged.
func (t *Table[T]) SetSearch(ctx context.Context, search string) {
	t.mu.Lock()
	t.state.Search = search
	t.state.PageIndex = 0
	req := t.begin()
	t.mu.Unlock()
	t.run(ctx, req)
}

// Handle returns a reload-only handle to this table.
func (t *Table[T]) Handle() Handle {
	return Handle{reload: t.Reload}
}

type pending struct {
	seq uint64
	req PageRequest
}

// begin issues a new sequence number. Callers must hold t.mu.
func (t *Table[T]) begin() pending {
	t.seq++
	t.inflight++
	return pending{
		seq: t.seq,
		req: PageRequest{
			PageIndex: t.state.PageIndex,
			PageSize:  t.state.PageSize,
			Search:    t.state.Search,
		},
	}
}

func (t *Table[T]) run(ctx context.Context, p pending) {
	start := time.Now()
	res, err := t.fetch(ctx, p.req)
	elapsed := time.Since(start)

	t.mu.Lock()
	t.inflight--
	if p.seq != t.seq {
		latest := t.seq
		t.mu.Unlock()
		t.logger.Debug("discarding stale page",
			"seq", p.seq, "latest", latest, "page", p.req.PageIndex, "size", p.req.PageSize)
		t.observe(OutcomeStale, elapsed)
		return
	}

	if err != nil {
		t.state.Rows = nil
		t.state.Total = 0
		t.lastErr = err.Error()
		t.mu.Unlock()
		t.logger.Error("fetch page failed",
			"page", p.req.PageIndex, "size", p.req.PageSize, "search", p.req.Search, "error", err)
		t.observe(OutcomeError, elapsed)
		return
	}

	items := res.Items
	if len(items) > p.req.PageSize {
		items = items[:p.req.PageSize]
	}
	total := max(res.Total, 0)
	t.state.Rows = slices.Clone(items)
	t.state.Total = total
	t.lastErr = ""
	t.mu.Unlock()

	t.logger.Debug("page fetched",
		"seq", p.seq, "page", p.req.PageIndex, "size", p.req.PageSize,
		"rows", len(items), "total", total, "duration", elapsed)
	t.observe(OutcomeOK, elapsed)
}

func (t *Table[T]) observe(outcome Outcome, elapsed time.Duration) {
	if t.observer != nil {
		t.observer.ObserveFetch(t.name, outcome, elapsed)
	}
}

// Handle lets collaborators trigger a reload without seeing table state.
// The zero Handle does nothing.
type Handle struct {
	reload func(context.Context)
}

// Reload refetches the current page of the underlying table.
func (h Handle) Reload(ctx context.Context) {
	if h.reload != nil {
		h.reload(ctx)
	}
}
