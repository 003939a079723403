package ui

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/source"
	"github.com/me/vertexdash/internal/table"
	"github.com/me/vertexdash/pkg/model"
)

// Table names, used for preferences, logs and metrics.
const (
	productsTable = "products"
	salesTable    = "sales"
)

// sessionTables holds the live tables of one session.
type sessionTables struct {
	mu       sync.Mutex
	products *table.Table[model.Product]
	sales    *table.Table[model.Sale]

	// unauthorized is set when a table fetch was rejected by the backend.
	unauthorized atomic.Bool
}

// tableRegistry maps session IDs to their tables.
type tableRegistry struct {
	mu sync.Mutex
	m  map[string]*sessionTables
}

func newTableRegistry() *tableRegistry {
	return &tableRegistry{m: make(map[string]*sessionTables)}
}

func (reg *tableRegistry) get(sessionID string) *sessionTables {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	st, ok := reg.m[sessionID]
	if !ok {
		st = &sessionTables{}
		reg.m[sessionID] = st
	}
	return st
}

func (reg *tableRegistry) drop(sessionID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.m, sessionID)
}

// retain drops every session not in ids and returns how many were dropped.
func (reg *tableRegistry) retain(ids []string) int {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	dropped := 0
	for id := range reg.m {
		if _, ok := keep[id]; !ok {
			delete(reg.m, id)
			dropped++
		}
	}
	return dropped
}

func (reg *tableRegistry) len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.m)
}

// ProductColumns are the columns of the products table.
func ProductColumns() []table.Column[model.Product] {
	return []table.Column[model.Product]{
		table.SNo[model.Product]("S.No"),
		{Key: "name", Label: "Name", Value: func(p model.Product, _ int) any { return p.Name }},
		{Key: "price", Label: "Price", Value: func(p model.Product, _ int) any { return money(p.Price) }},
		{Key: "quantity", Label: "Quantity", Value: func(p model.Product, _ int) any { return humanize.Comma(int64(p.Quantity)) }},
	}
}

// SaleColumns are the columns of the sales table.
func SaleColumns() []table.Column[model.Sale] {
	return []table.Column[model.Sale]{
		table.SNo[model.Sale]("S.No"),
		{Key: "product", Label: "Product", Value: func(s model.Sale, _ int) any { return s.ProductName() }},
		{Key: "quantity", Label: "Quantity", Value: func(s model.Sale, _ int) any { return humanize.Comma(int64(s.Quantity)) }},
		{Key: "unitPrice", Label: "Unit Price", Value: func(s model.Sale, _ int) any { return money(s.UnitPrice()) }},
		{Key: "total", Label: "Total", Value: func(s model.Sale, _ int) any { return money(s.Total()) }},
		{Key: "date", Label: "Date", Value: func(s model.Sale, _ int) any { return s.Date }},
	}
}

// money formats an amount as "$1,234.50".
func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// guardUnauthorized flags the session when the backend rejects its token.
func guardUnauthorized[T any](st *sessionTables, fetch table.FetchFunc[T]) table.FetchFunc[T] {
	return func(ctx context.Context, req table.PageRequest) (table.PageResult[T], error) {
		res, err := fetch(ctx, req)
		if errors.Is(err, backend.ErrUnauthorized) {
			st.unauthorized.Store(true)
		}
		return res, err
	}
}

func (ui *UI) tableOptions(ctx context.Context, sess *model.Session, name string) []table.Option {
	opts := []table.Option{table.WithName(name), table.WithLogger(ui.logger)}
	if ui.metrics != nil {
		opts = append(opts, table.WithObserver(ui.metrics))
	}
	prefs, err := ui.store.GetTablePrefs(ctx, sess.Username, name)
	if err != nil {
		ui.logger.Warn("load table prefs failed", "table", name, "error", err)
		return opts
	}
	if prefs != nil {
		if table.AllowedPageSize(prefs.PageSize) {
			opts = append(opts, table.WithPageSize(prefs.PageSize))
		}
		opts = append(opts, table.WithSearch(prefs.Search))
	}
	return opts
}

// productTable returns the session's products table, creating and loading
// it on first use. created reports whether this call built it.
func (ui *UI) productTable(ctx context.Context, sess *model.Session) (tbl *table.Table[model.Product], st *sessionTables, created bool, err error) {
	st = ui.tables.get(sess.ID)
	st.mu.Lock()
	tbl = st.products
	if tbl == nil {
		fetch := guardUnauthorized(st, source.Products(ui.client(sess), source.DefaultSort))
		tbl, err = table.New(ProductColumns(), fetch, ui.tableOptions(ctx, sess, productsTable)...)
		if err != nil {
			st.mu.Unlock()
			return nil, nil, false, err
		}
		st.products = tbl
		created = true
	}
	st.mu.Unlock()

	if created {
		tbl.Reload(ctx)
	}
	return tbl, st, created, nil
}

// saleTable is productTable for sales.
func (ui *UI) saleTable(ctx context.Context, sess *model.Session) (tbl *table.Table[model.Sale], st *sessionTables, created bool, err error) {
	st = ui.tables.get(sess.ID)
	st.mu.Lock()
	tbl = st.sales
	if tbl == nil {
		fetch := guardUnauthorized(st, source.Sales(ui.client(sess), source.DefaultSort))
		tbl, err = table.New(SaleColumns(), fetch, ui.tableOptions(ctx, sess, salesTable)...)
		if err != nil {
			st.mu.Unlock()
			return nil, nil, false, err
		}
		st.sales = tbl
		created = true
	}
	st.mu.Unlock()

	if created {
		tbl.Reload(ctx)
	}
	return tbl, st, created, nil
}

// reloadHandles returns reload handles for the tables that already exist.
func (st *sessionTables) reloadHandles() []table.Handle {
	st.mu.Lock()
	defer st.mu.Unlock()
	var hs []table.Handle
	if st.products != nil {
		hs = append(hs, st.products.Handle())
	}
	if st.sales != nil {
		hs = append(hs, st.sales.Handle())
	}
	return hs
}

// applyTableAction performs one navigation request on tbl. It reports
// whether the page size or search changed, so preferences can be saved.
//
//	action=prev|next|reload       move or refetch
//	action=page&page=N            jump to 1-based page N
//	action=size&size=N            change page size
//	action=search&search=S        filter, back to the first page
func applyTableAction[T any](ctx context.Context, tbl *table.Table[T], q url.Values) (prefsChanged bool, err error) {
	switch q.Get("action") {
	case "prev":
		tbl.Prev(ctx)
	case "next":
		tbl.Next(ctx)
	case "page":
		n, convErr := strconv.Atoi(q.Get("page"))
		if convErr != nil {
			return false, errors.New("invalid page")
		}
		tbl.GoTo(ctx, n-1)
	case "size":
		n, convErr := strconv.Atoi(q.Get("size"))
		if convErr != nil {
			return false, table.ErrPageSize
		}
		if err := tbl.SetPageSize(ctx, n); err != nil {
			return false, err
		}
		return true, nil
	case "search":
		tbl.SetSearch(ctx, q.Get("search"))
		return true, nil
	default:
		tbl.Reload(ctx)
	}
	return false, nil
}

// saveTablePrefs remembers the page size and search of tbl for the user.
func saveTablePrefs[T any](ctx context.Context, ui *UI, sess *model.Session, tbl *table.Table[T]) {
	st := tbl.State()
	err := ui.store.SaveTablePrefs(ctx, &model.TablePrefs{
		Username: sess.Username,
		Table:    tbl.Name(),
		PageSize: st.PageSize,
		Search:   st.Search,
	})
	if err != nil {
		ui.logger.Warn("save table prefs failed", "table", tbl.Name(), "error", err)
	}
}
