package source

import (
	"context"
	"errors"
	"testing"

	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/table"
	"github.com/me/vertexdash/pkg/model"
)

type fakeBackend struct {
	got      model.PageQuery
	products *backend.ProductPage
	sales    *backend.SalePage
	err      error
}

func (f *fakeBackend) ProductsPage(_ context.Context, q model.PageQuery) (*backend.ProductPage, error) {
	f.got = q
	return f.products, f.err
}

func (f *fakeBackend) SalesPage(_ context.Context, q model.PageQuery) (*backend.SalePage, error) {
	f.got = q
	return f.sales, f.err
}

func TestProducts(t *testing.T) {
	f := &fakeBackend{products: &backend.ProductPage{
		Content:       []model.Product{{ID: 1, Name: "Lamp"}, {ID: 2, Name: "Desk"}},
		TotalElements: 12,
	}}
	fetch := Products(f, DefaultSort)

	res, err := fetch(context.Background(), table.PageRequest{PageIndex: 1, PageSize: 10, Search: "l"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Total != 12 || len(res.Items) != 2 {
		t.Errorf("result = %+v", res)
	}
	want := model.PageQuery{Page: 1, Size: 10, Search: "l", SortBy: "id", Direction: "asc"}
	if f.got != want {
		t.Errorf("query = %+v, want %+v", f.got, want)
	}
}

func TestSales(t *testing.T) {
	f := &fakeBackend{sales: &backend.SalePage{
		Data:  []model.Sale{{ID: 3, Quantity: 1}},
		Total: 1,
	}}
	fetch := Sales(f, Sort{By: "date", Direction: model.DirectionDesc})

	res, err := fetch(context.Background(), table.PageRequest{PageIndex: 0, PageSize: 5})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Total != 1 || res.Items[0].ID != 3 {
		t.Errorf("result = %+v", res)
	}
	if f.got.SortBy != "date" || f.got.Direction != "desc" {
		t.Errorf("query = %+v", f.got)
	}
}

func TestSameShape(t *testing.T) {
	f := &fakeBackend{
		products: &backend.ProductPage{TotalElements: 0},
		sales:    &backend.SalePage{Total: 0},
	}
	p, _ := Products(f, DefaultSort)(context.Background(), table.PageRequest{PageSize: 10})
	s, _ := Sales(f, DefaultSort)(context.Background(), table.PageRequest{PageSize: 10})
	if p.Total != s.Total || len(p.Items) != len(s.Items) {
		t.Errorf("empty pages differ: %+v vs %+v", p, s)
	}
}

func TestErrorPassthrough(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeBackend{err: boom}
	if _, err := Products(f, DefaultSort)(context.Background(), table.PageRequest{PageSize: 10}); !errors.Is(err, boom) {
		t.Errorf("products error = %v", err)
	}
	if _, err := Sales(f, DefaultSort)(context.Background(), table.PageRequest{PageSize: 10}); !errors.Is(err, boom) {
		t.Errorf("sales error = %v", err)
	}
}

func TestProductsWithTable(t *testing.T) {
	f := &fakeBackend{products: &backend.ProductPage{
		Content:       []model.Product{{ID: 1, Name: "Lamp", Price: 2}},
		TotalElements: 1,
	}}
	cols := []table.Column[model.Product]{
		table.SNo[model.Product]("S.No"),
		{Key: "name", Label: "Name", Value: func(p model.Product, _ int) any { return p.Name }},
	}
	tbl, err := table.New(cols, Products(f, DefaultSort))
	if err != nil {
		t.Fatal(err)
	}
	tbl.Reload(context.Background())

	v := tbl.Snapshot()
	if len(v.Rows) != 1 || v.Rows[0].Cells[0] != 1 || v.Rows[0].Cells[1] != "Lamp" {
		t.Errorf("rows = %+v", v.Rows)
	}
}
