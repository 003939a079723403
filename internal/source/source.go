// Package source adapts sales backend endpoints to table.FetchFunc.
package source

import (
	"context"

	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/table"
	"github.com/me/vertexdash/pkg/model"
)

// ProductLister is the backend call behind the products table.
type ProductLister interface {
	ProductsPage(ctx context.Context, q model.PageQuery) (*backend.ProductPage, error)
}

// SaleLister is the backend call behind the sales table.
type SaleLister interface {
	SalesPage(ctx context.Context, q model.PageQuery) (*backend.SalePage, error)
}

// Sort fixes the sort order an adapter requests.
type Sort struct {
	By        string
	Direction string
}

// DefaultSort sorts by id, ascending.
var DefaultSort = Sort{By: "id", Direction: model.DirectionAsc}

func query(req table.PageRequest, s Sort) model.PageQuery {
	return model.PageQuery{
		Page:      req.PageIndex,
		Size:      req.PageSize,
		Search:    req.Search,
		SortBy:    s.By,
		Direction: s.Direction,
	}
}

// Products adapts the {content, totalElements} product page.
func Products(l ProductLister, s Sort) table.FetchFunc[model.Product] {
	return func(ctx context.Context, req table.PageRequest) (table.PageResult[model.Product], error) {
		page, err := l.ProductsPage(ctx, query(req, s))
		if err != nil {
			return table.PageResult[model.Product]{}, err
		}
		return table.PageResult[model.Product]{Items: page.Content, Total: page.TotalElements}, nil
	}
}

// Sales adapts the {data, total} sale page.
func Sales(l SaleLister, s Sort) table.FetchFunc[model.Sale] {
	return func(ctx context.Context, req table.PageRequest) (table.PageResult[model.Sale], error) {
		page, err := l.SalesPage(ctx, query(req, s))
		if err != nil {
			return table.PageResult[model.Sale]{}, err
		}
		return table.PageResult[model.Sale]{Items: page.Data, Total: page.Total}, nil
	}
}
