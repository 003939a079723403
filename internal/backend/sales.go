package backend

import (
	"context"
	"net/http"

	"github.com/me/vertexdash/pkg/model"
)

// SalePage is the backend's paginated sale shape.
type SalePage struct {
	Data  []model.Sale `json:"data"`
	Total int          `json:"total"`
}

// SalesPage fetches one page of sales.
func (c *Client) SalesPage(ctx context.Context, q model.PageQuery) (*SalePage, error) {
	var page SalePage
	if err := c.do(ctx, "sales.page", http.MethodGet, "/sales/paginated", pageValues(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateSale records a sale.
func (c *Client) CreateSale(ctx context.Context, s model.NewSale) (*model.Sale, error) {
	var created model.Sale
	if err := c.do(ctx, "sales.create", http.MethodPost, "/sales", nil, s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
