package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/me/vertexdash/pkg/model"
)

// ProductPage is the backend's paginated product shape.
type ProductPage struct {
	Content       []model.Product `json:"content"`
	TotalElements int             `json:"totalElements"`
}

func pageValues(q model.PageQuery) url.Values {
	q.Clamp()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	v.Set("search", q.Search)
	v.Set("sortBy", q.SortBy)
	v.Set("direction", q.Direction)
	return v
}

// ProductsPage fetches one page of products.
func (c *Client) ProductsPage(ctx context.Context, q model.PageQuery) (*ProductPage, error) {
	var page ProductPage
	if err := c.do(ctx, "products.page", http.MethodGet, "/products/paginated", pageValues(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ActiveProducts lists products that can be sold, for the sale form picker.
func (c *Client) ActiveProducts(ctx context.Context, page, size int, search string) ([]model.Product, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	v.Set("search", search)

	var products []model.Product
	if err := c.do(ctx, "products.active", http.MethodGet, "/products/active", v, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product.
func (c *Client) Product(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, "products.get", http.MethodGet, productPath(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct adds a product. The ID of p is ignored.
func (c *Client) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.ID = 0
	var created model.Product
	if err := c.do(ctx, "products.create", http.MethodPost, "/products", nil, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p model.Product) (*model.Product, error) {
	p.ID = id
	var updated model.Product
	if err := c.do(ctx, "products.update", http.MethodPut, productPath(id), nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, "products.delete", http.MethodDelete, productPath(id), nil, nil, nil)
}

func productPath(id int64) string {
	return fmt.Sprintf("/products/%d", id)
}
