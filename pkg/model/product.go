package model

// Product is an item managed through the products view.
type Product struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Active   *bool   `json:"active,omitempty"`
}

// IsActive reports whether the backend considers the product active.
// Products without the flag are active.
func (p Product) IsActive() bool {
	return p.Active == nil || *p.Active
}
