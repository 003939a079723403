package model

// DateLayout is the wire format for sale dates.
const DateLayout = "2006-01-02"

// Sale is a recorded sale of a product.
type Sale struct {
	ID          int64    `json:"id,omitempty"`
	Product     *Product `json:"product,omitempty"`
	Quantity    int      `json:"quantity"`
	Date        string   `json:"date"`
	TotalAmount float64  `json:"totalAmount,omitempty"`
}

// ProductName returns the product name, or a placeholder when the product
// was not expanded by the backend.
func (s Sale) ProductName() string {
	if s.Product == nil || s.Product.Name == "" {
		return "Unknown product"
	}
	return s.Product.Name
}

// UnitPrice returns the product price or 0 when unknown.
func (s Sale) UnitPrice() float64 {
	if s.Product == nil {
		return 0
	}
	return s.Product.Price
}

// Total returns the stored total, falling back to unit price times quantity.
func (s Sale) Total() float64 {
	if s.TotalAmount > 0 {
		return s.TotalAmount
	}
	return s.UnitPrice() * float64(s.Quantity)
}

// NewSale is the payload for creating a sale. The backend resolves the
// product by id and computes the total itself.
type NewSale struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
	Date     string     `json:"date"`
}

// ProductRef references a product by id.
type ProductRef struct {
	ID int64 `json:"id"`
}
