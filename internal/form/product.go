package form

import (
	"net/url"
	"strconv"

	"github.com/me/vertexdash/pkg/model"
)

// ProductForm is the create/edit product form.
type ProductForm struct {
	Name     string  `form:"name" validate:"required"`
	Price    float64 `form:"price" validate:"gt=0"`
	Quantity int     `form:"quantity" validate:"gte=0"`
}

var productMessages = messages{
	"name":     {"required": "Product name is required"},
	"price":    {"gt": "Price must be greater than 0"},
	"quantity": {"gte": "Quantity cannot be negative"},
}

// ParseProduct reads a ProductForm from submitted values.
func ParseProduct(v url.Values) ProductForm {
	return ProductForm{
		Name:     field(v, "name"),
		Price:    parseFloat(v.Get("price")),
		Quantity: parseInt(v.Get("quantity")),
	}
}

// ProductFormFrom prefills the form from an existing product.
func ProductFormFrom(p model.Product) ProductForm {
	return ProductForm{Name: p.Name, Price: p.Price, Quantity: p.Quantity}
}

// Validate checks the form.
func (f ProductForm) Validate() FieldErrors {
	return check(f, productMessages)
}

// Product converts the form into a product payload.
func (f ProductForm) Product() model.Product {
	return model.Product{Name: f.Name, Price: f.Price, Quantity: f.Quantity}
}

// PriceString formats the price for an input value attribute.
func (f ProductForm) PriceString() string {
	if f.Price == 0 {
		return ""
	}
	return strconv.FormatFloat(f.Price, 'f', 2, 64)
}
