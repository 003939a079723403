package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/me/vertexdash/pkg/model"
)

// SaleForm is the create sale form.
type SaleForm struct {
	ProductID int64  `form:"productId" validate:"gt=0"`
	Quantity  int    `form:"quantity" validate:"gt=0"`
	Date      string `form:"date" validate:"required,datetime=2006-01-02"`
}

var saleMessages = messages{
	"productId": {"gt": "Please select a product"},
	"quantity":  {"gt": "Quantity must be greater than 0"},
	"date": {
		"required": "Date is required",
		"datetime": "Date must use the YYYY-MM-DD format",
	},
}

// NewSaleForm returns the initial form: quantity 1, dated today, and the
// first available product preselected.
func NewSaleForm(products []model.Product, now time.Time) SaleForm {
	f := SaleForm{Quantity: 1, Date: now.Format(model.DateLayout)}
	if len(products) > 0 {
		f.ProductID = products[0].ID
	}
	return f
}

// ParseSale reads a SaleForm from submitted values.
func ParseSale(v url.Values) SaleForm {
	id, err := strconv.ParseInt(strings.TrimSpace(v.Get("productId")), 10, 64)
	if err != nil {
		id = 0
	}
	return SaleForm{
		ProductID: id,
		Quantity:  parseInt(v.Get("quantity")),
		Date:      field(v, "date"),
	}
}

// Selected returns the product the form refers to, or nil.
func (f SaleForm) Selected(products []model.Product) *model.Product {
	for i := range products {
		if products[i].ID == f.ProductID {
			return &products[i]
		}
	}
	return nil
}

// Validate checks the form against the available products. A quantity above
// the selected product's stock replaces any other quantity message.
func (f SaleForm) Validate(products []model.Product) FieldErrors {
	errs := check(f, saleMessages)
	if p := f.Selected(products); p != nil && f.Quantity > p.Quantity {
		errs["quantity"] = fmt.Sprintf("Quantity exceeds available stock (%d)", p.Quantity)
	}
	return errs
}

// Total previews the sale amount: unit price times quantity.
func (f SaleForm) Total(products []model.Product) float64 {
	p := f.Selected(products)
	if p == nil {
		return 0
	}
	return p.Price * float64(f.Quantity)
}

// Sale converts the form into the create-sale payload.
func (f SaleForm) Sale() model.NewSale {
	return model.NewSale{
		Product:  model.ProductRef{ID: f.ProductID},
		Quantity: f.Quantity,
		Date:     f.Date,
	}
}
