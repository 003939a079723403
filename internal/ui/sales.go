package ui

import (
	"errors"
	"net/http"

	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/form"
	"github.com/me/vertexdash/pkg/model"
)

// saleProductLimit bounds the product picker of the sale form.
const saleProductLimit = 100

// HandleSales renders the sales view.
func (ui *UI) HandleSales(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	tbl, st, created, err := ui.saleTable(r.Context(), sess)
	if err != nil {
		ui.renderError(w, "Failed to build the sales table", err)
		return
	}
	if !created {
		tbl.Reload(r.Context())
	}
	if ui.rejected(w, r, sess, st) {
		return
	}

	ui.rememberTab(w, salesTable)
	data := pageData(r, "Sales", salesTable)
	data["Table"] = datatable(tbl.Snapshot(), "/sales/table", salesTable)
	ui.render(w, http.StatusOK, "sales", data)
}

// HandleSalesTable performs a table action and renders the table partial.
func (ui *UI) HandleSalesTable(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	tbl, st, _, err := ui.saleTable(r.Context(), sess)
	if err != nil {
		ui.renderError(w, "Failed to build the sales table", err)
		return
	}

	changed, err := applyTableAction(r.Context(), tbl, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ui.rejected(w, r, sess, st) {
		return
	}
	if changed {
		saveTablePrefs(r.Context(), ui, sess, tbl)
	}

	ui.renderPartial(w, "components/datatable", datatable(tbl.Snapshot(), "/sales/table", salesTable))
}

// HandleNewSale renders the sale form with today's date and the first
// active product selected.
func (ui *UI) HandleNewSale(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	products, err := ui.client(sess).ActiveProducts(r.Context(), 0, saleProductLimit, "")
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ui.expireSession(w, r, sess)
			return
		}
		ui.logger.Error("load active products failed", "error", err)
		ui.renderSaleForm(w, r, http.StatusBadGateway, nil, form.SaleForm{}, nil, backend.Message(err))
		return
	}

	products = activeOnly(products)
	ui.renderSaleForm(w, r, http.StatusOK, products, form.NewSaleForm(products, ui.now()), nil, "")
}

// HandleCreateSale validates the form against current stock and records
// the sale.
func (ui *UI) HandleCreateSale(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		ui.renderSaleForm(w, r, http.StatusBadRequest, nil, form.SaleForm{}, nil, "Invalid request")
		return
	}
	f := form.ParseSale(r.PostForm)

	client := ui.client(sess)
	products, err := client.ActiveProducts(r.Context(), 0, saleProductLimit, "")
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ui.expireSession(w, r, sess)
			return
		}
		ui.logger.Error("load active products failed", "error", err)
		ui.renderSaleForm(w, r, http.StatusBadGateway, nil, f, nil, backend.Message(err))
		return
	}

	products = activeOnly(products)
	if errs := f.Validate(products); !errs.OK() {
		ui.renderSaleForm(w, r, http.StatusUnprocessableEntity, products, f, errs, "")
		return
	}

	sale, err := client.CreateSale(r.Context(), f.Sale())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ui.expireSession(w, r, sess)
			return
		}
		ui.logger.Error("create sale failed", "product_id", f.ProductID, "error", err)
		ui.renderSaleForm(w, r, http.StatusBadGateway, products, f, nil, backend.Message(err))
		return
	}

	ui.logger.Info("sale recorded", "id", sale.ID, "product_id", f.ProductID, "quantity", f.Quantity, "username", sess.Username)
	// Stock changed as well, so the products table is reloaded too.
	ui.reloadTables(r.Context(), sess)
	ui.redirectAfterSubmit(w, r, "/sales")
}

func (ui *UI) renderSaleForm(w http.ResponseWriter, r *http.Request, status int, products []model.Product, f form.SaleForm, errs form.FieldErrors, banner string) {
	if errs == nil {
		errs = form.FieldErrors{}
	}
	data := pageData(r, "Record Sale", salesTable)
	data["Products"] = products
	data["Form"] = f
	data["Errors"] = errs
	data["Error"] = banner
	data["Total"] = money(f.Total(products))
	ui.render(w, status, "sales/form", data)
}

// activeOnly drops products the backend flagged inactive.
func activeOnly(products []model.Product) []model.Product {
	out := products[:0:0]
	for _, p := range products {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}
