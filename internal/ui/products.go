package ui

import (
	"context"
	"errors"
	"net/http"

	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/form"
	"github.com/me/vertexdash/internal/table"
	"github.com/me/vertexdash/pkg/model"
)

// HandleProducts renders the products view.
func (ui *UI) HandleProducts(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	tbl, st, created, err := ui.productTable(r.Context(), sess)
	if err != nil {
		ui.renderError(w, "Failed to build the products table", err)
		return
	}
	if !created {
		tbl.Reload(r.Context())
	}
	if ui.rejected(w, r, sess, st) {
		return
	}

	ui.rememberTab(w, productsTable)
	data := pageData(r, "Products", productsTable)
	data["Table"] = datatable(tbl.Snapshot(), "/products/table", productsTable)
	ui.render(w, http.StatusOK, "products", data)
}

// HandleProductsTable performs a table action and renders the table partial.
func (ui *UI) HandleProductsTable(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	tbl, st, _, err := ui.productTable(r.Context(), sess)
	if err != nil {
		ui.renderError(w, "Failed to build the products table", err)
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

	ui.renderPartial(w, "components/datatable", datatable(tbl.Snapshot(), "/products/table", productsTable))
}

// HandleNewProduct renders an empty product form.
func (ui *UI) HandleNewProduct(w http.ResponseWriter, r *http.Request) {
	ui.renderProductForm(w, r, http.StatusOK, 0, form.ProductForm{}, nil, "")
}

// HandleCreateProduct validates the form and creates the product.
func (ui *UI) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ui.saveProduct(w, r, 0)
}

// HandleEditProduct renders the form prefilled with an existing product.
func (ui *UI) HandleEditProduct(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, ok := ui.pathID(r)
	if !ok {
		ui.renderNotFound(w, "Product not found")
		return
	}

	p, err := ui.client(sess).Product(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrUnauthorized):
			ui.expireSession(w, r, sess)
		case errors.Is(err, backend.ErrNotFound):
			ui.renderNotFound(w, "Product not found")
		default:
			ui.logger.Error("load product failed", "id", id, "error", err)
			ui.renderBackendError(w, r, "Products", productsTable, err)
		}
		return
	}

	ui.renderProductForm(w, r, http.StatusOK, id, form.ProductFormFrom(*p), nil, "")
}

// HandleUpdateProduct validates the form and updates the product.
func (ui *UI) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.pathID(r)
	if !ok {
		ui.renderNotFound(w, "Product not found")
		return
	}
	ui.saveProduct(w, r, id)
}

// HandleDeleteProduct removes a product and returns to the list.
func (ui *UI) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id, ok := ui.pathID(r)
	if !ok {
		ui.renderNotFound(w, "Product not found")
		return
	}

	if err := ui.client(sess).DeleteProduct(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, backend.ErrUnauthorized):
			ui.expireSession(w, r, sess)
		case errors.Is(err, backend.ErrNotFound):
			ui.renderNotFound(w, "Product not found")
		default:
			ui.logger.Error("delete product failed", "id", id, "error", err)
			ui.renderBackendError(w, r, "Products", productsTable, err)
		}
		return
	}

	ui.logger.Info("product deleted", "id", id, "username", sess.Username)
	ui.reloadTables(r.Context(), sess)
	ui.redirectAfterSubmit(w, r, "/products")
}

// saveProduct creates (id == 0) or updates a product from the posted form.
func (ui *UI) saveProduct(w http.ResponseWriter, r *http.Request, id int64) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		ui.renderProductForm(w, r, http.StatusBadRequest, id, form.ProductForm{}, nil, "Invalid request")
		return
	}

	f := form.ParseProduct(r.PostForm)
	if errs := f.Validate(); !errs.OK() {
		ui.renderProductForm(w, r, http.StatusUnprocessableEntity, id, f, errs, "")
		return
	}

	client := ui.client(sess)
	var err error
	if id == 0 {
		var created *model.Product
		created, err = client.CreateProduct(r.Context(), f.Product())
		if err == nil {
			ui.logger.Info("product created", "id", created.ID, "username", sess.Username)
		}
	} else {
		_, err = client.UpdateProduct(r.Context(), id, f.Product())
		if err == nil {
			ui.logger.Info("product updated", "id", id, "username", sess.Username)
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrUnauthorized):
			ui.expireSession(w, r, sess)
		case errors.Is(err, backend.ErrNotFound):
			ui.renderNotFound(w, "Product not found")
		default:
			ui.logger.Error("save product failed", "id", id, "error", err)
			ui.renderProductForm(w, r, http.StatusBadGateway, id, f, nil, backend.Message(err))
		}
		return
	}

	ui.reloadTables(r.Context(), sess)
	ui.redirectAfterSubmit(w, r, "/products")
}

func (ui *UI) renderProductForm(w http.ResponseWriter, r *http.Request, status int, id int64, f form.ProductForm, errs form.FieldErrors, banner string) {
	heading, action := "Add Product", "/products"
	if id != 0 {
		heading = "Edit Product"
		action = "/products/" + itoa(id)
	}
	if errs == nil {
		errs = form.FieldErrors{}
	}

	data := pageData(r, heading, productsTable)
	data["Heading"] = heading
	data["Action"] = action
	data["Form"] = f
	data["Errors"] = errs
	data["Error"] = banner
	ui.render(w, status, "products/form", data)
}

// reloadTables refetches every table the session has open, so the next
// render shows the result of a write.
func (ui *UI) reloadTables(ctx context.Context, sess *model.Session) {
	for _, h := range ui.tables.get(sess.ID).reloadHandles() {
		h.Reload(ctx)
	}
}

// rejected ends the session when a table fetch was refused by the backend.
func (ui *UI) rejected(w http.ResponseWriter, r *http.Request, sess *model.Session, st *sessionTables) bool {
	if !st.unauthorized.Swap(false) {
		return false
	}
	ui.expireSession(w, r, sess)
	return true
}

// redirectAfterSubmit sends the browser to target after a successful write.
func (ui *UI) redirectAfterSubmit(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// tableData is what the datatable component renders.
type tableData[T any] struct {
	View     table.View[T]
	Endpoint string
	Kind     string
}

func datatable[T any](v table.View[T], endpoint, kind string) tableData[T] {
	return tableData[T]{View: v, Endpoint: endpoint, Kind: kind}
}
