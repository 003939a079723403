package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	// Public routes (no auth required).
	r.Get("/login", ui.HandleLogin)
	r.Post("/login", ui.HandleLoginPost)

	// Protected routes (auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.AuthMiddleware)

		r.Get("/", ui.HandleHome)
		r.Get("/logout", ui.HandleLogout)

		// Products
		r.Route("/products", func(r chi.Router) {
			r.Get("/", ui.HandleProducts)
			r.Post("/", ui.HandleCreateProduct)
			r.Get("/table", ui.HandleProductsTable)
			r.Get("/new", ui.HandleNewProduct)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/edit", ui.HandleEditProduct)
				r.Post("/", ui.HandleUpdateProduct)
				r.Post("/delete", ui.HandleDeleteProduct)
			})
		})

		// Sales
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", ui.HandleSales)
			r.Post("/", ui.HandleCreateSale)
			r.Get("/table", ui.HandleSalesTable)
			r.Get("/new", ui.HandleNewSale)
		})

		// Report
		r.Get("/report", ui.HandleReport)
		r.Get("/report/export", ui.HandleExport)
	})
}

// StaticHandler returns an http.Handler that serves static files from the given directory.
func StaticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.StripPrefix("/static/", fs)
}
