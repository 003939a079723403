package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/me/vertexdash/internal/source"
	"github.com/me/vertexdash/internal/table"
	"github.com/me/vertexdash/internal/ui"
)

func newProductsCmd() *cobra.Command {
	var auth authFlags

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse products",
	}
	auth.register(cmd)
	cmd.AddCommand(newProductsListCmd(&auth))
	return cmd
}

func newProductsListCmd(auth *authFlags) *cobra.Command {
	var (
		page   int
		size   int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of products",
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("page must be at least 1")
			}
			client, err := auth.client(cmd.Context())
			if err != nil {
				return err
			}

			tbl, err := table.New(ui.ProductColumns(), source.Products(client, source.DefaultSort),
				table.WithName("products"),
				table.WithLogger(logger),
				table.WithPageSize(size),
				table.WithSearch(search),
			)
			if err != nil {
				return err
			}

			tbl.Reload(cmd.Context())
			if msg := tbl.Snapshot().Error; msg != "" {
				return fmt.Errorf("list products: %s", msg)
			}
			if page > 1 && !tbl.GoTo(cmd.Context(), page-1) {
				return fmt.Errorf("page %d out of range (1-%d)", page, tbl.State().TotalPages())
			}

			view := tbl.Snapshot()
			if view.Error != "" {
				return fmt.Errorf("list products: %s", view.Error)
			}
			printTable(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&size, "size", table.DefaultPageSize, fmt.Sprintf("Page size, one of %v", table.PageSizes))
	cmd.Flags().StringVar(&search, "search", "", "Filter by name")
	return cmd
}

// printTable renders a table view followed by its page label.
func printTable[T any](w io.Writer, view table.View[T]) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := make([]any, len(view.Headers))
	for i, h := range view.Headers {
		header[i] = bold.Sprint(h.Label)
	}
	tbl.AddRow(header...)

	if view.Empty {
		fmt.Fprintln(w, tbl)
		fmt.Fprintln(w, faint.Sprint("No data"))
		return
	}
	for _, row := range view.Rows {
		tbl.AddRow(row.Cells...)
	}
	fmt.Fprintln(w, tbl)
	fmt.Fprintln(w, faint.Sprintf("%s (%d total)", view.PageLabel(), view.Total))
}
