package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/me/vertexdash/internal/backend"
)

func newReportCmd() *cobra.Command {
	var auth authFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Sales report summary and export",
	}
	auth.register(cmd)
	cmd.AddCommand(newReportSummaryCmd(&auth), newReportExportCmd(&auth))
	return cmd
}

func newReportSummaryCmd(auth *authFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print report totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := auth.client(cmd.Context())
			if err != nil {
				return err
			}
			report, err := client.ReportSummary(cmd.Context())
			if err != nil {
				return fmt.Errorf("report summary: %w", err)
			}

			bold := color.New(color.Bold)
			w := cmd.OutOrStdout()

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("Total Sales"), "$"+humanize.FormatFloat("#,###.##", report.TotalSales))
			tbl.AddRow(bold.Sprint("Products Sold"), humanize.Comma(int64(report.TotalProductsSold)))
			fmt.Fprintln(w, tbl)

			if len(report.SalesTrend) > 0 {
				trend := uitable.New()
				trend.Separator = "  "
				trend.AddRow(bold.Sprint("Date"), bold.Sprint("Sales"))
				for _, p := range report.SalesTrend {
					trend.AddRow(p.Date, "$"+humanize.FormatFloat("#,###.##", p.Sales))
				}
				fmt.Fprintln(w)
				fmt.Fprintln(w, trend)
			}
			return nil
		},
	}
}

func newReportExportCmd(auth *authFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the sales spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := auth.client(cmd.Context())
			if err != nil {
				return err
			}
			export, err := client.ExportReport(cmd.Context())
			if err != nil {
				return fmt.Errorf("report export: %w", err)
			}

			if output == "" {
				output = backend.ExportFilename(time.Now())
			}
			if err := os.WriteFile(output, export.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", humanize.Bytes(uint64(len(export.Data))), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default sales-report-YYYY-MM-DD.xlsx)")
	return cmd
}
