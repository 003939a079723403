package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/me/vertexdash/pkg/model"
)

// SpreadsheetContentType is the media type of the exported report.
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export is a downloaded report file.
type Export struct {
	Data        []byte
	ContentType string
}

// ReportSummary fetches the sales report summary.
func (c *Client) ReportSummary(ctx context.Context) (*model.SalesReport, error) {
	var report model.SalesReport
	if err := c.do(ctx, "report.summary", http.MethodGet, "/sales-report/summary", nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ExportReport downloads the spreadsheet export.
func (c *Client) ExportReport(ctx context.Context) (*Export, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/sales-report/excel", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("report.export: %w", err)
	}
	req.Header.Set("Accept", SpreadsheetContentType)

	data, header, err := c.send(req, "report.export")
	if err != nil {
		return nil, err
	}
	ct := header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = SpreadsheetContentType
	}
	return &Export{Data: data, ContentType: ct}, nil
}

// ExportFilename returns the download name for a report exported at t.
func ExportFilename(t time.Time) string {
	return "sales-report-" + t.Format("2006-01-02") + ".xlsx"
}
