package ui

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/me/vertexdash/internal/archive"
	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/pkg/model"
)

const (
	reportTab     = "report"
	recentExports = 5
)

// chartSeries feeds Chart.js.
type chartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// exportRow is an archived export as shown on the report page.
type exportRow struct {
	Filename string
	Size     string
	When     string
	Location string
}

// HandleReport renders summary cards and charts.
func (ui *UI) HandleReport(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	ui.rememberTab(w, reportTab)
	data := pageData(r, "Reports", reportTab)

	report, err := ui.client(sess).ReportSummary(r.Context())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ui.expireSession(w, r, sess)
			return
		}
		ui.logger.Error("load report summary failed", "error", err)
		data["Error"] = backend.Message(err)
		report = &model.SalesReport{}
	}

	trend := chartSeries{Labels: []string{}, Values: []float64{}}
	for _, p := range report.SalesTrend {
		trend.Labels = append(trend.Labels, p.Date)
		trend.Values = append(trend.Values, p.Sales)
	}
	shares := chartSeries{Labels: []string{}, Values: []float64{}}
	for _, c := range report.SalesByCategory {
		shares.Labels = append(shares.Labels, c.Category)
		shares.Values = append(shares.Values, c.Value)
	}

	data["TotalSales"] = money(report.TotalSales)
	data["TotalProductsSold"] = humanize.Comma(int64(report.TotalProductsSold))
	data["Trend"] = trend
	data["Shares"] = shares
	data["Exports"] = ui.recentExports(r.Context(), sess)
	ui.render(w, http.StatusOK, "report", data)
}

func (ui *UI) recentExports(ctx context.Context, sess *model.Session) []exportRow {
	if ui.archiver == nil {
		return nil
	}
	recs, err := ui.store.ListExports(ctx, sess.Username, recentExports)
	if err != nil {
		ui.logger.Warn("list exports failed", "error", err)
		return nil
	}
	rows := make([]exportRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, exportRow{
			Filename: rec.Filename,
			Size:     humanize.Bytes(uint64(rec.Size)),
			When:     humanize.Time(rec.CreatedAt),
			Location: rec.Location,
		})
	}
	return rows
}

// HandleExport streams the backend spreadsheet as a date-stamped download.
func (ui *UI) HandleExport(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	export, err := ui.client(sess).ExportReport(r.Context())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			ui.expireSession(w, r, sess)
			return
		}
		ui.logger.Error("export report failed", "error", err)
		ui.renderBackendError(w, r, "Reports", reportTab, err)
		return
	}

	filename := backend.ExportFilename(ui.now())
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	if _, err := w.Write(export.Data); err != nil {
		ui.logger.Warn("write export failed", "error", err)
		return
	}

	ui.logger.Info("report exported", "filename", filename, "size", len(export.Data), "username", sess.Username)
	ui.archiveExport(r.Context(), sess, filename, export)
}

// archiveExport keeps a copy of the download. Failures are only logged.
func (ui *UI) archiveExport(ctx context.Context, sess *model.Session, filename string, export *backend.Export) {
	if ui.archiver == nil {
		return
	}
	size := int64(len(export.Data))
	res, err := ui.archiver.Put(ctx, bytes.NewReader(export.Data), archive.PutInput{
		Filename:    filename,
		ContentType: export.ContentType,
		Size:        size,
	})
	if err != nil {
		ui.logger.Error("archive export failed", "archiver", ui.archiver.String(), "error", err)
		return
	}

	rec := &model.ExportRecord{
		ID:        uuid.NewString(),
		Username:  sess.Username,
		Filename:  filename,
		Location:  res.Location,
		Size:      size,
		CreatedAt: ui.now(),
	}
	if err := ui.store.RecordExport(ctx, rec); err != nil {
		ui.logger.Error("record export failed", "error", err)
		return
	}
	ui.logger.Debug("export archived", "location", res.Location)
}
