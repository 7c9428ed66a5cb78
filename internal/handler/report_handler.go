package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lekha/internal/csvexport"
	"lekha/internal/excelexport"
	"lekha/internal/report"
	"lekha/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TrialBalance handles GET /api/v1/reports/trial-balance
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	tb, err := h.reportService.TrialBalance(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tb)
}

// ExportTrialBalance handles GET /api/v1/reports/trial-balance/export
func (h *ReportHandler) ExportTrialBalance(c *gin.Context) {
	tb, err := h.reportService.TrialBalance(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	h.sendCSV(c, "trial_balance", func(w *csvexport.Writer) error {
		return w.WriteTrialBalance(tb)
	})
}

// StockSummary handles GET /api/v1/reports/stock-summary
func (h *ReportHandler) StockSummary(c *gin.Context) {
	rows, err := h.reportService.StockSummary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// ExportStockSummary handles GET /api/v1/reports/stock-summary/export
func (h *ReportHandler) ExportStockSummary(c *gin.Context) {
	rows, err := h.reportService.StockSummary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	h.sendCSV(c, "stock_summary", func(w *csvexport.Writer) error {
		return w.WriteStockSummary(rows)
	})
}

// StockValuation handles GET /api/v1/reports/stock-valuation
func (h *ReportHandler) StockValuation(c *gin.Context) {
	rows, err := h.reportService.StockValuation(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// ExportStockValuation handles GET /api/v1/reports/stock-valuation/export
func (h *ReportHandler) ExportStockValuation(c *gin.Context) {
	rows, err := h.reportService.StockValuation(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	h.sendCSV(c, "stock_valuation", func(w *csvexport.Writer) error {
		return w.WriteStockValuation(rows)
	})
}

// GSTFilings handles GET /api/v1/reports/gst-filings
func (h *ReportHandler) GSTFilings(c *gin.Context) {
	filings, err := h.reportService.GSTFilings(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, filings)
}

// ExportGSTFilings handles GET /api/v1/reports/gst-filings/export and
// streams the filing workbook as an xlsx download.
func (h *ReportHandler) ExportGSTFilings(c *gin.Context) {
	snap, err := h.reportService.LoadSnapshot(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	filings := report.ClassifyGSTFilings(snap.Vouchers, snap.Ledgers)
	summary := report.ComputeSalesTaxSummary(snap.Vouchers)

	var buf bytes.Buffer
	if err := excelexport.WriteFilings(&buf, filings, summary, snap.Ledgers); err != nil {
		HandleError(c, err)
		return
	}

	filename := excelexport.BuildFilename()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// SalesTaxSummary handles GET /api/v1/reports/sales-tax-summary
func (h *ReportHandler) SalesTaxSummary(c *gin.Context) {
	summary, err := h.reportService.SalesTaxSummary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// DayBook handles GET /api/v1/reports/day-book with optional date, month and
// ledger query filters.
func (h *ReportHandler) DayBook(c *gin.Context) {
	var filter report.DayBookFilter

	if dateStr := c.Query("date"); dateStr != "" {
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "invalid 'date': must be YYYY-MM-DD")
			return
		}
		filter.Date = &t
	}
	if monthStr := c.Query("month"); monthStr != "" {
		if _, err := time.Parse("2006-01", monthStr); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_MONTH", "invalid 'month': must be YYYY-MM")
			return
		}
		filter.Month = monthStr
	}
	filter.Ledger = c.Query("ledger")

	vouchers, err := h.reportService.DayBook(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, vouchers)
}

// sendCSV streams a CSV report (BOM-prefixed for Excel) via the write
// callback.
func (h *ReportHandler) sendCSV(c *gin.Context, name string, write func(*csvexport.Writer) error) {
	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := write(w); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(name)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
