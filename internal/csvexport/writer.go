// Package csvexport renders accounting reports as CSV for download.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lekha/internal/report"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var trialBalanceColumns = []string{
	"Ledger",
	"Debit",
	"Credit",
}

var stockSummaryColumns = []string{
	"Item",
	"Inward Qty",
	"Outward Qty",
	"Closing Qty",
}

var stockValuationColumns = []string{
	"Item",
	"Closing Qty",
	"Avg Cost",
	"Closing Value",
}

// Writer wraps csv.Writer for report exports.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteTrialBalance writes the trial balance with a totals row.
func (w *Writer) WriteTrialBalance(tb report.TrialBalance) error {
	if err := w.csv.Write(trialBalanceColumns); err != nil {
		return err
	}
	for _, row := range tb.Rows {
		rec := []string{row.Ledger, formatMoney(row.Debit), formatMoney(row.Credit)}
		if err := w.csv.Write(rec); err != nil {
			return err
		}
	}
	return w.csv.Write([]string{"Total", formatMoney(tb.TotalDebit), formatMoney(tb.TotalCredit)})
}

// WriteStockSummary writes the stock movement summary.
func (w *Writer) WriteStockSummary(rows []report.StockSummaryRow) error {
	if err := w.csv.Write(stockSummaryColumns); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.Name,
			formatQty(row.Inward),
			formatQty(row.Outward),
			formatQty(row.Closing),
		}
		if err := w.csv.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteStockValuation writes the weighted-average stock valuation.
func (w *Writer) WriteStockValuation(rows []report.StockValuationRow) error {
	if err := w.csv.Write(stockValuationColumns); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.Name,
			formatQty(row.ClosingQty),
			formatMoney(row.AvgCost),
			formatMoney(row.Value),
		}
		if err := w.csv.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_report_name}_{YYYY-MM-DD}.csv
func BuildFilename(reportName string) string {
	sanitized := SanitizeFilename(reportName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
