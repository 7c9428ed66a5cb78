// Package excelexport renders the GST filing workbook with one sheet per
// section, in the layout accountants expect for GSTR-1 preparation.
package excelexport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lekha/internal/domain"
	"lekha/internal/report"
)

const (
	sheetB2B     = "B2B"
	sheetB2C     = "B2C"
	sheetSummary = "Summary"
)

var filingColumns = []string{
	"Invoice No",
	"Date",
	"Party",
	"GSTIN",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Total",
}

// WriteFilings builds the GST filing workbook and writes it to w. Ledger
// GSTINs are looked up case-insensitively for the B2B sheet; B2C rows leave
// the GSTIN column empty.
func WriteFilings(w io.Writer, filings report.Filings, summary report.SalesTaxSummary, ledgers []domain.Ledger) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	gstins := make(map[string]string, len(ledgers))
	for _, l := range ledgers {
		key := strings.ToLower(l.Name)
		if _, ok := gstins[key]; !ok {
			gstins[key] = l.GSTIN
		}
	}

	// excelize starts with a default sheet; rename it rather than deleting.
	if err := f.SetSheetName("Sheet1", sheetB2B); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetB2C); err != nil {
		return fmt.Errorf("create B2C sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	if err := writeVoucherSheet(f, sheetB2B, filings.B2B, gstins); err != nil {
		return err
	}
	if err := writeVoucherSheet(f, sheetB2C, filings.B2C, nil); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeVoucherSheet(f *excelize.File, sheet string, vouchers []domain.Voucher, gstins map[string]string) error {
	header := make([]interface{}, len(filingColumns))
	for i, col := range filingColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	for i, v := range vouchers {
		gstin := ""
		if gstins != nil {
			gstin = gstins[strings.ToLower(v.Party)]
		}
		row := []interface{}{
			v.InvoiceNo,
			v.Date.Format("2006-01-02"),
			v.Party,
			gstin,
			v.TotalTaxableAmount,
			v.TotalCGST,
			v.TotalSGST,
			v.TotalIGST,
			v.Total,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary report.SalesTaxSummary) error {
	rows := [][]interface{}{
		{"Metric", "Amount"},
		{"Taxable Amount", summary.TaxableAmount},
		{"CGST", summary.CGST},
		{"SGST", summary.SGST},
		{"IGST", summary.IGST},
		{"Total", summary.Total},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}
	return nil
}

// BuildFilename returns the download filename for the filing workbook.
func BuildFilename() string {
	return fmt.Sprintf("gst_filings_%s.xlsx", time.Now().Format("2006-01-02"))
}
