package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/gst"
	"lekha/internal/ingest"
)

var (
	testNow     = time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC)
	testCompany = domain.CompanyDetails{Name: "My Company", State: "Maharashtra"}
)

func TestNormalizeInvoice_FullInvoice(t *testing.T) {
	ledgers := []domain.Ledger{{Name: "Acme Traders", State: "Maharashtra"}}
	items := []domain.StockItem{{Name: "Cement", GSTRate: 28}}
	ext := domain.ExtractedInvoice{
		SellerName:    "Acme Traders",
		InvoiceNumber: "INV-042",
		InvoiceDate:   "2026-04-01",
		LineItems: []domain.ExtractedLineItem{
			{ItemDescription: "Cement", Quantity: 10, Rate: 100},
		},
	}

	v := ingest.NormalizeInvoice(ext, ledgers, items, testCompany, "INV-042.pdf", testNow)

	assert.Equal(t, domain.VoucherTypePurchase, v.Type)
	assert.Equal(t, "Acme Traders", v.Party)
	assert.Equal(t, "INV-042", v.InvoiceNo)
	assert.False(t, v.IsInterState)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), v.Date)
	assert.Equal(t, "Imported from INV-042.pdf", v.Narration)

	require.Len(t, v.Items, 1)
	assert.Equal(t, 1000.0, v.Items[0].TaxableAmount)
	assert.Equal(t, 140.0, v.Items[0].CGSTAmount)
	assert.Equal(t, 140.0, v.Items[0].SGSTAmount)
	assert.Equal(t, 1280.0, v.Total)
}

func TestNormalizeInvoice_InterStateSeller(t *testing.T) {
	ledgers := []domain.Ledger{{Name: "Delhi Distributors", State: "Delhi"}}
	items := []domain.StockItem{{Name: "Cement", GSTRate: 18}}
	ext := domain.ExtractedInvoice{
		SellerName: "Delhi Distributors",
		LineItems:  []domain.ExtractedLineItem{{ItemDescription: "Cement", Quantity: 10, Rate: 100}},
	}

	v := ingest.NormalizeInvoice(ext, ledgers, items, testCompany, "a.pdf", testNow)

	assert.True(t, v.IsInterState)
	assert.Equal(t, 180.0, v.TotalIGST)
	assert.Equal(t, 0.0, v.TotalCGST)
}

func TestNormalizeInvoice_SellerMatchesCaseInsensitively(t *testing.T) {
	ledgers := []domain.Ledger{{Name: "Acme Traders", State: "Delhi"}}
	ext := domain.ExtractedInvoice{SellerName: "  acme traders "}

	v := ingest.NormalizeInvoice(ext, ledgers, nil, testCompany, "a.pdf", testNow)

	// party takes the master-data spelling, not the extracted one
	assert.Equal(t, "Acme Traders", v.Party)
	assert.True(t, v.IsInterState)
}

func TestNormalizeInvoice_UnknownSellerIsIntraState(t *testing.T) {
	ext := domain.ExtractedInvoice{
		SellerName: "Ghost Supplier",
		LineItems:  []domain.ExtractedLineItem{{ItemDescription: "Cement", Quantity: 1, Rate: 100}},
	}

	v := ingest.NormalizeInvoice(ext, nil, nil, testCompany, "a.pdf", testNow)

	assert.Equal(t, "Ghost Supplier", v.Party)
	assert.False(t, v.IsInterState)
}

func TestNormalizeInvoice_UnknownItemGetsFallbackRate(t *testing.T) {
	ext := domain.ExtractedInvoice{
		SellerName: "Anyone",
		LineItems:  []domain.ExtractedLineItem{{ItemDescription: "Novel Widget", Quantity: 10, Rate: 100}},
	}

	v := ingest.NormalizeInvoice(ext, nil, nil, testCompany, "a.pdf", testNow)

	require.Len(t, v.Items, 1)
	tax := v.Items[0].CGSTAmount + v.Items[0].SGSTAmount
	assert.InDelta(t, 1000*gst.DefaultRatePercent/100, tax, 1e-9)
}

func TestNormalizeInvoice_DateFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-04-01", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"01/04/2026", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"01-04-2026", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"01 Apr 2026", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ext := domain.ExtractedInvoice{InvoiceDate: tt.raw}
			v := ingest.NormalizeInvoice(ext, nil, nil, testCompany, "a.pdf", testNow)
			assert.Equal(t, tt.want, v.Date)
		})
	}
}

func TestNormalizeInvoice_BadDateFallsBackToNow(t *testing.T) {
	ext := domain.ExtractedInvoice{InvoiceDate: "not a date"}

	v := ingest.NormalizeInvoice(ext, nil, nil, testCompany, "a.pdf", testNow)

	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), v.Date)
}

func TestNormalizeInvoice_EmptyInvoiceNeverFails(t *testing.T) {
	v := ingest.NormalizeInvoice(domain.ExtractedInvoice{}, nil, nil, domain.CompanyDetails{}, "x", testNow)

	assert.Equal(t, domain.VoucherTypePurchase, v.Type)
	assert.Empty(t, v.Items)
	assert.Equal(t, 0.0, v.Total)
}

func TestNormalizeInvoice_AdvisoryTotalsIgnored(t *testing.T) {
	// extracted totals disagree with the line items; line items win
	ext := domain.ExtractedInvoice{
		SellerName:  "Anyone",
		Subtotal:    99999,
		TotalAmount: 88888,
		LineItems:   []domain.ExtractedLineItem{{ItemDescription: "Cement", Quantity: 1, Rate: 100}},
	}
	items := []domain.StockItem{{Name: "Cement", GSTRate: 18}}

	v := ingest.NormalizeInvoice(ext, nil, items, testCompany, "a.pdf", testNow)

	assert.Equal(t, 100.0, v.TotalTaxableAmount)
	assert.Equal(t, 118.0, v.Total)
}
