package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/report"
)

func datedVoucher(vt domain.VoucherType, date string) domain.Voucher {
	d, _ := time.Parse("2006-01-02", date)
	return domain.Voucher{Type: vt, Date: d}
}

func TestComputeDayBook_NoFilterReturnsAll(t *testing.T) {
	vouchers := []domain.Voucher{
		datedVoucher(domain.VoucherTypePurchase, "2026-04-01"),
		datedVoucher(domain.VoucherTypeSales, "2026-04-02"),
	}

	out := report.ComputeDayBook(vouchers, report.DayBookFilter{})

	assert.Len(t, out, 2)
}

func TestComputeDayBook_DateFilter(t *testing.T) {
	vouchers := []domain.Voucher{
		datedVoucher(domain.VoucherTypePurchase, "2026-04-01"),
		datedVoucher(domain.VoucherTypeSales, "2026-04-02"),
	}
	date, _ := time.Parse("2006-01-02", "2026-04-02")

	out := report.ComputeDayBook(vouchers, report.DayBookFilter{Date: &date})

	require.Len(t, out, 1)
	assert.Equal(t, domain.VoucherTypeSales, out[0].Type)
}

func TestComputeDayBook_MonthFilter(t *testing.T) {
	vouchers := []domain.Voucher{
		datedVoucher(domain.VoucherTypePurchase, "2026-03-31"),
		datedVoucher(domain.VoucherTypeSales, "2026-04-01"),
		datedVoucher(domain.VoucherTypeSales, "2026-04-30"),
	}

	out := report.ComputeDayBook(vouchers, report.DayBookFilter{Month: "2026-04"})

	assert.Len(t, out, 2)
}

func TestComputeDayBook_LedgerFilterPerVariant(t *testing.T) {
	vouchers := []domain.Voucher{
		{Type: domain.VoucherTypeSales, Party: "Beta Retail"},
		{Type: domain.VoucherTypePayment, Party: "Acme", Account: "Bank"},
		{Type: domain.VoucherTypeContra, FromAccount: "Bank", ToAccount: "Cash"},
		{Type: domain.VoucherTypeJournal, Entries: []domain.JournalEntry{{Ledger: "Bank", Debit: 1}}},
		{Type: domain.VoucherTypeReceipt, Party: "Beta Retail", Account: "Cash"},
	}

	out := report.ComputeDayBook(vouchers, report.DayBookFilter{Ledger: "bank"})

	assert.Len(t, out, 3)
}

func TestComputeDayBook_PreservesOrder(t *testing.T) {
	vouchers := []domain.Voucher{
		{Type: domain.VoucherTypeSales, Party: "A"},
		{Type: domain.VoucherTypeSales, Party: "B"},
		{Type: domain.VoucherTypeSales, Party: "C"},
	}

	out := report.ComputeDayBook(vouchers, report.DayBookFilter{})

	require.Len(t, out, 3)
	assert.Equal(t, "A", out[0].Party)
	assert.Equal(t, "B", out[1].Party)
	assert.Equal(t, "C", out[2].Party)
}
