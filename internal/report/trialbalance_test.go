package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/gst"
	"lekha/internal/report"
)

func purchaseVoucher(party string, interState bool, items ...domain.VoucherItem) domain.Voucher {
	v := domain.Voucher{
		Type:         domain.VoucherTypePurchase,
		Party:        party,
		IsInterState: interState,
		Items:        items,
	}
	gst.SumItems(&v)
	return v
}

func salesVoucher(party string, interState bool, items ...domain.VoucherItem) domain.Voucher {
	v := domain.Voucher{
		Type:         domain.VoucherTypeSales,
		Party:        party,
		IsInterState: interState,
		Items:        items,
	}
	gst.SumItems(&v)
	return v
}

func findRow(t *testing.T, tb report.TrialBalance, ledger string) report.TrialBalanceRow {
	t.Helper()
	for _, row := range tb.Rows {
		if row.Ledger == ledger {
			return row
		}
	}
	t.Fatalf("ledger %q not found in trial balance", ledger)
	return report.TrialBalanceRow{}
}

func TestComputeTrialBalance_IntraStatePurchase(t *testing.T) {
	vouchers := []domain.Voucher{
		purchaseVoucher("Acme Traders", false, gst.BuildItem("Cement", 10, 100, 18, false)),
	}

	tb := report.ComputeTrialBalance(vouchers, nil)

	party := findRow(t, tb, "Acme Traders")
	assert.Equal(t, 1180.0, party.Credit)
	assert.Equal(t, 0.0, party.Debit)

	assert.Equal(t, 1000.0, findRow(t, tb, report.LedgerPurchases).Debit)
	assert.Equal(t, 90.0, findRow(t, tb, report.LedgerCGST).Debit)
	assert.Equal(t, 90.0, findRow(t, tb, report.LedgerSGST).Debit)

	assert.Equal(t, tb.TotalDebit, tb.TotalCredit)
}

func TestComputeTrialBalance_InterStateSales(t *testing.T) {
	vouchers := []domain.Voucher{
		salesVoucher("Beta Retail", true, gst.BuildItem("Cement", 5, 200, 18, true)),
	}

	tb := report.ComputeTrialBalance(vouchers, nil)

	assert.Equal(t, 1180.0, findRow(t, tb, "Beta Retail").Debit)
	assert.Equal(t, 1000.0, findRow(t, tb, report.LedgerSales).Credit)
	assert.Equal(t, 180.0, findRow(t, tb, report.LedgerIGST).Credit)
	assert.Equal(t, tb.TotalDebit, tb.TotalCredit)
}

func TestComputeTrialBalance_PaymentSettlesParty(t *testing.T) {
	vouchers := []domain.Voucher{
		purchaseVoucher("Acme Traders", false, gst.BuildItem("Cement", 10, 100, 18, false)),
		{Type: domain.VoucherTypePayment, Party: "Acme Traders", Account: "Bank", Amount: 1180},
	}

	tb := report.ComputeTrialBalance(vouchers, nil)

	// Party fully settled: zero balance, omitted from rows.
	for _, row := range tb.Rows {
		assert.NotEqual(t, "Acme Traders", row.Ledger)
	}
	assert.Equal(t, 1180.0, findRow(t, tb, "Bank").Credit)
}

func TestComputeTrialBalance_ReceiptAndContra(t *testing.T) {
	vouchers := []domain.Voucher{
		{Type: domain.VoucherTypeReceipt, Party: "Beta Retail", Account: "Bank", Amount: 500},
		{Type: domain.VoucherTypeContra, FromAccount: "Bank", ToAccount: "Cash", Amount: 200},
	}

	tb := report.ComputeTrialBalance(vouchers, nil)

	assert.Equal(t, 500.0, findRow(t, tb, "Beta Retail").Credit)
	assert.Equal(t, 300.0, findRow(t, tb, "Bank").Debit)
	assert.Equal(t, 200.0, findRow(t, tb, "Cash").Debit)
}

func TestComputeTrialBalance_JournalEntries(t *testing.T) {
	vouchers := []domain.Voucher{
		{Type: domain.VoucherTypeJournal, Entries: []domain.JournalEntry{
			{Ledger: "Rent Expense", Debit: 5000},
			{Ledger: "Rent Payable", Credit: 5000},
			{Ledger: "", Debit: 999}, // nameless entry is skipped
		}},
	}

	tb := report.ComputeTrialBalance(vouchers, nil)

	assert.Equal(t, 5000.0, findRow(t, tb, "Rent Expense").Debit)
	assert.Equal(t, 5000.0, findRow(t, tb, "Rent Payable").Credit)
	assert.Len(t, tb.Rows, 2)
}

func TestComputeTrialBalance_UnknownLedgerSelfHeals(t *testing.T) {
	// The voucher references a party missing from master data; the row
	// appears anyway.
	ledgers := []domain.Ledger{{Name: "Known Ledger"}}
	vouchers := []domain.Voucher{
		purchaseVoucher("Ghost Supplier", false, gst.BuildItem("Cement", 1, 100, 18, false)),
	}

	tb := report.ComputeTrialBalance(vouchers, ledgers)

	assert.Equal(t, 118.0, findRow(t, tb, "Ghost Supplier").Credit)
}

func TestComputeTrialBalance_PartyMatchIsCaseInsensitive(t *testing.T) {
	ledgers := []domain.Ledger{{Name: "Acme Traders"}}
	vouchers := []domain.Voucher{
		purchaseVoucher("ACME TRADERS", false, gst.BuildItem("Cement", 10, 100, 18, false)),
		{Type: domain.VoucherTypePayment, Party: "acme traders", Account: "Bank", Amount: 500},
	}

	tb := report.ComputeTrialBalance(vouchers, ledgers)

	// One net row under the master spelling, not one per variant.
	seen := 0
	for _, row := range tb.Rows {
		if strings.EqualFold(row.Ledger, "Acme Traders") {
			seen++
			assert.Equal(t, "Acme Traders", row.Ledger)
			assert.Equal(t, 680.0, row.Credit)
		}
	}
	assert.Equal(t, 1, seen)
}

func TestComputeTrialBalance_CaseVariantsSettleToOmission(t *testing.T) {
	vouchers := []domain.Voucher{
		purchaseVoucher("Acme Traders", false, gst.BuildItem("Cement", 10, 100, 18, false)),
		{Type: domain.VoucherTypePayment, Party: "ACME TRADERS", Account: "Bank", Amount: 1180},
	}

	tb := report.ComputeTrialBalance(vouchers, nil)

	for _, row := range tb.Rows {
		assert.False(t, strings.EqualFold(row.Ledger, "Acme Traders"))
	}
	assert.Equal(t, tb.TotalDebit, tb.TotalCredit)
}

func TestComputeTrialBalance_ZeroBalanceOmitted(t *testing.T) {
	ledgers := []domain.Ledger{{Name: "Dormant"}}

	tb := report.ComputeTrialBalance(nil, ledgers)

	assert.Empty(t, tb.Rows)
	assert.Equal(t, 0.0, tb.TotalDebit)
	assert.Equal(t, 0.0, tb.TotalCredit)
}

func TestComputeTrialBalance_FirstSeenOrder(t *testing.T) {
	ledgers := []domain.Ledger{{Name: "Acme Traders"}, {Name: "Bank"}}
	vouchers := []domain.Voucher{
		{Type: domain.VoucherTypePayment, Party: "Acme Traders", Account: "Bank", Amount: 100},
		{Type: domain.VoucherTypeReceipt, Party: "New Party", Account: "Cash", Amount: 50},
	}

	tb := report.ComputeTrialBalance(vouchers, ledgers)

	require.Len(t, tb.Rows, 4)
	assert.Equal(t, "Acme Traders", tb.Rows[0].Ledger)
	assert.Equal(t, "Bank", tb.Rows[1].Ledger)
	assert.Equal(t, "New Party", tb.Rows[2].Ledger)
	assert.Equal(t, "Cash", tb.Rows[3].Ledger)
}

func TestComputeTrialBalance_MixedScenarioBalances(t *testing.T) {
	vouchers := []domain.Voucher{
		purchaseVoucher("Acme Traders", false, gst.BuildItem("Cement", 10, 100, 18, false)),
		salesVoucher("Beta Retail", false, gst.BuildItem("Cement", 4, 150, 18, false)),
		{Type: domain.VoucherTypePayment, Party: "Acme Traders", Account: "Bank", Amount: 500},
		{Type: domain.VoucherTypeReceipt, Party: "Beta Retail", Account: "Bank", Amount: 300},
	}

	tb := report.ComputeTrialBalance(vouchers, nil)

	assert.InDelta(t, tb.TotalDebit, tb.TotalCredit, 1e-9)
}
