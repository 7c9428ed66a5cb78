package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/csvexport"
	"lekha/internal/report"
)

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteTrialBalance(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	err := w.WriteTrialBalance(report.TrialBalance{
		Rows: []report.TrialBalanceRow{
			{Ledger: "Purchase Account", Debit: 1000},
			{Ledger: "Acme Traders", Credit: 1180},
			{Ledger: "Input CGST", Debit: 90},
			{Ledger: "Input SGST", Debit: 90},
		},
		TotalDebit:  1180,
		TotalCredit: 1180,
	})
	require.NoError(t, err)
	w.Flush()
	require.NoError(t, w.Error())

	records := parseCSV(t, &buf)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"Ledger", "Debit", "Credit"}, records[0])
	assert.Equal(t, []string{"Purchase Account", "1000.00", "0.00"}, records[1])
	assert.Equal(t, []string{"Acme Traders", "0.00", "1180.00"}, records[2])
	assert.Equal(t, []string{"Total", "1180.00", "1180.00"}, records[5])
}

func TestWriteStockSummary(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	err := w.WriteStockSummary([]report.StockSummaryRow{
		{Name: "Cement", Inward: 100, Outward: 40, Closing: 60},
		{Name: "Steel Rods", Inward: 12.5, Outward: 0, Closing: 12.5},
	})
	require.NoError(t, err)
	w.Flush()
	require.NoError(t, w.Error())

	records := parseCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Item", "Inward Qty", "Outward Qty", "Closing Qty"}, records[0])
	assert.Equal(t, []string{"Cement", "100", "40", "60"}, records[1])
	assert.Equal(t, []string{"Steel Rods", "12.5", "0", "12.5"}, records[2])
}

func TestWriteStockValuation(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	err := w.WriteStockValuation([]report.StockValuationRow{
		{Name: "Cement", ClosingQty: 15, AvgCost: 150, Value: 2250},
	})
	require.NoError(t, err)
	w.Flush()
	require.NoError(t, w.Error())

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Cement", "15", "150.00", "2250.00"}, records[1])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"trial balance", "trial_balance"},
		{"stock/summary: FY 24-25", "stock_summary_FY_24-25"},
		{"__already__clean__", "already_clean"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, csvexport.SanitizeFilename(tt.in))
	}
}

func TestBuildFilename(t *testing.T) {
	name := csvexport.BuildFilename("trial balance")
	assert.True(t, strings.HasPrefix(name, "trial_balance_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
