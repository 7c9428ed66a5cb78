// Package gst implements the GST tax-split rules shared by voucher entry,
// recalculation, and invoice normalization.
package gst

import (
	"strings"

	"lekha/internal/domain"
)

// DefaultRatePercent is the fallback GST rate applied when a stock item is
// unknown or has no rate recorded. All code paths share this one fallback.
const DefaultRatePercent = 18.0

// Split is the CGST/SGST/IGST breakdown of a tax amount.
type Split struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
	IGST float64 `json:"igst"`
}

// SplitTax computes the tax on taxableAmount at ratePercent and routes it:
// inter-state supplies carry the full tax as IGST, intra-state supplies
// split it into equal CGST and SGST halves.
func SplitTax(taxableAmount, ratePercent float64, interState bool) Split {
	tax := taxableAmount * ratePercent / 100
	if interState {
		return Split{IGST: tax}
	}
	return Split{CGST: tax / 2, SGST: tax / 2}
}

// IsInterState reports whether a transaction with a party in partyState is
// inter-state relative to companyState. States compare case-insensitively;
// if either is absent the transaction is treated as intra-state.
func IsInterState(partyState, companyState string) bool {
	p := strings.TrimSpace(partyState)
	c := strings.TrimSpace(companyState)
	if p == "" || c == "" {
		return false
	}
	return !strings.EqualFold(p, c)
}

// RateLookup resolves stock item names to GST rates. Keys are normalized to
// lower case; build one per computation rather than scanning the master list.
type RateLookup struct {
	rates    map[string]float64
	fallback float64
}

// NewRateLookup builds a RateLookup from stock item master data. If two
// items differ only by case the first one wins; master-data entry is
// responsible for preventing that configuration.
func NewRateLookup(items []domain.StockItem) RateLookup {
	rates := make(map[string]float64, len(items))
	for _, it := range items {
		key := strings.ToLower(it.Name)
		if _, ok := rates[key]; !ok {
			rates[key] = it.GSTRate
		}
	}
	return RateLookup{rates: rates, fallback: DefaultRatePercent}
}

// WithFallback returns a copy of the lookup using rate as the fallback for
// unknown items.
func (l RateLookup) WithFallback(rate float64) RateLookup {
	if rate > 0 {
		l.fallback = rate
	}
	return l
}

// Rate returns the GST rate for name, or the fallback rate when the item is
// unknown or has no positive rate recorded.
func (l RateLookup) Rate(name string) float64 {
	rate, ok := l.rates[strings.ToLower(strings.TrimSpace(name))]
	if !ok || rate <= 0 {
		return l.fallback
	}
	return rate
}

// BuildItem derives a complete VoucherItem from quantity, unit rate and GST
// rate: taxable amount, tax split and line total.
func BuildItem(name string, qty, rate, gstRate float64, interState bool) domain.VoucherItem {
	taxable := qty * rate
	split := SplitTax(taxable, gstRate, interState)
	return domain.VoucherItem{
		Name:          name,
		Qty:           qty,
		Rate:          rate,
		TaxableAmount: taxable,
		CGSTAmount:    split.CGST,
		SGSTAmount:    split.SGST,
		IGSTAmount:    split.IGST,
		TotalAmount:   taxable + split.CGST + split.SGST + split.IGST,
	}
}

// SumItems folds item-level amounts into voucher-level totals and writes
// them onto v, returning v for chaining. Total closes over taxable + taxes.
func SumItems(v *domain.Voucher) *domain.Voucher {
	var taxable, cgst, sgst, igst float64
	for _, it := range v.Items {
		taxable += it.TaxableAmount
		cgst += it.CGSTAmount
		sgst += it.SGSTAmount
		igst += it.IGSTAmount
	}
	v.TotalTaxableAmount = taxable
	v.TotalCGST = cgst
	v.TotalSGST = sgst
	v.TotalIGST = igst
	v.Total = taxable + cgst + sgst + igst
	return v
}
