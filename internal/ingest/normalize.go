// Package ingest turns externally extracted invoice data into purchase
// vouchers and drives the per-file extraction batch.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"lekha/internal/domain"
	"lekha/internal/gst"
)

// dateLayouts are tried in order when parsing an extracted invoice date.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02 Jan 2006",
	"January 2, 2006",
	time.RFC3339,
}

// NormalizeInvoice converts extracted invoice data into a purchase voucher.
// Invoices are assumed incoming, so the result is always a purchase.
//
// Every field of the input may be missing, zero or malformed; each has a
// safe default, so this function never fails (the extraction client may fail
// upstream, but not the normalizer). The extracted subtotal and tax figures
// are advisory only: voucher totals are recomputed from line items. The
// voucher ID is left unset for the storage layer to assign.
func NormalizeInvoice(
	ext domain.ExtractedInvoice,
	ledgers []domain.Ledger,
	items []domain.StockItem,
	company domain.CompanyDetails,
	sourceLabel string,
	now time.Time,
) domain.Voucher {
	party, partyState := resolveParty(ext.SellerName, ledgers)
	interState := gst.IsInterState(partyState, company.State)
	rates := gst.NewRateLookup(items)

	v := domain.Voucher{
		Type:         domain.VoucherTypePurchase,
		Date:         parseInvoiceDate(ext.InvoiceDate, now),
		Party:        party,
		IsInterState: interState,
		InvoiceNo:    ext.InvoiceNumber,
		Narration:    fmt.Sprintf("Imported from %s", sourceLabel),
	}

	for _, line := range ext.LineItems {
		rate := rates.Rate(line.ItemDescription)
		v.Items = append(v.Items, gst.BuildItem(
			line.ItemDescription, line.Quantity, line.Rate, rate, interState,
		))
	}
	gst.SumItems(&v)
	return v
}

// resolveParty matches sellerName against ledger master data
// case-insensitively. An unknown seller keeps its extracted name with no
// state, which makes the transaction intra-state by default.
func resolveParty(sellerName string, ledgers []domain.Ledger) (name, state string) {
	trimmed := strings.TrimSpace(sellerName)
	for _, l := range ledgers {
		if strings.EqualFold(l.Name, trimmed) {
			return l.Name, l.State
		}
	}
	return trimmed, ""
}

// parseInvoiceDate tries the known layouts and falls back to now on failure.
// The result is truncated to a calendar date.
func parseInvoiceDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return truncateToDay(t)
		}
	}
	return truncateToDay(now)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
