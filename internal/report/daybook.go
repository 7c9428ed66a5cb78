package report

import (
	"strings"
	"time"

	"lekha/internal/domain"
)

// DayBookFilter narrows the day book. Zero-value fields do not filter.
type DayBookFilter struct {
	Date   *time.Time // exact calendar date
	Month  string     // "2006-01"
	Ledger string     // any ledger the voucher touches, case-insensitive
}

// ComputeDayBook returns the vouchers matching the filter, preserving input
// order.
func ComputeDayBook(vouchers []domain.Voucher, filter DayBookFilter) []domain.Voucher {
	out := make([]domain.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		if filter.Date != nil && !sameDay(v.Date, *filter.Date) {
			continue
		}
		if filter.Month != "" && v.Date.Format("2006-01") != filter.Month {
			continue
		}
		if filter.Ledger != "" && !touchesLedger(v, filter.Ledger) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// touchesLedger reports whether v references name in any of its ledger
// fields, per variant.
func touchesLedger(v domain.Voucher, name string) bool {
	switch v.Type {
	case domain.VoucherTypePurchase, domain.VoucherTypeSales:
		return strings.EqualFold(v.Party, name)
	case domain.VoucherTypePayment, domain.VoucherTypeReceipt:
		return strings.EqualFold(v.Party, name) || strings.EqualFold(v.Account, name)
	case domain.VoucherTypeContra:
		return strings.EqualFold(v.FromAccount, name) || strings.EqualFold(v.ToAccount, name)
	case domain.VoucherTypeJournal:
		for _, e := range v.Entries {
			if strings.EqualFold(e.Ledger, name) {
				return true
			}
		}
		return false
	}
	return false
}
