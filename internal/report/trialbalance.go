// Package report holds the pure report computations. Every function takes an
// immutable snapshot of vouchers and master data and returns a derived view;
// none of them mutates its input or returns an error. Reports always render
// best-effort, even over partially inconsistent data.
package report

import (
	"strings"

	"lekha/internal/domain"
)

// Ledger names used by purchase and sales postings.
const (
	LedgerPurchases = "Purchases"
	LedgerSales     = "Sales"
	LedgerCGST      = "CGST"
	LedgerSGST      = "SGST"
	LedgerIGST      = "IGST"
)

// TrialBalanceRow is the net position of one ledger. Exactly one of Debit or
// Credit is non-zero.
type TrialBalanceRow struct {
	Ledger string  `json:"ledger"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
}

// TrialBalance is the per-ledger net debit/credit summary. Under correct
// double-entry postings TotalDebit equals TotalCredit.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  float64           `json:"total_debit"`
	TotalCredit float64           `json:"total_credit"`
}

// balanceBook accumulates gross debit/credit per ledger, preserving
// first-seen order so row output is reproducible. Names join
// case-insensitively; rows carry the first-seen spelling, so a master
// ledger's spelling wins over voucher variants.
type balanceBook struct {
	balances map[string]*drCr
	order    []string
}

type drCr struct {
	debit  float64
	credit float64
}

func newBalanceBook(ledgers []domain.Ledger) *balanceBook {
	b := &balanceBook{balances: make(map[string]*drCr, len(ledgers))}
	for _, l := range ledgers {
		b.ensure(l.Name)
	}
	return b
}

// ensure lazily creates an entry for name. A voucher referencing a ledger
// missing from master data is still tracked rather than dropped.
func (b *balanceBook) ensure(name string) *drCr {
	if name == "" {
		return &drCr{}
	}
	key := strings.ToLower(name)
	if e, ok := b.balances[key]; ok {
		return e
	}
	e := &drCr{}
	b.balances[key] = e
	b.order = append(b.order, name)
	return e
}

func (b *balanceBook) debit(name string, amount float64) {
	b.ensure(name).debit += amount
}

func (b *balanceBook) credit(name string, amount float64) {
	b.ensure(name).credit += amount
}

// ComputeTrialBalance walks all vouchers, applies per-type debit/credit
// postings and nets each ledger. Zero-balance ledgers are omitted. Row order
// is first-seen order: master ledgers first, then ledgers discovered on
// vouchers.
func ComputeTrialBalance(vouchers []domain.Voucher, ledgers []domain.Ledger) TrialBalance {
	book := newBalanceBook(ledgers)

	for _, v := range vouchers {
		switch v.Type {
		case domain.VoucherTypePurchase:
			book.credit(v.Party, v.Total)
			book.debit(LedgerPurchases, v.TotalTaxableAmount)
			if v.IsInterState {
				book.debit(LedgerIGST, v.TotalIGST)
			} else {
				book.debit(LedgerCGST, v.TotalCGST)
				book.debit(LedgerSGST, v.TotalSGST)
			}
		case domain.VoucherTypeSales:
			book.debit(v.Party, v.Total)
			book.credit(LedgerSales, v.TotalTaxableAmount)
			if v.IsInterState {
				book.credit(LedgerIGST, v.TotalIGST)
			} else {
				book.credit(LedgerCGST, v.TotalCGST)
				book.credit(LedgerSGST, v.TotalSGST)
			}
		case domain.VoucherTypePayment:
			book.debit(v.Party, v.Amount)
			book.credit(v.Account, v.Amount)
		case domain.VoucherTypeReceipt:
			book.credit(v.Party, v.Amount)
			book.debit(v.Account, v.Amount)
		case domain.VoucherTypeContra:
			book.credit(v.FromAccount, v.Amount)
			book.debit(v.ToAccount, v.Amount)
		case domain.VoucherTypeJournal:
			for _, e := range v.Entries {
				if e.Ledger == "" {
					continue
				}
				book.debit(e.Ledger, e.Debit)
				book.credit(e.Ledger, e.Credit)
			}
		}
	}

	tb := TrialBalance{Rows: make([]TrialBalanceRow, 0, len(book.order))}
	for _, name := range book.order {
		e := book.balances[strings.ToLower(name)]
		switch {
		case e.debit > e.credit:
			net := e.debit - e.credit
			tb.Rows = append(tb.Rows, TrialBalanceRow{Ledger: name, Debit: net})
			tb.TotalDebit += net
		case e.credit > e.debit:
			net := e.credit - e.debit
			tb.Rows = append(tb.Rows, TrialBalanceRow{Ledger: name, Credit: net})
			tb.TotalCredit += net
		}
	}
	return tb
}
