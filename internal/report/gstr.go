package report

import (
	"strings"

	"lekha/internal/domain"
)

// Filings partitions sales vouchers for a GSTR-1 style filing. Every sales
// voucher lands in exactly one bucket, with its original data intact;
// aggregation is the consumer's concern.
type Filings struct {
	B2B []domain.Voucher `json:"b2b"`
	B2C []domain.Voucher `json:"b2c"`
}

// ClassifyGSTFilings splits sales vouchers into registered (B2B) and
// unregistered (B2C) buckets. A voucher is B2B iff its party ledger resolves
// case-insensitively, is registered, and carries a non-empty GSTIN; unknown
// parties fall to B2C. Non-sales vouchers are ignored.
func ClassifyGSTFilings(vouchers []domain.Voucher, ledgers []domain.Ledger) Filings {
	byName := make(map[string]domain.Ledger, len(ledgers))
	for _, l := range ledgers {
		key := strings.ToLower(l.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = l
		}
	}

	var f Filings
	for _, v := range vouchers {
		if v.Type != domain.VoucherTypeSales {
			continue
		}
		l, ok := byName[strings.ToLower(v.Party)]
		if ok && l.RegistrationType == domain.RegistrationRegistered && l.GSTIN != "" {
			f.B2B = append(f.B2B, v)
		} else {
			f.B2C = append(f.B2C, v)
		}
	}
	return f
}

// SalesTaxSummary is the fold of tax figures across all sales vouchers.
type SalesTaxSummary struct {
	TaxableAmount float64 `json:"taxable_amount"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	Total         float64 `json:"total"`
}

// ComputeSalesTaxSummary sums taxable amount and collected tax over all
// sales vouchers.
func ComputeSalesTaxSummary(vouchers []domain.Voucher) SalesTaxSummary {
	var s SalesTaxSummary
	for _, v := range vouchers {
		if v.Type != domain.VoucherTypeSales {
			continue
		}
		s.TaxableAmount += v.TotalTaxableAmount
		s.CGST += v.TotalCGST
		s.SGST += v.TotalSGST
		s.IGST += v.TotalIGST
		s.Total += v.Total
	}
	return s
}
