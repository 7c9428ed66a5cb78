package report

import (
	"lekha/internal/domain"
)

// StockSummaryRow reports quantity movement for one stock item.
// Closing may go negative; an oversold item is surfaced as-is rather than
// clamped.
type StockSummaryRow struct {
	Name    string  `json:"name"`
	Inward  float64 `json:"inward"`
	Outward float64 `json:"outward"`
	Closing float64 `json:"closing"`
}

// StockValuationRow reports closing stock value for one item on a
// weighted-average cost basis.
type StockValuationRow struct {
	Name       string  `json:"name"`
	ClosingQty float64 `json:"closing_qty"`
	AvgCost    float64 `json:"avg_cost"`
	Value      float64 `json:"value"`
}

// stockMovement accumulates per-item figures across vouchers.
type stockMovement struct {
	inward        float64
	outward       float64
	purchaseQty   float64
	purchaseValue float64
}

// aggregateMovements scans purchase and sales vouchers and accumulates
// quantities per stock item. Line items match master items by exact name as
// stored; rows exist for every master item even with no movement.
func aggregateMovements(vouchers []domain.Voucher, items []domain.StockItem) (map[string]*stockMovement, []string) {
	movements := make(map[string]*stockMovement, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := movements[it.Name]; ok {
			continue
		}
		movements[it.Name] = &stockMovement{}
		order = append(order, it.Name)
	}

	for _, v := range vouchers {
		switch v.Type {
		case domain.VoucherTypePurchase:
			for _, line := range v.Items {
				m, ok := movements[line.Name]
				if !ok {
					continue
				}
				m.inward += line.Qty
				m.purchaseQty += line.Qty
				m.purchaseValue += line.TaxableAmount
			}
		case domain.VoucherTypeSales:
			for _, line := range v.Items {
				m, ok := movements[line.Name]
				if !ok {
					continue
				}
				m.outward += line.Qty
			}
		case domain.VoucherTypePayment, domain.VoucherTypeReceipt,
			domain.VoucherTypeContra, domain.VoucherTypeJournal:
			// no stock movement
		}
	}
	return movements, order
}

// ComputeStockSummary reports inward/outward/closing quantities per stock
// item. Closing = inward - outward.
func ComputeStockSummary(vouchers []domain.Voucher, items []domain.StockItem) []StockSummaryRow {
	movements, order := aggregateMovements(vouchers, items)
	rows := make([]StockSummaryRow, 0, len(order))
	for _, name := range order {
		m := movements[name]
		rows = append(rows, StockSummaryRow{
			Name:    name,
			Inward:  m.inward,
			Outward: m.outward,
			Closing: m.inward - m.outward,
		})
	}
	return rows
}

// ComputeStockValuation values closing stock on a single running
// weighted-average cost: cumulative purchase value over cumulative purchase
// quantity. That is the costing policy, not FIFO or LIFO. An item never
// purchased values at zero cost.
func ComputeStockValuation(vouchers []domain.Voucher, items []domain.StockItem) []StockValuationRow {
	movements, order := aggregateMovements(vouchers, items)
	rows := make([]StockValuationRow, 0, len(order))
	for _, name := range order {
		m := movements[name]
		closing := m.inward - m.outward
		avgCost := 0.0
		if m.purchaseQty > 0 {
			avgCost = m.purchaseValue / m.purchaseQty
		}
		rows = append(rows, StockValuationRow{
			Name:       name,
			ClosingQty: closing,
			AvgCost:    avgCost,
			Value:      closing * avgCost,
		})
	}
	return rows
}
