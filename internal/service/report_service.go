package service

import (
	"context"
	"fmt"

	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/report"
)

// Snapshot is the immutable input to every report computation: the full
// voucher list plus master data, loaded once per request.
type Snapshot struct {
	Vouchers   []domain.Voucher
	Ledgers    []domain.Ledger
	StockItems []domain.StockItem
	Company    domain.CompanyDetails
}

// ReportService derives accounting reports from the current voucher and
// master-data snapshot.
type ReportService interface {
	TrialBalance(ctx context.Context) (report.TrialBalance, error)
	StockSummary(ctx context.Context) ([]report.StockSummaryRow, error)
	StockValuation(ctx context.Context) ([]report.StockValuationRow, error)
	GSTFilings(ctx context.Context) (report.Filings, error)
	SalesTaxSummary(ctx context.Context) (report.SalesTaxSummary, error)
	DayBook(ctx context.Context, filter report.DayBookFilter) ([]domain.Voucher, error)
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

type reportService struct {
	voucherRepo port.VoucherRepository
	ledgerRepo  port.LedgerRepository
	stockRepo   port.StockItemRepository
	companyRepo port.CompanyRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	voucherRepo port.VoucherRepository,
	ledgerRepo port.LedgerRepository,
	stockRepo port.StockItemRepository,
	companyRepo port.CompanyRepository,
) ReportService {
	return &reportService{
		voucherRepo: voucherRepo,
		ledgerRepo:  ledgerRepo,
		stockRepo:   stockRepo,
		companyRepo: companyRepo,
	}
}

// LoadSnapshot reads the full voucher list and master data. Reports computed
// from one snapshot never observe writes made after it was loaded.
func (s *reportService) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	vouchers, err := s.voucherRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportService.LoadSnapshot vouchers: %w", err)
	}
	ledgers, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportService.LoadSnapshot ledgers: %w", err)
	}
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportService.LoadSnapshot stock items: %w", err)
	}
	snap := &Snapshot{Vouchers: vouchers, Ledgers: ledgers, StockItems: items}
	if company, err := s.companyRepo.Get(ctx); err == nil {
		snap.Company = *company
	}
	return snap, nil
}

func (s *reportService) TrialBalance(ctx context.Context) (report.TrialBalance, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return report.TrialBalance{}, err
	}
	return report.ComputeTrialBalance(snap.Vouchers, snap.Ledgers), nil
}

func (s *reportService) StockSummary(ctx context.Context) ([]report.StockSummaryRow, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.ComputeStockSummary(snap.Vouchers, snap.StockItems), nil
}

func (s *reportService) StockValuation(ctx context.Context) ([]report.StockValuationRow, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.ComputeStockValuation(snap.Vouchers, snap.StockItems), nil
}

func (s *reportService) GSTFilings(ctx context.Context) (report.Filings, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return report.Filings{}, err
	}
	return report.ClassifyGSTFilings(snap.Vouchers, snap.Ledgers), nil
}

func (s *reportService) SalesTaxSummary(ctx context.Context) (report.SalesTaxSummary, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return report.SalesTaxSummary{}, err
	}
	return report.ComputeSalesTaxSummary(snap.Vouchers), nil
}

func (s *reportService) DayBook(ctx context.Context, filter report.DayBookFilter) ([]domain.Voucher, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.ComputeDayBook(snap.Vouchers, filter), nil
}
