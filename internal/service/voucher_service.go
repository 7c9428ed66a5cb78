package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/gst"
	"lekha/internal/port"
)

// ItemInput is one line of a trade voucher as entered by the user.
type ItemInput struct {
	Name string  `json:"name" binding:"required"`
	Qty  float64 `json:"qty" binding:"required,gt=0"`
	Rate float64 `json:"rate" binding:"gte=0"`
}

// CreateVoucherInput is the DTO for voucher creation. Fields are validated
// per voucher type in Create.
type CreateVoucherInput struct {
	Type      domain.VoucherType   `json:"type" binding:"required"`
	Date      time.Time            `json:"date" binding:"required"`
	Party     string               `json:"party"`
	Items     []ItemInput          `json:"items"`
	InvoiceNo string               `json:"invoice_no"`
	Narration string               `json:"narration"`
	Account   string               `json:"account"`
	Amount    float64              `json:"amount"`
	From      string               `json:"from_account"`
	To        string               `json:"to_account"`
	Entries   []domain.JournalEntry `json:"entries"`
}

// VoucherService creates, lists and derives vouchers.
type VoucherService interface {
	Create(ctx context.Context, input CreateVoucherInput) (*domain.Voucher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error)
	List(ctx context.Context) ([]domain.Voucher, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Recalculate(ctx context.Context, base domain.Voucher, items []ItemInput) (domain.Voucher, error)
}

type voucherService struct {
	voucherRepo  port.VoucherRepository
	ledgerRepo   port.LedgerRepository
	stockRepo    port.StockItemRepository
	companyRepo  port.CompanyRepository
	fallbackRate float64
}

// NewVoucherService creates a new VoucherService implementation.
// fallbackRate is the GST rate applied to items missing from master data.
func NewVoucherService(
	voucherRepo port.VoucherRepository,
	ledgerRepo port.LedgerRepository,
	stockRepo port.StockItemRepository,
	companyRepo port.CompanyRepository,
	fallbackRate float64,
) VoucherService {
	if fallbackRate <= 0 {
		fallbackRate = gst.DefaultRatePercent
	}
	return &voucherService{
		voucherRepo:  voucherRepo,
		ledgerRepo:   ledgerRepo,
		stockRepo:    stockRepo,
		companyRepo:  companyRepo,
		fallbackRate: fallbackRate,
	}
}

func (s *voucherService) Create(ctx context.Context, input CreateVoucherInput) (*domain.Voucher, error) {
	v := domain.Voucher{
		ID:   uuid.New(),
		Type: input.Type,
		Date: input.Date,
	}

	switch input.Type {
	case domain.VoucherTypePurchase, domain.VoucherTypeSales:
		built, err := s.buildTradeVoucher(ctx, v, input)
		if err != nil {
			return nil, err
		}
		v = built
	case domain.VoucherTypePayment, domain.VoucherTypeReceipt:
		v.Party = input.Party
		v.Account = input.Account
		v.Amount = input.Amount
	case domain.VoucherTypeContra:
		v.FromAccount = input.From
		v.ToAccount = input.To
		v.Amount = input.Amount
	case domain.VoucherTypeJournal:
		v.Entries = input.Entries
	default:
		return nil, domain.ErrInvalidVoucherType
	}

	if err := s.voucherRepo.Create(ctx, &v); err != nil {
		return nil, fmt.Errorf("voucherService.Create: %w", err)
	}
	return &v, nil
}

// buildTradeVoucher fills the purchase/sales fields: inter-state flag from
// the party ledger vs company state, then line items and totals via the tax
// split rules.
func (s *voucherService) buildTradeVoucher(ctx context.Context, v domain.Voucher, input CreateVoucherInput) (domain.Voucher, error) {
	v.Party = input.Party
	v.InvoiceNo = input.InvoiceNo
	v.Narration = input.Narration

	ledgers, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return v, fmt.Errorf("voucherService.buildTradeVoucher ledgers: %w", err)
	}
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return v, fmt.Errorf("voucherService.buildTradeVoucher stock items: %w", err)
	}

	companyState := ""
	if company, err := s.companyRepo.Get(ctx); err == nil {
		companyState = company.State
	}
	partyState := ""
	for _, l := range ledgers {
		if strings.EqualFold(l.Name, input.Party) {
			partyState = l.State
			break
		}
	}
	v.IsInterState = gst.IsInterState(partyState, companyState)

	rates := gst.NewRateLookup(items).WithFallback(s.fallbackRate)
	v.Items = make([]domain.VoucherItem, 0, len(input.Items))
	for _, in := range input.Items {
		v.Items = append(v.Items, gst.BuildItem(in.Name, in.Qty, in.Rate, rates.Rate(in.Name), v.IsInterState))
	}
	gst.SumItems(&v)
	return v, nil
}

func (s *voucherService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	return s.voucherRepo.GetByID(ctx, id)
}

func (s *voucherService) List(ctx context.Context) ([]domain.Voucher, error) {
	return s.voucherRepo.List(ctx)
}

func (s *voucherService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.voucherRepo.Delete(ctx, id)
}

// Recalculate derives a new voucher from base with its line items replaced
// and totals recomputed. The base voucher is not mutated; editing is always
// derive-from-patch over an immutable record.
func (s *voucherService) Recalculate(ctx context.Context, base domain.Voucher, items []ItemInput) (domain.Voucher, error) {
	if base.Type != domain.VoucherTypePurchase && base.Type != domain.VoucherTypeSales {
		return base, domain.ErrInvalidVoucherType
	}
	stockItems, err := s.stockRepo.List(ctx)
	if err != nil {
		return base, fmt.Errorf("voucherService.Recalculate stock items: %w", err)
	}

	rates := gst.NewRateLookup(stockItems).WithFallback(s.fallbackRate)
	next := base
	next.Items = make([]domain.VoucherItem, 0, len(items))
	for _, in := range items {
		next.Items = append(next.Items, gst.BuildItem(in.Name, in.Qty, in.Rate, rates.Rate(in.Name), next.IsInterState))
	}
	gst.SumItems(&next)
	return next, nil
}
