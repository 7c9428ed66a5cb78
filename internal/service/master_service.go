package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// LedgerInput carries the editable fields of a ledger account.
type LedgerInput struct {
	Name             string                  `json:"name" binding:"required"`
	State            string                  `json:"state"`
	RegistrationType domain.RegistrationType `json:"registration_type"`
	GSTIN            string                  `json:"gstin"`
}

// StockItemInput carries the editable fields of a stock item.
type StockItemInput struct {
	Name    string  `json:"name" binding:"required"`
	GSTRate float64 `json:"gst_rate"`
}

// CompanyInput carries the editable fields of the company profile.
type CompanyInput struct {
	Name    string `json:"name" binding:"required"`
	State   string `json:"state"`
	GSTIN   string `json:"gstin"`
	Address string `json:"address"`
}

// MasterService manages ledger, stock item and company master data.
type MasterService interface {
	CreateLedger(ctx context.Context, input LedgerInput) (*domain.Ledger, error)
	GetLedger(ctx context.Context, id uuid.UUID) (*domain.Ledger, error)
	ListLedgers(ctx context.Context) ([]domain.Ledger, error)
	UpdateLedger(ctx context.Context, id uuid.UUID, input LedgerInput) (*domain.Ledger, error)
	DeleteLedger(ctx context.Context, id uuid.UUID) error

	CreateStockItem(ctx context.Context, input StockItemInput) (*domain.StockItem, error)
	GetStockItem(ctx context.Context, id uuid.UUID) (*domain.StockItem, error)
	ListStockItems(ctx context.Context) ([]domain.StockItem, error)
	UpdateStockItem(ctx context.Context, id uuid.UUID, input StockItemInput) (*domain.StockItem, error)
	DeleteStockItem(ctx context.Context, id uuid.UUID) error

	GetCompany(ctx context.Context) (*domain.CompanyDetails, error)
	UpdateCompany(ctx context.Context, input CompanyInput) (*domain.CompanyDetails, error)
}

type masterService struct {
	ledgers   port.LedgerRepository
	stock     port.StockItemRepository
	companies port.CompanyRepository
}

// NewMasterService creates a MasterService backed by the given repositories.
func NewMasterService(ledgers port.LedgerRepository, stock port.StockItemRepository, companies port.CompanyRepository) MasterService {
	return &masterService{ledgers: ledgers, stock: stock, companies: companies}
}

func (s *masterService) CreateLedger(ctx context.Context, input LedgerInput) (*domain.Ledger, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("masterService.CreateLedger: %w: name is required", domain.ErrValidation)
	}
	regType := input.RegistrationType
	if regType == "" {
		regType = domain.RegistrationUnregistered
	}

	now := time.Now().UTC()
	l := &domain.Ledger{
		ID:               uuid.New(),
		Name:             name,
		State:            strings.TrimSpace(input.State),
		RegistrationType: regType,
		GSTIN:            strings.TrimSpace(input.GSTIN),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.ledgers.Create(ctx, l); err != nil {
		log.Printf("masterService.CreateLedger: failed to create ledger %q: %v", name, err)
		return nil, err
	}
	return l, nil
}

func (s *masterService) GetLedger(ctx context.Context, id uuid.UUID) (*domain.Ledger, error) {
	return s.ledgers.GetByID(ctx, id)
}

func (s *masterService) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	return s.ledgers.List(ctx)
}

func (s *masterService) UpdateLedger(ctx context.Context, id uuid.UUID, input LedgerInput) (*domain.Ledger, error) {
	l, err := s.ledgers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("masterService.UpdateLedger: %w: name is required", domain.ErrValidation)
	}
	l.Name = name
	l.State = strings.TrimSpace(input.State)
	if input.RegistrationType != "" {
		l.RegistrationType = input.RegistrationType
	}
	l.GSTIN = strings.TrimSpace(input.GSTIN)
	l.UpdatedAt = time.Now().UTC()

	if err := s.ledgers.Update(ctx, l); err != nil {
		log.Printf("masterService.UpdateLedger: failed to update ledger %s: %v", id, err)
		return nil, err
	}
	return l, nil
}

func (s *masterService) DeleteLedger(ctx context.Context, id uuid.UUID) error {
	return s.ledgers.Delete(ctx, id)
}

func (s *masterService) CreateStockItem(ctx context.Context, input StockItemInput) (*domain.StockItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("masterService.CreateStockItem: %w: name is required", domain.ErrValidation)
	}
	if input.GSTRate < 0 || input.GSTRate > 100 {
		return nil, fmt.Errorf("masterService.CreateStockItem: %w: gst_rate must be between 0 and 100", domain.ErrValidation)
	}

	now := time.Now().UTC()
	it := &domain.StockItem{
		ID:        uuid.New(),
		Name:      name,
		GSTRate:   input.GSTRate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stock.Create(ctx, it); err != nil {
		log.Printf("masterService.CreateStockItem: failed to create item %q: %v", name, err)
		return nil, err
	}
	return it, nil
}

func (s *masterService) GetStockItem(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	return s.stock.GetByID(ctx, id)
}

func (s *masterService) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	return s.stock.List(ctx)
}

func (s *masterService) UpdateStockItem(ctx context.Context, id uuid.UUID, input StockItemInput) (*domain.StockItem, error) {
	it, err := s.stock.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("masterService.UpdateStockItem: %w: name is required", domain.ErrValidation)
	}
	if input.GSTRate < 0 || input.GSTRate > 100 {
		return nil, fmt.Errorf("masterService.UpdateStockItem: %w: gst_rate must be between 0 and 100", domain.ErrValidation)
	}
	it.Name = name
	it.GSTRate = input.GSTRate
	it.UpdatedAt = time.Now().UTC()

	if err := s.stock.Update(ctx, it); err != nil {
		log.Printf("masterService.UpdateStockItem: failed to update item %s: %v", id, err)
		return nil, err
	}
	return it, nil
}

func (s *masterService) DeleteStockItem(ctx context.Context, id uuid.UUID) error {
	return s.stock.Delete(ctx, id)
}

func (s *masterService) GetCompany(ctx context.Context) (*domain.CompanyDetails, error) {
	return s.companies.Get(ctx)
}

func (s *masterService) UpdateCompany(ctx context.Context, input CompanyInput) (*domain.CompanyDetails, error) {
	c, err := s.companies.Get(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("masterService.UpdateCompany: %w: name is required", domain.ErrValidation)
	}
	c.Name = name
	c.State = strings.TrimSpace(input.State)
	c.GSTIN = strings.TrimSpace(input.GSTIN)
	c.Address = strings.TrimSpace(input.Address)
	c.UpdatedAt = time.Now().UTC()

	if err := s.companies.Update(ctx, c); err != nil {
		log.Printf("masterService.UpdateCompany: failed to update company: %v", err)
		return nil, err
	}
	return c, nil
}
