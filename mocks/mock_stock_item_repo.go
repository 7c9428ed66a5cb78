package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockStockItemRepo is a mock implementation of port.StockItemRepository.
type MockStockItemRepo struct {
	mock.Mock
}

func (m *MockStockItemRepo) Create(ctx context.Context, it *domain.StockItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockStockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockItemRepo) List(ctx context.Context) ([]domain.StockItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

func (m *MockStockItemRepo) Update(ctx context.Context, it *domain.StockItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockStockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
