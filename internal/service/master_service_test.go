package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/service"
	"lekha/mocks"
)

type masterFixture struct {
	ledgers *mocks.MockLedgerRepo
	stock   *mocks.MockStockItemRepo
	company *mocks.MockCompanyRepo
	svc     service.MasterService
}

func newMasterFixture() *masterFixture {
	f := &masterFixture{
		ledgers: new(mocks.MockLedgerRepo),
		stock:   new(mocks.MockStockItemRepo),
		company: new(mocks.MockCompanyRepo),
	}
	f.svc = service.NewMasterService(f.ledgers, f.stock, f.company)
	return f
}

func TestMasterService_CreateLedger(t *testing.T) {
	f := newMasterFixture()
	f.ledgers.On("Create", mock.Anything, mock.Anything).Return(nil)

	l, err := f.svc.CreateLedger(context.Background(), service.LedgerInput{
		Name:             "  Acme Traders  ",
		State:            "Maharashtra",
		RegistrationType: domain.RegistrationRegistered,
		GSTIN:            "27AABCU9603R1ZM",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", l.Name)
	assert.Equal(t, domain.RegistrationRegistered, l.RegistrationType)
	assert.NotEqual(t, uuid.Nil, l.ID)
}

func TestMasterService_CreateLedgerDefaultsUnregistered(t *testing.T) {
	f := newMasterFixture()
	f.ledgers.On("Create", mock.Anything, mock.Anything).Return(nil)

	l, err := f.svc.CreateLedger(context.Background(), service.LedgerInput{Name: "Walk-in"})

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationUnregistered, l.RegistrationType)
}

func TestMasterService_CreateLedgerEmptyName(t *testing.T) {
	f := newMasterFixture()

	_, err := f.svc.CreateLedger(context.Background(), service.LedgerInput{Name: "   "})

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.ledgers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMasterService_CreateLedgerDuplicateName(t *testing.T) {
	f := newMasterFixture()
	f.ledgers.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateName)

	_, err := f.svc.CreateLedger(context.Background(), service.LedgerInput{Name: "Acme Traders"})

	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestMasterService_UpdateLedgerKeepsRegistrationWhenOmitted(t *testing.T) {
	f := newMasterFixture()
	id := uuid.New()
	f.ledgers.On("GetByID", mock.Anything, id).Return(&domain.Ledger{
		ID:               id,
		Name:             "Acme Traders",
		RegistrationType: domain.RegistrationRegistered,
	}, nil)
	f.ledgers.On("Update", mock.Anything, mock.Anything).Return(nil)

	l, err := f.svc.UpdateLedger(context.Background(), id, service.LedgerInput{
		Name:  "Acme Traders Pvt Ltd",
		State: "Karnataka",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Traders Pvt Ltd", l.Name)
	assert.Equal(t, domain.RegistrationRegistered, l.RegistrationType)
}

func TestMasterService_CreateStockItem(t *testing.T) {
	f := newMasterFixture()
	f.stock.On("Create", mock.Anything, mock.Anything).Return(nil)

	it, err := f.svc.CreateStockItem(context.Background(), service.StockItemInput{
		Name:    "Cement",
		GSTRate: 28,
	})

	require.NoError(t, err)
	assert.Equal(t, 28.0, it.GSTRate)
}

func TestMasterService_CreateStockItemRateOutOfRange(t *testing.T) {
	f := newMasterFixture()

	_, err := f.svc.CreateStockItem(context.Background(), service.StockItemInput{
		Name:    "Cement",
		GSTRate: 120,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.stock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMasterService_UpdateCompany(t *testing.T) {
	f := newMasterFixture()
	f.company.On("Get", mock.Anything).Return(&domain.CompanyDetails{
		Name:  "My Company",
		State: "Maharashtra",
	}, nil)
	f.company.On("Update", mock.Anything, mock.Anything).Return(nil)

	c, err := f.svc.UpdateCompany(context.Background(), service.CompanyInput{
		Name:  "Lekha Enterprises",
		State: "Gujarat",
		GSTIN: "24AABCU9603R1ZM",
	})

	require.NoError(t, err)
	assert.Equal(t, "Lekha Enterprises", c.Name)
	assert.Equal(t, "Gujarat", c.State)
}

func TestMasterService_GetLedgerNotFound(t *testing.T) {
	f := newMasterFixture()
	id := uuid.New()
	f.ledgers.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.svc.GetLedger(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
