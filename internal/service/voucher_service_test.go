package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/service"
	"lekha/mocks"
)

type voucherFixture struct {
	vouchers *mocks.MockVoucherRepo
	ledgers  *mocks.MockLedgerRepo
	stock    *mocks.MockStockItemRepo
	company  *mocks.MockCompanyRepo
	svc      service.VoucherService
}

func newVoucherFixture() *voucherFixture {
	f := &voucherFixture{
		vouchers: new(mocks.MockVoucherRepo),
		ledgers:  new(mocks.MockLedgerRepo),
		stock:    new(mocks.MockStockItemRepo),
		company:  new(mocks.MockCompanyRepo),
	}
	f.svc = service.NewVoucherService(f.vouchers, f.ledgers, f.stock, f.company, 18)
	return f
}

func (f *voucherFixture) withMasters(ledgers []domain.Ledger, items []domain.StockItem, state string) {
	f.ledgers.On("List", mock.Anything).Return(ledgers, nil)
	f.stock.On("List", mock.Anything).Return(items, nil)
	f.company.On("Get", mock.Anything).Return(&domain.CompanyDetails{Name: "My Co", State: state}, nil)
}

func TestVoucherService_CreatePurchaseIntraState(t *testing.T) {
	f := newVoucherFixture()
	f.withMasters(
		[]domain.Ledger{{Name: "Acme Traders", State: "Maharashtra"}},
		[]domain.StockItem{{Name: "Cement", GSTRate: 28}},
		"Maharashtra",
	)
	f.vouchers.On("Create", mock.Anything, mock.Anything).Return(nil)

	v, err := f.svc.Create(context.Background(), service.CreateVoucherInput{
		Type:  domain.VoucherTypePurchase,
		Date:  time.Now(),
		Party: "Acme Traders",
		Items: []service.ItemInput{{Name: "Cement", Qty: 10, Rate: 100}},
	})

	require.NoError(t, err)
	assert.False(t, v.IsInterState)
	assert.Equal(t, 1000.0, v.TotalTaxableAmount)
	assert.Equal(t, 140.0, v.TotalCGST)
	assert.Equal(t, 140.0, v.TotalSGST)
	assert.Equal(t, 0.0, v.TotalIGST)
	assert.Equal(t, 1280.0, v.Total)
	f.vouchers.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVoucherService_CreateSalesInterState(t *testing.T) {
	f := newVoucherFixture()
	f.withMasters(
		[]domain.Ledger{{Name: "Delhi Retail", State: "Delhi"}},
		[]domain.StockItem{{Name: "Cement", GSTRate: 18}},
		"Maharashtra",
	)
	f.vouchers.On("Create", mock.Anything, mock.Anything).Return(nil)

	v, err := f.svc.Create(context.Background(), service.CreateVoucherInput{
		Type:  domain.VoucherTypeSales,
		Date:  time.Now(),
		Party: "delhi retail",
		Items: []service.ItemInput{{Name: "Cement", Qty: 10, Rate: 100}},
	})

	require.NoError(t, err)
	assert.True(t, v.IsInterState)
	assert.Equal(t, 180.0, v.TotalIGST)
	assert.Equal(t, 0.0, v.TotalCGST)
}

func TestVoucherService_CreateUnknownItemUsesFallbackRate(t *testing.T) {
	f := newVoucherFixture()
	f.withMasters(nil, nil, "Maharashtra")
	f.vouchers.On("Create", mock.Anything, mock.Anything).Return(nil)

	v, err := f.svc.Create(context.Background(), service.CreateVoucherInput{
		Type:  domain.VoucherTypePurchase,
		Date:  time.Now(),
		Party: "Anyone",
		Items: []service.ItemInput{{Name: "Mystery", Qty: 10, Rate: 100}},
	})

	require.NoError(t, err)
	assert.Equal(t, 90.0, v.TotalCGST)
	assert.Equal(t, 90.0, v.TotalSGST)
}

func TestVoucherService_CreatePayment(t *testing.T) {
	f := newVoucherFixture()
	f.vouchers.On("Create", mock.Anything, mock.Anything).Return(nil)

	v, err := f.svc.Create(context.Background(), service.CreateVoucherInput{
		Type:    domain.VoucherTypePayment,
		Date:    time.Now(),
		Party:   "Acme Traders",
		Account: "Bank",
		Amount:  500,
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", v.Party)
	assert.Equal(t, "Bank", v.Account)
	assert.Equal(t, 500.0, v.Amount)
	// no master data lookups for settlement vouchers
	f.ledgers.AssertNotCalled(t, "List", mock.Anything)
}

func TestVoucherService_CreateInvalidType(t *testing.T) {
	f := newVoucherFixture()

	_, err := f.svc.Create(context.Background(), service.CreateVoucherInput{
		Type: domain.VoucherType("bogus"),
		Date: time.Now(),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidVoucherType)
	f.vouchers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVoucherService_RecalculateDoesNotMutateBase(t *testing.T) {
	f := newVoucherFixture()
	f.stock.On("List", mock.Anything).Return([]domain.StockItem{{Name: "Cement", GSTRate: 18}}, nil)

	base := domain.Voucher{
		Type:         domain.VoucherTypePurchase,
		Party:        "Acme Traders",
		IsInterState: false,
		Items:        []domain.VoucherItem{{Name: "Cement", Qty: 1, Rate: 100}},
		Total:        118,
	}

	derived, err := f.svc.Recalculate(context.Background(), base, []service.ItemInput{
		{Name: "Cement", Qty: 20, Rate: 100},
	})

	require.NoError(t, err)
	assert.Equal(t, 2000.0, derived.TotalTaxableAmount)
	assert.Equal(t, 2360.0, derived.Total)

	// base untouched
	assert.Equal(t, 118.0, base.Total)
	require.Len(t, base.Items, 1)
	assert.Equal(t, 1.0, base.Items[0].Qty)
}

func TestVoucherService_RecalculateRejectsNonTradeVoucher(t *testing.T) {
	f := newVoucherFixture()

	_, err := f.svc.Recalculate(context.Background(), domain.Voucher{Type: domain.VoucherTypeContra}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidVoucherType)
}
