package orders

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/domain/storefront"
)

// ---------------------------------------------------------------------------
// Repository and port mocks shared by the service tests in this package.
// ---------------------------------------------------------------------------

type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByExternalID(ctx context.Context, externalOrderID string) (*document.SalesOrder, error) {
	args := m.Called(ctx, externalOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) ExistsByExternalID(ctx context.Context, externalOrderID string) (bool, error) {
	args := m.Called(ctx, externalOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *document.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockSalesInvoiceRepository struct {
	mock.Mock
}

func (m *MockSalesInvoiceRepository) FindByExternalID(ctx context.Context, externalOrderID string) (*document.SalesInvoice, error) {
	args := m.Called(ctx, externalOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) Save(ctx context.Context, invoice *document.SalesInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

type MockDeliveryNoteRepository struct {
	mock.Mock
}

func (m *MockDeliveryNoteRepository) ListByExternalID(ctx context.Context, externalOrderID string) ([]document.DeliveryNote, error) {
	args := m.Called(ctx, externalOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.DeliveryNote), args.Error(1)
}

func (m *MockDeliveryNoteRepository) Save(ctx context.Context, note *document.DeliveryNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*storefront.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storefront.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *storefront.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockCustomerSync struct {
	mock.Mock
}

func (m *MockCustomerSync) SyncCustomer(ctx context.Context, customer *storefront.Customer, billing, shipping *storefront.Address) error {
	args := m.Called(ctx, customer, billing, shipping)
	return args.Error(0)
}

func (m *MockCustomerSync) CustomerName(ctx context.Context, externalCustomerID int64) (string, error) {
	args := m.Called(ctx, externalCustomerID)
	return args.String(0), args.Error(1)
}

type MockItemCatalog struct {
	mock.Mock
}

func (m *MockItemCatalog) EnsureItems(ctx context.Context, order *storefront.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockItemCatalog) ItemCode(ctx context.Context, item *storefront.LineItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

type MockTaxAccountResolver struct {
	mock.Mock
}

func (m *MockTaxAccountResolver) Resolve(ctx context.Context, taxTitle string) (storefront.TaxAccount, error) {
	args := m.Called(ctx, taxTitle)
	return args.Get(0).(storefront.TaxAccount), args.Error(1)
}

type MockSyncLogger struct {
	mock.Mock
}

func (m *MockSyncLogger) Log(ctx context.Context, entry storefront.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// entries collects every logged entry in call order.
func (m *MockSyncLogger) entries() []storefront.LogEntry {
	var out []storefront.LogEntry
	for _, call := range m.Calls {
		if call.Method == "Log" {
			out = append(out, call.Arguments.Get(1).(storefront.LogEntry))
		}
	}
	return out
}

type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) FetchOrders(ctx context.Context, from, to time.Time) (storefront.OrderPager, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(storefront.OrderPager), args.Error(1)
}

// stubTxManager runs the transactional function on the caller's context.
type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakePager serves pre-built pages in order.
type fakePager struct {
	pages [][]storefront.Order
	next  int
}

func (p *fakePager) NextPage(ctx context.Context) ([]storefront.Order, bool, error) {
	if p.next >= len(p.pages) {
		return nil, false, nil
	}
	page := p.pages[p.next]
	p.next++
	return page, p.next < len(p.pages), nil
}
