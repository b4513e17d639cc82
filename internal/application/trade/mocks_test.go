package trade

import (
	"context"
	"time"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockGLEntryRepository is a mock implementation of GLEntryRepository
type MockGLEntryRepository struct {
	mock.Mock
}

func (m *MockGLEntryRepository) Create(ctx context.Context, entries ...*finance.GLEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockGLEntryRepository) FindByVoucher(ctx context.Context, tenantID uuid.UUID, voucherType finance.VoucherType, voucherNo string) ([]finance.GLEntry, error) {
	args := m.Called(ctx, tenantID, voucherType, voucherNo)
	return args.Get(0).([]finance.GLEntry), args.Error(1)
}

func (m *MockGLEntryRepository) FindByParty(ctx context.Context, tenantID uuid.UUID, party, company string) ([]finance.GLEntry, error) {
	args := m.Called(ctx, tenantID, party, company)
	return args.Get(0).([]finance.GLEntry), args.Error(1)
}

func (m *MockGLEntryRepository) PartyBalance(ctx context.Context, tenantID uuid.UUID, party, company string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, party, company)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSalesOrderRepository is a mock implementation of SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*trade.SalesOrder, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) FindUnbilled(ctx context.Context, tenantID uuid.UUID, customer, company string) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, tenantID, customer, company)
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	args := m.Called(ctx, tenantID, name)
	return args.Error(0)
}

// MockDeliveryNoteRepository is a mock implementation of DeliveryNoteRepository
type MockDeliveryNoteRepository struct {
	mock.Mock
}

func (m *MockDeliveryNoteRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*trade.DeliveryNote, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.DeliveryNote), args.Error(1)
}

func (m *MockDeliveryNoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.DeliveryNote, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.DeliveryNote), args.Error(1)
}

func (m *MockDeliveryNoteRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryNoteRepository) FindOpen(ctx context.Context, tenantID uuid.UUID, customer, company string) ([]trade.DeliveryNote, error) {
	args := m.Called(ctx, tenantID, customer, company)
	return args.Get(0).([]trade.DeliveryNote), args.Error(1)
}

func (m *MockDeliveryNoteRepository) Save(ctx context.Context, note *trade.DeliveryNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockDeliveryNoteRepository) SaveWithLock(ctx context.Context, note *trade.DeliveryNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockDeliveryNoteRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	args := m.Called(ctx, tenantID, name)
	return args.Error(0)
}

// MockSalesInvoiceRepository is a mock implementation of SalesInvoiceRepository
type MockSalesInvoiceRepository struct {
	mock.Mock
}

func (m *MockSalesInvoiceRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*trade.SalesInvoice, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SalesInvoice, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesInvoiceRepository) BilledByDeliveryNoteRows(ctx context.Context, tenantID uuid.UUID, dnDetails []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, dnDetails)
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

func (m *MockSalesInvoiceRepository) Save(ctx context.Context, invoice *trade.SalesInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSalesInvoiceRepository) SaveWithLock(ctx context.Context, invoice *trade.SalesInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSalesInvoiceRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	args := m.Called(ctx, tenantID, name)
	return args.Error(0)
}

// MockNamingSeries is a mock implementation of NamingSeries
type MockNamingSeries struct {
	mock.Mock
}

func (m *MockNamingSeries) Next(ctx context.Context, tenantID uuid.UUID, prefix string) (int64, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher collects published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// =============================================================================
// Mock Collaborators
// =============================================================================

// MockPartyValidator is a mock implementation of PartyValidator
type MockPartyValidator struct {
	mock.Mock
}

func (m *MockPartyValidator) ValidateParty(ctx context.Context, tenantID uuid.UUID, customer string, actor shared.Actor) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, customer, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

// MockCreditChecker is a mock implementation of CreditChecker
type MockCreditChecker struct {
	mock.Mock
}

func (m *MockCreditChecker) CheckCreditLimit(ctx context.Context, tenantID uuid.UUID, customer, company string, additional decimal.Decimal, actor shared.Actor) error {
	args := m.Called(ctx, tenantID, customer, company, additional, actor)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// MockDocumentMetrics is a mock implementation of DocumentMetrics
type MockDocumentMetrics struct {
	mock.Mock
}

func (m *MockDocumentMetrics) RecordSubmit(ctx context.Context, docType trade.DocType) {
	m.Called(ctx, docType)
}

func (m *MockDocumentMetrics) RecordCreditBlock(ctx context.Context, docType trade.DocType) {
	m.Called(ctx, docType)
}

var (
	_ trade.SalesOrderRepository   = (*MockSalesOrderRepository)(nil)
	_ trade.DeliveryNoteRepository = (*MockDeliveryNoteRepository)(nil)
	_ trade.SalesInvoiceRepository = (*MockSalesInvoiceRepository)(nil)
	_ finance.GLEntryRepository    = (*MockGLEntryRepository)(nil)
	_ shared.NamingSeries          = (*MockNamingSeries)(nil)
	_ shared.EventPublisher        = (*MockEventPublisher)(nil)
	_ shared.IdempotencyStore      = (*MockIdempotencyStore)(nil)
	_ PartyValidator               = (*MockPartyValidator)(nil)
	_ CreditChecker                = (*MockCreditChecker)(nil)
	_ DocumentMetrics              = (*MockDocumentMetrics)(nil)
)
