package partner

import (
	"context"

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

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Rename(ctx context.Context, tenantID uuid.UUID, rename partner.RenameCustomer) error {
	args := m.Called(ctx, tenantID, rename)
	return args.Error(0)
}

func (m *MockCustomerRepository) HasTransactions(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) DeleteWithDependents(ctx context.Context, tenantID uuid.UUID, name string) error {
	args := m.Called(ctx, tenantID, name)
	return args.Error(0)
}

// MockCustomerGroupRepository is a mock implementation of CustomerGroupRepository
type MockCustomerGroupRepository struct {
	mock.Mock
}

func (m *MockCustomerGroupRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.CustomerGroup, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.CustomerGroup), args.Error(1)
}

func (m *MockCustomerGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]partner.CustomerGroup, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]partner.CustomerGroup), args.Error(1)
}

func (m *MockCustomerGroupRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerGroupRepository) Save(ctx context.Context, group *partner.CustomerGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Contact, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByLink(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]partner.Contact, error) {
	args := m.Called(ctx, tenantID, doctype, name)
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContactRepository) ClearPrimary(ctx context.Context, tenantID uuid.UUID, doctype, name string) error {
	args := m.Called(ctx, tenantID, doctype, name)
	return args.Error(0)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	args := m.Called(ctx, tenantID, name)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Address, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByLink(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]partner.Address, error) {
	args := m.Called(ctx, tenantID, doctype, name)
	return args.Get(0).([]partner.Address), args.Error(1)
}

func (m *MockAddressRepository) FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAddressRepository) ClearPrimary(ctx context.Context, tenantID uuid.UUID, doctype, name string) error {
	args := m.Called(ctx, tenantID, doctype, name)
	return args.Error(0)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *partner.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	args := m.Called(ctx, tenantID, name)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *partner.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]partner.Comment, error) {
	args := m.Called(ctx, tenantID, doctype, name)
	return args.Get(0).([]partner.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindLatest(ctx context.Context, tenantID uuid.UUID, commentType partner.CommentType, doctype, name string) (*partner.Comment, error) {
	args := m.Called(ctx, tenantID, commentType, doctype, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Comment), args.Error(1)
}

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*finance.Company, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]finance.Company, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]finance.Company), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *finance.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

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

// MockCreditLimitValidator is a mock implementation of CreditLimitValidator
type MockCreditLimitValidator struct {
	mock.Mock
}

func (m *MockCreditLimitValidator) ValidateCreditLimitOnChange(ctx context.Context, customer *partner.Customer, newLimit decimal.Decimal) error {
	args := m.Called(ctx, customer, newLimit)
	return args.Error(0)
}

// MockEventPublisher collects published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
