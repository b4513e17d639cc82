package finance

import (
	"context"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

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

// MockNamingSeries is a mock implementation of NamingSeries
type MockNamingSeries struct {
	mock.Mock
}

func (m *MockNamingSeries) Next(ctx context.Context, tenantID uuid.UUID, prefix string) (int64, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).(int64), args.Error(1)
}
