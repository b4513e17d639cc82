package partner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type creditFixture struct {
	customers *MockCustomerRepository
	groups    *MockCustomerGroupRepository
	companies *MockCompanyRepository
	gl        *MockGLEntryRepository
	orders    *MockSalesOrderRepository
	notes     *MockDeliveryNoteRepository
	invoices  *MockSalesInvoiceRepository
	service   *CreditService
}

func newCreditFixture() *creditFixture {
	f := &creditFixture{
		customers: new(MockCustomerRepository),
		groups:    new(MockCustomerGroupRepository),
		companies: new(MockCompanyRepository),
		gl:        new(MockGLEntryRepository),
		orders:    new(MockSalesOrderRepository),
		notes:     new(MockDeliveryNoteRepository),
		invoices:  new(MockSalesInvoiceRepository),
	}
	f.service = NewCreditService(f.customers, f.groups, f.companies, f.gl, f.orders, f.notes, f.invoices,
		AccountsSettings{FrozenAccountsModifier: "Accounts Manager", CreditController: "Credit Controller"}, nil)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCompany(t *testing.T, tenantID uuid.UUID, name string, limit decimal.Decimal) *finance.Company {
	t.Helper()
	company, err := finance.NewCompany(tenantID, name, "_TC", "INR")
	require.NoError(t, err)
	require.NoError(t, company.SetCreditLimit(limit))
	return company
}

func TestCreditService_GetCreditLimit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("customer limit wins", func(t *testing.T) {
		f := newCreditFixture()
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		require.NoError(t, customer.SetCreditLimit(dec("100")))
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)

		limit, err := f.service.GetCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company")

		require.NoError(t, err)
		assert.Equal(t, "100", limit.String())
		f.groups.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to group then company", func(t *testing.T) {
		f := newCreditFixture()
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		group, err := partner.NewCustomerGroup(tenantID, "_Test Customer Group", "")
		require.NoError(t, err)
		require.NoError(t, group.SetCreditLimit(dec("250")))
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
		f.groups.On("FindByName", ctx, tenantID, "_Test Customer Group").Return(group, nil)
		f.companies.On("FindByName", ctx, tenantID, "_Test Company").Return(newTestCompany(t, tenantID, "_Test Company", dec("900")), nil)

		limit, err := f.service.GetCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company")
		require.NoError(t, err)
		assert.Equal(t, "250", limit.String())

		require.NoError(t, group.SetCreditLimit(decimal.Zero))
		limit, err = f.service.GetCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company")
		require.NoError(t, err)
		assert.Equal(t, "900", limit.String())
	})

	t.Run("no limit anywhere", func(t *testing.T) {
		f := newCreditFixture()
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.groups.On("FindByName", ctx, tenantID, "_Test Customer Group").Return(nil, shared.ErrNotFound)
		f.companies.On("FindByName", ctx, tenantID, "_Test Company").Return(nil, shared.ErrNotFound)

		limit, err := f.service.GetCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company")

		require.NoError(t, err)
		assert.True(t, limit.IsZero())
	})
}

// expectOutstanding wires 300 of ledger balance, a submitted order of 200 and a
// delivery note whose free row of 100 is invoiced for 40
func expectOutstanding(t *testing.T, f *creditFixture, tenantID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	order, err := trade.NewSalesOrder(tenantID, "SO-00001", "_Test Customer", "_Test Company", time.Now(), time.Time{})
	require.NoError(t, err)
	_, err = order.AddItem("_Test Item", "", dec("10"), dec("20"))
	require.NoError(t, err)
	require.NoError(t, order.Submit())

	note, err := trade.NewDeliveryNote(tenantID, "DN-00001", "_Test Customer", "_Test Company", time.Now())
	require.NoError(t, err)
	free, err := note.AddItem("_Test Item", "", dec("2"), dec("50"))
	require.NoError(t, err)
	freeID := free.ID
	soRow := order.Items[0].ID
	_, err = note.AddLine(trade.LineItem{ItemCode: "_Test Item", Qty: dec("1"), Rate: dec("20"), SalesOrder: "SO-00001", SODetail: &soRow})
	require.NoError(t, err)
	require.NoError(t, note.Submit())

	f.gl.On("PartyBalance", ctx, tenantID, "_Test Customer", "_Test Company").Return(dec("300"), nil)
	f.orders.On("FindUnbilled", ctx, tenantID, "_Test Customer", "_Test Company").Return([]trade.SalesOrder{*order}, nil)
	f.notes.On("FindOpen", ctx, tenantID, "_Test Customer", "_Test Company").Return([]trade.DeliveryNote{*note}, nil)
	f.invoices.On("BilledByDeliveryNoteRows", ctx, tenantID, []uuid.UUID{freeID}).
		Return(map[uuid.UUID]decimal.Decimal{freeID: dec("40")}, nil)
}

func TestCreditService_GetCustomerOutstanding(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newCreditFixture()
	expectOutstanding(t, f, tenantID)

	outstanding, err := f.service.GetCustomerOutstanding(ctx, tenantID, "_Test Customer", "_Test Company")

	require.NoError(t, err)
	assert.Equal(t, "560.00", outstanding.StringFixed(2))
}

func TestCreditService_GetCustomerOutstanding_NoOpenNotes(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newCreditFixture()
	f.gl.On("PartyBalance", ctx, tenantID, "C", "Co").Return(dec("-50"), nil)
	f.orders.On("FindUnbilled", ctx, tenantID, "C", "Co").Return([]trade.SalesOrder{}, nil)
	f.notes.On("FindOpen", ctx, tenantID, "C", "Co").Return([]trade.DeliveryNote{}, nil)

	outstanding, err := f.service.GetCustomerOutstanding(ctx, tenantID, "C", "Co")

	require.NoError(t, err)
	assert.Equal(t, "-50", outstanding.String())
	f.invoices.AssertNotCalled(t, "BilledByDeliveryNoteRows", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreditService_CheckCreditLimit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	setup := func(t *testing.T) *creditFixture {
		f := newCreditFixture()
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		require.NoError(t, customer.SetCreditLimit(dec("1000")))
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
		expectOutstanding(t, f, tenantID)
		return f
	}

	t.Run("within limit", func(t *testing.T) {
		f := setup(t)
		err := f.service.CheckCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company", dec("440"), shared.Actor{})
		assert.NoError(t, err)
	})

	t.Run("crossed", func(t *testing.T) {
		f := setup(t)
		err := f.service.CheckCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company", dec("500"), shared.Actor{Username: "sales"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrCreditLimitExceeded))
		assert.True(t, shared.IsValidationFailure(err))
		assert.Equal(t, "Credit limit has been crossed for customer _Test Customer (1060.00/1000.00)", err.Error())
	})

	t.Run("credit controller bypasses", func(t *testing.T) {
		f := setup(t)
		actor := shared.Actor{Username: "boss", Roles: []string{"Credit Controller"}}
		err := f.service.CheckCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company", dec("500"), actor)
		assert.NoError(t, err)
	})

	t.Run("no limit skips outstanding", func(t *testing.T) {
		f := newCreditFixture()
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
		f.groups.On("FindByName", ctx, tenantID, "_Test Customer Group").Return(nil, shared.ErrNotFound)
		f.companies.On("FindByName", ctx, tenantID, "_Test Company").Return(newTestCompany(t, tenantID, "_Test Company", decimal.Zero), nil)

		err := f.service.CheckCreditLimit(ctx, tenantID, "_Test Customer", "_Test Company", dec("1000000"), shared.Actor{})

		assert.NoError(t, err)
		f.gl.AssertNotCalled(t, "PartyBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreditService_ValidateCreditLimitOnChange(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	customer := newTestCustomer(t, tenantID, "_Test Customer")

	f := newCreditFixture()
	f.companies.On("FindAllForTenant", ctx, tenantID).Return([]finance.Company{
		*newTestCompany(t, tenantID, "_Test Company", decimal.Zero),
		*newTestCompany(t, tenantID, "_Test Company 1", decimal.Zero),
	}, nil)
	for company, balance := range map[string]string{"_Test Company": "100", "_Test Company 1": "800"} {
		f.gl.On("PartyBalance", ctx, tenantID, "_Test Customer", company).Return(dec(balance), nil)
		f.orders.On("FindUnbilled", ctx, tenantID, "_Test Customer", company).Return([]trade.SalesOrder{}, nil)
		f.notes.On("FindOpen", ctx, tenantID, "_Test Customer", company).Return([]trade.DeliveryNote{}, nil)
	}

	err := f.service.ValidateCreditLimitOnChange(ctx, customer, dec("500"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
	assert.Equal(t, "New credit limit is less than current outstanding amount for the customer. Credit limit has to be atleast 800.00", err.Error())

	assert.NoError(t, f.service.ValidateCreditLimitOnChange(ctx, customer, dec("800")))
	assert.NoError(t, f.service.ValidateCreditLimitOnChange(ctx, customer, decimal.Zero))
}

func TestCreditService_GetCreditSummary(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newCreditFixture()
	customer := newTestCustomer(t, tenantID, "_Test Customer")
	require.NoError(t, customer.SetCreditLimit(dec("1000")))
	f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
	expectOutstanding(t, f, tenantID)

	summary, err := f.service.GetCreditSummary(ctx, tenantID, "_Test Customer", "_Test Company")

	require.NoError(t, err)
	assert.Equal(t, "560.00", summary.Outstanding.StringFixed(2))
	require.NotNil(t, summary.Available)
	assert.Equal(t, "440.00", summary.Available.StringFixed(2))
}
