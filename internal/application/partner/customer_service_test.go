package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type customerServiceFixture struct {
	customers *MockCustomerRepository
	groups    *MockCustomerGroupRepository
	series    *MockNamingSeries
	credit    *MockCreditLimitValidator
	publisher *MockEventPublisher
	service   *CustomerService
}

func newCustomerServiceFixture(settings SellingSettings) *customerServiceFixture {
	f := &customerServiceFixture{
		customers: new(MockCustomerRepository),
		groups:    new(MockCustomerGroupRepository),
		series:    new(MockNamingSeries),
		credit:    new(MockCreditLimitValidator),
		publisher: new(MockEventPublisher),
	}
	f.service = NewCustomerService(f.customers, f.groups, f.series, f.credit, settings, nil)
	f.service.SetEventPublisher(f.publisher)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func newTestCustomer(t *testing.T, tenantID uuid.UUID, name string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, name, name, partner.CustomerTypeCompany, "_Test Customer Group", "_Test Territory")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("uses the customer name when free", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.groups.On("ExistsByName", ctx, tenantID, "All Customer Groups").Return(true, nil)
		f.customers.On("ExistsByName", ctx, tenantID, "_Test Customer").Return(false, nil)
		f.customers.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreateCustomerRequest{CustomerName: "  _Test Customer "})

		require.NoError(t, err)
		assert.Equal(t, "_Test Customer", resp.Name)
		assert.Equal(t, "_Test Customer", resp.CustomerName)
		assert.Equal(t, "Company", resp.CustomerType)
		assert.Equal(t, "All Territories", resp.Territory)
		f.publisher.AssertCalled(t, "Publish", ctx, mock.Anything)
	})

	t.Run("suffixes a duplicate name", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.groups.On("ExistsByName", ctx, tenantID, "_Test Customer Group").Return(true, nil)
		f.customers.On("ExistsByName", ctx, tenantID, "_Test Customer 1").Return(true, nil)
		f.customers.On("FindNamesWithPrefix", ctx, tenantID, "_Test Customer 1 - ").Return([]string{}, nil)
		f.customers.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreateCustomerRequest{
			CustomerName:  "_Test Customer 1",
			CustomerGroup: "_Test Customer Group",
			Territory:     "_Test Territory",
		})

		require.NoError(t, err)
		assert.Equal(t, "_Test Customer 1 - 1", resp.Name)
		assert.Equal(t, "_Test Customer 1", resp.CustomerName)
	})

	t.Run("takes the next suffix after the highest", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.groups.On("ExistsByName", ctx, tenantID, mock.Anything).Return(true, nil)
		f.customers.On("ExistsByName", ctx, tenantID, "_Test Customer 1").Return(true, nil)
		f.customers.On("FindNamesWithPrefix", ctx, tenantID, "_Test Customer 1 - ").
			Return([]string{"_Test Customer 1 - 1", "_Test Customer 1 - 3x", "_Test Customer 1 - abc"}, nil)
		f.customers.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreateCustomerRequest{CustomerName: "_Test Customer 1"})

		require.NoError(t, err)
		assert.Equal(t, "_Test Customer 1 - 4", resp.Name)
	})

	t.Run("naming series", func(t *testing.T) {
		settings := DefaultSellingSettings()
		settings.CustomerNamingBy = partner.NamingByNamingSeries
		f := newCustomerServiceFixture(settings)
		f.groups.On("ExistsByName", ctx, tenantID, mock.Anything).Return(true, nil)
		f.series.On("Next", ctx, tenantID, "CUST-").Return(int64(7), nil)
		f.customers.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreateCustomerRequest{CustomerName: "Acme"})

		require.NoError(t, err)
		assert.Equal(t, "CUST-00007", resp.Name)
		assert.Equal(t, "Acme", resp.CustomerName)
	})

	t.Run("explicit name already taken", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.groups.On("ExistsByName", ctx, tenantID, mock.Anything).Return(true, nil)
		f.customers.On("ExistsByName", ctx, tenantID, "ACME").Return(true, nil)

		_, err := f.service.Create(ctx, tenantID, CreateCustomerRequest{Name: "ACME", CustomerName: "Acme"})

		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		f.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown group", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.groups.On("ExistsByName", ctx, tenantID, "Nope").Return(false, nil)

		_, err := f.service.Create(ctx, tenantID, CreateCustomerRequest{CustomerName: "Acme", CustomerGroup: "Nope"})

		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("sales team must total 100", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.groups.On("ExistsByName", ctx, tenantID, mock.Anything).Return(true, nil)
		f.customers.On("ExistsByName", ctx, tenantID, "Acme").Return(false, nil)

		_, err := f.service.Create(ctx, tenantID, CreateCustomerRequest{
			CustomerName: "Acme",
			SalesTeam:    []SalesTeamMemberDTO{{SalesPerson: "Alice", AllocatedPercentage: decimal.NewFromInt(60)}},
		})

		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestCustomerService_UpdateCreditLimit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	newLimit := decimal.NewFromInt(500)

	t.Run("rejected below outstanding", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
		f.credit.On("ValidateCreditLimitOnChange", ctx, customer, newLimit).
			Return(shared.NewDomainError(shared.CodeValidation, "New credit limit is less than current outstanding amount for the customer. Credit limit has to be atleast 800.00"))

		_, err := f.service.Update(ctx, tenantID, "_Test Customer", UpdateCustomerRequest{CreditLimit: &newLimit})

		require.Error(t, err)
		assert.True(t, shared.IsValidationFailure(err))
		assert.Contains(t, err.Error(), "atleast 800.00")
		f.customers.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("accepted", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
		f.credit.On("ValidateCreditLimitOnChange", ctx, customer, newLimit).Return(nil)
		f.customers.On("SaveWithLock", ctx, customer).Return(nil)

		resp, err := f.service.Update(ctx, tenantID, "_Test Customer", UpdateCustomerRequest{CreditLimit: &newLimit})

		require.NoError(t, err)
		assert.True(t, resp.CreditLimit.Equal(newLimit))
	})

	t.Run("unchanged limit skips the check", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		zero := decimal.Zero
		notes := "vip"
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
		f.customers.On("SaveWithLock", ctx, customer).Return(nil)

		_, err := f.service.Update(ctx, tenantID, "_Test Customer", UpdateCustomerRequest{CreditLimit: &zero, Notes: &notes})

		require.NoError(t, err)
		f.credit.AssertNotCalled(t, "ValidateCreditLimitOnChange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stale version", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		customer := newTestCustomer(t, tenantID, "_Test Customer")
		stale := customer.Version + 3
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)

		_, err := f.service.Update(ctx, tenantID, "_Test Customer", UpdateCustomerRequest{Version: &stale})

		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	})
}

func TestCustomerService_FreezeAndDisable(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newCustomerServiceFixture(DefaultSellingSettings())
	customer := newTestCustomer(t, tenantID, "_Test Customer")
	f.customers.On("FindByName", ctx, tenantID, "_Test Customer").Return(customer, nil)
	f.customers.On("SaveWithLock", ctx, customer).Return(nil)

	resp, err := f.service.Freeze(ctx, tenantID, "_Test Customer")
	require.NoError(t, err)
	assert.True(t, resp.IsFrozen)

	_, err = f.service.Freeze(ctx, tenantID, "_Test Customer")
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	resp, err = f.service.Disable(ctx, tenantID, "_Test Customer")
	require.NoError(t, err)
	assert.True(t, resp.Disabled)

	resp, err = f.service.Enable(ctx, tenantID, "_Test Customer")
	require.NoError(t, err)
	assert.False(t, resp.Disabled)

	resp, err = f.service.Unfreeze(ctx, tenantID, "_Test Customer")
	require.NoError(t, err)
	assert.False(t, resp.IsFrozen)

	assert.Empty(t, customer.GetDomainEvents(), "events are cleared after publishing")
}

func TestCustomerService_Rename(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("renames and syncs the display name", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		old := newTestCustomer(t, tenantID, "_Test Customer 1")
		renamed := newTestCustomer(t, tenantID, "_Test Customer 1 Renamed")
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer 1").Return(old, nil)
		f.customers.On("ExistsByName", ctx, tenantID, "_Test Customer 1 Renamed").Return(false, nil)
		f.customers.On("Rename", ctx, tenantID, partner.RenameCustomer{
			OldName:          "_Test Customer 1",
			NewName:          "_Test Customer 1 Renamed",
			SyncCustomerName: true,
		}).Return(nil)
		f.customers.On("FindByName", ctx, tenantID, "_Test Customer 1 Renamed").Return(renamed, nil)

		resp, err := f.service.Rename(ctx, tenantID, "_Test Customer 1", RenameCustomerRequest{NewName: "_Test Customer 1 Renamed"})

		require.NoError(t, err)
		assert.Equal(t, "_Test Customer 1 Renamed", resp.Name)
		f.customers.AssertExpectations(t)
		f.publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("naming series keeps the display name", func(t *testing.T) {
		settings := DefaultSellingSettings()
		settings.CustomerNamingBy = partner.NamingByNamingSeries
		f := newCustomerServiceFixture(settings)
		f.customers.On("FindByName", ctx, tenantID, "CUST-00001").Return(newTestCustomer(t, tenantID, "CUST-00001"), nil)
		f.customers.On("ExistsByName", ctx, tenantID, "CUST-00009").Return(false, nil)
		f.customers.On("Rename", ctx, tenantID, partner.RenameCustomer{OldName: "CUST-00001", NewName: "CUST-00009"}).Return(nil)
		f.customers.On("FindByName", ctx, tenantID, "CUST-00009").Return(newTestCustomer(t, tenantID, "CUST-00009"), nil)

		_, err := f.service.Rename(ctx, tenantID, "CUST-00001", RenameCustomerRequest{NewName: "CUST-00009"})

		require.NoError(t, err)
		f.customers.AssertExpectations(t)
	})

	t.Run("merge into existing", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.customers.On("FindByName", ctx, tenantID, "A").Return(newTestCustomer(t, tenantID, "A"), nil)
		f.customers.On("ExistsByName", ctx, tenantID, "B").Return(true, nil)
		f.customers.On("Rename", ctx, tenantID, partner.RenameCustomer{OldName: "A", NewName: "B", Merge: true}).Return(nil)
		f.customers.On("FindByName", ctx, tenantID, "B").Return(newTestCustomer(t, tenantID, "B"), nil)

		resp, err := f.service.Rename(ctx, tenantID, "A", RenameCustomerRequest{NewName: "B", Merge: true})

		require.NoError(t, err)
		assert.Equal(t, "B", resp.Name)
		f.publisher.AssertNumberOfCalls(t, "Publish", 2)
	})

	t.Run("target exists without merge", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.customers.On("FindByName", ctx, tenantID, "A").Return(newTestCustomer(t, tenantID, "A"), nil)
		f.customers.On("ExistsByName", ctx, tenantID, "B").Return(true, nil)

		_, err := f.service.Rename(ctx, tenantID, "A", RenameCustomerRequest{NewName: "B"})

		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		f.customers.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("merge target missing", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.customers.On("FindByName", ctx, tenantID, "A").Return(newTestCustomer(t, tenantID, "A"), nil)
		f.customers.On("ExistsByName", ctx, tenantID, "B").Return(false, nil)

		_, err := f.service.Rename(ctx, tenantID, "A", RenameCustomerRequest{NewName: "B", Merge: true})

		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("same name", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())

		_, err := f.service.Rename(ctx, tenantID, "A", RenameCustomerRequest{NewName: " A "})

		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("blocked by transactions", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.customers.On("FindByName", ctx, tenantID, "A").Return(newTestCustomer(t, tenantID, "A"), nil)
		f.customers.On("HasTransactions", ctx, tenantID, "A").Return(true, nil)

		err := f.service.Delete(ctx, tenantID, "A")

		assert.True(t, errors.Is(err, shared.ErrLinkExists))
		f.customers.AssertNotCalled(t, "DeleteWithDependents", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes with dependents", func(t *testing.T) {
		f := newCustomerServiceFixture(DefaultSellingSettings())
		f.customers.On("FindByName", ctx, tenantID, "A").Return(newTestCustomer(t, tenantID, "A"), nil)
		f.customers.On("HasTransactions", ctx, tenantID, "A").Return(false, nil)
		f.customers.On("DeleteWithDependents", ctx, tenantID, "A").Return(nil)

		require.NoError(t, f.service.Delete(ctx, tenantID, "A"))
		f.publisher.AssertNumberOfCalls(t, "Publish", 1)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newCustomerServiceFixture(DefaultSellingSettings())
	frozen := true

	matchFilter := mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 1 && filter.PageSize == 20 &&
			filter.Filters["is_frozen"] == true &&
			filter.Filters["territory"] == "North" &&
			filter.Search == "acme"
	})
	f.customers.On("FindAllForTenant", ctx, tenantID, matchFilter).
		Return([]partner.Customer{*newTestCustomer(t, tenantID, "Acme")}, nil)
	f.customers.On("CountForTenant", ctx, tenantID, matchFilter).Return(int64(1), nil)

	items, total, err := f.service.List(ctx, tenantID, CustomerListFilter{Search: "acme", Territory: "North", IsFrozen: &frozen})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme", items[0].Name)
}
