package partner

import (
	"errors"
	"testing"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(t *testing.T) *Customer {
	t.Helper()
	customer, err := NewCustomer(uuid.New(), "_Test Customer", "_Test Customer", CustomerTypeIndividual, "_Test Customer Group", "_Test Territory")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates customer successfully", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "_Test Customer 1", "_Test Customer 1", CustomerTypeIndividual, "_Test Customer Group", "_Test Territory")

		require.NoError(t, err)
		assert.Equal(t, "_Test Customer 1", customer.Name)
		assert.Equal(t, "_Test Customer 1", customer.CustomerName)
		assert.Equal(t, CustomerTypeIndividual, customer.CustomerType)
		assert.Equal(t, "_Test Customer Group", customer.CustomerGroup)
		assert.Equal(t, "_Test Territory", customer.Territory)
		assert.Equal(t, tenantID, customer.TenantID)
		assert.True(t, customer.CreditLimit.IsZero())
		assert.False(t, customer.IsFrozen)
		assert.False(t, customer.Disabled)
		assert.Empty(t, customer.SalesTeam)
		require.Len(t, customer.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeCustomerCreated, customer.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty customer name", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "X", "", CustomerTypeCompany, "G", "T")

		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "Customer Name is required")
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "X", "X", CustomerType("Partnership"), "G", "T")

		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("requires group and territory", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "X", "X", CustomerTypeCompany, "", "T")
		assert.Contains(t, err.Error(), "Customer Group")

		_, err = NewCustomer(tenantID, "X", "X", CustomerTypeCompany, "G", "")
		assert.Contains(t, err.Error(), "Territory")
	})
}

func TestCustomer_SetCreditLimit(t *testing.T) {
	customer := newTestCustomer(t)
	version := customer.Version

	t.Run("sets limit and records event", func(t *testing.T) {
		err := customer.SetCreditLimit(decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.True(t, customer.CreditLimit.Equal(decimal.NewFromInt(500)))
		// version is bumped by the repository on save
		assert.Equal(t, version, customer.Version)
		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		changed := events[0].(*CustomerCreditLimitChangedEvent)
		assert.True(t, changed.OldLimit.IsZero())
		assert.True(t, changed.NewLimit.Equal(decimal.NewFromInt(500)))
	})

	t.Run("unchanged limit is a no-op", func(t *testing.T) {
		customer.ClearDomainEvents()
		require.NoError(t, customer.SetCreditLimit(decimal.NewFromInt(500)))
		assert.Empty(t, customer.GetDomainEvents())
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		err := customer.SetCreditLimit(decimal.NewFromInt(-1))
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestCustomer_SetSalesTeam(t *testing.T) {
	customer := newTestCustomer(t)

	t.Run("accepts team allocating 100 percent", func(t *testing.T) {
		err := customer.SetSalesTeam([]SalesTeamMember{
			{SalesPerson: "Alice", AllocatedPercentage: decimal.NewFromInt(60)},
			{SalesPerson: "Bob", AllocatedPercentage: decimal.NewFromInt(40)},
		})

		require.NoError(t, err)
		assert.Len(t, customer.SalesTeam, 2)
	})

	t.Run("rejects partial allocation", func(t *testing.T) {
		err := customer.SetSalesTeam([]SalesTeamMember{
			{SalesPerson: "Alice", AllocatedPercentage: decimal.NewFromInt(60)},
		})

		assert.Contains(t, err.Error(), "equal to 100")
		assert.Len(t, customer.SalesTeam, 2)
	})

	t.Run("rejects duplicate sales person", func(t *testing.T) {
		err := customer.SetSalesTeam([]SalesTeamMember{
			{SalesPerson: "Alice", AllocatedPercentage: decimal.NewFromInt(50)},
			{SalesPerson: "Alice", AllocatedPercentage: decimal.NewFromInt(50)},
		})

		assert.Contains(t, err.Error(), "more than once")
	})

	t.Run("clears team", func(t *testing.T) {
		require.NoError(t, customer.SetSalesTeam(nil))
		assert.Empty(t, customer.SalesTeam)
	})
}

func TestCustomer_FreezeAndDisable(t *testing.T) {
	customer := newTestCustomer(t)

	require.NoError(t, customer.Freeze())
	assert.True(t, customer.IsFrozen)
	assert.Error(t, customer.Freeze())

	require.NoError(t, customer.Disable())
	assert.True(t, customer.Disabled)
	assert.Error(t, customer.Disable())

	require.NoError(t, customer.Unfreeze())
	require.NoError(t, customer.Enable())
	assert.Error(t, customer.Unfreeze())
	assert.Error(t, customer.Enable())

	types := make([]string, 0)
	for _, e := range customer.GetDomainEvents() {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []string{
		EventTypeCustomerFrozen,
		EventTypeCustomerDisabled,
		EventTypeCustomerUnfrozen,
		EventTypeCustomerEnabled,
	}, types)
}

func TestCustomer_ValidateForTransaction(t *testing.T) {
	t.Run("active customer passes", func(t *testing.T) {
		assert.NoError(t, newTestCustomer(t).ValidateForTransaction(false))
	})

	t.Run("frozen customer is blocked", func(t *testing.T) {
		customer := newTestCustomer(t)
		customer.IsFrozen = true

		err := customer.ValidateForTransaction(false)

		assert.True(t, errors.Is(err, shared.ErrPartyFrozen))
		assert.Equal(t, "Customer _Test Customer is frozen", err.Error())
	})

	t.Run("frozen customer passes for privileged users", func(t *testing.T) {
		customer := newTestCustomer(t)
		customer.IsFrozen = true

		assert.NoError(t, customer.ValidateForTransaction(true))
	})

	t.Run("disabled wins over frozen", func(t *testing.T) {
		customer := newTestCustomer(t)
		customer.IsFrozen = true
		customer.Disabled = true

		err := customer.ValidateForTransaction(true)

		assert.True(t, errors.Is(err, shared.ErrPartyDisabled))
		assert.Equal(t, "Customer _Test Customer is disabled", err.Error())
	})
}

func TestCustomer_Rename(t *testing.T) {
	t.Run("renames and syncs customer name", func(t *testing.T) {
		customer := newTestCustomer(t)

		require.NoError(t, customer.Rename("_Test Customer Renamed", true))

		assert.Equal(t, "_Test Customer Renamed", customer.Name)
		assert.Equal(t, "_Test Customer Renamed", customer.CustomerName)
		renamed := customer.GetDomainEvents()[0].(*CustomerRenamedEvent)
		assert.Equal(t, "_Test Customer", renamed.OldName)
		assert.Equal(t, "_Test Customer Renamed", renamed.NewName)
	})

	t.Run("keeps customer name under series naming", func(t *testing.T) {
		customer := newTestCustomer(t)

		require.NoError(t, customer.Rename("CUST-00009", false))

		assert.Equal(t, "CUST-00009", customer.Name)
		assert.Equal(t, "_Test Customer", customer.CustomerName)
	})

	t.Run("rejects same name", func(t *testing.T) {
		customer := newTestCustomer(t)
		assert.Error(t, customer.Rename("_Test Customer", true))
	})
}

func TestCustomer_EffectiveCreditLimit(t *testing.T) {
	group := &CustomerGroup{Name: "G", CreditLimit: decimal.NewFromInt(300)}
	companyLimit := decimal.NewFromInt(1000)

	customer := newTestCustomer(t)
	assert.True(t, customer.EffectiveCreditLimit(group, companyLimit).Equal(decimal.NewFromInt(300)))
	assert.True(t, customer.EffectiveCreditLimit(nil, companyLimit).Equal(companyLimit))
	assert.True(t, customer.EffectiveCreditLimit(nil, decimal.Zero).IsZero())

	customer.CreditLimit = decimal.NewFromInt(50)
	assert.True(t, customer.EffectiveCreditLimit(group, companyLimit).Equal(decimal.NewFromInt(50)))
}
