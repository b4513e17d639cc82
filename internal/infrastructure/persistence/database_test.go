package persistence

import (
	"context"
	"testing"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database driver "oracle"`)
}

func TestAutoMigrate(t *testing.T) {
	db := newTestDB(t)

	t.Run("is repeatable", func(t *testing.T) {
		assert.NoError(t, AutoMigrate(db))
	})

	t.Run("enforces unique names per tenant", func(t *testing.T) {
		ctx := context.Background()
		tenantID := uuid.New()
		repo := NewGormCustomerRepository(db)
		saveCustomer(t, repo, tenantID, "_Test Customer")

		duplicate, err := partner.NewCustomer(tenantID, "_Test Customer", "_Test Customer", partner.CustomerTypeCompany, "All Customer Groups", "All Territories")
		require.NoError(t, err)
		assert.Error(t, repo.Save(ctx, duplicate))

		other, err := partner.NewCustomer(uuid.New(), "_Test Customer", "_Test Customer", partner.CustomerTypeCompany, "All Customer Groups", "All Territories")
		require.NoError(t, err)
		assert.NoError(t, repo.Save(ctx, other))
	})
}

func TestDatabase_Ping(t *testing.T) {
	database, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)

	assert.NoError(t, database.Ping())
	require.NoError(t, database.Close())
	assert.Error(t, database.Ping())
}
