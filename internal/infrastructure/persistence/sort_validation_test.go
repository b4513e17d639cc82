package persistence

import (
	"errors"
	"testing"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/infrastructure/config"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidateSortOrder(t *testing.T) {
	cases := map[string]string{
		"":                          "DESC",
		"asc":                       "ASC",
		"  Asc ":                    "ASC",
		"desc":                      "DESC",
		"ASC; DROP TABLE customers": "DESC",
	}
	for input, want := range cases {
		assert.Equal(t, want, ValidateSortOrder(input), "input %q", input)
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("whitelisted customer columns pass", func(t *testing.T) {
		for _, field := range []string{"name", "customer_name", "customer_group", "territory", "credit_limit"} {
			assert.Equal(t, field, ValidateSortField(field, CustomerSortFields, "created_at"))
		}
	})

	t.Run("document columns are not customer columns", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("grand_total", CustomerSortFields, "created_at"))
		assert.Equal(t, "grand_total", ValidateSortField("grand_total", SalesDocumentSortFields, "created_at"))
	})

	t.Run("anything else falls back", func(t *testing.T) {
		for _, field := range []string{"", "   ", "NAME", "name desc", "name'--", "customer; DELETE FROM gl_entries"} {
			assert.Equal(t, "posting_date", ValidateSortField(field, SalesDocumentSortFields, "posting_date"), "field %q", field)
		}
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		assert.Equal(t, "customer", ValidateSortField(" customer ", SalesDocumentSortFields, "created_at"))
	})
}

func TestPaginate(t *testing.T) {
	database, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	render := func(filter shared.Filter) string {
		var rows []models.CustomerModel
		stmt := paginate(database.DB.Session(&gorm.Session{DryRun: true}).Model(&models.CustomerModel{}), filter, CustomerSortFields).
			Find(&rows).Statement
		return stmt.SQL.String()
	}

	sql := render(shared.Filter{Page: 3, PageSize: 10, OrderBy: "customer_name", OrderDir: "asc"})
	assert.Contains(t, sql, "ORDER BY customer_name ASC")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")

	sql = render(shared.Filter{PageSize: 500, OrderBy: "password"})
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 100")
	assert.NotContains(t, sql, "OFFSET")
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%globex corp%", containsPattern("Globex Corp"))
}

func TestTranslateError(t *testing.T) {
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), shared.ErrNotFound)

	other := errors.New("connection reset")
	assert.Same(t, other, translateError(other))
	assert.NoError(t, translateError(nil))
}
