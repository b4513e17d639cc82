package persistence

import (
	"errors"
	"strings"

	"github.com/erp/selling/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC, defaulting to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when whitelisted, otherwise defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"customer_name":  true,
	"customer_group": true,
	"territory":      true,
	"credit_limit":   true,
}

// SalesDocumentSortFields contains allowed sort fields for selling documents
var SalesDocumentSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"customer":     true,
	"posting_date": true,
	"grand_total":  true,
	"status":       true,
}

// paginate applies validated ordering and the filter's page window
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	return query.
		Order(field + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// containsPattern builds a case-insensitive LIKE pattern that works on PostgreSQL and SQLite
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// prefixPattern builds a LIKE pattern matching values that start
// with s; the query must declare ESCAPE '\'
func prefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}

// translateError maps GORM lookups that found nothing to the domain not-found error
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
