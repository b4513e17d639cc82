package finance

import (
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is the legal entity that books sales and owns the receivable ledger
type Company struct {
	shared.TenantAggregateRoot
	Name            string
	Abbr            string
	DefaultCurrency string
	// CreditLimit applies to customers with neither an own nor a group limit
	CreditLimit decimal.Decimal
}

// NewCompany creates a new company
func NewCompany(tenantID uuid.UUID, name, abbr, currency string) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Company name cannot be empty")
	}
	if len(name) > 140 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Company name cannot exceed 140 characters")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Default currency must be a 3-letter ISO code")
	}
	return &Company{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Abbr:                abbr,
		DefaultCurrency:     currency,
		CreditLimit:         decimal.Zero,
	}, nil
}

// SetCreditLimit sets the company-wide fallback credit limit
func (c *Company) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	return nil
}
