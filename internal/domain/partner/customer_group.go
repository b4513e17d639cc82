package partner

import (
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerGroup classifies customers and carries inherited defaults
type CustomerGroup struct {
	shared.TenantAggregateRoot
	Name             string
	ParentGroup      string
	CreditLimit      decimal.Decimal
	DefaultPriceList string
}

// NewCustomerGroup creates a new customer group
func NewCustomerGroup(tenantID uuid.UUID, name, parent string) (*CustomerGroup, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Customer Group name cannot be empty")
	}
	if len(name) > 140 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Customer Group name cannot exceed 140 characters")
	}
	if parent == name {
		return nil, shared.NewDomainError(shared.CodeValidation, "Customer Group cannot be its own parent")
	}
	return &CustomerGroup{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		ParentGroup:         parent,
		CreditLimit:         decimal.Zero,
	}, nil
}

// SetCreditLimit sets the limit applied to members without their own limit
func (g *CustomerGroup) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Credit limit cannot be negative")
	}
	g.CreditLimit = limit
	g.UpdatedAt = time.Now()
	return nil
}

// SetDefaultPriceList sets the selling price list offered to members
func (g *CustomerGroup) SetDefaultPriceList(priceList string) {
	g.DefaultPriceList = priceList
	g.UpdatedAt = time.Now()
}
