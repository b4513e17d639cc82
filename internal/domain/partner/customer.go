package partner

import (
	"fmt"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocTypeCustomer is the document type recorded on links that point at a customer
const DocTypeCustomer = "Customer"

// CustomerType represents the type of customer
type CustomerType string

const (
	CustomerTypeCompany    CustomerType = "Company"
	CustomerTypeIndividual CustomerType = "Individual"
)

// SalesTeamMember allocates a share of a customer's sales to a sales person
type SalesTeamMember struct {
	SalesPerson         string          `json:"sales_person"`
	AllocatedPercentage decimal.Decimal `json:"allocated_percentage"`
}

// Customer represents a customer in the partner context.
// Name is the document name other records link to; CustomerName is the display name.
type Customer struct {
	shared.TenantAggregateRoot
	Name             string
	CustomerName     string
	CustomerType     CustomerType
	CustomerGroup    string
	Territory        string
	DefaultPriceList string
	DefaultCurrency  string
	CreditLimit      decimal.Decimal
	IsFrozen         bool
	Disabled         bool
	SalesTeam        []SalesTeamMember
	TaxID            string
	Notes            string
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, name, customerName string, customerType CustomerType, group, territory string) (*Customer, error) {
	if err := validateDocumentName(name); err != nil {
		return nil, err
	}
	if err := validateCustomerName(customerName); err != nil {
		return nil, err
	}
	if err := validateCustomerType(customerType); err != nil {
		return nil, err
	}
	if group == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Customer Group is required")
	}
	if territory == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Territory is required")
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		CustomerName:        customerName,
		CustomerType:        customerType,
		CustomerGroup:       group,
		Territory:           territory,
		CreditLimit:         decimal.Zero,
		SalesTeam:           []SalesTeamMember{},
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update changes the display name and type
func (c *Customer) Update(customerName string, customerType CustomerType) error {
	if err := validateCustomerName(customerName); err != nil {
		return err
	}
	if err := validateCustomerType(customerType); err != nil {
		return err
	}

	c.CustomerName = customerName
	c.CustomerType = customerType
	c.touch()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetClassification sets the customer group and territory
func (c *Customer) SetClassification(group, territory string) error {
	if group == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer Group is required")
	}
	if territory == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Territory is required")
	}

	c.CustomerGroup = group
	c.Territory = territory
	c.touch()

	return nil
}

// SetDefaults sets the default price list and billing currency
func (c *Customer) SetDefaults(priceList, currency string) {
	c.DefaultPriceList = priceList
	c.DefaultCurrency = currency
	c.touch()
}

// SetCreditLimit sets the customer's credit limit. Zero means the limit is inherited.
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Credit limit cannot be negative")
	}
	if limit.Equal(c.CreditLimit) {
		return nil
	}

	old := c.CreditLimit
	c.CreditLimit = limit
	c.touch()

	c.AddDomainEvent(NewCustomerCreditLimitChangedEvent(c, old, limit))

	return nil
}

// SetSalesTeam replaces the sales team. A non-empty team must allocate exactly 100%.
func (c *Customer) SetSalesTeam(members []SalesTeamMember) error {
	total := decimal.Zero
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m.SalesPerson == "" {
			return shared.NewDomainError(shared.CodeInvalidInput, "Sales Person is required in sales team")
		}
		if _, dup := seen[m.SalesPerson]; dup {
			return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Sales Person %s appears more than once in sales team", m.SalesPerson))
		}
		seen[m.SalesPerson] = struct{}{}
		if m.AllocatedPercentage.IsNegative() {
			return shared.NewDomainError(shared.CodeValidation, "Allocated percentage cannot be negative")
		}
		total = total.Add(m.AllocatedPercentage)
	}
	if len(members) > 0 && !total.Equal(decimal.NewFromInt(100)) {
		return shared.NewDomainError(shared.CodeValidation, "Total contribution percentage should be equal to 100")
	}

	c.SalesTeam = append([]SalesTeamMember{}, members...)
	c.touch()

	return nil
}

// SetTaxID sets the customer's tax identification number
func (c *Customer) SetTaxID(taxID string) error {
	if len(taxID) > 50 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tax ID cannot exceed 50 characters")
	}
	c.TaxID = taxID
	c.touch()
	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.touch()
}

// Freeze blocks transactions for users without the frozen accounts modifier role
func (c *Customer) Freeze() error {
	if c.IsFrozen {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Customer %s is already frozen", c.Name))
	}
	c.IsFrozen = true
	c.touch()
	c.AddDomainEvent(NewCustomerFreezeChangedEvent(c))
	return nil
}

// Unfreeze lifts the freeze
func (c *Customer) Unfreeze() error {
	if !c.IsFrozen {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Customer %s is not frozen", c.Name))
	}
	c.IsFrozen = false
	c.touch()
	c.AddDomainEvent(NewCustomerFreezeChangedEvent(c))
	return nil
}

// Disable blocks every new transaction against the customer
func (c *Customer) Disable() error {
	if c.Disabled {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Customer %s is already disabled", c.Name))
	}
	c.Disabled = true
	c.touch()
	c.AddDomainEvent(NewCustomerDisabledChangedEvent(c))
	return nil
}

// Enable re-enables a disabled customer
func (c *Customer) Enable() error {
	if !c.Disabled {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Customer %s is not disabled", c.Name))
	}
	c.Disabled = false
	c.touch()
	c.AddDomainEvent(NewCustomerDisabledChangedEvent(c))
	return nil
}

// ValidateForTransaction checks that a new transaction may be recorded against the customer.
// Disabled takes precedence over frozen; frozen can be bypassed by privileged users.
func (c *Customer) ValidateForTransaction(canModifyFrozen bool) error {
	if c.Disabled {
		return shared.NewDomainError(shared.CodePartyDisabled, fmt.Sprintf("Customer %s is disabled", c.Name))
	}
	if c.IsFrozen && !canModifyFrozen {
		return shared.NewDomainError(shared.CodePartyFrozen, fmt.Sprintf("Customer %s is frozen", c.Name))
	}
	return nil
}

// Rename changes the document name. When syncCustomerName is set the display
// name follows the document name.
func (c *Customer) Rename(newName string, syncCustomerName bool) error {
	if err := validateDocumentName(newName); err != nil {
		return err
	}
	if newName == c.Name {
		return shared.NewDomainError(shared.CodeInvalidInput, "New name must differ from the current name")
	}

	oldName := c.Name
	c.Name = newName
	if syncCustomerName {
		c.CustomerName = newName
	}
	c.touch()

	c.AddDomainEvent(NewCustomerRenamedEvent(c, oldName, false))

	return nil
}

// MarkDeleted records the deletion event
func (c *Customer) MarkDeleted() {
	c.AddDomainEvent(NewCustomerDeletedEvent(c))
}

// EffectiveCreditLimit returns the customer's own limit, falling back to the
// group limit and then the company limit. Zero means no limit applies.
func (c *Customer) EffectiveCreditLimit(group *CustomerGroup, companyLimit decimal.Decimal) decimal.Decimal {
	if c.CreditLimit.IsPositive() {
		return c.CreditLimit
	}
	if group != nil && group.CreditLimit.IsPositive() {
		return group.CreditLimit
	}
	if companyLimit.IsPositive() {
		return companyLimit
	}
	return decimal.Zero
}

// IsIndividual returns true if customer is an individual
func (c *Customer) IsIndividual() bool {
	return c.CustomerType == CustomerTypeIndividual
}

// HasCreditLimit returns true if customer has its own credit limit set
func (c *Customer) HasCreditLimit() bool {
	return c.CreditLimit.IsPositive()
}

func (c *Customer) touch() {
	c.UpdatedAt = time.Now()
}

// Validation functions

func validateDocumentName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer name cannot be empty")
	}
	if len(name) > 140 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer name cannot exceed 140 characters")
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer Name is required")
	}
	if len(name) > 140 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer Name cannot exceed 140 characters")
	}
	return nil
}

func validateCustomerType(t CustomerType) error {
	switch t {
	case CustomerTypeCompany, CustomerTypeIndividual:
		return nil
	default:
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer Type must be 'Company' or 'Individual'")
	}
}
