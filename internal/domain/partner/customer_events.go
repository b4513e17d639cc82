package partner

import (
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated            = "CustomerCreated"
	EventTypeCustomerUpdated            = "CustomerUpdated"
	EventTypeCustomerRenamed            = "CustomerRenamed"
	EventTypeCustomerFrozen             = "CustomerFrozen"
	EventTypeCustomerUnfrozen           = "CustomerUnfrozen"
	EventTypeCustomerDisabled           = "CustomerDisabled"
	EventTypeCustomerEnabled            = "CustomerEnabled"
	EventTypeCustomerCreditLimitChanged = "CustomerCreditLimitChanged"
	EventTypeCustomerDeleted            = "CustomerDeleted"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID    uuid.UUID    `json:"customer_id"`
	Name          string       `json:"name"`
	CustomerName  string       `json:"customer_name"`
	CustomerType  CustomerType `json:"customer_type"`
	CustomerGroup string       `json:"customer_group"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		CustomerName:    customer.CustomerName,
		CustomerType:    customer.CustomerType,
		CustomerGroup:   customer.CustomerGroup,
	}
}

// CustomerUpdatedEvent is published when a customer is updated
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID   uuid.UUID    `json:"customer_id"`
	Name         string       `json:"name"`
	CustomerName string       `json:"customer_name"`
	CustomerType CustomerType `json:"customer_type"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		CustomerName:    customer.CustomerName,
		CustomerType:    customer.CustomerType,
	}
}

// CustomerRenamedEvent is published after a customer's document name changes
type CustomerRenamedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	OldName    string    `json:"old_name"`
	NewName    string    `json:"new_name"`
	Merged     bool      `json:"merged"`
}

// NewCustomerRenamedEvent creates a new CustomerRenamedEvent
func NewCustomerRenamedEvent(customer *Customer, oldName string, merged bool) *CustomerRenamedEvent {
	return &CustomerRenamedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerRenamed, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		OldName:         oldName,
		NewName:         customer.Name,
		Merged:          merged,
	}
}

// CustomerStateChangedEvent is published when a customer is frozen, unfrozen,
// disabled or enabled. The event type tells which.
type CustomerStateChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	IsFrozen   bool      `json:"is_frozen"`
	Disabled   bool      `json:"disabled"`
}

// NewCustomerFreezeChangedEvent creates a CustomerFrozen or CustomerUnfrozen event
func NewCustomerFreezeChangedEvent(customer *Customer) *CustomerStateChangedEvent {
	eventType := EventTypeCustomerUnfrozen
	if customer.IsFrozen {
		eventType = EventTypeCustomerFrozen
	}
	return newCustomerStateChangedEvent(eventType, customer)
}

// NewCustomerDisabledChangedEvent creates a CustomerDisabled or CustomerEnabled event
func NewCustomerDisabledChangedEvent(customer *Customer) *CustomerStateChangedEvent {
	eventType := EventTypeCustomerEnabled
	if customer.Disabled {
		eventType = EventTypeCustomerDisabled
	}
	return newCustomerStateChangedEvent(eventType, customer)
}

func newCustomerStateChangedEvent(eventType string, customer *Customer) *CustomerStateChangedEvent {
	return &CustomerStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		IsFrozen:        customer.IsFrozen,
		Disabled:        customer.Disabled,
	}
}

// CustomerCreditLimitChangedEvent is published when a customer's own credit limit changes
type CustomerCreditLimitChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	Name       string          `json:"name"`
	OldLimit   decimal.Decimal `json:"old_limit"`
	NewLimit   decimal.Decimal `json:"new_limit"`
}

// NewCustomerCreditLimitChangedEvent creates a new CustomerCreditLimitChangedEvent
func NewCustomerCreditLimitChangedEvent(customer *Customer, oldLimit, newLimit decimal.Decimal) *CustomerCreditLimitChangedEvent {
	return &CustomerCreditLimitChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreditLimitChanged, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		OldLimit:        oldLimit,
		NewLimit:        newLimit,
	}
}

// CustomerDeletedEvent is published when a customer is deleted
type CustomerDeletedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
}

// NewCustomerDeletedEvent creates a new CustomerDeletedEvent
func NewCustomerDeletedEvent(customer *Customer) *CustomerDeletedEvent {
	return &CustomerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDeleted, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
	}
}
