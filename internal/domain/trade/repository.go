package trade

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*SalesOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// FindUnbilled lists submitted, not closed orders of a customer that are less than fully billed
	FindUnbilled(ctx context.Context, tenantID uuid.UUID, customer, company string) ([]SalesOrder, error)

	// Save creates a draft or overwrites an existing order with its rows
	Save(ctx context.Context, order *SalesOrder) error

	// SaveWithLock saves only if the stored version still matches, then bumps it
	SaveWithLock(ctx context.Context, order *SalesOrder) error

	Delete(ctx context.Context, tenantID uuid.UUID, name string) error
}

// DeliveryNoteRepository defines the interface for delivery note persistence
type DeliveryNoteRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*DeliveryNote, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DeliveryNote, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// FindOpen lists submitted, not closed notes of a customer
	FindOpen(ctx context.Context, tenantID uuid.UUID, customer, company string) ([]DeliveryNote, error)

	Save(ctx context.Context, note *DeliveryNote) error
	SaveWithLock(ctx context.Context, note *DeliveryNote) error
	Delete(ctx context.Context, tenantID uuid.UUID, name string) error
}

// SalesInvoiceRepository defines the interface for sales invoice persistence
type SalesInvoiceRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*SalesInvoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SalesInvoice, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// BilledByDeliveryNoteRows sums the amounts of submitted invoice rows per delivery note row
	BilledByDeliveryNoteRows(ctx context.Context, tenantID uuid.UUID, dnDetails []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	Save(ctx context.Context, invoice *SalesInvoice) error
	SaveWithLock(ctx context.Context, invoice *SalesInvoice) error
	Delete(ctx context.Context, tenantID uuid.UUID, name string) error
}
