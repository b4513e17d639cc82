package partner

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// RenameCustomer describes a rename of a customer document
type RenameCustomer struct {
	OldName string
	NewName string
	// Merge folds the old customer into an existing NewName
	Merge bool
	// SyncCustomerName also sets customer_name to NewName (non-merge only)
	SyncCustomerName bool
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByName finds a customer by its document name within a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Customer, error)

	// FindAllForTenant finds all customers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// CountForTenant counts customers for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByName checks if a customer with the given document name exists
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)

	// FindNamesWithPrefix lists document names starting with prefix
	FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock saves a customer with optimistic locking (version check)
	SaveWithLock(ctx context.Context, customer *Customer) error

	// Rename changes the document name and rewrites every record linking to it,
	// all in one transaction. Comment identities are preserved.
	Rename(ctx context.Context, tenantID uuid.UUID, rename RenameCustomer) error

	// HasTransactions reports whether any sales document or ledger entry references the customer
	HasTransactions(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)

	// DeleteWithDependents deletes the customer, its comments and dynamic links,
	// and any contact or address left without links.
	DeleteWithDependents(ctx context.Context, tenantID uuid.UUID, name string) error
}

// CustomerGroupRepository defines the interface for customer group persistence
type CustomerGroupRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*CustomerGroup, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]CustomerGroup, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, group *CustomerGroup) error
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Contact, error)

	// FindByLink lists contacts linked to doctype/name, primary first
	FindByLink(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]Contact, error)

	// FindNamesWithPrefix lists contact names equal to or starting with prefix
	FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)

	// ClearPrimary unsets the primary flag on every contact linked to doctype/name
	ClearPrimary(ctx context.Context, tenantID uuid.UUID, doctype, name string) error

	Save(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, tenantID uuid.UUID, name string) error
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Address, error)

	// FindByLink lists addresses linked to doctype/name, primary first
	FindByLink(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]Address, error)

	// FindNamesWithPrefix lists address names equal to or starting with prefix
	FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)

	// ClearPrimary unsets the primary flag on every address linked to doctype/name
	ClearPrimary(ctx context.Context, tenantID uuid.UUID, doctype, name string) error

	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, tenantID uuid.UUID, name string) error
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error

	// FindByReference lists comments on doctype/name, newest first
	FindByReference(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]Comment, error)

	// FindLatest returns the newest comment of the given type on doctype/name
	FindLatest(ctx context.Context, tenantID uuid.UUID, commentType CommentType, doctype, name string) (*Comment, error)
}
