package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Company, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Company, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, company *Company) error
}

// GLEntryRepository defines the interface for ledger persistence
type GLEntryRepository interface {
	// Create appends entries to the ledger
	Create(ctx context.Context, entries ...*GLEntry) error

	// FindByVoucher lists entries produced by a voucher
	FindByVoucher(ctx context.Context, tenantID uuid.UUID, voucherType VoucherType, voucherNo string) ([]GLEntry, error)

	// FindByParty lists a customer's entries for a company, oldest first
	FindByParty(ctx context.Context, tenantID uuid.UUID, party, company string) ([]GLEntry, error)

	// PartyBalance returns sum(debit) - sum(credit) for a customer and company
	PartyBalance(ctx context.Context, tenantID uuid.UUID, party, company string) (decimal.Decimal, error)
}
