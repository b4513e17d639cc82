package finance

import (
	"fmt"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyTypeCustomer is the party type of receivable entries
const PartyTypeCustomer = "Customer"

// VoucherType names the document that produced a ledger entry
type VoucherType string

const (
	VoucherTypeSalesInvoice VoucherType = "Sales Invoice"
	VoucherTypePayment      VoucherType = "Payment Entry"
)

// GLEntry is one receivable ledger line. Entries are never edited; a
// cancellation posts a reversing entry.
type GLEntry struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	PartyType   string
	Party       string
	Company     string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	VoucherType VoucherType
	VoucherNo   string
	PostingDate time.Time
	Remarks     string
	IsCancelled bool
	CreatedAt   time.Time
}

// NewDebitEntry books an amount owed by the customer
func NewDebitEntry(tenantID uuid.UUID, party, company string, amount decimal.Decimal, voucherType VoucherType, voucherNo string, postingDate time.Time) (*GLEntry, error) {
	return newEntry(tenantID, party, company, amount, decimal.Zero, voucherType, voucherNo, postingDate)
}

// NewCreditEntry books an amount received from or credited to the customer
func NewCreditEntry(tenantID uuid.UUID, party, company string, amount decimal.Decimal, voucherType VoucherType, voucherNo string, postingDate time.Time) (*GLEntry, error) {
	return newEntry(tenantID, party, company, decimal.Zero, amount, voucherType, voucherNo, postingDate)
}

func newEntry(tenantID uuid.UUID, party, company string, debit, credit decimal.Decimal, voucherType VoucherType, voucherNo string, postingDate time.Time) (*GLEntry, error) {
	if party == "" || company == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Party and company are required for a ledger entry")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Ledger amounts cannot be negative")
	}
	if debit.IsZero() && credit.IsZero() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Ledger entry amount cannot be zero")
	}
	if voucherNo == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Voucher number is required")
	}
	if postingDate.IsZero() {
		postingDate = time.Now()
	}
	return &GLEntry{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PartyType:   PartyTypeCustomer,
		Party:       party,
		Company:     company,
		Debit:       debit.Round(2),
		Credit:      credit.Round(2),
		VoucherType: voucherType,
		VoucherNo:   voucherNo,
		PostingDate: postingDate,
		CreatedAt:   time.Now(),
	}, nil
}

// Reverse returns the entry that cancels e
func (e *GLEntry) Reverse() *GLEntry {
	return &GLEntry{
		ID:          uuid.New(),
		TenantID:    e.TenantID,
		PartyType:   e.PartyType,
		Party:       e.Party,
		Company:     e.Company,
		Debit:       e.Credit,
		Credit:      e.Debit,
		VoucherType: e.VoucherType,
		VoucherNo:   e.VoucherNo,
		PostingDate: time.Now(),
		Remarks:     fmt.Sprintf("On cancellation of %s", e.VoucherNo),
		IsCancelled: true,
		CreatedAt:   time.Now(),
	}
}

// Balance returns debit minus credit
func (e *GLEntry) Balance() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}
