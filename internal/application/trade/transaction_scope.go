package trade

import (
	"context"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/trade"
)

// TransactionalRepositories gives access to repositories that share one database transaction
type TransactionalRepositories interface {
	SalesOrders() trade.SalesOrderRepository
	DeliveryNotes() trade.DeliveryNoteRepository
	SalesInvoices() trade.SalesInvoiceRepository
	GLEntries() finance.GLEntryRepository
}

// TransactionScope runs fn atomically. If fn returns an error every write made
// through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope hands out the plain repositories without a transaction.
// Used in tests and by callers that accept partial writes.
type NoOpTransactionScope struct {
	orderRepo   trade.SalesOrderRepository
	noteRepo    trade.DeliveryNoteRepository
	invoiceRepo trade.SalesInvoiceRepository
	glRepo      finance.GLEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo trade.SalesOrderRepository,
	noteRepo trade.DeliveryNoteRepository,
	invoiceRepo trade.SalesInvoiceRepository,
	glRepo finance.GLEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		noteRepo:    noteRepo,
		invoiceRepo: invoiceRepo,
		glRepo:      glRepo,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) SalesOrders() trade.SalesOrderRepository     { return s.orderRepo }
func (s *NoOpTransactionScope) DeliveryNotes() trade.DeliveryNoteRepository { return s.noteRepo }
func (s *NoOpTransactionScope) SalesInvoices() trade.SalesInvoiceRepository { return s.invoiceRepo }
func (s *NoOpTransactionScope) GLEntries() finance.GLEntryRepository        { return s.glRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
