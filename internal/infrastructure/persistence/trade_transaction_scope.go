package persistence

import (
	"context"

	apptrade "github.com/erp/selling/internal/application/trade"
	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Repositories handed to fn share the transaction; nested Transaction calls
// inside them become savepoints.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) SalesOrders() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) DeliveryNotes() trade.DeliveryNoteRepository {
	return NewGormDeliveryNoteRepository(r.tx)
}

func (r *gormTransactionalRepositories) SalesInvoices() trade.SalesInvoiceRepository {
	return NewGormSalesInvoiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) GLEntries() finance.GLEntryRepository {
	return NewGormGLEntryRepository(r.tx)
}

var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
