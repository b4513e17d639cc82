package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormGLEntryRepository implements GLEntryRepository using GORM
type GormGLEntryRepository struct {
	db *gorm.DB
}

// NewGormGLEntryRepository creates a new GormGLEntryRepository
func NewGormGLEntryRepository(db *gorm.DB) *GormGLEntryRepository {
	return &GormGLEntryRepository{db: db}
}

// Create inserts ledger entries. Entries are append-only.
func (r *GormGLEntryRepository) Create(ctx context.Context, entries ...*finance.GLEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.GLEntryModel, len(entries))
	for i, e := range entries {
		rows[i] = models.GLEntryModelFromDomain(e)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByVoucher lists the entries posted by one voucher
func (r *GormGLEntryRepository) FindByVoucher(ctx context.Context, tenantID uuid.UUID, voucherType finance.VoucherType, voucherNo string) ([]finance.GLEntry, error) {
	return r.find(r.db.WithContext(ctx).
		Where("tenant_id = ? AND voucher_type = ? AND voucher_no = ?", tenantID, voucherType, voucherNo))
}

// FindByParty lists a customer's entries for a company in posting order
func (r *GormGLEntryRepository) FindByParty(ctx context.Context, tenantID uuid.UUID, party, company string) ([]finance.GLEntry, error) {
	return r.find(r.db.WithContext(ctx).
		Where("tenant_id = ? AND party_type = ? AND party = ? AND company = ?", tenantID, finance.PartyTypeCustomer, party, company))
}

// PartyBalance returns total debit minus total credit of a customer for a company
func (r *GormGLEntryRepository) PartyBalance(ctx context.Context, tenantID uuid.UUID, party, company string) (decimal.Decimal, error) {
	var totals struct {
		Debit  decimal.Decimal
		Credit decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.GLEntryModel{}).
		Select("COALESCE(SUM(debit), 0) AS debit, COALESCE(SUM(credit), 0) AS credit").
		Where("tenant_id = ? AND party_type = ? AND party = ? AND company = ?", tenantID, finance.PartyTypeCustomer, party, company).
		Scan(&totals).Error
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Debit.Sub(totals.Credit), nil
}

func (r *GormGLEntryRepository) find(query *gorm.DB) ([]finance.GLEntry, error) {
	var rows []models.GLEntryModel
	if err := query.Order("posting_date ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]finance.GLEntry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, nil
}

var _ finance.GLEntryRepository = (*GormGLEntryRepository)(nil)
