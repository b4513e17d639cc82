package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesInvoiceRepository implements SalesInvoiceRepository using GORM
type GormSalesInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSalesInvoiceRepository creates a new GormSalesInvoiceRepository
func NewGormSalesInvoiceRepository(db *gorm.DB) *GormSalesInvoiceRepository {
	return &GormSalesInvoiceRepository{db: db}
}

// FindByName finds a sales invoice and its rows
func (r *GormSalesInvoiceRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*trade.SalesInvoice, error) {
	db := r.db.WithContext(ctx)
	var model models.SalesInvoiceModel
	if err := db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	items, err := loadItems(db, trade.DocTypeSalesInvoice, []uuid.UUID{model.ID})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(items[model.ID]), nil
}

// FindAllForTenant lists sales invoices for a tenant
func (r *GormSalesInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SalesInvoice, error) {
	db := r.db.WithContext(ctx)
	query := applyDocumentFilter(db.Model(&models.SalesInvoiceModel{}).Where("tenant_id = ?", tenantID), filter)
	return r.find(db, paginate(query, filter, SalesDocumentSortFields))
}

// CountForTenant counts sales invoices for a tenant
func (r *GormSalesInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := applyDocumentFilter(r.db.WithContext(ctx).Model(&models.SalesInvoiceModel{}).Where("tenant_id = ?", tenantID), filter).
		Count(&count).Error
	return count, err
}

// BilledByDeliveryNoteRows sums the amounts of submitted invoice rows per delivery note row
func (r *GormSalesInvoiceRepository) BilledByDeliveryNoteRows(ctx context.Context, tenantID uuid.UUID, dnDetails []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	billed := make(map[uuid.UUID]decimal.Decimal, len(dnDetails))
	if len(dnDetails) == 0 {
		return billed, nil
	}

	var rows []struct {
		DNDetail uuid.UUID       `gorm:"column:dn_detail"`
		Amount   decimal.Decimal `gorm:"column:amount"`
	}
	err := r.db.WithContext(ctx).
		Table("sales_document_items AS i").
		Select("i.dn_detail AS dn_detail, SUM(i.amount) AS amount").
		Joins("JOIN sales_invoices AS s ON s.id = i.parent_id").
		Where("i.parent_type = ? AND i.tenant_id = ? AND s.doc_status = ?", string(trade.DocTypeSalesInvoice), tenantID, int(trade.DocStatusSubmitted)).
		Where("i.dn_detail IN ?", dnDetails).
		Group("i.dn_detail").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		billed[row.DNDetail] = row.Amount
	}
	return billed, nil
}

// Save creates or overwrites an invoice with its rows
func (r *GormSalesInvoiceRepository) Save(ctx context.Context, invoice *trade.SalesInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocument(tx, models.SalesInvoiceModelFromDomain(invoice), &invoice.SalesDocument)
	})
}

// SaveWithLock saves only if the stored version still matches, then bumps it
func (r *GormSalesInvoiceRepository) SaveWithLock(ctx context.Context, invoice *trade.SalesInvoice) error {
	model := models.SalesInvoiceModelFromDomain(invoice)
	model.Version = invoice.Version + 1
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocumentWithLock(tx, model, &invoice.SalesDocument)
	})
}

// Delete removes an invoice and its rows
func (r *GormSalesInvoiceRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteDocument(tx, &models.SalesInvoiceModel{}, trade.DocTypeSalesInvoice, tenantID, name)
	})
}

func (r *GormSalesInvoiceRepository) find(db, query *gorm.DB) ([]trade.SalesInvoice, error) {
	var invoiceModels []models.SalesInvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(invoiceModels))
	for i := range invoiceModels {
		ids[i] = invoiceModels[i].ID
	}
	items, err := loadItems(db, trade.DocTypeSalesInvoice, ids)
	if err != nil {
		return nil, err
	}
	invoices := make([]trade.SalesInvoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain(items[invoiceModels[i].ID])
	}
	return invoices, nil
}

var _ trade.SalesInvoiceRepository = (*GormSalesInvoiceRepository)(nil)
