package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByName finds a sales order and its rows
func (r *GormSalesOrderRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*trade.SalesOrder, error) {
	db := r.db.WithContext(ctx)
	var model models.SalesOrderModel
	if err := db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	items, err := loadItems(db, trade.DocTypeSalesOrder, []uuid.UUID{model.ID})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(items[model.ID]), nil
}

// FindAllForTenant lists sales orders for a tenant
func (r *GormSalesOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	db := r.db.WithContext(ctx)
	query := applyDocumentFilter(db.Model(&models.SalesOrderModel{}).Where("tenant_id = ?", tenantID), filter)
	return r.find(db, paginate(query, filter, SalesDocumentSortFields))
}

// CountForTenant counts sales orders for a tenant
func (r *GormSalesOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := applyDocumentFilter(r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).Where("tenant_id = ?", tenantID), filter).
		Count(&count).Error
	return count, err
}

// FindUnbilled lists submitted, not closed orders of a customer that are less than fully billed
func (r *GormSalesOrderRepository) FindUnbilled(ctx context.Context, tenantID uuid.UUID, customer, company string) ([]trade.SalesOrder, error) {
	db := r.db.WithContext(ctx)
	return r.find(db, db.Model(&models.SalesOrderModel{}).
		Where("tenant_id = ? AND customer = ? AND company = ?", tenantID, customer, company).
		Where("doc_status = ? AND status <> ? AND per_billed < ?", int(trade.DocStatusSubmitted), trade.StatusClosed, 100).
		Order("posting_date ASC"))
}

// Save creates or overwrites an order with its rows
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocument(tx, models.SalesOrderModelFromDomain(order), &order.SalesDocument)
	})
}

// SaveWithLock saves only if the stored version still matches, then bumps it
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	model := models.SalesOrderModelFromDomain(order)
	model.Version = order.Version + 1
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocumentWithLock(tx, model, &order.SalesDocument)
	})
}

// Delete removes an order and its rows
func (r *GormSalesOrderRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteDocument(tx, &models.SalesOrderModel{}, trade.DocTypeSalesOrder, tenantID, name)
	})
}

func (r *GormSalesOrderRepository) find(db, query *gorm.DB) ([]trade.SalesOrder, error) {
	var orderModels []models.SalesOrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(orderModels))
	for i := range orderModels {
		ids[i] = orderModels[i].ID
	}
	items, err := loadItems(db, trade.DocTypeSalesOrder, ids)
	if err != nil {
		return nil, err
	}
	orders := make([]trade.SalesOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain(items[orderModels[i].ID])
	}
	return orders, nil
}

var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
