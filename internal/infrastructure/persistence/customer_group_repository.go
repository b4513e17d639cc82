package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerGroupRepository implements CustomerGroupRepository using GORM
type GormCustomerGroupRepository struct {
	db *gorm.DB
}

// NewGormCustomerGroupRepository creates a new GormCustomerGroupRepository
func NewGormCustomerGroupRepository(db *gorm.DB) *GormCustomerGroupRepository {
	return &GormCustomerGroupRepository{db: db}
}

// FindByName finds a customer group by name within a tenant
func (r *GormCustomerGroupRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.CustomerGroup, error) {
	var model models.CustomerGroupModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the tenant's customer groups by name
func (r *GormCustomerGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]partner.CustomerGroup, error) {
	var groupModels []models.CustomerGroupModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&groupModels).Error; err != nil {
		return nil, err
	}
	groups := make([]partner.CustomerGroup, len(groupModels))
	for i := range groupModels {
		groups[i] = *groupModels[i].ToDomain()
	}
	return groups, nil
}

// ExistsByName checks if a customer group exists
func (r *GormCustomerGroupRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerGroupModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a customer group
func (r *GormCustomerGroupRepository) Save(ctx context.Context, group *partner.CustomerGroup) error {
	return r.db.WithContext(ctx).Save(models.CustomerGroupModelFromDomain(group)).Error
}

var _ partner.CustomerGroupRepository = (*GormCustomerGroupRepository)(nil)
