package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByName finds a company by name within a tenant
func (r *GormCompanyRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*finance.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the tenant's companies by name
func (r *GormCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]finance.Company, error) {
	var companyModels []models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&companyModels).Error; err != nil {
		return nil, err
	}
	companies := make([]finance.Company, len(companyModels))
	for i := range companyModels {
		companies[i] = *companyModels[i].ToDomain()
	}
	return companies, nil
}

// ExistsByName checks if a company exists
func (r *GormCompanyRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *finance.Company) error {
	return r.db.WithContext(ctx).Save(models.CompanyModelFromDomain(company)).Error
}

var _ finance.CompanyRepository = (*GormCompanyRepository)(nil)
