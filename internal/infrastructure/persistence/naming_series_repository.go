package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNamingSeries implements shared.NamingSeries with a counter row per tenant and prefix
type GormNamingSeries struct {
	db *gorm.DB
}

// NewGormNamingSeries creates a new GormNamingSeries
func NewGormNamingSeries(db *gorm.DB) *GormNamingSeries {
	return &GormNamingSeries{db: db}
}

// Next increments the counter for prefix and returns the new value.
// The row update takes a write lock, so concurrent callers get distinct numbers.
func (s *GormNamingSeries) Next(ctx context.Context, tenantID uuid.UUID, prefix string) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for attempt := 0; attempt < 2; attempt++ {
			result := tx.Model(&models.NamingSeriesModel{}).
				Where("tenant_id = ? AND prefix = ?", tenantID, prefix).
				Update("current_value", gorm.Expr("current_value + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				var row models.NamingSeriesModel
				if err := tx.Where("tenant_id = ? AND prefix = ?", tenantID, prefix).First(&row).Error; err != nil {
					return err
				}
				next = row.CurrentValue
				return nil
			}

			// first use of the prefix; a concurrent insert makes this a no-op and we retry the update
			created := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.NamingSeriesModel{TenantID: tenantID, Prefix: prefix, CurrentValue: 1})
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected > 0 {
				next = 1
				return nil
			}
		}
		return shared.NewDomainError(shared.CodeConcurrencyConflict, "could not allocate a number for series "+prefix)
	})
	return next, err
}

var _ shared.NamingSeries = (*GormNamingSeries)(nil)
