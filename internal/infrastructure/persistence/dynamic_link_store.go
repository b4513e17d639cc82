package persistence

import (
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// replaceLinks rewrites the link rows of one contact or address
func replaceLinks(tx *gorm.DB, rows []models.DynamicLinkModel, parentType string, parentID uuid.UUID) error {
	if err := tx.Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Delete(&models.DynamicLinkModel{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// loadLinks returns link rows grouped by parent id, in row order
func loadLinks(db *gorm.DB, parentType string, parentIDs []uuid.UUID) (map[uuid.UUID][]models.DynamicLinkModel, error) {
	grouped := make(map[uuid.UUID][]models.DynamicLinkModel, len(parentIDs))
	if len(parentIDs) == 0 {
		return grouped, nil
	}
	var rows []models.DynamicLinkModel
	if err := db.Where("parent_type = ? AND parent_id IN ?", parentType, parentIDs).
		Order("idx ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.ParentID] = append(grouped[row.ParentID], row)
	}
	return grouped, nil
}

// linkedParents selects the ids of parents of parentType linked to doctype/name
func linkedParents(db *gorm.DB, tenantID uuid.UUID, parentType, doctype, name string) *gorm.DB {
	return db.Model(&models.DynamicLinkModel{}).
		Select("parent_id").
		Where("tenant_id = ? AND parent_type = ? AND link_doctype = ? AND link_name = ?", tenantID, parentType, doctype, name)
}

// deleteLinks removes every link row of a parent
func deleteLinks(tx *gorm.DB, parentType string, parentID uuid.UUID) error {
	return tx.Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Delete(&models.DynamicLinkModel{}).Error
}
