package persistence

import (
	"fmt"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// saveDocument upserts a document header and replaces its rows
func saveDocument(tx *gorm.DB, header any, doc *trade.SalesDocument) error {
	if err := tx.Save(header).Error; err != nil {
		return err
	}
	return replaceItems(tx, doc)
}

// saveDocumentWithLock updates a header only if the stored version matches
// doc.Version, replaces the rows, then advances doc.Version. header must carry
// the advanced version already.
func saveDocumentWithLock(tx *gorm.DB, header any, doc *trade.SalesDocument) error {
	result := tx.Model(header).
		Where("tenant_id = ? AND version = ?", doc.TenantID, doc.Version).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by").
		Updates(header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("%s %s has been modified by another transaction", doc.DocType, doc.Name))
	}
	if err := replaceItems(tx, doc); err != nil {
		return err
	}
	doc.Version++
	return nil
}

func replaceItems(tx *gorm.DB, doc *trade.SalesDocument) error {
	if err := tx.Where("parent_type = ? AND parent_id = ?", string(doc.DocType), doc.ID).
		Delete(&models.SalesDocumentItemModel{}).Error; err != nil {
		return err
	}
	rows := models.SalesDocumentItemModelsFromDomain(doc)
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// loadItems returns item rows grouped by parent id, in row order
func loadItems(db *gorm.DB, docType trade.DocType, parentIDs []uuid.UUID) (map[uuid.UUID][]models.SalesDocumentItemModel, error) {
	grouped := make(map[uuid.UUID][]models.SalesDocumentItemModel, len(parentIDs))
	if len(parentIDs) == 0 {
		return grouped, nil
	}
	var rows []models.SalesDocumentItemModel
	if err := db.Where("parent_type = ? AND parent_id IN ?", string(docType), parentIDs).
		Order("idx ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.ParentID] = append(grouped[row.ParentID], row)
	}
	return grouped, nil
}

// deleteDocument removes a header and its rows
func deleteDocument(tx *gorm.DB, header any, docType trade.DocType, tenantID uuid.UUID, name string) error {
	var ids []uuid.UUID
	if err := tx.Model(header).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return shared.ErrNotFound
	}
	id := ids[0]
	if err := tx.Where("parent_type = ? AND parent_id = ?", string(docType), id).
		Delete(&models.SalesDocumentItemModel{}).Error; err != nil {
		return err
	}
	return tx.Delete(header, "id = ?", id).Error
}

// applyDocumentFilter applies the search and field filters shared by selling documents
func applyDocumentFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(customer) LIKE ?)", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "customer", "company", "status", "doc_status":
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}
