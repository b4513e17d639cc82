package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryNoteRepository implements DeliveryNoteRepository using GORM
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// FindByName finds a delivery note and its rows
func (r *GormDeliveryNoteRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*trade.DeliveryNote, error) {
	db := r.db.WithContext(ctx)
	var model models.DeliveryNoteModel
	if err := db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	items, err := loadItems(db, trade.DocTypeDeliveryNote, []uuid.UUID{model.ID})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(items[model.ID]), nil
}

// FindAllForTenant lists delivery notes for a tenant
func (r *GormDeliveryNoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.DeliveryNote, error) {
	db := r.db.WithContext(ctx)
	query := applyDocumentFilter(db.Model(&models.DeliveryNoteModel{}).Where("tenant_id = ?", tenantID), filter)
	return r.find(db, paginate(query, filter, SalesDocumentSortFields))
}

// CountForTenant counts delivery notes for a tenant
func (r *GormDeliveryNoteRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := applyDocumentFilter(r.db.WithContext(ctx).Model(&models.DeliveryNoteModel{}).Where("tenant_id = ?", tenantID), filter).
		Count(&count).Error
	return count, err
}

// FindOpen lists submitted, not closed notes of a customer
func (r *GormDeliveryNoteRepository) FindOpen(ctx context.Context, tenantID uuid.UUID, customer, company string) ([]trade.DeliveryNote, error) {
	db := r.db.WithContext(ctx)
	return r.find(db, db.Model(&models.DeliveryNoteModel{}).
		Where("tenant_id = ? AND customer = ? AND company = ?", tenantID, customer, company).
		Where("doc_status = ? AND status <> ?", int(trade.DocStatusSubmitted), trade.StatusClosed).
		Order("posting_date ASC"))
}

// Save creates or overwrites a note with its rows
func (r *GormDeliveryNoteRepository) Save(ctx context.Context, note *trade.DeliveryNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocument(tx, models.DeliveryNoteModelFromDomain(note), &note.SalesDocument)
	})
}

// SaveWithLock saves only if the stored version still matches, then bumps it
func (r *GormDeliveryNoteRepository) SaveWithLock(ctx context.Context, note *trade.DeliveryNote) error {
	model := models.DeliveryNoteModelFromDomain(note)
	model.Version = note.Version + 1
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocumentWithLock(tx, model, &note.SalesDocument)
	})
}

// Delete removes a note and its rows
func (r *GormDeliveryNoteRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteDocument(tx, &models.DeliveryNoteModel{}, trade.DocTypeDeliveryNote, tenantID, name)
	})
}

func (r *GormDeliveryNoteRepository) find(db, query *gorm.DB) ([]trade.DeliveryNote, error) {
	var noteModels []models.DeliveryNoteModel
	if err := query.Find(&noteModels).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(noteModels))
	for i := range noteModels {
		ids[i] = noteModels[i].ID
	}
	items, err := loadItems(db, trade.DocTypeDeliveryNote, ids)
	if err != nil {
		return nil, err
	}
	notes := make([]trade.DeliveryNote, len(noteModels))
	for i := range noteModels {
		notes[i] = *noteModels[i].ToDomain(items[noteModels[i].ID])
	}
	return notes, nil
}

var _ trade.DeliveryNoteRepository = (*GormDeliveryNoteRepository)(nil)
