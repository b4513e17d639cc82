package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByName finds a contact and its links
func (r *GormContactRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Contact, error) {
	db := r.db.WithContext(ctx)
	var model models.ContactModel
	if err := db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	links, err := loadLinks(db, models.ParentTypeContact, []uuid.UUID{model.ID})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(links[model.ID]), nil
}

// FindByLink lists contacts linked to doctype/name, primary first, then oldest first
func (r *GormContactRepository) FindByLink(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]partner.Contact, error) {
	db := r.db.WithContext(ctx)
	var contactModels []models.ContactModel
	if err := db.Where("tenant_id = ? AND id IN (?)", tenantID, linkedParents(db, tenantID, models.ParentTypeContact, doctype, name)).
		Order("is_primary_contact DESC, created_at ASC").
		Find(&contactModels).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(contactModels))
	for i := range contactModels {
		ids[i] = contactModels[i].ID
	}
	links, err := loadLinks(db, models.ParentTypeContact, ids)
	if err != nil {
		return nil, err
	}

	contacts := make([]partner.Contact, len(contactModels))
	for i := range contactModels {
		contacts[i] = *contactModels[i].ToDomain(links[contactModels[i].ID])
	}
	return contacts, nil
}

// FindNamesWithPrefix lists contact names equal to prefix or of the form prefix-<suffix>
func (r *GormContactRepository) FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.ContactModel{}).
		Where(`tenant_id = ? AND (name = ? OR name LIKE ? ESCAPE '\')`, tenantID, prefix, prefixPattern(prefix+"-")).
		Pluck("name", &names).Error
	return names, err
}

// ClearPrimary unsets the primary flag on every contact linked to doctype/name
func (r *GormContactRepository) ClearPrimary(ctx context.Context, tenantID uuid.UUID, doctype, name string) error {
	db := r.db.WithContext(ctx)
	return db.Model(&models.ContactModel{}).
		Where("tenant_id = ? AND id IN (?)", tenantID, linkedParents(db, tenantID, models.ParentTypeContact, doctype, name)).
		Update("is_primary_contact", false).Error
}

// Save creates or updates a contact together with its links
func (r *GormContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.ContactModelFromDomain(contact)).Error; err != nil {
			return err
		}
		rows := models.DynamicLinkModelsFromDomain(contact.TenantID, models.ParentTypeContact, contact.ID, contact.Links)
		return replaceLinks(tx, rows, models.ParentTypeContact, contact.ID)
	})
}

// Delete deletes a contact and its links
func (r *GormContactRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ContactModel
		if err := tx.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
			return translateError(err)
		}
		if err := deleteLinks(tx, models.ParentTypeContact, model.ID); err != nil {
			return err
		}
		return tx.Delete(&models.ContactModel{}, "id = ?", model.ID).Error
	})
}

var _ partner.ContactRepository = (*GormContactRepository)(nil)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByName finds an address and its links
func (r *GormAddressRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Address, error) {
	db := r.db.WithContext(ctx)
	var model models.AddressModel
	if err := db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	links, err := loadLinks(db, models.ParentTypeAddress, []uuid.UUID{model.ID})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(links[model.ID]), nil
}

// FindByLink lists addresses linked to doctype/name, primary first, then oldest first
func (r *GormAddressRepository) FindByLink(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]partner.Address, error) {
	db := r.db.WithContext(ctx)
	var addressModels []models.AddressModel
	if err := db.Where("tenant_id = ? AND id IN (?)", tenantID, linkedParents(db, tenantID, models.ParentTypeAddress, doctype, name)).
		Order("is_primary_address DESC, created_at ASC").
		Find(&addressModels).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(addressModels))
	for i := range addressModels {
		ids[i] = addressModels[i].ID
	}
	links, err := loadLinks(db, models.ParentTypeAddress, ids)
	if err != nil {
		return nil, err
	}

	addresses := make([]partner.Address, len(addressModels))
	for i := range addressModels {
		addresses[i] = *addressModels[i].ToDomain(links[addressModels[i].ID])
	}
	return addresses, nil
}

// FindNamesWithPrefix lists address names equal to prefix or of the form prefix-<suffix>
func (r *GormAddressRepository) FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.AddressModel{}).
		Where(`tenant_id = ? AND (name = ? OR name LIKE ? ESCAPE '\')`, tenantID, prefix, prefixPattern(prefix+"-")).
		Pluck("name", &names).Error
	return names, err
}

// ClearPrimary unsets the primary flag on every address linked to doctype/name
func (r *GormAddressRepository) ClearPrimary(ctx context.Context, tenantID uuid.UUID, doctype, name string) error {
	db := r.db.WithContext(ctx)
	return db.Model(&models.AddressModel{}).
		Where("tenant_id = ? AND id IN (?)", tenantID, linkedParents(db, tenantID, models.ParentTypeAddress, doctype, name)).
		Update("is_primary_address", false).Error
}

// Save creates or updates an address together with its links
func (r *GormAddressRepository) Save(ctx context.Context, address *partner.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.AddressModelFromDomain(address)).Error; err != nil {
			return err
		}
		rows := models.DynamicLinkModelsFromDomain(address.TenantID, models.ParentTypeAddress, address.ID, address.Links)
		return replaceLinks(tx, rows, models.ParentTypeAddress, address.ID)
	})
}

// Delete deletes an address and its links
func (r *GormAddressRepository) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.AddressModel
		if err := tx.Where("tenant_id = ? AND name = ?", tenantID, name).First(&model).Error; err != nil {
			return translateError(err)
		}
		if err := deleteLinks(tx, models.ParentTypeAddress, model.ID); err != nil {
			return err
		}
		return tx.Delete(&models.AddressModel{}, "id = ?", model.ID).Error
	})
}

var _ partner.AddressRepository = (*GormAddressRepository)(nil)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save stores a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *partner.Comment) error {
	return r.db.WithContext(ctx).Save(models.CommentModelFromDomain(comment)).Error
}

// FindByReference lists comments on doctype/name, newest first
func (r *GormCommentRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, doctype, name string) ([]partner.Comment, error) {
	var commentModels []models.CommentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_doctype = ? AND reference_name = ?", tenantID, doctype, name).
		Order("created_at DESC").
		Find(&commentModels).Error; err != nil {
		return nil, err
	}
	comments := make([]partner.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = *commentModels[i].ToDomain()
	}
	return comments, nil
}

// FindLatest returns the newest comment of commentType on doctype/name
func (r *GormCommentRepository) FindLatest(ctx context.Context, tenantID uuid.UUID, commentType partner.CommentType, doctype, name string) (*partner.Comment, error) {
	var model models.CommentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND comment_type = ? AND reference_doctype = ? AND reference_name = ?", tenantID, commentType, doctype, name).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

var _ partner.CommentRepository = (*GormCommentRepository)(nil)
