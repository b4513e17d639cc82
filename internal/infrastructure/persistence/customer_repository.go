package persistence

import (
	"context"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: tx}
}

// FindByName finds a customer by its document name within a tenant
func (r *GormCustomerRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all customers for a tenant
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := paginate(query, filter, CustomerSortFields).Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// CountForTenant counts customers for a tenant
func (r *GormCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("tenant_id = ?", tenantID), filter).
		Count(&count).Error
	return count, err
}

// ExistsByName checks if a customer with the given document name exists
func (r *GormCustomerRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindNamesWithPrefix lists document names starting with prefix
func (r *GormCustomerRepository) FindNamesWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where(`tenant_id = ? AND name LIKE ? ESCAPE '\'`, tenantID, prefixPattern(prefix)).
		Pluck("name", &names).Error
	return names, err
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(models.CustomerModelFromDomain(customer)).Error
}

// SaveWithLock updates the customer only if its stored version still matches,
// then advances the version
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	model.Version = customer.Version + 1
	result := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ? AND tenant_id = ? AND version = ?", customer.ID, customer.TenantID, customer.Version).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict, "Customer "+customer.Name+" has been modified by another transaction")
	}
	customer.Version = model.Version
	return nil
}

// Rename changes the document name and re-points every record that links to it.
// With Merge the old customer row is removed instead of renamed.
func (r *GormCustomerRepository) Rename(ctx context.Context, tenantID uuid.UUID, rename partner.RenameCustomer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.CustomerModel
		if err := tx.Where("tenant_id = ? AND name = ?", tenantID, rename.OldName).First(&old).Error; err != nil {
			return translateError(err)
		}

		if rename.Merge {
			var count int64
			if err := tx.Model(&models.CustomerModel{}).
				Where("tenant_id = ? AND name = ?", tenantID, rename.NewName).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.NewDomainError(shared.CodeNotFound, "Customer "+rename.NewName+" does not exist to merge into")
			}
			if err := tx.Delete(&models.CustomerModel{}, "id = ?", old.ID).Error; err != nil {
				return err
			}
		} else {
			updates := map[string]any{"name": rename.NewName, "version": gorm.Expr("version + 1")}
			if rename.SyncCustomerName {
				updates["customer_name"] = rename.NewName
			}
			if err := tx.Model(&models.CustomerModel{}).Where("id = ?", old.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		return relinkCustomer(tx, tenantID, rename.OldName, rename.NewName, rename.Merge)
	})
}

// relinkCustomer rewrites every stored reference to a customer name
func relinkCustomer(tx *gorm.DB, tenantID uuid.UUID, oldName, newName string, merge bool) error {
	if err := tx.Model(&models.CommentModel{}).
		Where("tenant_id = ? AND reference_doctype = ? AND reference_name = ?", tenantID, partner.DocTypeCustomer, oldName).
		Update("reference_name", newName).Error; err != nil {
		return err
	}

	if merge {
		// a contact linked to both customers keeps a single link after the merge
		linkedToTarget := tx.Model(&models.DynamicLinkModel{}).
			Select("parent_id").
			Where("tenant_id = ? AND link_doctype = ? AND link_name = ?", tenantID, partner.DocTypeCustomer, newName)
		if err := tx.Where("tenant_id = ? AND link_doctype = ? AND link_name = ? AND parent_id IN (?)",
			tenantID, partner.DocTypeCustomer, oldName, linkedToTarget).
			Delete(&models.DynamicLinkModel{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(&models.DynamicLinkModel{}).
		Where("tenant_id = ? AND link_doctype = ? AND link_name = ?", tenantID, partner.DocTypeCustomer, oldName).
		Update("link_name", newName).Error; err != nil {
		return err
	}

	for _, model := range []any{&models.SalesOrderModel{}, &models.DeliveryNoteModel{}, &models.SalesInvoiceModel{}} {
		if err := tx.Model(model).
			Where("tenant_id = ? AND customer = ?", tenantID, oldName).
			Update("customer", newName).Error; err != nil {
			return err
		}
	}

	return tx.Model(&models.GLEntryModel{}).
		Where("tenant_id = ? AND party_type = ? AND party = ?", tenantID, finance.PartyTypeCustomer, oldName).
		Update("party", newName).Error
}

// HasTransactions reports whether a non-cancelled selling document or a ledger entry references the customer
func (r *GormCustomerRepository) HasTransactions(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	db := r.db.WithContext(ctx)
	for _, model := range []any{&models.SalesOrderModel{}, &models.DeliveryNoteModel{}, &models.SalesInvoiceModel{}} {
		var count int64
		if err := db.Model(model).
			Where("tenant_id = ? AND customer = ? AND doc_status < ?", tenantID, name, 2).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}

	var count int64
	if err := db.Model(&models.GLEntryModel{}).
		Where("tenant_id = ? AND party_type = ? AND party = ?", tenantID, finance.PartyTypeCustomer, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteWithDependents deletes the customer, its comments and its dynamic links.
// A contact or address left without any link is deleted too.
func (r *GormCustomerRepository) DeleteWithDependents(ctx context.Context, tenantID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND name = ?", tenantID, name).Delete(&models.CustomerModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("tenant_id = ? AND reference_doctype = ? AND reference_name = ?", tenantID, partner.DocTypeCustomer, name).
			Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}

		var links []models.DynamicLinkModel
		if err := tx.Where("tenant_id = ? AND link_doctype = ? AND link_name = ?", tenantID, partner.DocTypeCustomer, name).
			Find(&links).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		if err := tx.Where("tenant_id = ? AND link_doctype = ? AND link_name = ?", tenantID, partner.DocTypeCustomer, name).
			Delete(&models.DynamicLinkModel{}).Error; err != nil {
			return err
		}

		for _, link := range links {
			var remaining int64
			if err := tx.Model(&models.DynamicLinkModel{}).
				Where("parent_type = ? AND parent_id = ?", link.ParentType, link.ParentID).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining > 0 {
				continue
			}
			var orphan any = &models.ContactModel{}
			if link.ParentType == models.ParentTypeAddress {
				orphan = &models.AddressModel{}
			}
			if err := tx.Delete(orphan, "id = ?", link.ParentID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// applyFilter applies search and field filters
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(customer_name) LIKE ?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_group", "territory", "customer_type":
			query = query.Where(key+" = ?", value)
		case "is_frozen", "disabled":
			query = query.Where(key+" = ?", value == true)
		}
	}

	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
