package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditLimitValidator checks a proposed credit limit against what the customer already owes
type CreditLimitValidator interface {
	ValidateCreditLimitOnChange(ctx context.Context, customer *partner.Customer, newLimit decimal.Decimal) error
}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	groupRepo      partner.CustomerGroupRepository
	namingSeries   shared.NamingSeries
	creditLimits   CreditLimitValidator
	settings       SellingSettings
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	groupRepo partner.CustomerGroupRepository,
	namingSeries shared.NamingSeries,
	creditLimits CreditLimitValidator,
	settings SellingSettings,
	logger *zap.Logger,
) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		groupRepo:    groupRepo,
		namingSeries: namingSeries,
		creditLimits: creditLimits,
		settings:     settings,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customerName := partner.NormalizeName(req.CustomerName)

	// Fill classification defaults
	customerType := partner.CustomerType(req.CustomerType)
	if customerType == "" {
		customerType = partner.CustomerTypeCompany
	}
	group := req.CustomerGroup
	if group == "" {
		group = s.settings.DefaultCustomerGroup
	}
	territory := req.Territory
	if territory == "" {
		territory = s.settings.DefaultTerritory
	}
	if err := s.ensureGroupExists(ctx, tenantID, group); err != nil {
		return nil, err
	}

	// Assign the document name
	name, err := s.assignName(ctx, tenantID, req.Name, customerName)
	if err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(tenantID, name, customerName, customerType, group, territory)
	if err != nil {
		return nil, err
	}

	// Set optional fields
	customer.SetDefaults(req.DefaultPriceList, req.DefaultCurrency)
	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if len(req.SalesTeam) > 0 {
		if err := customer.SetSalesTeam(fromSalesTeamDTOs(req.SalesTeam)); err != nil {
			return nil, err
		}
	}
	if err := customer.SetTaxID(req.TaxID); err != nil {
		return nil, err
	}
	customer.SetNotes(req.Notes)
	if req.CreatedBy != nil {
		customer.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// assignName resolves the document name of a new customer. An explicit name
// must be free; otherwise the configured naming mode decides.
func (s *CustomerService) assignName(ctx context.Context, tenantID uuid.UUID, requested, customerName string) (string, error) {
	if requested != "" {
		name := partner.NormalizeName(requested)
		exists, err := s.customerRepo.ExistsByName(ctx, tenantID, name)
		if err != nil {
			return "", err
		}
		if exists {
			return "", shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Customer %s already exists", name))
		}
		return name, nil
	}

	if s.settings.CustomerNamingBy == partner.NamingByNamingSeries {
		n, err := s.namingSeries.Next(ctx, tenantID, s.settings.CustomerSeriesPrefix)
		if err != nil {
			return "", err
		}
		return shared.FormatSeriesName(s.settings.CustomerSeriesPrefix, n), nil
	}

	exists, err := s.customerRepo.ExistsByName(ctx, tenantID, customerName)
	if err != nil {
		return "", err
	}
	if !exists {
		return customerName, nil
	}
	taken, err := s.customerRepo.FindNamesWithPrefix(ctx, tenantID, partner.DuplicateNamePattern(customerName))
	if err != nil {
		return "", err
	}
	return partner.NextDuplicateName(customerName, taken), nil
}

// GetByName retrieves a customer by document name
func (s *CustomerService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a page of customers
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}.Normalize()

	if filter.CustomerGroup != "" {
		domainFilter.Filters["customer_group"] = filter.CustomerGroup
	}
	if filter.Territory != "" {
		domainFilter.Filters["territory"] = filter.Territory
	}
	if filter.CustomerType != "" {
		domainFilter.Filters["customer_type"] = filter.CustomerType
	}
	if filter.IsFrozen != nil {
		domainFilter.Filters["is_frozen"] = *filter.IsFrozen
	}
	if filter.Disabled != nil {
		domainFilter.Filters["disabled"] = *filter.Disabled
	}

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update applies a partial update. A changed credit limit must still cover
// the customer's outstanding for every company.
func (s *CustomerService) Update(ctx context.Context, tenantID uuid.UUID, name string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != customer.Version {
		return nil, shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("Customer %s has been modified after you opened it", name))
	}

	// Display name and type
	if req.CustomerName != nil || req.CustomerType != nil {
		customerName := customer.CustomerName
		if req.CustomerName != nil {
			customerName = partner.NormalizeName(*req.CustomerName)
		}
		customerType := customer.CustomerType
		if req.CustomerType != nil {
			customerType = partner.CustomerType(*req.CustomerType)
		}
		if err := customer.Update(customerName, customerType); err != nil {
			return nil, err
		}
	}

	// Classification
	if req.CustomerGroup != nil || req.Territory != nil {
		group := customer.CustomerGroup
		if req.CustomerGroup != nil && *req.CustomerGroup != group {
			group = *req.CustomerGroup
			if err := s.ensureGroupExists(ctx, tenantID, group); err != nil {
				return nil, err
			}
		}
		territory := customer.Territory
		if req.Territory != nil {
			territory = *req.Territory
		}
		if err := customer.SetClassification(group, territory); err != nil {
			return nil, err
		}
	}

	// Pricing defaults
	if req.DefaultPriceList != nil || req.DefaultCurrency != nil {
		priceList := customer.DefaultPriceList
		if req.DefaultPriceList != nil {
			priceList = *req.DefaultPriceList
		}
		currency := customer.DefaultCurrency
		if req.DefaultCurrency != nil {
			currency = *req.DefaultCurrency
		}
		customer.SetDefaults(priceList, currency)
	}

	// Credit limit must cover current outstanding
	if req.CreditLimit != nil && !req.CreditLimit.Equal(customer.CreditLimit) {
		if err := s.creditLimits.ValidateCreditLimitOnChange(ctx, customer, *req.CreditLimit); err != nil {
			return nil, err
		}
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if req.SalesTeam != nil {
		if err := customer.SetSalesTeam(fromSalesTeamDTOs(req.SalesTeam)); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		if err := customer.SetTaxID(*req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Freeze blocks the customer for users without the frozen accounts modifier role
func (s *CustomerService) Freeze(ctx context.Context, tenantID uuid.UUID, name string) (*CustomerResponse, error) {
	return s.changeState(ctx, tenantID, name, (*partner.Customer).Freeze)
}

// Unfreeze lifts a freeze
func (s *CustomerService) Unfreeze(ctx context.Context, tenantID uuid.UUID, name string) (*CustomerResponse, error) {
	return s.changeState(ctx, tenantID, name, (*partner.Customer).Unfreeze)
}

// Disable blocks every new transaction against the customer
func (s *CustomerService) Disable(ctx context.Context, tenantID uuid.UUID, name string) (*CustomerResponse, error) {
	return s.changeState(ctx, tenantID, name, (*partner.Customer).Disable)
}

// Enable re-enables a disabled customer
func (s *CustomerService) Enable(ctx context.Context, tenantID uuid.UUID, name string) (*CustomerResponse, error) {
	return s.changeState(ctx, tenantID, name, (*partner.Customer).Enable)
}

func (s *CustomerService) changeState(ctx context.Context, tenantID uuid.UUID, name string, apply func(*partner.Customer) error) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := apply(customer); err != nil {
		return nil, err
	}
	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Rename changes a customer's document name and rewrites every record that
// links to it. With merge, the customer is folded into the existing target.
func (s *CustomerService) Rename(ctx context.Context, tenantID uuid.UUID, oldName string, req RenameCustomerRequest) (*CustomerResponse, error) {
	newName := partner.NormalizeName(req.NewName)
	if newName == oldName {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "New name must differ from the current name")
	}

	customer, err := s.customerRepo.FindByName(ctx, tenantID, oldName)
	if err != nil {
		return nil, err
	}

	// Check the target
	exists, err := s.customerRepo.ExistsByName(ctx, tenantID, newName)
	if err != nil {
		return nil, err
	}
	if exists && !req.Merge {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("Another Customer with name %s exists, select another name", newName))
	}
	if !exists && req.Merge {
		return nil, shared.NewDomainError(shared.CodeNotFound,
			fmt.Sprintf("Customer %s does not exist, select a new target to merge", newName))
	}

	syncName := !req.Merge && s.settings.CustomerNamingBy == partner.NamingByCustomerName
	if err := s.customerRepo.Rename(ctx, tenantID, partner.RenameCustomer{
		OldName:          oldName,
		NewName:          newName,
		Merge:            req.Merge,
		SyncCustomerName: syncName,
	}); err != nil {
		return nil, err
	}

	renamed, err := s.customerRepo.FindByName(ctx, tenantID, newName)
	if err != nil {
		return nil, err
	}
	renamed.AddDomainEvent(partner.NewCustomerRenamedEvent(renamed, oldName, req.Merge))
	if req.Merge {
		customer.MarkDeleted()
		s.publish(ctx, customer)
	}
	s.publish(ctx, renamed)

	s.logger.Info("customer renamed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("old_name", oldName),
		zap.String("new_name", newName),
		zap.Bool("merge", req.Merge),
	)

	response := ToCustomerResponse(renamed)
	return &response, nil
}

// Delete removes a customer that has no transactions, along with its comments,
// its links and any contact or address left without links
func (s *CustomerService) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	customer, err := s.customerRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return err
	}

	linked, err := s.customerRepo.HasTransactions(ctx, tenantID, name)
	if err != nil {
		return err
	}
	if linked {
		return shared.NewDomainError(shared.CodeLinkExists,
			fmt.Sprintf("Cannot delete or cancel because Customer %s is linked with transactions", name))
	}

	if err := s.customerRepo.DeleteWithDependents(ctx, tenantID, name); err != nil {
		return err
	}

	customer.MarkDeleted()
	s.publish(ctx, customer)
	return nil
}

func (s *CustomerService) ensureGroupExists(ctx context.Context, tenantID uuid.UUID, group string) error {
	exists, err := s.groupRepo.ExistsByName(ctx, tenantID, group)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Could not find Customer Group: %s", group))
	}
	return nil
}

// publish sends pending events; failures are logged, the operation already committed
func (s *CustomerService) publish(ctx context.Context, customer *partner.Customer) {
	publishEvents(ctx, s.eventPublisher, s.logger, customer)
}

func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	if publisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
	aggregate.ClearDomainEvents()
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
