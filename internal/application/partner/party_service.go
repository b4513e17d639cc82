package partner

import (
	"context"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// PartyService resolves the customer defaults copied onto selling documents
// and decides whether a customer may be transacted with
type PartyService struct {
	customerRepo partner.CustomerRepository
	groupRepo    partner.CustomerGroupRepository
	companyRepo  finance.CompanyRepository
	contactRepo  partner.ContactRepository
	addressRepo  partner.AddressRepository
	selling      SellingSettings
	accounts     AccountsSettings
}

// NewPartyService creates a new PartyService
func NewPartyService(
	customerRepo partner.CustomerRepository,
	groupRepo partner.CustomerGroupRepository,
	companyRepo finance.CompanyRepository,
	contactRepo partner.ContactRepository,
	addressRepo partner.AddressRepository,
	selling SellingSettings,
	accounts AccountsSettings,
) *PartyService {
	return &PartyService{
		customerRepo: customerRepo,
		groupRepo:    groupRepo,
		companyRepo:  companyRepo,
		contactRepo:  contactRepo,
		addressRepo:  addressRepo,
		selling:      selling,
		accounts:     accounts,
	}
}

// ValidateParty loads the customer and checks it accepts new transactions.
// Disabled fails before frozen; frozen is waived for the frozen accounts modifier.
func (s *PartyService) ValidateParty(ctx context.Context, tenantID uuid.UUID, customerName string, actor shared.Actor) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByName(ctx, tenantID, customerName)
	if err != nil {
		return nil, err
	}
	if err := customer.ValidateForTransaction(actor.HasRole(s.accounts.FrozenAccountsModifier)); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetPartyDetails returns the address, contact, pricing and sales team defaults
// for a customer. companyName may be empty.
func (s *PartyService) GetPartyDetails(ctx context.Context, tenantID uuid.UUID, customerName, companyName string) (*PartyDetails, error) {
	customer, err := s.customerRepo.FindByName(ctx, tenantID, customerName)
	if err != nil {
		return nil, err
	}

	details := &PartyDetails{
		Customer:      customer.Name,
		CustomerName:  customer.CustomerName,
		CustomerGroup: customer.CustomerGroup,
		Territory:     customer.Territory,
		SalesTeam:     toSalesTeamDTOs(customer.SalesTeam),
	}

	// Addresses come back primary first, then oldest first
	addresses, err := s.addressRepo.FindByLink(ctx, tenantID, partner.DocTypeCustomer, customer.Name)
	if err != nil {
		return nil, err
	}
	if len(addresses) > 0 {
		details.CustomerAddress = optional(addresses[0].Name)
		details.AddressDisplay = optional(addresses[0].Display())
	}
	for i := range addresses {
		if addresses[i].IsShippingAddress {
			details.ShippingAddressName = optional(addresses[i].Name)
			break
		}
	}

	contacts, err := s.contactRepo.FindByLink(ctx, tenantID, partner.DocTypeCustomer, customer.Name)
	if err != nil {
		return nil, err
	}
	if len(contacts) > 0 {
		c := contacts[0]
		details.ContactPerson = optional(c.Name)
		details.ContactDisplay = optional(c.FullName())
		details.ContactEmail = optional(c.EmailID)
		details.ContactMobile = optional(c.MobileNo)
		details.ContactPhone = optional(c.Phone)
		details.ContactDesignation = optional(c.Designation)
		details.ContactDepartment = optional(c.Department)
	}

	priceList, err := s.sellingPriceList(ctx, customer)
	if err != nil {
		return nil, err
	}
	details.SellingPriceList = optional(priceList)

	currency := customer.DefaultCurrency
	if currency == "" && companyName != "" {
		company, err := s.companyRepo.FindByName(ctx, tenantID, companyName)
		if err != nil {
			return nil, err
		}
		currency = company.DefaultCurrency
	}
	details.Currency = optional(currency)

	return details, nil
}

// sellingPriceList falls back from the customer to its group to the selling settings
func (s *PartyService) sellingPriceList(ctx context.Context, customer *partner.Customer) (string, error) {
	if customer.DefaultPriceList != "" {
		return customer.DefaultPriceList, nil
	}
	if customer.CustomerGroup != "" {
		group, err := s.groupRepo.FindByName(ctx, customer.TenantID, customer.CustomerGroup)
		switch {
		case err == nil && group.DefaultPriceList != "":
			return group.DefaultPriceList, nil
		case err != nil && !isNotFound(err):
			return "", err
		}
	}
	return s.selling.DefaultPriceList, nil
}
