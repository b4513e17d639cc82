package partner

import (
	"context"
	"fmt"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactService manages contacts linked to customers
type ContactService struct {
	contactRepo  partner.ContactRepository
	customerRepo partner.CustomerRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo partner.ContactRepository, customerRepo partner.CustomerRepository) *ContactService {
	return &ContactService{
		contactRepo:  contactRepo,
		customerRepo: customerRepo,
	}
}

// Create creates a contact named "<full name>-<first link>", suffixed with -N on clash
func (s *ContactService) Create(ctx context.Context, tenantID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	links := fromLinkDTOs(req.Links)
	if err := ensureLinkedCustomersExist(ctx, s.customerRepo, tenantID, links); err != nil {
		return nil, err
	}

	contact, err := partner.NewContact(tenantID, req.FirstName, req.LastName, links)
	if err != nil {
		return nil, err
	}
	if err := contact.SetDetails(partner.ContactDetails{
		EmailID:     req.EmailID,
		Phone:       req.Phone,
		MobileNo:    req.MobileNo,
		Designation: req.Designation,
		Department:  req.Department,
	}); err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		contact.SetCreatedBy(*req.CreatedBy)
	}

	// Name the contact
	base := partner.ContactBaseName(contact)
	taken, err := s.contactRepo.FindNamesWithPrefix(ctx, tenantID, base)
	if err != nil {
		return nil, err
	}
	contact.Name = partner.AppendNumberIfTaken(base, taken)

	// Only one primary contact per linked document
	if req.IsPrimaryContact {
		if err := s.clearPrimary(ctx, tenantID, contact.Links); err != nil {
			return nil, err
		}
		contact.SetPrimary(true)
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// GetByName retrieves a contact
func (s *ContactService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// SetPrimary makes the contact the primary one of every document it links to
func (s *ContactService) SetPrimary(ctx context.Context, tenantID uuid.UUID, name string) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := s.clearPrimary(ctx, tenantID, contact.Links); err != nil {
		return nil, err
	}
	contact.SetPrimary(true)
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	return s.contactRepo.Delete(ctx, tenantID, name)
}

// ListForCustomer lists the contacts linked to a customer, primary first
func (s *ContactService) ListForCustomer(ctx context.Context, tenantID uuid.UUID, customer string) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.FindByLink(ctx, tenantID, partner.DocTypeCustomer, customer)
	if err != nil {
		return nil, err
	}
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses, nil
}

func (s *ContactService) clearPrimary(ctx context.Context, tenantID uuid.UUID, links partner.Links) error {
	for _, link := range links {
		if err := s.contactRepo.ClearPrimary(ctx, tenantID, link.LinkDoctype, link.LinkName); err != nil {
			return err
		}
	}
	return nil
}

// AddressService manages addresses linked to customers
type AddressService struct {
	addressRepo  partner.AddressRepository
	customerRepo partner.CustomerRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo partner.AddressRepository, customerRepo partner.CustomerRepository) *AddressService {
	return &AddressService{
		addressRepo:  addressRepo,
		customerRepo: customerRepo,
	}
}

// Create creates an address named "<title>-<type>", suffixed with -N on clash
func (s *AddressService) Create(ctx context.Context, tenantID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	links := fromLinkDTOs(req.Links)
	if err := ensureLinkedCustomersExist(ctx, s.customerRepo, tenantID, links); err != nil {
		return nil, err
	}

	address, err := partner.NewAddress(tenantID, req.AddressTitle, partner.AddressType(req.AddressType), partner.AddressLines{
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
	}, links)
	if err != nil {
		return nil, err
	}
	if err := address.SetReachability(req.Phone, req.EmailID); err != nil {
		return nil, err
	}
	if req.IsShippingAddress {
		address.SetShipping(true)
	}
	if req.CreatedBy != nil {
		address.SetCreatedBy(*req.CreatedBy)
	}

	base := partner.AddressBaseName(address)
	taken, err := s.addressRepo.FindNamesWithPrefix(ctx, tenantID, base)
	if err != nil {
		return nil, err
	}
	address.Name = partner.AppendNumberIfTaken(base, taken)

	if req.IsPrimaryAddress {
		if err := s.clearPrimary(ctx, tenantID, address.Links); err != nil {
			return nil, err
		}
		address.SetPrimary(true)
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// GetByName retrieves an address
func (s *AddressService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// SetPrimary makes the address the primary one of every document it links to
func (s *AddressService) SetPrimary(ctx context.Context, tenantID uuid.UUID, name string) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := s.clearPrimary(ctx, tenantID, address.Links); err != nil {
		return nil, err
	}
	address.SetPrimary(true)
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	return s.addressRepo.Delete(ctx, tenantID, name)
}

// ListForCustomer lists the addresses linked to a customer, primary first
func (s *AddressService) ListForCustomer(ctx context.Context, tenantID uuid.UUID, customer string) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByLink(ctx, tenantID, partner.DocTypeCustomer, customer)
	if err != nil {
		return nil, err
	}
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses, nil
}

func (s *AddressService) clearPrimary(ctx context.Context, tenantID uuid.UUID, links partner.Links) error {
	for _, link := range links {
		if err := s.addressRepo.ClearPrimary(ctx, tenantID, link.LinkDoctype, link.LinkName); err != nil {
			return err
		}
	}
	return nil
}

func ensureLinkedCustomersExist(ctx context.Context, repo partner.CustomerRepository, tenantID uuid.UUID, links partner.Links) error {
	for _, link := range links {
		if link.LinkDoctype != partner.DocTypeCustomer {
			continue
		}
		exists, err := repo.ExistsByName(ctx, tenantID, link.LinkName)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Could not find Customer: %s", link.LinkName))
		}
	}
	return nil
}
