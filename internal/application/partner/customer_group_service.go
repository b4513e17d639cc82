package partner

import (
	"context"
	"fmt"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerGroupService manages customer groups
type CustomerGroupService struct {
	groupRepo partner.CustomerGroupRepository
}

// NewCustomerGroupService creates a new CustomerGroupService
func NewCustomerGroupService(groupRepo partner.CustomerGroupRepository) *CustomerGroupService {
	return &CustomerGroupService{groupRepo: groupRepo}
}

// Create creates a customer group
func (s *CustomerGroupService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerGroupRequest) (*CustomerGroupResponse, error) {
	exists, err := s.groupRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Customer Group %s already exists", req.Name))
	}
	if req.ParentGroup != "" {
		parentExists, err := s.groupRepo.ExistsByName(ctx, tenantID, req.ParentGroup)
		if err != nil {
			return nil, err
		}
		if !parentExists {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Could not find Customer Group: %s", req.ParentGroup))
		}
	}

	group, err := partner.NewCustomerGroup(tenantID, req.Name, req.ParentGroup)
	if err != nil {
		return nil, err
	}
	if req.CreditLimit != nil {
		if err := group.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	group.SetDefaultPriceList(req.DefaultPriceList)

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}
	response := ToCustomerGroupResponse(group)
	return &response, nil
}

// GetByName retrieves a customer group
func (s *CustomerGroupService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*CustomerGroupResponse, error) {
	group, err := s.groupRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToCustomerGroupResponse(group)
	return &response, nil
}

// List lists every customer group of the tenant
func (s *CustomerGroupService) List(ctx context.Context, tenantID uuid.UUID) ([]CustomerGroupResponse, error) {
	groups, err := s.groupRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]CustomerGroupResponse, len(groups))
	for i := range groups {
		responses[i] = ToCustomerGroupResponse(&groups[i])
	}
	return responses, nil
}

// Update changes the credit limit and price list inherited by members
func (s *CustomerGroupService) Update(ctx context.Context, tenantID uuid.UUID, name string, req UpdateCustomerGroupRequest) (*CustomerGroupResponse, error) {
	group, err := s.groupRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if req.CreditLimit != nil {
		if err := group.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.DefaultPriceList != nil {
		group.SetDefaultPriceList(*req.DefaultPriceList)
	}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}
	response := ToCustomerGroupResponse(group)
	return &response, nil
}
