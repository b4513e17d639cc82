package finance

import (
	"context"
	"fmt"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles company master data
type CompanyService struct {
	companyRepo finance.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo finance.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// Create creates a new company
func (s *CompanyService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCompanyRequest) (*CompanyResponse, error) {
	exists, err := s.companyRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Company %s already exists", req.Name))
	}

	company, err := finance.NewCompany(tenantID, req.Name, req.Abbr, req.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if req.CreditLimit != nil {
		if err := company.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// GetByName retrieves a company by name
func (s *CompanyService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// List returns every company of the tenant
func (s *CompanyService) List(ctx context.Context, tenantID uuid.UUID) ([]CompanyResponse, error) {
	companies, err := s.companyRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses, nil
}

// UpdateCreditLimit changes the company-wide fallback credit limit
func (s *CompanyService) UpdateCreditLimit(ctx context.Context, tenantID uuid.UUID, name string, req UpdateCompanyCreditLimitRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := company.SetCreditLimit(req.CreditLimit); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}
