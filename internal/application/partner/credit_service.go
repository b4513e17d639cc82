package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditService resolves credit limits and outstanding balances and enforces
// the limit when selling documents are submitted
type CreditService struct {
	customerRepo partner.CustomerRepository
	groupRepo    partner.CustomerGroupRepository
	companyRepo  finance.CompanyRepository
	glRepo       finance.GLEntryRepository
	orderRepo    trade.SalesOrderRepository
	noteRepo     trade.DeliveryNoteRepository
	invoiceRepo  trade.SalesInvoiceRepository
	accounts     AccountsSettings
	logger       *zap.Logger
}

// NewCreditService creates a new CreditService
func NewCreditService(
	customerRepo partner.CustomerRepository,
	groupRepo partner.CustomerGroupRepository,
	companyRepo finance.CompanyRepository,
	glRepo finance.GLEntryRepository,
	orderRepo trade.SalesOrderRepository,
	noteRepo trade.DeliveryNoteRepository,
	invoiceRepo trade.SalesInvoiceRepository,
	accounts AccountsSettings,
	logger *zap.Logger,
) *CreditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreditService{
		customerRepo: customerRepo,
		groupRepo:    groupRepo,
		companyRepo:  companyRepo,
		glRepo:       glRepo,
		orderRepo:    orderRepo,
		noteRepo:     noteRepo,
		invoiceRepo:  invoiceRepo,
		accounts:     accounts,
		logger:       logger,
	}
}

// GetCreditLimit returns the first positive limit among the customer's own,
// its group's and the company's. Zero means no limit.
func (s *CreditService) GetCreditLimit(ctx context.Context, tenantID uuid.UUID, customerName, companyName string) (decimal.Decimal, error) {
	customer, err := s.customerRepo.FindByName(ctx, tenantID, customerName)
	if err != nil {
		return decimal.Zero, err
	}
	return s.creditLimitFor(ctx, customer, companyName)
}

func (s *CreditService) creditLimitFor(ctx context.Context, customer *partner.Customer, companyName string) (decimal.Decimal, error) {
	if customer.HasCreditLimit() {
		return customer.CreditLimit, nil
	}

	var group *partner.CustomerGroup
	if customer.CustomerGroup != "" {
		g, err := s.groupRepo.FindByName(ctx, customer.TenantID, customer.CustomerGroup)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, err
		}
		group = g
	}

	companyLimit := decimal.Zero
	if companyName != "" {
		company, err := s.companyRepo.FindByName(ctx, customer.TenantID, companyName)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, err
		}
		if company != nil {
			companyLimit = company.CreditLimit
		}
	}

	return customer.EffectiveCreditLimit(group, companyLimit), nil
}

// GetCustomerOutstanding sums the customer's ledger balance, the unbilled part
// of open sales orders and the uninvoiced rows of open delivery notes
func (s *CreditService) GetCustomerOutstanding(ctx context.Context, tenantID uuid.UUID, customerName, companyName string) (decimal.Decimal, error) {
	// Ledger balance
	outstanding, err := s.glRepo.PartyBalance(ctx, tenantID, customerName, companyName)
	if err != nil {
		return decimal.Zero, err
	}

	// Sales orders not yet fully billed
	orders, err := s.orderRepo.FindUnbilled(ctx, tenantID, customerName, companyName)
	if err != nil {
		return decimal.Zero, err
	}
	for i := range orders {
		outstanding = outstanding.Add(orders[i].UnbilledAmount())
	}

	// Delivery note rows shipped without an order or invoice
	notes, err := s.noteRepo.FindOpen(ctx, tenantID, customerName, companyName)
	if err != nil {
		return decimal.Zero, err
	}
	var rowIDs []uuid.UUID
	for i := range notes {
		for _, row := range notes[i].UnbilledRows() {
			rowIDs = append(rowIDs, row.ID)
		}
	}
	if len(rowIDs) == 0 {
		return outstanding, nil
	}
	billed, err := s.invoiceRepo.BilledByDeliveryNoteRows(ctx, tenantID, rowIDs)
	if err != nil {
		return decimal.Zero, err
	}
	for i := range notes {
		outstanding = outstanding.Add(notes[i].UnbilledAmount(billed))
	}

	return outstanding, nil
}

// CheckCreditLimit fails with CREDIT_LIMIT_EXCEEDED when outstanding plus
// additional exceeds the customer's limit. Credit controllers pass with a warning.
func (s *CreditService) CheckCreditLimit(ctx context.Context, tenantID uuid.UUID, customerName, companyName string, additional decimal.Decimal, actor shared.Actor) error {
	limit, err := s.GetCreditLimit(ctx, tenantID, customerName, companyName)
	if err != nil {
		return err
	}
	if !limit.IsPositive() {
		return nil
	}

	outstanding, err := s.GetCustomerOutstanding(ctx, tenantID, customerName, companyName)
	if err != nil {
		return err
	}
	if additional.IsPositive() {
		outstanding = outstanding.Add(additional)
	}
	if !outstanding.GreaterThan(limit) {
		return nil
	}

	msg := fmt.Sprintf("Credit limit has been crossed for customer %s (%s/%s)",
		customerName, outstanding.StringFixed(2), limit.StringFixed(2))
	if actor.HasRole(s.accounts.CreditController) {
		s.logger.Warn("credit limit bypassed",
			zap.String("customer", customerName),
			zap.String("company", companyName),
			zap.String("user", actor.Display()),
			zap.String("outstanding", outstanding.StringFixed(2)),
			zap.String("credit_limit", limit.StringFixed(2)),
		)
		return nil
	}
	return shared.NewDomainError(shared.CodeCreditLimitExceeded, msg)
}

// ValidateCreditLimitOnChange rejects a new limit that is below the customer's
// outstanding for any company. A zero limit means inherit and always passes.
func (s *CreditService) ValidateCreditLimitOnChange(ctx context.Context, customer *partner.Customer, newLimit decimal.Decimal) error {
	if newLimit.IsZero() {
		return nil
	}

	companies, err := s.companyRepo.FindAllForTenant(ctx, customer.TenantID)
	if err != nil {
		return err
	}
	for _, company := range companies {
		outstanding, err := s.GetCustomerOutstanding(ctx, customer.TenantID, customer.Name, company.Name)
		if err != nil {
			return err
		}
		if newLimit.LessThan(outstanding) {
			return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf(
				"New credit limit is less than current outstanding amount for the customer. Credit limit has to be atleast %s",
				outstanding.StringFixed(2)))
		}
	}
	return nil
}

// GetCreditSummary reports limit, outstanding and headroom for a customer and company
func (s *CreditService) GetCreditSummary(ctx context.Context, tenantID uuid.UUID, customerName, companyName string) (*CreditSummary, error) {
	limit, err := s.GetCreditLimit(ctx, tenantID, customerName, companyName)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.GetCustomerOutstanding(ctx, tenantID, customerName, companyName)
	if err != nil {
		return nil, err
	}

	summary := &CreditSummary{
		Customer:    customerName,
		Company:     companyName,
		CreditLimit: limit,
		Outstanding: outstanding,
	}
	if limit.IsPositive() {
		available := limit.Sub(outstanding)
		summary.Available = &available
	}
	return summary, nil
}
