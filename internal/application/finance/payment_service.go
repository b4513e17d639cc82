package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPaymentSeries is the naming series prefix of payment entries
const DefaultPaymentSeries = "PE-"

// PartyValidator loads a customer and rejects it when it may not transact
type PartyValidator interface {
	ValidateParty(ctx context.Context, tenantID uuid.UUID, customer string, actor shared.Actor) (*partner.Customer, error)
}

// PaymentService records customer payments against the receivable ledger
type PaymentService struct {
	glRepo       finance.GLEntryRepository
	companyRepo  finance.CompanyRepository
	parties      PartyValidator
	namingSeries shared.NamingSeries
	series       string
	logger       *zap.Logger
}

// PaymentServiceOption is a functional option for configuring PaymentService
type PaymentServiceOption func(*PaymentService)

// WithPaymentSeries overrides the naming series prefix of payment entries
func WithPaymentSeries(prefix string) PaymentServiceOption {
	return func(s *PaymentService) {
		if prefix != "" {
			s.series = prefix
		}
	}
}

// WithPaymentLogger sets the logger
func WithPaymentLogger(logger *zap.Logger) PaymentServiceOption {
	return func(s *PaymentService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	glRepo finance.GLEntryRepository,
	companyRepo finance.CompanyRepository,
	parties PartyValidator,
	namingSeries shared.NamingSeries,
	opts ...PaymentServiceOption,
) *PaymentService {
	s := &PaymentService{
		glRepo:       glRepo,
		companyRepo:  companyRepo,
		parties:      parties,
		namingSeries: namingSeries,
		series:       DefaultPaymentSeries,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordPayment posts a credit entry for money received from a customer,
// reducing its outstanding amount
func (s *PaymentService) RecordPayment(ctx context.Context, tenantID uuid.UUID, req RecordPaymentRequest, actor shared.Actor) (*PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Paid Amount must be greater than zero")
	}
	if _, err := s.parties.ValidateParty(ctx, tenantID, req.Customer, actor); err != nil {
		return nil, err
	}
	exists, err := s.companyRepo.ExistsByName(ctx, tenantID, req.Company)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Could not find Company: %s", req.Company))
	}

	n, err := s.namingSeries.Next(ctx, tenantID, s.series)
	if err != nil {
		return nil, fmt.Errorf("next payment number: %w", err)
	}
	voucherNo := shared.FormatSeriesName(s.series, n)

	postingDate := time.Now()
	if req.PostingDate != nil {
		postingDate = *req.PostingDate
	}
	entry, err := finance.NewCreditEntry(tenantID, req.Customer, req.Company, req.Amount, finance.VoucherTypePayment, voucherNo, postingDate)
	if err != nil {
		return nil, err
	}
	entry.Remarks = req.Reference
	if err := s.glRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("post payment entry: %w", err)
	}

	outstanding, err := s.glRepo.PartyBalance(ctx, tenantID, req.Customer, req.Company)
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment recorded",
		zap.String("voucher_no", voucherNo),
		zap.String("customer", req.Customer),
		zap.String("company", req.Company),
		zap.String("amount", entry.Credit.StringFixed(2)),
		zap.String("by", actor.Display()),
	)

	return &PaymentResponse{
		VoucherNo:   voucherNo,
		Customer:    req.Customer,
		Company:     req.Company,
		Amount:      entry.Credit,
		Reference:   req.Reference,
		PostingDate: entry.PostingDate,
		Outstanding: outstanding,
	}, nil
}

// GetLedger lists the ledger lines of a customer in a company
func (s *PaymentService) GetLedger(ctx context.Context, tenantID uuid.UUID, customer, company string) (*LedgerResponse, error) {
	entries, err := s.glRepo.FindByParty(ctx, tenantID, customer, company)
	if err != nil {
		return nil, err
	}
	balance, err := s.glRepo.PartyBalance(ctx, tenantID, customer, company)
	if err != nil {
		return nil, err
	}
	responses := make([]GLEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToGLEntryResponse(&entries[i])
	}
	return &LedgerResponse{
		Customer: customer,
		Company:  company,
		Entries:  responses,
		Balance:  balance,
	}, nil
}
