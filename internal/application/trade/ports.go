package trade

import (
	"context"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyValidator loads a customer and rejects it when it may not transact
type PartyValidator interface {
	ValidateParty(ctx context.Context, tenantID uuid.UUID, customer string, actor shared.Actor) (*partner.Customer, error)
}

// CreditChecker rejects a document whose amount would take the customer over its credit limit
type CreditChecker interface {
	CheckCreditLimit(ctx context.Context, tenantID uuid.UUID, customer, company string, additional decimal.Decimal, actor shared.Actor) error
}

// DocumentMetrics counts document submissions and credit-limit blocks
type DocumentMetrics interface {
	RecordSubmit(ctx context.Context, docType trade.DocType)
	RecordCreditBlock(ctx context.Context, docType trade.DocType)
}

type noopMetrics struct{}

func (noopMetrics) RecordSubmit(context.Context, trade.DocType)      {}
func (noopMetrics) RecordCreditBlock(context.Context, trade.DocType) {}
