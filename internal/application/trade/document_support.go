package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Naming series prefixes of selling documents
const (
	SalesOrderSeries   = "SO-"
	DeliveryNoteSeries = "DN-"
	SalesInvoiceSeries = "SINV-"
)

// documentSupport holds the collaborators every selling document service needs
type documentSupport struct {
	parties        PartyValidator
	credit         CreditChecker
	namingSeries   shared.NamingSeries
	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	metrics        DocumentMetrics
	logger         *zap.Logger
}

func newDocumentSupport(parties PartyValidator, credit CreditChecker, namingSeries shared.NamingSeries, logger *zap.Logger) documentSupport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return documentSupport{
		parties:      parties,
		credit:       credit,
		namingSeries: namingSeries,
		metrics:      noopMetrics{},
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (d *documentSupport) SetEventPublisher(publisher shared.EventPublisher) {
	d.eventPublisher = publisher
}

// SetIdempotencyStore enables idempotent submission; keys are remembered for ttl
func (d *documentSupport) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	d.idempotency = store
	d.idempotencyTTL = ttl
}

// SetMetrics sets the recorder for submit and credit-block counters
func (d *documentSupport) SetMetrics(metrics DocumentMetrics) {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	d.metrics = metrics
}

func (d *documentSupport) nextName(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	n, err := d.namingSeries.Next(ctx, tenantID, prefix)
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", prefix, err)
	}
	return shared.FormatSeriesName(prefix, n), nil
}

// validateParty rejects disabled or frozen customers and fills the customer
// name plus pricing defaults the document leaves empty
func (d *documentSupport) validateParty(ctx context.Context, doc *trade.SalesDocument, actor shared.Actor) error {
	customer, err := d.parties.ValidateParty(ctx, doc.TenantID, doc.Customer, actor)
	if err != nil {
		return err
	}
	doc.CustomerName = customer.CustomerName
	currency, priceList := doc.Currency, doc.SellingPriceList
	if currency == "" {
		currency = customer.DefaultCurrency
	}
	if priceList == "" {
		priceList = customer.DefaultPriceList
	}
	doc.SetPricing(currency, priceList)
	return nil
}

// checkCredit runs the credit check with the document's grand total as the additional amount
func (d *documentSupport) checkCredit(ctx context.Context, doc *trade.SalesDocument, actor shared.Actor) error {
	err := d.credit.CheckCreditLimit(ctx, doc.TenantID, doc.Customer, doc.Company, doc.GrandTotal, actor)
	if err != nil && errors.Is(err, shared.ErrCreditLimitExceeded) {
		d.metrics.RecordCreditBlock(ctx, doc.DocType)
		d.logger.Info("submission blocked by credit limit",
			zap.String("doctype", string(doc.DocType)),
			zap.String("name", doc.Name),
			zap.String("customer", doc.Customer),
		)
	}
	return err
}

// alreadySubmitted reports whether key was recorded by an earlier successful submit
func (d *documentSupport) alreadySubmitted(ctx context.Context, key string) (bool, error) {
	if key == "" || d.idempotency == nil {
		return false, nil
	}
	done, err := d.idempotency.IsProcessed(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check idempotency key: %w", err)
	}
	return done, nil
}

// submitted records a successful submit. A failure here only loses replay
// protection, so it is logged and not returned.
func (d *documentSupport) submitted(ctx context.Context, doc *trade.SalesDocument, key string) {
	d.metrics.RecordSubmit(ctx, doc.DocType)
	if key == "" || d.idempotency == nil {
		return
	}
	if _, err := d.idempotency.MarkProcessed(ctx, key, d.idempotencyTTL); err != nil {
		d.logger.Warn("failed to record idempotency key",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// publish publishes and clears the pending events of aggregate
func (d *documentSupport) publish(ctx context.Context, aggregate shared.AggregateRoot) {
	if d.eventPublisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := d.eventPublisher.Publish(ctx, event); err != nil {
			d.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
	aggregate.ClearDomainEvents()
}

// submitKey scopes a client idempotency key to one document
func submitKey(tenantID uuid.UUID, docType trade.DocType, name, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("submit:%s:%s:%s:%s", tenantID, docType, name, key)
}

// applyLines replaces the rows and taxes of a draft
func applyLines(doc *trade.SalesDocument, items []LineItemRequest, taxes []TaxLineRequest) error {
	if items != nil {
		if err := doc.ClearItems(); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := doc.AddLine(trade.LineItem{
				ItemCode:     item.ItemCode,
				ItemName:     item.ItemName,
				Qty:          item.Qty,
				Rate:         item.Rate,
				SalesOrder:   item.SalesOrder,
				SODetail:     item.SODetail,
				DeliveryNote: item.DeliveryNote,
				DNDetail:     item.DNDetail,
				SalesInvoice: item.SalesInvoice,
				SIDetail:     item.SIDetail,
			}); err != nil {
				return err
			}
		}
	}
	if taxes != nil {
		lines := make([]trade.TaxLine, len(taxes))
		for i, tax := range taxes {
			lines[i] = trade.TaxLine{Description: tax.Description, Rate: tax.Rate}
		}
		if err := doc.SetTaxes(lines); err != nil {
			return err
		}
	}
	return nil
}

// applyHeaderUpdate applies the shared part of an update request to a draft
func applyHeaderUpdate(doc *trade.SalesDocument, req UpdateSalesDocumentRequest) error {
	if req.Version != nil && *req.Version != doc.Version {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("%s %s has been modified after you opened it", doc.DocType, doc.Name))
	}
	if !doc.IsDraft() {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot update %s %s in status %s", doc.DocType, doc.Name, doc.Status))
	}
	if req.Customer != nil || req.Company != nil || req.PostingDate != nil {
		customer, company := doc.Customer, doc.Company
		if req.Customer != nil {
			customer = *req.Customer
		}
		if req.Company != nil {
			company = *req.Company
		}
		if err := doc.SetHeader(customer, company, dateOrZero(req.PostingDate)); err != nil {
			return err
		}
	}
	if req.Currency != nil || req.SellingPriceList != nil {
		currency, priceList := doc.Currency, doc.SellingPriceList
		if req.Currency != nil {
			currency = *req.Currency
		}
		if req.SellingPriceList != nil {
			priceList = *req.SellingPriceList
		}
		doc.SetPricing(currency, priceList)
	}
	if req.Remarks != nil {
		doc.Remarks = *req.Remarks
	}
	return applyLines(doc, req.Items, req.Taxes)
}

func documentFilter(filter SalesDocumentListFilter) shared.Filter {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize()
	if filter.Customer != "" {
		domainFilter.Filters["customer"] = filter.Customer
	}
	if filter.Company != "" {
		domainFilter.Filters["company"] = filter.Company
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.DocStatus != nil {
		domainFilter.Filters["doc_status"] = *filter.DocStatus
	}
	return domainFilter
}

func ensureDeletable(doc *trade.SalesDocument) error {
	if !doc.IsDraft() {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot delete %s %s: only drafts can be deleted", doc.DocType, doc.Name))
	}
	return nil
}
