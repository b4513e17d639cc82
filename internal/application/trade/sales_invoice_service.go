package trade

import (
	"context"
	"fmt"
	"sort"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalesInvoiceService handles sales invoice business operations.
// Submitting and cancelling write the invoice, its ledger entries and the
// billed amounts of linked sales orders in one transaction.
type SalesInvoiceService struct {
	documentSupport
	invoiceRepo trade.SalesInvoiceRepository
	orderRepo   trade.SalesOrderRepository
	sources     sourceDocuments
	txScope     TransactionScope
}

// NewSalesInvoiceService creates a new SalesInvoiceService
func NewSalesInvoiceService(
	invoiceRepo trade.SalesInvoiceRepository,
	orderRepo trade.SalesOrderRepository,
	noteRepo trade.DeliveryNoteRepository,
	txScope TransactionScope,
	parties PartyValidator,
	credit CreditChecker,
	namingSeries shared.NamingSeries,
	logger *zap.Logger,
) *SalesInvoiceService {
	return &SalesInvoiceService{
		documentSupport: newDocumentSupport(parties, credit, namingSeries, logger),
		invoiceRepo:     invoiceRepo,
		orderRepo:       orderRepo,
		sources:         sourceDocuments{orders: orderRepo, notes: noteRepo},
		txScope:         txScope,
	}
}

// Create saves a draft sales invoice
func (s *SalesInvoiceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSalesInvoiceRequest, actor shared.Actor) (*SalesInvoiceResponse, error) {
	name, err := s.nextName(ctx, tenantID, SalesInvoiceSeries)
	if err != nil {
		return nil, err
	}

	invoice, err := trade.NewSalesInvoice(tenantID, name, req.Customer, req.Company, dateOrZero(req.PostingDate), dateOrZero(req.DueDate))
	if err != nil {
		return nil, err
	}
	if actor.UserID != nil {
		invoice.SetCreatedBy(*actor.UserID)
	}
	invoice.SetPricing(req.Currency, req.SellingPriceList)
	invoice.Remarks = req.Remarks
	if err := applyLines(&invoice.SalesDocument, req.Items, req.Taxes); err != nil {
		return nil, err
	}
	if err := s.validateParty(ctx, &invoice.SalesDocument, actor); err != nil {
		return nil, err
	}
	if err := s.sources.validate(ctx, &invoice.SalesDocument); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToSalesInvoiceResponse(invoice)
	return &response, nil
}

// MakeFromSalesOrder maps the unbilled remainder of a submitted sales order
// into a new draft invoice
func (s *SalesInvoiceService) MakeFromSalesOrder(ctx context.Context, tenantID uuid.UUID, orderName string, req MakeSalesInvoiceRequest, actor shared.Actor) (*SalesInvoiceResponse, error) {
	order, err := s.orderRepo.FindByName(ctx, tenantID, orderName)
	if err != nil {
		return nil, err
	}
	name, err := s.nextName(ctx, tenantID, SalesInvoiceSeries)
	if err != nil {
		return nil, err
	}

	invoice, err := trade.MakeSalesInvoice(order, name, dateOrZero(req.PostingDate))
	if err != nil {
		return nil, err
	}
	if actor.UserID != nil {
		invoice.SetCreatedBy(*actor.UserID)
	}
	if err := s.validateParty(ctx, &invoice.SalesDocument, actor); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToSalesInvoiceResponse(invoice)
	return &response, nil
}

// GetByName retrieves a sales invoice by name
func (s *SalesInvoiceService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*SalesInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToSalesInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves a list of sales invoices with filtering and pagination
func (s *SalesInvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter SalesDocumentListFilter) ([]SalesInvoiceResponse, int64, error) {
	domainFilter := documentFilter(filter)

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SalesInvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToSalesInvoiceResponse(&invoices[i])
	}
	return responses, total, nil
}

// Update edits a draft sales invoice
func (s *SalesInvoiceService) Update(ctx context.Context, tenantID uuid.UUID, name string, req UpdateSalesDocumentRequest, actor shared.Actor) (*SalesInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := applyHeaderUpdate(&invoice.SalesDocument, req); err != nil {
		return nil, err
	}
	if err := s.validateParty(ctx, &invoice.SalesDocument, actor); err != nil {
		return nil, err
	}
	if err := s.sources.validate(ctx, &invoice.SalesDocument); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToSalesInvoiceResponse(invoice)
	return &response, nil
}

// Submit moves a draft to submitted, posts the receivable and bills the
// linked sales orders. Row references must resolve to submitted documents of
// the same party; the credit check only runs when some row was not made from
// a sales order or delivery note.
func (s *SalesInvoiceService) Submit(ctx context.Context, tenantID uuid.UUID, name, idempotencyKey string, actor shared.Actor) (*SalesInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}

	key := submitKey(tenantID, trade.DocTypeSalesInvoice, name, idempotencyKey)
	replay, err := s.alreadySubmitted(ctx, key)
	if err != nil {
		return nil, err
	}
	if replay {
		response := ToSalesInvoiceResponse(invoice)
		return &response, nil
	}

	if err := s.validateParty(ctx, &invoice.SalesDocument, actor); err != nil {
		return nil, err
	}
	sources, err := s.sources.resolve(ctx, &invoice.SalesDocument)
	if err != nil {
		return nil, err
	}
	if err := s.checkDeliveryNoteBilling(ctx, invoice, sources); err != nil {
		return nil, err
	}
	if err := invoice.Submit(); err != nil {
		return nil, err
	}
	if invoice.NeedsCreditCheck() {
		if err := s.checkCredit(ctx, &invoice.SalesDocument, actor); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.SalesInvoices().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		if invoice.GrandTotal.IsPositive() {
			entry, err := finance.NewDebitEntry(tenantID, invoice.Customer, invoice.Company, invoice.GrandTotal,
				finance.VoucherTypeSalesInvoice, invoice.Name, invoice.PostingDate)
			if err != nil {
				return err
			}
			if err := repos.GLEntries().Create(ctx, entry); err != nil {
				return fmt.Errorf("post ledger entry: %w", err)
			}
		}
		return updateOrderBilling(ctx, repos.SalesOrders(), invoice, decimal.NewFromInt(1))
	})
	if err != nil {
		return nil, err
	}
	s.submitted(ctx, &invoice.SalesDocument, key)
	s.publish(ctx, invoice)

	response := ToSalesInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels a submitted invoice, reverses its ledger entries and rolls
// back the billing of linked sales orders
func (s *SalesInvoiceService) Cancel(ctx context.Context, tenantID uuid.UUID, name string) (*SalesInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := invoice.Cancel(); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.SalesInvoices().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		entries, err := repos.GLEntries().FindByVoucher(ctx, tenantID, finance.VoucherTypeSalesInvoice, invoice.Name)
		if err != nil {
			return err
		}
		reversals := make([]*finance.GLEntry, 0, len(entries))
		for i := range entries {
			if entries[i].IsCancelled {
				continue
			}
			reversals = append(reversals, entries[i].Reverse())
		}
		if len(reversals) > 0 {
			if err := repos.GLEntries().Create(ctx, reversals...); err != nil {
				return fmt.Errorf("reverse ledger entries: %w", err)
			}
		}
		return updateOrderBilling(ctx, repos.SalesOrders(), invoice, decimal.NewFromInt(-1))
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, invoice)

	response := ToSalesInvoiceResponse(invoice)
	return &response, nil
}

// Delete deletes a draft sales invoice
func (s *SalesInvoiceService) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	invoice, err := s.invoiceRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return err
	}
	if err := ensureDeletable(&invoice.SalesDocument); err != nil {
		return err
	}
	return s.invoiceRepo.Delete(ctx, tenantID, name)
}

// checkDeliveryNoteBilling rejects an invoice that would bill a delivery note
// row above its amount, counting the rows of invoices already submitted
func (s *SalesInvoiceService) checkDeliveryNoteBilling(ctx context.Context, invoice *trade.SalesInvoice, sources map[rowReference]*trade.SalesDocument) error {
	requested := make(map[uuid.UUID]decimal.Decimal)
	notes := make(map[uuid.UUID]*trade.SalesDocument)
	ids := make([]uuid.UUID, 0, len(invoice.Items))
	for _, row := range invoice.Items {
		if row.DNDetail == nil {
			continue
		}
		id := *row.DNDetail
		if _, seen := requested[id]; !seen {
			ids = append(ids, id)
			requested[id] = decimal.Zero
		}
		requested[id] = requested[id].Add(row.Amount)
		notes[id] = sources[rowReference{docType: trade.DocTypeDeliveryNote, name: row.DeliveryNote}]
	}
	if len(ids) == 0 {
		return nil
	}

	billed, err := s.invoiceRepo.BilledByDeliveryNoteRows(ctx, invoice.TenantID, ids)
	if err != nil {
		return fmt.Errorf("load delivery note billing: %w", err)
	}
	for _, id := range ids {
		note := notes[id]
		row := note.FindItem(id)
		already := billed[id]
		if already.Add(requested[id]).GreaterThan(row.Amount) {
			return shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("Cannot overbill %s of Delivery Note %s: %s already billed of %s, %s more requested",
					row.ItemCode, note.Name, already.StringFixed(2), row.Amount.StringFixed(2), requested[id].StringFixed(2)))
		}
	}
	return nil
}

// updateOrderBilling adds sign times the row amounts to the billed amount of
// every sales order the invoice was made from. Orders are visited in name
// order so concurrent invoices lock them in the same sequence.
func updateOrderBilling(ctx context.Context, orders trade.SalesOrderRepository, invoice *trade.SalesInvoice, sign decimal.Decimal) error {
	billing := invoice.BillingBySalesOrder()
	names := make([]string, 0, len(billing))
	for name := range billing {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		order, err := orders.FindByName(ctx, invoice.TenantID, name)
		if err != nil {
			return fmt.Errorf("load sales order %s: %w", name, err)
		}
		if err := order.BillInvoice(invoice, sign); err != nil {
			return err
		}
		if err := orders.SaveWithLock(ctx, order); err != nil {
			return err
		}
	}
	return nil
}
