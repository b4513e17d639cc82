package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
)

// sourceDocuments resolves the documents that rows claim to be made from.
// A nil repository means rows of this document type cannot reference that type.
type sourceDocuments struct {
	orders   trade.SalesOrderRepository
	notes    trade.DeliveryNoteRepository
	invoices trade.SalesInvoiceRepository
}

type rowReference struct {
	docType trade.DocType
	name    string
	detail  *uuid.UUID
}

func rowReferences(row trade.LineItem) []rowReference {
	return []rowReference{
		{trade.DocTypeSalesOrder, row.SalesOrder, row.SODetail},
		{trade.DocTypeDeliveryNote, row.DeliveryNote, row.DNDetail},
		{trade.DocTypeSalesInvoice, row.SalesInvoice, row.SIDetail},
	}
}

// validate rejects rows whose references do not resolve to a submitted, open
// document of the same customer and company that contains the referenced row
func (s sourceDocuments) validate(ctx context.Context, doc *trade.SalesDocument) error {
	_, err := s.resolve(ctx, doc)
	return err
}

// resolve validates like validate and returns the referenced documents keyed
// by type and name
func (s sourceDocuments) resolve(ctx context.Context, doc *trade.SalesDocument) (map[rowReference]*trade.SalesDocument, error) {
	loaded := make(map[rowReference]*trade.SalesDocument)
	for i, row := range doc.Items {
		for _, ref := range rowReferences(row) {
			if ref.name == "" {
				if ref.detail != nil {
					return nil, shared.NewDomainError(shared.CodeInvalidInput,
						fmt.Sprintf("Row #%d: %s row given without the %s", i+1, ref.docType, ref.docType))
				}
				continue
			}
			key := rowReference{docType: ref.docType, name: ref.name}
			source, ok := loaded[key]
			if !ok {
				var err error
				source, err = s.load(ctx, doc, i, ref)
				if err != nil {
					return nil, err
				}
				loaded[key] = source
			}
			if err := doc.CheckSourceRow(i, source, ref.detail); err != nil {
				return nil, err
			}
		}
	}
	return loaded, nil
}

func (s sourceDocuments) load(ctx context.Context, doc *trade.SalesDocument, idx int, ref rowReference) (*trade.SalesDocument, error) {
	var (
		source *trade.SalesDocument
		err    error
	)
	switch {
	case ref.docType == trade.DocTypeSalesOrder && s.orders != nil:
		var order *trade.SalesOrder
		if order, err = s.orders.FindByName(ctx, doc.TenantID, ref.name); err == nil {
			source = &order.SalesDocument
		}
	case ref.docType == trade.DocTypeDeliveryNote && s.notes != nil:
		var note *trade.DeliveryNote
		if note, err = s.notes.FindByName(ctx, doc.TenantID, ref.name); err == nil {
			source = &note.SalesDocument
		}
	case ref.docType == trade.DocTypeSalesInvoice && s.invoices != nil:
		var invoice *trade.SalesInvoice
		if invoice, err = s.invoices.FindByName(ctx, doc.TenantID, ref.name); err == nil {
			source = &invoice.SalesDocument
		}
	default:
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Row #%d: a %s row cannot reference a %s", idx+1, doc.DocType, ref.docType))
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Row #%d: %s %s does not exist", idx+1, ref.docType, ref.name))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", ref.docType, ref.name, err)
	}
	return source, nil
}
