package trade

import (
	"fmt"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryNote records goods shipped to a customer
type DeliveryNote struct {
	SalesDocument
}

// NewDeliveryNote creates a draft delivery note
func NewDeliveryNote(tenantID uuid.UUID, name, customer, company string, postingDate time.Time) (*DeliveryNote, error) {
	doc, err := newSalesDocument(tenantID, DocTypeDeliveryNote, name, customer, company, postingDate)
	if err != nil {
		return nil, err
	}
	return &DeliveryNote{SalesDocument: doc}, nil
}

// Submit moves the note from draft to submitted
func (n *DeliveryNote) Submit() error {
	if err := n.validateForSubmit(); err != nil {
		return err
	}
	n.markSubmitted(StatusToBill)
	n.AddDomainEvent(NewSalesDocumentEvent(EventTypeDeliveryNoteSubmitted, &n.SalesDocument))
	return nil
}

// Cancel cancels a submitted note
func (n *DeliveryNote) Cancel() error {
	if err := n.markCancelled(); err != nil {
		return err
	}
	n.AddDomainEvent(NewSalesDocumentEvent(EventTypeDeliveryNoteCancelled, &n.SalesDocument))
	return nil
}

// Close stops billing of the note
func (n *DeliveryNote) Close() error {
	if !n.IsSubmitted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Only a submitted Delivery Note can be closed")
	}
	if n.Status == StatusClosed {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Delivery Note %s is already closed", n.Name))
	}
	n.Status = StatusClosed
	n.touch()
	return nil
}

// NeedsCreditCheck is true when some row was not made from a sales order or invoice,
// since those were already checked when the source was submitted
func (n *DeliveryNote) NeedsCreditCheck() bool {
	for _, row := range n.Items {
		if row.SalesOrder == "" && row.SalesInvoice == "" {
			return true
		}
	}
	return false
}

// UnbilledRows returns the rows that count towards outstanding: rows not made
// from a sales order or invoice, on a submitted note that is not closed
func (n *DeliveryNote) UnbilledRows() []LineItem {
	if !n.IsSubmitted() || n.Status == StatusClosed {
		return nil
	}
	rows := make([]LineItem, 0, len(n.Items))
	for _, row := range n.Items {
		if row.SalesOrder == "" && row.SalesInvoice == "" {
			rows = append(rows, row)
		}
	}
	return rows
}

// UnbilledAmount sums, over UnbilledRows, the row amount not yet invoiced,
// scaled to include taxes. billed maps a row ID to the amount invoiced for it.
func (n *DeliveryNote) UnbilledAmount(billed map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, row := range n.UnbilledRows() {
		remaining := row.Amount.Sub(billed[row.ID])
		if remaining.IsPositive() {
			total = total.Add(n.GrandTotalShare(remaining))
		}
	}
	return total
}
