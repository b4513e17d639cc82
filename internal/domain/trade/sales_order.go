package trade

import (
	"fmt"
	"sort"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrder is a customer's confirmed order, billed by sales invoices
type SalesOrder struct {
	SalesDocument
	DeliveryDate time.Time
	PerBilled    decimal.Decimal
	BilledAmount decimal.Decimal
}

// NewSalesOrder creates a draft sales order
func NewSalesOrder(tenantID uuid.UUID, name, customer, company string, postingDate, deliveryDate time.Time) (*SalesOrder, error) {
	doc, err := newSalesDocument(tenantID, DocTypeSalesOrder, name, customer, company, postingDate)
	if err != nil {
		return nil, err
	}
	if deliveryDate.IsZero() {
		deliveryDate = doc.PostingDate
	}
	if deliveryDate.Before(truncateDay(doc.PostingDate)) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Delivery Date cannot be before the order date")
	}
	return &SalesOrder{
		SalesDocument: doc,
		DeliveryDate:  deliveryDate,
		PerBilled:     decimal.Zero,
		BilledAmount:  decimal.Zero,
	}, nil
}

// SetDeliveryDate changes the expected delivery date of a draft
func (o *SalesOrder) SetDeliveryDate(deliveryDate time.Time) error {
	if err := o.ensureDraft("update"); err != nil {
		return err
	}
	if deliveryDate.Before(truncateDay(o.PostingDate)) {
		return shared.NewDomainError(shared.CodeValidation, "Delivery Date cannot be before the order date")
	}
	o.DeliveryDate = deliveryDate
	o.touch()
	return nil
}

// Submit moves the order from draft to submitted
func (o *SalesOrder) Submit() error {
	if err := o.validateForSubmit(); err != nil {
		return err
	}
	o.markSubmitted(StatusToBill)
	o.refreshBilling()
	o.AddDomainEvent(NewSalesDocumentEvent(EventTypeSalesOrderSubmitted, &o.SalesDocument))
	return nil
}

// Cancel cancels a submitted order that has not been invoiced
func (o *SalesOrder) Cancel() error {
	if o.BilledAmount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot cancel Sales Order %s because it has submitted Sales Invoices", o.Name))
	}
	if err := o.markCancelled(); err != nil {
		return err
	}
	o.AddDomainEvent(NewSalesDocumentEvent(EventTypeSalesOrderCancelled, &o.SalesDocument))
	return nil
}

// Close stops further billing; a closed order no longer counts as outstanding
func (o *SalesOrder) Close() error {
	if !o.IsSubmitted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Only a submitted Sales Order can be closed")
	}
	if o.Status == StatusClosed {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Sales Order %s is already closed", o.Name))
	}
	o.Status = StatusClosed
	o.touch()
	o.AddDomainEvent(NewSalesDocumentEvent(EventTypeSalesOrderClosed, &o.SalesDocument))
	return nil
}

// Reopen undoes Close
func (o *SalesOrder) Reopen() error {
	if o.Status != StatusClosed {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Sales Order %s is not closed", o.Name))
	}
	o.Status = StatusToBill
	o.refreshBilling()
	o.touch()
	return nil
}

// IsClosed returns true if the order was closed
func (o *SalesOrder) IsClosed() bool {
	return o.Status == StatusClosed
}

// BillInvoice applies sign times the invoice rows made from this order: +1 on
// submit, -1 on cancel. The invoice must be for the order's customer and company.
func (o *SalesOrder) BillInvoice(invoice *SalesInvoice, sign decimal.Decimal) error {
	if invoice.Customer != o.Customer || invoice.Company != o.Company {
		return shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Sales Order %s belongs to customer %s of company %s, not %s of %s",
				o.Name, o.Customer, o.Company, invoice.Customer, invoice.Company))
	}
	rows := invoice.BillingBySalesOrder()[o.Name]
	ids := make([]uuid.UUID, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	for _, id := range ids {
		if err := o.ApplyBilling(id, rows[id].Mul(sign)); err != nil {
			return err
		}
	}
	return nil
}

// ApplyBilling records amount invoiced against the row soDetail. A negative
// amount rolls billing back when an invoice is cancelled. A row is never
// billed above its amount.
func (o *SalesOrder) ApplyBilling(soDetail uuid.UUID, amount decimal.Decimal) error {
	if !o.IsSubmitted() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Sales Order %s is not submitted", o.Name))
	}
	row := o.FindItem(soDetail)
	if row == nil {
		return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Sales Order %s has no row %s", o.Name, soDetail))
	}
	billed := row.BilledAmount.Add(amount)
	if amount.IsPositive() && billed.GreaterThan(row.Amount) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot overbill %s of Sales Order %s: %s already billed of %s, %s more requested",
				row.ItemCode, o.Name, row.BilledAmount.StringFixed(2), row.Amount.StringFixed(2), amount.StringFixed(2)))
	}
	if billed.IsNegative() {
		billed = decimal.Zero
	}
	row.BilledAmount = billed
	o.refreshBilling()
	o.touch()
	return nil
}

// UnbilledAmount is the share of the grand total not yet invoiced.
// Drafts, cancelled, closed and fully billed orders contribute nothing.
func (o *SalesOrder) UnbilledAmount() decimal.Decimal {
	if !o.IsSubmitted() || o.IsClosed() || o.PerBilled.GreaterThanOrEqual(hundred) {
		return decimal.Zero
	}
	return o.GrandTotal.Mul(hundred.Sub(o.PerBilled)).Div(hundred)
}

// InvoiceableLines returns invoice rows for the unbilled remainder of each order row
func (o *SalesOrder) InvoiceableLines() []LineItem {
	lines := make([]LineItem, 0, len(o.Items))
	for _, row := range o.Items {
		remaining := row.Amount.Sub(row.BilledAmount)
		if !remaining.IsPositive() {
			continue
		}
		qty := row.Qty
		if row.Rate.IsPositive() {
			qty = remaining.Div(row.Rate)
		}
		soDetail := row.ID
		lines = append(lines, LineItem{
			ItemCode:   row.ItemCode,
			ItemName:   row.ItemName,
			Qty:        qty,
			Rate:       row.Rate,
			SalesOrder: o.Name,
			SODetail:   &soDetail,
		})
	}
	return lines
}

func (o *SalesOrder) refreshBilling() {
	billed := decimal.Zero
	for _, row := range o.Items {
		billed = billed.Add(row.BilledAmount)
	}
	o.BilledAmount = billed
	if o.NetTotal.IsPositive() {
		per := billed.Mul(hundred).Div(o.NetTotal).Round(2)
		if per.GreaterThan(hundred) {
			per = hundred
		}
		o.PerBilled = per
	} else {
		o.PerBilled = hundred
	}
	if o.IsClosed() || !o.IsSubmitted() {
		return
	}
	if o.PerBilled.GreaterThanOrEqual(hundred) {
		o.Status = StatusCompleted
	} else {
		o.Status = StatusToBill
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
