package trade

import (
	"fmt"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sales invoice status labels
const (
	StatusUnpaid = "Unpaid"
)

// SalesInvoice bills a customer and posts the receivable
type SalesInvoice struct {
	SalesDocument
	DueDate           time.Time
	OutstandingAmount decimal.Decimal
}

// NewSalesInvoice creates a draft sales invoice
func NewSalesInvoice(tenantID uuid.UUID, name, customer, company string, postingDate, dueDate time.Time) (*SalesInvoice, error) {
	doc, err := newSalesDocument(tenantID, DocTypeSalesInvoice, name, customer, company, postingDate)
	if err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		dueDate = doc.PostingDate
	}
	if dueDate.Before(truncateDay(doc.PostingDate)) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Due Date cannot be before Posting Date")
	}
	return &SalesInvoice{
		SalesDocument:     doc,
		DueDate:           dueDate,
		OutstandingAmount: decimal.Zero,
	}, nil
}

// MakeSalesInvoice maps the unbilled remainder of a submitted sales order into a draft invoice
func MakeSalesInvoice(order *SalesOrder, name string, postingDate time.Time) (*SalesInvoice, error) {
	if !order.IsSubmitted() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Sales Order %s must be submitted before invoicing", order.Name))
	}
	if order.IsClosed() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Sales Order %s is closed", order.Name))
	}
	lines := order.InvoiceableLines()
	if len(lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("All items of Sales Order %s have already been invoiced", order.Name))
	}

	invoice, err := NewSalesInvoice(order.TenantID, name, order.Customer, order.Company, postingDate, time.Time{})
	if err != nil {
		return nil, err
	}
	invoice.CustomerName = order.CustomerName
	invoice.SetPricing(order.Currency, order.SellingPriceList)
	for _, line := range lines {
		if _, err := invoice.AddLine(line); err != nil {
			return nil, err
		}
	}
	taxes := make([]TaxLine, len(order.Taxes))
	for i, tax := range order.Taxes {
		taxes[i] = TaxLine{Description: tax.Description, Rate: tax.Rate}
	}
	if err := invoice.SetTaxes(taxes); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Submit moves the invoice from draft to submitted; the full grand total becomes outstanding
func (i *SalesInvoice) Submit() error {
	if err := i.validateForSubmit(); err != nil {
		return err
	}
	i.OutstandingAmount = i.GrandTotal
	i.markSubmitted(StatusUnpaid)
	i.AddDomainEvent(NewSalesDocumentEvent(EventTypeSalesInvoiceSubmitted, &i.SalesDocument))
	return nil
}

// Cancel cancels a submitted invoice
func (i *SalesInvoice) Cancel() error {
	if err := i.markCancelled(); err != nil {
		return err
	}
	i.OutstandingAmount = decimal.Zero
	i.AddDomainEvent(NewSalesDocumentEvent(EventTypeSalesInvoiceCancelled, &i.SalesDocument))
	return nil
}

// NeedsCreditCheck is true when some row was not made from a sales order or delivery note
func (i *SalesInvoice) NeedsCreditCheck() bool {
	for _, row := range i.Items {
		if row.SalesOrder == "" && row.DeliveryNote == "" {
			return true
		}
	}
	return false
}

// BillingBySalesOrder groups row amounts by sales order and order row
func (i *SalesInvoice) BillingBySalesOrder() map[string]map[uuid.UUID]decimal.Decimal {
	billing := make(map[string]map[uuid.UUID]decimal.Decimal)
	for _, row := range i.Items {
		if row.SalesOrder == "" || row.SODetail == nil {
			continue
		}
		rows, ok := billing[row.SalesOrder]
		if !ok {
			rows = make(map[uuid.UUID]decimal.Decimal)
			billing[row.SalesOrder] = rows
		}
		rows[*row.SODetail] = rows[*row.SODetail].Add(row.Amount)
	}
	return billing
}
