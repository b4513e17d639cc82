package trade

import (
	"fmt"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocType names a selling document type
type DocType string

const (
	DocTypeSalesOrder   DocType = "Sales Order"
	DocTypeDeliveryNote DocType = "Delivery Note"
	DocTypeSalesInvoice DocType = "Sales Invoice"
)

// DocStatus is the lifecycle stage shared by every selling document
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// Common status labels
const (
	StatusDraft     = "Draft"
	StatusCancelled = "Cancelled"
	StatusClosed    = "Closed"
	StatusCompleted = "Completed"
	StatusToBill    = "To Bill"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one row of a selling document. Reference fields tie the row to
// the row of another document it was made from.
type LineItem struct {
	ID       uuid.UUID
	ItemCode string
	ItemName string
	Qty      decimal.Decimal
	Rate     decimal.Decimal
	Amount   decimal.Decimal
	// BilledAmount is the amount invoiced against this row (sales order rows)
	BilledAmount decimal.Decimal

	SalesOrder   string
	SODetail     *uuid.UUID
	DeliveryNote string
	DNDetail     *uuid.UUID
	SalesInvoice string
	SIDetail     *uuid.UUID
}

// TaxLine is a percentage charge on the net total
type TaxLine struct {
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// SalesDocument holds the header, rows and totals common to sales orders,
// delivery notes and sales invoices
type SalesDocument struct {
	shared.TenantAggregateRoot
	DocType          DocType
	Name             string
	Customer         string
	CustomerName     string
	Company          string
	PostingDate      time.Time
	Currency         string
	SellingPriceList string
	Items            []LineItem
	Taxes            []TaxLine
	NetTotal         decimal.Decimal
	TotalTaxes       decimal.Decimal
	GrandTotal       decimal.Decimal
	DocStatus        DocStatus
	Status           string
	Remarks          string
}

func newSalesDocument(tenantID uuid.UUID, docType DocType, name, customer, company string, postingDate time.Time) (SalesDocument, error) {
	if name == "" {
		return SalesDocument{}, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("%s name is required", docType))
	}
	if customer == "" {
		return SalesDocument{}, shared.NewDomainError(shared.CodeInvalidInput, "Customer is required")
	}
	if company == "" {
		return SalesDocument{}, shared.NewDomainError(shared.CodeInvalidInput, "Company is required")
	}
	if postingDate.IsZero() {
		postingDate = time.Now()
	}
	return SalesDocument{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DocType:             docType,
		Name:                name,
		Customer:            customer,
		Company:             company,
		PostingDate:         postingDate,
		Items:               []LineItem{},
		Taxes:               []TaxLine{},
		NetTotal:            decimal.Zero,
		TotalTaxes:          decimal.Zero,
		GrandTotal:          decimal.Zero,
		DocStatus:           DocStatusDraft,
		Status:              StatusDraft,
	}, nil
}

// IsDraft returns true if the document has not been submitted
func (d *SalesDocument) IsDraft() bool {
	return d.DocStatus == DocStatusDraft
}

// IsSubmitted returns true if the document is submitted
func (d *SalesDocument) IsSubmitted() bool {
	return d.DocStatus == DocStatusSubmitted
}

// IsCancelled returns true if the document is cancelled
func (d *SalesDocument) IsCancelled() bool {
	return d.DocStatus == DocStatusCancelled
}

// SetHeader changes the party, company and dates of a draft
func (d *SalesDocument) SetHeader(customer, company string, postingDate time.Time) error {
	if err := d.ensureDraft("update"); err != nil {
		return err
	}
	if customer == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer is required")
	}
	if company == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Company is required")
	}
	d.Customer = customer
	d.Company = company
	if !postingDate.IsZero() {
		d.PostingDate = postingDate
	}
	d.touch()
	return nil
}

// SetPricing sets the currency and price list of a draft
func (d *SalesDocument) SetPricing(currency, priceList string) {
	d.Currency = currency
	d.SellingPriceList = priceList
}

// AddItem appends a row to a draft and recalculates totals
func (d *SalesDocument) AddItem(itemCode, itemName string, qty, rate decimal.Decimal) (*LineItem, error) {
	return d.AddLine(LineItem{ItemCode: itemCode, ItemName: itemName, Qty: qty, Rate: rate})
}

// AddLine appends a prepared row, keeping its reference fields
func (d *SalesDocument) AddLine(line LineItem) (*LineItem, error) {
	if err := d.ensureDraft("add items to"); err != nil {
		return nil, err
	}
	if line.ItemCode == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Item Code is required")
	}
	if !line.Qty.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Row %d: quantity must be greater than zero", len(d.Items)+1))
	}
	if line.Rate.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Row %d: rate cannot be negative", len(d.Items)+1))
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	if line.ItemName == "" {
		line.ItemName = line.ItemCode
	}
	line.Amount = line.Qty.Mul(line.Rate).Round(2)
	if line.BilledAmount.IsZero() {
		line.BilledAmount = decimal.Zero
	}
	d.Items = append(d.Items, line)
	d.CalculateTotals()
	d.touch()
	return &d.Items[len(d.Items)-1], nil
}

// ClearItems removes every row of a draft
func (d *SalesDocument) ClearItems() error {
	if err := d.ensureDraft("update"); err != nil {
		return err
	}
	d.Items = []LineItem{}
	d.CalculateTotals()
	return nil
}

// SetTaxes replaces the tax table of a draft
func (d *SalesDocument) SetTaxes(taxes []TaxLine) error {
	if err := d.ensureDraft("update taxes on"); err != nil {
		return err
	}
	for i, tax := range taxes {
		if tax.Rate.IsNegative() {
			return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Tax row %d: rate cannot be negative", i+1))
		}
	}
	d.Taxes = append([]TaxLine{}, taxes...)
	d.CalculateTotals()
	d.touch()
	return nil
}

// CalculateTotals recomputes net, tax and grand totals from the rows
func (d *SalesDocument) CalculateTotals() {
	net := decimal.Zero
	for i := range d.Items {
		d.Items[i].Amount = d.Items[i].Qty.Mul(d.Items[i].Rate).Round(2)
		net = net.Add(d.Items[i].Amount)
	}
	taxes := decimal.Zero
	for i := range d.Taxes {
		d.Taxes[i].TaxAmount = net.Mul(d.Taxes[i].Rate).Div(hundred).Round(2)
		taxes = taxes.Add(d.Taxes[i].TaxAmount)
	}
	d.NetTotal = net
	d.TotalTaxes = taxes
	d.GrandTotal = net.Add(taxes)
}

// FindItem returns the row with the given ID
func (d *SalesDocument) FindItem(id uuid.UUID) *LineItem {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i]
		}
	}
	return nil
}

// CheckSourceRow verifies that row idx of d may be made from source with the
// given row detail. source must be submitted and open, for the same customer
// and company, and contain the referenced row with at least the row's amount.
func (d *SalesDocument) CheckSourceRow(idx int, source *SalesDocument, detail *uuid.UUID) error {
	label := fmt.Sprintf("Row #%d: %s %s", idx+1, source.DocType, source.Name)
	if !source.IsSubmitted() {
		return shared.NewDomainError(shared.CodeInvalidState, label+" is not submitted")
	}
	if source.Status == StatusClosed {
		return shared.NewDomainError(shared.CodeInvalidState, label+" is closed")
	}
	if source.Customer != d.Customer || source.Company != d.Company {
		return shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("%s belongs to customer %s of company %s", label, source.Customer, source.Company))
	}
	if detail == nil {
		return shared.NewDomainError(shared.CodeInvalidInput, label+" is referenced without a row")
	}
	sourceRow := source.FindItem(*detail)
	if sourceRow == nil {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("%s has no row %s", label, detail))
	}
	if idx < len(d.Items) && d.Items[idx].Amount.GreaterThan(sourceRow.Amount) {
		return shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("%s: amount %s exceeds %s of the referenced row", label,
				d.Items[idx].Amount.StringFixed(2), sourceRow.Amount.StringFixed(2)))
	}
	return nil
}

// GrandTotalShare converts a row amount into its share of the grand total
// so that taxes are included
func (d *SalesDocument) GrandTotalShare(amount decimal.Decimal) decimal.Decimal {
	if d.NetTotal.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(d.GrandTotal).Div(d.NetTotal)
}

func (d *SalesDocument) validateForSubmit() error {
	if err := d.ensureDraft("submit"); err != nil {
		return err
	}
	if len(d.Items) == 0 {
		return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("%s %s has no items", d.DocType, d.Name))
	}
	d.CalculateTotals()
	return nil
}

func (d *SalesDocument) markSubmitted(status string) {
	d.DocStatus = DocStatusSubmitted
	d.Status = status
	d.touch()
}

func (d *SalesDocument) markCancelled() error {
	if !d.IsSubmitted() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Only a submitted %s can be cancelled", d.DocType))
	}
	d.DocStatus = DocStatusCancelled
	d.Status = StatusCancelled
	d.touch()
	return nil
}

func (d *SalesDocument) ensureDraft(action string) error {
	if !d.IsDraft() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot %s %s %s in status %s", action, d.DocType, d.Name, d.Status))
	}
	return nil
}

func (d *SalesDocument) touch() {
	d.UpdatedAt = time.Now()
}
