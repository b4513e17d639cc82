package trade

import (
	"time"

	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Shared Document DTOs ====================

// LineItemRequest is one item row in a create or update request
type LineItemRequest struct {
	ItemCode     string          `json:"item_code" binding:"required,max=140"`
	ItemName     string          `json:"item_name" binding:"max=140"`
	Qty          decimal.Decimal `json:"qty" binding:"required"`
	Rate         decimal.Decimal `json:"rate"`
	SalesOrder   string          `json:"sales_order"`
	SODetail     *uuid.UUID      `json:"so_detail"`
	DeliveryNote string          `json:"delivery_note"`
	DNDetail     *uuid.UUID      `json:"dn_detail"`
	SalesInvoice string          `json:"sales_invoice"`
	SIDetail     *uuid.UUID      `json:"si_detail"`
}

// TaxLineRequest is one tax row in a create or update request
type TaxLineRequest struct {
	Description string          `json:"description" binding:"required,max=140"`
	Rate        decimal.Decimal `json:"rate"`
}

// UpdateSalesDocumentRequest edits a draft. Nil fields are left unchanged;
// a non-nil Items or Taxes slice replaces the whole table.
type UpdateSalesDocumentRequest struct {
	Customer         *string           `json:"customer" binding:"omitempty,min=1,max=140"`
	Company          *string           `json:"company" binding:"omitempty,min=1,max=140"`
	PostingDate      *time.Time        `json:"posting_date"`
	Currency         *string           `json:"currency" binding:"omitempty,len=3"`
	SellingPriceList *string           `json:"selling_price_list"`
	Items            []LineItemRequest `json:"items" binding:"omitempty,dive"`
	Taxes            []TaxLineRequest  `json:"taxes" binding:"omitempty,dive"`
	Remarks          *string           `json:"remarks"`
	Version          *int              `json:"version"`
}

// SalesDocumentListFilter represents filter options for listing selling documents
type SalesDocumentListFilter struct {
	Search    string `form:"search"`
	Customer  string `form:"customer"`
	Company   string `form:"company"`
	Status    string `form:"status"`
	DocStatus *int   `form:"docstatus" binding:"omitempty,min=0,max=2"`
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LineItemResponse represents an item row in API responses
type LineItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Qty          decimal.Decimal `json:"qty"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
	BilledAmount decimal.Decimal `json:"billed_amt"`
	SalesOrder   string          `json:"sales_order,omitempty"`
	SODetail     *uuid.UUID      `json:"so_detail,omitempty"`
	DeliveryNote string          `json:"delivery_note,omitempty"`
	DNDetail     *uuid.UUID      `json:"dn_detail,omitempty"`
	SalesInvoice string          `json:"sales_invoice,omitempty"`
	SIDetail     *uuid.UUID      `json:"si_detail,omitempty"`
}

// TaxLineResponse represents a tax row in API responses
type TaxLineResponse struct {
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// SalesDocumentResponse carries the fields common to every selling document
type SalesDocumentResponse struct {
	ID               uuid.UUID          `json:"id"`
	TenantID         uuid.UUID          `json:"tenant_id"`
	DocType          string             `json:"doctype"`
	Name             string             `json:"name"`
	Customer         string             `json:"customer"`
	CustomerName     string             `json:"customer_name"`
	Company          string             `json:"company"`
	PostingDate      time.Time          `json:"posting_date"`
	Currency         string             `json:"currency"`
	SellingPriceList string             `json:"selling_price_list"`
	Items            []LineItemResponse `json:"items"`
	Taxes            []TaxLineResponse  `json:"taxes"`
	NetTotal         decimal.Decimal    `json:"net_total"`
	TotalTaxes       decimal.Decimal    `json:"total_taxes_and_charges"`
	GrandTotal       decimal.Decimal    `json:"grand_total"`
	DocStatus        int                `json:"docstatus"`
	Status           string             `json:"status"`
	Remarks          string             `json:"remarks"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	Version          int                `json:"version"`
}

// toSalesDocumentResponse converts the shared part of a document
func toSalesDocumentResponse(d *trade.SalesDocument) SalesDocumentResponse {
	items := make([]LineItemResponse, len(d.Items))
	for i, row := range d.Items {
		items[i] = LineItemResponse{
			ID:           row.ID,
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			Qty:          row.Qty,
			Rate:         row.Rate,
			Amount:       row.Amount,
			BilledAmount: row.BilledAmount,
			SalesOrder:   row.SalesOrder,
			SODetail:     row.SODetail,
			DeliveryNote: row.DeliveryNote,
			DNDetail:     row.DNDetail,
			SalesInvoice: row.SalesInvoice,
			SIDetail:     row.SIDetail,
		}
	}
	taxes := make([]TaxLineResponse, len(d.Taxes))
	for i, tax := range d.Taxes {
		taxes[i] = TaxLineResponse{Description: tax.Description, Rate: tax.Rate, TaxAmount: tax.TaxAmount}
	}
	return SalesDocumentResponse{
		ID:               d.ID,
		TenantID:         d.TenantID,
		DocType:          string(d.DocType),
		Name:             d.Name,
		Customer:         d.Customer,
		CustomerName:     d.CustomerName,
		Company:          d.Company,
		PostingDate:      d.PostingDate,
		Currency:         d.Currency,
		SellingPriceList: d.SellingPriceList,
		Items:            items,
		Taxes:            taxes,
		NetTotal:         d.NetTotal,
		TotalTaxes:       d.TotalTaxes,
		GrandTotal:       d.GrandTotal,
		DocStatus:        int(d.DocStatus),
		Status:           d.Status,
		Remarks:          d.Remarks,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		Version:          d.Version,
	}
}

// ==================== Sales Order DTOs ====================

// CreateSalesOrderRequest represents a request to create a draft sales order
type CreateSalesOrderRequest struct {
	Customer         string            `json:"customer" binding:"required,max=140"`
	Company          string            `json:"company" binding:"required,max=140"`
	PostingDate      *time.Time        `json:"transaction_date"`
	DeliveryDate     *time.Time        `json:"delivery_date"`
	Currency         string            `json:"currency" binding:"omitempty,len=3"`
	SellingPriceList string            `json:"selling_price_list"`
	Items            []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Taxes            []TaxLineRequest  `json:"taxes" binding:"omitempty,dive"`
	Remarks          string            `json:"remarks"`
}

// UpdateSalesOrderRequest represents a request to edit a draft sales order
type UpdateSalesOrderRequest struct {
	UpdateSalesDocumentRequest
	DeliveryDate *time.Time `json:"delivery_date"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	SalesDocumentResponse
	DeliveryDate time.Time       `json:"delivery_date"`
	PerBilled    decimal.Decimal `json:"per_billed"`
	BilledAmount decimal.Decimal `json:"billed_amount"`
}

// ToSalesOrderResponse converts a domain SalesOrder to SalesOrderResponse
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		SalesDocumentResponse: toSalesDocumentResponse(&o.SalesDocument),
		DeliveryDate:          o.DeliveryDate,
		PerBilled:             o.PerBilled,
		BilledAmount:          o.BilledAmount,
	}
}

// ==================== Delivery Note DTOs ====================

// CreateDeliveryNoteRequest represents a request to create a draft delivery note
type CreateDeliveryNoteRequest struct {
	Customer         string            `json:"customer" binding:"required,max=140"`
	Company          string            `json:"company" binding:"required,max=140"`
	PostingDate      *time.Time        `json:"posting_date"`
	Currency         string            `json:"currency" binding:"omitempty,len=3"`
	SellingPriceList string            `json:"selling_price_list"`
	Items            []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Taxes            []TaxLineRequest  `json:"taxes" binding:"omitempty,dive"`
	Remarks          string            `json:"remarks"`
}

// DeliveryNoteResponse represents a delivery note in API responses
type DeliveryNoteResponse struct {
	SalesDocumentResponse
}

// ToDeliveryNoteResponse converts a domain DeliveryNote to DeliveryNoteResponse
func ToDeliveryNoteResponse(n *trade.DeliveryNote) DeliveryNoteResponse {
	return DeliveryNoteResponse{SalesDocumentResponse: toSalesDocumentResponse(&n.SalesDocument)}
}

// ==================== Sales Invoice DTOs ====================

// CreateSalesInvoiceRequest represents a request to create a draft sales invoice
type CreateSalesInvoiceRequest struct {
	Customer         string            `json:"customer" binding:"required,max=140"`
	Company          string            `json:"company" binding:"required,max=140"`
	PostingDate      *time.Time        `json:"posting_date"`
	DueDate          *time.Time        `json:"due_date"`
	Currency         string            `json:"currency" binding:"omitempty,len=3"`
	SellingPriceList string            `json:"selling_price_list"`
	Items            []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Taxes            []TaxLineRequest  `json:"taxes" binding:"omitempty,dive"`
	Remarks          string            `json:"remarks"`
}

// MakeSalesInvoiceRequest represents a request to invoice a sales order
type MakeSalesInvoiceRequest struct {
	PostingDate *time.Time `json:"posting_date"`
}

// SalesInvoiceResponse represents a sales invoice in API responses
type SalesInvoiceResponse struct {
	SalesDocumentResponse
	DueDate           time.Time       `json:"due_date"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// ToSalesInvoiceResponse converts a domain SalesInvoice to SalesInvoiceResponse
func ToSalesInvoiceResponse(i *trade.SalesInvoice) SalesInvoiceResponse {
	return SalesInvoiceResponse{
		SalesDocumentResponse: toSalesDocumentResponse(&i.SalesDocument),
		DueDate:               i.DueDate,
		OutstandingAmount:     i.OutstandingAmount,
	}
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
