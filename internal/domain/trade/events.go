package trade

import (
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeSalesOrderSubmitted   = "SalesOrderSubmitted"
	EventTypeSalesOrderCancelled   = "SalesOrderCancelled"
	EventTypeSalesOrderClosed      = "SalesOrderClosed"
	EventTypeDeliveryNoteSubmitted = "DeliveryNoteSubmitted"
	EventTypeDeliveryNoteCancelled = "DeliveryNoteCancelled"
	EventTypeSalesInvoiceSubmitted = "SalesInvoiceSubmitted"
	EventTypeSalesInvoiceCancelled = "SalesInvoiceCancelled"
)

// SalesDocumentEvent is published on lifecycle transitions of selling documents
type SalesDocumentEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID       `json:"document_id"`
	DocType    DocType         `json:"doctype"`
	Name       string          `json:"name"`
	Customer   string          `json:"customer"`
	Company    string          `json:"company"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Status     string          `json:"status"`
}

// NewSalesDocumentEvent creates an event of eventType for doc
func NewSalesDocumentEvent(eventType string, doc *SalesDocument) *SalesDocumentEvent {
	return &SalesDocumentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, string(doc.DocType), doc.ID, doc.TenantID),
		DocumentID:      doc.ID,
		DocType:         doc.DocType,
		Name:            doc.Name,
		Customer:        doc.Customer,
		Company:         doc.Company,
		GrandTotal:      doc.GrandTotal,
		Status:          doc.Status,
	}
}
