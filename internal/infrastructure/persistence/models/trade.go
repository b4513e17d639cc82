package models

import (
	"time"

	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesDocumentModel holds the columns shared by the selling document tables
type SalesDocumentModel struct {
	TenantAggregateModel
	Name             string          `gorm:"type:varchar(140);not null;index"`
	Customer         string          `gorm:"type:varchar(140);not null;index"`
	CustomerName     string          `gorm:"type:varchar(140)"`
	Company          string          `gorm:"type:varchar(140);not null"`
	PostingDate      time.Time       `gorm:"not null"`
	Currency         string          `gorm:"type:varchar(3)"`
	SellingPriceList string          `gorm:"type:varchar(140)"`
	Taxes            []trade.TaxLine `gorm:"serializer:json;type:text"`
	NetTotal         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTaxes       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DocStatus        int             `gorm:"not null;default:0;index"`
	Status           string          `gorm:"type:varchar(20);not null"`
	Remarks          string          `gorm:"type:text"`
}

func (m *SalesDocumentModel) fromDomain(d *trade.SalesDocument) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.Name = d.Name
	m.Customer = d.Customer
	m.CustomerName = d.CustomerName
	m.Company = d.Company
	m.PostingDate = d.PostingDate
	m.Currency = d.Currency
	m.SellingPriceList = d.SellingPriceList
	m.Taxes = d.Taxes
	m.NetTotal = d.NetTotal
	m.TotalTaxes = d.TotalTaxes
	m.GrandTotal = d.GrandTotal
	m.DocStatus = int(d.DocStatus)
	m.Status = d.Status
	m.Remarks = d.Remarks
}

func (m *SalesDocumentModel) toDomain(docType trade.DocType, items []SalesDocumentItemModel) trade.SalesDocument {
	taxes := m.Taxes
	if taxes == nil {
		taxes = []trade.TaxLine{}
	}
	lines := make([]trade.LineItem, len(items))
	for i := range items {
		lines[i] = items[i].ToDomain()
	}
	return trade.SalesDocument{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		DocType:             docType,
		Name:                m.Name,
		Customer:            m.Customer,
		CustomerName:        m.CustomerName,
		Company:             m.Company,
		PostingDate:         m.PostingDate,
		Currency:            m.Currency,
		SellingPriceList:    m.SellingPriceList,
		Items:               lines,
		Taxes:               taxes,
		NetTotal:            m.NetTotal,
		TotalTaxes:          m.TotalTaxes,
		GrandTotal:          m.GrandTotal,
		DocStatus:           trade.DocStatus(m.DocStatus),
		Status:              m.Status,
		Remarks:             m.Remarks,
	}
}

// SalesOrderModel is the persistence model for sales orders
type SalesOrderModel struct {
	SalesDocumentModel
	DeliveryDate time.Time       `gorm:"not null"`
	PerBilled    decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	BilledAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model and its rows to a domain SalesOrder
func (m *SalesOrderModel) ToDomain(items []SalesDocumentItemModel) *trade.SalesOrder {
	return &trade.SalesOrder{
		SalesDocument: m.toDomain(trade.DocTypeSalesOrder, items),
		DeliveryDate:  m.DeliveryDate,
		PerBilled:     m.PerBilled,
		BilledAmount:  m.BilledAmount,
	}
}

// SalesOrderModelFromDomain creates a persistence model from a domain SalesOrder
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		DeliveryDate: o.DeliveryDate,
		PerBilled:    o.PerBilled,
		BilledAmount: o.BilledAmount,
	}
	m.fromDomain(&o.SalesDocument)
	return m
}

// DeliveryNoteModel is the persistence model for delivery notes
type DeliveryNoteModel struct {
	SalesDocumentModel
}

// TableName returns the table name for GORM
func (DeliveryNoteModel) TableName() string {
	return "delivery_notes"
}

// ToDomain converts the persistence model and its rows to a domain DeliveryNote
func (m *DeliveryNoteModel) ToDomain(items []SalesDocumentItemModel) *trade.DeliveryNote {
	return &trade.DeliveryNote{SalesDocument: m.toDomain(trade.DocTypeDeliveryNote, items)}
}

// DeliveryNoteModelFromDomain creates a persistence model from a domain DeliveryNote
func DeliveryNoteModelFromDomain(n *trade.DeliveryNote) *DeliveryNoteModel {
	m := &DeliveryNoteModel{}
	m.fromDomain(&n.SalesDocument)
	return m
}

// SalesInvoiceModel is the persistence model for sales invoices
type SalesInvoiceModel struct {
	SalesDocumentModel
	DueDate           time.Time       `gorm:"not null"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesInvoiceModel) TableName() string {
	return "sales_invoices"
}

// ToDomain converts the persistence model and its rows to a domain SalesInvoice
func (m *SalesInvoiceModel) ToDomain(items []SalesDocumentItemModel) *trade.SalesInvoice {
	return &trade.SalesInvoice{
		SalesDocument:     m.toDomain(trade.DocTypeSalesInvoice, items),
		DueDate:           m.DueDate,
		OutstandingAmount: m.OutstandingAmount,
	}
}

// SalesInvoiceModelFromDomain creates a persistence model from a domain SalesInvoice
func SalesInvoiceModelFromDomain(i *trade.SalesInvoice) *SalesInvoiceModel {
	m := &SalesInvoiceModel{
		DueDate:           i.DueDate,
		OutstandingAmount: i.OutstandingAmount,
	}
	m.fromDomain(&i.SalesDocument)
	return m
}

// SalesDocumentItemModel is one row of any selling document
type SalesDocumentItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ParentType   string          `gorm:"type:varchar(40);not null;index:idx_sales_items_parent,priority:1"`
	ParentID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_items_parent,priority:2"`
	Idx          int             `gorm:"not null;default:0"`
	ItemCode     string          `gorm:"type:varchar(140);not null"`
	ItemName     string          `gorm:"type:varchar(140)"`
	Qty          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BilledAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalesOrder   string          `gorm:"type:varchar(140);index"`
	SODetail     *uuid.UUID      `gorm:"column:so_detail;type:uuid"`
	DeliveryNote string          `gorm:"type:varchar(140)"`
	DNDetail     *uuid.UUID      `gorm:"column:dn_detail;type:uuid;index"`
	SalesInvoice string          `gorm:"type:varchar(140)"`
	SIDetail     *uuid.UUID      `gorm:"column:si_detail;type:uuid"`
}

// TableName returns the table name for GORM
func (SalesDocumentItemModel) TableName() string {
	return "sales_document_items"
}

// ToDomain converts the row to a domain LineItem
func (m *SalesDocumentItemModel) ToDomain() trade.LineItem {
	return trade.LineItem{
		ID:           m.ID,
		ItemCode:     m.ItemCode,
		ItemName:     m.ItemName,
		Qty:          m.Qty,
		Rate:         m.Rate,
		Amount:       m.Amount,
		BilledAmount: m.BilledAmount,
		SalesOrder:   m.SalesOrder,
		SODetail:     m.SODetail,
		DeliveryNote: m.DeliveryNote,
		DNDetail:     m.DNDetail,
		SalesInvoice: m.SalesInvoice,
		SIDetail:     m.SIDetail,
	}
}

// SalesDocumentItemModelsFromDomain creates the row models of a document
func SalesDocumentItemModelsFromDomain(d *trade.SalesDocument) []SalesDocumentItemModel {
	rows := make([]SalesDocumentItemModel, len(d.Items))
	for i, item := range d.Items {
		rows[i] = SalesDocumentItemModel{
			ID:           item.ID,
			TenantID:     d.TenantID,
			ParentType:   string(d.DocType),
			ParentID:     d.ID,
			Idx:          i,
			ItemCode:     item.ItemCode,
			ItemName:     item.ItemName,
			Qty:          item.Qty,
			Rate:         item.Rate,
			Amount:       item.Amount,
			BilledAmount: item.BilledAmount,
			SalesOrder:   item.SalesOrder,
			SODetail:     item.SODetail,
			DeliveryNote: item.DeliveryNote,
			DNDetail:     item.DNDetail,
			SalesInvoice: item.SalesInvoice,
			SIDetail:     item.SIDetail,
		}
	}
	return rows
}

// All returns every persistence model, in dependency order, for auto-migration
func All() []any {
	return []any{
		&CustomerGroupModel{},
		&CustomerModel{},
		&ContactModel{},
		&AddressModel{},
		&DynamicLinkModel{},
		&CommentModel{},
		&CompanyModel{},
		&GLEntryModel{},
		&NamingSeriesModel{},
		&SalesOrderModel{},
		&DeliveryNoteModel{},
		&SalesInvoiceModel{},
		&SalesDocumentItemModel{},
	}
}
