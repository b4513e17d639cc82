package models

import (
	"time"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyModel is the persistence model for companies
type CompanyModel struct {
	TenantAggregateModel
	Name            string          `gorm:"type:varchar(140);not null;index"`
	Abbr            string          `gorm:"type:varchar(20)"`
	DefaultCurrency string          `gorm:"type:varchar(3);not null"`
	CreditLimit     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *finance.Company {
	return &finance.Company{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Abbr:                m.Abbr,
		DefaultCurrency:     m.DefaultCurrency,
		CreditLimit:         m.CreditLimit,
	}
}

// CompanyModelFromDomain creates a persistence model from a domain Company
func CompanyModelFromDomain(c *finance.Company) *CompanyModel {
	m := &CompanyModel{
		Name:            c.Name,
		Abbr:            c.Abbr,
		DefaultCurrency: c.DefaultCurrency,
		CreditLimit:     c.CreditLimit,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// GLEntryModel is the persistence model for receivable ledger entries
type GLEntryModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	PartyType   string              `gorm:"type:varchar(40);not null;index:idx_gl_entries_party,priority:1"`
	Party       string              `gorm:"type:varchar(140);not null;index:idx_gl_entries_party,priority:2"`
	Company     string              `gorm:"type:varchar(140);not null;index:idx_gl_entries_party,priority:3"`
	Debit       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Credit      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	VoucherType finance.VoucherType `gorm:"type:varchar(40);not null;index:idx_gl_entries_voucher,priority:1"`
	VoucherNo   string              `gorm:"type:varchar(140);not null;index:idx_gl_entries_voucher,priority:2"`
	PostingDate time.Time           `gorm:"not null"`
	Remarks     string              `gorm:"type:text"`
	IsCancelled bool                `gorm:"not null;default:false"`
	CreatedAt   time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GLEntryModel) TableName() string {
	return "gl_entries"
}

// ToDomain converts the persistence model to a domain GLEntry
func (m *GLEntryModel) ToDomain() *finance.GLEntry {
	return &finance.GLEntry{
		ID:          m.ID,
		TenantID:    m.TenantID,
		PartyType:   m.PartyType,
		Party:       m.Party,
		Company:     m.Company,
		Debit:       m.Debit,
		Credit:      m.Credit,
		VoucherType: m.VoucherType,
		VoucherNo:   m.VoucherNo,
		PostingDate: m.PostingDate,
		Remarks:     m.Remarks,
		IsCancelled: m.IsCancelled,
		CreatedAt:   m.CreatedAt,
	}
}

// GLEntryModelFromDomain creates a persistence model from a domain GLEntry
func GLEntryModelFromDomain(e *finance.GLEntry) *GLEntryModel {
	return &GLEntryModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		PartyType:   e.PartyType,
		Party:       e.Party,
		Company:     e.Company,
		Debit:       e.Debit,
		Credit:      e.Credit,
		VoucherType: e.VoucherType,
		VoucherNo:   e.VoucherNo,
		PostingDate: e.PostingDate,
		Remarks:     e.Remarks,
		IsCancelled: e.IsCancelled,
		CreatedAt:   e.CreatedAt,
	}
}

// NamingSeriesModel stores the last number handed out for a name prefix
type NamingSeriesModel struct {
	TenantID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Prefix       string    `gorm:"type:varchar(40);primaryKey"`
	CurrentValue int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NamingSeriesModel) TableName() string {
	return "naming_series"
}
