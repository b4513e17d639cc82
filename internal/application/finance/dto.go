package finance

import (
	"time"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Company DTOs ====================

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Name            string           `json:"company_name" binding:"required,min=1,max=140"`
	Abbr            string           `json:"abbr" binding:"max=10"`
	DefaultCurrency string           `json:"default_currency" binding:"required,len=3"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
}

// UpdateCompanyCreditLimitRequest represents a request to change the company-wide credit limit
type UpdateCompanyCreditLimitRequest struct {
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"company_name"`
	Abbr            string          `json:"abbr"`
	DefaultCurrency string          `json:"default_currency"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToCompanyResponse converts a domain Company to CompanyResponse
func ToCompanyResponse(c *finance.Company) CompanyResponse {
	return CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		Abbr:            c.Abbr,
		DefaultCurrency: c.DefaultCurrency,
		CreditLimit:     c.CreditLimit,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ==================== Payment DTOs ====================

// RecordPaymentRequest represents a payment received from a customer
type RecordPaymentRequest struct {
	Customer    string          `json:"party" binding:"required,max=140"`
	Company     string          `json:"company" binding:"required,max=140"`
	Amount      decimal.Decimal `json:"paid_amount" binding:"required"`
	Reference   string          `json:"reference_no" binding:"max=140"`
	PostingDate *time.Time      `json:"posting_date"`
}

// PaymentResponse represents a recorded payment
type PaymentResponse struct {
	VoucherNo   string          `json:"name"`
	Customer    string          `json:"party"`
	Company     string          `json:"company"`
	Amount      decimal.Decimal `json:"paid_amount"`
	Reference   string          `json:"reference_no"`
	PostingDate time.Time       `json:"posting_date"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// GLEntryResponse represents a ledger line in API responses
type GLEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Party       string          `json:"party"`
	Company     string          `json:"company"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	VoucherType string          `json:"voucher_type"`
	VoucherNo   string          `json:"voucher_no"`
	PostingDate time.Time       `json:"posting_date"`
	Remarks     string          `json:"remarks"`
	IsCancelled bool            `json:"is_cancelled"`
}

// ToGLEntryResponse converts a domain GLEntry to GLEntryResponse
func ToGLEntryResponse(e *finance.GLEntry) GLEntryResponse {
	return GLEntryResponse{
		ID:          e.ID,
		Party:       e.Party,
		Company:     e.Company,
		Debit:       e.Debit,
		Credit:      e.Credit,
		VoucherType: string(e.VoucherType),
		VoucherNo:   e.VoucherNo,
		PostingDate: e.PostingDate,
		Remarks:     e.Remarks,
		IsCancelled: e.IsCancelled,
	}
}

// LedgerResponse lists a customer's ledger lines with the running balance
type LedgerResponse struct {
	Customer string            `json:"party"`
	Company  string            `json:"company"`
	Entries  []GLEntryResponse `json:"entries"`
	Balance  decimal.Decimal   `json:"balance"`
}
