package partner

import (
	"time"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// SalesTeamMemberDTO is one sales team row
type SalesTeamMemberDTO struct {
	SalesPerson         string          `json:"sales_person" binding:"required,max=140"`
	AllocatedPercentage decimal.Decimal `json:"allocated_percentage"`
}

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	// Name forces the document name. When empty the configured naming mode applies.
	Name             string               `json:"name" binding:"omitempty,max=140"`
	CustomerName     string               `json:"customer_name" binding:"required,min=1,max=140"`
	CustomerType     string               `json:"customer_type" binding:"omitempty,oneof=Company Individual"`
	CustomerGroup    string               `json:"customer_group" binding:"omitempty,max=140"`
	Territory        string               `json:"territory" binding:"omitempty,max=140"`
	DefaultPriceList string               `json:"default_price_list" binding:"omitempty,max=140"`
	DefaultCurrency  string               `json:"default_currency" binding:"omitempty,len=3"`
	CreditLimit      *decimal.Decimal     `json:"credit_limit"`
	SalesTeam        []SalesTeamMemberDTO `json:"sales_team" binding:"omitempty,dive"`
	TaxID            string               `json:"tax_id" binding:"max=50"`
	Notes            string               `json:"notes"`
	CreatedBy        *uuid.UUID           `json:"-"` // Set from JWT context, not from request body
}

// UpdateCustomerRequest represents a partial update of a customer
type UpdateCustomerRequest struct {
	CustomerName     *string              `json:"customer_name" binding:"omitempty,min=1,max=140"`
	CustomerType     *string              `json:"customer_type" binding:"omitempty,oneof=Company Individual"`
	CustomerGroup    *string              `json:"customer_group" binding:"omitempty,min=1,max=140"`
	Territory        *string              `json:"territory" binding:"omitempty,min=1,max=140"`
	DefaultPriceList *string              `json:"default_price_list" binding:"omitempty,max=140"`
	DefaultCurrency  *string              `json:"default_currency" binding:"omitempty,len=3"`
	CreditLimit      *decimal.Decimal     `json:"credit_limit"`
	SalesTeam        []SalesTeamMemberDTO `json:"sales_team" binding:"omitempty,dive"`
	TaxID            *string              `json:"tax_id" binding:"omitempty,max=50"`
	Notes            *string              `json:"notes"`
	Version          *int                 `json:"version"`
}

// RenameCustomerRequest renames a customer, optionally merging into an existing one
type RenameCustomerRequest struct {
	NewName string `json:"new_name" binding:"required,min=1,max=140"`
	Merge   bool   `json:"merge"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID               uuid.UUID            `json:"id"`
	TenantID         uuid.UUID            `json:"tenant_id"`
	Name             string               `json:"name"`
	CustomerName     string               `json:"customer_name"`
	CustomerType     string               `json:"customer_type"`
	CustomerGroup    string               `json:"customer_group"`
	Territory        string               `json:"territory"`
	DefaultPriceList string               `json:"default_price_list,omitempty"`
	DefaultCurrency  string               `json:"default_currency,omitempty"`
	CreditLimit      decimal.Decimal      `json:"credit_limit"`
	IsFrozen         bool                 `json:"is_frozen"`
	Disabled         bool                 `json:"disabled"`
	SalesTeam        []SalesTeamMemberDTO `json:"sales_team"`
	TaxID            string               `json:"tax_id,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Version          int                  `json:"version"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search        string `form:"search"`
	CustomerGroup string `form:"customer_group"`
	Territory     string `form:"territory"`
	CustomerType  string `form:"customer_type" binding:"omitempty,oneof=Company Individual"`
	IsFrozen      *bool  `form:"is_frozen"`
	Disabled      *bool  `form:"disabled"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		Name:             c.Name,
		CustomerName:     c.CustomerName,
		CustomerType:     string(c.CustomerType),
		CustomerGroup:    c.CustomerGroup,
		Territory:        c.Territory,
		DefaultPriceList: c.DefaultPriceList,
		DefaultCurrency:  c.DefaultCurrency,
		CreditLimit:      c.CreditLimit,
		IsFrozen:         c.IsFrozen,
		Disabled:         c.Disabled,
		SalesTeam:        toSalesTeamDTOs(c.SalesTeam),
		TaxID:            c.TaxID,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		Version:          c.Version,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

func toSalesTeamDTOs(team []partner.SalesTeamMember) []SalesTeamMemberDTO {
	out := make([]SalesTeamMemberDTO, len(team))
	for i, m := range team {
		out[i] = SalesTeamMemberDTO{SalesPerson: m.SalesPerson, AllocatedPercentage: m.AllocatedPercentage}
	}
	return out
}

func fromSalesTeamDTOs(team []SalesTeamMemberDTO) []partner.SalesTeamMember {
	out := make([]partner.SalesTeamMember, len(team))
	for i, m := range team {
		out[i] = partner.SalesTeamMember{SalesPerson: m.SalesPerson, AllocatedPercentage: m.AllocatedPercentage}
	}
	return out
}

// =============================================================================
// Customer Group DTOs
// =============================================================================

// CreateCustomerGroupRequest represents a request to create a customer group
type CreateCustomerGroupRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=140"`
	ParentGroup      string           `json:"parent_group" binding:"max=140"`
	CreditLimit      *decimal.Decimal `json:"credit_limit"`
	DefaultPriceList string           `json:"default_price_list" binding:"max=140"`
}

// UpdateCustomerGroupRequest changes the inherited defaults of a group
type UpdateCustomerGroupRequest struct {
	CreditLimit      *decimal.Decimal `json:"credit_limit"`
	DefaultPriceList *string          `json:"default_price_list" binding:"omitempty,max=140"`
}

// CustomerGroupResponse represents a customer group in API responses
type CustomerGroupResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	ParentGroup      string          `json:"parent_group,omitempty"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	DefaultPriceList string          `json:"default_price_list,omitempty"`
}

// ToCustomerGroupResponse converts a domain CustomerGroup
func ToCustomerGroupResponse(g *partner.CustomerGroup) CustomerGroupResponse {
	return CustomerGroupResponse{
		ID:               g.ID,
		Name:             g.Name,
		ParentGroup:      g.ParentGroup,
		CreditLimit:      g.CreditLimit,
		DefaultPriceList: g.DefaultPriceList,
	}
}

// =============================================================================
// Contact & Address DTOs
// =============================================================================

// DynamicLinkDTO points a contact or address at a document
type DynamicLinkDTO struct {
	LinkDoctype string `json:"link_doctype" binding:"required"`
	LinkName    string `json:"link_name" binding:"required"`
}

// CreateContactRequest represents a request to create a contact
type CreateContactRequest struct {
	FirstName        string           `json:"first_name" binding:"required,min=1,max=140"`
	LastName         string           `json:"last_name" binding:"max=140"`
	EmailID          string           `json:"email_id" binding:"omitempty,email,max=200"`
	Phone            string           `json:"phone" binding:"max=50"`
	MobileNo         string           `json:"mobile_no" binding:"max=50"`
	Designation      string           `json:"designation" binding:"max=140"`
	Department       string           `json:"department" binding:"max=140"`
	IsPrimaryContact bool             `json:"is_primary_contact"`
	Links            []DynamicLinkDTO `json:"links" binding:"omitempty,dive"`
	CreatedBy        *uuid.UUID       `json:"-"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name,omitempty"`
	FullName         string           `json:"full_name"`
	EmailID          string           `json:"email_id,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	MobileNo         string           `json:"mobile_no,omitempty"`
	Designation      string           `json:"designation,omitempty"`
	Department       string           `json:"department,omitempty"`
	IsPrimaryContact bool             `json:"is_primary_contact"`
	Links            []DynamicLinkDTO `json:"links"`
}

// CreateAddressRequest represents a request to create an address
type CreateAddressRequest struct {
	AddressTitle      string           `json:"address_title" binding:"max=140"`
	AddressType       string           `json:"address_type" binding:"omitempty,oneof=Billing Shipping Office Personal Plant Postal Shop Subsidiary Warehouse Other"`
	AddressLine1      string           `json:"address_line1" binding:"required,max=240"`
	AddressLine2      string           `json:"address_line2" binding:"max=240"`
	City              string           `json:"city" binding:"required,max=140"`
	State             string           `json:"state" binding:"max=140"`
	Pincode           string           `json:"pincode" binding:"max=20"`
	Country           string           `json:"country" binding:"required,max=140"`
	Phone             string           `json:"phone" binding:"max=50"`
	EmailID           string           `json:"email_id" binding:"omitempty,email,max=200"`
	IsPrimaryAddress  bool             `json:"is_primary_address"`
	IsShippingAddress bool             `json:"is_shipping_address"`
	Links             []DynamicLinkDTO `json:"links" binding:"omitempty,dive"`
	CreatedBy         *uuid.UUID       `json:"-"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	AddressTitle      string           `json:"address_title"`
	AddressType       string           `json:"address_type"`
	AddressLine1      string           `json:"address_line1"`
	AddressLine2      string           `json:"address_line2,omitempty"`
	City              string           `json:"city"`
	State             string           `json:"state,omitempty"`
	Pincode           string           `json:"pincode,omitempty"`
	Country           string           `json:"country"`
	Phone             string           `json:"phone,omitempty"`
	EmailID           string           `json:"email_id,omitempty"`
	IsPrimaryAddress  bool             `json:"is_primary_address"`
	IsShippingAddress bool             `json:"is_shipping_address"`
	Display           string           `json:"address_display"`
	Links             []DynamicLinkDTO `json:"links"`
}

// ToContactResponse converts a domain Contact
func ToContactResponse(c *partner.Contact) ContactResponse {
	return ContactResponse{
		ID:               c.ID,
		Name:             c.Name,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		FullName:         c.FullName(),
		EmailID:          c.EmailID,
		Phone:            c.Phone,
		MobileNo:         c.MobileNo,
		Designation:      c.Designation,
		Department:       c.Department,
		IsPrimaryContact: c.IsPrimaryContact,
		Links:            toLinkDTOs(c.Links),
	}
}

// ToAddressResponse converts a domain Address
func ToAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{
		ID:                a.ID,
		Name:              a.Name,
		AddressTitle:      a.AddressTitle,
		AddressType:       string(a.AddressType),
		AddressLine1:      a.AddressLine1,
		AddressLine2:      a.AddressLine2,
		City:              a.City,
		State:             a.State,
		Pincode:           a.Pincode,
		Country:           a.Country,
		Phone:             a.Phone,
		EmailID:           a.EmailID,
		IsPrimaryAddress:  a.IsPrimaryAddress,
		IsShippingAddress: a.IsShippingAddress,
		Display:           a.Display(),
		Links:             toLinkDTOs(a.Links),
	}
}

func toLinkDTOs(links partner.Links) []DynamicLinkDTO {
	out := make([]DynamicLinkDTO, len(links))
	for i, l := range links {
		out[i] = DynamicLinkDTO{LinkDoctype: l.LinkDoctype, LinkName: l.LinkName}
	}
	return out
}

func fromLinkDTOs(links []DynamicLinkDTO) partner.Links {
	out := make(partner.Links, len(links))
	for i, l := range links {
		out[i] = partner.DynamicLink{LinkDoctype: l.LinkDoctype, LinkName: l.LinkName}
	}
	return out
}

// =============================================================================
// Comment DTOs
// =============================================================================

// AddCommentRequest adds a comment to a customer's timeline
type AddCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID               uuid.UUID `json:"id"`
	ReferenceDoctype string    `json:"reference_doctype"`
	ReferenceName    string    `json:"reference_name"`
	CommentType      string    `json:"comment_type"`
	Content          string    `json:"content"`
	CommentBy        string    `json:"comment_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToCommentResponse converts a domain Comment
func ToCommentResponse(c *partner.Comment) CommentResponse {
	return CommentResponse{
		ID:               c.ID,
		ReferenceDoctype: c.ReferenceDoctype,
		ReferenceName:    c.ReferenceName,
		CommentType:      string(c.CommentType),
		Content:          c.Content,
		CommentBy:        c.CommentBy,
		CreatedAt:        c.CreatedAt,
	}
}

// =============================================================================
// Party & credit DTOs
// =============================================================================

// PartyDetails is the set of defaults a selling document copies from its customer.
// Pointer fields are null in JSON when unset.
type PartyDetails struct {
	Customer            string               `json:"customer"`
	CustomerName        string               `json:"customer_name"`
	CustomerGroup       string               `json:"customer_group"`
	Territory           string               `json:"territory"`
	CustomerAddress     *string              `json:"customer_address"`
	AddressDisplay      *string              `json:"address_display"`
	ShippingAddressName *string              `json:"shipping_address_name"`
	ContactPerson       *string              `json:"contact_person"`
	ContactDisplay      *string              `json:"contact_display"`
	ContactEmail        *string              `json:"contact_email"`
	ContactMobile       *string              `json:"contact_mobile"`
	ContactPhone        *string              `json:"contact_phone"`
	ContactDesignation  *string              `json:"contact_designation"`
	ContactDepartment   *string              `json:"contact_department"`
	SellingPriceList    *string              `json:"selling_price_list"`
	Currency            *string              `json:"currency"`
	SalesTeam           []SalesTeamMemberDTO `json:"sales_team"`
}

// CreditSummary reports a customer's limit and outstanding for one company
type CreditSummary struct {
	Customer    string          `json:"customer"`
	Company     string          `json:"company"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Outstanding decimal.Decimal `json:"outstanding"`
	// Available is nil when no limit applies
	Available *decimal.Decimal `json:"available"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
