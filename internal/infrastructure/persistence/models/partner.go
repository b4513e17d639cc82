package models

import (
	"time"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Parent types stored on dynamic link rows
const (
	ParentTypeContact = "Contact"
	ParentTypeAddress = "Address"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	TenantAggregateModel
	Name             string                    `gorm:"type:varchar(140);not null;index"`
	CustomerName     string                    `gorm:"type:varchar(140);not null;index"`
	CustomerType     partner.CustomerType      `gorm:"type:varchar(20);not null"`
	CustomerGroup    string                    `gorm:"type:varchar(140);not null"`
	Territory        string                    `gorm:"type:varchar(140);not null"`
	DefaultPriceList string                    `gorm:"type:varchar(140)"`
	DefaultCurrency  string                    `gorm:"type:varchar(3)"`
	CreditLimit      decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	IsFrozen         bool                      `gorm:"not null;default:false"`
	Disabled         bool                      `gorm:"not null;default:false"`
	SalesTeam        []partner.SalesTeamMember `gorm:"serializer:json;type:text"`
	TaxID            string                    `gorm:"type:varchar(50)"`
	Notes            string                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	team := m.SalesTeam
	if team == nil {
		team = []partner.SalesTeamMember{}
	}
	return &partner.Customer{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		CustomerName:        m.CustomerName,
		CustomerType:        m.CustomerType,
		CustomerGroup:       m.CustomerGroup,
		Territory:           m.Territory,
		DefaultPriceList:    m.DefaultPriceList,
		DefaultCurrency:     m.DefaultCurrency,
		CreditLimit:         m.CreditLimit,
		IsFrozen:            m.IsFrozen,
		Disabled:            m.Disabled,
		SalesTeam:           team,
		TaxID:               m.TaxID,
		Notes:               m.Notes,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:             c.Name,
		CustomerName:     c.CustomerName,
		CustomerType:     c.CustomerType,
		CustomerGroup:    c.CustomerGroup,
		Territory:        c.Territory,
		DefaultPriceList: c.DefaultPriceList,
		DefaultCurrency:  c.DefaultCurrency,
		CreditLimit:      c.CreditLimit,
		IsFrozen:         c.IsFrozen,
		Disabled:         c.Disabled,
		SalesTeam:        c.SalesTeam,
		TaxID:            c.TaxID,
		Notes:            c.Notes,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// CustomerGroupModel is the persistence model for customer groups
type CustomerGroupModel struct {
	TenantAggregateModel
	Name             string          `gorm:"type:varchar(140);not null;index"`
	ParentGroup      string          `gorm:"type:varchar(140)"`
	CreditLimit      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DefaultPriceList string          `gorm:"type:varchar(140)"`
}

// TableName returns the table name for GORM
func (CustomerGroupModel) TableName() string {
	return "customer_groups"
}

// ToDomain converts the persistence model to a domain CustomerGroup
func (m *CustomerGroupModel) ToDomain() *partner.CustomerGroup {
	return &partner.CustomerGroup{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		ParentGroup:         m.ParentGroup,
		CreditLimit:         m.CreditLimit,
		DefaultPriceList:    m.DefaultPriceList,
	}
}

// CustomerGroupModelFromDomain creates a persistence model from a domain CustomerGroup
func CustomerGroupModelFromDomain(g *partner.CustomerGroup) *CustomerGroupModel {
	m := &CustomerGroupModel{
		Name:             g.Name,
		ParentGroup:      g.ParentGroup,
		CreditLimit:      g.CreditLimit,
		DefaultPriceList: g.DefaultPriceList,
	}
	m.FromDomainTenantAggregateRoot(g.TenantAggregateRoot)
	return m
}

// DynamicLinkModel attaches a contact or address to another document by name
type DynamicLinkModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ParentType  string    `gorm:"type:varchar(40);not null;index:idx_dynamic_links_parent,priority:1"`
	ParentID    uuid.UUID `gorm:"type:uuid;not null;index:idx_dynamic_links_parent,priority:2"`
	Idx         int       `gorm:"not null;default:0"`
	LinkDoctype string    `gorm:"type:varchar(140);not null;index:idx_dynamic_links_target,priority:1"`
	LinkName    string    `gorm:"type:varchar(140);not null;index:idx_dynamic_links_target,priority:2"`
}

// TableName returns the table name for GORM
func (DynamicLinkModel) TableName() string {
	return "dynamic_links"
}

// DynamicLinkModelsFromDomain creates link rows for a parent document
func DynamicLinkModelsFromDomain(tenantID uuid.UUID, parentType string, parentID uuid.UUID, links partner.Links) []DynamicLinkModel {
	rows := make([]DynamicLinkModel, len(links))
	for i, link := range links {
		rows[i] = DynamicLinkModel{
			ID:          uuid.New(),
			TenantID:    tenantID,
			ParentType:  parentType,
			ParentID:    parentID,
			Idx:         i,
			LinkDoctype: link.LinkDoctype,
			LinkName:    link.LinkName,
		}
	}
	return rows
}

// LinksToDomain converts ordered link rows to domain links
func LinksToDomain(rows []DynamicLinkModel) partner.Links {
	links := make(partner.Links, len(rows))
	for i, row := range rows {
		links[i] = partner.DynamicLink{LinkDoctype: row.LinkDoctype, LinkName: row.LinkName}
	}
	return links
}

// ContactModel is the persistence model for contacts
type ContactModel struct {
	TenantAggregateModel
	Name             string `gorm:"type:varchar(280);not null;index"`
	FirstName        string `gorm:"type:varchar(140);not null"`
	LastName         string `gorm:"type:varchar(140)"`
	EmailID          string `gorm:"type:varchar(200)"`
	Phone            string `gorm:"type:varchar(50)"`
	MobileNo         string `gorm:"type:varchar(50)"`
	Designation      string `gorm:"type:varchar(140)"`
	Department       string `gorm:"type:varchar(140)"`
	IsPrimaryContact bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model and its link rows to a domain Contact
func (m *ContactModel) ToDomain(links []DynamicLinkModel) *partner.Contact {
	return &partner.Contact{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		EmailID:             m.EmailID,
		Phone:               m.Phone,
		MobileNo:            m.MobileNo,
		Designation:         m.Designation,
		Department:          m.Department,
		IsPrimaryContact:    m.IsPrimaryContact,
		Links:               LinksToDomain(links),
	}
}

// ContactModelFromDomain creates a persistence model from a domain Contact
func ContactModelFromDomain(c *partner.Contact) *ContactModel {
	m := &ContactModel{
		Name:             c.Name,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		EmailID:          c.EmailID,
		Phone:            c.Phone,
		MobileNo:         c.MobileNo,
		Designation:      c.Designation,
		Department:       c.Department,
		IsPrimaryContact: c.IsPrimaryContact,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// AddressModel is the persistence model for addresses
type AddressModel struct {
	TenantAggregateModel
	Name              string              `gorm:"type:varchar(280);not null;index"`
	AddressTitle      string              `gorm:"type:varchar(140);not null"`
	AddressType       partner.AddressType `gorm:"type:varchar(20);not null"`
	AddressLine1      string              `gorm:"type:varchar(240);not null"`
	AddressLine2      string              `gorm:"type:varchar(240)"`
	City              string              `gorm:"type:varchar(140);not null"`
	State             string              `gorm:"type:varchar(140)"`
	Pincode           string              `gorm:"type:varchar(20)"`
	Country           string              `gorm:"type:varchar(140);not null"`
	Phone             string              `gorm:"type:varchar(50)"`
	EmailID           string              `gorm:"type:varchar(200)"`
	IsPrimaryAddress  bool                `gorm:"not null;default:false"`
	IsShippingAddress bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model and its link rows to a domain Address
func (m *AddressModel) ToDomain(links []DynamicLinkModel) *partner.Address {
	return &partner.Address{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		AddressTitle:        m.AddressTitle,
		AddressType:         m.AddressType,
		AddressLine1:        m.AddressLine1,
		AddressLine2:        m.AddressLine2,
		City:                m.City,
		State:               m.State,
		Pincode:             m.Pincode,
		Country:             m.Country,
		Phone:               m.Phone,
		EmailID:             m.EmailID,
		IsPrimaryAddress:    m.IsPrimaryAddress,
		IsShippingAddress:   m.IsShippingAddress,
		Links:               LinksToDomain(links),
	}
}

// AddressModelFromDomain creates a persistence model from a domain Address
func AddressModelFromDomain(a *partner.Address) *AddressModel {
	m := &AddressModel{
		Name:              a.Name,
		AddressTitle:      a.AddressTitle,
		AddressType:       a.AddressType,
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
	}
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	return m
}

// CommentModel is the persistence model for comments on documents
type CommentModel struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	ReferenceDoctype string              `gorm:"type:varchar(140);not null;index:idx_comments_reference,priority:1"`
	ReferenceName    string              `gorm:"type:varchar(140);not null;index:idx_comments_reference,priority:2"`
	CommentType      partner.CommentType `gorm:"type:varchar(20);not null"`
	Content          string              `gorm:"type:text;not null"`
	CommentBy        string              `gorm:"type:varchar(140)"`
	CreatedAt        time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment
func (m *CommentModel) ToDomain() *partner.Comment {
	return &partner.Comment{
		ID:               m.ID,
		TenantID:         m.TenantID,
		ReferenceDoctype: m.ReferenceDoctype,
		ReferenceName:    m.ReferenceName,
		CommentType:      m.CommentType,
		Content:          m.Content,
		CommentBy:        m.CommentBy,
		CreatedAt:        m.CreatedAt,
	}
}

// CommentModelFromDomain creates a persistence model from a domain Comment
func CommentModelFromDomain(c *partner.Comment) *CommentModel {
	return &CommentModel{
		ID:               c.ID,
		TenantID:         c.TenantID,
		ReferenceDoctype: c.ReferenceDoctype,
		ReferenceName:    c.ReferenceName,
		CommentType:      c.CommentType,
		Content:          c.Content,
		CommentBy:        c.CommentBy,
		CreatedAt:        c.CreatedAt,
	}
}
