package partner

import (
	"strings"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressType classifies an address
type AddressType string

const (
	AddressTypeBilling    AddressType = "Billing"
	AddressTypeShipping   AddressType = "Shipping"
	AddressTypeOffice     AddressType = "Office"
	AddressTypePersonal   AddressType = "Personal"
	AddressTypePlant      AddressType = "Plant"
	AddressTypePostal     AddressType = "Postal"
	AddressTypeShop       AddressType = "Shop"
	AddressTypeSubsidiary AddressType = "Subsidiary"
	AddressTypeWarehouse  AddressType = "Warehouse"
	AddressTypeOther      AddressType = "Other"
)

// IsValid reports whether t is a known address type
func (t AddressType) IsValid() bool {
	switch t {
	case AddressTypeBilling, AddressTypeShipping, AddressTypeOffice, AddressTypePersonal,
		AddressTypePlant, AddressTypePostal, AddressTypeShop, AddressTypeSubsidiary,
		AddressTypeWarehouse, AddressTypeOther:
		return true
	}
	return false
}

// Address is a postal address attached to linked documents
type Address struct {
	shared.TenantAggregateRoot
	Name              string
	AddressTitle      string
	AddressType       AddressType
	AddressLine1      string
	AddressLine2      string
	City              string
	State             string
	Pincode           string
	Country           string
	Phone             string
	EmailID           string
	IsPrimaryAddress  bool
	IsShippingAddress bool
	Links             Links
}

// AddressLines groups the postal fields of an address
type AddressLines struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Country      string
}

// NewAddress creates an address. When no title is given the first link name is used.
func NewAddress(tenantID uuid.UUID, title string, addressType AddressType, lines AddressLines, links Links) (*Address, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(links.FirstName())
	}
	if title == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Address Title is mandatory")
	}
	if addressType == "" {
		addressType = AddressTypeBilling
	}
	if !addressType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid address type")
	}
	if err := lines.validate(); err != nil {
		return nil, err
	}

	return &Address{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AddressTitle:        title,
		AddressType:         addressType,
		AddressLine1:        lines.AddressLine1,
		AddressLine2:        lines.AddressLine2,
		City:                lines.City,
		State:               lines.State,
		Pincode:             lines.Pincode,
		Country:             lines.Country,
		IsShippingAddress:   addressType == AddressTypeShipping,
		Links:               append(Links{}, links...),
	}, nil
}

func (l AddressLines) validate() error {
	if strings.TrimSpace(l.AddressLine1) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Address Line 1 is required")
	}
	if strings.TrimSpace(l.City) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "City/Town is required")
	}
	if strings.TrimSpace(l.Country) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Country is required")
	}
	return nil
}

// SetReachability sets the phone and email printed with the address
func (a *Address) SetReachability(phone, email string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	a.Phone = phone
	a.EmailID = strings.ToLower(email)
	a.UpdatedAt = time.Now()
	return nil
}

// SetPrimary flags the address as the default billing address
func (a *Address) SetPrimary(primary bool) {
	a.IsPrimaryAddress = primary
	a.UpdatedAt = time.Now()
}

// SetShipping flags the address as the preferred shipping address
func (a *Address) SetShipping(shipping bool) {
	a.IsShippingAddress = shipping
	a.UpdatedAt = time.Now()
}

// Display renders the address as printed on documents, one field per line
func (a *Address) Display() string {
	var b strings.Builder
	line := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	line(a.AddressLine1)
	line(a.AddressLine2)
	line(a.City)
	line(a.State)
	line(a.Pincode)
	line(a.Country)
	if a.Phone != "" {
		line("Phone: " + a.Phone)
	}
	if a.EmailID != "" {
		line("Email: " + a.EmailID)
	}
	return b.String()
}

// AddressBaseName derives the name before clash suffixing: "<title>-<type>"
func AddressBaseName(a *Address) string {
	return strings.TrimSpace(a.AddressTitle) + "-" + string(a.AddressType)
}
