package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// Contact is a person reachable on behalf of one or more linked documents
type Contact struct {
	shared.TenantAggregateRoot
	Name             string
	FirstName        string
	LastName         string
	EmailID          string
	Phone            string
	MobileNo         string
	Designation      string
	Department       string
	IsPrimaryContact bool
	Links            Links
}

// ContactDetails carries the optional reachability fields of a contact
type ContactDetails struct {
	EmailID     string
	Phone       string
	MobileNo    string
	Designation string
	Department  string
}

// NewContact creates a contact. The document name is assigned separately,
// see ContactBaseName.
func NewContact(tenantID uuid.UUID, firstName, lastName string, links Links) (*Contact, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "First Name is required")
	}
	for _, link := range links {
		if link.LinkDoctype == "" || link.LinkName == "" {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Link doctype and link name are required")
		}
	}
	return &Contact{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FirstName:           firstName,
		LastName:            lastName,
		Links:               append(Links{}, links...),
	}, nil
}

// SetDetails sets email, phone and job fields
func (c *Contact) SetDetails(d ContactDetails) error {
	if d.EmailID != "" {
		if err := validateEmail(d.EmailID); err != nil {
			return err
		}
	}
	for _, phone := range []string{d.Phone, d.MobileNo} {
		if phone == "" {
			continue
		}
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	c.EmailID = strings.ToLower(d.EmailID)
	c.Phone = d.Phone
	c.MobileNo = d.MobileNo
	c.Designation = d.Designation
	c.Department = d.Department
	c.UpdatedAt = time.Now()
	return nil
}

// SetPrimary marks the contact as the primary one for its links
func (c *Contact) SetPrimary(primary bool) {
	c.IsPrimaryContact = primary
	c.UpdatedAt = time.Now()
}

// FullName joins first and last name
func (c *Contact) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// ContactBaseName derives the name before clash suffixing:
// "<first> <last>" followed by "-<first link name>" when linked.
func ContactBaseName(c *Contact) string {
	name := c.FullName()
	if link := c.Links.FirstName(); link != "" {
		name = name + "-" + strings.TrimSpace(link)
	}
	return name
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Phone number cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid phone number format")
	}
	return nil
}
