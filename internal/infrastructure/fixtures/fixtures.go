// Package fixtures loads seed records from YAML and creates them through the
// application services, so seeded data obeys the same naming and validation
// rules as data created over HTTP.
package fixtures

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"os"

	appfinance "github.com/erp/selling/internal/application/finance"
	apppartner "github.com/erp/selling/internal/application/partner"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/test_records.yaml
var builtin embed.FS

// Set is the content of one fixture file
type Set struct {
	Companies      []Company       `yaml:"companies"`
	CustomerGroups []CustomerGroup `yaml:"customer_groups"`
	Customers      []Customer      `yaml:"customers"`
}

// Company is a seeded company
type Company struct {
	Name            string `yaml:"name"`
	Abbr            string `yaml:"abbr"`
	DefaultCurrency string `yaml:"default_currency"`
	CreditLimit     string `yaml:"credit_limit"`
}

// CustomerGroup is a seeded customer group
type CustomerGroup struct {
	Name             string `yaml:"name"`
	ParentGroup      string `yaml:"parent_group"`
	CreditLimit      string `yaml:"credit_limit"`
	DefaultPriceList string `yaml:"default_price_list"`
}

// Customer is a seeded customer with the contacts and addresses linked to it
type Customer struct {
	Name             string    `yaml:"name"`
	CustomerName     string    `yaml:"customer_name"`
	CustomerType     string    `yaml:"customer_type"`
	CustomerGroup    string    `yaml:"customer_group"`
	Territory        string    `yaml:"territory"`
	DefaultPriceList string    `yaml:"default_price_list"`
	DefaultCurrency  string    `yaml:"default_currency"`
	CreditLimit      string    `yaml:"credit_limit"`
	Contacts         []Contact `yaml:"contacts"`
	Addresses        []Address `yaml:"addresses"`
}

// Contact is a seeded contact
type Contact struct {
	FirstName        string `yaml:"first_name"`
	LastName         string `yaml:"last_name"`
	EmailID          string `yaml:"email_id"`
	Phone            string `yaml:"phone"`
	MobileNo         string `yaml:"mobile_no"`
	Designation      string `yaml:"designation"`
	Department       string `yaml:"department"`
	IsPrimaryContact bool   `yaml:"is_primary_contact"`
}

// Address is a seeded address
type Address struct {
	AddressTitle      string `yaml:"address_title"`
	AddressType       string `yaml:"address_type"`
	AddressLine1      string `yaml:"address_line1"`
	AddressLine2      string `yaml:"address_line2"`
	City              string `yaml:"city"`
	State             string `yaml:"state"`
	Pincode           string `yaml:"pincode"`
	Country           string `yaml:"country"`
	Phone             string `yaml:"phone"`
	EmailID           string `yaml:"email_id"`
	IsPrimaryAddress  bool   `yaml:"is_primary_address"`
	IsShippingAddress bool   `yaml:"is_shipping_address"`
}

// Parse decodes a fixture payload
func Parse(data []byte) (*Set, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("fixtures: payload is empty")
	}
	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("fixtures: decode: %w", err)
	}
	return &set, nil
}

// LoadFile reads and parses a fixture file from disk
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Builtin returns the fixture set compiled into the binary
func Builtin() (*Set, error) {
	data, err := builtin.ReadFile("data/test_records.yaml")
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// CompanyCreator creates companies
type CompanyCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req appfinance.CreateCompanyRequest) (*appfinance.CompanyResponse, error)
}

// CustomerGroupCreator creates customer groups
type CustomerGroupCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req apppartner.CreateCustomerGroupRequest) (*apppartner.CustomerGroupResponse, error)
}

// CustomerCreator creates customers
type CustomerCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req apppartner.CreateCustomerRequest) (*apppartner.CustomerResponse, error)
}

// ContactCreator creates contacts
type ContactCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req apppartner.CreateContactRequest) (*apppartner.ContactResponse, error)
}

// AddressCreator creates addresses
type AddressCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req apppartner.CreateAddressRequest) (*apppartner.AddressResponse, error)
}

// Summary counts what a Seed call created and skipped
type Summary struct {
	Created int
	Skipped int
}

// Seeder writes fixture sets through the application services
type Seeder struct {
	companies CompanyCreator
	groups    CustomerGroupCreator
	customers CustomerCreator
	contacts  ContactCreator
	addresses AddressCreator
	logger    *zap.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(
	companies CompanyCreator,
	groups CustomerGroupCreator,
	customers CustomerCreator,
	contacts ContactCreator,
	addresses AddressCreator,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		companies: companies,
		groups:    groups,
		customers: customers,
		contacts:  contacts,
		addresses: addresses,
		logger:    logger,
	}
}

// Seed creates every record of set for tenantID. Records whose name already
// exists are skipped, and so are the contacts and addresses of a skipped
// customer, which makes seeding repeatable.
func (s *Seeder) Seed(ctx context.Context, tenantID uuid.UUID, set *Set) (Summary, error) {
	var sum Summary

	for _, c := range set.Companies {
		limit, err := parseAmount(c.CreditLimit)
		if err != nil {
			return sum, fmt.Errorf("company %s: %w", c.Name, err)
		}
		_, err = s.companies.Create(ctx, tenantID, appfinance.CreateCompanyRequest{
			Name:            c.Name,
			Abbr:            c.Abbr,
			DefaultCurrency: c.DefaultCurrency,
			CreditLimit:     limit,
		})
		if err := s.tally(&sum, "Company", c.Name, err); err != nil {
			return sum, err
		}
	}

	for _, g := range set.CustomerGroups {
		limit, err := parseAmount(g.CreditLimit)
		if err != nil {
			return sum, fmt.Errorf("customer group %s: %w", g.Name, err)
		}
		_, err = s.groups.Create(ctx, tenantID, apppartner.CreateCustomerGroupRequest{
			Name:             g.Name,
			ParentGroup:      g.ParentGroup,
			CreditLimit:      limit,
			DefaultPriceList: g.DefaultPriceList,
		})
		if err := s.tally(&sum, "Customer Group", g.Name, err); err != nil {
			return sum, err
		}
	}

	for _, c := range set.Customers {
		if err := s.seedCustomer(ctx, tenantID, c, &sum); err != nil {
			return sum, err
		}
	}

	s.logger.Info("Fixtures seeded",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("created", sum.Created),
		zap.Int("skipped", sum.Skipped),
	)
	return sum, nil
}

func (s *Seeder) seedCustomer(ctx context.Context, tenantID uuid.UUID, c Customer, sum *Summary) error {
	limit, err := parseAmount(c.CreditLimit)
	if err != nil {
		return fmt.Errorf("customer %s: %w", c.Name, err)
	}
	created, err := s.customers.Create(ctx, tenantID, apppartner.CreateCustomerRequest{
		Name:             c.Name,
		CustomerName:     c.CustomerName,
		CustomerType:     c.CustomerType,
		CustomerGroup:    c.CustomerGroup,
		Territory:        c.Territory,
		DefaultPriceList: c.DefaultPriceList,
		DefaultCurrency:  c.DefaultCurrency,
		CreditLimit:      limit,
	})
	if err := s.tally(sum, "Customer", c.Name, err); err != nil || created == nil {
		return err
	}

	links := []apppartner.DynamicLinkDTO{{LinkDoctype: partner.DocTypeCustomer, LinkName: created.Name}}
	for _, ct := range c.Contacts {
		_, err := s.contacts.Create(ctx, tenantID, apppartner.CreateContactRequest{
			FirstName:        ct.FirstName,
			LastName:         ct.LastName,
			EmailID:          ct.EmailID,
			Phone:            ct.Phone,
			MobileNo:         ct.MobileNo,
			Designation:      ct.Designation,
			Department:       ct.Department,
			IsPrimaryContact: ct.IsPrimaryContact,
			Links:            links,
		})
		if err := s.tally(sum, "Contact", ct.FirstName, err); err != nil {
			return err
		}
	}
	for _, a := range c.Addresses {
		_, err := s.addresses.Create(ctx, tenantID, apppartner.CreateAddressRequest{
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
			Links:             links,
		})
		if err := s.tally(sum, "Address", a.AddressTitle, err); err != nil {
			return err
		}
	}
	return nil
}

// tally counts the outcome of one create. Existing records are skipped, any other error aborts.
func (s *Seeder) tally(sum *Summary, doctype, name string, err error) error {
	switch {
	case err == nil:
		sum.Created++
		return nil
	case errors.Is(err, shared.ErrAlreadyExists):
		s.logger.Debug("Fixture already present", zap.String("doctype", doctype), zap.String("name", name))
		sum.Skipped++
		return nil
	default:
		return fmt.Errorf("seed %s %s: %w", doctype, name, err)
	}
}

func parseAmount(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return &d, nil
}
