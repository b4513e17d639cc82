// Package bootstrap wires repositories and application services together.
package bootstrap

import (
	"time"

	financeapp "github.com/erp/selling/internal/application/finance"
	partnerapp "github.com/erp/selling/internal/application/partner"
	tradeapp "github.com/erp/selling/internal/application/trade"
	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/infrastructure/config"
	"github.com/erp/selling/internal/infrastructure/fixtures"
	"github.com/erp/selling/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds the application services of one database
type Container struct {
	Customers      *partnerapp.CustomerService
	CustomerGroups *partnerapp.CustomerGroupService
	Contacts       *partnerapp.ContactService
	Addresses      *partnerapp.AddressService
	Comments       *partnerapp.CommentService
	Credit         *partnerapp.CreditService
	Parties        *partnerapp.PartyService
	Companies      *financeapp.CompanyService
	Payments       *financeapp.PaymentService
	SalesOrders    *tradeapp.SalesOrderService
	DeliveryNotes  *tradeapp.DeliveryNoteService
	SalesInvoices  *tradeapp.SalesInvoiceService

	// CustomerActivity records customer events on the customer timeline
	CustomerActivity *partnerapp.CustomerActivityHandler
}

// NewContainer builds every repository and service on db
func NewContainer(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}
	selling := SellingSettings(cfg.Selling)
	accounts := AccountsSettings(cfg.Accounts)

	customerRepo := persistence.NewGormCustomerRepository(db)
	groupRepo := persistence.NewGormCustomerGroupRepository(db)
	contactRepo := persistence.NewGormContactRepository(db)
	addressRepo := persistence.NewGormAddressRepository(db)
	commentRepo := persistence.NewGormCommentRepository(db)
	companyRepo := persistence.NewGormCompanyRepository(db)
	glRepo := persistence.NewGormGLEntryRepository(db)
	orderRepo := persistence.NewGormSalesOrderRepository(db)
	noteRepo := persistence.NewGormDeliveryNoteRepository(db)
	invoiceRepo := persistence.NewGormSalesInvoiceRepository(db)
	namingSeries := persistence.NewGormNamingSeries(db)
	txScope := persistence.NewGormTransactionScope(db)

	credit := partnerapp.NewCreditService(
		customerRepo, groupRepo, companyRepo, glRepo,
		orderRepo, noteRepo, invoiceRepo,
		accounts, logger.Named("credit"),
	)
	parties := partnerapp.NewPartyService(customerRepo, groupRepo, companyRepo, contactRepo, addressRepo, selling, accounts)

	return &Container{
		Customers:      partnerapp.NewCustomerService(customerRepo, groupRepo, namingSeries, credit, selling, logger.Named("customer")),
		CustomerGroups: partnerapp.NewCustomerGroupService(groupRepo),
		Contacts:       partnerapp.NewContactService(contactRepo, customerRepo),
		Addresses:      partnerapp.NewAddressService(addressRepo, customerRepo),
		Comments:       partnerapp.NewCommentService(commentRepo, customerRepo),
		Credit:         credit,
		Parties:        parties,
		Companies:      financeapp.NewCompanyService(companyRepo),
		Payments: financeapp.NewPaymentService(glRepo, companyRepo, parties, namingSeries,
			financeapp.WithPaymentLogger(logger.Named("payment")),
		),
		SalesOrders:   tradeapp.NewSalesOrderService(orderRepo, parties, credit, namingSeries, logger.Named("sales_order")),
		DeliveryNotes: tradeapp.NewDeliveryNoteService(noteRepo, orderRepo, invoiceRepo, parties, credit, namingSeries, logger.Named("delivery_note")),
		SalesInvoices: tradeapp.NewSalesInvoiceService(invoiceRepo, orderRepo, noteRepo, txScope, parties, credit, namingSeries, logger.Named("sales_invoice")),

		CustomerActivity: partnerapp.NewCustomerActivityHandler(commentRepo, logger.Named("customer_activity")),
	}
}

// SetEventPublisher hands publisher to every service that raises events
func (c *Container) SetEventPublisher(publisher shared.EventPublisher) {
	c.Customers.SetEventPublisher(publisher)
	c.SalesOrders.SetEventPublisher(publisher)
	c.DeliveryNotes.SetEventPublisher(publisher)
	c.SalesInvoices.SetEventPublisher(publisher)
}

// SetIdempotencyStore makes document submission honour Idempotency-Key headers
func (c *Container) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	c.SalesOrders.SetIdempotencyStore(store, ttl)
	c.DeliveryNotes.SetIdempotencyStore(store, ttl)
	c.SalesInvoices.SetIdempotencyStore(store, ttl)
}

// SetMetrics records document submissions on metrics
func (c *Container) SetMetrics(metrics tradeapp.DocumentMetrics) {
	c.SalesOrders.SetMetrics(metrics)
	c.DeliveryNotes.SetMetrics(metrics)
	c.SalesInvoices.SetMetrics(metrics)
}

// Seeder returns a fixture seeder backed by the container's services
func (c *Container) Seeder(logger *zap.Logger) *fixtures.Seeder {
	return fixtures.NewSeeder(c.Companies, c.CustomerGroups, c.Customers, c.Contacts, c.Addresses, logger)
}

// SellingSettings converts the selling section of the configuration
func SellingSettings(cfg config.SellingConfig) partnerapp.SellingSettings {
	settings := partnerapp.DefaultSellingSettings()
	if naming := partner.NamingBy(cfg.CustomerNamingBy); naming.IsValid() {
		settings.CustomerNamingBy = naming
	}
	if cfg.CustomerSeriesPrefix != "" {
		settings.CustomerSeriesPrefix = cfg.CustomerSeriesPrefix
	}
	if cfg.DefaultTerritory != "" {
		settings.DefaultTerritory = cfg.DefaultTerritory
	}
	if cfg.DefaultCustomerGroup != "" {
		settings.DefaultCustomerGroup = cfg.DefaultCustomerGroup
	}
	settings.DefaultPriceList = cfg.DefaultPriceList
	return settings
}

// AccountsSettings converts the accounts section of the configuration
func AccountsSettings(cfg config.AccountsConfig) partnerapp.AccountsSettings {
	return partnerapp.AccountsSettings{
		FrozenAccountsModifier: cfg.FrozenAccountsModifier,
		CreditController:       cfg.CreditController,
	}
}
