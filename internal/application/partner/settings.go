package partner

import "github.com/erp/selling/internal/domain/partner"

// SellingSettings are the tenant-wide selling defaults
type SellingSettings struct {
	CustomerNamingBy     partner.NamingBy
	CustomerSeriesPrefix string
	DefaultTerritory     string
	DefaultCustomerGroup string
	DefaultPriceList     string
}

// AccountsSettings name the roles that may bypass party and credit checks
type AccountsSettings struct {
	// FrozenAccountsModifier may transact with frozen customers
	FrozenAccountsModifier string
	// CreditController may submit documents beyond the credit limit
	CreditController string
}

// DefaultSellingSettings returns the settings used when nothing is configured
func DefaultSellingSettings() SellingSettings {
	return SellingSettings{
		CustomerNamingBy:     partner.NamingByCustomerName,
		CustomerSeriesPrefix: "CUST-",
		DefaultTerritory:     "All Territories",
		DefaultCustomerGroup: "All Customer Groups",
	}
}
