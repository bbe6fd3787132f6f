// Package fedex implements the FedEx rate provider.
// Service availability is driven by an enabled-service allowlist from
// the settings store. In test mode (no live credentials configured) the
// provider returns deterministic stub quotes so rate aggregation stays
// testable without network access.
package fedex

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"printcost/carriers"
	"printcost/internal/errors"
	"printcost/internal/logging"
	"printcost/internal/money"
	"printcost/shipping"
)

// ProviderID is the stable provider identifier
const ProviderID = "fedex"

// Service identifiers for the enabled-service allowlist
const (
	ServiceGround                = "ground"
	ServiceHomeDelivery          = "home_delivery"
	ServiceExpressSaver          = "express_saver"
	ServiceTwoDay                = "2day"
	ServiceStandardOvernight     = "standard_overnight"
	ServicePriorityOvernight     = "priority_overnight"
	ServiceFreightEconomy        = "freight_economy"
	ServiceFreightPriority       = "freight_priority"
	ServiceInternationalEconomy  = "international_economy"
	ServiceInternationalPriority = "international_priority"
)

// serviceDef describes one FedEx delivery class and its stub rate curve
type serviceDef struct {
	id          string
	name        string
	transit     string
	guaranteed  bool
	residential bool
	stubBase    decimal.Decimal
	stubPerLb   decimal.Decimal
}

var services = []serviceDef{
	{ServiceGround, "FedEx Ground", "1-5 business days", false, false, dec(8.50), dec(0.45)},
	{ServiceHomeDelivery, "FedEx Home Delivery", "1-5 business days", false, true, dec(9.25), dec(0.48)},
	{ServiceExpressSaver, "FedEx Express Saver", "3 business days", true, false, dec(14.75), dec(0.85)},
	{ServiceTwoDay, "FedEx 2Day", "2 business days", true, false, dec(18.20), dec(1.10)},
	{ServiceStandardOvernight, "FedEx Standard Overnight", "next business day", true, false, dec(32.40), dec(1.95)},
	{ServicePriorityOvernight, "FedEx Priority Overnight", "next business day morning", true, false, dec(41.80), dec(2.35)},
	{ServiceFreightEconomy, "FedEx Freight Economy", "3-7 business days", false, false, dec(95.00), dec(0.30)},
	{ServiceFreightPriority, "FedEx Freight Priority", "1-4 business days", false, false, dec(120.00), dec(0.38)},
	{ServiceInternationalEconomy, "FedEx International Economy", "4-6 business days", false, false, dec(48.00), dec(2.80)},
	{ServiceInternationalPriority, "FedEx International Priority", "1-3 business days", true, false, dec(68.00), dec(3.40)},
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Credentials are the live FedEx API credentials
type Credentials struct {
	AccountNumber string
	MeterNumber   string
	Key           string
	Secret        string
}

// configured reports whether all credential fields are present
func (c Credentials) configured() bool {
	return c.AccountNumber != "" && c.MeterNumber != "" && c.Key != "" && c.Secret != ""
}

// Config configures the FedEx provider
type Config struct {
	// EnabledServices is the service-id allowlist; empty enables none
	EnabledServices []string

	// TestMode forces deterministic stub quotes
	TestMode bool

	// Markup is the multiplicative markup on every rate (1.05 = 5%)
	Markup decimal.Decimal

	// Credentials are required outside test mode
	Credentials Credentials
}

// Provider is the FedEx rate provider
type Provider struct {
	cfg     Config
	enabled map[string]bool
	logger  *zap.Logger
}

// New creates a FedEx provider
func New(cfg Config) *Provider {
	if cfg.Markup.IsZero() {
		cfg.Markup = decimal.NewFromInt(1)
	}
	enabled := make(map[string]bool, len(cfg.EnabledServices))
	for _, s := range cfg.EnabledServices {
		enabled[s] = true
	}
	return &Provider{
		cfg:     cfg,
		enabled: enabled,
		logger:  logging.Logger.Named("fedex"),
	}
}

// ID returns the provider identifier
func (p *Provider) ID() string { return ProviderID }

// Name returns the provider display name
func (p *Provider) Name() string { return "FedEx" }

// TestMode reports whether stub quotes are in use
func (p *Provider) TestMode() bool {
	return p.cfg.TestMode || !p.cfg.Credentials.configured()
}

// Quote returns rate offers for the enabled services.
// Residential destinations are offered Home Delivery instead of Ground
// when both are enabled, matching FedEx service rules.
func (p *Provider) Quote(ctx context.Context, pkg shipping.Package, dest shipping.Destination) ([]carriers.RateQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Provider(ProviderID, "quote cancelled", err)
	}

	if len(p.enabled) == 0 {
		// No services enabled is "no offer", not a failure
		return []carriers.RateQuote{}, nil
	}

	if !p.TestMode() {
		// Live rating goes through the FedEx rate API client, which the
		// web layer wires in. Without it the provider cannot proceed.
		return nil, errors.Provider(ProviderID, "live rate API client not configured", nil)
	}

	quotes := make([]carriers.RateQuote, 0, len(p.enabled))
	for _, svc := range services {
		if !p.enabled[svc.id] {
			continue
		}
		if dest.Residential && svc.id == ServiceGround && p.enabled[ServiceHomeDelivery] {
			continue
		}
		if !dest.Residential && svc.id == ServiceHomeDelivery {
			continue
		}

		amount := money.Round2(svc.stubBase.Add(svc.stubPerLb.Mul(pkg.Weight)).Mul(p.cfg.Markup))
		quotes = append(quotes, carriers.RateQuote{
			Provider:           ProviderID,
			ServiceName:        svc.name,
			Amount:             amount,
			TransitDescription: svc.transit,
			Guaranteed:         svc.guaranteed,
		})
	}

	p.logger.Debug("stub quotes generated",
		zap.Int("count", len(quotes)),
		zap.String("dest_state", dest.State),
	)

	return quotes, nil
}
