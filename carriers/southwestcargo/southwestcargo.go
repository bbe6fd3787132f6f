// Package southwestcargo implements the Southwest Cargo rate provider.
// Service is restricted to a fixed set of destination states; anything
// outside the service area gets zero quotes. Two services are offered,
// Pickup and Dash, each with its own ascending weight-tier table.
package southwestcargo

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
const ProviderID = "southwest-cargo"

// Service names
const (
	ServicePickup = "Southwest Cargo Pickup"
	ServiceDash   = "Southwest Cargo Dash"
)

// serviceArea is the fixed destination-state whitelist
var serviceArea = map[string]bool{
	"TX": true, "OK": true, "NM": true, "LA": true, "AR": true,
	"AZ": true, "NV": true, "CA": true, "CO": true, "UT": true,
	"MO": true, "TN": true, "GA": true, "FL": true, "IL": true,
}

// InServiceArea reports whether a state code can be quoted
func InServiceArea(state string) bool {
	return serviceArea[state]
}

// weightTier is one band of the rate table. MaxWeight zero marks the
// open-ended last tier.
type weightTier struct {
	maxWeight   decimal.Decimal
	baseRate    decimal.Decimal
	perPound    decimal.Decimal
	handlingFee decimal.Decimal
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Rate tables, ascending by weight. Bounded tiers bill per-pound on the
// weight above the previous tier's boundary.
var pickupTiers = []weightTier{
	{maxWeight: dec(25), baseRate: dec(20.00), perPound: dec(0), handlingFee: dec(5.00)},
	{maxWeight: dec(100), baseRate: dec(35.00), perPound: dec(0.50), handlingFee: dec(5.00)},
	{maxWeight: decimal.Zero, baseRate: dec(60.00), perPound: dec(0.55), handlingFee: dec(10.00)},
}

var dashTiers = []weightTier{
	{maxWeight: dec(25), baseRate: dec(35.00), perPound: dec(0), handlingFee: dec(7.50)},
	{maxWeight: dec(100), baseRate: dec(55.00), perPound: dec(0.75), handlingFee: dec(7.50)},
	{maxWeight: decimal.Zero, baseRate: dec(90.00), perPound: dec(0.80), handlingFee: dec(15.00)},
}

// Config configures the Southwest Cargo provider
type Config struct {
	// Markup is the multiplicative markup on every computed rate
	// (1.05 means 5%)
	Markup decimal.Decimal

	// TestMode is carried for module status; the rate tables are static
	// so quotes are identical in and out of test mode
	TestMode bool
}

// Provider is the Southwest Cargo rate provider
type Provider struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Southwest Cargo provider
func New(cfg Config) *Provider {
	if cfg.Markup.IsZero() {
		cfg.Markup = decimal.NewFromInt(1)
	}
	return &Provider{
		cfg:    cfg,
		logger: logging.Logger.Named("southwest-cargo"),
	}
}

// ID returns the provider identifier
func (p *Provider) ID() string { return ProviderID }

// Name returns the provider display name
func (p *Provider) Name() string { return "Southwest Cargo" }

// TestMode reports the configured test-mode flag
func (p *Provider) TestMode() bool { return p.cfg.TestMode }

// Quote returns Pickup and Dash offers, or no offers when the
// destination is outside the service area.
func (p *Provider) Quote(ctx context.Context, pkg shipping.Package, dest shipping.Destination) ([]carriers.RateQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Provider(ProviderID, "quote cancelled", err)
	}

	if !InServiceArea(dest.State) {
		p.logger.Debug("destination outside service area", zap.String("state", dest.State))
		return []carriers.RateQuote{}, nil
	}

	if pkg.Weight.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Provider(ProviderID, "package weight must be positive", nil)
	}

	pickup := p.rateFor(pickupTiers, pkg.Weight, false)
	dash := p.rateFor(dashTiers, pkg.Weight, true)

	return []carriers.RateQuote{
		{
			Provider:           ProviderID,
			ServiceName:        ServicePickup,
			Amount:             pickup,
			TransitDescription: "airport pickup, next available flight",
			Guaranteed:         false,
		},
		{
			Provider:           ProviderID,
			ServiceName:        ServiceDash,
			Amount:             dash,
			TransitDescription: "same day, next flight out",
			Guaranteed:         true,
		},
	}, nil
}

// rateFor walks the tier table and prices the weight. In the open-ended
// last tier, Dash bills per-pound only on the weight above the previous
// boundary while Pickup bills per-pound on the full weight. That
// asymmetry matches the carrier's observed billing and is intentional.
func (p *Provider) rateFor(tiers []weightTier, weight decimal.Decimal, overageOnly bool) decimal.Decimal {
	previousBoundary := decimal.Zero

	for _, tier := range tiers {
		if tier.maxWeight.IsZero() {
			// Open-ended tier
			billable := weight
			if overageOnly {
				billable = weight.Sub(previousBoundary)
				if billable.IsNegative() {
					billable = decimal.Zero
				}
			}
			rate := tier.baseRate.Add(tier.perPound.Mul(billable)).Add(tier.handlingFee)
			return money.Round2(rate.Mul(p.cfg.Markup))
		}

		if weight.LessThanOrEqual(tier.maxWeight) {
			// Boundary weights bill in this tier, not the next
			overage := weight.Sub(previousBoundary)
			if overage.IsNegative() {
				overage = decimal.Zero
			}
			rate := tier.baseRate.Add(tier.perPound.Mul(overage)).Add(tier.handlingFee)
			return money.Round2(rate.Mul(p.cfg.Markup))
		}

		previousBoundary = tier.maxWeight
	}

	return decimal.Zero
}
