// Package pricing - Price calculator
// Composes unit price, quantity, add-on costs, and turnaround into a
// full breakdown. The order is fixed: add-ons are added to the base
// before turnaround is applied, and percentage add-ons compound on the
// running subtotal in selection order.
package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"printcost/catalog"
	"printcost/internal/errors"
	"printcost/internal/logging"
	"printcost/internal/money"
)

// ProductConfiguration is a fully-resolved product selection.
// The engine resolves catalog ids into these references; the calculator
// never touches the catalog directly.
type ProductConfiguration struct {
	// Paper supplies price and weight per square inch (required)
	Paper *catalog.Paper

	// Size supplies piece dimensions (required)
	Size *catalog.Size

	// Coating multiplies the unit price (nil = no coating, 1.0)
	Coating *catalog.CoatingOption

	// Sides multiplies the unit price (nil = single-sided, 1.0)
	Sides *catalog.SidesOption

	// Quantities bounds custom quantities (nil = any quantity >= 1)
	Quantities *catalog.QuantityGroup

	// Turnaround is the selected tier (nil = caller must resolve the
	// default tier before calling)
	Turnaround *catalog.TurnaroundTier

	// AddOns are the selected add-ons, in selection order
	AddOns []SelectedAddOn
}

// PriceBreakdown itemizes a computed price
type PriceBreakdown struct {
	// UnitPrice is the per-piece price before quantity
	UnitPrice decimal.Decimal `json:"unit_price"`

	// BasePrice is round2(unitPrice * quantity)
	BasePrice decimal.Decimal `json:"base_price"`

	// AddonCosts itemizes resolved add-on costs in selection order
	AddonCosts []ResolvedAddOn `json:"addon_costs,omitempty"`

	// TurnaroundCost is what the turnaround tier added
	TurnaroundCost decimal.Decimal `json:"turnaround_cost"`

	// TurnaroundDescription names the applied tier
	TurnaroundDescription string `json:"turnaround_description"`

	// TurnaroundDaysMin and TurnaroundDaysMax bound total production
	// days: the tier's range plus add-on extra days
	TurnaroundDaysMin int `json:"turnaround_days_min"`
	TurnaroundDaysMax int `json:"turnaround_days_max"`

	// FinalPrice is the total after add-ons and turnaround
	FinalPrice decimal.Decimal `json:"final_price"`
}

// Calculator computes price breakdowns
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a calculator
func NewCalculator() *Calculator {
	return &Calculator{logger: logging.Logger}
}

// Calculate computes the full price breakdown for a configuration.
// On any configuration error the caller receives no partial price.
func (c *Calculator) Calculate(cfg ProductConfiguration, quantity int) (*PriceBreakdown, error) {
	if err := c.validate(cfg, quantity); err != nil {
		return nil, err
	}

	// Step 1: unit price = paper rate * area * coating * sides
	unitPrice := cfg.Paper.PricePerSquareInch.Mul(cfg.Size.SquareInches())
	if cfg.Coating != nil {
		unitPrice = unitPrice.Mul(cfg.Coating.Multiplier)
	}
	if cfg.Sides != nil {
		unitPrice = unitPrice.Mul(cfg.Sides.Multiplier)
	}

	// Step 2: base price
	basePrice := money.Round2(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))

	// Step 3: add-ons against the running subtotal
	breakdown := &PriceBreakdown{
		UnitPrice: money.Round2(unitPrice),
		BasePrice: basePrice,
	}

	running := basePrice
	extraDays := 0
	for _, sel := range cfg.AddOns {
		resolved, err := ResolveAddOn(sel, quantity, running)
		if err != nil {
			return nil, err
		}
		breakdown.AddonCosts = append(breakdown.AddonCosts, resolved)
		running = running.Add(resolved.Cost)
		extraDays += resolved.ExtraTurnaroundDays
	}

	// Steps 4-5: turnaround on the accumulated subtotal
	result, err := ApplyTurnaround(cfg.Turnaround, running)
	if err != nil {
		return nil, err
	}

	breakdown.TurnaroundCost = result.Cost
	breakdown.TurnaroundDescription = result.Description
	breakdown.TurnaroundDaysMin = cfg.Turnaround.DaysMin + extraDays
	breakdown.TurnaroundDaysMax = cfg.Turnaround.DaysMax + extraDays
	breakdown.FinalPrice = money.Round2(result.Subtotal)

	c.logger.Debug("price calculated",
		zap.Int("quantity", quantity),
		zap.String("paper", cfg.Paper.ID),
		zap.String("size", cfg.Size.ID),
		zap.String("final_price", money.Format(breakdown.FinalPrice)),
	)

	return breakdown, nil
}

func (c *Calculator) validate(cfg ProductConfiguration, quantity int) error {
	if cfg.Paper == nil {
		return errors.Configuration("paper", "no paper selected")
	}
	if cfg.Size == nil {
		return errors.Configuration("size", "no size selected")
	}
	if cfg.Turnaround == nil {
		return errors.Configuration("turnaround", "no turnaround tier resolved")
	}
	if quantity < 1 {
		return errors.Configurationf("quantity", "quantity must be at least 1, got %d", quantity)
	}
	if cfg.Quantities != nil && !cfg.Quantities.Allows(quantity) {
		return errors.Configurationf("quantity",
			"quantity %d is not an allowed choice and is outside the custom bounds", quantity)
	}
	return nil
}
