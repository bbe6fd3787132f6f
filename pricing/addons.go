// Package pricing computes product prices: add-on costs, turnaround
// adjustments, and the full price breakdown. All arithmetic is decimal
// and every currency value rounds half-up to cents.
package pricing

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"printcost/catalog"
	"printcost/internal/errors"
	"printcost/internal/money"
)

// SelectedAddOn pairs an add-on with the caller's sub-option values
type SelectedAddOn struct {
	AddOn           *catalog.AddOn
	SubOptionValues map[string]string
}

// ResolvedAddOn is a priced add-on line item
type ResolvedAddOn struct {
	// AddOnID identifies the add-on
	AddOnID string `json:"addon_id"`

	// Name is the add-on display name
	Name string `json:"name"`

	// Cost is the resolved cost, rounded to cents
	Cost decimal.Decimal `json:"cost"`

	// ExtraTurnaroundDays is the production delay this add-on adds
	ExtraTurnaroundDays int `json:"extra_turnaround_days,omitempty"`
}

// noEnvelopesSentinel is the blank-envelopes size value that prices to zero
const noEnvelopesSentinel = "No Envelopes"

// ResolveAddOn evaluates an add-on's pricing model against the selection.
// Percentage models price against the running subtotal the caller passes
// in, so percentage add-ons compound in selection order.
func ResolveAddOn(sel SelectedAddOn, quantity int, runningSubtotal decimal.Decimal) (ResolvedAddOn, error) {
	addon := sel.AddOn
	resolved := ResolvedAddOn{
		AddOnID:             addon.ID,
		Name:                addon.Name,
		ExtraTurnaroundDays: addon.ExtraTurnaroundDays,
	}

	values, err := effectiveValues(addon, sel.SubOptionValues)
	if err != nil {
		return resolved, err
	}

	qty := decimal.NewFromInt(int64(quantity))

	var cost decimal.Decimal
	switch addon.Pricing.Kind {
	case catalog.PricingFlat:
		cost = addon.Pricing.Amount

	case catalog.PricingPercentage:
		cost = runningSubtotal.Mul(addon.Pricing.Rate)

	case catalog.PricingPerUnit:
		units, err := unitCount(addon, values, quantity)
		if err != nil {
			return resolved, err
		}
		cost = decimal.NewFromInt(int64(units)).Mul(addon.Pricing.PricePerUnit)

	case catalog.PricingCustom:
		cost, err = resolveCustomFormula(addon, values, qty)
		if err != nil {
			return resolved, err
		}

	default:
		// Validate() rejects this at load time; reaching here means the
		// catalog bypassed validation.
		return resolved, errors.Configurationf("pricing.kind",
			"addon %q has unknown pricing kind %q", addon.ID, string(addon.Pricing.Kind))
	}

	resolved.Cost = money.Round2(cost)
	return resolved, nil
}

// effectiveValues applies sub-option defaults and enforces required values
func effectiveValues(addon *catalog.AddOn, supplied map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(addon.SubOptions))
	for _, sub := range addon.SubOptions {
		v := supplied[sub.ID]
		if v == "" {
			v = sub.Default
		}
		if v == "" && sub.Required {
			return nil, errors.Configurationf(addon.ID+"."+sub.ID,
				"addon %q requires a value for %q", addon.Name, sub.Label)
		}
		values[sub.ID] = v
	}
	return values, nil
}

// unitCount derives the billed unit count for per-unit add-ons. Banding
// bills per bundle: ceil(quantity / itemsPerBundle).
func unitCount(addon *catalog.AddOn, values map[string]string, quantity int) (int, error) {
	optID := addon.Pricing.UnitsPerBundleOption
	if optID == "" {
		return quantity, nil
	}

	perBundle := addon.Pricing.DefaultUnitsPerBundle
	if raw := values[optID]; raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.Configurationf(addon.ID+"."+optID,
				"addon %q: %q is not a valid bundle size", addon.Name, raw)
		}
		perBundle = parsed
	}
	if perBundle <= 0 {
		return 0, errors.Configurationf(addon.ID+"."+optID,
			"addon %q: bundle size must be positive", addon.Name)
	}

	return int(math.Ceil(float64(quantity) / float64(perBundle))), nil
}

// pricingValue returns the value of the sub-option a custom formula
// consumes: the first sub-option marked affects_pricing.
func pricingValue(addon *catalog.AddOn, values map[string]string) (string, error) {
	for _, sub := range addon.SubOptions {
		if sub.AffectsPricing {
			v := values[sub.ID]
			if v == "" {
				return "", errors.Configurationf(addon.ID+"."+sub.ID,
					"addon %q requires a value for %q", addon.Name, sub.Label)
			}
			return v, nil
		}
	}
	return "", errors.Configurationf(addon.ID,
		"addon %q formula needs a pricing sub-option but none is defined", addon.Name)
}

func resolveCustomFormula(addon *catalog.AddOn, values map[string]string, qty decimal.Decimal) (decimal.Decimal, error) {
	switch addon.Pricing.Formula {
	case catalog.FormulaVariableData:
		// 60 + 0.02 * quantity
		return decimal.NewFromInt(60).Add(qty.Mul(decimal.NewFromFloat(0.02))), nil

	case catalog.FormulaPerforation:
		// 20 + 0.01 * quantity
		return decimal.NewFromInt(20).Add(qty.Mul(decimal.NewFromFloat(0.01))), nil

	case catalog.FormulaHoleDrilling:
		// 20 + 0.02 * quantity + surcharge for the selected hole option
		label, err := pricingValue(addon, values)
		if err != nil {
			return decimal.Zero, err
		}
		surcharge, ok := addon.Pricing.Params[label]
		if !ok {
			return decimal.Zero, errors.Configurationf(addon.ID,
				"addon %q has no price for hole option %q", addon.Name, label)
		}
		return decimal.NewFromInt(20).
			Add(qty.Mul(decimal.NewFromFloat(0.02))).
			Add(surcharge), nil

	case catalog.FormulaBlankEnvelopes:
		size, err := pricingValue(addon, values)
		if err != nil {
			return decimal.Zero, err
		}
		if size == noEnvelopesSentinel {
			return decimal.Zero, nil
		}
		return qty.Mul(decimal.NewFromFloat(0.25)), nil

	default:
		return decimal.Zero, errors.Configurationf("pricing.formula",
			"addon %q uses unknown formula %q", addon.ID, addon.Pricing.Formula)
	}
}
