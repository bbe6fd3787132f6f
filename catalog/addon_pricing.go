// Package catalog - Add-on pricing model variants
// The source data describes add-on pricing as loosely-tagged blobs; here
// the variants form a closed set validated at load time so an unknown
// variant is a configuration error, never a silently zero-priced add-on.
package catalog

import (
	"github.com/shopspring/decimal"

	"printcost/internal/errors"
)

// PricingKind tags the add-on pricing variant
type PricingKind string

const (
	// PricingFlat is a fixed amount regardless of quantity
	PricingFlat PricingKind = "flat"

	// PricingPercentage is a rate applied to the running subtotal
	PricingPercentage PricingKind = "percentage"

	// PricingPerUnit multiplies a unit price by quantity or a derived
	// unit count (e.g. bundles)
	PricingPerUnit PricingKind = "per_unit"

	// PricingCustom evaluates a named formula against quantity and
	// sub-option values
	PricingCustom PricingKind = "custom"
)

// Formula names for PricingCustom add-ons
const (
	FormulaVariableData   = "variable_data"
	FormulaPerforation    = "perforation"
	FormulaHoleDrilling   = "hole_drilling"
	FormulaBlankEnvelopes = "blank_envelopes"
)

// knownFormulas is the closed set of custom formula names
var knownFormulas = map[string]bool{
	FormulaVariableData:   true,
	FormulaPerforation:    true,
	FormulaHoleDrilling:   true,
	FormulaBlankEnvelopes: true,
}

// AddonPricingModel is a tagged pricing variant. Exactly one variant's
// fields are meaningful, selected by Kind.
type AddonPricingModel struct {
	// Kind selects the variant
	Kind PricingKind `json:"kind"`

	// Amount is the flat amount (PricingFlat)
	Amount decimal.Decimal `json:"amount,omitempty"`

	// Rate is the fraction of the running subtotal (PricingPercentage)
	Rate decimal.Decimal `json:"rate,omitempty"`

	// PricePerUnit is the unit price (PricingPerUnit)
	PricePerUnit decimal.Decimal `json:"price_per_unit,omitempty"`

	// UnitName labels the billed unit, e.g. "bundle" (PricingPerUnit)
	UnitName string `json:"unit_name,omitempty"`

	// UnitsPerBundleOption names the numeric sub-option holding the
	// items-per-bundle count; empty means units = quantity (PricingPerUnit)
	UnitsPerBundleOption string `json:"units_per_bundle_option,omitempty"`

	// DefaultUnitsPerBundle is used when the sub-option has no value
	DefaultUnitsPerBundle int `json:"default_units_per_bundle,omitempty"`

	// Formula is the named formula (PricingCustom)
	Formula string `json:"formula,omitempty"`

	// Params carries formula parameters, e.g. a lookup table from
	// hole-option label to surcharge (PricingCustom)
	Params map[string]decimal.Decimal `json:"params,omitempty"`
}

// Validate rejects unknown variants and unknown custom formula names
func (m AddonPricingModel) Validate() error {
	switch m.Kind {
	case PricingFlat, PricingPercentage, PricingPerUnit:
		return nil
	case PricingCustom:
		if !knownFormulas[m.Formula] {
			return errors.Configurationf("pricing.formula",
				"unknown custom formula: %q", m.Formula)
		}
		return nil
	default:
		return errors.Configurationf("pricing.kind",
			"unknown add-on pricing kind: %q", string(m.Kind))
	}
}
