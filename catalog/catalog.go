// Package catalog defines the product catalog model: papers, sizes,
// coating and sides options, add-ons, quantity groups, and turnaround
// tiers. The engine reads the catalog by id and never mutates it.
package catalog

import (
	"github.com/shopspring/decimal"

	"printcost/internal/errors"
)

// Paper is a printable stock with per-square-inch pricing and weight
type Paper struct {
	// ID uniquely identifies the paper
	ID string `json:"id"`

	// Name is a human-readable label, e.g. "14pt Gloss Cover"
	Name string `json:"name"`

	// PricePerSquareInch is the base price per square inch
	PricePerSquareInch decimal.Decimal `json:"price_per_square_inch"`

	// WeightPerSquareInch is the shipping weight in lbs per square inch
	WeightPerSquareInch decimal.Decimal `json:"weight_per_square_inch"`
}

// CoatingOption is a finish applied to the paper, priced as a multiplier
type CoatingOption struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// SidesOption selects single- or double-sided printing, priced as a multiplier
type SidesOption struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Size is a named preset with dimensions in inches
type Size struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// SquareInches returns the piece area
func (s Size) SquareInches() decimal.Decimal {
	return s.Width.Mul(s.Height)
}

// CustomSize builds an unnamed size from custom dimensions
func CustomSize(width, height decimal.Decimal) Size {
	return Size{ID: "custom", Name: "Custom", Width: width, Height: height}
}

// QuantityGroup defines the quantities a product may be ordered in.
// Custom quantities are allowed only within the configured bounds.
type QuantityGroup struct {
	// Choices are the preset quantity options
	Choices []int `json:"choices"`

	// AllowCustom permits quantities outside Choices
	AllowCustom bool `json:"allow_custom"`

	// CustomMin is the smallest allowed custom quantity
	CustomMin int `json:"custom_min"`

	// CustomMax is the largest allowed custom quantity (0 = unbounded)
	CustomMax int `json:"custom_max"`
}

// Allows reports whether the group permits a quantity
func (g QuantityGroup) Allows(quantity int) bool {
	for _, c := range g.Choices {
		if c == quantity {
			return true
		}
	}
	if !g.AllowCustom {
		return false
	}
	if quantity < g.CustomMin {
		return false
	}
	if g.CustomMax > 0 && quantity > g.CustomMax {
		return false
	}
	return true
}

// SubOption is a configurable choice within an add-on, e.g. hole count
// for hole drilling or envelope size for blank envelopes.
type SubOption struct {
	// ID uniquely identifies the sub-option within its add-on
	ID string `json:"id"`

	// Label is the display label
	Label string `json:"label"`

	// Required sub-options must carry a non-empty value before pricing
	Required bool `json:"required"`

	// AffectsPricing marks values consumed by the add-on's formula
	AffectsPricing bool `json:"affects_pricing"`

	// Values enumerates the allowed values (empty = free-form)
	Values []string `json:"values,omitempty"`

	// Default is the value used when the caller supplies none
	Default string `json:"default,omitempty"`
}

// AddOn is a selectable product extra with a data-driven pricing model
type AddOn struct {
	// ID uniquely identifies the add-on
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Pricing is the tagged pricing model
	Pricing AddonPricingModel `json:"pricing"`

	// SubOptions are the add-on's configurable choices
	SubOptions []SubOption `json:"sub_options,omitempty"`

	// ExtraTurnaroundDays is added to the selected turnaround tier's
	// day range when this add-on is selected (additive, not multiplicative)
	ExtraTurnaroundDays int `json:"extra_turnaround_days,omitempty"`
}

// SubOption returns the sub-option with the given id
func (a AddOn) SubOption(id string) (SubOption, bool) {
	for _, s := range a.SubOptions {
		if s.ID == id {
			return s, true
		}
	}
	return SubOption{}, false
}

// TurnaroundPricingKind tags a turnaround tier's pricing model
type TurnaroundPricingKind string

const (
	// TurnaroundPercentage multiplies the pre-turnaround price
	TurnaroundPercentage TurnaroundPricingKind = "percentage"

	// TurnaroundFlat adds a flat surcharge
	TurnaroundFlat TurnaroundPricingKind = "flat"
)

// TurnaroundPricing is the pricing adjustment of a turnaround tier.
// Exactly one of Multiplier or Amount is meaningful, selected by Kind.
type TurnaroundPricing struct {
	Kind       TurnaroundPricingKind `json:"kind"`
	Multiplier decimal.Decimal       `json:"multiplier,omitempty"`
	Amount     decimal.Decimal       `json:"amount,omitempty"`
}

// Validate rejects unknown turnaround pricing kinds at load time
func (p TurnaroundPricing) Validate() error {
	switch p.Kind {
	case TurnaroundPercentage, TurnaroundFlat:
		return nil
	default:
		return errors.Configurationf("turnaround.pricing.kind",
			"unknown turnaround pricing kind: %q", string(p.Kind))
	}
}

// TurnaroundTier is a named production-speed option
type TurnaroundTier struct {
	// ID uniquely identifies the tier
	ID string `json:"id"`

	// Name is the display name, e.g. "Economy", "Rush"
	Name string `json:"name"`

	// DaysMin and DaysMax bound the production time in business days
	DaysMin int `json:"days_min"`
	DaysMax int `json:"days_max"`

	// IsDefault marks the tier used when the caller selects none
	IsDefault bool `json:"is_default"`

	// Pricing is the tier's pricing adjustment
	Pricing TurnaroundPricing `json:"pricing"`
}

// Catalog aggregates all product configuration data
type Catalog struct {
	Papers      []Paper          `json:"papers"`
	Coatings    []CoatingOption  `json:"coatings"`
	Sides       []SidesOption    `json:"sides"`
	Sizes       []Size           `json:"sizes"`
	AddOns      []AddOn          `json:"addons"`
	Turnarounds []TurnaroundTier `json:"turnarounds"`
}

// PaperByID returns the paper with the given id
func (c *Catalog) PaperByID(id string) (*Paper, error) {
	for i := range c.Papers {
		if c.Papers[i].ID == id {
			return &c.Papers[i], nil
		}
	}
	return nil, errors.NotFound("paper", id)
}

// CoatingByID returns the coating option with the given id
func (c *Catalog) CoatingByID(id string) (*CoatingOption, error) {
	for i := range c.Coatings {
		if c.Coatings[i].ID == id {
			return &c.Coatings[i], nil
		}
	}
	return nil, errors.NotFound("coating", id)
}

// SidesByID returns the sides option with the given id
func (c *Catalog) SidesByID(id string) (*SidesOption, error) {
	for i := range c.Sides {
		if c.Sides[i].ID == id {
			return &c.Sides[i], nil
		}
	}
	return nil, errors.NotFound("sides", id)
}

// SizeByID returns the size preset with the given id
func (c *Catalog) SizeByID(id string) (*Size, error) {
	for i := range c.Sizes {
		if c.Sizes[i].ID == id {
			return &c.Sizes[i], nil
		}
	}
	return nil, errors.NotFound("size", id)
}

// AddOnByID returns the add-on with the given id
func (c *Catalog) AddOnByID(id string) (*AddOn, error) {
	for i := range c.AddOns {
		if c.AddOns[i].ID == id {
			return &c.AddOns[i], nil
		}
	}
	return nil, errors.NotFound("addon", id)
}

// TurnaroundByID returns the turnaround tier with the given id
func (c *Catalog) TurnaroundByID(id string) (*TurnaroundTier, error) {
	for i := range c.Turnarounds {
		if c.Turnarounds[i].ID == id {
			return &c.Turnarounds[i], nil
		}
	}
	return nil, errors.NotFound("turnaround", id)
}

// DefaultTurnaround returns the tier marked IsDefault, or the first tier
// if none is marked.
func (c *Catalog) DefaultTurnaround() (*TurnaroundTier, error) {
	for i := range c.Turnarounds {
		if c.Turnarounds[i].IsDefault {
			return &c.Turnarounds[i], nil
		}
	}
	if len(c.Turnarounds) > 0 {
		return &c.Turnarounds[0], nil
	}
	return nil, errors.NotFound("turnaround", "default")
}

// Validate checks every entity in the catalog. Unknown pricing variants
// are rejected here, at load time, not at price time.
func (c *Catalog) Validate() error {
	for _, a := range c.AddOns {
		if err := a.Pricing.Validate(); err != nil {
			return errors.Wrapf(errors.TypeConfiguration, err,
				"addon %q has invalid pricing", a.ID)
		}
	}
	for _, t := range c.Turnarounds {
		if err := t.Pricing.Validate(); err != nil {
			return errors.Wrapf(errors.TypeConfiguration, err,
				"turnaround %q has invalid pricing", t.ID)
		}
	}
	return nil
}
