// Package shipping defines shippable packages, destinations, and the
// weight estimator that turns cart line items into a package weight.
package shipping

import (
	"github.com/shopspring/decimal"
)

// Package is a shippable parcel
type Package struct {
	// Weight is the total weight in lbs, one decimal place
	Weight decimal.Decimal `json:"weight"`

	// Length, Width, Height are box dimensions in inches
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`

	// OriginState is the declared shipping origin state code
	OriginState string `json:"origin_state"`
}

// Destination is a delivery address, reduced to what rating needs
type Destination struct {
	// State is the two-letter state code
	State string `json:"state"`

	// City is the destination city
	City string `json:"city"`

	// PostalCode is the destination postal code
	PostalCode string `json:"postal_code"`

	// Residential marks home delivery
	Residential bool `json:"residential"`
}

// LineItem is one cart entry contributing to package weight
type LineItem struct {
	// PaperWeightPerSquareInch is the stock weight in lbs per square inch
	PaperWeightPerSquareInch decimal.Decimal `json:"paper_weight_per_square_inch"`

	// Width and Height are piece dimensions in inches
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`

	// Quantity is the piece count
	Quantity int `json:"quantity"`
}

// Weight returns the unrounded weight contribution of this line item
func (i LineItem) Weight() decimal.Decimal {
	return i.PaperWeightPerSquareInch.
		Mul(i.Width).
		Mul(i.Height).
		Mul(decimal.NewFromInt(int64(i.Quantity)))
}
