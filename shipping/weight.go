// Package shipping - Package weight estimation
package shipping

import (
	"github.com/shopspring/decimal"

	"printcost/internal/money"
)

// EstimateWeight sums the weight of every line item, adds packaging
// overhead, and rounds once at the end to one decimal place. Rounding
// per item would drift from carrier billing, so it is deferred to the
// final sum.
func EstimateWeight(items []LineItem, packagingOverheadLbs decimal.Decimal) decimal.Decimal {
	total := packagingOverheadLbs
	for _, item := range items {
		total = total.Add(item.Weight())
	}
	return money.Round1(total)
}

// boxSize is a shipping box preset
type boxSize struct {
	maxWeight decimal.Decimal
	length    decimal.Decimal
	width     decimal.Decimal
	height    decimal.Decimal
}

// boxLadder is the fixed box ladder, ascending by capacity. The last
// entry is the largest box and takes any remaining weight.
var boxLadder = []boxSize{
	{maxWeight: decimal.NewFromInt(5), length: decimal.NewFromInt(12), width: decimal.NewFromInt(9), height: decimal.NewFromInt(4)},
	{maxWeight: decimal.NewFromInt(20), length: decimal.NewFromInt(14), width: decimal.NewFromInt(12), height: decimal.NewFromInt(8)},
	{maxWeight: decimal.NewFromInt(50), length: decimal.NewFromInt(18), width: decimal.NewFromInt(14), height: decimal.NewFromInt(12)},
	{maxWeight: decimal.NewFromInt(0), length: decimal.NewFromInt(24), width: decimal.NewFromInt(18), height: decimal.NewFromInt(14)},
}

// NewPackage builds a package for a total weight, selecting box
// dimensions from the ladder when intelligent packing is enabled, or the
// largest box otherwise.
func NewPackage(totalWeight decimal.Decimal, originState string, intelligentPacking bool) Package {
	box := boxLadder[len(boxLadder)-1]
	if intelligentPacking {
		for _, b := range boxLadder {
			if !b.maxWeight.IsZero() && totalWeight.LessThanOrEqual(b.maxWeight) {
				box = b
				break
			}
		}
	}

	return Package{
		Weight:      money.Round1(totalWeight),
		Length:      box.length,
		Width:       box.width,
		Height:      box.height,
		OriginState: originState,
	}
}
