// Package pricing - Turnaround tier application
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"printcost/catalog"
	"printcost/internal/errors"
	"printcost/internal/money"
)

// TurnaroundResult is the outcome of applying a turnaround tier
type TurnaroundResult struct {
	// Cost is what the tier added on top of the pre-turnaround price
	Cost decimal.Decimal

	// Subtotal is the price after the tier is applied
	Subtotal decimal.Decimal

	// Description names the tier, e.g. "Rush (1-2 days)"
	Description string
}

// ApplyTurnaround applies a tier's pricing model to the price accumulated
// before turnaround. Percentage tiers multiply; flat tiers add.
func ApplyTurnaround(tier *catalog.TurnaroundTier, before decimal.Decimal) (TurnaroundResult, error) {
	result := TurnaroundResult{Description: describeTier(tier)}

	switch tier.Pricing.Kind {
	case catalog.TurnaroundPercentage:
		result.Subtotal = money.Round2(before.Mul(tier.Pricing.Multiplier))
		result.Cost = result.Subtotal.Sub(money.Round2(before))
	case catalog.TurnaroundFlat:
		result.Cost = money.Round2(tier.Pricing.Amount)
		result.Subtotal = money.Round2(before.Add(tier.Pricing.Amount))
	default:
		return result, errors.Configurationf("turnaround.pricing.kind",
			"turnaround %q has unknown pricing kind %q", tier.ID, string(tier.Pricing.Kind))
	}

	return result, nil
}

func describeTier(tier *catalog.TurnaroundTier) string {
	if tier.DaysMin == tier.DaysMax {
		return fmt.Sprintf("%s (%d days)", tier.Name, tier.DaysMax)
	}
	return fmt.Sprintf("%s (%d-%d days)", tier.Name, tier.DaysMin, tier.DaysMax)
}
