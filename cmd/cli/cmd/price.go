// Package cmd - price command
package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"printcost/engine"
	"printcost/internal/money"
)

var (
	pricePaper      string
	priceSize       string
	priceWidth      float64
	priceHeight     float64
	priceCoating    string
	priceSides      string
	priceTurnaround string
	priceQuantity   int
	priceAddOns     []string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Compute a price breakdown for a product configuration",
	Long: `Compute the full price breakdown for a product configuration.

Add-ons are passed as id[:key=value,...], e.g.:
  printcost price --paper gloss-14pt --size 4x6 --quantity 5000 \
    --addon banding:items_per_bundle=50`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVar(&pricePaper, "paper", "", "paper id (required)")
	priceCmd.Flags().StringVar(&priceSize, "size", "", "size preset id")
	priceCmd.Flags().Float64Var(&priceWidth, "width", 0, "custom width in inches")
	priceCmd.Flags().Float64Var(&priceHeight, "height", 0, "custom height in inches")
	priceCmd.Flags().StringVar(&priceCoating, "coating", "", "coating option id")
	priceCmd.Flags().StringVar(&priceSides, "sides", "", "sides option id")
	priceCmd.Flags().StringVar(&priceTurnaround, "turnaround", "", "turnaround tier id (default tier if omitted)")
	priceCmd.Flags().IntVar(&priceQuantity, "quantity", 0, "piece count (required)")
	priceCmd.Flags().StringArrayVar(&priceAddOns, "addon", nil, "add-on selection id[:key=value,...]")
	_ = priceCmd.MarkFlagRequired("paper")
	_ = priceCmd.MarkFlagRequired("quantity")
}

func runPrice(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	req := engine.PriceRequest{
		PaperID:      pricePaper,
		SizeID:       priceSize,
		CoatingID:    priceCoating,
		SidesID:      priceSides,
		TurnaroundID: priceTurnaround,
		Quantity:     priceQuantity,
	}
	if priceWidth > 0 && priceHeight > 0 {
		req.CustomWidth = decimal.NewFromFloat(priceWidth)
		req.CustomHeight = decimal.NewFromFloat(priceHeight)
	}

	for _, raw := range priceAddOns {
		sel, err := parseAddOnFlag(raw)
		if err != nil {
			return err
		}
		req.AddOns = append(req.AddOns, sel)
	}

	breakdown, err := eng.ComputePrice(req)
	if err != nil {
		return err
	}

	fmt.Printf("Unit price:      %s\n", money.FormatUSD(breakdown.UnitPrice))
	fmt.Printf("Base price:      %s\n", money.FormatUSD(breakdown.BasePrice))
	for _, a := range breakdown.AddonCosts {
		fmt.Printf("  %-14s %s\n", a.Name+":", money.FormatUSD(a.Cost))
	}
	fmt.Printf("Turnaround:      %s (%s)\n", money.FormatUSD(breakdown.TurnaroundCost), breakdown.TurnaroundDescription)
	fmt.Printf("Production days: %d-%d\n", breakdown.TurnaroundDaysMin, breakdown.TurnaroundDaysMax)
	fmt.Printf("Final price:     %s\n", money.FormatUSD(breakdown.FinalPrice))
	return nil
}

// parseAddOnFlag parses id[:key=value,...] into a selection
func parseAddOnFlag(raw string) (engine.AddOnSelection, error) {
	id, rest, hasOpts := strings.Cut(raw, ":")
	sel := engine.AddOnSelection{ID: id}
	if !hasOpts {
		return sel, nil
	}

	sel.SubOptionValues = make(map[string]string)
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return sel, fmt.Errorf("invalid add-on option %q, want key=value", pair)
		}
		sel.SubOptionValues[key] = value
	}
	return sel, nil
}
