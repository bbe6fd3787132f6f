// Package cmd - rates and weight commands
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"printcost/internal/config"
	"printcost/internal/money"
	"printcost/shipping"
)

var (
	ratesWeight      float64
	ratesState       string
	ratesCity        string
	ratesPostalCode  string
	ratesResidential bool
	ratesProviders   []string
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Quote shipping rates for a package",
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().Float64Var(&ratesWeight, "weight", 0, "package weight in lbs (required)")
	ratesCmd.Flags().StringVar(&ratesState, "state", "", "destination state code (required)")
	ratesCmd.Flags().StringVar(&ratesCity, "city", "", "destination city")
	ratesCmd.Flags().StringVar(&ratesPostalCode, "zip", "", "destination postal code")
	ratesCmd.Flags().BoolVar(&ratesResidential, "residential", false, "residential delivery")
	ratesCmd.Flags().StringSliceVar(&ratesProviders, "provider", nil, "restrict to specific provider ids")
	_ = ratesCmd.MarkFlagRequired("weight")
	_ = ratesCmd.MarkFlagRequired("state")
}

func runRates(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	settings := config.Get().Shipping
	pkg := shipping.NewPackage(
		decimal.NewFromFloat(ratesWeight),
		settings.OriginState,
		settings.IntelligentPackingEnabled,
	)
	dest := shipping.Destination{
		State:       ratesState,
		City:        ratesCity,
		PostalCode:  ratesPostalCode,
		Residential: ratesResidential,
	}

	result := eng.GetShippingRates(cmd.Context(), pkg, dest, ratesProviders)

	if len(result.Quotes) == 0 {
		fmt.Println("No shipping options available.")
	}
	for _, q := range result.Quotes {
		guaranteed := ""
		if q.Guaranteed {
			guaranteed = " (guaranteed)"
		}
		fmt.Printf("%-40s %10s  %s%s\n", q.ServiceName, money.FormatUSD(q.Amount), q.TransitDescription, guaranteed)
	}
	if result.Cheapest != nil {
		fmt.Printf("\nCheapest: %s at %s\n", result.Cheapest.ServiceName, money.FormatUSD(result.Cheapest.Amount))
	}
	for id, msg := range result.Metadata.Errors {
		fmt.Printf("warning: %s failed: %s\n", id, msg)
	}
	return nil
}

var (
	weightPaperLbs float64
	weightWidth    float64
	weightHeight   float64
	weightQuantity int
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Estimate the shippable weight of a print job",
	RunE:  runWeight,
}

func init() {
	weightCmd.Flags().Float64Var(&weightPaperLbs, "paper-weight", 0, "paper weight in lbs per square inch (required)")
	weightCmd.Flags().Float64Var(&weightWidth, "width", 0, "piece width in inches (required)")
	weightCmd.Flags().Float64Var(&weightHeight, "height", 0, "piece height in inches (required)")
	weightCmd.Flags().IntVar(&weightQuantity, "quantity", 0, "piece count (required)")
	_ = weightCmd.MarkFlagRequired("paper-weight")
	_ = weightCmd.MarkFlagRequired("width")
	_ = weightCmd.MarkFlagRequired("height")
	_ = weightCmd.MarkFlagRequired("quantity")
}

func runWeight(cmd *cobra.Command, args []string) error {
	item := shipping.LineItem{
		PaperWeightPerSquareInch: decimal.NewFromFloat(weightPaperLbs),
		Width:                    decimal.NewFromFloat(weightWidth),
		Height:                   decimal.NewFromFloat(weightHeight),
		Quantity:                 weightQuantity,
	}
	overhead := decimal.NewFromFloat(config.Get().Shipping.PackagingOverheadLbs)
	total := shipping.EstimateWeight([]shipping.LineItem{item}, overhead)

	fmt.Printf("Total weight: %s lbs (including %.1f lbs packaging)\n",
		total.StringFixed(1), config.Get().Shipping.PackagingOverheadLbs)
	return nil
}
