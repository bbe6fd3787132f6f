// Package cmd - catalog command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	catalogHCL "printcost/catalog/hcl"
	"printcost/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate the product catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Parse and validate a catalog directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.Get().Catalog.Path
		if len(args) == 1 {
			dir = args[0]
		}

		cat, err := catalogHCL.NewLoader().LoadDir(dir)
		if err != nil {
			return err
		}

		fmt.Printf("Catalog OK: %d papers, %d sizes, %d coatings, %d sides options, %d add-ons, %d turnaround tiers\n",
			len(cat.Papers), len(cat.Sizes), len(cat.Coatings), len(cat.Sides), len(cat.AddOns), len(cat.Turnarounds))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}
