// Package cmd provides the CLI commands for printcost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"printcost/catalog"
	catalogHCL "printcost/catalog/hcl"
	"printcost/engine"
	"printcost/internal/config"
	"printcost/internal/logging"
)

// Version is set at build time
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "printcost",
	Short: "Price print jobs and quote shipping rates",
	Long: `printcost is the pricing and shipping-rate engine for the print storefront.

It turns a product configuration into a full price breakdown and a
package plus destination into ranked carrier quotes.

Examples:
  printcost price --paper gloss-14pt --size 4x6 --quantity 5000
  printcost rates --weight 5 --state TX --city Dallas
  printcost catalog validate ./catalog`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.printcost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(weightCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home + "/.printcost.json"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	config.Set(cfg)
}

// loadCatalog loads the configured catalog directory
func loadCatalog() (*catalog.Catalog, error) {
	return catalogHCL.NewLoader().LoadDir(config.Get().Catalog.Path)
}

// buildEngine loads the catalog and wires the default carrier modules
func buildEngine() (*engine.Engine, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return engine.New(cat, config.Get().Shipping), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the printcost version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("printcost", Version)
	},
}
