// Package cmd provides the CLI commands for programme-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"programme-cost/internal/config"
	"programme-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "programme-cost",
	Short: "Cost health programmes from national reference data",
	Long: `programme-cost estimates the cost of running a health programme.

It prices a programme definition against country reference tables
(salaries, per diems, transport, supplies, facilities, population),
rebases every line into a single currency and price year, discounts to
the programme start year and emits a per-year, per-component ledger.

Examples:
  programme-cost cost -i programme.json
  programme-cost cost -i programme.hcl -o ledger.csv
  programme-cost reference import --csv ./exports`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.programme-cost/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(costCmd)
	rootCmd.AddCommand(referenceCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("programme-cost version " + Version)
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("reference database: %s\n", cfg.Database.Path)
		fmt.Printf("server address:     %s\n", cfg.Server.Addr)
		fmt.Printf("default country:    %s\n", cfg.Defaults.Country)
		fmt.Printf("default currency:   %s (%d prices)\n", cfg.Defaults.DesiredCurrency, cfg.Defaults.DesiredYear)
		fmt.Printf("default discount:   %.2f\n", cfg.Defaults.DiscountRate)
		return nil
	},
}
