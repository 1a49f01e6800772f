// Package cmd - cost command
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"programme-cost/core/engine"
	"programme-cost/core/input"
	"programme-cost/core/output"
	"programme-cost/core/refdata"
	"programme-cost/internal/config"
	"programme-cost/internal/logging"
)

var (
	programmeFile string
	outputFile    string
	outputFormat  string
)

// costCmd represents the cost command
var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Cost a programme definition",
	Long: `Price a programme definition against the reference snapshot and
write the resulting cost ledger.

The programme file may be JSON or HCL. Unset fields (discount rate,
output currency, output price year) are filled from the configured
defaults.

Examples:
  programme-cost cost -i programme.json
  programme-cost cost -i programme.hcl -o ledger.csv
  programme-cost cost -i programme.json --format json`,
	RunE: runCost,
}

func init() {
	costCmd.Flags().StringVarP(&programmeFile, "input", "i", "", "programme definition file (.json or .hcl)")
	costCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the ledger to a file instead of stdout")
	costCmd.Flags().StringVarP(&outputFormat, "format", "f", "csv", "output format (csv, json)")
	costCmd.MarkFlagRequired("input")
}

func runCost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	programme, err := input.LoadProgramme(programmeFile)
	if err != nil {
		return err
	}

	cfg := config.Get()
	cfg.ApplyDefaults(programme)

	formatter, err := output.For(output.Format(outputFormat))
	if err != nil {
		return err
	}

	store, err := refdata.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open reference snapshot %s: %w", cfg.Database.Path, err)
	}
	defer store.Close()

	logging.Info("costing programme")

	ledger, err := engine.New(store).Run(ctx, programme)
	if err != nil {
		return err
	}

	result := &output.Result{
		Config: programme,
		Ledger: ledger,
		Metadata: output.Metadata{
			Timestamp: start.UTC().Format(time.RFC3339),
			Duration:  time.Since(start).String(),
			Version:   Version,
		},
	}

	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := formatter.Render(w, result); err != nil {
		return err
	}

	if outputFile != "" {
		fmt.Printf("Ledger written to %s (%d entries, total %s)\n",
			outputFile, len(ledger), ledger.Total().StringFixed(2))
	}
	return nil
}
