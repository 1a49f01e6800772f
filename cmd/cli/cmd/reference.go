// Package cmd - reference data commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"programme-cost/db/ingestion"
	"programme-cost/internal/config"
)

var csvDir string

// referenceCmd groups reference-snapshot maintenance commands
var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Manage the reference snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// referenceImportCmd rebuilds snapshot tables from exported CSVs
var referenceImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import reference tables from CSV exports",
	Long: `Load exported CSV tables into the reference snapshot.

Each recognized file (salaries.csv, per_diems.csv, transport.csv,
supplies.csv, distances.csv, divisions.csv, facilities.csv,
economic_series.csv, population.csv) replaces that table's contents.
Files not present in the directory leave their tables untouched.

Do not import while a server is answering costing requests.`,
	RunE: runReferenceImport,
}

func init() {
	referenceImportCmd.Flags().StringVar(&csvDir, "csv", "", "directory containing exported CSV tables")
	referenceImportCmd.MarkFlagRequired("csv")
	referenceCmd.AddCommand(referenceImportCmd)
}

func runReferenceImport(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	loader, err := ingestion.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer loader.Close()

	if err := loader.LoadDir(csvDir); err != nil {
		return err
	}

	fmt.Printf("Reference snapshot updated: %s\n", cfg.Database.Path)
	return nil
}
