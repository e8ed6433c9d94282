package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jgoulah/heatscan/internal/analyzer"
	"github.com/jgoulah/heatscan/pkg/models"
	"github.com/spf13/cobra"
)

var (
	analyzeTons   float64
	analyzeLabel  string
	analyzeNoSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [csv file]",
	Short: "Analyze a thermostat telemetry export",
	Long: `Reads a thermostat telemetry CSV export, finds the most recent steady-state
heating window, and estimates the building heat loss factor and balance point.
The result is stored in the local database unless --no-save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeTons, "tons", 0, "Equipment capacity in tons (default: from config, else 2.0)")
	analyzeCmd.Flags().StringVar(&analyzeLabel, "label", "", "Label for the stored result (default: input file name)")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Print the result without storing it")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Analyze started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Capacity: flag overrides config
	tons := cfg.GetCapacityTons()
	if analyzeTons > 0 {
		tons = analyzeTons
	}

	// Read the telemetry export
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading telemetry file: %w", err)
	}

	fmt.Printf("Analyzing %s (%.1f ton equipment)...\n", args[0], tons)
	result, err := analyzer.AnalyzeCSV(string(data), models.Equipment{CapacityTons: tons})
	if err != nil {
		return fmt.Errorf("analyzing telemetry: %w", err)
	}

	result.ID = uuid.NewString()
	result.CreatedAt = time.Now().UTC()
	result.Label = analyzeLabel
	if result.Label == "" {
		base := filepath.Base(args[0])
		result.Label = strings.TrimSuffix(base, filepath.Ext(base))
	}

	// Display the result
	fmt.Println("----------------------------------------")
	fmt.Printf("Heat loss factor:  %s BTU/hr/F\n", humanize.CommafWithDigits(result.HeatLossFactor, 1))
	fmt.Printf("Balance point:     %.1f F\n", result.BalancePoint)
	fmt.Printf("Steady-state dT:   %.1f F\n", result.TempDiff)
	fmt.Printf("Equipment output:  %s BTU/hr\n", humanize.CommafWithDigits(result.EquipmentOutput, 0))
	fmt.Printf("Total heat loss:   %s BTU/hr\n", humanize.CommafWithDigits(result.HeatLossTotal, 0))
	fmt.Println("----------------------------------------")

	if analyzeNoSave {
		return nil
	}

	// Store the result and keep history bounded
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.InsertResult(result); err != nil {
		return fmt.Errorf("storing result: %w", err)
	}
	if err := db.Prune(cfg.GetKeepResults()); err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	fmt.Printf("✓ Stored result %q\n", result.Label)
	return nil
}
