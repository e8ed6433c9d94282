package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var listCSV bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analysis results",
	Long:  `Displays all stored analysis results from the database, newest first.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listCSV, "csv", false, "Emit results as CSV (label, heat_loss_factor, balance_point)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	// Open database
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	results, err := db.ListResults()
	if err != nil {
		return fmt.Errorf("listing results: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No analysis results found")
		return nil
	}

	if listCSV {
		w := csv.NewWriter(os.Stdout)
		if err := w.Write([]string{"label", "heat_loss_factor", "balance_point"}); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
		for _, result := range results {
			record := []string{
				result.Label,
				strconv.FormatFloat(result.HeatLossFactor, 'f', 1, 64),
				strconv.FormatFloat(result.BalancePoint, 'f', 1, 64),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("writing csv record: %w", err)
			}
		}
		w.Flush()
		return w.Error()
	}

	fmt.Println("\nStored Analysis Results:")
	fmt.Println("--------------------------------------------------------------------")
	fmt.Printf("%-12s  %-20s  %12s  %10s\n", "Date", "Label", "BTU/hr/F", "Balance F")
	fmt.Println("--------------------------------------------------------------------")

	for _, result := range results {
		fmt.Printf("%-12s  %-20s  %12.1f  %10.1f\n",
			result.CreatedAt.Format("2006-01-02"), result.Label, result.HeatLossFactor, result.BalancePoint)
	}

	fmt.Println("--------------------------------------------------------------------")
	fmt.Printf("%d results\n", len(results))

	return nil
}
