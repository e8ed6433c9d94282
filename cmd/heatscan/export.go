package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jgoulah/heatscan/internal/ingest"
	"github.com/jgoulah/heatscan/internal/reduce"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [csv file]",
	Short: "Export hourly-averaged telemetry",
	Long: `Reads a thermostat telemetry CSV export and writes one row per hour, with
numeric columns averaged and categorical columns reduced to their most
frequent value. Useful for spreadsheet analysis at coarser granularity.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(os.Stderr, "=== Export started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Read the telemetry export
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading telemetry file: %w", err)
	}

	headers, rows, err := ingest.ParseRaw(string(data))
	if err != nil {
		return fmt.Errorf("parsing telemetry: %w", err)
	}

	hourly := reduce.Hourly(headers, rows)

	// Pick the output destination
	var out io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range hourly {
		record := make([]string, len(headers))
		for i, h := range headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %d hourly rows\n", len(hourly))
	return nil
}
