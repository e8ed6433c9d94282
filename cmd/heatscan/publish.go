package main

import (
	"fmt"
	"time"

	"github.com/jgoulah/heatscan/internal/publisher"
	"github.com/jgoulah/heatscan/pkg/models"
	"github.com/spf13/cobra"
)

var (
	publishAll   bool
	publishLimit int
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish analysis results to Home Assistant or MQTT",
	Long: `Reads stored analysis results from the database and publishes them to the
configured destinations (Home Assistant HTTP API and/or an MQTT broker).`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishAll, "all", false, "Force republish all results (ignore published flag)")
	publishCmd.Flags().IntVar(&publishLimit, "limit", 0, "Limit number of results to publish (0 = no limit)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check that at least one destination is configured
	if !cfg.HomeAssistant.Enabled && !cfg.MQTT.Enabled {
		return fmt.Errorf("neither Home Assistant nor MQTT is enabled in config")
	}

	// Create publisher
	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant, cfg.GetTopicPrefix())
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	// Open database
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Get results based on --all flag
	var results []models.AnalysisResult
	if publishAll {
		results, err = db.ListResults()
	} else {
		results, err = db.ListUnpublishedResults()
	}
	if err != nil {
		return fmt.Errorf("listing results: %w", err)
	}

	if len(results) == 0 {
		if publishAll {
			fmt.Println("No results found")
		} else {
			fmt.Println("No unpublished results found")
		}
		return nil
	}

	// Apply limit if specified
	if publishLimit > 0 && len(results) > publishLimit {
		results = results[:publishLimit]
		fmt.Printf("Limiting to %d results (--limit flag)\n", publishLimit)
	}

	// Publish each result
	fmt.Printf("Publishing %d results...\n", len(results))
	published := 0
	for i, result := range results {
		fmt.Printf("[%d/%d] Publishing %q (%.1f BTU/hr/F)... ", i+1, len(results), result.Label, result.HeatLossFactor)
		if err := pub.Publish(result); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}

		// Mark result as published in database
		if err := db.MarkPublished(result.ID); err != nil {
			fmt.Printf("✓ (warning: failed to mark as published: %v)\n", err)
		} else {
			fmt.Printf("✓\n")
		}
		published++
	}

	fmt.Printf("\nSuccessfully published %d/%d results\n", published, len(results))
	return nil
}
