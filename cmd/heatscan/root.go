package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgoulah/heatscan/internal/config"
	"github.com/jgoulah/heatscan/internal/database"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "heatscan",
	Short: "Estimate building heat loss and balance point from thermostat telemetry",
	Long: `HeatScan analyzes exported thermostat telemetry (outdoor/indoor temperature
and heating runtime) to estimate how much heat a building loses per degree of
indoor-outdoor difference, and the outdoor temperature below which auxiliary
heat becomes necessary. Results are stored in a local SQLite database.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./heatscan.db)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the database file path (local directory)
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "heatscan.db"
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// openDB opens the database connection
func openDB() (*database.DB, error) {
	path := getDBPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}
