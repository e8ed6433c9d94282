package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Equipment     EquipmentConfig `yaml:"equipment,omitempty"`
	HomeAssistant HAConfig        `yaml:"home_assistant,omitempty"`
	MQTT          MQTTConfig      `yaml:"mqtt,omitempty"`
	KeepResults   int             `yaml:"keep_results,omitempty"` // analysis history size (fallback: 20)
}

// EquipmentConfig describes the installed heat pump
type EquipmentConfig struct {
	CapacityTons float64 `yaml:"capacity_tons,omitempty"` // rated capacity (fallback: 2.0)
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://yourdomain.local:5050"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.building_heat_loss_factor"
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default: "heatscan"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetCapacityTons returns the configured equipment capacity with a default of 2.0 tons
func (c *Config) GetCapacityTons() float64 {
	if c.Equipment.CapacityTons <= 0 {
		return 2.0
	}
	return c.Equipment.CapacityTons
}

// GetKeepResults returns how many analysis results to retain, defaulting to 20
func (c *Config) GetKeepResults() int {
	if c.KeepResults <= 0 {
		return 20
	}
	return c.KeepResults
}

// GetTopicPrefix returns the MQTT topic prefix with a default of "heatscan"
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return "heatscan"
	}
	return c.MQTT.TopicPrefix
}
