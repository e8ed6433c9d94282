package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/heatscan/internal/config"
	"github.com/jgoulah/heatscan/pkg/models"
)

// Publisher pushes analysis results to Home Assistant and/or an MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	haConfig    config.HAConfig
}

// New creates a new publisher (supports both MQTT and HA HTTP API)
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig, topicPrefix string) (*Publisher, error) {
	// Validate HA config if enabled
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityID == "" {
			return nil, fmt.Errorf("Home Assistant entity_id is required when enabled")
		}
	}

	// If MQTT is enabled, set it up
	var client mqtt.Client
	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		// Configure MQTT client options
		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID("heatscan")
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(true)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		// Create and connect client
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
	}

	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		haConfig:    haCfg,
	}, nil
}

// HAPayload matches the Home Assistant state update service call data
type HAPayload struct {
	EntityID    string       `json:"entity_id"`
	State       string       `json:"state"`
	Attributes  HAAttributes `json:"attributes"`
	LastChanged string       `json:"last_changed"`
	LastUpdated string       `json:"last_updated"`
}

// HAAttributes carries the result fields alongside the sensor state
type HAAttributes struct {
	Label           string  `json:"label"`
	BalancePointF   float64 `json:"balance_point_f"`
	TempDiffF       float64 `json:"temp_diff_f"`
	EquipmentOutput float64 `json:"equipment_output_btu_per_hr"`
}

// Publish sends an analysis result to every enabled destination
func (p *Publisher) Publish(result models.AnalysisResult) error {
	if !p.haConfig.Enabled && p.client == nil {
		return fmt.Errorf("no publishing destination is enabled in config")
	}

	if p.client != nil {
		if err := p.publishMQTT(result); err != nil {
			return err
		}
	}

	if p.haConfig.Enabled {
		if err := p.publishHA(result); err != nil {
			return err
		}
	}

	return nil
}

// publishMQTT sends the full result as retained JSON on the result topic
func (p *Publisher) publishMQTT(result models.AnalysisResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	topic := fmt.Sprintf("%s/analysis", p.topicPrefix)
	if token := p.client.Publish(topic, 0, true, body); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}

	return nil
}

// publishHA posts the heat loss factor as sensor state via HTTP API
func (p *Publisher) publishHA(result models.AnalysisResult) error {
	apiURL := fmt.Sprintf("%s/api/states/%s", p.haConfig.URL, p.haConfig.EntityID)

	timestamp := result.CreatedAt.Format(time.RFC3339)
	payload := HAPayload{
		EntityID: p.haConfig.EntityID,
		State:    fmt.Sprintf("%.1f", result.HeatLossFactor),
		Attributes: HAAttributes{
			Label:           result.Label,
			BalancePointF:   result.BalancePoint,
			TempDiffF:       result.TempDiff,
			EquipmentOutput: result.EquipmentOutput,
		},
		LastChanged: timestamp,
		LastUpdated: timestamp,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// Read error response body for debugging
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
