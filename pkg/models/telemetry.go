package models

import "time"

// Sample is one canonicalized thermostat telemetry row. Temperatures are
// Fahrenheit, runtimes are seconds within a nominal 5-minute interval.
type Sample struct {
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	OutdoorTemp    float64 `json:"outdoor_temp_f"`
	IndoorTemp     float64 `json:"indoor_temp_f"`
	HeatRuntimeSec float64 `json:"primary_runtime_sec"`
	AuxRuntimeSec  float64 `json:"aux_runtime_sec"`
}

// Equipment describes the installed heating equipment.
type Equipment struct {
	CapacityTons float64 `json:"capacity_tons"` // rated capacity in tons of refrigeration
}

// AnalysisResult holds the building and equipment characteristics inferred
// from one telemetry dataset.
type AnalysisResult struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	HeatLossFactor  float64   `json:"heat_loss_factor_btu_per_hr_f"` // BTU/hr lost per °F of ΔT
	BalancePoint    float64   `json:"balance_point_f"`               // outdoor temp below which aux heat is needed
	TempDiff        float64   `json:"temp_diff_f"`                   // indoor minus outdoor over the steady-state window
	EquipmentOutput float64   `json:"equipment_output_btu_per_hr"`
	HeatLossTotal   float64   `json:"heat_loss_total_btu_per_hr"`
	CapacityTons    float64   `json:"capacity_tons"`
	CreatedAt       time.Time `json:"created_at"`
}
