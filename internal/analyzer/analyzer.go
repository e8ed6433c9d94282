// Package analyzer infers a building's heat loss factor and balance point
// from thermostat telemetry. Neither value can be measured directly; both
// are derived from a window of samples where the heat pump ran
// continuously against a cold outdoors without aux heat while the indoor
// temperature held steady.
package analyzer

import (
	"fmt"
	"math"

	"github.com/jgoulah/heatscan/internal/ingest"
	"github.com/jgoulah/heatscan/internal/reduce"
	"github.com/jgoulah/heatscan/pkg/models"
)

// Steady-state qualification thresholds.
const (
	windowSize     = 3
	coldOutdoorMax = 40.0  // °F; below this a continuous heating load is expected
	minRuntimeSec  = 290.0 // of a nominal 300s interval, i.e. no cycling
	maxIndoorDrift = 0.5   // °F allowed between window endpoints
)

// Physical constants.
const (
	kwPerTon          = 3.517   // rated output per ton of refrigeration
	btuPerKWh         = 3412.14 // BTU/hr per kW
	minCapacityFactor = 0.3     // output never modeled below 30% of rated
)

// Analyze derives the heat loss factor and balance point from a reduced
// telemetry series. The estimate anchors on the most recent steady-state
// window; the balance point is taken over the whole series.
func Analyze(samples []models.Sample, eq models.Equipment) (*models.AnalysisResult, error) {
	window, err := findSteadyWindow(samples)
	if err != nil {
		return nil, err
	}

	var sumOutdoor, sumIndoor float64
	for _, s := range window {
		sumOutdoor += s.OutdoorTemp
		sumIndoor += s.IndoorTemp
	}
	avgOutdoor := sumOutdoor / float64(len(window))
	avgIndoor := sumIndoor / float64(len(window))

	tempDiff := avgIndoor - avgOutdoor
	if tempDiff <= 0 {
		return nil, fmt.Errorf("%w: avg indoor %.1fF, avg outdoor %.1fF", ErrInvalidTempDiff, avgIndoor, avgOutdoor)
	}

	output := eq.CapacityTons * kwPerTon * capacityFactor(avgOutdoor) * btuPerKWh
	factor := output / tempDiff

	return &models.AnalysisResult{
		HeatLossFactor:  factor,
		BalancePoint:    balancePoint(samples),
		TempDiff:        tempDiff,
		EquipmentOutput: output,
		HeatLossTotal:   factor * tempDiff,
		CapacityTons:    eq.CapacityTons,
	}, nil
}

// AnalyzeCSV runs the full pipeline on raw delimited text: row extraction,
// quarter-hour downsampling, sample conversion, then estimation.
func AnalyzeCSV(raw string, eq models.Equipment) (*models.AnalysisResult, error) {
	_, rows, err := ingest.ParseRaw(raw)
	if err != nil {
		return nil, err
	}
	return Analyze(ingest.Samples(reduce.QuarterHour(rows)), eq)
}

// findSteadyWindow scans 3-sample windows starting from the most recent
// data and moving backward, so the most recent qualifying window wins.
func findSteadyWindow(samples []models.Sample) ([]models.Sample, error) {
	for i := len(samples) - windowSize; i >= 0; i-- {
		window := samples[i : i+windowSize]
		if isSteady(window) {
			return window, nil
		}
	}
	return nil, ErrNoSteadyState
}

func isSteady(window []models.Sample) bool {
	if window[0].OutdoorTemp >= coldOutdoorMax {
		return false
	}
	for _, s := range window {
		if s.HeatRuntimeSec <= minRuntimeSec {
			return false
		}
		if s.AuxRuntimeSec > 0 {
			return false
		}
	}
	return math.Abs(window[0].IndoorTemp-window[windowSize-1].IndoorTemp) < maxIndoorDrift
}

// capacityFactor models the output derate of a heat pump as outdoor
// temperature falls, piecewise-linear between the standard 47°F and 17°F
// rating points and floored at 30% of rated output.
func capacityFactor(outdoor float64) float64 {
	factor := 1.0
	if outdoor < 47 {
		factor = 1.0 - (47-outdoor)*0.01
	}
	if outdoor < 17 {
		factor = 0.70 - (17-outdoor)*0.0074
	}
	return math.Max(minCapacityFactor, factor)
}

// balancePoint is the warmest outdoor temperature at which aux heat was
// observed to engage. When aux heat never ran, the coldest observed
// temperature is a conservative floor: the system handled everything down
// to it unassisted.
func balancePoint(samples []models.Sample) float64 {
	auxSeen := false
	var warmestAux, coldest float64
	for i, s := range samples {
		if i == 0 || s.OutdoorTemp < coldest {
			coldest = s.OutdoorTemp
		}
		if s.AuxRuntimeSec > 0 {
			if !auxSeen || s.OutdoorTemp > warmestAux {
				warmestAux = s.OutdoorTemp
			}
			auxSeen = true
		}
	}
	if auxSeen {
		return warmestAux
	}
	return coldest
}
