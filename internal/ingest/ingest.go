package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jgoulah/heatscan/pkg/models"
)

// Canonical column names produced by the upstream normalizer.
const (
	ColDate        = "Date"
	ColTime        = "Time"
	ColOutdoorTemp = "Outdoor Temp (F)"
	ColIndoorTemp  = "Thermostat Temperature (F)"
	ColHeatRuntime = "Heat Stage 1 (sec)"
	ColAuxRuntime  = "Aux Heat 1 (sec)"
)

var (
	// ErrNoHeader means every line of the input was blank or a #-comment.
	ErrNoHeader = errors.New("no header row found")
	// ErrEmptyDataset means a header was found but no data rows followed.
	ErrEmptyDataset = errors.New("no data rows found")
)

// ParseRaw splits raw delimited text into a header and labeled rows.
// Blank lines are discarded and leading #-prefixed comment lines are
// skipped; the first remaining line is the header. Data rows are split on
// commas positionally, so ragged rows are tolerated and missing trailing
// fields come back as empty strings.
func ParseRaw(raw string) ([]string, []map[string]string, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	// Find the header: first line that isn't a comment
	headerIdx := -1
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "#") {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, nil, ErrNoHeader
	}

	var headers []string
	for _, field := range strings.Split(lines[headerIdx], ",") {
		headers = append(headers, strings.Trim(strings.TrimSpace(field), `"`))
	}

	var rows []map[string]string
	for _, line := range lines[headerIdx+1:] {
		fields := strings.Split(line, ",")
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = strings.TrimSpace(fields[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	return headers, rows, nil
}

// Samples converts canonical rows into typed telemetry samples. Rows whose
// temperatures do not parse as finite numbers are invalid and dropped;
// absent or unparseable runtime values count as zero.
func Samples(rows []map[string]string) []models.Sample {
	var samples []models.Sample
	for _, row := range rows {
		outdoor, err := parseTemp(row[ColOutdoorTemp])
		if err != nil {
			continue
		}
		indoor, err := parseTemp(row[ColIndoorTemp])
		if err != nil {
			continue
		}
		samples = append(samples, models.Sample{
			Date:           row[ColDate],
			Time:           row[ColTime],
			OutdoorTemp:    outdoor,
			IndoorTemp:     indoor,
			HeatRuntimeSec: parseRuntime(row[ColHeatRuntime]),
			AuxRuntimeSec:  parseRuntime(row[ColAuxRuntime]),
		})
	}
	return samples
}

func parseTemp(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite temperature %q", s)
	}
	return v, nil
}

func parseRuntime(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
