package reduce

import (
	"testing"

	"github.com/jgoulah/heatscan/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyAveragesNumericColumns(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, ingest.ColOutdoorTemp}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:10:00", ingest.ColOutdoorTemp: "20"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:40:00", ingest.ColOutdoorTemp: "21"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "01:05:00", ingest.ColOutdoorTemp: "18"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 2)
	assert.Equal(t, "20.5", out[0][ingest.ColOutdoorTemp])
	assert.Equal(t, "18", out[1][ingest.ColOutdoorTemp])
}

func TestHourlyOverwritesDateAndTime(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, ingest.ColOutdoorTemp}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "09:25:00", ingest.ColOutdoorTemp: "30"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "09:55:00", ingest.ColOutdoorTemp: "31"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 1)
	assert.Equal(t, "2024-01-15", out[0][ingest.ColDate])
	assert.Equal(t, "09:00:00", out[0][ingest.ColTime])
}

func TestHourlyCategoricalMode(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, "System Mode"}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:00:00", "System Mode": "heat"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:15:00", "System Mode": "heat"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:30:00", "System Mode": "off"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 1)
	assert.Equal(t, "heat", out[0]["System Mode"])
}

func TestHourlyCategoricalTieGoesToFirstSeen(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, "System Mode"}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:00:00", "System Mode": "off"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:15:00", "System Mode": "heat"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 1)
	assert.Equal(t, "off", out[0]["System Mode"])
}

func TestHourlyMixedNumericAndTextTreatedAsCategorical(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, "Fan"}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:00:00", "Fan": "auto"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:15:00", "Fan": "auto"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:30:00", "Fan": "300"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 1)
	assert.Equal(t, "auto", out[0]["Fan"])
}

func TestHourlyNumericWithEmptyCellsAveragesParsed(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, ingest.ColAuxRuntime}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:00:00", ingest.ColAuxRuntime: "120"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:15:00", ingest.ColAuxRuntime: ""},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:30:00", ingest.ColAuxRuntime: "60"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 1)
	assert.Equal(t, "90", out[0][ingest.ColAuxRuntime])
}

func TestHourlyMissingColumnYieldsEmptyString(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, "Humidity"}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "00:00:00"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0]["Humidity"])
}

func TestHourlyGroupsEmitInFirstSeenOrder(t *testing.T) {
	headers := []string{ingest.ColDate, ingest.ColTime, ingest.ColOutdoorTemp}
	rows := []map[string]string{
		{ingest.ColDate: "2024-01-16", ingest.ColTime: "03:00:00", ingest.ColOutdoorTemp: "25"},
		{ingest.ColDate: "2024-01-15", ingest.ColTime: "22:00:00", ingest.ColOutdoorTemp: "28"},
		{ingest.ColDate: "2024-01-16", ingest.ColTime: "03:30:00", ingest.ColOutdoorTemp: "24"},
	}

	out := Hourly(headers, rows)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-16", out[0][ingest.ColDate])
	assert.Equal(t, "2024-01-15", out[1][ingest.ColDate])
}

func TestParseNumericStripsUnits(t *testing.T) {
	v, err := parseNumeric("68.5F")
	require.NoError(t, err)
	assert.Equal(t, 68.5, v)

	_, err = parseNumeric("heat")
	assert.Error(t, err)

	_, err = parseNumeric("")
	assert.Error(t, err)
}
