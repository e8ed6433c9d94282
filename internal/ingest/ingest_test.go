package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawSkipsCommentsAndBlankLines(t *testing.T) {
	raw := `# exported by thermostat
# account: 12345

Date,Time,Outdoor Temp (F),Thermostat Temperature (F)
2024-01-15,08:00:00,30.5,68.0
2024-01-15,08:05:00,30.4,68.1
`

	headers, rows, err := ParseRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Time", "Outdoor Temp (F)", "Thermostat Temperature (F)"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "30.5", rows[0][ColOutdoorTemp])
	assert.Equal(t, "08:05:00", rows[1][ColTime])
}

func TestParseRawStripsQuotedHeaders(t *testing.T) {
	raw := `"Date" , "Time" ,"Outdoor Temp (F)"
2024-01-15,08:00:00,30.5
`

	headers, _, err := ParseRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Time", "Outdoor Temp (F)"}, headers)
}

func TestParseRawToleratesRaggedRows(t *testing.T) {
	raw := `Date,Time,Outdoor Temp (F)
2024-01-15,08:00:00
`

	_, rows, err := ParseRaw(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0][ColOutdoorTemp])
}

func TestParseRawAllComments(t *testing.T) {
	raw := "# only\n# comments\n# here\n"

	_, _, err := ParseRaw(raw)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseRawEmptyInput(t *testing.T) {
	_, _, err := ParseRaw("")
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseRawHeaderWithoutData(t *testing.T) {
	raw := "# comment\nDate,Time,Outdoor Temp (F)\n"

	_, _, err := ParseRaw(raw)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestSamplesDropsUnparseableRows(t *testing.T) {
	rows := []map[string]string{
		{ColDate: "2024-01-15", ColTime: "08:00:00", ColOutdoorTemp: "30.5", ColIndoorTemp: "68.0", ColHeatRuntime: "300", ColAuxRuntime: "0"},
		{ColDate: "2024-01-15", ColTime: "08:05:00", ColOutdoorTemp: "sensor error", ColIndoorTemp: "68.0"},
		{ColDate: "2024-01-15", ColTime: "08:10:00", ColOutdoorTemp: "30.3", ColIndoorTemp: ""},
		{ColDate: "2024-01-15", ColTime: "08:15:00", ColOutdoorTemp: "30.2", ColIndoorTemp: "68.2"},
	}

	samples := Samples(rows)
	require.Len(t, samples, 2)
	assert.Equal(t, 30.5, samples[0].OutdoorTemp)
	assert.Equal(t, 300.0, samples[0].HeatRuntimeSec)
	// Missing runtime columns count as zero, not invalid
	assert.Equal(t, 0.0, samples[1].HeatRuntimeSec)
	assert.Equal(t, 0.0, samples[1].AuxRuntimeSec)
}
