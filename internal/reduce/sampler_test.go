package reduce

import (
	"fmt"
	"testing"

	"github.com/jgoulah/heatscan/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowAt(timeStr string) map[string]string {
	return map[string]string{
		ingest.ColDate: "2024-01-15",
		ingest.ColTime: timeStr,
	}
}

func TestQuarterHourKeepsBoundaryRows(t *testing.T) {
	// Two hours of regular 5-minute telemetry
	var rows []map[string]string
	for hour := 8; hour < 10; hour++ {
		for minute := 0; minute < 60; minute += 5 {
			rows = append(rows, rowAt(fmt.Sprintf("%02d:%02d:00", hour, minute)))
		}
	}

	kept := QuarterHour(rows)
	require.Len(t, kept, 8)
	for _, row := range kept {
		minute, ok := minuteOf(row[ingest.ColTime])
		require.True(t, ok)
		assert.Contains(t, []int{0, 15, 30, 45}, minute)
	}
}

func TestQuarterHourFallsBackWhenTooFewBoundaryRows(t *testing.T) {
	// Telemetry offset from quarter-hour boundaries: only three rows align
	rows := []map[string]string{
		rowAt("08:00:00"),
		rowAt("08:07:00"),
		rowAt("08:15:00"),
		rowAt("08:22:00"),
		rowAt("08:30:00"),
		rowAt("08:37:00"),
	}

	kept := QuarterHour(rows)
	assert.Equal(t, rows, kept)
}

func TestQuarterHourIgnoresUnparseableTimes(t *testing.T) {
	rows := []map[string]string{
		rowAt("not a time"),
		rowAt("08:15:00"),
		rowAt("08:30:00"),
		rowAt("08:45:00"),
		rowAt("09:00:00"),
	}

	kept := QuarterHour(rows)
	require.Len(t, kept, 4)
	assert.Equal(t, "08:15:00", kept[0][ingest.ColTime])
}
