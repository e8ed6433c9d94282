package reduce

import (
	"strconv"
	"strings"

	"github.com/jgoulah/heatscan/internal/ingest"
)

// minSampledRows is the smallest quarter-hour row count worth keeping.
// Below it the telemetry is assumed unaligned to quarter-hour boundaries.
const minSampledRows = 4

// QuarterHour keeps only rows whose time-of-day lands on a quarter-hour
// mark (minute 0, 15, 30, or 45), shrinking regular 5-minute telemetry to
// a 15-minute series. If fewer than 4 rows land on a mark, the full input
// is returned unchanged.
func QuarterHour(rows []map[string]string) []map[string]string {
	var kept []map[string]string
	for _, row := range rows {
		minute, ok := minuteOf(row[ingest.ColTime])
		if !ok {
			continue
		}
		switch minute {
		case 0, 15, 30, 45:
			kept = append(kept, row)
		}
	}
	if len(kept) < minSampledRows {
		return rows
	}
	return kept
}

// minuteOf extracts the minute component from an HH:MM or HH:MM:SS string.
func minuteOf(t string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) < 2 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return minute, true
}
