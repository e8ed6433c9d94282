package reduce

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jgoulah/heatscan/internal/ingest"
)

// Hourly reduces rows to one row per (date, hour) group. Columns whose
// values all parse numerically collapse to their arithmetic mean; columns
// holding any non-empty non-numeric value collapse to their most frequent
// raw value, ties going to the value seen first. Groups come out in
// first-seen order so repeated runs produce identical output.
func Hourly(headers []string, rows []map[string]string) []map[string]string {
	type group struct {
		date string
		hour string
		rows []map[string]string
	}

	var order []string
	groups := make(map[string]*group)
	for _, row := range rows {
		hour, ok := hourOf(row[ingest.ColTime])
		if !ok {
			continue
		}
		key := row[ingest.ColDate] + "|" + hour
		g, seen := groups[key]
		if !seen {
			g = &group{date: row[ingest.ColDate], hour: hour}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, row)
	}

	var out []map[string]string
	for _, key := range order {
		g := groups[key]
		row := make(map[string]string, len(headers))
		for _, h := range headers {
			row[h] = reduceColumn(g.rows, h)
		}
		// The group key, not an averaged value, is the row's timestamp
		if _, ok := row[ingest.ColDate]; ok {
			row[ingest.ColDate] = g.date
		}
		if _, ok := row[ingest.ColTime]; ok {
			row[ingest.ColTime] = g.hour + ":00:00"
		}
		out = append(out, row)
	}
	return out
}

// hourOf extracts the zero-padded hour from an HH:MM or HH:MM:SS string.
func hourOf(t string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) < 2 {
		return "", false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%02d", hour), true
}

// reduceColumn collapses one column of a group to a single value.
func reduceColumn(rows []map[string]string, col string) string {
	var values []string
	for _, row := range rows {
		if v, ok := row[col]; ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return ""
	}

	var numeric []float64
	allNumeric := true
	hasText := false
	for _, v := range values {
		n, err := parseNumeric(v)
		if err != nil {
			allNumeric = false
			if strings.TrimSpace(v) != "" {
				hasText = true
			}
			continue
		}
		numeric = append(numeric, n)
	}

	switch {
	case allNumeric:
		return formatMean(numeric)
	case hasText, len(numeric) == 0:
		return mostFrequent(values)
	default:
		// Numbers mixed only with empty cells: average what parsed
		return formatMean(numeric)
	}
}

// parseNumeric attempts a numeric read of a raw cell. Everything except
// digits, sign, and decimal point is stripped first, and at least one
// digit must remain for the cell to count as numeric.
func parseNumeric(v string) (float64, error) {
	var b strings.Builder
	hasDigit := false
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
			b.WriteRune(r)
		case r == '-' || r == '+' || r == '.':
			b.WriteRune(r)
		}
	}
	if !hasDigit {
		return 0, fmt.Errorf("no digits in %q", v)
	}
	return strconv.ParseFloat(b.String(), 64)
}

// formatMean renders a mean as an integer string when it is within 1e-4 of
// a whole number, otherwise rounded to two decimal places.
func formatMean(values []float64) string {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if math.Abs(mean-math.Round(mean)) < 0.0001 {
		return strconv.Itoa(int(math.Round(mean)))
	}
	return strconv.FormatFloat(math.Round(mean*100)/100, 'f', -1, 64)
}

// mostFrequent returns the most common value; on a tie the value that was
// encountered first wins.
func mostFrequent(values []string) string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
