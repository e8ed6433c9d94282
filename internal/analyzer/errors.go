package analyzer

import "errors"

var (
	// ErrNoSteadyState means no 3-sample window was simultaneously cold
	// outdoors, free of aux heat, continuously running on primary heat,
	// and stable indoors. Without one there is no basis for estimation.
	ErrNoSteadyState = errors.New("no steady-state window found: need 3 consecutive samples below 40F outdoors with continuous primary runtime, no aux heat, and stable indoor temperature")

	// ErrInvalidTempDiff means the chosen window put indoor temperature at
	// or below outdoor, which cannot happen under active heating and
	// signals corrupted data.
	ErrInvalidTempDiff = errors.New("invalid temperature difference: indoor not warmer than outdoor")
)
