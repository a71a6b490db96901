// Package response defines the frequency-response series shared by all
// readers and renderers in this module.
//
// A Series is an ordered set of (frequency, magnitude, phase) points with
// two invariants enforced at construction:
//
//   - frequencies are strictly increasing and positive (a physical sweep
//     never repeats or reverses)
//   - a series holds at least two points (a single point is not a curve)
//
// Series are immutable once built. Derived data (resampling onto another
// frequency grid, gain differences such as CMRR, deviation statistics,
// series computed from an impulse response) is produced as new Series
// values.
//
// # Usage
//
//	pts := []response.Point{
//	    {FrequencyHz: 10, MagnitudeDB: -0.1, PhaseDeg: -1.2},
//	    {FrequencyHz: 100, MagnitudeDB: -3.0, PhaseDeg: -45.1},
//	}
//	s, err := response.New("simulation", pts)
package response
