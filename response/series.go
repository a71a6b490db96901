package response

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned when constructing or deriving a Series.
var (
	ErrTooFewPoints = errors.New("response: series must contain at least 2 points")
	ErrEmptyLabel   = errors.New("response: series label must not be empty")
)

// ValidationError describes a point that violates a Series invariant.
type ValidationError struct {
	Index       int     // zero-based point index
	FrequencyHz float64 // offending frequency value
	Msg         string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("response: point %d (%g Hz): %s", e.Index, e.FrequencyHz, e.Msg)
}

// Point is a single frequency-response sample in engineering units.
type Point struct {
	FrequencyHz float64
	MagnitudeDB float64
	PhaseDeg    float64
}

// Series is an immutable, validated frequency-response curve.
// The label identifies the data source in plot legends ("simulation",
// "measurement", a file name, ...).
type Series struct {
	label  string
	points []Point
}

// New validates the points and returns a Series. The points must be
// strictly increasing in frequency, all frequencies positive, all values
// finite, and there must be at least two of them. The slice is copied.
func New(label string, points []Point) (*Series, error) {
	if label == "" {
		return nil, ErrEmptyLabel
	}
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	prev := 0.0
	for i, p := range points {
		if p.FrequencyHz <= 0 {
			return nil, &ValidationError{i, p.FrequencyHz, "frequency must be positive"}
		}
		if p.FrequencyHz <= prev {
			return nil, &ValidationError{i, p.FrequencyHz, "frequency must be strictly increasing"}
		}
		if !isFinite(p.MagnitudeDB) {
			return nil, &ValidationError{i, p.FrequencyHz, "magnitude is not finite"}
		}
		if !isFinite(p.PhaseDeg) {
			return nil, &ValidationError{i, p.FrequencyHz, "phase is not finite"}
		}
		prev = p.FrequencyHz
	}

	s := &Series{label: label, points: make([]Point, len(points))}
	copy(s.points, points)
	return s, nil
}

// Label returns the source label used for plot legends.
func (s *Series) Label() string { return s.label }

// Len returns the number of points.
func (s *Series) Len() int { return len(s.points) }

// At returns the i-th point.
func (s *Series) At(i int) Point { return s.points[i] }

// Points returns a copy of all points.
func (s *Series) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Frequencies returns the frequency column in Hz.
func (s *Series) Frequencies() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.FrequencyHz
	}
	return out
}

// MagnitudesDB returns the magnitude column in dB.
func (s *Series) MagnitudesDB() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.MagnitudeDB
	}
	return out
}

// PhasesDeg returns the phase column in degrees.
func (s *Series) PhasesDeg() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.PhaseDeg
	}
	return out
}

// NormalizePhaseDeg maps an angle in degrees into (-180, 180].
func NormalizePhaseDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	switch {
	case d <= -180:
		d += 360
	case d > 180:
		d -= 360
	}
	return d
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
