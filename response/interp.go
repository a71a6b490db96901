package response

import (
	"fmt"
	"math"
	"sort"
)

// ResampleTo interpolates the series onto a new frequency grid and returns
// the result as a new Series with the same label.
//
// Interpolation is piecewise linear in the linear frequency domain, which
// is adequate for the log-spaced grids produced by AC sweeps. Query
// frequencies outside the series range are clamped to the end values.
// The grid must satisfy the usual Series invariants.
func (s *Series) ResampleTo(freqHz []float64) (*Series, error) {
	if len(freqHz) < 2 {
		return nil, ErrTooFewPoints
	}
	for i, f := range freqHz {
		if f <= 0 {
			return nil, &ValidationError{i, f, "frequency must be positive"}
		}
		if i > 0 && f <= freqHz[i-1] {
			return nil, &ValidationError{i, f, "frequency must be strictly increasing"}
		}
	}

	x := s.Frequencies()
	points := make([]Point, len(freqHz))
	for i, q := range freqHz {
		points[i] = Point{
			FrequencyHz: q,
			MagnitudeDB: interpAt(x, s.points, q, func(p Point) float64 { return p.MagnitudeDB }),
			PhaseDeg:    interpAt(x, s.points, q, func(p Point) float64 { return p.PhaseDeg }),
		}
	}
	return New(s.label, points)
}

// interpAt linearly interpolates the value selected by sel at query
// frequency q, clamping beyond the first and last sample.
func interpAt(x []float64, points []Point, q float64, sel func(Point) float64) float64 {
	if q <= x[0] {
		return sel(points[0])
	}
	if q >= x[len(x)-1] {
		return sel(points[len(points)-1])
	}
	j := sort.SearchFloat64s(x, q)
	x0, x1 := x[j-1], x[j]
	t := (q - x0) / (x1 - x0)
	y0, y1 := sel(points[j-1]), sel(points[j])
	return y0 + t*(y1-y0)
}

// GainDifference resamples b onto a's frequency grid and subtracts it from
// a, returning the dB gain difference as a new Series. The classic use is
// CMRR: a is the differential-mode transfer, b the common-mode transfer.
// The phase column carries the normalized phase difference.
func GainDifference(label string, a, b *Series) (*Series, error) {
	bi, err := b.ResampleTo(a.Frequencies())
	if err != nil {
		return nil, fmt.Errorf("response: resampling %q onto %q: %w", b.label, a.label, err)
	}

	points := make([]Point, a.Len())
	for i, p := range a.points {
		points[i] = Point{
			FrequencyHz: p.FrequencyHz,
			MagnitudeDB: p.MagnitudeDB - bi.points[i].MagnitudeDB,
			PhaseDeg:    NormalizePhaseDeg(p.PhaseDeg - bi.points[i].PhaseDeg),
		}
	}
	return New(label, points)
}

// DeviationStats summarizes how far a comparison series deviates from a
// reference, evaluated on the reference grid.
type DeviationStats struct {
	Points int

	MaxMagnitudeDB  float64 // largest absolute magnitude deviation
	MaxMagnitudeHz  float64 // frequency where it occurs
	MeanMagnitudeDB float64
	RMSMagnitudeDB  float64

	MaxPhaseDeg  float64 // largest absolute phase deviation
	MaxPhaseHz   float64
	MeanPhaseDeg float64
	RMSPhaseDeg  float64
}

// Deviation computes deviation statistics of cmp against ref. cmp is
// resampled onto ref's frequency grid first; phase deviations are taken on
// the normalized difference so a wrap at +/-180 degrees does not register
// as a 360 degree error.
func Deviation(ref, cmp *Series) (DeviationStats, error) {
	ci, err := cmp.ResampleTo(ref.Frequencies())
	if err != nil {
		return DeviationStats{}, fmt.Errorf("response: resampling %q onto %q: %w", cmp.label, ref.label, err)
	}

	var st DeviationStats
	st.Points = ref.Len()

	var sumMag, sumMagSq, sumPh, sumPhSq float64
	for i, p := range ref.points {
		dMag := math.Abs(p.MagnitudeDB - ci.points[i].MagnitudeDB)
		dPh := math.Abs(NormalizePhaseDeg(p.PhaseDeg - ci.points[i].PhaseDeg))

		sumMag += dMag
		sumMagSq += dMag * dMag
		sumPh += dPh
		sumPhSq += dPh * dPh

		if dMag > st.MaxMagnitudeDB {
			st.MaxMagnitudeDB = dMag
			st.MaxMagnitudeHz = p.FrequencyHz
		}
		if dPh > st.MaxPhaseDeg {
			st.MaxPhaseDeg = dPh
			st.MaxPhaseHz = p.FrequencyHz
		}
	}

	n := float64(st.Points)
	st.MeanMagnitudeDB = sumMag / n
	st.RMSMagnitudeDB = math.Sqrt(sumMagSq / n)
	st.MeanPhaseDeg = sumPh / n
	st.RMSPhaseDeg = math.Sqrt(sumPhSq / n)
	return st, nil
}
