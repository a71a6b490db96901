package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by FromImpulse.
var (
	ErrEmptyImpulse      = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

// dbFloor clamps linear magnitudes before the log so an exactly-zero FFT
// bin yields a large negative dB value instead of -Inf.
const dbFloor = 1e-15

// FromImpulse derives a Bode series from a measured impulse response.
//
// The impulse response is zero-padded to the next power of two and
// transformed; bins from 1 up to Nyquist become points with
//
//	f_k = k * sampleRate / fftSize
//	magnitude = 20*log10(|H[k]|)
//	phase = arg(H[k]) normalized to (-180, 180]
//
// Bin 0 (DC) is dropped: a Bode series requires positive frequencies.
func FromImpulse(label string, ir []float64, sampleRate float64) (*Series, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyImpulse
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	fftSize := nextPowerOf2(len(ir))
	if fftSize < 8 {
		fftSize = 8
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	// One-sided spectrum without DC: bins 1..fftSize/2.
	n := fftSize / 2
	re := make([]float64, n)
	im := make([]float64, n)
	for k := 1; k <= n; k++ {
		re[k-1] = real(spectrum[k])
		im[k-1] = imag(spectrum[k])
	}

	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)

	points := make([]Point, n)
	for k := 1; k <= n; k++ {
		m := mag[k-1]
		if m < dbFloor {
			m = dbFloor
		}
		points[k-1] = Point{
			FrequencyHz: float64(k) * sampleRate / float64(fftSize),
			MagnitudeDB: 20 * math.Log10(m),
			PhaseDeg:    NormalizePhaseDeg(math.Atan2(im[k-1], re[k-1]) * 180 / math.Pi),
		}
	}
	return New(label, points)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
