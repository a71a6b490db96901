package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-bode/response"
)

// LogSpacedFrequencies returns n logarithmically spaced frequencies from
// startHz to endHz inclusive, the grid an AC sweep produces.
func LogSpacedFrequencies(startHz, endHz float64, n int) []float64 {
	out := make([]float64, n)
	ratio := math.Log(endHz / startHz)
	for i := range out {
		out[i] = startHz * math.Exp(float64(i)/float64(n-1)*ratio)
	}
	out[n-1] = endHz
	return out
}

// SinglePoleLowPass evaluates the analytic response of a first-order
// low-pass H(f) = 1/(1 + j*f/fc) on the given frequencies. At the cutoff
// the magnitude is -3.0103 dB and the phase -45 degrees.
func SinglePoleLowPass(cutoffHz float64, freqsHz []float64) []response.Point {
	points := make([]response.Point, len(freqsHz))
	for i, f := range freqsHz {
		r := f / cutoffHz
		points[i] = response.Point{
			FrequencyHz: f,
			MagnitudeDB: -10 * math.Log10(1+r*r),
			PhaseDeg:    -math.Atan(r) * 180 / math.Pi,
		}
	}
	return points
}

// WriteLTspiceFile writes points as an LTspice AC-analysis polar export
// into dir and returns the file path.
func WriteLTspiceFile(t *testing.T, dir, name string, points []response.Point) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Freq.\tV(out)\n")
	for _, p := range points {
		fmt.Fprintf(&b, "%.14e\t(%.14edB,%.14e°)\n", p.FrequencyHz, p.MagnitudeDB, p.PhaseDeg)
	}
	return writeFile(t, dir, name, b.String())
}

// WriteSiglentFile writes points as a Siglent SDS-series Bode CSV export,
// instrument preamble included, into dir and returns the file path.
func WriteSiglentFile(t *testing.T, dir, name string, points []response.Point) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Bode Data\n")
	b.WriteString("Model,SDS3034X HD\n")
	b.WriteString("Serial Number,SDS3XDCC7R0000\n")
	fmt.Fprintf(&b, "Sweep Points,%d\n", len(points))
	b.WriteString("Frequency(Hz),Amplitude(dB),Phase(Deg)\n")
	for _, p := range points {
		fmt.Fprintf(&b, "%.6f,%.4f,%.4f\n", p.FrequencyHz, p.MagnitudeDB, p.PhaseDeg)
	}
	return writeFile(t, dir, name, b.String())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}
