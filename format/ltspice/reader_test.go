package ltspice

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-bode/format"
	"github.com/cwbudde/algo-bode/internal/testutil"
	"github.com/cwbudde/algo-bode/response"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFilePolar(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+02\t(0.000000e+00dB,0.000000e+00°)",
		"1.000000e+03\t(-3.010300e+00dB,-4.500000e+01°)",
		"1.000000e+04\t(-2.004321e+01dB,-8.428941e+01°)",
		"",
	}, "\n"))

	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if s.Label() != DefaultLabel {
		t.Errorf("Label() = %q, want %q", s.Label(), DefaultLabel)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	p := s.At(1)
	testutil.RequireNearlyEqual(t, p.FrequencyHz, 1000, 1e-9, "frequency")
	testutil.RequireNearlyEqual(t, p.MagnitudeDB, -3.0103, 1e-9, "magnitude")
	testutil.RequireNearlyEqual(t, p.PhaseDeg, -45, 1e-9, "phase")
	testutil.RequireStrictlyIncreasing(t, s.Frequencies(), "frequencies")
}

func TestReadFileCartesian(t *testing.T) {
	// 0.5 - 0.5i: |g| = 0.7071 -> -3.0103 dB, phase -45 degrees.
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+02\t(1.000000e+00,0.000000e+00)",
		"1.000000e+03\t(5.000000e-01,-5.000000e-01)",
		"",
	}, "\n"))

	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	testutil.RequireNearlyEqual(t, s.At(0).MagnitudeDB, 0, 1e-9, "unity magnitude")
	testutil.RequireNearlyEqual(t, s.At(1).MagnitudeDB, -3.0103, 1e-4, "magnitude")
	testutil.RequireNearlyEqual(t, s.At(1).PhaseDeg, -45, 1e-9, "phase")
}

func TestReadFilePhaseNormalized(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+02\t(0.000000e+00dB,-2.700000e+02°)",
		"1.000000e+03\t(0.000000e+00dB,1.810000e+02°)",
		"",
	}, "\n"))

	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, s.At(0).PhaseDeg, 90, 1e-9, "phase wrap of -270")
	testutil.RequireNearlyEqual(t, s.At(1).PhaseDeg, -179, 1e-9, "phase wrap of 181")
}

func TestReadFileWithLabel(t *testing.T) {
	path := writeFixture(t, "Freq.\tV(out)\n1e2\t(0dB,0°)\n1e3\t(-1dB,-10°)\n")

	s, err := ReadFile(path, format.WithLabel("filter v2"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Label() != "filter v2" {
		t.Errorf("Label() = %q, want %q", s.Label(), "filter v2")
	}
}

func TestReadFileStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"wrong header", "Time\tV(out)\n1e2\t(0dB,0°)\n", 1},
		{"three columns", "Freq.\tV(out)\tV(in)\n1e2\t(0dB,0°)\n", 1},
		{"empty file", "", 0},
		{"header only", "Freq.\tV(out)\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(writeFixture(t, tt.content))
			var ferr *format.FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("ReadFile() error = %v, want *format.FormatError", err)
			}
			if ferr.Line != tt.line {
				t.Errorf("FormatError.Line = %d, want %d", ferr.Line, tt.line)
			}
		})
	}
}

func TestReadFileFailFastOnBadRow(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+02\t(0.000000e+00dB,0.000000e+00°)",
		"garbage row",
		"1.000000e+04\t(-2.000000e+01dB,-8.400000e+01°)",
		"",
	}, "\n"))

	_, err := ReadFile(path)
	var ferr *format.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("ReadFile() error = %v, want *format.FormatError", err)
	}
	if ferr.Line != 3 {
		t.Errorf("FormatError.Line = %d, want 3", ferr.Line)
	}
}

func TestReadFileSkipAndWarn(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+02\t(0.000000e+00dB,0.000000e+00°)",
		"garbage row",
		"5.000000e+01\t(0.000000e+00dB,0.000000e+00°)", // goes backwards
		"1.000000e+04\t(-2.000000e+01dB,-8.400000e+01°)",
		"",
	}, "\n"))

	var skipped []format.RowError
	s, err := ReadFile(path, format.WithSkippedRowHandler(func(r format.RowError) {
		skipped = append(skipped, r)
	}))
	if err != nil {
		t.Fatal(err)
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (good rows only)", s.Len())
	}
	if len(skipped) != 2 {
		t.Fatalf("skipped = %d rows, want 2", len(skipped))
	}
	if skipped[0].Line != 3 || skipped[1].Line != 4 {
		t.Errorf("skipped lines = %d, %d; want 3, 4", skipped[0].Line, skipped[1].Line)
	}
}

func TestReadFileSkippedRowAdvancesSweepCursor(t *testing.T) {
	// A skipped row with a readable frequency column still fixes where
	// the sweep is; a later row below that frequency must not sneak into
	// the series.
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+02\t(0.000000e+00dB,0.000000e+00°)",
		"2.000000e+03\t(not a gain)",
		"1.500000e+03\t(-2.000000e+00dB,-4.000000e+01°)",
		"4.000000e+03\t(-6.000000e+00dB,-7.000000e+01°)",
		"",
	}, "\n"))

	var skipped []format.RowError
	s, err := ReadFile(path, format.WithSkippedRowHandler(func(r format.RowError) {
		skipped = append(skipped, r)
	}))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, s.Frequencies(), []float64{100, 4000}, 1e-9)
	if len(skipped) != 2 {
		t.Fatalf("skipped = %d rows, want 2", len(skipped))
	}
}

func TestReadFileNonMonotonic(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+03\t(0.000000e+00dB,0.000000e+00°)",
		"1.000000e+03\t(-1.000000e+00dB,-1.000000e+01°)",
		"",
	}, "\n"))

	_, err := ReadFile(path)
	var verr *response.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ReadFile() error = %v, want *response.ValidationError", err)
	}
	if verr.FrequencyHz != 1000 {
		t.Errorf("ValidationError.FrequencyHz = %g, want 1000", verr.FrequencyHz)
	}
}

func TestReadFileZeroGain(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Freq.\tV(out)",
		"1.000000e+02\t(0.000000e+00,0.000000e+00)",
		"",
	}, "\n"))

	if _, err := ReadFile(path); err == nil {
		t.Error("ReadFile() error = nil, want zero-gain row error")
	}
}

func TestReadFileRoundTrip(t *testing.T) {
	// Analytic single-pole low-pass written and read back.
	points := testutil.SinglePoleLowPass(1000, testutil.LogSpacedFrequencies(10, 1e6, 101))
	path := testutil.WriteLTspiceFile(t, t.TempDir(), "lowpass.txt", points)

	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(points) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(points))
	}
	for i, want := range points {
		got := s.At(i)
		testutil.RequireNearlyEqual(t, got.FrequencyHz, want.FrequencyHz, want.FrequencyHz*1e-12, "frequency")
		testutil.RequireNearlyEqual(t, got.MagnitudeDB, want.MagnitudeDB, 1e-9, "magnitude")
		testutil.RequireNearlyEqual(t, got.PhaseDeg, want.PhaseDeg, 1e-9, "phase")
	}
}
