package siglent

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
	path := filepath.Join(t.TempDir(), "bode.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFilePreambleSkipped(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Bode Data",
		"Model,SDS3034X HD",
		"Serial Number,SDS3XDCC7R0000",
		"Sweep Points,3",
		"Frequency(Hz),Amplitude(dB),Phase(Deg)",
		"100.000000,0.0000,0.0000",
		"1000.000000,-3.0103,-45.0000",
		"10000.000000,-20.0432,-84.2894",
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

func TestReadFileColumnOrderFromHeader(t *testing.T) {
	// Column positions come from the header row, not from assumptions.
	path := writeFixture(t, strings.Join([]string{
		"Frequency(Hz),Phase(Deg),Channel,Amplitude(dB)",
		"100,-10,CH1,0",
		"1000,-45,CH1,-3",
		"",
	}, "\n"))

	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, s.At(1).MagnitudeDB, -3, 1e-9, "magnitude from reordered column")
	testutil.RequireNearlyEqual(t, s.At(1).PhaseDeg, -45, 1e-9, "phase from reordered column")
}

func TestReadFileMissingColumn(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Frequency(Hz),Amplitude(dB)",
		"100,0",
		"",
	}, "\n"))

	_, err := ReadFile(path)
	var ferr *format.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("ReadFile() error = %v, want *format.FormatError", err)
	}
	if ferr.Column != colPhase {
		t.Errorf("FormatError.Column = %q, want %q", ferr.Column, colPhase)
	}
}

func TestReadFileHeaderNotFound(t *testing.T) {
	path := writeFixture(t, "Bode Data\nModel,SDS3034X HD\n")

	_, err := ReadFile(path)
	var ferr *format.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("ReadFile() error = %v, want *format.FormatError", err)
	}
	if !strings.Contains(ferr.Msg, "header not found") {
		t.Errorf("FormatError.Msg = %q, want header-not-found message", ferr.Msg)
	}
}

func TestReadFileFailFastOnBadField(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Frequency(Hz),Amplitude(dB),Phase(Deg)",
		"100,0,0",
		"1000,overload,-45",
		"10000,-20,-84",
		"",
	}, "\n"))

	_, err := ReadFile(path)
	var ferr *format.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("ReadFile() error = %v, want *format.FormatError", err)
	}
	if ferr.Line != 3 {
		t.Errorf("FormatError.Line = %d, want 3 (1-based file line)", ferr.Line)
	}
	if !strings.Contains(ferr.Msg, "overload") {
		t.Errorf("FormatError.Msg = %q, want the offending value quoted", ferr.Msg)
	}
}

func TestReadFileSkipAndWarn(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Frequency(Hz),Amplitude(dB),Phase(Deg)",
		"100,0,0",
		"1000,overload,-45",
		"500,-1,-20", // goes backwards
		"10000,-20,-84",
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
	// The unparsable 1 kHz row still moved the sweep cursor, so the
	// 500 Hz row counts as going backwards and is skipped too.
	testutil.RequireSliceNearlyEqual(t, s.Frequencies(), []float64{100, 10000}, 1e-9)
	if len(skipped) != 2 {
		t.Fatalf("skipped = %d rows, want 2", len(skipped))
	}
	if skipped[0].Line != 3 || skipped[1].Line != 4 {
		t.Errorf("skipped lines = %d, %d; want 3, 4", skipped[0].Line, skipped[1].Line)
	}
}

func TestReadFileSkippedRowAdvancesSweepCursor(t *testing.T) {
	// A row rejected for a bad amplitude still fixes where the sweep is;
	// a later row below that frequency must not sneak into the series.
	path := writeFixture(t, strings.Join([]string{
		"Frequency(Hz),Amplitude(dB),Phase(Deg)",
		"100,0,0",
		"2000,bad,-50",
		"1500,-2,-40",
		"4000,-6,-70",
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

func TestReadFileLineNumbersWithBlankLines(t *testing.T) {
	// Blank lines are invisible to the CSV reader; reported line numbers
	// must still match the file.
	path := writeFixture(t, strings.Join([]string{
		"Bode Data",
		"",
		"Frequency(Hz),Amplitude(dB),Phase(Deg)",
		"100,0,0",
		"",
		"1000,bad,-45",
		"10000,-20,-84",
		"",
	}, "\n"))

	_, err := ReadFile(path)
	var ferr *format.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("ReadFile() error = %v, want *format.FormatError", err)
	}
	if ferr.Line != 6 {
		t.Errorf("FormatError.Line = %d, want 6 (blank lines counted)", ferr.Line)
	}
}

func TestReadFilePhaseNormalized(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Frequency(Hz),Amplitude(dB),Phase(Deg)",
		"100,0,-270",
		"1000,0,181",
		"",
	}, "\n"))

	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, s.At(0).PhaseDeg, 90, 1e-9, "phase wrap of -270")
	testutil.RequireNearlyEqual(t, s.At(1).PhaseDeg, -179, 1e-9, "phase wrap of 181")
}

func TestReadFileNonMonotonic(t *testing.T) {
	path := writeFixture(t, strings.Join([]string{
		"Frequency(Hz),Amplitude(dB),Phase(Deg)",
		"1000,0,0",
		"1000,-1,-10",
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

func TestReadFileWithLabel(t *testing.T) {
	path := writeFixture(t, "Frequency(Hz),Amplitude(dB),Phase(Deg)\n100,0,0\n1000,-3,-45\n")

	s, err := ReadFile(path, format.WithLabel("board rev C"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Label() != "board rev C" {
		t.Errorf("Label() = %q, want %q", s.Label(), "board rev C")
	}
}

func TestReadFileRoundTrip(t *testing.T) {
	points := testutil.SinglePoleLowPass(1000, testutil.LogSpacedFrequencies(10, 1e6, 101))
	path := testutil.WriteSiglentFile(t, t.TempDir(), "lowpass.csv", points)

	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(points) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(points))
	}
	// The fixture writes 6 fractional digits for frequency and 4 for
	// magnitude and phase.
	for i, want := range points {
		got := s.At(i)
		testutil.RequireNearlyEqual(t, got.FrequencyHz, want.FrequencyHz, 1e-6, "frequency")
		testutil.RequireNearlyEqual(t, got.MagnitudeDB, want.MagnitudeDB, 1e-4, "magnitude")
		testutil.RequireNearlyEqual(t, got.PhaseDeg, want.PhaseDeg, 1e-4, "phase")
	}
}
