// Package ltspice reads LTspice AC-analysis text exports.
//
// The export starts with a header row ("Freq." plus one trace column,
// tab-separated) followed by one row per sweep point. The gain value is
// either polar, as written by the default export settings,
//
//	1.000000e+02	(-3.010300e+00dB,-4.500000e+01°)
//
// or cartesian,
//
//	1.000000e+02	(7.071068e-01,-7.071068e-01)
//
// in which case magnitude and phase are derived as 20*log10(|g|) and
// atan2(im, re). Phase is normalized to (-180, 180].
package ltspice

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-bode/format"
	"github.com/cwbudde/algo-bode/response"
)

// DefaultLabel is the legend label used when none is configured.
const DefaultLabel = "simulation"

func init() {
	format.Register(format.KindLTSpice, ReadFile)
}

var (
	// polar rows: <freq> (<mag>dB,<phase>°)
	polarRe = regexp.MustCompile(`^([0-9.eE+-]+)\s+\(\s*([0-9.eE+-]+)dB\s*,\s*([0-9.eE+-]+)°\s*\)$`)
	// cartesian rows: <freq> (<re>,<im>)
	cartesianRe = regexp.MustCompile(`^([0-9.eE+-]+)\s+\(\s*([0-9.eE+-]+)\s*,\s*([0-9.eE+-]+)\s*\)$`)
)

// ReadFile parses an LTspice AC-analysis export into a response series.
func ReadFile(path string, opts ...format.Option) (*response.Series, error) {
	o := format.ApplyOptions(opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ltspice: %w", err)
	}
	defer f.Close()

	label := o.Label
	if label == "" {
		label = DefaultLabel
	}

	sc := bufio.NewScanner(f)
	line := 0
	headerSeen := false

	var points []response.Point
	prevFreq := 0.0

	skip := func(msg string) error {
		if o.SkippedRowHandler != nil {
			o.SkippedRowHandler(format.RowError{Path: path, Line: line, Msg: msg})
			return nil
		}
		return &format.FormatError{Path: path, Line: line, Msg: msg}
	}

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		if !headerSeen {
			if err := checkHeader(path, line, text); err != nil {
				return nil, err
			}
			headerSeen = true
			continue
		}

		freq, magDB, phaseDeg, perr := parseRow(text)
		if perr != nil {
			// A skipped row still moves the sweep cursor when its
			// frequency field is readable; later rows must stay
			// beyond it.
			if f, ok := rowFrequency(text); ok && f > prevFreq {
				prevFreq = f
			}
			if err := skip(perr.Error()); err != nil {
				return nil, err
			}
			continue
		}

		if freq <= 0 || freq <= prevFreq {
			verr := &response.ValidationError{
				Index:       len(points),
				FrequencyHz: freq,
				Msg:         fmt.Sprintf("frequency not strictly increasing and positive (previous %g Hz)", prevFreq),
			}
			if o.SkippedRowHandler != nil {
				o.SkippedRowHandler(format.RowError{Path: path, Line: line, Msg: verr.Msg})
				continue
			}
			return nil, fmt.Errorf("ltspice: %s:%d: %w", path, line, verr)
		}
		prevFreq = freq

		points = append(points, response.Point{
			FrequencyHz: freq,
			MagnitudeDB: magDB,
			PhaseDeg:    response.NormalizePhaseDeg(phaseDeg),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ltspice: %s: %w", path, err)
	}

	if !headerSeen {
		return nil, &format.FormatError{Path: path, Msg: "missing LTspice header row (expected first column \"Freq.\")"}
	}
	if len(points) == 0 {
		return nil, &format.FormatError{Path: path, Msg: "no data rows found after header"}
	}

	series, err := response.New(label, points)
	if err != nil {
		return nil, fmt.Errorf("ltspice: %s: %w", path, err)
	}
	return series, nil
}

// checkHeader validates the export header: "Freq." plus exactly one trace
// column, tab-separated.
func checkHeader(path string, line int, text string) error {
	if !strings.HasPrefix(text, "Freq.") {
		return &format.FormatError{
			Path: path,
			Line: line,
			Msg:  fmt.Sprintf("missing LTspice header row (expected first column \"Freq.\", got %q)", firstField(text)),
		}
	}
	if n := len(strings.Split(text, "\t")); n != 2 {
		return &format.FormatError{
			Path: path,
			Line: line,
			Msg:  fmt.Sprintf("expected 2 columns (frequency and one trace), got %d", n),
		}
	}
	return nil
}

func firstField(text string) string {
	if i := strings.IndexAny(text, "\t "); i >= 0 {
		return text[:i]
	}
	return text
}

// rowFrequency extracts the frequency column of a malformed row, when it
// is readable on its own.
func rowFrequency(text string) (float64, bool) {
	v, err := strconv.ParseFloat(firstField(text), 64)
	return v, err == nil
}

// parseRow extracts frequency, magnitude in dB, and phase in degrees from
// a single data row, accepting both the polar and the cartesian gain form.
func parseRow(text string) (freq, magDB, phaseDeg float64, err error) {
	if m := polarRe.FindStringSubmatch(text); m != nil {
		freq, err = parseFloat(m[1], "frequency")
		if err != nil {
			return 0, 0, 0, err
		}
		magDB, err = parseFloat(m[2], "magnitude")
		if err != nil {
			return 0, 0, 0, err
		}
		phaseDeg, err = parseFloat(m[3], "phase")
		if err != nil {
			return 0, 0, 0, err
		}
		return freq, magDB, phaseDeg, nil
	}

	if m := cartesianRe.FindStringSubmatch(text); m != nil {
		freq, err = parseFloat(m[1], "frequency")
		if err != nil {
			return 0, 0, 0, err
		}
		re, err := parseFloat(m[2], "real part")
		if err != nil {
			return 0, 0, 0, err
		}
		im, err := parseFloat(m[3], "imaginary part")
		if err != nil {
			return 0, 0, 0, err
		}
		mag := math.Hypot(re, im)
		if mag == 0 {
			return 0, 0, 0, fmt.Errorf("gain is zero, magnitude undefined in dB")
		}
		return freq, 20 * math.Log10(mag), math.Atan2(im, re) * 180 / math.Pi, nil
	}

	return 0, 0, 0, fmt.Errorf("row does not match LTspice AC export layout")
}

func parseFloat(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable %s value %q", what, s)
	}
	return v, nil
}
