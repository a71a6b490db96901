// Package siglent reads Bode-plot CSV exports from Siglent SDS-series
// oscilloscopes.
//
// The layout is validated against the SDS3034X HD frequency-response
// export: a short instrument preamble, then a column-header row starting
// with "Frequency(Hz)", then one CSV row per sweep point. Other models and
// firmware versions are a stated limitation, not a guarantee.
package siglent

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-bode/format"
	"github.com/cwbudde/algo-bode/response"
)

// DefaultLabel is the legend label used when none is configured.
const DefaultLabel = "measurement"

// Required column names, as written by the instrument.
const (
	colFrequency = "Frequency(Hz)"
	colAmplitude = "Amplitude(dB)"
	colPhase     = "Phase(Deg)"
)

func init() {
	format.Register(format.KindSiglent, ReadFile)
}

// ReadFile parses a Siglent Bode CSV export into a response series.
func ReadFile(path string, opts ...format.Option) (*response.Series, error) {
	o := format.ApplyOptions(opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("siglent: %w", err)
	}
	defer f.Close()

	label := o.Label
	if label == "" {
		label = DefaultLabel
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // preamble rows have arbitrary shapes
	r.TrimLeadingSpace = true

	cols, headerLine, err := findHeader(r, path)
	if err != nil {
		return nil, err
	}

	var points []response.Point
	prevFreq := 0.0
	line := headerLine

	skip := func(msg string) error {
		if o.SkippedRowHandler != nil {
			o.SkippedRowHandler(format.RowError{Path: path, Line: line, Msg: msg})
			return nil
		}
		return &format.FormatError{Path: path, Line: line, Msg: msg}
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("siglent: %s: %w", path, err)
		}
		line, _ = r.FieldPos(0)

		if blankRecord(record) {
			continue
		}
		if len(record) <= cols.max() {
			if err := skip(fmt.Sprintf("expected at least %d columns, got %d", cols.max()+1, len(record))); err != nil {
				return nil, err
			}
			continue
		}

		freq, ferr := parseField(record, cols.frequency, colFrequency)
		if ferr != nil {
			if err := skip(ferr.Error()); err != nil {
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
			return nil, fmt.Errorf("siglent: %s:%d: %w", path, line, verr)
		}
		// The sweep visited this frequency even if the row ends up
		// skipped below; later rows must stay beyond it.
		prevFreq = freq

		magDB, merr := parseField(record, cols.amplitude, colAmplitude)
		phaseDeg, perr := parseField(record, cols.phase, colPhase)
		if err := errors.Join(merr, perr); err != nil {
			if serr := skip(err.Error()); serr != nil {
				return nil, serr
			}
			continue
		}

		points = append(points, response.Point{
			FrequencyHz: freq,
			MagnitudeDB: magDB,
			PhaseDeg:    response.NormalizePhaseDeg(phaseDeg),
		})
	}

	if len(points) == 0 {
		return nil, &format.FormatError{Path: path, Msg: "no data rows found after header"}
	}

	series, err := response.New(label, points)
	if err != nil {
		return nil, fmt.Errorf("siglent: %s: %w", path, err)
	}
	return series, nil
}

// columns holds the index of each required column in the header row.
type columns struct {
	frequency int
	amplitude int
	phase     int
}

func (c columns) max() int {
	m := c.frequency
	if c.amplitude > m {
		m = c.amplitude
	}
	if c.phase > m {
		m = c.phase
	}
	return m
}

// findHeader skips the instrument preamble and locates the column-header
// row. Column order is taken from the header, not assumed. Line numbers
// come from the reader's field positions so blank preamble lines do not
// shift them.
func findHeader(r *csv.Reader, path string) (columns, int, error) {
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return columns{}, 0, &format.FormatError{
				Path: path,
				Msg:  "measurement data header not found (expected a row starting with " + strconv.Quote(colFrequency) + ")",
			}
		}
		if err != nil {
			return columns{}, 0, fmt.Errorf("siglent: %s: %w", path, err)
		}
		line, _ := r.FieldPos(0)

		if len(record) == 0 || strings.TrimSpace(record[0]) != colFrequency {
			continue
		}

		cols := columns{frequency: -1, amplitude: -1, phase: -1}
		for i, name := range record {
			switch strings.TrimSpace(name) {
			case colFrequency:
				cols.frequency = i
			case colAmplitude:
				cols.amplitude = i
			case colPhase:
				cols.phase = i
			}
		}
		for _, req := range []struct {
			name string
			idx  int
		}{
			{colFrequency, cols.frequency},
			{colAmplitude, cols.amplitude},
			{colPhase, cols.phase},
		} {
			if req.idx < 0 {
				return columns{}, 0, &format.FormatError{
					Path:   path,
					Line:   line,
					Column: req.name,
					Msg:    "required column missing",
				}
			}
		}
		return cols, line, nil
	}
}

func parseField(record []string, idx int, name string) (float64, error) {
	s := strings.TrimSpace(record[idx])
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric %s value %q", name, s)
	}
	return v, nil
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
