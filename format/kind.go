package format

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind enumerates the supported export formats.
type Kind int

const (
	KindUnknown Kind = iota
	KindLTSpice      // LTspice AC-analysis text export
	KindSiglent      // Siglent oscilloscope Bode CSV export
)

// ErrUnknownFormat is returned when neither extension nor header
// identifies the file.
var ErrUnknownFormat = errors.New("format: unrecognized export format")

// String returns the name accepted by ParseKind.
func (k Kind) String() string {
	switch k {
	case KindLTSpice:
		return "ltspice"
	case KindSiglent:
		return "siglent"
	default:
		return "unknown"
	}
}

// ParseKind converts a format name (as given on a command line) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltspice", "spice", "sim", "simulation":
		return KindLTSpice, nil
	case "siglent", "scope", "meas", "measurement":
		return KindSiglent, nil
	default:
		return KindUnknown, fmt.Errorf("format: unknown format name %q", s)
	}
}

// sniffLines bounds how far into a file Detect looks for a known header.
// Siglent exports carry a short instrument preamble before the column row.
const sniffLines = 64

// Detect determines the export format of path, first by file extension
// (.txt is the LTspice export suffix, .csv the Siglent one), then by
// looking for a known header line. It never parses data rows.
func Detect(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return KindLTSpice, nil
	case ".csv":
		return KindSiglent, nil
	}
	return sniffHeader(path)
}

func sniffHeader(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, fmt.Errorf("format: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for i := 0; i < sniffLines && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "Freq."):
			return KindLTSpice, nil
		case strings.HasPrefix(line, "Frequency(Hz)"):
			return KindSiglent, nil
		}
	}
	if err := sc.Err(); err != nil {
		return KindUnknown, fmt.Errorf("format: %s: %w", path, err)
	}
	return KindUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
