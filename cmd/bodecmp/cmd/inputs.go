package cmd

import (
	"fmt"

	"github.com/cwbudde/algo-bode/format"
	"github.com/cwbudde/algo-bode/response"
)

// inputKind resolves the format of the i-th input from the positional
// --format flags, falling back to auto-detection.
func inputKind(path string, i int) (format.Kind, error) {
	if i < len(formatNames) && formatNames[i] != "" && formatNames[i] != "auto" {
		return format.ParseKind(formatNames[i])
	}
	return format.Detect(path)
}

// loadSeries reads every input path into a validated response series,
// applying positional label overrides and the row-skip policy.
func loadSeries(paths []string) ([]*response.Series, error) {
	series := make([]*response.Series, 0, len(paths))
	for i, path := range paths {
		kind, err := inputKind(path, i)
		if err != nil {
			return nil, err
		}

		opts := []format.Option{}
		if i < len(labels) && labels[i] != "" {
			opts = append(opts, format.WithLabel(labels[i]))
		}
		if skipBadRows {
			opts = append(opts, format.WithSkippedRowHandler(func(re format.RowError) {
				logger.Warn().
					Str("file", re.Path).
					Int("line", re.Line).
					Msg(re.Msg)
			}))
		}

		s, err := format.Read(path, kind, opts...)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("file", path).
			Stringer("format", kind).
			Str("label", s.Label()).
			Int("points", s.Len()).
			Msg("loaded series")
		series = append(series, s)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no input files given")
	}
	return series, nil
}
