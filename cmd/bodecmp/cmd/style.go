package cmd

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-bode/bodeplot"
)

// styleOptions loads a plot-style file (YAML, TOML, or JSON by extension)
// and converts its keys into renderer options. Recognized keys:
//
//	title             string
//	width_in          float   figure width in inches
//	height_in         float   figure height in inches
//	log_frequency     bool
//	freq_min_hz       float
//	freq_max_hz       float
//	mag_min_db        float
//	mag_max_db        float
//	phase_min_deg     float
//	phase_max_deg     float
//	line_width_pt     float
//	solid_traces      bool
//	colors            list of "#rrggbb" strings, one per series
func styleOptions(path string) ([]bodeplot.Option, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("style file %s: %w", path, err)
	}

	var opts []bodeplot.Option
	if v.IsSet("title") {
		opts = append(opts, bodeplot.WithTitle(v.GetString("title")))
	}
	if v.IsSet("width_in") && v.IsSet("height_in") {
		opts = append(opts, bodeplot.WithSize(
			vg.Length(v.GetFloat64("width_in"))*vg.Inch,
			vg.Length(v.GetFloat64("height_in"))*vg.Inch,
		))
	}
	if v.IsSet("log_frequency") && !v.GetBool("log_frequency") {
		opts = append(opts, bodeplot.WithLinearFrequency())
	}
	if v.IsSet("freq_min_hz") && v.IsSet("freq_max_hz") {
		opts = append(opts, bodeplot.WithFrequencyRange(v.GetFloat64("freq_min_hz"), v.GetFloat64("freq_max_hz")))
	}
	if v.IsSet("mag_min_db") && v.IsSet("mag_max_db") {
		opts = append(opts, bodeplot.WithMagnitudeRange(v.GetFloat64("mag_min_db"), v.GetFloat64("mag_max_db")))
	}
	if v.IsSet("phase_min_deg") && v.IsSet("phase_max_deg") {
		opts = append(opts, bodeplot.WithPhaseRange(v.GetFloat64("phase_min_deg"), v.GetFloat64("phase_max_deg")))
	}
	if v.IsSet("line_width_pt") {
		opts = append(opts, bodeplot.WithLineWidth(vg.Points(v.GetFloat64("line_width_pt"))))
	}
	if v.IsSet("solid_traces") && v.GetBool("solid_traces") {
		opts = append(opts, bodeplot.WithSolidTraces())
	}
	if v.IsSet("colors") {
		var colors []color.Color
		for _, s := range v.GetStringSlice("colors") {
			c, err := parseHexColor(s)
			if err != nil {
				return nil, fmt.Errorf("style file %s: %w", path, err)
			}
			colors = append(colors, c)
		}
		opts = append(opts, bodeplot.WithColors(colors...))
	}
	return opts, nil
}

func parseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
