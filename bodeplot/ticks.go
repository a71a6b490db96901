package bodeplot

import (
	"strconv"

	"gonum.org/v1/plot"
)

// hzTicks relabels axis ticks with engineering-notation frequency units
// ("100 Hz", "1 kHz", "10 MHz"). For the log scale it decorates the
// standard decade ticks; minor ticks keep their empty labels.
type hzTicks struct {
	log bool
}

func (t hzTicks) Ticks(min, max float64) []plot.Tick {
	var base []plot.Tick
	if t.log {
		base = plot.LogTicks{Prec: -1}.Ticks(min, max)
	} else {
		base = plot.DefaultTicks{}.Ticks(min, max)
	}
	for i, tick := range base {
		if tick.Label == "" {
			continue
		}
		base[i].Label = engHz(tick.Value)
	}
	return base
}

// engHz formats a frequency with an engineering SI prefix.
func engHz(v float64) string {
	switch {
	case v >= 1e9:
		return formatTrim(v/1e9) + " GHz"
	case v >= 1e6:
		return formatTrim(v/1e6) + " MHz"
	case v >= 1e3:
		return formatTrim(v/1e3) + " kHz"
	default:
		return formatTrim(v) + " Hz"
	}
}

func formatTrim(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
