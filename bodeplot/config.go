package bodeplot

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Config holds all rendering settings. Zero axis-limit pairs mean
// auto-scale from the data.
type Config struct {
	Width  vg.Length
	Height vg.Length
	Title  string

	// LogFrequency selects a logarithmic frequency axis (the Bode-plot
	// convention). Disable for narrow linear sweeps.
	LogFrequency bool

	FreqMinHz, FreqMaxHz     float64
	MagMinDB, MagMaxDB       float64
	PhaseMinDeg, PhaseMaxDeg float64

	// Colors assigns trace colors by series position. When exhausted (or
	// empty) the renderer falls back to the plotutil palette.
	Colors []color.Color

	// DashSecondary draws every trace after the first with a dashed line,
	// keeping overlapping curves distinguishable (solid simulation,
	// dashed measurement).
	DashSecondary bool

	LineWidth vg.Length
}

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		Width:         8 * vg.Inch,
		Height:        6 * vg.Inch,
		LogFrequency:  true,
		DashSecondary: true,
		LineWidth:     vg.Points(1.5),
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithSize sets the figure dimensions.
func WithSize(width, height vg.Length) Option {
	return func(cfg *Config) {
		if width > 0 && height > 0 {
			cfg.Width = width
			cfg.Height = height
		}
	}
}

// WithTitle sets the figure title, drawn above the top panel.
func WithTitle(title string) Option {
	return func(cfg *Config) {
		cfg.Title = title
	}
}

// WithLinearFrequency switches the shared frequency axis to linear scale.
func WithLinearFrequency() Option {
	return func(cfg *Config) {
		cfg.LogFrequency = false
	}
}

// WithFrequencyRange fixes the frequency axis limits in Hz.
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(cfg *Config) {
		if minHz > 0 && maxHz > minHz {
			cfg.FreqMinHz = minHz
			cfg.FreqMaxHz = maxHz
		}
	}
}

// WithMagnitudeRange fixes the magnitude axis limits in dB.
func WithMagnitudeRange(minDB, maxDB float64) Option {
	return func(cfg *Config) {
		if maxDB > minDB {
			cfg.MagMinDB = minDB
			cfg.MagMaxDB = maxDB
		}
	}
}

// WithPhaseRange fixes the phase axis limits in degrees.
func WithPhaseRange(minDeg, maxDeg float64) Option {
	return func(cfg *Config) {
		if maxDeg > minDeg {
			cfg.PhaseMinDeg = minDeg
			cfg.PhaseMaxDeg = maxDeg
		}
	}
}

// WithColors sets trace colors by series position.
func WithColors(colors ...color.Color) Option {
	return func(cfg *Config) {
		cfg.Colors = colors
	}
}

// WithSolidTraces disables the dashed styling of secondary traces.
func WithSolidTraces() Option {
	return func(cfg *Config) {
		cfg.DashSecondary = false
	}
}

// WithLineWidth sets the trace stroke width.
func WithLineWidth(w vg.Length) Option {
	return func(cfg *Config) {
		if w > 0 {
			cfg.LineWidth = w
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
