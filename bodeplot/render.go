package bodeplot

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-bode/response"
)

// ErrNoSeries is returned when a figure is requested without input data.
var ErrNoSeries = errors.New("bodeplot: at least one series is required")

// Renderer builds comparison figures from a fixed configuration.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a renderer with the given options applied to the
// default configuration.
func NewRenderer(opts ...Option) *Renderer {
	return &Renderer{cfg: ApplyOptions(opts...)}
}

// Config returns a copy of the renderer configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Figure builds the standard dual-panel comparison figure: magnitude over
// frequency on top, phase over frequency below, both sharing the
// frequency axis. Each series is drawn on its own frequency points.
func (r *Renderer) Figure(series ...*response.Series) (*Figure, error) {
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	magPanel := r.newPanel("", "Magnitude (dB)")
	phPanel := r.newPanel("Frequency (Hz)", "Phase (deg)")
	magPanel.Title.Text = r.cfg.Title

	for i, s := range series {
		if err := r.addTrace(magPanel, s, i, true, func(p response.Point) float64 { return p.MagnitudeDB }); err != nil {
			return nil, err
		}
		if err := r.addTrace(phPanel, s, i, false, func(p response.Point) float64 { return p.PhaseDeg }); err != nil {
			return nil, err
		}
	}

	r.setFrequencyRange(series, magPanel, phPanel)
	if r.cfg.MagMaxDB > r.cfg.MagMinDB {
		magPanel.Y.Min = r.cfg.MagMinDB
		magPanel.Y.Max = r.cfg.MagMaxDB
	}
	if r.cfg.PhaseMaxDeg > r.cfg.PhaseMinDeg {
		phPanel.Y.Min = r.cfg.PhaseMinDeg
		phPanel.Y.Max = r.cfg.PhaseMaxDeg
	}

	return &Figure{rows: [][]*plot.Plot{{magPanel}, {phPanel}}, cfg: r.cfg}, nil
}

// MagnitudePanel builds a single-panel magnitude figure with a custom
// y-axis label, used for derived quantities such as CMRR.
func (r *Renderer) MagnitudePanel(yLabel string, series ...*response.Series) (*Figure, error) {
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	panel := r.newPanel("Frequency (Hz)", yLabel)
	panel.Title.Text = r.cfg.Title

	for i, s := range series {
		if err := r.addTrace(panel, s, i, true, func(p response.Point) float64 { return p.MagnitudeDB }); err != nil {
			return nil, err
		}
	}

	r.setFrequencyRange(series, panel)
	if r.cfg.MagMaxDB > r.cfg.MagMinDB {
		panel.Y.Min = r.cfg.MagMinDB
		panel.Y.Max = r.cfg.MagMaxDB
	}

	return &Figure{rows: [][]*plot.Plot{{panel}}, cfg: r.cfg}, nil
}

func validateSeries(series []*response.Series) error {
	if len(series) == 0 {
		return ErrNoSeries
	}
	for i, s := range series {
		if s == nil {
			return fmt.Errorf("bodeplot: series %d is nil", i)
		}
		if s.Len() < 2 {
			return fmt.Errorf("bodeplot: series %q: %w", s.Label(), response.ErrTooFewPoints)
		}
	}
	return nil
}

func (r *Renderer) newPanel(xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	if r.cfg.LogFrequency {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = hzTicks{log: true}
	} else {
		p.X.Tick.Marker = hzTicks{}
	}
	p.Add(plotter.NewGrid())
	return p
}

// addTrace draws one series onto a panel. The legend entry is attached
// only where withLegend is set, so a shared label shows up once per
// figure, on the top panel.
func (r *Renderer) addTrace(p *plot.Plot, s *response.Series, idx int, withLegend bool, sel func(response.Point) float64) error {
	xys := make(plotter.XYs, s.Len())
	for i := 0; i < s.Len(); i++ {
		pt := s.At(i)
		xys[i].X = pt.FrequencyHz
		xys[i].Y = sel(pt)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("bodeplot: series %q: %w", s.Label(), err)
	}
	line.LineStyle.Width = r.cfg.LineWidth
	line.LineStyle.Color = r.traceColor(idx)
	if r.cfg.DashSecondary && idx > 0 {
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(2)}
	}

	p.Add(line)
	if withLegend {
		p.Legend.Add(s.Label(), line)
		p.Legend.Top = true
	}
	return nil
}

func (r *Renderer) traceColor(idx int) color.Color {
	if idx < len(r.cfg.Colors) && r.cfg.Colors[idx] != nil {
		return r.cfg.Colors[idx]
	}
	return plotutil.Color(idx)
}

// setFrequencyRange applies identical x-limits to all panels so they stay
// comparable after alignment.
func (r *Renderer) setFrequencyRange(series []*response.Series, panels ...*plot.Plot) {
	minHz, maxHz := r.cfg.FreqMinHz, r.cfg.FreqMaxHz
	if !(maxHz > minHz && minHz > 0) {
		minHz, maxHz = dataFrequencyRange(series)
	}
	for _, p := range panels {
		p.X.Min = minHz
		p.X.Max = maxHz
	}
}

func dataFrequencyRange(series []*response.Series) (minHz, maxHz float64) {
	minHz = series[0].At(0).FrequencyHz
	maxHz = series[0].At(series[0].Len() - 1).FrequencyHz
	for _, s := range series[1:] {
		if f := s.At(0).FrequencyHz; f < minHz {
			minHz = f
		}
		if f := s.At(s.Len() - 1).FrequencyHz; f > maxHz {
			maxHz = f
		}
	}
	return minHz, maxHz
}
