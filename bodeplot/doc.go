// Package bodeplot renders overlaid Bode-plot comparison figures.
//
// The standard figure has two vertically aligned panels sharing a
// logarithmic frequency axis: magnitude in dB on top, phase in degrees
// below. Every input series becomes one labeled trace drawn on its own
// frequency points; nothing is resampled or interpolated by the renderer.
//
//	r := bodeplot.NewRenderer(
//	    bodeplot.WithTitle("Current Sense Transformer - Gain"),
//	)
//	fig, err := r.Figure(sim, meas)
//	if err != nil {
//	    // ...
//	}
//	err = fig.Save("comparison.png")
//
// All styling goes through the explicit Config and its options; the
// package keeps no ambient state.
package bodeplot
