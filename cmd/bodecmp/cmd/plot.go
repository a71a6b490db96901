package cmd

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-bode/bodeplot"
)

var (
	plotOutput    string
	plotTitle     string
	plotStyleFile string
	plotLinearX   bool
	plotFreqMin   float64
	plotFreqMax   float64
	plotMagMin    float64
	plotMagMax    float64
	plotPhaseMin  float64
	plotPhaseMax  float64
	plotLineWidth float64
)

var plotCmd = &cobra.Command{
	Use:   "plot <input-file> [<input-file> ...]",
	Short: "Render an overlaid magnitude/phase comparison figure",
	Long: `Load one or more Bode exports and render them as a dual-panel figure:
magnitude (dB) on top, phase (degrees) below, sharing a logarithmic
frequency axis. Each input becomes one labeled trace.

Examples:
  bodecmp plot sim.txt meas.csv -o gain.png --title "CST Gain"
  bodecmp plot sim.txt meas.csv --label Simulation --label Measurement
  bodecmp plot meas.csv --style dark.yaml -o gain.svg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "bode.png",
		"output image path (.png, .jpg, .svg, .pdf)")
	plotCmd.Flags().StringVarP(&plotTitle, "title", "t", "", "figure title")
	plotCmd.Flags().StringVar(&plotStyleFile, "style", "", "plot-style file (YAML/TOML/JSON)")
	plotCmd.Flags().BoolVar(&plotLinearX, "linear-x", false, "use a linear frequency axis")
	plotCmd.Flags().Float64Var(&plotFreqMin, "fmin", 0, "frequency axis minimum in Hz (0 = auto)")
	plotCmd.Flags().Float64Var(&plotFreqMax, "fmax", 0, "frequency axis maximum in Hz (0 = auto)")
	plotCmd.Flags().Float64Var(&plotMagMin, "mag-min", 0, "magnitude axis minimum in dB")
	plotCmd.Flags().Float64Var(&plotMagMax, "mag-max", 0, "magnitude axis maximum in dB")
	plotCmd.Flags().Float64Var(&plotPhaseMin, "phase-min", 0, "phase axis minimum in degrees")
	plotCmd.Flags().Float64Var(&plotPhaseMax, "phase-max", 0, "phase axis maximum in degrees")
	plotCmd.Flags().Float64Var(&plotLineWidth, "line-width", 0, "trace stroke width in points")
}

func runPlot(cmd *cobra.Command, args []string) error {
	series, err := loadSeries(args)
	if err != nil {
		return err
	}

	opts, err := plotOptions()
	if err != nil {
		return err
	}

	fig, err := bodeplot.NewRenderer(opts...).Figure(series...)
	if err != nil {
		return err
	}
	if err := fig.Save(plotOutput); err != nil {
		return err
	}

	logger.Info().Str("output", plotOutput).Int("series", len(series)).Msg("figure written")
	cmd.Println(plotOutput)
	return nil
}

// plotOptions merges the style file (if any) with command-line flags;
// flags win.
func plotOptions() ([]bodeplot.Option, error) {
	var opts []bodeplot.Option
	if plotStyleFile != "" {
		styled, err := styleOptions(plotStyleFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, styled...)
	}

	if plotTitle != "" {
		opts = append(opts, bodeplot.WithTitle(plotTitle))
	}
	if plotLinearX {
		opts = append(opts, bodeplot.WithLinearFrequency())
	}
	if plotFreqMax > plotFreqMin && plotFreqMin > 0 {
		opts = append(opts, bodeplot.WithFrequencyRange(plotFreqMin, plotFreqMax))
	}
	if plotMagMax > plotMagMin {
		opts = append(opts, bodeplot.WithMagnitudeRange(plotMagMin, plotMagMax))
	}
	if plotPhaseMax > plotPhaseMin {
		opts = append(opts, bodeplot.WithPhaseRange(plotPhaseMin, plotPhaseMax))
	}
	if plotLineWidth > 0 {
		opts = append(opts, bodeplot.WithLineWidth(vg.Points(plotLineWidth)))
	}
	return opts, nil
}
