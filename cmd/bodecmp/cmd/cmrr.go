package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bode/bodeplot"
	"github.com/cwbudde/algo-bode/response"
)

var (
	cmrrOutput    string
	cmrrTitle     string
	cmrrStyleFile string
)

var cmrrCmd = &cobra.Command{
	Use:   "cmrr <diff-file> <cm-file> [<diff-file> <cm-file> ...]",
	Short: "Render common-mode rejection derived from response pairs",
	Long: `Compute CMRR from pairs of exports: each pair is a differential-mode
transfer followed by the matching common-mode transfer. The common-mode
magnitude is interpolated onto the differential grid and subtracted,
giving CMRR in dB, one trace per pair.

Examples:
  bodecmp cmrr sim_dm.txt sim_cm.txt -o cmrr.png
  bodecmp cmrr sim_dm.txt sim_cm.txt meas_dm.csv meas_cm.csv`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("expected an even number of inputs (differential/common-mode pairs), got %d", len(args))
		}
		return nil
	},
	RunE: runCMRR,
}

func init() {
	rootCmd.AddCommand(cmrrCmd)

	cmrrCmd.Flags().StringVarP(&cmrrOutput, "output", "o", "cmrr.png",
		"output image path (.png, .jpg, .svg, .pdf)")
	cmrrCmd.Flags().StringVarP(&cmrrTitle, "title", "t", "", "figure title")
	cmrrCmd.Flags().StringVar(&cmrrStyleFile, "style", "", "plot-style file (YAML/TOML/JSON)")
}

func runCMRR(cmd *cobra.Command, args []string) error {
	series, err := loadSeries(args)
	if err != nil {
		return err
	}

	derived := make([]*response.Series, 0, len(series)/2)
	for i := 0; i < len(series); i += 2 {
		diff, cm := series[i], series[i+1]
		s, err := response.GainDifference(diff.Label(), diff, cm)
		if err != nil {
			return err
		}
		derived = append(derived, s)
	}

	var opts []bodeplot.Option
	if cmrrStyleFile != "" {
		styled, err := styleOptions(cmrrStyleFile)
		if err != nil {
			return err
		}
		opts = append(opts, styled...)
	}
	if cmrrTitle != "" {
		opts = append(opts, bodeplot.WithTitle(cmrrTitle))
	}

	fig, err := bodeplot.NewRenderer(opts...).MagnitudePanel("CMRR (dB)", derived...)
	if err != nil {
		return err
	}
	if err := fig.Save(cmrrOutput); err != nil {
		return err
	}

	logger.Info().Str("output", cmrrOutput).Int("pairs", len(derived)).Msg("figure written")
	cmd.Println(cmrrOutput)
	return nil
}
