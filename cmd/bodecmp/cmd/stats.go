package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bode/response"
)

var statsCmd = &cobra.Command{
	Use:   "stats <reference-file> <comparison-file> [<comparison-file> ...]",
	Short: "Print deviation statistics against a reference series",
	Long: `Resample each comparison series onto the reference frequency grid and
print magnitude and phase deviation statistics. Useful for judging how
closely a measurement tracks a simulation before looking at plots.

Example:
  bodecmp stats sim.txt meas_v1.csv meas_v2.csv`,
	Args: cobra.MinimumNArgs(2),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	series, err := loadSeries(args)
	if err != nil {
		return err
	}
	ref := series[0]

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Series\tPoints\tMax dB\tat\tMean dB\tRMS dB\tMax deg\tat\tMean deg\tRMS deg\n")
	fmt.Fprintf(tw, "------\t------\t------\t--\t-------\t------\t-------\t--\t--------\t-------\n")

	for _, s := range series[1:] {
		st, err := response.Deviation(ref, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%s\t%.3f\t%.3f\t%.2f\t%s\t%.2f\t%.2f\n",
			s.Label(),
			st.Points,
			st.MaxMagnitudeDB,
			formatHz(st.MaxMagnitudeHz),
			st.MeanMagnitudeDB,
			st.RMSMagnitudeDB,
			st.MaxPhaseDeg,
			formatHz(st.MaxPhaseHz),
			st.MeanPhaseDeg,
			st.RMSPhaseDeg,
		)
	}
	return tw.Flush()
}

func formatHz(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.4g GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.4g MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.4g kHz", v/1e3)
	default:
		return fmt.Sprintf("%.4g Hz", v)
	}
}
