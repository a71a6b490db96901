package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	// Register the vendor format readers.
	_ "github.com/cwbudde/algo-bode/format/ltspice"
	_ "github.com/cwbudde/algo-bode/format/siglent"
)

var (
	// Global flags
	verbose     bool
	skipBadRows bool
	formatNames []string
	labels      []string

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bodecmp",
	Short: "Compare Bode-plot data from simulation and measurement exports",
	Long: `bodecmp loads frequency-response data (magnitude in dB, phase in
degrees) from LTspice AC-analysis exports and Siglent oscilloscope Bode
CSV exports, and renders overlaid comparison figures.

Examples:
  bodecmp plot sim.txt meas.csv -o gain.png --title "CST Gain"
  bodecmp plot sim.txt meas.csv --format ltspice --format siglent
  bodecmp cmrr sim_dm.txt sim_cm.txt meas_dm.csv meas_cm.csv -o cmrr.svg
  bodecmp stats sim.txt meas.csv`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&skipBadRows, "skip-bad-rows", false,
		"skip unparsable or non-monotonic data rows with a warning instead of failing")
	rootCmd.PersistentFlags().StringSliceVar(&formatNames, "format", nil,
		"input format per file, by position (ltspice, siglent, auto)")
	rootCmd.PersistentFlags().StringSliceVar(&labels, "label", nil,
		"legend label per file, by position")
}
