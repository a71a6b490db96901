package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bode/format"
)

var detectCmd = &cobra.Command{
	Use:   "detect <input-file> [<input-file> ...]",
	Short: "Print the detected export format of each input",
	Long: `Run the format pre-pass on each input and print the detected kind.
Detection uses the file extension first and falls back to sniffing the
header; it never parses data rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		kind, err := format.Detect(path)
		if err != nil {
			return err
		}
		cmd.Printf("%s: %s\n", path, kind)
	}
	return nil
}
