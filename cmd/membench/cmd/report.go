package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivmazurenko/membench/internal/report"
)

// reportCmd re-renders saved results without re-running the suite.
var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Render previously saved results",
	Long: `Render a results file saved with "membench run --out-file" in any of
the supported formats.

Examples:
  membench report results.json
  membench report results.json --format markdown > RESULTS.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := report.LoadJSON(args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			// Round-tripping the same file is almost certainly a typo.
			return fmt.Errorf("results are already JSON; pick table, yaml, or markdown")
		}
		return renderResults(cmd, format, result)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("format", "table", "output format: table, yaml, or markdown")
}
