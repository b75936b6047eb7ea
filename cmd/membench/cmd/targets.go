package cmd

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// targetsCmd lists the configured runtime targets.
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List configured targets",
	Long: `List the runtime targets the suite would measure: the built-in Go
sleeper plus anything defined under "targets" in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Name", "Command", "Dir")
		for _, t := range cfg.EffectiveTargets() {
			dir := t.Dir
			if dir == "" {
				dir = "."
			}
			_ = table.Append(t.Name, strings.Join(t.Command, " "), dir)
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
