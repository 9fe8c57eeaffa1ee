package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearStatsCmd = &cobra.Command{
	Use:   "clear-stats",
	Short: "Reset the focus totals and the streak",
	Long: `Reset the focus totals and the streak.

The session log and the journal are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := openLedger()
		if err != nil {
			return err
		}
		ledger.ClearStatistics()

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, ledger.Statistics())
		}
		fmt.Fprintln(out, "Statistics cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearStatsCmd)
}
