package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomopro/internal/core/ledger"
	"pomopro/internal/storage"
	"pomopro/internal/ui/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show journal entries grouped by day",
	Long: `Show the notes written after focus sessions, grouped by day.

Examples:
  pomopro journal
  pomopro journal --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		records, err := storage.LoadSessionLog(dir)
		if err != nil {
			logger.Warn().Err(err).Msg("session log has unreadable rows")
		}
		days := ledger.Journal(records)

		out := cmd.OutOrStdout()
		if jsonOutput {
			if days == nil {
				days = []ledger.JournalDay{}
			}
			return outputJSON(out, days)
		}
		fmt.Fprintln(out, journal.Format(days))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
}
