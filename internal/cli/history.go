package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pomopro/internal/core/model"
	"pomopro/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the session log",
	Long: `Show the session log, newest first.

Examples:
  pomopro history          # last 20 sessions
  pomopro history -n 0     # every session
  pomopro history --json   # machine readable`,
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
		records = newestFirst(records, historyLimit)

		out := cmd.OutOrStdout()
		if jsonOutput {
			if records == nil {
				records = []model.SessionRecord{}
			}
			return outputJSON(out, records)
		}
		printHistory(out, records)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of sessions to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

// newestFirst reverses records and keeps at most limit of them.
func newestFirst(records []model.SessionRecord, limit int) []model.SessionRecord {
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	reversed := make([]model.SessionRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	return reversed
}

func printHistory(out io.Writer, records []model.SessionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No sessions yet.")
		return
	}
	for _, record := range records {
		outcome := "completed"
		switch {
		case record.Skipped:
			outcome = "skipped"
		case !record.Completed:
			outcome = "stopped"
		}
		line := fmt.Sprintf("%s  %-11s %3d min  %-9s pauses %d",
			record.Timestamp.Local().Format("2006-01-02 15:04"),
			record.Phase.Label(),
			record.DurationMinutes,
			outcome,
			record.PauseCount,
		)
		if record.Task != "" {
			line += "  [" + record.Task + "]"
		}
		fmt.Fprintln(out, line)
	}
}
