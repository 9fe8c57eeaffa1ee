package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomopro/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the session log as CSV",
	Long: `Export the session log as CSV.

Unreadable rows are left out of the export.

Examples:
  pomopro export ~/pomodoro.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		count, err := storage.ExportSessionLog(dir, args[0])
		if err != nil {
			return fmt.Errorf("export session log: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, map[string]any{"path": args[0], "sessions": count})
		}
		fmt.Fprintf(out, "Exported %d sessions to %s\n", count, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
