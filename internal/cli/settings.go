package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomopro/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective settings and the environment overrides",
	Long: `Show the effective settings, the file they are read from and the
POMOPRO_* environment variables that override them.

Edits to the settings file are picked up by a running timer and apply
from the next session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		settings, err := storage.LoadSettings(dir)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, map[string]any{"path": storage.SettingsPath(dir), "settings": settings})
		}
		fmt.Fprintln(out, headerStyle.Render("Settings")+" "+labelStyle.Render(storage.SettingsPath(dir)))
		fmt.Fprintf(out, "  focus:              %d min\n", settings.FocusMinutes)
		fmt.Fprintf(out, "  short break:        %d min\n", settings.ShortBreakMinutes)
		fmt.Fprintf(out, "  long break:         %d min\n", settings.LongBreakMinutes)
		fmt.Fprintf(out, "  cycles before long: %d\n", settings.CyclesBeforeLongBreak)
		fmt.Fprintf(out, "  auto start next:    %t\n", settings.AutoStartNext)
		fmt.Fprintf(out, "  smart adjust:       %t\n", settings.SmartAdjust)
		fmt.Fprintf(out, "  alarm sound:        %q\n", settings.AlarmSound)
		if usage := storage.SettingsUsage(); usage != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, usage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
