// Package cli implements the pomopro command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pomopro/internal/core/ledger"
	"pomopro/internal/logging"
	"pomopro/internal/platform"
	"pomopro/internal/storage"
)

const appName = "pomopro"

var (
	dataDirFlag  string
	logLevelFlag string
	jsonOutput   bool

	logger  = zerolog.Nop()
	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "Pomopro - a Pomodoro timer with adaptive sessions",
		Long: `Pomopro alternates focus sessions with short and long breaks,
adapts session length to how recent sessions went, and keeps a
session log, a daily streak and a journal of what each focus
session accomplished.

Run without a command to open the desktop timer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.Level(logLevelFlag)
			if level == "" {
				level = logging.LevelFromEnv(logging.LevelWarn)
			}
			logger = logging.Configure(os.Stderr, level, true)
		},
	}
)

func init() {
	rootCmd.RunE = runCmd.RunE
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory for settings, statistics and the session log (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error (default: warn, or debug when DEBUG=1)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func resolveDataDir() (string, error) {
	return platform.DataDir(appName, dataDirFlag)
}

// openLedger loads the persisted statistics and session log.
func openLedger() (*ledger.Ledger, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	return ledger.New(storage.NewFileStore(dir), ledger.WithLogger(logger)), nil
}

// outputJSON prints v as indented JSON.
func outputJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
