package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pomopro/internal/console"
)

var alarmCmd = &cobra.Command{
	Use:   "alarm <HH:MM[:SS]>",
	Short: "Wait in the terminal and ring an alarm at a time of day",
	Long: `Wait in the terminal and ring an alarm at a time of day.

A time earlier than now rings tomorrow. The command exits after the alarm
rings, or on Ctrl+C.

Examples:
  pomopro alarm 07:30
  pomopro alarm 13:05:30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt := newRuntime(dir, out, logger)
		rt.keeper.SetNotifier(console.NewNotifier(out, logger))
		rung := make(chan struct{})
		rt.onAlarm = func(string) { close(rung) }

		due, err := rt.setAlarm(args[0])
		if err != nil {
			return err
		}
		rt.start()
		defer rt.shutdown()
		fmt.Fprintf(out, "Alarm set for %s\n", formatDue(due))

		select {
		case <-rung:
		case <-ctx.Done():
			fmt.Fprintln(out, "\nAlarm cancelled.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alarmCmd)
}
