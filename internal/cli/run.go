package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"

	"pomopro/internal/console"
	"pomopro/internal/core/ledger"
	"pomopro/internal/core/timekeeper"
	"pomopro/internal/platform"
	"pomopro/internal/storage"
	uiapp "pomopro/internal/ui/app"
	"pomopro/internal/ui/journal"
	"pomopro/internal/ui/overlay"
	"pomopro/internal/ui/preferences"
	"pomopro/internal/ui/tray"
)

var (
	runHeadless bool
	runTask     string
	runAlarm    string
	runNoStart  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the timer",
	Long: `Start the timer.

By default the desktop window opens. With --headless the timer runs in
the terminal: a progress line is printed on stdout and commands are read
from stdin (type "help" for the list). After each completed focus session
the next input line is saved as the journal entry.

Examples:
  pomopro run                         # desktop timer
  pomopro run --headless --task docs  # terminal timer, focus starts at once
  pomopro run --headless --alarm 17:30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		if runHeadless {
			return runTerminal(dir, os.Stdin, os.Stdout)
		}
		return runDesktop(dir)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "run in the terminal instead of opening a window")
	runCmd.Flags().StringVar(&runTask, "task", "", "task name attached to the sessions")
	runCmd.Flags().StringVar(&runAlarm, "alarm", "", "also ring an alarm at HH:MM[:SS]")
	runCmd.Flags().BoolVar(&runNoStart, "no-start", false, "headless: wait for \"start\" instead of starting a focus session")
	rootCmd.AddCommand(runCmd)
}

func runTerminal(dir string, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := newRuntime(dir, out, logger)
	rt.keeper.SetNotifier(console.NewNotifier(out, logger))
	input := console.NewInput(in, out)
	rt.keeper.SetJournal(input)

	events := rt.keeper.Subscribe(128)
	printed := make(chan struct{})
	go func() {
		console.NewPrinter(out).Run(events)
		close(printed)
	}()

	rt.start()
	defer func() {
		rt.shutdown()
		select {
		case <-printed:
		case <-time.After(time.Second):
		}
		fmt.Fprintln(out)
	}()

	if runAlarm != "" {
		due, err := rt.setAlarm(runAlarm)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Alarm set for %s\n", formatDue(due))
	}
	rt.do(func() {
		rt.keeper.SetTask(runTask)
		if !runNoStart {
			rt.keeper.Start()
		}
	})
	fmt.Fprint(out, console.Help)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-input.Commands():
			if !ok {
				return nil
			}
			command, err := console.ParseCommand(line)
			if err != nil {
				fmt.Fprintf(out, "\n%v\n", err)
				continue
			}
			if command.Name == console.CommandQuit {
				return nil
			}
			handleCommand(rt, command, out)
		}
	}
}

func handleCommand(rt *runtime, command console.Command, out io.Writer) {
	switch command.Name {
	case console.CommandStart:
		rt.do(rt.keeper.Start)
	case console.CommandPause:
		rt.do(rt.keeper.TogglePause)
	case console.CommandSkip:
		rt.do(rt.keeper.Skip)
	case console.CommandReset:
		rt.do(rt.keeper.Reset)
	case console.CommandFocus:
		rt.do(rt.keeper.StartFocus)
	case console.CommandShortBreak:
		rt.do(rt.keeper.StartShortBreak)
	case console.CommandLongBreak:
		rt.do(rt.keeper.StartLongBreak)
	case console.CommandTask:
		rt.do(func() { rt.keeper.SetTask(command.Arg) })
	case console.CommandAlarm:
		if strings.EqualFold(command.Arg, "off") {
			rt.alarms.Clear()
			fmt.Fprintln(out, "\nAlarm cleared")
			return
		}
		due, err := rt.setAlarm(command.Arg)
		if err != nil {
			fmt.Fprintf(out, "\n%v\n", err)
			return
		}
		fmt.Fprintf(out, "\nAlarm set for %s\n", formatDue(due))
	case console.CommandStatus:
		rt.do(func() {
			snapshot := rt.keeper.Snapshot()
			stats := rt.ledger.Statistics()
			fmt.Fprintf(out, "\n%s %s  cycles %d  pauses %d  task %q  sessions %d  streak %d  %s\n",
				console.PhaseLabel(snapshot.Phase),
				timekeeper.FormatRemaining(snapshot.RemainingSeconds),
				snapshot.Cycles,
				snapshot.PauseCount,
				snapshot.Task,
				stats.TotalFocusSessions,
				stats.CurrentStreak,
				rt.alarmStatus(),
			)
		})
	case console.CommandHelp:
		fmt.Fprint(out, "\n"+console.Help)
	}
}

func runDesktop(dir string) error {
	guard, err := platform.AcquireSingleInstance(appName, dir)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()
	logger.Debug().Str("address", guard.Address()).Msg("single instance lock held")

	fyneApp := fyneapp.NewWithID("io.pomopro.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	rt := newRuntime(dir, os.Stdout, logger)
	rt.keeper.SetNotifier(uiapp.NewNotifier(fyneApp))

	var (
		window      *uiapp.Window
		prefsWindow *preferences.Window
	)
	refreshStats := func() {
		window.SetStatistics(rt.ledger.Statistics(), rt.ledger.Heatmap(heatmapDays))
	}

	window = uiapp.New(fyneApp, uiapp.Controls{
		OnStart:       func() { rt.do(rt.keeper.Start) },
		OnTogglePause: func() { rt.do(rt.keeper.TogglePause) },
		OnSkip:        func() { rt.do(rt.keeper.Skip) },
		OnReset:       func() { rt.do(rt.keeper.Reset) },
		OnClearStats: func() {
			rt.do(func() {
				rt.ledger.ClearStatistics()
				refreshStats()
			})
		},
		OnSetTask: func(task string) {
			rt.do(func() { rt.keeper.SetTask(task) })
		},
		OnSetAlarm: func(value string) error {
			due, err := rt.setAlarm(value)
			if err != nil {
				return err
			}
			window.SetStatus("Alarm set for " + formatDue(due))
			return nil
		},
		OnJournal: func() {
			records, err := rt.store.LoadSessionLog()
			if err != nil && len(records) == 0 {
				dialog.ShowError(err, window.Window())
				return
			}
			journal.ShowUnsafe(window.Window(), ledger.Journal(records))
		},
		OnExport: func() {
			exportDialog(rt, window.Window())
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})
	prefsWindow = preferences.New(fyneApp, rt.settings, rt.saveSettings)
	rt.onSettings = func(settings preferences.Settings) {
		fyne.Do(func() {
			prefsWindow.UpdateSettings(settings)
		})
	}
	rt.keeper.SetJournal(journal.NewPrompter(window.Window()))

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        window.Show,
			OnStart:       func() { rt.do(rt.keeper.Start) },
			OnTogglePause: func() { rt.do(rt.keeper.TogglePause) },
			OnSkip:        func() { rt.do(rt.keeper.Skip) },
			OnReset:       func() { rt.do(rt.keeper.Reset) },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		window.SetCloseIntercept(func() {
			window.Window().Hide()
		})
	} else {
		logger.Info().Msg("system tray unsupported on this platform")
	}

	breakOverlay := overlay.New(fyneApp, overlay.DefaultConfig(), func() {
		rt.do(rt.keeper.Skip)
	})

	events := rt.keeper.Subscribe(128)
	go func() {
		for event := range events {
			window.ApplyEvent(event)
			fyne.Do(func() {
				breakOverlay.ApplyEventUnsafe(event)
				if trayManager != nil {
					trayManager.ApplyEventUnsafe(event)
				}
			})
			if event.Type == timekeeper.EventSessionEnd {
				window.SetStatistics(event.Stats, rt.ledger.Heatmap(heatmapDays))
			}
		}
	}()

	rt.start()
	if runAlarm != "" {
		if due, err := rt.setAlarm(runAlarm); err != nil {
			logger.Warn().Err(err).Msg("ignoring --alarm")
		} else {
			window.SetStatus("Alarm set for " + formatDue(due))
		}
	}
	if runTask != "" {
		rt.do(func() { rt.keeper.SetTask(runTask) })
	}
	refreshStats()

	window.Show()
	fyneApp.Run()
	rt.shutdown()
	return nil
}

func exportDialog(rt *runtime, parent fyne.Window) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		records, err := rt.store.LoadSessionLog()
		if err != nil && len(records) == 0 {
			dialog.ShowError(err, parent)
			return
		}
		if err := storage.WriteSessionLog(writer, records); err != nil {
			dialog.ShowError(fmt.Errorf("export session log: %w", err), parent)
			return
		}
		dialog.ShowInformation("Export", fmt.Sprintf("Exported %d sessions to %s", len(records), writer.URI().Name()), parent)
	}, parent)
	save.SetFileName(storage.SessionLogFileName)
	save.Show()
}
