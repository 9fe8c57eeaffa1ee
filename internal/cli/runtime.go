package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"pomopro/internal/core/alarm"
	"pomopro/internal/core/clock"
	"pomopro/internal/core/ledger"
	"pomopro/internal/core/loop"
	"pomopro/internal/core/timekeeper"
	"pomopro/internal/platform"
	"pomopro/internal/storage"
	"pomopro/internal/ui/preferences"
)

const heatmapDays = 7

// runtime wires the timer core: one control loop owns the TimeKeeper, and every
// tick, alarm and user action reaches it through that loop.
type runtime struct {
	dir      string
	logger   zerolog.Logger
	settings preferences.Settings

	loop    *loop.Loop
	keeper  *timekeeper.TimeKeeper
	ledger  *ledger.Ledger
	store   *storage.FileStore
	alarms  *alarm.Monitor
	player  *platform.AlarmPlayer
	onAlarm func(label string)
	// onSettings runs on the control loop after the settings file changed on disk.
	onSettings func(settings preferences.Settings)

	cancelCollaborators context.CancelFunc
	cancelLoop          context.CancelFunc
}

func newRuntime(dir string, bell io.Writer, logger zerolog.Logger) *runtime {
	settings, err := storage.LoadSettings(dir)
	if err != nil {
		logger.Warn().Err(err).Str("path", storage.SettingsPath(dir)).Msg("load settings, using defaults")
	}

	store := storage.NewFileStore(dir)
	control := loop.New(64)
	collaborators, cancelCollaborators := context.WithCancel(context.Background())

	rt := &runtime{
		dir:                 dir,
		logger:              logger,
		settings:            settings,
		loop:                control,
		ledger:              ledger.New(store, ledger.WithLogger(logger)),
		store:               store,
		player:              platform.NewAlarmPlayer(bell, logger),
		cancelCollaborators: cancelCollaborators,
	}

	rt.keeper = timekeeper.New(settings.TimerConfig(), timekeeper.Config{
		TickInterval: time.Second,
		Context:      collaborators,
	}, clock.NewReal(control), rt.ledger)
	rt.keeper.SetLogger(logger)
	rt.keeper.SetAlarmPlayer(rt.player)
	if command := rt.player.Command(); command != "" {
		logger.Debug().Str("player", command).Msg("alarm sound player found")
	} else {
		logger.Debug().Msg("no alarm sound player, using the terminal bell")
	}

	rt.alarms = alarm.New(control, rt.ringAlarm, alarm.Config{})
	rt.alarms.SetLogger(logger)
	return rt
}

// start runs the control loop, the alarm monitor and the settings watcher.
func (rt *runtime) start() {
	ctx, cancel := context.WithCancel(context.Background())
	rt.cancelLoop = cancel

	go rt.loop.Run(ctx)
	go rt.alarms.Run(ctx)

	err := storage.WatchSettings(ctx, rt.dir, storage.DefaultReloadDebounce, rt.logger, func(settings preferences.Settings) {
		rt.do(func() {
			rt.settings = settings
			rt.keeper.UpdateConfig(settings.TimerConfig())
			if rt.onSettings != nil {
				rt.onSettings(settings)
			}
		})
	})
	if err != nil {
		rt.logger.Warn().Err(err).Msg("settings hot reload disabled")
	}
}

// do hands fn to the control loop.
func (rt *runtime) do(fn func()) {
	if !rt.loop.Do(fn) {
		rt.logger.Debug().Msg("control loop stopped, action dropped")
	}
}

// setAlarm parses and arms a wall-clock alarm.
func (rt *runtime) setAlarm(value string) (time.Time, error) {
	at, err := alarm.ParseTime(value)
	if err != nil {
		return time.Time{}, err
	}
	return rt.alarms.Set(at), nil
}

// alarmStatus describes the armed alarm, if any.
func (rt *runtime) alarmStatus() string {
	at, armed := rt.alarms.Armed()
	if !armed {
		return "no alarm"
	}
	return "alarm " + at.String()
}

// saveSettings persists settings and applies them from the next phase start.
func (rt *runtime) saveSettings(settings preferences.Settings) {
	if err := storage.SaveSettings(rt.dir, settings); err != nil {
		rt.logger.Error().Err(err).Msg("save settings")
	}
	rt.do(func() {
		rt.settings = settings
		rt.keeper.UpdateConfig(settings.TimerConfig())
	})
}

func (rt *runtime) ringAlarm(label string) {
	rt.keeper.RingAlarm(label)
	if rt.onAlarm != nil {
		rt.onAlarm(label)
	}
}

// shutdown stops the timer on the loop, then the loop itself. A journal prompt
// still waiting for an answer is cancelled first so the loop can take the stop.
func (rt *runtime) shutdown() {
	rt.cancelCollaborators()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rt.loop.Call(ctx, rt.keeper.Stop); err != nil {
		rt.logger.Warn().Err(err).Msg("stop timer")
	}
	if rt.cancelLoop != nil {
		rt.cancelLoop()
		<-rt.loop.Done()
	}
}

func formatDue(due time.Time) string {
	return fmt.Sprintf("%s (%s)", due.Format("15:04:05"), due.Format("Mon Jan 2"))
}
