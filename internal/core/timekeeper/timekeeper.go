package timekeeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pomopro/internal/core/adaptive"
	"pomopro/internal/core/clock"
	"pomopro/internal/core/model"
	"pomopro/internal/core/sequencer"
)

// Recorder receives finalized sessions and supplies recent history.
type Recorder interface {
	Record(record model.SessionRecord) model.Statistics
	Recent(n int) []model.SessionRecord
}

// Notifier shows a desktop or terminal notification.
type Notifier interface {
	Notify(title, message string) error
}

// AlarmPlayer plays the alarm sound. An empty path selects the default sound.
type AlarmPlayer interface {
	PlayAlarm(path string) error
}

// JournalPrompter asks the user what a focus session accomplished.
// It may block until the user answers.
type JournalPrompter interface {
	Prompt(ctx context.Context) (string, error)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	// Context bounds blocking collaborator calls such as the journal prompt.
	Context context.Context
	Now     func() time.Time
}

type pendingTick struct {
	handle clock.Handle
	token  uint64
}

// TimeKeeper is the session timer. It owns the countdown and the current phase
// and keeps at most one tick pending at any time.
//
// Every method except Subscribe must be called from the single control goroutine,
// the same one the scheduler delivers ticks on.
type TimeKeeper struct {
	eventsMu sync.Mutex
	events   []chan Event

	config    model.TimerConfig
	options   Config
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler clock.Scheduler
	sequencer *sequencer.Sequencer
	recorder  Recorder
	notifier  Notifier
	alarm     AlarmPlayer
	journal   JournalPrompter
	logger    zerolog.Logger

	phase      model.Phase
	minutes    int
	remaining  int
	total      int
	running    bool
	paused     bool
	pauseCount int
	task       string

	pending   *pendingTick
	lastToken uint64
}

// New creates a TimeKeeper in the Idle phase.
func New(config model.TimerConfig, options Config, scheduler clock.Scheduler, recorder Recorder) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	config = config.Normalize()
	ctx, cancel := context.WithCancel(options.Context)

	return &TimeKeeper{
		config:    config,
		options:   options,
		ctx:       ctx,
		cancel:    cancel,
		scheduler: scheduler,
		sequencer: sequencer.New(config),
		recorder:  recorder,
		logger:    zerolog.Nop(),
		phase:     model.PhaseIdle,
	}
}

// SetNotifier injects the notification collaborator.
func (keeper *TimeKeeper) SetNotifier(notifier Notifier) {
	keeper.notifier = notifier
}

// SetAlarmPlayer injects the alarm sound collaborator.
func (keeper *TimeKeeper) SetAlarmPlayer(player AlarmPlayer) {
	keeper.alarm = player
}

// SetJournal injects the journal prompt collaborator.
func (keeper *TimeKeeper) SetJournal(journal JournalPrompter) {
	keeper.journal = journal
}

// SetLogger sets the logger for collaborator failures.
func (keeper *TimeKeeper) SetLogger(logger zerolog.Logger) {
	keeper.logger = logger
}

// SetTask names the task attached to subsequent session records.
func (keeper *TimeKeeper) SetTask(task string) {
	keeper.task = task
}

// Subscribe registers a new observer channel. Slow observers miss events rather
// than block the timer.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.eventsMu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.eventsMu.Unlock()
	return ch
}

// UpdateConfig replaces the configuration. The running phase keeps its length;
// the change applies from the next phase start.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) {
	keeper.config = config.Normalize()
	keeper.sequencer.UpdateConfig(keeper.config)
}

// Config returns the normalized configuration.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	return keeper.config
}

// Snapshot returns a copy of the timer state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	return Snapshot{
		Phase:            keeper.phase,
		RemainingSeconds: keeper.remaining,
		TotalSeconds:     keeper.total,
		Running:          keeper.running,
		Paused:           keeper.paused,
		PauseCount:       keeper.pauseCount,
		Cycles:           keeper.sequencer.Cycles(),
		Task:             keeper.task,
	}
}

// TickPending reports whether a tick is scheduled.
func (keeper *TimeKeeper) TickPending() bool {
	return keeper.pending != nil
}

// StartFocus begins a focus session, replacing any active phase.
func (keeper *TimeKeeper) StartFocus() {
	keeper.startPhase(model.PhaseFocus)
}

// StartShortBreak begins a short break, replacing any active phase.
func (keeper *TimeKeeper) StartShortBreak() {
	keeper.startPhase(model.PhaseShortBreak)
}

// StartLongBreak begins a long break, replacing any active phase.
func (keeper *TimeKeeper) StartLongBreak() {
	keeper.startPhase(model.PhaseLongBreak)
}

// Start begins a focus session from Idle, or restarts a stopped countdown.
// Calling it while running changes nothing.
func (keeper *TimeKeeper) Start() {
	if keeper.phase == model.PhaseIdle {
		keeper.StartFocus()
		keeper.status("Started")
		return
	}
	if !keeper.running {
		keeper.running = true
		keeper.paused = false
		keeper.ensureTick()
	}
	keeper.status("Started")
}

// TogglePause freezes or unfreezes a running countdown.
func (keeper *TimeKeeper) TogglePause() {
	if !keeper.running {
		return
	}
	keeper.paused = !keeper.paused
	if keeper.paused {
		keeper.pauseCount++
	} else {
		keeper.ensureTick()
	}

	keeper.emit(Event{
		Type:             EventPauseChange,
		Phase:            keeper.phase,
		RemainingSeconds: keeper.remaining,
		TotalSeconds:     keeper.total,
		Progress:         progress(keeper.remaining, keeper.total),
		Running:          keeper.running,
		Paused:           keeper.paused,
		At:               keeper.options.Now(),
	})
	if keeper.paused {
		keeper.status("Paused")
	} else {
		keeper.status("Resumed")
	}
}

// Pause freezes the countdown if it is running and not already paused.
func (keeper *TimeKeeper) Pause() {
	if keeper.running && !keeper.paused {
		keeper.TogglePause()
	}
}

// Resume unfreezes a paused countdown, or behaves like Start otherwise.
func (keeper *TimeKeeper) Resume() {
	if keeper.paused {
		keeper.TogglePause()
		return
	}
	keeper.Start()
}

// Skip ends the current session immediately as skipped.
func (keeper *TimeKeeper) Skip() {
	if keeper.phase == model.PhaseIdle {
		return
	}
	keeper.status("Skipped")
	keeper.finalize(false, true)
}

// Reset cancels the countdown and returns to Idle without recording anything.
func (keeper *TimeKeeper) Reset() {
	keeper.cancelTick()
	keeper.enterIdle()
	keeper.status("Reset")
}

// RingAlarm announces a wall-clock alarm through the notifier and alarm sound.
func (keeper *TimeKeeper) RingAlarm(label string) {
	message := fmt.Sprintf("Alarm time %s", label)
	keeper.guard("notify", func() error {
		if keeper.notifier == nil {
			return nil
		}
		return keeper.notifier.Notify("Alarm", message)
	})
	keeper.playAlarm()
	keeper.emit(Event{
		Type:    EventAlarm,
		Phase:   keeper.phase,
		Message: message,
		At:      keeper.options.Now(),
	})
}

// Stop cancels the pending tick, unblocks collaborator calls and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.cancelTick()
	keeper.running = false
	keeper.paused = false
	keeper.cancel()

	keeper.eventsMu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.eventsMu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) startPhase(phase model.Phase) {
	keeper.cancelTick()

	base := keeper.config.BaseMinutes(phase)
	minutes := adaptive.Adjust(keeper.recorder.Recent(adaptive.Window), base, keeper.config.SmartAdjust)

	keeper.phase = phase
	keeper.minutes = minutes
	keeper.total = minutes * 60
	keeper.remaining = keeper.total
	keeper.running = true
	keeper.paused = false
	keeper.pauseCount = 0

	keeper.emit(Event{
		Type:             EventPhaseChange,
		Phase:            phase,
		RemainingSeconds: keeper.remaining,
		TotalSeconds:     keeper.total,
		Running:          true,
		At:               keeper.options.Now(),
	})
	keeper.armTick()
}

func (keeper *TimeKeeper) enterIdle() {
	keeper.phase = model.PhaseIdle
	keeper.minutes = 0
	keeper.remaining = 0
	keeper.total = 0
	keeper.running = false
	keeper.paused = false
	keeper.pauseCount = 0

	keeper.emit(Event{
		Type:  EventPhaseChange,
		Phase: model.PhaseIdle,
		At:    keeper.options.Now(),
	})
}

// armTick replaces any pending tick with a new one.
func (keeper *TimeKeeper) armTick() {
	keeper.cancelTick()
	keeper.lastToken++
	token := keeper.lastToken
	handle := keeper.scheduler.AfterFunc(keeper.options.TickInterval, func() {
		keeper.onTick(token)
	})
	keeper.pending = &pendingTick{handle: handle, token: token}
}

// ensureTick arms a tick only when none is pending.
func (keeper *TimeKeeper) ensureTick() {
	if keeper.pending == nil {
		keeper.armTick()
	}
}

func (keeper *TimeKeeper) cancelTick() {
	if keeper.pending == nil {
		return
	}
	keeper.pending.handle.Stop()
	keeper.pending = nil
}

func (keeper *TimeKeeper) onTick(token uint64) {
	// A tick that was cancelled after it had already fired may still be delivered.
	if keeper.pending == nil || keeper.pending.token != token {
		return
	}
	keeper.pending = nil

	if !keeper.running {
		return
	}
	if keeper.paused {
		keeper.armTick()
		return
	}
	if keeper.remaining <= 0 {
		keeper.finalize(true, false)
		return
	}

	keeper.remaining--
	keeper.emit(Event{
		Type:             EventProgress,
		Phase:            keeper.phase,
		RemainingSeconds: keeper.remaining,
		TotalSeconds:     keeper.total,
		Progress:         progress(keeper.remaining, keeper.total),
		Running:          true,
		At:               keeper.options.Now(),
	})
	keeper.armTick()
}

func (keeper *TimeKeeper) finalize(completed, skipped bool) {
	keeper.cancelTick()

	phase := keeper.phase
	if phase == model.PhaseIdle {
		return
	}
	delivered := completed && !skipped

	var notes string
	if phase == model.PhaseFocus && delivered {
		notes = keeper.promptJournal()
	}

	record := model.SessionRecord{
		ID:              uuid.NewString(),
		Phase:           phase,
		DurationMinutes: keeper.minutes,
		Completed:       completed,
		Skipped:         skipped,
		PauseCount:      keeper.pauseCount,
		Timestamp:       keeper.options.Now(),
		Task:            keeper.task,
		Notes:           notes,
	}
	stats := keeper.recorder.Record(record)

	if delivered {
		keeper.guard("notify", func() error {
			if keeper.notifier == nil {
				return nil
			}
			return keeper.notifier.Notify("Session Complete", phase.Label()+" finished.")
		})
		keeper.playAlarm()
	}

	keeper.emit(Event{
		Type:    EventSessionEnd,
		Phase:   phase,
		Record:  &record,
		Stats:   stats,
		Message: phase.Label() + " finished.",
		At:      record.Timestamp,
	})

	switch keeper.sequencer.Next(phase) {
	case model.PhaseFocus:
		keeper.StartFocus()
	case model.PhaseShortBreak:
		keeper.StartShortBreak()
	case model.PhaseLongBreak:
		keeper.StartLongBreak()
	default:
		keeper.enterIdle()
	}
}

func (keeper *TimeKeeper) promptJournal() string {
	if keeper.journal == nil {
		return ""
	}
	var notes string
	keeper.guard("journal", func() error {
		answer, err := keeper.journal.Prompt(keeper.ctx)
		notes = answer
		return err
	})
	return notes
}

func (keeper *TimeKeeper) playAlarm() {
	keeper.guard("alarm", func() error {
		if keeper.alarm == nil {
			return nil
		}
		return keeper.alarm.PlayAlarm(keeper.config.AlarmSound)
	})
}

// guard runs a collaborator call. Errors and panics are logged and dropped.
func (keeper *TimeKeeper) guard(collaborator string, call func() error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			keeper.logger.Error().
				Str("collaborator", collaborator).
				Interface("panic", recovered).
				Msg("collaborator panicked")
		}
	}()
	if err := call(); err != nil {
		keeper.logger.Warn().
			Err(err).
			Str("collaborator", collaborator).
			Str("phase", string(keeper.phase)).
			Msg("collaborator failed")
	}
}

func (keeper *TimeKeeper) status(message string) {
	keeper.emit(Event{
		Type:    EventStatus,
		Phase:   keeper.phase,
		Running: keeper.running,
		Paused:  keeper.paused,
		Message: message,
		At:      keeper.options.Now(),
	})
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.eventsMu.Lock()
	events := append([]chan Event(nil), keeper.events...)
	keeper.eventsMu.Unlock()

	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
