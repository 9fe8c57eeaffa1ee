// Package alarm rings once at a configured wall-clock time of day.
package alarm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomopro/internal/core/clock"
)

// ErrInvalidTime is returned for times that are not HH:MM or HH:MM:SS.
var ErrInvalidTime = errors.New("invalid alarm time")

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTime parses "HH:MM" or "HH:MM:SS" in 24-hour form.
func ParseTime(value string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}

	limits := []int{23, 59, 59}
	fields := make([]int, 3)
	for i, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil || number < 0 || number > limits[i] || len(part) > 2 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
		}
		fields[i] = number
	}
	return TimeOfDay{Hour: fields[0], Minute: fields[1], Second: fields[2]}, nil
}

func (at TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", at.Hour, at.Minute, at.Second)
}

// Next returns the first instant at or after now that matches the time of day.
func (at TimeOfDay) Next(now time.Time) time.Time {
	due := time.Date(now.Year(), now.Month(), now.Day(), at.Hour, at.Minute, at.Second, 0, now.Location())
	if due.Before(now.Truncate(time.Second)) {
		due = due.AddDate(0, 0, 1)
	}
	return due
}

// Config contains runtime options for Monitor.
type Config struct {
	PollInterval time.Duration
	Now          func() time.Time
}

// Monitor polls the wall clock on its own goroutine and hands the firing to an
// executor, so the callback runs wherever the executor runs work.
type Monitor struct {
	mu       sync.Mutex
	config   Config
	executor clock.Executor
	onFire   func(label string)
	logger   zerolog.Logger

	target TimeOfDay
	due    time.Time
	armed  bool
}

// New creates a disarmed Monitor.
func New(executor clock.Executor, onFire func(label string), config Config) *Monitor {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Monitor{
		config:   config,
		executor: executor,
		onFire:   onFire,
		logger:   zerolog.Nop(),
	}
}

// SetLogger sets the logger.
func (monitor *Monitor) SetLogger(logger zerolog.Logger) {
	monitor.logger = logger
}

// Set arms the alarm for the next occurrence of the given time of day.
func (monitor *Monitor) Set(at TimeOfDay) time.Time {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.target = at
	monitor.due = at.Next(monitor.config.Now())
	monitor.armed = true
	monitor.logger.Info().Str("alarm", at.String()).Time("due", monitor.due).Msg("alarm set")
	return monitor.due
}

// Clear disarms the alarm.
func (monitor *Monitor) Clear() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.armed = false
}

// Armed returns the configured time and whether the alarm is still pending.
func (monitor *Monitor) Armed() (TimeOfDay, bool) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.target, monitor.armed
}

// Run polls until ctx is cancelled.
func (monitor *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(monitor.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitor.poll()
		}
	}
}

// poll fires the alarm once when its due time has passed.
func (monitor *Monitor) poll() bool {
	monitor.mu.Lock()
	if !monitor.armed || monitor.config.Now().Before(monitor.due) {
		monitor.mu.Unlock()
		return false
	}
	monitor.armed = false
	label := monitor.target.String()
	monitor.mu.Unlock()

	if !monitor.executor.Do(func() { monitor.onFire(label) }) {
		monitor.logger.Warn().Str("alarm", label).Msg("alarm dropped, control loop stopped")
		return false
	}
	return true
}
