package alarm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  TimeOfDay
	}{
		{input: "07:30", want: TimeOfDay{Hour: 7, Minute: 30}},
		{input: "7:05", want: TimeOfDay{Hour: 7, Minute: 5}},
		{input: "23:59:59", want: TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
		{input: " 00:00 ", want: TimeOfDay{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "7", "24:00", "12:60", "12:00:60", "aa:bb", "12:00:00:00", "-1:30", "007:30"} {
		_, err := ParseTime(input)
		assert.ErrorIs(t, err, ErrInvalidTime, input)
	}
}

func TestNextRollsOverToTomorrow(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC), TimeOfDay{Hour: 9, Minute: 15}.Next(now))
	assert.Equal(t, time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC), TimeOfDay{Hour: 7}.Next(now))
	assert.Equal(t, now, TimeOfDay{Hour: 8}.Next(now.Add(300*time.Millisecond)))
}

type queueExecutor struct {
	mu      sync.Mutex
	pending []func()
	stopped bool
}

func (executor *queueExecutor) Do(fn func()) bool {
	executor.mu.Lock()
	defer executor.mu.Unlock()
	if executor.stopped {
		return false
	}
	executor.pending = append(executor.pending, fn)
	return true
}

func (executor *queueExecutor) runAll() {
	executor.mu.Lock()
	pending := executor.pending
	executor.pending = nil
	executor.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func TestMonitorFiresOnceThroughExecutor(t *testing.T) {
	wall := &manualClock{now: time.Date(2024, 3, 10, 7, 29, 58, 0, time.UTC)}
	executor := &queueExecutor{}
	var fired []string
	monitor := New(executor, func(label string) { fired = append(fired, label) }, Config{Now: wall.Now})

	monitor.Set(TimeOfDay{Hour: 7, Minute: 30})
	assert.False(t, monitor.poll())

	wall.set(time.Date(2024, 3, 10, 7, 30, 1, 0, time.UTC))
	assert.True(t, monitor.poll())
	assert.Empty(t, fired, "callback must wait for the executor")

	executor.runAll()
	assert.Equal(t, []string{"07:30:00"}, fired)

	assert.False(t, monitor.poll())
	_, armed := monitor.Armed()
	assert.False(t, armed)
}

func TestMonitorClear(t *testing.T) {
	wall := &manualClock{now: time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)}
	executor := &queueExecutor{}
	monitor := New(executor, func(string) {}, Config{Now: wall.Now})

	monitor.Set(TimeOfDay{Hour: 7, Minute: 1})
	monitor.Clear()
	wall.set(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	assert.False(t, monitor.poll())
	assert.Empty(t, executor.pending)
}

func TestMonitorDropsFiringAfterExecutorStops(t *testing.T) {
	wall := &manualClock{now: time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)}
	executor := &queueExecutor{stopped: true}
	monitor := New(executor, func(string) {}, Config{Now: wall.Now})

	monitor.Set(TimeOfDay{Hour: 7})
	assert.False(t, monitor.poll())
}

type channelExecutor chan func()

func (executor channelExecutor) Do(fn func()) bool {
	executor <- fn
	return true
}

func TestMonitorRunPollsUntilCancelled(t *testing.T) {
	wall := &manualClock{now: time.Date(2024, 3, 10, 6, 59, 59, 0, time.UTC)}
	executor := make(channelExecutor, 1)
	monitor := New(executor, func(string) {}, Config{PollInterval: time.Millisecond, Now: wall.Now})
	monitor.Set(TimeOfDay{Hour: 7})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Run(ctx)
		close(done)
	}()

	wall.set(time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC))
	select {
	case <-executor:
	case <-time.After(2 * time.Second):
		require.Fail(t, "alarm never fired")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "monitor did not stop")
	}
}

func TestErrInvalidTimeWraps(t *testing.T) {
	_, err := ParseTime("noon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTime))
	assert.Contains(t, err.Error(), "noon")
}
