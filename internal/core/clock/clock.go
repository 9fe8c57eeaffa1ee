package clock

import "time"

// Handle is a cancellable pending callback.
type Handle interface {
	// Stop prevents the callback from firing. It reports whether the call stopped it.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Handle
}

// Executor runs callbacks on the single control goroutine.
type Executor interface {
	Do(fn func()) bool
}

// Real schedules with time.AfterFunc and hands every firing to the executor,
// so callbacks never run on the timer goroutine.
type Real struct {
	executor Executor
}

// NewReal creates a wall-clock scheduler bound to an executor.
func NewReal(executor Executor) *Real {
	return &Real{executor: executor}
}

// AfterFunc implements Scheduler.
func (real *Real) AfterFunc(delay time.Duration, fn func()) Handle {
	executor := real.executor
	return time.AfterFunc(delay, func() {
		executor.Do(fn)
	})
}
