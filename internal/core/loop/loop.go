package loop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned when work is submitted after the loop has exited.
var ErrStopped = errors.New("control loop stopped")

// Loop runs submitted callbacks one at a time on a single goroutine.
// Each callback runs to completion before the next one starts.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates a loop with the given queue capacity.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 1
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run processes callbacks until the context is cancelled.
func (loop *Loop) Run(ctx context.Context) {
	defer loop.once.Do(func() { close(loop.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-loop.queue:
			fn()
		}
	}
}

// Do enqueues fn. It blocks while the queue is full and reports false once the loop has stopped.
func (loop *Loop) Do(fn func()) bool {
	select {
	case <-loop.done:
		return false
	default:
	}
	select {
	case loop.queue <- fn:
		return true
	case <-loop.done:
		return false
	}
}

// Call runs fn on the loop and waits for it to finish.
// It must not be used from a callback already running on the loop.
func (loop *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !loop.Do(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-loop.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (loop *Loop) Done() <-chan struct{} {
	return loop.done
}
