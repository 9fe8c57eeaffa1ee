package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler. Callbacks run on the goroutine that calls Advance.
// It counts arms and cancellations and remembers the highest number of callbacks pending at once.
type Fake struct {
	mu         sync.Mutex
	now        time.Time
	entries    []*fakeEntry
	arms       int
	cancels    int
	maxPending int
}

type fakeEntry struct {
	fake    *Fake
	at      time.Time
	fn      func()
	fired   bool
	stopped bool
}

// NewFake creates a fake scheduler starting at the given instant.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// AfterFunc implements Scheduler.
func (fake *Fake) AfterFunc(delay time.Duration, fn func()) Handle {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	live := fake.entries[:0]
	for _, entry := range fake.entries {
		if !entry.fired && !entry.stopped {
			live = append(live, entry)
		}
	}
	entry := &fakeEntry{fake: fake, at: fake.now.Add(delay), fn: fn}
	fake.entries = append(live, entry)
	fake.arms++
	if pending := fake.pendingLocked(); pending > fake.maxPending {
		fake.maxPending = pending
	}
	return entry
}

// Stop implements Handle.
func (entry *fakeEntry) Stop() bool {
	entry.fake.mu.Lock()
	defer entry.fake.mu.Unlock()
	if entry.fired || entry.stopped {
		return false
	}
	entry.stopped = true
	entry.fake.cancels++
	return true
}

// Advance moves time forward, firing every callback that comes due in order,
// including callbacks scheduled by earlier callbacks within the window.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(delta)
	fake.mu.Unlock()

	for {
		fake.mu.Lock()
		next := fake.nextDueLocked(target)
		if next == nil {
			fake.now = target
			fake.mu.Unlock()
			return
		}
		fake.now = next.at
		next.fired = true
		fake.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of callbacks neither fired nor stopped.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.pendingLocked()
}

// Arms returns how many callbacks have been scheduled.
func (fake *Fake) Arms() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.arms
}

// Cancels returns how many callbacks were stopped before firing.
func (fake *Fake) Cancels() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.cancels
}

// MaxPending returns the highest number of callbacks that were pending at the same time.
func (fake *Fake) MaxPending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.maxPending
}

func (fake *Fake) pendingLocked() int {
	count := 0
	for _, entry := range fake.entries {
		if !entry.fired && !entry.stopped {
			count++
		}
	}
	return count
}

func (fake *Fake) nextDueLocked(target time.Time) *fakeEntry {
	var next *fakeEntry
	for _, entry := range fake.entries {
		if entry.fired || entry.stopped || entry.at.After(target) {
			continue
		}
		if next == nil || entry.at.Before(next.at) {
			next = entry
		}
	}
	return next
}
