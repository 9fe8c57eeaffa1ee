// Package adaptive lengthens or shortens the next interval from recent session behavior.
package adaptive

import "pomopro/internal/core/model"

const (
	// Window is the number of most recent sessions inspected.
	Window = 8

	MinMinutes = 15
	MaxMinutes = 60
	Step       = 5

	pausedThreshold    = 3
	completedThreshold = 4
)

// Adjust returns the interval length to use for the next phase.
// Three or more paused sessions in the window shorten it; otherwise four or more
// completed sessions lengthen it. Disabled adjustment returns base unchanged.
func Adjust(history []model.SessionRecord, baseMinutes int, enabled bool) int {
	if !enabled {
		return baseMinutes
	}
	if len(history) > Window {
		history = history[len(history)-Window:]
	}

	paused, completed := 0, 0
	for _, record := range history {
		if record.PauseCount > 0 {
			paused++
		}
		if record.Completed {
			completed++
		}
	}

	switch {
	case paused >= pausedThreshold:
		return max(MinMinutes, baseMinutes-Step)
	case completed >= completedThreshold:
		return min(MaxMinutes, baseMinutes+Step)
	default:
		return baseMinutes
	}
}
