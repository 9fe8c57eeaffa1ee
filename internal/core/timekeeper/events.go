package timekeeper

import (
	"fmt"
	"time"

	"pomopro/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventProgress    EventType = "progress"
	EventPauseChange EventType = "pause_change"
	EventSessionEnd  EventType = "session_end"
	EventStatus      EventType = "status"
	EventAlarm       EventType = "alarm"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type             EventType
	Phase            model.Phase
	RemainingSeconds int
	TotalSeconds     int
	// Progress is 1 - remaining/total.
	Progress float64
	Running  bool
	Paused   bool
	// Record and Stats are set on EventSessionEnd.
	Record  *model.SessionRecord
	Stats   model.Statistics
	Message string
	At      time.Time
}

// Snapshot is a read-only copy of the timer state.
type Snapshot struct {
	Phase            model.Phase
	RemainingSeconds int
	TotalSeconds     int
	Running          bool
	Paused           bool
	PauseCount       int
	Cycles           int
	Task             string
}

// Progress returns 1 - remaining/total, or 0 when no phase is active.
func (snapshot Snapshot) Progress() float64 {
	return progress(snapshot.RemainingSeconds, snapshot.TotalSeconds)
}

func progress(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}
	fraction := 1 - float64(remaining)/float64(total)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// FormatRemaining renders seconds as MM:SS. Negative values render as 00:00.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
