package model

import "time"

// DateLayout is the calendar-day key used for streaks, the heatmap and the journal.
const DateLayout = "2006-01-02"

// SessionRecord is the immutable summary of one finalized session.
type SessionRecord struct {
	ID              string    `json:"id"`
	Phase           Phase     `json:"phase"`
	DurationMinutes int       `json:"duration_minutes"`
	Completed       bool      `json:"completed"`
	Skipped         bool      `json:"skipped"`
	PauseCount      int       `json:"pause_count"`
	Timestamp       time.Time `json:"timestamp"`
	Task            string    `json:"task,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// CountsTowardStats reports whether the record updates the focus statistics.
func (record SessionRecord) CountsTowardStats() bool {
	return record.Phase == PhaseFocus && record.Completed && !record.Skipped
}

// Day returns the record's local calendar day.
func (record SessionRecord) Day() string {
	return record.Timestamp.Format(DateLayout)
}

// Statistics are the aggregated focus totals and the daily streak.
type Statistics struct {
	TotalFocusSessions int `json:"total_focus_sessions"`
	TotalFocusMinutes  int `json:"total_focus_minutes"`
	CurrentStreak      int `json:"current_streak"`
	// LastStreakDate is formatted with DateLayout, or empty before the first focus session.
	LastStreakDate string `json:"last_streak_date,omitempty"`
}

// DayCount is the number of completed focus sessions on one calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
