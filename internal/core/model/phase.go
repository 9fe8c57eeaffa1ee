package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Phase is the timer's current activity.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// ParsePhase converts a stored phase name. Unknown names map to Idle.
func ParsePhase(value string) (Phase, bool) {
	switch Phase(value) {
	case PhaseIdle, PhaseFocus, PhaseShortBreak, PhaseLongBreak:
		return Phase(value), true
	}
	return PhaseIdle, false
}

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Label returns a human readable phase name, e.g. "Short Break".
func (phase Phase) Label() string {
	if phase == "" {
		phase = PhaseIdle
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(phase), "_", " "))
}
