// Package sequencer decides which phase follows a finished session.
package sequencer

import "pomopro/internal/core/model"

// Sequencer tracks the focus cycle count and picks the next phase.
// The cycle count lives only in memory and is never decremented.
type Sequencer struct {
	cyclesBeforeLongBreak int
	autoStartNext         bool
	cycles                int
}

// New creates a sequencer from the timer configuration.
func New(config model.TimerConfig) *Sequencer {
	sequencer := &Sequencer{}
	sequencer.UpdateConfig(config)
	return sequencer
}

// UpdateConfig replaces cadence settings without touching the cycle count.
func (sequencer *Sequencer) UpdateConfig(config model.TimerConfig) {
	config = config.Normalize()
	sequencer.cyclesBeforeLongBreak = config.CyclesBeforeLongBreak
	sequencer.autoStartNext = config.AutoStartNext
}

// Next returns the phase to enter after a session of the given phase ended.
// Every ended focus session counts toward the long break, skipped or not.
func (sequencer *Sequencer) Next(ended model.Phase) model.Phase {
	switch ended {
	case model.PhaseFocus:
		sequencer.cycles++
		if sequencer.cycles%sequencer.cyclesBeforeLongBreak == 0 {
			return model.PhaseLongBreak
		}
		return model.PhaseShortBreak
	case model.PhaseShortBreak, model.PhaseLongBreak:
		if sequencer.autoStartNext {
			return model.PhaseFocus
		}
		return model.PhaseIdle
	default:
		return model.PhaseIdle
	}
}

// Cycles returns the number of focus sessions ended since start.
func (sequencer *Sequencer) Cycles() int {
	return sequencer.cycles
}
