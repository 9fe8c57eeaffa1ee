package model

// Default interval lengths and cadence used when configuration is missing or invalid.
const (
	DefaultFocusMinutes          = 25
	DefaultShortBreakMinutes     = 5
	DefaultLongBreakMinutes      = 15
	DefaultCyclesBeforeLongBreak = 4
)

// TimerConfig contains runtime settings for the session timer and phase sequencer.
type TimerConfig struct {
	FocusMinutes          int
	ShortBreakMinutes     int
	LongBreakMinutes      int
	CyclesBeforeLongBreak int
	AutoStartNext         bool
	SmartAdjust           bool
	// AlarmSound is a path to an audio file. Empty selects the default alarm.
	AlarmSound string
}

// DefaultTimerConfig returns the classic 25/5/15 schedule with a long break every fourth cycle.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		FocusMinutes:          DefaultFocusMinutes,
		ShortBreakMinutes:     DefaultShortBreakMinutes,
		LongBreakMinutes:      DefaultLongBreakMinutes,
		CyclesBeforeLongBreak: DefaultCyclesBeforeLongBreak,
		AutoStartNext:         true,
		SmartAdjust:           true,
	}
}

// Normalize clamps invalid values to their defaults.
func (config TimerConfig) Normalize() TimerConfig {
	if config.FocusMinutes <= 0 {
		config.FocusMinutes = DefaultFocusMinutes
	}
	if config.ShortBreakMinutes <= 0 {
		config.ShortBreakMinutes = DefaultShortBreakMinutes
	}
	if config.LongBreakMinutes <= 0 {
		config.LongBreakMinutes = DefaultLongBreakMinutes
	}
	if config.CyclesBeforeLongBreak < 1 {
		config.CyclesBeforeLongBreak = DefaultCyclesBeforeLongBreak
	}
	return config
}

// BaseMinutes returns the configured length of a phase. Idle has no length.
func (config TimerConfig) BaseMinutes(phase Phase) int {
	switch phase {
	case PhaseFocus:
		return config.FocusMinutes
	case PhaseShortBreak:
		return config.ShortBreakMinutes
	case PhaseLongBreak:
		return config.LongBreakMinutes
	default:
		return 0
	}
}
