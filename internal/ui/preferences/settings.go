package preferences

import (
	"pomopro/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusMinutes          int
	ShortBreakMinutes     int
	LongBreakMinutes      int
	CyclesBeforeLongBreak int
	AutoStartNext         bool
	SmartAdjust           bool

	AlarmSound string
}

// DefaultSettings returns default settings for Pomopro.
func DefaultSettings() Settings {
	defaults := model.DefaultTimerConfig()
	return Settings{
		FocusMinutes:          defaults.FocusMinutes,
		ShortBreakMinutes:     defaults.ShortBreakMinutes,
		LongBreakMinutes:      defaults.LongBreakMinutes,
		CyclesBeforeLongBreak: defaults.CyclesBeforeLongBreak,
		AutoStartNext:         defaults.AutoStartNext,
		SmartAdjust:           defaults.SmartAdjust,
	}
}

// TimerConfig converts settings to the timer configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		FocusMinutes:          settings.FocusMinutes,
		ShortBreakMinutes:     settings.ShortBreakMinutes,
		LongBreakMinutes:      settings.LongBreakMinutes,
		CyclesBeforeLongBreak: settings.CyclesBeforeLongBreak,
		AutoStartNext:         settings.AutoStartNext,
		SmartAdjust:           settings.SmartAdjust,
		AlarmSound:            settings.AlarmSound,
	}.Normalize()
}
