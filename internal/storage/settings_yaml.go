package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"pomopro/internal/ui/preferences"
)

// SettingsFileName is the settings file inside the data directory.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes          int    `yaml:"focus_minutes" env:"POMOPRO_FOCUS_MINUTES" env-description:"focus session length in minutes"`
	ShortBreakMinutes     int    `yaml:"short_break_minutes" env:"POMOPRO_SHORT_BREAK_MINUTES" env-description:"short break length in minutes"`
	LongBreakMinutes      int    `yaml:"long_break_minutes" env:"POMOPRO_LONG_BREAK_MINUTES" env-description:"long break length in minutes"`
	CyclesBeforeLongBreak int    `yaml:"cycles_before_long_break" env:"POMOPRO_CYCLES_BEFORE_LONG_BREAK" env-description:"focus sessions between long breaks"`
	AutoStartNext         bool   `yaml:"auto_start_next" env:"POMOPRO_AUTO_START_NEXT" env-description:"start the next session automatically"`
	SmartAdjust           bool   `yaml:"smart_adjust" env:"POMOPRO_SMART_ADJUST" env-description:"adapt session length to recent sessions"`
	AlarmSound            string `yaml:"alarm_sound" env:"POMOPRO_ALARM_SOUND" env-description:"audio file played when a session ends"`
}

// LoadSettings reads user preferences from dir/settings.yaml, then applies
// POMOPRO_* environment overrides. Keys missing from the file keep their defaults.
// If the file does not exist, defaults plus environment overrides are returned.
func LoadSettings(dir string) (preferences.Settings, error) {
	defaults := preferences.DefaultSettings()
	fileData := toYamlSettings(defaults)
	path := SettingsPath(dir)

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &fileData); err != nil {
			return defaults, fmt.Errorf("read settings %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&fileData); err != nil {
			return defaults, fmt.Errorf("read settings env: %w", err)
		}
	} else {
		return defaults, fmt.Errorf("stat settings file: %w", err)
	}

	settings := defaults
	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to dir/settings.yaml.
func SaveSettings(dir string, settings preferences.Settings) error {
	serialized, err := yaml.Marshal(toYamlSettings(settings))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := writeFileAtomic(SettingsPath(dir), serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// SettingsPath returns the settings file location inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, SettingsFileName)
}

// SettingsUsage describes the supported environment overrides.
func SettingsUsage() string {
	var fileData yamlSettings
	description, err := cleanenv.GetDescription(&fileData, nil)
	if err != nil {
		return ""
	}
	return description
}

func toYamlSettings(settings preferences.Settings) yamlSettings {
	return yamlSettings{
		FocusMinutes:          settings.FocusMinutes,
		ShortBreakMinutes:     settings.ShortBreakMinutes,
		LongBreakMinutes:      settings.LongBreakMinutes,
		CyclesBeforeLongBreak: settings.CyclesBeforeLongBreak,
		AutoStartNext:         settings.AutoStartNext,
		SmartAdjust:           settings.SmartAdjust,
		AlarmSound:            settings.AlarmSound,
	}
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusMinutes = fileData.FocusMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakMinutes = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if fileData.CyclesBeforeLongBreak > 0 {
		settings.CyclesBeforeLongBreak = fileData.CyclesBeforeLongBreak
	}

	settings.AutoStartNext = fileData.AutoStartNext
	settings.SmartAdjust = fileData.SmartAdjust
	settings.AlarmSound = fileData.AlarmSound
}
