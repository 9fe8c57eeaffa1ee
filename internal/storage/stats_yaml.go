package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomopro/internal/core/model"
)

// StatsFileName is the statistics file inside the data directory.
const StatsFileName = "statistics.yaml"

type yamlStatistics struct {
	TotalFocusSessions int    `yaml:"total_focus_sessions"`
	TotalFocusMinutes  int    `yaml:"total_focus_minutes"`
	CurrentStreak      int    `yaml:"current_streak"`
	LastStreakDate     string `yaml:"last_streak_date,omitempty"`
}

// LoadStatistics reads dir/statistics.yaml. A missing file yields zero statistics.
func LoadStatistics(dir string) (model.Statistics, error) {
	rawData, err := os.ReadFile(filepath.Join(dir, StatsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Statistics{}, nil
		}
		return model.Statistics{}, fmt.Errorf("read statistics file: %w", err)
	}

	var fileData yamlStatistics
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return model.Statistics{}, fmt.Errorf("parse statistics yaml: %w", err)
	}

	return model.Statistics{
		TotalFocusSessions: max(0, fileData.TotalFocusSessions),
		TotalFocusMinutes:  max(0, fileData.TotalFocusMinutes),
		CurrentStreak:      max(0, fileData.CurrentStreak),
		LastStreakDate:     fileData.LastStreakDate,
	}, nil
}

// SaveStatistics replaces dir/statistics.yaml.
func SaveStatistics(dir string, stats model.Statistics) error {
	serialized, err := yaml.Marshal(yamlStatistics{
		TotalFocusSessions: stats.TotalFocusSessions,
		TotalFocusMinutes:  stats.TotalFocusMinutes,
		CurrentStreak:      stats.CurrentStreak,
		LastStreakDate:     stats.LastStreakDate,
	})
	if err != nil {
		return fmt.Errorf("marshal statistics yaml: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, StatsFileName), serialized); err != nil {
		return fmt.Errorf("write statistics file: %w", err)
	}
	return nil
}
