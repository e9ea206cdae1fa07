// Package config loads the optional ~/.neurosync.yaml file. Every
// progression threshold is configuration, not hard fact; a missing file
// means baseline behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath string `yaml:"db_path"`

	BaseXP         int `yaml:"base_xp"`
	MissionXP      int `yaml:"mission_xp"`
	XPPerLevel     int `yaml:"xp_per_level"`
	MapEveryLevels int `yaml:"map_every_levels"`

	DueSoonMinutes  int `yaml:"due_soon_minutes"`
	DailyMissionCap int `yaml:"daily_mission_cap"`

	EarlyHour  int `yaml:"early_hour"`
	EarlyCount int `yaml:"early_count"`

	StreakDays         int `yaml:"streak_days"`
	StreakMinFulfilled int `yaml:"streak_min_fulfilled"`
}

func Default() Config {
	return Config{
		BaseXP:             10,
		MissionXP:          15,
		XPPerLevel:         100,
		MapEveryLevels:     1,
		DueSoonMinutes:     60,
		DailyMissionCap:    5,
		EarlyHour:          9,
		EarlyCount:         3,
		StreakDays:         7,
		StreakMinFulfilled: 5,
	}
}

// DefaultPath returns the user-level config location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".neurosync.yaml"), nil
}

// Load reads the config at path, falling back to defaults when the file does
// not exist. Fields left at zero in the file also fall back.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.merge(file)
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.BaseXP > 0 {
		c.BaseXP = o.BaseXP
	}
	if o.MissionXP > 0 {
		c.MissionXP = o.MissionXP
	}
	if o.XPPerLevel > 0 {
		c.XPPerLevel = o.XPPerLevel
	}
	if o.MapEveryLevels > 0 {
		c.MapEveryLevels = o.MapEveryLevels
	}
	if o.DueSoonMinutes > 0 {
		c.DueSoonMinutes = o.DueSoonMinutes
	}
	if o.DailyMissionCap > 0 {
		c.DailyMissionCap = o.DailyMissionCap
	}
	if o.EarlyHour > 0 {
		c.EarlyHour = o.EarlyHour
	}
	if o.EarlyCount > 0 {
		c.EarlyCount = o.EarlyCount
	}
	if o.StreakDays > 0 {
		c.StreakDays = o.StreakDays
	}
	if o.StreakMinFulfilled > 0 {
		c.StreakMinFulfilled = o.StreakMinFulfilled
	}
}

func (c Config) validate() error {
	if c.XPPerLevel <= 0 {
		return fmt.Errorf("xp_per_level must be positive")
	}
	if c.DailyMissionCap <= 0 {
		return fmt.Errorf("daily_mission_cap must be positive")
	}
	return nil
}
