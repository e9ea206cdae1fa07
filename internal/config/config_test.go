package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "neurosync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/custom.db
mission_xp: 20
daily_mission_cap: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.MissionXP)
	assert.Equal(t, 3, cfg.DailyMissionCap)

	// Everything the file leaves out keeps its default.
	assert.Equal(t, 10, cfg.BaseXP)
	assert.Equal(t, 100, cfg.XPPerLevel)
	assert.Equal(t, 60, cfg.DueSoonMinutes)
	assert.Equal(t, 9, cfg.EarlyHour)
}

func TestLoadZeroFieldsFallBack(t *testing.T) {
	path := writeConfig(t, `
base_xp: 0
streak_days: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BaseXP)
	assert.Equal(t, 7, cfg.StreakDays)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "base_xp: [not a number\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
