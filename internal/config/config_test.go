package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dr-baseline/internal/timewin"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Asia/Taipei", cfg.Timezone)
	assert.Equal(t, 20, cfg.Baseline.MinBaselineDays)
	assert.Equal(t, 90, cfg.Baseline.SearchLimitDays)
	assert.Equal(t, "05-01", cfg.Baseline.SeasonStart)
	assert.Equal(t, "10-31", cfg.Baseline.SeasonEnd)
	require.NoError(t, cfg.Validate())

	blCfg, err := cfg.BaselineEngineConfig()
	require.NoError(t, err)
	assert.Equal(t, timewin.Window{Start: 22 * 60, End: 0}, blCfg.AdjustWindow)
	assert.Equal(t, timewin.MonthDay{Month: time.May, Day: 1}, blCfg.Calendar.SeasonStart)

	rwCfg := cfg.RewardEngineConfig()
	require.Len(t, rwCfg.Tariffs, 3)
	assert.Equal(t, 2.47, rwCfg.Tariffs[0].Rate)
	assert.Equal(t, 0.1, rwCfg.DurationToleranceHours)
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeTempYAML(t, `
timezone: UTC
baseline:
  min_baseline_days: 10
  search_limit_days: 30
  off_peak_days:
    - "2024-06-10"
reward:
  tariffs:
    - duration_hours: 1
      rate: 3.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 10, cfg.Baseline.MinBaselineDays)
	assert.Equal(t, 30, cfg.Baseline.SearchLimitDays)
	// Unset fields fall back to defaults.
	assert.Equal(t, "05-01", cfg.Baseline.SeasonStart)
	assert.Equal(t, "22:00", cfg.Baseline.AdjustWindowStart)

	blCfg, err := cfg.BaselineEngineConfig()
	require.NoError(t, err)
	assert.True(t, blCfg.Calendar.IsOffPeak(timewin.Date{Year: 2024, Month: time.June, Day: 10}))

	rwCfg := cfg.RewardEngineConfig()
	require.Len(t, rwCfg.Tariffs, 1)
	assert.Equal(t, 3.5, rwCfg.Tariffs[0].Rate)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown timezone", content: "timezone: Mars/Olympus\n"},
		{name: "bad season", content: "baseline:\n  season_start: \"13-01\"\n"},
		{name: "bad off-peak date", content: "baseline:\n  off_peak_days: [\"June 10\"]\n"},
		{name: "bad adjust window", content: "baseline:\n  adjust_window_start: \"25:00\"\n"},
		{name: "search limit below minimum", content: "baseline:\n  min_baseline_days: 20\n  search_limit_days: 5\n"},
		{name: "negative tariff", content: "reward:\n  tariffs:\n    - duration_hours: 2\n      rate: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTempYAML(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadUncheckedKeepsPartialConfig(t *testing.T) {
	path := writeTempYAML(t, "baseline:\n  min_baseline_days: 7\n")

	cfg, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Baseline.MinBaselineDays)
	assert.Empty(t, cfg.Timezone)
	assert.Empty(t, cfg.Baseline.SeasonStart)
}
