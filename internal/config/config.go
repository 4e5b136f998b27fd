package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dr-baseline/internal/baseline"
	"dr-baseline/internal/reward"
	"dr-baseline/internal/timewin"
)

// Config is the on-disk configuration shape (YAML). Zero values are
// filled from the contractual defaults, so a partial file only needs to
// name what it overrides.
type Config struct {
	// Timezone is the one canonical IANA zone for all comparisons.
	Timezone string         `yaml:"timezone"`
	Baseline BaselineConfig `yaml:"baseline"`
	Reward   RewardConfig   `yaml:"reward"`
}

type BaselineConfig struct {
	MinBaselineDays int    `yaml:"min_baseline_days"`
	SearchLimitDays int    `yaml:"search_limit_days"`
	SeasonStart     string `yaml:"season_start"` // MM-DD
	SeasonEnd       string `yaml:"season_end"`   // MM-DD
	// Adjustment window bounds, HH:MM.
	AdjustWindowStart string `yaml:"adjust_window_start"`
	AdjustWindowEnd   string `yaml:"adjust_window_end"`
	// OffPeakDays are special non-qualifying dates (YYYY-MM-DD) from the
	// utility's time-of-use calendar. Sundays are always off-peak.
	OffPeakDays []string `yaml:"off_peak_days"`
}

type RewardConfig struct {
	Tariffs                []TariffConfig `yaml:"tariffs"`
	DurationToleranceHours float64        `yaml:"duration_tolerance_hours"`
}

type TariffConfig struct {
	DurationHours float64 `yaml:"duration_hours"`
	Rate          float64 `yaml:"rate"`
}

// Default returns the contractual defaults: Asia/Taipei, 20-of-90 day
// selection, May 1 - Oct 31 season, 22:00-00:00 adjustment window, and
// the three-duration tariff table.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Asia/Taipei"
	}
	b := &c.Baseline
	if b.MinBaselineDays == 0 {
		b.MinBaselineDays = 20
	}
	if b.SearchLimitDays == 0 {
		b.SearchLimitDays = 90
	}
	if b.SeasonStart == "" {
		b.SeasonStart = "05-01"
	}
	if b.SeasonEnd == "" {
		b.SeasonEnd = "10-31"
	}
	if b.AdjustWindowStart == "" {
		b.AdjustWindowStart = "22:00"
	}
	if b.AdjustWindowEnd == "" {
		b.AdjustWindowEnd = "00:00"
	}
	r := &c.Reward
	if len(r.Tariffs) == 0 {
		for _, t := range reward.DefaultTariffs() {
			r.Tariffs = append(r.Tariffs, TariffConfig{DurationHours: t.DurationHours, Rate: t.Rate})
		}
	}
	if r.DurationToleranceHours == 0 {
		r.DurationToleranceHours = 0.1
	}
}

// Load reads, defaults, and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config without defaulting or validation.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	// Validate by constructing the engine configs.
	if _, err := c.BaselineEngineConfig(); err != nil {
		return fmt.Errorf("baseline config invalid: %w", err)
	}
	if err := c.RewardEngineConfig().Validate(); err != nil {
		return fmt.Errorf("reward config invalid: %w", err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BaselineEngineConfig converts the on-disk shape into the engine's config.
func (c *Config) BaselineEngineConfig() (baseline.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return baseline.Config{}, err
	}

	seasonStart, err := timewin.ParseMonthDay(c.Baseline.SeasonStart)
	if err != nil {
		return baseline.Config{}, fmt.Errorf("season_start: %w", err)
	}
	seasonEnd, err := timewin.ParseMonthDay(c.Baseline.SeasonEnd)
	if err != nil {
		return baseline.Config{}, fmt.Errorf("season_end: %w", err)
	}

	var offPeak []timewin.Date
	for _, s := range c.Baseline.OffPeakDays {
		d, err := timewin.ParseDate(s)
		if err != nil {
			return baseline.Config{}, fmt.Errorf("off_peak_days: %w", err)
		}
		offPeak = append(offPeak, d)
	}

	adjStart, err := timewin.ParseClock(c.Baseline.AdjustWindowStart)
	if err != nil {
		return baseline.Config{}, fmt.Errorf("adjust_window_start: %w", err)
	}
	adjEnd, err := timewin.ParseClock(c.Baseline.AdjustWindowEnd)
	if err != nil {
		return baseline.Config{}, fmt.Errorf("adjust_window_end: %w", err)
	}

	cfg := baseline.Config{
		Location:        loc,
		MinBaselineDays: c.Baseline.MinBaselineDays,
		SearchLimitDays: c.Baseline.SearchLimitDays,
		Calendar:        timewin.NewCalendar(seasonStart, seasonEnd, offPeak),
		AdjustWindow:    timewin.Window{Start: adjStart, End: adjEnd},
	}
	if err := cfg.Validate(); err != nil {
		return baseline.Config{}, err
	}
	return cfg, nil
}

// RewardEngineConfig converts the on-disk shape into the reward engine's config.
func (c *Config) RewardEngineConfig() reward.Config {
	cfg := reward.Config{DurationToleranceHours: c.Reward.DurationToleranceHours}
	for _, t := range c.Reward.Tariffs {
		cfg.Tariffs = append(cfg.Tariffs, reward.Tariff{DurationHours: t.DurationHours, Rate: t.Rate})
	}
	return cfg
}
