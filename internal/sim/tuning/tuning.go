// Package tuning carries the process-level knobs: tick cadence, spawn
// randomization, snapshot and records paths. Values come from an optional
// YAML file and are overridden by DOGSTORY_* environment variables.
package tuning

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Tuning struct {
	// TickPeriodMs drives the internal ticker; zero means time advances
	// only through the explicit tick API.
	TickPeriodMs int `yaml:"tick_period_ms" env:"TICK_PERIOD_MS"`

	RandomizeSpawns bool `yaml:"randomize_spawns" env:"RANDOMIZE_SPAWNS"`

	SnapshotPath     string `yaml:"snapshot_path" env:"SNAPSHOT_PATH"`
	SnapshotPeriodMs int    `yaml:"snapshot_period_ms" env:"SNAPSHOT_PERIOD_MS"`

	RecordsPath      string `yaml:"records_path" env:"RECORDS_PATH"`
	RecordsTimeoutMs int    `yaml:"records_timeout_ms" env:"RECORDS_TIMEOUT_MS"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Load reads the YAML file when path is non-empty, then applies the
// environment on top. An empty path skips the file; the result is then
// defaults plus environment.
func Load(path string) (Tuning, error) {
	var t Tuning
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return t, fmt.Errorf("reading tuning: %w", err)
		}
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return t, fmt.Errorf("tuning yaml: %w", err)
		}
	}
	if err := env.ParseWithOptions(&t, env.Options{Prefix: "DOGSTORY_"}); err != nil {
		return t, fmt.Errorf("tuning env: %w", err)
	}
	t.applyDefaults()
	return t, nil
}

func (t *Tuning) applyDefaults() {
	if t.RecordsPath == "" {
		t.RecordsPath = "records.db"
	}
	if t.RecordsTimeoutMs <= 0 {
		t.RecordsTimeoutMs = 500
	}
	if t.LogLevel == "" {
		t.LogLevel = "info"
	}
}
