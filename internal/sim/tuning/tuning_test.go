package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TickPeriodMs != 0 {
		t.Errorf("TickPeriodMs = %d, want 0", got.TickPeriodMs)
	}
	if got.RecordsPath != "records.db" {
		t.Errorf("RecordsPath = %q", got.RecordsPath)
	}
	if got.RecordsTimeoutMs != 500 {
		t.Errorf("RecordsTimeoutMs = %d", got.RecordsTimeoutMs)
	}
	if got.LogLevel != "info" {
		t.Errorf("LogLevel = %q", got.LogLevel)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeTuning(t, `
tick_period_ms: 50
randomize_spawns: true
snapshot_path: state.snap
snapshot_period_ms: 2000
records_path: scores.db
log_level: debug
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TickPeriodMs != 50 {
		t.Errorf("TickPeriodMs = %d", got.TickPeriodMs)
	}
	if !got.RandomizeSpawns {
		t.Error("RandomizeSpawns = false")
	}
	if got.SnapshotPath != "state.snap" || got.SnapshotPeriodMs != 2000 {
		t.Errorf("snapshot settings = %q, %d", got.SnapshotPath, got.SnapshotPeriodMs)
	}
	if got.RecordsPath != "scores.db" {
		t.Errorf("RecordsPath = %q", got.RecordsPath)
	}
	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", got.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeTuning(t, "tick_period_ms: 50\nlog_level: debug\n")
	t.Setenv("DOGSTORY_TICK_PERIOD_MS", "100")
	t.Setenv("DOGSTORY_SNAPSHOT_PATH", "/var/lib/dogstory/state.snap")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TickPeriodMs != 100 {
		t.Errorf("TickPeriodMs = %d, want env override 100", got.TickPeriodMs)
	}
	if got.SnapshotPath != "/var/lib/dogstory/state.snap" {
		t.Errorf("SnapshotPath = %q", got.SnapshotPath)
	}
	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, file value expected", got.LogLevel)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing tuning file accepted")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeTuning(t, "tick_period_ms: [broken\n")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}
