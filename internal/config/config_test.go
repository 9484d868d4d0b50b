package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validSchedule = `
zones:
  ingest:
    role: client
    target: process
  process:
    role: server
    listen_source: ingest
rules:
  - source: ingest
    destination: process
    port: 9101
    start_sec: 0
    end_sec: 15
`

func writeSchedule(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write schedule: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	sched, err := Load(writeSchedule(t, validSchedule), "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(sched.Rules) != 1 || sched.Rules[0].Port != 9101 {
		t.Errorf("unexpected rules: %+v", sched.Rules)
	}
	zc, ok := sched.Zone("ingest")
	if !ok || zc.Target != "process" {
		t.Errorf("unexpected zone config: %+v", zc)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), ""); err == nil {
		t.Fatal("expected error for missing schedule")
	}
}

func TestLoad_Malformed(t *testing.T) {
	if _, err := Load(writeSchedule(t, "zones: [not: a: map"), ""); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_RejectsWindowBeyondMinute(t *testing.T) {
	bad := `
zones:
  ingest:
    role: client
    target: process
rules:
  - source: ingest
    destination: process
    port: 9101
    start_sec: 50
    end_sec: 70
`
	if _, err := Load(writeSchedule(t, bad), ""); err == nil {
		t.Fatal("expected end_sec beyond 60 to be rejected at load time")
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("ZONE_NAME", "ingest")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("ROGUE_PROBABILITY", "0.5")

	s, err := SettingsFromEnv()
	if err != nil {
		t.Fatalf("SettingsFromEnv: %v", err)
	}
	if s.ZoneName != "ingest" {
		t.Errorf("ZoneName = %q", s.ZoneName)
	}
	if s.TickInterval.String() != "250ms" {
		t.Errorf("TickInterval = %s", s.TickInterval)
	}
	if s.RogueProbability != 0.5 {
		t.Errorf("RogueProbability = %g", s.RogueProbability)
	}
	if s.ConnectTimeout <= 0 {
		t.Errorf("ConnectTimeout default missing: %s", s.ConnectTimeout)
	}
}

func TestSettingsFromEnv_Invalid(t *testing.T) {
	t.Setenv("ROGUE_PROBABILITY", "1.5")
	if _, err := SettingsFromEnv(); err == nil {
		t.Fatal("expected error for rogue probability outside [0,1]")
	}
}
