package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `scenario:
  hours_per_day: 7
  start_date: "2026-09-01"
  auto_chain: true
  pool_by_category: true
  capacities:
    "1": 2
    "2": 1
  target_days: 45
  enforce_target: true
ingest:
  csv_path: "data/plan.csv"
metrics:
  sinks:
    - type: "nop"
  prometheus_addr: ":9090"
api:
  addr: ":8088"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"hours_per_day", cfg.Scenario.HoursPerDay, 7.0},
		{"start_date", cfg.Scenario.StartDate, "2026-09-01"},
		{"auto_chain", cfg.Scenario.AutoChain, true},
		{"pool_by_category", cfg.Scenario.PoolByCategory, true},
		{"capacity_1", cfg.Scenario.Capacities["1"], 2},
		{"target_days", cfg.Scenario.TargetDays, 45.0},
		{"enforce_target", cfg.Scenario.EnforceTarget, true},
		{"csv_path", cfg.Ingest.CSVPath, "data/plan.csv"},
		{"notes_dir_default", cfg.Ingest.NotesDir, "data"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9090"},
		{"api_addr", cfg.API.Addr, ":8088"},
		{"suggest_steps_default", cfg.Scenario.MaxSuggestSteps, 30},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"scenario":{"target_days":30},"ingest":{"csv_path":"data/plan.csv"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CS_SCENARIO__TARGET_DAYS", "12")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Scenario.TargetDays != 12 {
		t.Fatalf("target_days = %v, want env override 12", cfg.Scenario.TargetDays)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadValidatesScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `scenario:
  hours_per_day: -4
ingest:
  csv_path: "data/plan.csv"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRequiresCSVPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("scenario: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected csv_path error")
	}
}
