package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeTempConfig(t, `
survey = "sdss"
fov = 3.5
workers = 4
cache_capacity = 64
http_timeout = "10s"
blank_threshold = 5.0
out_dir = "/tmp/cutouts"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Survey != "sdss" {
		t.Errorf("Survey = %q, want sdss", cfg.Survey)
	}
	if cfg.FOV != 3.5 {
		t.Errorf("FOV = %v, want 3.5", cfg.FOV)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.CacheCapacity != 64 {
		t.Errorf("CacheCapacity = %d, want 64", cfg.CacheCapacity)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.BlankThreshold != 5.0 {
		t.Errorf("BlankThreshold = %v, want 5.0", cfg.BlankThreshold)
	}
	if cfg.OutDir != "/tmp/cutouts" {
		t.Errorf("OutDir = %q, want /tmp/cutouts", cfg.OutDir)
	}
}

func TestApplyFileConfigRespectsChangedFlags(t *testing.T) {
	fc := FileConfig{Survey: "sdss", Workers: 4}
	cfg := DefaultConfig()
	cfg.Survey = "galex"
	cfg.Workers = 16

	changed := map[string]bool{"survey": true, "workers": true}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Survey != "galex" {
		t.Errorf("Survey = %q, flag value should win over file", cfg.Survey)
	}
	if cfg.Workers != 16 {
		t.Errorf("Workers = %d, flag value should win over file", cfg.Workers)
	}
}

func TestApplyFileConfigBadDuration(t *testing.T) {
	fc := FileConfig{HTTPTimeout: "not-a-duration"}
	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err == nil {
		t.Error("ApplyFileConfig accepted malformed duration")
	}
}

func TestApplyEnvConfigPrecedence(t *testing.T) {
	t.Setenv("SKYVIEW_SURVEY", "panstarrs")
	t.Setenv("SKYVIEW_WORKERS", "2")
	t.Setenv("SKYVIEW_FOV", "5.0")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{"workers": true}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.Survey != "panstarrs" {
		t.Errorf("Survey = %q, want panstarrs from env", cfg.Survey)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, explicit flag should win over env", cfg.Workers)
	}
	if cfg.FOV != 5.0 {
		t.Errorf("FOV = %v, want 5.0 from env", cfg.FOV)
	}
}
