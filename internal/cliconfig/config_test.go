package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Survey != "auto" {
		t.Errorf("Survey = %q, want auto", cfg.Survey)
	}
	if cfg.FOV != 1.0 {
		t.Errorf("FOV = %v, want 1.0", cfg.FOV)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.CacheCapacity != 256 {
		t.Errorf("CacheCapacity = %d, want 256", cfg.CacheCapacity)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate on defaults: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fov", func(c *Config) { c.FOV = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"zero cache", func(c *Config) { c.CacheCapacity = 0 }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"zero threshold", func(c *Config) { c.BlankThreshold = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted invalid config")
			}
		})
	}
}

func TestValidateDefaultsEmptySurvey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Survey = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Survey != "auto" {
		t.Errorf("Survey = %q, want auto", cfg.Survey)
	}
}
