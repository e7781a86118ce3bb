package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Survey         string  `toml:"survey"`
	FOV            float64 `toml:"fov"`
	Workers        int     `toml:"workers"`
	CacheCapacity  int     `toml:"cache_capacity"`
	HTTPTimeout    string  `toml:"http_timeout"`
	BlankThreshold float64 `toml:"blank_threshold"`
	ResolverURL    string  `toml:"resolver_url"`
	OutDir         string  `toml:"out_dir"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.skyview/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".skyview", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("survey", fc.Survey, &cfg.Survey)
	s.setString("resolver-url", fc.ResolverURL, &cfg.ResolverURL)
	s.setString("out-dir", fc.OutDir, &cfg.OutDir)

	s.setFloat("fov", fc.FOV, &cfg.FOV)
	s.setFloat("blank-threshold", fc.BlankThreshold, &cfg.BlankThreshold)

	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setInt("cache-capacity", fc.CacheCapacity, &cfg.CacheCapacity)

	return s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
