// Package cliconfig loads CLI configuration with the precedence
// defaults < config file < environment < flags.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/skyviewhq/skyview/internal/app"
	"github.com/skyviewhq/skyview/internal/cache"
)

// Defaults for the fetch pipeline configuration surface.
const (
	DefaultSurvey      = "auto"
	DefaultFOV         = 1.0
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds CLI configuration for skyview.
type Config struct {
	// Survey is a catalog ID, or "auto" for the full fallback chain.
	Survey string

	// FOV is the field of view in arcminutes.
	FOV float64

	// Workers bounds batch download concurrency.
	Workers int

	// CacheCapacity bounds the name-resolution LRU cache.
	CacheCapacity int

	// HTTPTimeout applies per network request.
	HTTPTimeout time.Duration

	// BlankThreshold is the luminance stddev below which a cutout counts
	// as blank.
	BlankThreshold float64

	// ResolverURL overrides the Sesame endpoint; empty uses the default.
	ResolverURL string

	// OutDir is where batch output images are written.
	OutDir string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Survey:         DefaultSurvey,
		FOV:            DefaultFOV,
		Workers:        app.DefaultWorkers,
		CacheCapacity:  cache.DefaultCapacity,
		HTTPTimeout:    DefaultHTTPTimeout,
		BlankThreshold: app.DefaultBlankThreshold,
		OutDir:         ".",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Survey == "" {
		c.Survey = DefaultSurvey
	}
	if c.FOV <= 0 {
		return fmt.Errorf("fov must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("cache capacity must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.BlankThreshold <= 0 {
		return fmt.Errorf("blank threshold must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}
