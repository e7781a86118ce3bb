package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SKYVIEW_*).
// Environment values override the config file but lose to explicit flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("survey", os.Getenv("SKYVIEW_SURVEY"), &cfg.Survey)
	s.setString("resolver-url", os.Getenv("SKYVIEW_RESOLVER_URL"), &cfg.ResolverURL)
	s.setString("out-dir", os.Getenv("SKYVIEW_OUT_DIR"), &cfg.OutDir)

	if err := s.setFloatFromString("fov", os.Getenv("SKYVIEW_FOV"), &cfg.FOV); err != nil {
		return err
	}
	if err := s.setFloatFromString("blank-threshold", os.Getenv("SKYVIEW_BLANK_THRESHOLD"), &cfg.BlankThreshold); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("SKYVIEW_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setIntFromString("cache-capacity", os.Getenv("SKYVIEW_CACHE_CAPACITY"), &cfg.CacheCapacity); err != nil {
		return err
	}
	return s.setDuration("timeout", os.Getenv("SKYVIEW_HTTP_TIMEOUT"), &cfg.HTTPTimeout)
}
