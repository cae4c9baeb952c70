// Package config holds the service configuration. Values come from
// Default(), optionally a JSON file via Load, then HELPQUEUE_* environment
// variables via FromEnv, and finally command-line flags.
//
//	cfg := config.Default()
//	if path != "" {
//	    cfg, err = config.Load(path)
//	}
//	if err := config.FromEnv(&cfg); err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
package config
