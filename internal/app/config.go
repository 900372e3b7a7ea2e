package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath  string // block placements (.hcl)
	ModulesPath string // plugin manifests (.hcl)
	Theme       string // only list this theme when set
	ListPlugins bool   // list plugin definitions instead of placements

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.LogLevel != "" {
		if _, ok := parseLevel(cfg.LogLevel); !ok {
			return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
		}
	}
	return &cfg, nil
}
