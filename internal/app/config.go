package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // root of the .hcl configuration
	PropsFile  string // optional YAML file with extra property declarations
	OutDir     string // where rendered descriptors and the plan are written

	LogFormat   string
	LogLevel    string
	WorkerCount int
	CheckOnly   bool // validate, don't render or emit
	Watch       bool // re-run the pipeline when configuration changes
}

// NewConfig validates a Config and returns it ready for use.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "plan"
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
