package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ProjectPath is a .hcl file or a directory of .hcl files.
	ProjectPath string

	// Object narrows the report to a single object by name. Empty means
	// report on every object.
	Object string

	// All disables the locked-milestone filter: accessibility is reported
	// as if every milestone were already unlocked.
	All bool

	// StepCap overrides the engine's worklist pop cap. Zero keeps the default.
	StepCap int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
