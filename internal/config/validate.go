package config

import (
	"errors"
	"fmt"
	"strings"
)

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for missing or contradictory values.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must be set")
	}
	if c.Logging.Format != "" {
		if _, ok := validLogFormats[c.Logging.Format]; !ok {
			problems = append(problems, fmt.Sprintf("logging.format %q is not one of console, json", c.Logging.Format))
		}
	}
	if c.Logging.Level != "" {
		if _, ok := validLogLevels[c.Logging.Level]; !ok {
			problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
		}
	}
	if c.Workspace.DefaultName == "" {
		problems = append(problems, "workspace.default_name must not be empty")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
