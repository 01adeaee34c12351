package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SeverityDefault != "" && !Severity(c.SeverityDefault).IsValid() {
		return fmt.Errorf("invalid severity_default %q", c.SeverityDefault)
	}

	for id, rc := range c.Rules {
		if rc.Severity != nil && !Severity(*rc.Severity).IsValid() {
			return fmt.Errorf("rule %s: invalid severity %q", id, *rc.Severity)
		}
	}

	return nil
}
