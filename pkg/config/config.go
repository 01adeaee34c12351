// Package config defines core configuration types for mdvet.
// These are pure data structures; rules receive validated snapshots and
// never parse configuration files themselves.
package config

// Severity represents the severity level of a lint violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IsValid returns true if the severity is a known level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning:
		return true
	default:
		return false
	}
}

// Style selects which of the two equivalent emphasis marker styles is
// canonical for a document.
type Style string

const (
	// StyleConsistent defers the choice to whichever style appears first
	// in the document, outside code regions.
	StyleConsistent Style = "consistent"

	// StyleAsterisk forces * / ** markers.
	StyleAsterisk Style = "asterisk"

	// StyleUnderscore forces _ / __ markers.
	StyleUnderscore Style = "underscore"
)

// IsValid returns true if the style is a known value.
func (s Style) IsValid() bool {
	switch s {
	case StyleConsistent, StyleAsterisk, StyleUnderscore:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
// It is an immutable snapshot: changing configuration requires rebuilding
// the rule instance and anything derived from it (compiled patterns,
// violation caches).
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	Options  map[string]any `yaml:"options"`
}

// Config is the root configuration structure for mdvet.
type Config struct {
	// SeverityDefault is the severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           map[string]RuleConfig{},
	}
}

// Rule returns the configuration section for a rule ID, or an empty
// section when none is configured.
func (c *Config) Rule(id string) RuleConfig {
	if c == nil || c.Rules == nil {
		return RuleConfig{}
	}
	return c.Rules[id]
}

// Option returns a rule-specific option value, or the default if not set.
func (rc RuleConfig) Option(key string, defaultValue any) any {
	if rc.Options == nil {
		return defaultValue
	}
	if v, ok := rc.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionString returns a rule-specific string option, or the default.
func (rc RuleConfig) OptionString(key, defaultValue string) string {
	if s, ok := rc.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc RuleConfig) OptionBool(key string, defaultValue bool) bool {
	if b, ok := rc.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the
// default.
func (rc RuleConfig) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []interface{} from YAML parsing.
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
