package rules

import (
	"github.com/veldtlab/mdvet/pkg/config"
	"github.com/veldtlab/mdvet/pkg/lint"
)

// NewRegistry builds a registry with every built-in rule constructed from
// the given configuration. Rules hold their configuration as an immutable
// snapshot: changing configuration means building a fresh registry.
func NewRegistry(cfg *config.Config) *lint.Registry {
	if cfg == nil {
		cfg = config.Default()
	}

	reg := lint.NewRegistry()

	pn := cfg.Rule("MV044")
	reg.Register(NewProperNamesRule(ProperNamesOptions{
		Names:              pn.OptionStringSlice("names", nil),
		CodeBlocksExcluded: pn.OptionBool("code_blocks_excluded", true),
		Severity:           ruleSeverity(cfg, pn),
	}))

	ss := cfg.Rule("MV050")
	reg.Register(NewStrongStyleRule(StrongStyleOptions{
		Style:    config.Style(ss.OptionString("style", string(config.StyleConsistent))),
		Severity: ruleSeverity(cfg, ss),
	}))

	es := cfg.Rule("MV049")
	reg.Register(NewEmphasisStyleRule(EmphasisStyleOptions{
		Style:    config.Style(es.OptionString("style", string(config.StyleConsistent))),
		Severity: ruleSeverity(cfg, es),
	}))

	fl := cfg.Rule("MV040")
	reg.Register(NewFencedLanguageRule(FencedLanguageOptions{
		Severity: ruleSeverity(cfg, fl),
	}))

	return reg
}

// Enabled reports whether a rule is enabled under the configuration.
// Rules default to enabled.
func Enabled(cfg *config.Config, id string) bool {
	if cfg == nil {
		return true
	}
	rc := cfg.Rule(id)
	return rc.Enabled == nil || *rc.Enabled
}

// ruleSeverity resolves the severity for a rule section, falling back to
// the configuration default.
func ruleSeverity(cfg *config.Config, rc config.RuleConfig) config.Severity {
	if rc.Severity != nil {
		return config.Severity(*rc.Severity)
	}
	if cfg.SeverityDefault != "" {
		return config.Severity(cfg.SeverityDefault)
	}
	return config.SeverityWarning
}
