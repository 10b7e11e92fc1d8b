package lint

import (
	"slices"

	"github.com/yaklabco/adoclint/pkg/config"
)

// ResolvedRule is a rule with its effective settings for one run.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity

	// SeverityOverride means configuration chose Severity, so it replaces
	// any severity the rule put on its own findings.
	SeverityOverride bool

	// Config is nil when the rule has no entry under rules.
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules in registration order.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var enabled []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolveRule(rule, cfg); rr.Enabled {
			enabled = append(enabled, rr)
		}
	}
	return enabled
}

// resolveRule layers, lowest first: the rule's defaults, severity_default,
// the rule's own entry, then --enable and --disable.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{Rule: rule, Enabled: rule.DefaultEnabled(), Severity: rule.DefaultSeverity()}
	if cfg == nil {
		return rr
	}

	rr.overrideSeverity(cfg.SeverityDefault)

	if entry, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &entry
		if entry.Enabled != nil {
			rr.Enabled = *entry.Enabled
		}
		if entry.Severity != nil {
			rr.overrideSeverity(*entry.Severity)
		}
	}

	switch {
	case names(cfg.DisableRules, rule):
		rr.Enabled = false
	case names(cfg.EnableRules, rule):
		rr.Enabled = true
	}
	return rr
}

// overrideSeverity ignores values that are not a known severity.
func (rr *ResolvedRule) overrideSeverity(value string) {
	if sev := config.Severity(value); sev.IsValid() {
		rr.Severity = sev
		rr.SeverityOverride = true
	}
}

func names(keys []string, rule Rule) bool {
	return slices.Contains(keys, rule.ID()) || slices.Contains(keys, rule.Name())
}
