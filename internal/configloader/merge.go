package configloader

import (
	"maps"

	"github.com/yaklabco/adoclint/pkg/config"
)

// merge overlays top onto base and returns a new Config. A zero scalar or a
// nil slice in top leaves base's value alone; rule settings merge field by
// field.
func merge(base, top *config.Config) *config.Config {
	switch {
	case base == nil:
		return top.Clone()
	case top == nil:
		return base
	}

	out := *base
	overlay(&out.SeverityDefault, top.SeverityDefault)
	overlay(&out.Format, top.Format)
	overlay(&out.RuleFormat, top.RuleFormat)
	overlay(&out.Jobs, top.Jobs)
	overlay(&out.Timeout, top.Timeout)

	overlaySlice(&out.Ignore, top.Ignore)
	overlaySlice(&out.Extensions, top.Extensions)
	overlaySlice(&out.EnableRules, top.EnableRules)
	overlaySlice(&out.DisableRules, top.DisableRules)

	if base.Rules != nil || top.Rules != nil {
		out.Rules = maps.Clone(base.Rules)
		if out.Rules == nil {
			out.Rules = make(map[string]config.RuleConfig, len(top.Rules))
		}
		for id, rc := range top.Rules {
			out.Rules[id] = mergeRuleConfig(out.Rules[id], rc)
		}
	}

	return &out
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func overlaySlice[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

// mergeRuleConfig overlays top's set fields onto base. Options are merged
// key by key into a new map.
func mergeRuleConfig(base, top config.RuleConfig) config.RuleConfig {
	if top.Enabled != nil {
		base.Enabled = top.Enabled
	}
	if top.Severity != nil {
		base.Severity = top.Severity
	}
	if top.Options != nil {
		options := maps.Clone(base.Options)
		if options == nil {
			options = make(map[string]any, len(top.Options))
		}
		maps.Copy(options, top.Options)
		base.Options = options
	}
	return base
}

// MergeAll folds configs left to right; later configs win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
