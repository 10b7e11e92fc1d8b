package lint_test

import (
	"testing"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

const (
	testRuleID1 = "HEAD001"
	testRuleID2 = "HEAD002"
)

// testRule is a simple rule implementation for testing.
type testRule struct {
	lint.BaseRule
	enabled bool
}

func (r *testRule) DefaultEnabled() bool { return r.enabled }

func newTestRule(id string) *testRule {
	return &testRule{
		BaseRule: lint.NewBaseRule(id, id+"-name", "", nil),
		enabled:  true,
	}
}

func ptr[T any](v T) *T { return &v }

func TestResolveRules_Empty(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(lint.NewRegistry(), config.NewConfig())

	if len(resolved) != 0 {
		t.Errorf("expected 0 rules, got %d", len(resolved))
	}
}

func TestResolveRules_DefaultEnabled(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID2))
	registry.Register(newTestRule(testRuleID1))

	resolved := lint.ResolveRules(registry, config.NewConfig())

	if len(resolved) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(resolved))
	}
	// Registration order, not ID order.
	if resolved[0].Rule.ID() != testRuleID2 {
		t.Errorf("first rule = %s, want %s", resolved[0].Rule.ID(), testRuleID2)
	}
	if resolved[0].Severity != config.SeverityWarning || resolved[0].SeverityOverride {
		t.Errorf("severity = %s override = %v", resolved[0].Severity, resolved[0].SeverityOverride)
	}
}

func TestResolveRules_DisabledByDefault(t *testing.T) {
	t.Parallel()

	rule := newTestRule(testRuleID1)
	rule.enabled = false

	registry := lint.NewRegistry()
	registry.Register(rule)

	if resolved := lint.ResolveRules(registry, config.NewConfig()); len(resolved) != 0 {
		t.Fatalf("disabled-by-default rule resolved: %v", resolved)
	}

	cfg := config.NewConfig()
	cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(true)}
	if resolved := lint.ResolveRules(registry, cfg); len(resolved) != 1 {
		t.Fatalf("config should enable the rule, got %d", len(resolved))
	}
}

func TestResolveRules_DisableViaConfig(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))
	registry.Register(newTestRule(testRuleID2))

	cfg := config.NewConfig()
	cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(false)}

	resolved := lint.ResolveRules(registry, cfg)

	if len(resolved) != 1 || resolved[0].Rule.ID() != testRuleID2 {
		t.Fatalf("resolved = %v, want only %s", resolved, testRuleID2)
	}
}

func TestResolveRules_CLIEnableDisable(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	off := newTestRule(testRuleID1)
	off.enabled = false
	registry.Register(off)
	registry.Register(newTestRule(testRuleID2))

	cfg := config.NewConfig()
	cfg.EnableRules = []string{testRuleID1 + "-name"}
	cfg.DisableRules = []string{testRuleID2}
	cfg.Rules[testRuleID2] = config.RuleConfig{Enabled: ptr(true)}

	resolved := lint.ResolveRules(registry, cfg)

	if len(resolved) != 1 || resolved[0].Rule.ID() != testRuleID1 {
		t.Fatalf("resolved = %v, want only %s", resolved, testRuleID1)
	}
}

func TestResolveRules_SeverityOverride(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))
	registry.Register(newTestRule(testRuleID2))

	cfg := config.NewConfig()
	cfg.Rules[testRuleID1] = config.RuleConfig{Severity: ptr("error")}
	cfg.Rules[testRuleID2] = config.RuleConfig{Severity: ptr("bogus")}

	resolved := lint.ResolveRules(registry, cfg)

	if resolved[0].Severity != config.SeverityError || !resolved[0].SeverityOverride {
		t.Errorf("rule 1 severity = %s override = %v", resolved[0].Severity, resolved[0].SeverityOverride)
	}
	if resolved[1].Severity != config.SeverityWarning || resolved[1].SeverityOverride {
		t.Errorf("invalid severity should be ignored, got %s", resolved[1].Severity)
	}
}

func TestResolveRules_SeverityDefault(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))
	registry.Register(newTestRule(testRuleID2))

	cfg := config.NewConfig()
	cfg.SeverityDefault = "info"
	cfg.Rules[testRuleID2] = config.RuleConfig{Severity: ptr("error")}

	resolved := lint.ResolveRules(registry, cfg)

	if resolved[0].Severity != config.SeverityInfo {
		t.Errorf("rule 1 severity = %s, want info", resolved[0].Severity)
	}
	if resolved[1].Severity != config.SeverityError {
		t.Errorf("per-rule severity should beat the default, got %s", resolved[1].Severity)
	}
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))

	resolved := lint.ResolveRules(registry, nil)

	if len(resolved) != 1 || resolved[0].Config != nil {
		t.Errorf("resolved = %+v", resolved)
	}
}

func TestResolvedRule_ConfigPresent(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))

	cfg := config.NewConfig()
	cfg.Rules[testRuleID1] = config.RuleConfig{Options: map[string]any{"maximum": 3}}

	resolved := lint.ResolveRules(registry, cfg)

	if resolved[0].Config == nil || resolved[0].Config.Options["maximum"] != 3 {
		t.Errorf("Config = %+v", resolved[0].Config)
	}
}
