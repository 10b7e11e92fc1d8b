// Package config holds the configuration data types shared by the loader,
// the rule engine and the reporters. Loading lives in internal/configloader.
package config

import (
	"slices"
	"time"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// severityOrder lists severities from least to most severe.
//
//nolint:gochecknoglobals // Fixed ordering.
var severityOrder = []Severity{SeverityInfo, SeverityWarning, SeverityError}

func (s Severity) IsValid() bool { return s.Rank() > 0 }

// Rank is 1 for info up to 3 for error, and 0 for anything unknown.
func (s Severity) Rank() int { return slices.Index(severityOrder, s) + 1 }

// RuleConfig is one entry under rules. Nil fields inherit.
type RuleConfig struct {
	Enabled  *bool          `json:"enabled,omitempty"  yaml:"enabled,omitempty"`
	Severity *string        `json:"severity,omitempty" yaml:"severity,omitempty"`
	Options  map[string]any `json:"options,omitempty"  yaml:"options,omitempty"`
}

// OutputFormat names a report format.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatHTML    OutputFormat = "html"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat picks how a rule is named in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // heading-increment
	RuleFormatID       RuleFormat = "id"       // HEAD001
	RuleFormatCombined RuleFormat = "combined" // HEAD001/heading-increment
)

// DefaultTimeout is the time budget for one document.
const DefaultTimeout = 30 * time.Second

// DefaultExtensions are linted when no extensions are configured.
func DefaultExtensions() []string {
	return []string{".adoc", ".asciidoc", ".asc"}
}

// Config is the merged configuration. Fields tagged yaml:"-" come only from
// flags and the environment.
type Config struct {
	// SeverityDefault, when set, replaces the default severity of every
	// rule without a severity of its own.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Rules are keyed by rule ID or name until the loader canonicalizes
	// them to IDs.
	Rules map[string]RuleConfig `yaml:"rules"`

	Ignore     []string      `yaml:"ignore,omitempty"`
	Extensions []string      `yaml:"extensions,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`

	Format       OutputFormat `yaml:"-"`
	RuleFormat   RuleFormat   `yaml:"-"`
	Jobs         int          `yaml:"-"` // 0 means one worker per CPU
	EnableRules  []string     `yaml:"-"`
	DisableRules []string     `yaml:"-"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      map[string]RuleConfig{},
		Extensions: DefaultExtensions(),
		Timeout:    DefaultTimeout,
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// EffectiveTimeout is Timeout, or DefaultTimeout when unset.
func (c *Config) EffectiveTimeout() time.Duration {
	if c != nil && c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
