package configloader

import (
	"fmt"
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// ValidationError is an invalid configuration value. FilePath and Line are
// set when the value came from a config file.
type ValidationError struct {
	Field    string // e.g. "rules.HEAD001.severity" or "extensions[0]"
	Value    any
	Message  string
	FilePath string
	Line     int
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		b.WriteString(e.FilePath)
		if e.Line > 0 {
			b.WriteString(":" + strconv.Itoa(e.Line))
		}
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field + ": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects the problems found in one configuration.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	validFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON, config.FormatHTML, config.FormatSummary,
	}
	validRuleFormats = []config.RuleFormat{
		config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined,
	}
)

const severityChoices = "error, warning, info"

// Validate checks every field of cfg. Errors are in field order; rule
// problems are reported in rule key order.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if s := cfg.SeverityDefault; s != "" && !config.Severity(s).IsValid() {
		result.fail("severity_default", s, "invalid severity %q; must be one of: %s", s, severityChoices)
	}
	if f := cfg.Format; f != "" && !slices.Contains(validFormats, f) {
		result.fail("format", f, "invalid format %q; must be one of: text, table, json, html, summary", f)
	}
	if f := cfg.RuleFormat; f != "" && !slices.Contains(validRuleFormats, f) {
		result.fail("rule_format", f, "invalid rule format %q; must be one of: name, id, combined", f)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Timeout < 0 {
		result.fail("timeout", cfg.Timeout, "timeout must be >= 0 (0 means the default)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	keys := slices.Sorted(maps.Keys(cfg.Rules))
	for _, key := range keys {
		ruleCfg := cfg.Rules[key]
		if _, ok := lint.DefaultRegistry.Get(key); !ok {
			result.warn("rules."+key, key, "unknown rule %q; it will be ignored", key)
		}
		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.fail("rules."+key+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: %s", *ruleCfg.Severity, severityChoices)
		}
	}

	return result
}

// fieldLine finds the line of a dotted field path such as
// "rules.WS001.severity" or "extensions[2]" in a decoded YAML document.
// It returns 0 when the field is not present.
func fieldLine(doc *yaml.Node, field string) int {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	for _, part := range strings.Split(field, ".") {
		name, index := part, -1
		if open := strings.IndexByte(part, '['); open > 0 && strings.HasSuffix(part, "]") {
			name = part[:open]
			if n, err := strconv.Atoi(part[open+1 : len(part)-1]); err == nil {
				index = n
			}
		}

		node = mappingValue(node, name)
		if node == nil {
			return 0
		}
		if index >= 0 {
			if node.Kind != yaml.SequenceNode || index >= len(node.Content) {
				return node.Line
			}
			node = node.Content[index]
		}
	}
	return node.Line
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
