package lint

import (
	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
)

// FindingBuilder helps construct Finding values.
type FindingBuilder struct {
	finding Finding
}

// NewFinding starts a finding covering node. A nil node gives an empty span.
func NewFinding(ruleID string, node *adast.Node, message string) *FindingBuilder {
	var span adast.Span
	if node != nil {
		span = node.Span
	}
	return NewFindingAt(ruleID, span, message)
}

// NewFindingAt starts a finding at span.
func NewFindingAt(ruleID string, span adast.Span, message string) *FindingBuilder {
	return &FindingBuilder{finding: Finding{RuleID: ruleID, Message: message, Span: span}}
}

// WithSeverity sets the severity.
func (b *FindingBuilder) WithSeverity(s config.Severity) *FindingBuilder {
	b.finding.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *FindingBuilder) WithSuggestion(s string) *FindingBuilder {
	b.finding.Suggestion = s
	return b
}

// Build returns the constructed Finding.
func (b *FindingBuilder) Build() Finding {
	return b.finding
}
