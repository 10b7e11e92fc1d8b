// Package lint provides the rule contract, registry, and evaluation engine for adoclint.
package lint

import (
	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
)

// Finding represents a single lint issue found in a document.
//
// Findings are values: rules create them and the engine collects them.
// Nothing downstream mutates a Finding after evaluation.
type Finding struct {
	// RuleID is the identifier of the rule that produced this finding.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "heading-increment").
	RuleName string

	// Severity indicates the importance of the finding.
	Severity config.Severity

	// Message is the human-readable description of the issue.
	Message string

	// FilePath is the path to the document containing the issue.
	FilePath string

	// Span locates the construct that triggered the finding.
	Span adast.Span

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// Internal marks findings produced by the engine itself (rule faults, timeouts).
	Internal bool
}

// Line returns the 1-based start line.
func (f *Finding) Line() int {
	return f.Span.Start.Line
}

// Column returns the 1-based start column.
func (f *Finding) Column() int {
	return f.Span.Start.Column
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "HEAD001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["structure", "headings"]).
	Tags() []string

	// AppliesTo returns the node kinds this rule wants to be dispatched for.
	AppliesTo() []adast.NodeKind

	// Check inspects one node and returns findings for it.
	//
	// Rules must:
	//   - Return findings for each violation found on this node.
	//   - Return error only for internal failures, not violations.
	//   - Keep per-document state in ctx.State(), never in the rule value.
	Check(ctx *RuleContext, node *adast.Node) ([]Finding, error)
}

// Finisher is implemented by rules that report after the whole tree has
// been dispatched, typically from state gathered during traversal.
type Finisher interface {
	Finish(ctx *RuleContext) ([]Finding, error)
}

// Stateful is implemented by rules that need scoped mutable state during a
// single document run. NewState is called once per run.
type Stateful interface {
	NewState() any
}
