package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
)

// Evaluation contains the results of evaluating rules against one document.
type Evaluation struct {
	// Document is the parsed document.
	Document *adast.Document

	// Findings contains all issues found, sorted and deduplicated.
	Findings []Finding

	// Diagnostics summarizes the dispatch loop.
	Diagnostics Diagnostics
}

// HasIssues returns true if any findings were produced.
func (ev *Evaluation) HasIssues() bool {
	return len(ev.Findings) > 0
}

// IssueCount returns the total number of findings.
func (ev *Evaluation) IssueCount() int {
	return len(ev.Findings)
}

// Diagnostics summarizes one evaluation run.
type Diagnostics struct {
	// Dispatches counts Check invocations that actually ran.
	Dispatches int

	// Faulted lists rule IDs that faulted, in fault order.
	Faulted []string

	// Skipped counts dispatches withheld from each faulted rule.
	Skipped map[string]int
}

// InvariantError reports a corrupted document tree. It is the only error
// Evaluate returns for a document it received.
type InvariantError struct {
	// Path is the document path.
	Path string

	// NodePath locates the offending node, e.g. "Document/Section[0]/Block[2]".
	NodePath string

	// Reason describes the violated invariant.
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: tree invariant violated at %s: %s", e.Path, e.NodePath, e.Reason)
}

// Engine coordinates parsing and rule evaluation.
type Engine struct {
	// Parser parses AsciiDoc files into Documents.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintDocument parses content and evaluates the enabled rules against it.
func (e *Engine) LintDocument(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*Evaluation, error) {
	doc, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return e.Evaluate(ctx, doc, cfg, ResolveRules(e.Registry, cfg))
}

// ruleRun is the per-document state of one resolved rule.
type ruleRun struct {
	resolved ResolvedRule
	ctx      *RuleContext
	faulted  bool
	findings []Finding
}

// Evaluate walks doc once in pre-order and dispatches each node to the rules
// that apply to its kind, in resolved order. A rule that returns an error or
// panics yields one internal-error finding and is skipped for the rest of
// the run. Findings are sorted by (line, column, rule ID) and deduplicated
// on (rule ID, span, message).
func (e *Engine) Evaluate(
	ctx context.Context,
	doc *adast.Document,
	cfg *config.Config,
	resolved []ResolvedRule,
) (*Evaluation, error) {
	eval := &Evaluation{
		Document:    doc,
		Diagnostics: Diagnostics{Skipped: make(map[string]int)},
	}
	if doc == nil || doc.Root == nil {
		return eval, &InvariantError{Reason: "document has no root"}
	}

	runs := make([]*ruleRun, 0, len(resolved))
	dispatch := make(map[adast.NodeKind][]*ruleRun)
	for _, rr := range resolved {
		if !rr.Enabled {
			continue
		}
		run := &ruleRun{resolved: rr, ctx: NewRuleContext(ctx, doc, cfg, rr.Config)}
		if stateful, ok := rr.Rule.(Stateful); ok {
			run.ctx.state = stateful.NewState()
		}
		runs = append(runs, run)
		for _, kind := range uniqueKinds(rr.Rule.AppliesTo()) {
			dispatch[kind] = append(dispatch[kind], run)
		}
	}

	visited := make(map[*adast.Node]bool, doc.NodeCount())
	walkErr := adast.Walk(doc.Root, func(node *adast.Node) error {
		if err := checkNode(doc, node, visited); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluation cancelled: %w", err)
		}
		for _, run := range dispatch[node.Kind] {
			e.dispatch(eval, run, node)
		}
		return nil
	})
	if walkErr != nil {
		return eval, walkErr
	}

	for _, run := range runs {
		if finisher, ok := run.resolved.Rule.(Finisher); ok && !run.faulted {
			e.finish(eval, run, finisher)
		}
	}

	var all []Finding
	for _, run := range runs {
		all = append(all, run.findings...)
	}
	eval.Findings = SortFindings(all)

	return eval, nil
}

// dispatch runs one rule against one node with fault isolation.
func (e *Engine) dispatch(eval *Evaluation, run *ruleRun, node *adast.Node) {
	if run.faulted {
		eval.Diagnostics.Skipped[run.resolved.Rule.ID()]++
		return
	}
	eval.Diagnostics.Dispatches++

	findings, err := safeCall(func() ([]Finding, error) {
		return run.resolved.Rule.Check(run.ctx, node)
	})
	e.collect(eval, run, node, findings, err)
}

// finish runs a Finisher's final pass with fault isolation.
func (e *Engine) finish(eval *Evaluation, run *ruleRun, finisher Finisher) {
	findings, err := safeCall(func() ([]Finding, error) {
		return finisher.Finish(run.ctx)
	})
	e.collect(eval, run, run.ctx.Root(), findings, err)
}

func (e *Engine) collect(eval *Evaluation, run *ruleRun, node *adast.Node, findings []Finding, err error) {
	rule := run.resolved.Rule
	if err != nil {
		run.faulted = true
		eval.Diagnostics.Faulted = append(eval.Diagnostics.Faulted, rule.ID())
		run.findings = append(run.findings, Finding{
			RuleID:   rule.ID(),
			RuleName: rule.Name(),
			Severity: config.SeverityError,
			Message:  fmt.Sprintf("internal error in rule %s: %v", rule.ID(), err),
			FilePath: run.ctx.Doc.Path,
			Span:     node.Span,
			Internal: true,
		})
		return
	}

	for i := range findings {
		f := &findings[i]
		if f.RuleID == "" {
			f.RuleID = rule.ID()
		}
		if f.RuleName == "" {
			f.RuleName = rule.Name()
		}
		if f.FilePath == "" {
			f.FilePath = run.ctx.Doc.Path
		}
		if run.resolved.SeverityOverride || !f.Severity.IsValid() {
			f.Severity = run.resolved.Severity
		}
	}
	run.findings = append(run.findings, findings...)
}

// safeCall converts a panic in fn into an error.
func safeCall(fn func() ([]Finding, error)) (findings []Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// checkNode verifies the structural invariants the engine relies on.
func checkNode(doc *adast.Document, node *adast.Node, visited map[*adast.Node]bool) error {
	if visited[node] {
		return &InvariantError{Path: doc.Path, NodePath: doc.NodePath(node), Reason: "node reachable twice"}
	}
	visited[node] = true

	if doc.Node(node.ID) != node {
		return &InvariantError{Path: doc.Path, NodePath: doc.NodePath(node), Reason: "node is not owned by the document"}
	}
	if node.Span.End.Offset < node.Span.Start.Offset {
		return &InvariantError{Path: doc.Path, NodePath: doc.NodePath(node), Reason: "span ends before it starts"}
	}

	for _, group := range [][]*adast.Node{node.Title, node.Children} {
		for _, child := range group {
			if child == nil {
				return &InvariantError{Path: doc.Path, NodePath: doc.NodePath(node), Reason: "nil child"}
			}
			if doc.Parent(child) != node {
				return &InvariantError{
					Path:     doc.Path,
					NodePath: doc.NodePath(node) + "/" + child.Kind.String(),
					Reason:   "child parent link does not point back",
				}
			}
		}
	}
	return nil
}

func uniqueKinds(kinds []adast.NodeKind) []adast.NodeKind {
	out := make([]adast.NodeKind, 0, len(kinds))
	for _, k := range kinds {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

// findingKey identifies duplicate findings.
type findingKey struct {
	ruleID  string
	span    adast.Span
	message string
}

// SortFindings sorts findings by (line, column, rule ID) and collapses
// findings with identical (rule ID, span, message). The sort is stable, so
// ties keep emission order.
func SortFindings(findings []Finding) []Finding {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.Span.Start.Line, b.Span.Start.Line),
			cmp.Compare(a.Span.Start.Column, b.Span.Start.Column),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})

	seen := make(map[findingKey]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		key := findingKey{ruleID: f.RuleID, span: f.Span, message: f.Message}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
