package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// ListMarkerSpaceRule checks for a space between a list marker and the item
// text. Without it the line is not a list item and renders as a paragraph.
type ListMarkerSpaceRule struct {
	lint.BaseRule
}

// NewListMarkerSpaceRule creates a new list-marker-space rule.
func NewListMarkerSpaceRule() *ListMarkerSpaceRule {
	return &ListMarkerSpaceRule{
		BaseRule: lint.NewBaseRule(
			"LIST001",
			"list-marker-space",
			"List markers should be followed by a space",
			[]string{"lists", "whitespace"},
			adast.NodeDocument,
		),
	}
}

// unspacedMarkerPattern matches a marker run glued to the item text.
var unspacedMarkerPattern = regexp.MustCompile(`^[ \t]*(\*{1,5}|-|\.{1,5})([^\s*.\-])`)

// Check scans text lines, which is where a marker without a space ends up.
func (r *ListMarkerSpaceRule) Check(ctx *lint.RuleContext, _ *adast.Node) ([]lint.Finding, error) {
	var findings []lint.Finding

	for _, tok := range ctx.Doc.Tokens {
		if ctx.Cancelled() {
			return findings, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if tok.Kind != adast.TokText || tok.Verbatim {
			continue
		}

		match := unspacedMarkerPattern.FindStringSubmatchIndex(tok.Raw)
		if match == nil {
			continue
		}
		marker := tok.Raw[match[2]:match[3]]
		next := tok.Raw[match[4]]
		if isProseStart(marker, next, tok.Raw[match[4]:]) {
			continue
		}

		start := tok.Span.Start.Offset + match[2]
		findings = append(findings,
			lint.NewFindingAt(r.ID(), ctx.Doc.SpanOf(start, start+len(marker)),
				fmt.Sprintf("Missing space after list marker '%s'", marker)).
				WithSuggestion("Insert a space after '" + marker + "'").
				Build())
	}

	return findings, nil
}

// isProseStart reports whether a marker-like prefix is ordinary text: strong
// or emphasis markup such as *bold* and **bold**, a negative number or an
// arrow.
func isProseStart(marker string, next byte, rest string) bool {
	switch marker[0] {
	case '*':
		return strings.ContainsRune(rest, '*')
	case '-':
		return (next >= '0' && next <= '9') || next == '>'
	}
	return false
}
