package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// HeadingIncrementRule checks that section levels increment by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates a new heading increment rule.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"HEAD001",
			"heading-increment",
			"Section levels should only increment by one level at a time",
			[]string{"headings"},
			adast.NodeSection,
		),
	}
}

// DefaultSeverity reports skipped levels as errors.
func (r *HeadingIncrementRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

type headingLevels struct {
	prev int
}

// NewState tracks the previous section level of one document.
func (r *HeadingIncrementRule) NewState() any {
	return &headingLevels{}
}

// Check compares the section level with the previous one.
func (r *HeadingIncrementRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	state, _ := ctx.State().(*headingLevels)
	if state == nil {
		return nil, nil
	}

	prev := state.prev
	state.prev = node.Level

	// The first section can be any level.
	if prev == 0 || node.Level <= prev+1 {
		return nil, nil
	}

	want := prev + 1
	return []lint.Finding{
		lint.NewFindingAt(r.ID(), headingLine(ctx.Doc, node),
			fmt.Sprintf("Heading level skipped: found h%d after h%d", node.Level, prev)).
			WithSuggestion(fmt.Sprintf("Use level %d (%s) instead", want, strings.Repeat("=", want))).
			Build(),
	}, nil
}

// HeadingFormatRule checks the spacing and capitalization of section titles.
type HeadingFormatRule struct {
	lint.BaseRule
}

// NewHeadingFormatRule creates a new heading format rule.
func NewHeadingFormatRule() *HeadingFormatRule {
	return &HeadingFormatRule{
		BaseRule: lint.NewBaseRule(
			"HEAD002",
			"heading-format",
			"Section markers are followed by a space and titles start with an uppercase letter",
			[]string{"headings", "style"},
			adast.NodeSection,
		),
	}
}

// DefaultSeverity reports a missing space as an error.
func (r *HeadingFormatRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Check reports a missing space after the marker and a lowercase first letter.
func (r *HeadingFormatRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	var findings []lint.Finding

	tok, _ := ctx.Doc.TokenAt(node.Span.Start.Line)
	meta, _ := tok.Meta.(*adast.HeadingMeta)

	if node.MissingSpace {
		marker := strings.Repeat("=", node.Level)
		if meta != nil {
			marker = meta.Marker
		}
		findings = append(findings,
			lint.NewFindingAt(r.ID(), headingLine(ctx.Doc, node),
				"Missing space after "+marker).
				WithSeverity(config.SeverityError).
				WithSuggestion(fmt.Sprintf("Insert a space: %s %s", marker, node.TitleText)).
				Build())
	}

	first, size := utf8.DecodeRuneInString(node.TitleText)
	if size > 0 && unicode.IsLower(first) {
		span := headingLine(ctx.Doc, node)
		if meta != nil {
			span = ctx.Doc.SpanOf(meta.TitleOffset, meta.TitleOffset+size)
		}
		findings = append(findings,
			lint.NewFindingAt(r.ID(), span, "Heading should start with uppercase letter").
				WithSeverity(config.SeverityWarning).
				WithSuggestion(string(unicode.ToUpper(first))+node.TitleText[size:]).
				Build())
	}

	return findings, nil
}

// SingleTopLevelRule checks that there is at most one level-1 section.
type SingleTopLevelRule struct {
	lint.BaseRule
}

// NewSingleTopLevelRule creates a new single top-level heading rule.
func NewSingleTopLevelRule() *SingleTopLevelRule {
	return &SingleTopLevelRule{
		BaseRule: lint.NewBaseRule(
			"HEAD003",
			"single-top-level-heading",
			"A document should have a single level-1 title",
			[]string{"headings"},
			adast.NodeSection,
		),
	}
}

// DefaultSeverity reports extra document titles as errors.
func (r *SingleTopLevelRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

type firstTitle struct {
	node *adast.Node
}

// NewState remembers the first level-1 section of one document.
func (r *SingleTopLevelRule) NewState() any {
	return &firstTitle{}
}

// Check reports every level-1 section after the first.
func (r *SingleTopLevelRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	state, _ := ctx.State().(*firstTitle)
	if state == nil || node.Level != 1 {
		return nil, nil
	}

	if state.node == nil {
		state.node = node
		return nil, nil
	}

	msg := fmt.Sprintf("Multiple top-level headings found. First heading at line %d: '%s'",
		state.node.Span.Start.Line, state.node.TitleText)
	return []lint.Finding{
		lint.NewFindingAt(r.ID(), headingLine(ctx.Doc, node), msg).
			WithSuggestion("Use '==' for sections below the document title").
			Build(),
	}, nil
}

// EmptyHeadingRule checks for section markers without a title.
type EmptyHeadingRule struct {
	lint.BaseRule
}

// NewEmptyHeadingRule creates a new empty heading rule.
func NewEmptyHeadingRule() *EmptyHeadingRule {
	return &EmptyHeadingRule{
		BaseRule: lint.NewBaseRule(
			"HEAD004",
			"empty-heading",
			"Sections should have a title",
			[]string{"headings"},
			adast.NodeSection,
		),
	}
}

// Check reports sections whose title is blank.
func (r *EmptyHeadingRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if strings.TrimSpace(node.TitleText) != "" {
		return nil, nil
	}
	return []lint.Finding{
		lint.NewFindingAt(r.ID(), headingLine(ctx.Doc, node), "Heading has no text").Build(),
	}, nil
}
