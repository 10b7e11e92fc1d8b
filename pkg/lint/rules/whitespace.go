package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// TrailingWhitespaceRule checks for trailing whitespace on lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates a new trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"WS001",
			"trailing-whitespace",
			"Lines should not have trailing whitespace",
			[]string{"whitespace"},
			adast.NodeDocument,
		),
	}
}

// Check scans every line of the document for trailing spaces and tabs.
func (r *TrailingWhitespaceRule) Check(ctx *lint.RuleContext, _ *adast.Node) ([]lint.Finding, error) {
	ignoreVerbatim := ctx.OptionBool("ignore_verbatim", false)

	var findings []lint.Finding

	for _, tok := range ctx.Doc.Tokens {
		if ctx.Cancelled() {
			return findings, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if tok.Kind == adast.TokBlank && tok.Raw == "" {
			continue
		}
		if ignoreVerbatim && tok.Verbatim {
			continue
		}

		trimmed := strings.TrimRight(tok.Raw, " \t")
		if len(trimmed) == len(tok.Raw) {
			continue
		}

		start := tok.Span.Start.Offset + len(trimmed)
		findings = append(findings,
			lint.NewFindingAt(r.ID(), ctx.Doc.SpanOf(start, tok.Span.End.Offset), "Trailing whitespace").
				WithSuggestion("Remove trailing whitespace").
				Build())
	}

	return findings, nil
}

// HardTabsRule checks for tab characters outside verbatim blocks.
type HardTabsRule struct {
	lint.BaseRule
}

// NewHardTabsRule creates a new hard tabs rule.
func NewHardTabsRule() *HardTabsRule {
	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			"WS002",
			"no-hard-tabs",
			"Hard tabs should not be used",
			[]string{"whitespace"},
			adast.NodeDocument,
		),
	}
}

// Check reports the first tab of each affected line.
func (r *HardTabsRule) Check(ctx *lint.RuleContext, _ *adast.Node) ([]lint.Finding, error) {
	// Tabs are often significant in code, e.g. Makefiles.
	checkVerbatim := ctx.OptionBool("code_blocks", false)

	var findings []lint.Finding

	for _, tok := range ctx.Doc.Tokens {
		if ctx.Cancelled() {
			return findings, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if tok.Verbatim && !checkVerbatim {
			continue
		}

		idx := strings.IndexByte(tok.Raw, '\t')
		if idx < 0 {
			continue
		}

		start := tok.Span.Start.Offset + idx
		findings = append(findings,
			lint.NewFindingAt(r.ID(), ctx.Doc.SpanOf(start, start+1), "Hard tab character").
				WithSuggestion("Replace tabs with spaces").
				Build())
	}

	return findings, nil
}

// MultipleBlankLinesRule checks for runs of blank lines.
type MultipleBlankLinesRule struct {
	lint.BaseRule
}

// NewMultipleBlankLinesRule creates a new multiple blank lines rule.
func NewMultipleBlankLinesRule() *MultipleBlankLinesRule {
	return &MultipleBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"WS003",
			"no-multiple-blanks",
			"Consecutive blank lines should not exceed a maximum",
			[]string{"whitespace", "blank_lines"},
			adast.NodeDocument,
		),
	}
}

// Check reports the excess lines of every blank run longer than maximum.
// Blank lines inside verbatim blocks are content and are not counted.
func (r *MultipleBlankLinesRule) Check(ctx *lint.RuleContext, _ *adast.Node) ([]lint.Finding, error) {
	maximum := max(ctx.OptionInt("maximum", 2), 1)

	var findings []lint.Finding
	run := 0

	flush := func(lastLine int) {
		if run > maximum {
			first := lastLine - run + maximum + 1
			span := adast.Span{
				Start: ctx.Doc.LineSpan(first).Start,
				End:   ctx.Doc.LineSpan(lastLine).End,
			}
			findings = append(findings,
				lint.NewFindingAt(r.ID(), span,
					fmt.Sprintf("Too many consecutive blank lines (%d, maximum %d)", run, maximum)).
					WithSuggestion(fmt.Sprintf("Remove %d blank line(s)", run-maximum)).
					Build())
		}
		run = 0
	}

	for i, tok := range ctx.Doc.Tokens {
		if tok.Kind == adast.TokBlank && !tok.Verbatim {
			run++
			continue
		}
		flush(i)
	}
	flush(len(ctx.Doc.Tokens))

	return findings, nil
}

// SectionBlankLinesRule checks that section titles are set off by blank lines.
type SectionBlankLinesRule struct {
	lint.BaseRule
}

// NewSectionBlankLinesRule creates a new section blank lines rule.
func NewSectionBlankLinesRule() *SectionBlankLinesRule {
	return &SectionBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"WS004",
			"section-blank-lines",
			"Section titles should be surrounded by blank lines",
			[]string{"whitespace", "headings"},
			adast.NodeSection,
		),
	}
}

// Check reports section titles that touch the surrounding text. The document
// title may be followed directly by its header lines.
func (r *SectionBlankLinesRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	doc := ctx.Doc
	line := node.Span.Start.Line
	span := headingLine(doc, node)

	var findings []lint.Finding

	if prev := metadataTop(doc, line) - 1; prev >= 1 {
		if tok, ok := doc.TokenAt(prev); ok && tok.Kind != adast.TokBlank {
			findings = append(findings,
				lint.NewFindingAt(r.ID(), span, "Section title should be preceded by an empty line").
					WithSuggestion("Insert a blank line before the section title").
					Build())
		}
	}

	if node.Level > 1 {
		if tok, ok := doc.TokenAt(line + 1); ok && tok.Kind != adast.TokBlank {
			findings = append(findings,
				lint.NewFindingAt(r.ID(), span, "Section title should be followed by an empty line").
					WithSuggestion("Insert a blank line after the section title").
					Build())
		}
	}

	return findings, nil
}

// AdmonitionBlankLineRule checks that admonition paragraphs start after a
// blank line.
type AdmonitionBlankLineRule struct {
	lint.BaseRule
}

// NewAdmonitionBlankLineRule creates a new admonition blank line rule.
func NewAdmonitionBlankLineRule() *AdmonitionBlankLineRule {
	return &AdmonitionBlankLineRule{
		BaseRule: lint.NewBaseRule(
			"WS005",
			"admonition-blank-line",
			"Admonition paragraphs should be preceded by a blank line",
			[]string{"whitespace", "blocks"},
			adast.NodeBlock,
		),
	}
}

// Check reports admonition paragraphs glued to the text above. Delimited
// admonitions are covered by block-spacing.
func (r *AdmonitionBlankLineRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if node.BlockType != adast.BlockAdmonition || node.IsDelimited() {
		return nil, nil
	}
	if separatedAbove(ctx.Doc, node) {
		return nil, nil
	}
	return []lint.Finding{
		lint.NewFindingAt(r.ID(), headingLine(ctx.Doc, node),
			"Admonition block should be preceded by a blank line").
			WithSuggestion("Insert a blank line before " + node.Label + ":").
			Build(),
	}, nil
}
