package rules

import (
	"fmt"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/langdetect"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// UnterminatedBlockRule checks that delimited blocks are closed.
type UnterminatedBlockRule struct {
	lint.BaseRule
}

// NewUnterminatedBlockRule creates a new unterminated block rule.
func NewUnterminatedBlockRule() *UnterminatedBlockRule {
	return &UnterminatedBlockRule{
		BaseRule: lint.NewBaseRule(
			"BLOCK001",
			"unterminated-block",
			"Delimited blocks must be closed by a matching delimiter",
			[]string{"blocks"},
			adast.NodeBlock,
		),
	}
}

// DefaultSeverity reports unterminated blocks as errors.
func (r *UnterminatedBlockRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Check reports an open delimiter that is never closed.
func (r *UnterminatedBlockRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if !node.IsDelimited() || node.Terminated {
		return nil, nil
	}
	return []lint.Finding{
		lint.NewFindingAt(r.ID(), headingLine(ctx.Doc, node),
			fmt.Sprintf("Unterminated %s block starting here", node.BlockType)).
			WithSuggestion(fmt.Sprintf("Close the block with %q", node.Delimiter)).
			Build(),
	}, nil
}

// BlockSpacingRule checks that delimited blocks are set off by blank lines.
type BlockSpacingRule struct {
	lint.BaseRule
}

// NewBlockSpacingRule creates a new block spacing rule.
func NewBlockSpacingRule() *BlockSpacingRule {
	return &BlockSpacingRule{
		BaseRule: lint.NewBaseRule(
			"BLOCK002",
			"block-spacing",
			"Delimited blocks should be surrounded by blank lines",
			[]string{"blocks", "whitespace"},
			adast.NodeBlock,
		),
	}
}

// Check reports a delimited block that touches the surrounding text.
func (r *BlockSpacingRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if !node.IsDelimited() {
		return nil, nil
	}

	var findings []lint.Finding
	doc := ctx.Doc

	if !separatedAbove(doc, node) {
		findings = append(findings,
			lint.NewFindingAt(r.ID(), doc.LineSpan(metadataTop(doc, node.Span.Start.Line)),
				"Block should be preceded by a blank line").
				WithSuggestion("Insert a blank line before the block").
				Build())
	}

	// An unterminated block runs to the end of the document.
	if node.Terminated && !separatedBelow(doc, node) && !followedByListItem(doc, node) {
		findings = append(findings,
			lint.NewFindingAt(r.ID(), doc.LineSpan(node.Span.End.Line),
				"Block should be followed by a blank line").
				WithSuggestion("Insert a blank line after the block").
				Build())
	}

	return findings, nil
}

// followedByListItem allows a block attached to a list item to be followed
// directly by the next item.
func followedByListItem(doc *adast.Document, node *adast.Node) bool {
	tok, ok := doc.TokenAt(node.Span.End.Line + 1)
	return ok && tok.Kind == adast.TokListMarker && insideListItem(doc, node)
}

// SourceLanguageRule checks that source blocks declare a known language.
type SourceLanguageRule struct {
	lint.BaseRule
}

// NewSourceLanguageRule creates a new source language rule.
func NewSourceLanguageRule() *SourceLanguageRule {
	return &SourceLanguageRule{
		BaseRule: lint.NewBaseRule(
			"BLOCK003",
			"source-language",
			"Source blocks should declare their language",
			[]string{"blocks", "code"},
			adast.NodeBlock,
		),
	}
}

// DefaultSeverity keeps language hints informational.
func (r *SourceLanguageRule) DefaultSeverity() config.Severity {
	return config.SeverityInfo
}

// Check reports source blocks without a language or with an unknown one.
func (r *SourceLanguageRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if node.BlockType != adast.BlockListing || node.Style != "source" {
		return nil, nil
	}

	span := headingLine(ctx.Doc, node)

	if node.Language == "" {
		builder := lint.NewFindingAt(r.ID(), span, "Source block has no language")
		if lang, ok := langdetect.Suggest(node.Raw); ok {
			builder = builder.WithSuggestion(fmt.Sprintf("Declare the language, e.g. [source,%s]", lang))
		} else {
			builder = builder.WithSuggestion("Declare the language, e.g. [source,text]")
		}
		return []lint.Finding{builder.Build()}, nil
	}

	if ctx.OptionBool("check_known", true) && !langdetect.Known(node.Language) {
		return []lint.Finding{
			lint.NewFindingAt(r.ID(), span, fmt.Sprintf("Unknown source language %q", node.Language)).Build(),
		}, nil
	}

	return nil, nil
}
