package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// DuplicateAttributeRule checks for attributes that are set more than once.
type DuplicateAttributeRule struct {
	lint.BaseRule
}

// NewDuplicateAttributeRule creates a new duplicate attribute rule.
func NewDuplicateAttributeRule() *DuplicateAttributeRule {
	return &DuplicateAttributeRule{
		BaseRule: lint.NewBaseRule(
			"ATTR001",
			"duplicate-attribute",
			"Document attributes should be set only once",
			[]string{"attributes"},
			adast.NodeAttributeEntry,
		),
	}
}

// DefaultEnabled returns false; redefining attributes mid-document is legal.
func (r *DuplicateAttributeRule) DefaultEnabled() bool {
	return false
}

// NewState maps attribute names to the entry that set them.
func (r *DuplicateAttributeRule) NewState() any {
	return make(map[string]*adast.Node)
}

// Check reports an entry that sets a name that is already set.
func (r *DuplicateAttributeRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	seen, _ := ctx.State().(map[string]*adast.Node)
	if seen == nil {
		return nil, nil
	}

	key := strings.ToLower(node.Name)
	if node.Unset {
		delete(seen, key)
		return nil, nil
	}

	first, ok := seen[key]
	if !ok {
		seen[key] = node
		return nil, nil
	}

	return []lint.Finding{
		lint.NewFinding(r.ID(), node,
			fmt.Sprintf("Attribute %q is already set at line %d", node.Name, first.Span.Start.Line)).
			WithSuggestion("Remove the duplicate or unset the attribute first").
			Build(),
	}, nil
}

// builtinAttributes are intrinsic or processor-provided attributes that may
// be referenced without a definition.
//
//nolint:gochecknoglobals // Fixed lookup table.
var builtinAttributes = map[string]bool{
	// Character replacements.
	"amp": true, "apos": true, "asterisk": true, "backslash": true, "backtick": true,
	"blank": true, "brvbar": true, "caret": true, "cpp": true, "cxx": true, "deg": true,
	"empty": true, "endsb": true, "gt": true, "ldquo": true, "lsquo": true, "lt": true,
	"nbsp": true, "plus": true, "pp": true, "quot": true, "rdquo": true, "rsquo": true,
	"sp": true, "startsb": true, "tilde": true, "two-colons": true, "two-semicolons": true,
	"vbar": true, "wj": true, "zwsp": true,

	// Document and environment.
	"asciidoctor": true, "asciidoctor-version": true, "backend": true, "basebackend": true,
	"docdate": true, "docdatetime": true, "docdir": true, "docfile": true, "docname": true,
	"doctime": true, "doctitle": true, "doctype": true, "docyear": true, "filetype": true,
	"localdate": true, "localdatetime": true, "localtime": true, "localyear": true,
	"outfilesuffix": true, "user-home": true,

	// Header.
	"author": true, "authorinitials": true, "authors": true, "email": true,
	"firstname": true, "lastname": true, "middlename": true,
	"revdate": true, "revnumber": true, "revremark": true,
}

// UndefinedAttributeRule checks that referenced attributes are defined
// before use.
type UndefinedAttributeRule struct {
	lint.BaseRule
}

// NewUndefinedAttributeRule creates a new undefined attribute rule.
func NewUndefinedAttributeRule() *UndefinedAttributeRule {
	return &UndefinedAttributeRule{
		BaseRule: lint.NewBaseRule(
			"ATTR002",
			"undefined-attribute",
			"Attribute references should name an attribute defined earlier",
			[]string{"attributes"},
			adast.NodeInlineSpan,
		),
	}
}

// Check reports a reference to an attribute that is neither built in,
// listed in the allowed option, nor set above the reference.
func (r *UndefinedAttributeRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if node.InlineType != adast.InlineAttrRef || node.Name == "" {
		return nil, nil
	}

	name := strings.ToLower(node.Name)
	if builtinAttributes[name] {
		return nil, nil
	}
	for _, allowed := range ctx.OptionStringSlice("allowed", nil) {
		if strings.EqualFold(allowed, name) {
			return nil, nil
		}
	}
	if ctx.Doc.Attributes.DefinedBefore(name, node.Span.Start.Offset) {
		return nil, nil
	}

	return []lint.Finding{
		lint.NewFinding(r.ID(), node, fmt.Sprintf("Attribute %q is referenced but not defined", node.Name)).
			WithSuggestion(fmt.Sprintf("Define it with :%s: value before this line", node.Name)).
			Build(),
	}, nil
}
