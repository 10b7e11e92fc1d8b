package rules

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// IncludeTargetRule checks that include directives point at existing files.
type IncludeTargetRule struct {
	lint.BaseRule
}

// NewIncludeTargetRule creates a new include target rule.
func NewIncludeTargetRule() *IncludeTargetRule {
	return &IncludeTargetRule{
		BaseRule: lint.NewBaseRule(
			"INC001",
			"include-target",
			"Include directives should reference an existing file",
			[]string{"includes"},
			adast.NodeBlock,
		),
	}
}

// Check resolves the include target relative to the document. Remote
// targets, targets with attribute references and in-memory documents are
// not checked.
func (r *IncludeTargetRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if node.BlockType != adast.BlockInclude {
		return nil, nil
	}

	target := strings.TrimSpace(node.Target)
	if target == "" {
		return []lint.Finding{
			lint.NewFinding(r.ID(), node, "Include directive has no target").Build(),
		}, nil
	}
	if isRemote(target) || hasAttrRef(target) {
		return nil, nil
	}

	path, ok := resolveLocal(ctx.Doc, "", target)
	if !ok || fileExists(path) {
		return nil, nil
	}

	// opts=optional tolerates a missing file.
	if opts, found := namedAttr(splitAttrList(node.AttrText), "opts"); found && strings.Contains(opts, "optional") {
		return nil, nil
	}

	return []lint.Finding{
		lint.NewFinding(r.ID(), node, "Include target not found: "+target).
			WithSuggestion("Check the path relative to the including document").
			Build(),
	}, nil
}
