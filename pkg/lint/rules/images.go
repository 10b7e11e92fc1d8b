package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// ImageAttributesRule checks image macros for alt text and a local target.
type ImageAttributesRule struct {
	lint.BaseRule
}

// NewImageAttributesRule creates a new image attributes rule.
func NewImageAttributesRule() *ImageAttributesRule {
	return &ImageAttributesRule{
		BaseRule: lint.NewBaseRule(
			"IMG001",
			"image-attributes",
			"Images should have alternative text and an existing target",
			[]string{"images", "accessibility"},
			adast.NodeBlock, adast.NodeInlineSpan,
		),
	}
}

// Check inspects block and inline image macros.
func (r *ImageAttributesRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	kind := ""
	switch {
	case node.Kind == adast.NodeBlock && node.BlockType == adast.BlockImage:
		kind = "block"
	case node.Kind == adast.NodeInlineSpan && node.InlineType == adast.InlineImage:
		kind = "inline"
	default:
		return nil, nil
	}

	var findings []lint.Finding
	target := strings.TrimSpace(node.Target)

	if ctx.OptionBool("check_files", true) && !isRemote(target) && !hasAttrRef(target) {
		imagesDir, _ := ctx.Doc.Attribute("imagesdir")
		if isRemote(imagesDir) || hasAttrRef(imagesDir) {
			imagesDir = ""
		}
		if path, ok := resolveLocal(ctx.Doc, imagesDir, target); ok && !fileExists(path) {
			findings = append(findings,
				lint.NewFinding(r.ID(), node, "Image file not found: "+target).
					WithSuggestion("Check the path relative to the document or the imagesdir attribute").
					Build())
		}
	}

	alt := imageAlt(node.AttrText)
	minLength := ctx.OptionInt("min_alt_length", 5)

	switch {
	case alt == "":
		findings = append(findings,
			lint.NewFinding(r.ID(), node, fmt.Sprintf("Missing alt text for %s image: %s", kind, target)).
				WithSuggestion(fmt.Sprintf("Describe the image, e.g. %s[Description]", macroPrefix(kind)+target)).
				Build())
	case utf8.RuneCountInString(alt) < minLength:
		findings = append(findings,
			lint.NewFinding(r.ID(), node, fmt.Sprintf("Alt text too short: %q", alt)).
				WithSeverity(config.SeverityInfo).
				WithSuggestion("Use a more descriptive alt text").
				Build())
	}

	if kind == "block" && strings.TrimSpace(node.AttrText) == "" {
		findings = append(findings,
			lint.NewFinding(r.ID(), node, "Missing required attributes for block image: "+target).
				WithSuggestion("Add alt text and, where needed, width and height").
				Build())
	}

	return findings, nil
}

// imageAlt returns the alt text of an image attribute list: the alt named
// attribute, or else the first positional attribute.
func imageAlt(attrText string) string {
	parts := splitAttrList(attrText)
	if alt, ok := namedAttr(parts, "alt"); ok {
		return strings.TrimSpace(alt)
	}
	if len(parts) == 0 || strings.Contains(parts[0], "=") {
		return ""
	}
	return strings.TrimSpace(unquote(parts[0]))
}

func macroPrefix(kind string) string {
	if kind == "block" {
		return "image::"
	}
	return "image:"
}
