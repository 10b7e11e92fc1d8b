package rules

import (
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
// Registration order is the dispatch order of rules for the same node.
func RegisterAll(registry *lint.Registry) {
	// Heading rules
	registry.Register(NewHeadingIncrementRule()) // HEAD001
	registry.Register(NewHeadingFormatRule())    // HEAD002
	registry.Register(NewSingleTopLevelRule())   // HEAD003
	registry.Register(NewEmptyHeadingRule())     // HEAD004

	// Block rules
	registry.Register(NewUnterminatedBlockRule()) // BLOCK001
	registry.Register(NewBlockSpacingRule())      // BLOCK002
	registry.Register(NewSourceLanguageRule())    // BLOCK003

	// Whitespace rules
	registry.Register(NewTrailingWhitespaceRule())  // WS001
	registry.Register(NewHardTabsRule())            // WS002
	registry.Register(NewMultipleBlankLinesRule())  // WS003
	registry.Register(NewSectionBlankLinesRule())   // WS004
	registry.Register(NewAdmonitionBlankLineRule()) // WS005

	// List rules
	registry.Register(NewListMarkerSpaceRule()) // LIST001

	// Image rules
	registry.Register(NewImageAttributesRule()) // IMG001

	// Table rules
	registry.Register(NewTableFormatRule())    // TABLE001
	registry.Register(NewTableStructureRule()) // TABLE002
	registry.Register(NewTableContentRule())   // TABLE003

	// Attribute rules
	registry.Register(NewDuplicateAttributeRule()) // ATTR001
	registry.Register(NewUndefinedAttributeRule()) // ATTR002

	// Include rules
	registry.Register(NewIncludeTargetRule()) // INC001
}

// RuleInfos describes the rules of registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
		})
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
