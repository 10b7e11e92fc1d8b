// Package rules provides the built-in lint rules for adoclint.
//
// # Rule Domains
//
//   - Headings:
//
//   - HEAD001: heading-increment - Section levels should only increment by one
//
//   - HEAD002: heading-format - Space after the marker, uppercase first letter
//
//   - HEAD003: single-top-level-heading - Only one level-1 document title
//
//   - HEAD004: empty-heading - Sections should have a title
//
//   - Blocks:
//
//   - BLOCK001: unterminated-block - Delimited blocks must be closed
//
//   - BLOCK002: block-spacing - Delimited blocks should be surrounded by blank lines
//
//   - BLOCK003: source-language - Source blocks should declare a known language
//
//   - Whitespace:
//
//   - WS001: trailing-whitespace - Lines should not have trailing whitespace
//
//   - WS002: no-hard-tabs - Hard tabs should not be used
//
//   - WS003: no-multiple-blanks - Limit consecutive blank lines
//
//   - WS004: section-blank-lines - Section titles should be surrounded by blank lines
//
//   - WS005: admonition-blank-line - Admonition paragraphs follow a blank line
//
//   - Lists:
//
//   - LIST001: list-marker-space - List markers are followed by a space
//
//   - Images, tables, attributes and includes:
//
//   - IMG001: image-attributes - Alt text and existing image files
//
//   - TABLE001: table-format - Header row separation and column alignment
//
//   - TABLE002: table-structure - Consistent column count, no empty tables
//
//   - TABLE003: table-content - Lists in cells need the a| or l| style
//
//   - ATTR001: duplicate-attribute - Attributes set only once (opt-in)
//
//   - ATTR002: undefined-attribute - References name a defined attribute
//
//   - INC001: include-target - Include directives reference existing files
//
// # Rule Packs
//
// Rule packs are configuration presets for common use cases:
//
//   - core: Structure, blocks and whitespace
//   - strict: Every rule enabled, most as errors
//   - relaxed: Only broken structure
//   - publishing: References, images and includes for rendered sites
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll. Each rule
// embeds lint.BaseRule, declares the node kinds it applies to, and builds
// findings with lint.NewFinding or lint.NewFindingAt.
package rules
