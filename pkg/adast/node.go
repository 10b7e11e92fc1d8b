package adast

// NodeKind classifies the variant of a structural node.
type NodeKind uint8

// Node kinds.
const (
	NodeDocument NodeKind = iota
	NodeSection
	NodeBlock
	NodeListItem
	NodeInlineSpan
	NodeAttributeEntry
)

//nolint:gochecknoglobals // Lookup table for String.
var nodeKindNames = [...]string{
	NodeDocument:       "Document",
	NodeSection:        "Section",
	NodeBlock:          "Block",
	NodeListItem:       "ListItem",
	NodeInlineSpan:     "InlineSpan",
	NodeAttributeEntry: "AttributeEntry",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// BlockType classifies a Block node.
type BlockType string

// Block types.
const (
	BlockParagraph   BlockType = "paragraph"
	BlockListing     BlockType = "listing"
	BlockLiteral     BlockType = "literal"
	BlockExample     BlockType = "example"
	BlockSidebar     BlockType = "sidebar"
	BlockQuote       BlockType = "quote"
	BlockPassthrough BlockType = "passthrough"
	BlockComment     BlockType = "comment"
	BlockOpen        BlockType = "open"
	BlockTable       BlockType = "table"
	BlockAdmonition  BlockType = "admonition"
	BlockImage       BlockType = "image"
	BlockInclude     BlockType = "include"
	BlockList        BlockType = "list"
)

// InlineType classifies an InlineSpan node.
type InlineType string

// Inline span types.
const (
	InlineText      InlineType = "text"
	InlineStrong    InlineType = "strong"
	InlineEmphasis  InlineType = "emphasis"
	InlineMonospace InlineType = "monospace"
	InlineLink      InlineType = "link"
	InlineImage     InlineType = "image"
	InlineAttrRef   InlineType = "attribute-reference"
	InlineXref      InlineType = "xref"
)

// NodeID indexes a node within its Document's arena.
type NodeID int32

// NoNode is the parent of the document root.
const NoNode NodeID = -1

// Node is one element of the structural model. Fields beyond the common
// ones are populated according to Kind.
type Node struct {
	// ID is the node's index in the document arena.
	ID NodeID

	// Kind identifies the node variant.
	Kind NodeKind

	// Span is the source range of the node.
	Span Span

	// ParentID links to the parent node. It is NoNode for the root.
	ParentID NodeID

	// Children are owned and ordered.
	Children []*Node

	// BlankLinesBefore is the number of blank lines directly above the node.
	BlankLinesBefore int

	// Level is the heading depth for sections and the nesting depth for
	// list items.
	Level int

	// Title holds the inline spans of a section title.
	Title []*Node

	// TitleText is the plain section title.
	TitleText string

	// MissingSpace is true when a section marker is not followed by a space.
	MissingSpace bool

	// BlockType classifies Block nodes.
	BlockType BlockType

	// Raw is the block content. For delimited blocks it excludes the
	// delimiter lines.
	Raw string

	// ContentLine is the 1-based line of the first line of Raw.
	ContentLine int

	// Delimiter is the opening delimiter of a delimited block.
	Delimiter string

	// Terminated is false for a delimited block that was never closed.
	Terminated bool

	// AttrList is the text of a preceding '[...]' line, without brackets.
	AttrList string

	// Style is the first positional attribute, e.g. "source" or "NOTE".
	Style string

	// Language is the source language of a listing block.
	Language string

	// BlockTitle is the text of a preceding '.Title' line.
	BlockTitle string

	// Label is the admonition label, e.g. "NOTE".
	Label string

	// Target is the target of an image, include, link or xref.
	Target string

	// AttrText is the bracketed attribute text of a macro.
	AttrText string

	// Metadata lists attribute entries directly above the node. Not owned.
	Metadata []*Node

	// Marker is the list item marker.
	Marker string

	// Text is the plain text of a list item or inline span.
	Text string

	// InlineType classifies InlineSpan nodes.
	InlineType InlineType

	// Name, Value and Unset describe AttributeEntry nodes and attribute
	// references (Name only).
	Name  string
	Value string
	Unset bool
}

// IsDelimited returns true if the node is a block opened by a delimiter line.
func (n *Node) IsDelimited() bool {
	return n.Kind == NodeBlock && n.Delimiter != ""
}

// RawLines splits Raw into lines. Returns nil for empty content.
func (n *Node) RawLines() []string {
	if n.Raw == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(n.Raw); i++ {
		if n.Raw[i] == '\n' {
			lines = append(lines, n.Raw[start:i])
			start = i + 1
		}
	}
	return append(lines, n.Raw[start:])
}
