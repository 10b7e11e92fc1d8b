package adast

// TokenKind classifies one source line.
type TokenKind uint8

// Token kinds. The tokenizer emits exactly one token per content line.
const (
	TokText       TokenKind = iota
	TokBlank                // whitespace-only line
	TokHeading              // '== Title', '# Title'
	TokBlockDelim           // '----', '====', '|===', '```', '--'
	TokListMarker           // '* item', '. item', '1. item', '- item'
	TokAttrEntry            // ':name: value', ':name!:'
	TokComment              // '// comment'
	TokBlockAttrs           // '[source,go]', '[[anchor]]'
	TokBlockTitle           // '.Title'
)

//nolint:gochecknoglobals // Lookup table for String.
var tokenKindNames = [...]string{
	TokText:       "TEXT",
	TokBlank:      "BLANK",
	TokHeading:    "HEADING",
	TokBlockDelim: "BLOCK_DELIM",
	TokListMarker: "LIST_MARKER",
	TokAttrEntry:  "ATTR_ENTRY",
	TokComment:    "COMMENT",
	TokBlockAttrs: "BLOCK_ATTRS",
	TokBlockTitle: "BLOCK_TITLE",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "UNKNOWN"
}

// Token is one classified line of source text.
type Token struct {
	// Kind classifies what this line represents.
	Kind TokenKind

	// Raw is the line text without its line terminator.
	Raw string

	// Span covers Raw.
	Span Span

	// Level is the heading depth or the list marker depth. Zero otherwise.
	Level int

	// Indent is the number of leading whitespace bytes.
	Indent int

	// Verbatim is true for lines inside a delimited block, including the
	// closing delimiter.
	Verbatim bool

	// Meta holds kind-specific details: *HeadingMeta, *DelimMeta,
	// *ListMeta or *AttrMeta. Nil for other kinds.
	Meta any
}

// Line returns the 1-based line number of the token.
func (t Token) Line() int {
	return t.Span.Start.Line
}

// HeadingMeta describes a heading line.
type HeadingMeta struct {
	// Marker is the heading marker run, e.g. "==".
	Marker string

	// Title is the heading text with surrounding whitespace removed.
	Title string

	// TitleOffset is the byte offset of Title within the document.
	TitleOffset int

	// MissingSpace is true when the marker is directly followed by text.
	MissingSpace bool
}

// DelimMeta describes a block delimiter line.
type DelimMeta struct {
	// Delimiter is the delimiter text that closes the block, e.g. "----".
	Delimiter string

	// Closing is true when this line closes an open block.
	Closing bool

	// Language is the info string of a fenced block ("```go").
	Language string
}

// ListMeta describes a list item line.
type ListMeta struct {
	// Marker is the list marker, e.g. "**" or "1.".
	Marker string

	// Ordered is true for '.' and numbered markers.
	Ordered bool

	// Text is the item text after the marker.
	Text string

	// TextOffset is the byte offset of Text within the document.
	TextOffset int
}

// AttrMeta describes an attribute entry line.
type AttrMeta struct {
	Name  string
	Value string
	Unset bool

	// ValueOffset is the byte offset of Value within the document.
	ValueOffset int
}
