// Package asciidoc turns AsciiDoc source into the adast structural model.
//
// Parsing is line oriented: a tokenizer classifies each line, then a single
// forward pass builds sections, blocks, list items and inline spans. Both
// stages are total. Malformed markup is represented in the tree (an
// unterminated block, a heading with no text) for rules to judge.
package asciidoc

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
)

//nolint:gochecknoglobals // Fixed admonition label set.
var admonitionLabels = []string{"NOTE", "TIP", "IMPORTANT", "WARNING", "CAUTION"}

// Parser implements lint.Parser for AsciiDoc.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts raw AsciiDoc bytes into a Document. It fails only when
// ctx is already done.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*adast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return Parse(path, content), nil
}

// Parse tokenizes and parses content.
func Parse(path string, content []byte) *adast.Document {
	doc := adast.NewDocument(path, content)
	doc.Tokens = tokenizeIndex(doc.LineIndex)
	build(doc)
	return doc
}

// ParseTokens builds a Document from an existing token stream. Tokens are
// expected to come from Tokenize over the same content, but any sequence
// produces a Document.
func ParseTokens(path string, content []byte, tokens []adast.Token) *adast.Document {
	doc := adast.NewDocument(path, content)
	doc.Tokens = tokens
	build(doc)
	return doc
}

// listKey orders list items for nesting.
type listKey struct {
	indent int
	level  int
}

// deeper reports whether a nests under b.
func (a listKey) deeper(b listKey) bool {
	return a.indent > b.indent || (a.indent == b.indent && a.level > b.level)
}

// builder holds the parse state for one pass over the tokens.
type builder struct {
	doc *adast.Document

	sections []*adast.Node

	// Metadata waiting for the next block.
	pendingAttrs      []*adast.Node
	pendingBlockAttrs *adast.Token
	pendingTitle      *adast.Token

	blankRun int

	// lastEnd is the end offset of the last non-blank line, tokenEnd the
	// end offset of the last line of any kind.
	lastEnd  int
	tokenEnd int

	para      *adast.Node
	paraLines []adast.Token

	block      *adast.Node
	blockLines []string

	list         *adast.Node
	items        []*adast.Node
	itemKeys     []listKey
	continuation bool
	blankInList  bool
}

func build(doc *adast.Document) {
	b := &builder{doc: doc}

	for _, tok := range doc.Tokens {
		b.consume(tok)
		b.tokenEnd = tok.Span.End.Offset
		if tok.Kind != adast.TokBlank {
			b.blankRun = 0
			b.lastEnd = tok.Span.End.Offset
		}
	}

	b.finish()
}

func (b *builder) consume(tok adast.Token) {
	if b.block != nil {
		b.feedBlock(tok)
		return
	}

	switch tok.Kind {
	case adast.TokBlank:
		b.blank()
	case adast.TokComment:
		// Line comments neither open nor close structure.
	case adast.TokHeading:
		b.heading(tok)
	case adast.TokBlockDelim:
		b.openBlock(tok)
	case adast.TokListMarker:
		b.listItem(tok)
	case adast.TokAttrEntry:
		b.attrEntry(tok)
	case adast.TokBlockAttrs:
		b.closeParagraph()
		if !b.continuation {
			b.closeList()
		}
		b.pendingBlockAttrs = &tok
	case adast.TokBlockTitle:
		b.closeParagraph()
		if !b.continuation {
			b.closeList()
		}
		b.pendingTitle = &tok
	default:
		b.text(tok)
	}
}

func (b *builder) finish() {
	if b.block != nil {
		b.block.Terminated = false
		b.block.Raw = strings.Join(b.blockLines, "\n")
		// An unterminated block swallows the rest of the document.
		b.block.Span.End = b.doc.PositionAt(max(b.tokenEnd, b.block.Span.End.Offset))
		b.block = nil
	}

	b.closeParagraph()
	b.closeList()
	for len(b.sections) > 0 {
		b.popSection()
	}
}

// container returns the section or document that receives new blocks.
func (b *builder) container() *adast.Node {
	if n := len(b.sections); n > 0 {
		return b.sections[n-1]
	}
	return b.doc.Root
}

// blockParent returns the parent for a new block, attaching it to the
// current list item after a continuation marker and closing the list
// otherwise.
func (b *builder) blockParent() *adast.Node {
	if b.list != nil {
		if b.continuation && len(b.items) > 0 {
			b.continuation = false
			return b.items[len(b.items)-1]
		}
		b.closeList()
	}
	return b.container()
}

func (b *builder) blank() {
	b.closeParagraph()
	b.blankRun++
	b.pendingAttrs = nil
	if b.list != nil {
		b.continuation = false
		b.blankInList = true
	}
}

func (b *builder) heading(tok adast.Token) {
	b.closeParagraph()
	b.closeList()

	for n := len(b.sections); n > 0 && b.sections[n-1].Level >= tok.Level; n = len(b.sections) {
		b.popSection()
	}

	section := b.doc.AppendChild(b.container(), adast.NodeSection)
	section.Level = tok.Level
	section.Span = tok.Span
	section.BlankLinesBefore = b.blankRun
	b.attachMetadata(section)

	if meta, ok := tok.Meta.(*adast.HeadingMeta); ok {
		section.TitleText = meta.Title
		section.MissingSpace = meta.MissingSpace
		b.addInlines(section, scanInline(meta.Title), meta.TitleOffset, true)
	}

	b.sections = append(b.sections, section)
}

func (b *builder) popSection() {
	n := len(b.sections)
	section := b.sections[n-1]
	section.Span.End = b.endPosition(section)
	b.sections = b.sections[:n-1]
}

func (b *builder) openBlock(tok adast.Token) {
	b.closeParagraph()
	parent := b.blockParent()

	delim := strings.TrimRight(tok.Raw, " \t")
	lang := ""
	if meta, ok := tok.Meta.(*adast.DelimMeta); ok {
		delim = meta.Delimiter
		lang = meta.Language
	}

	block := b.newBlock(parent, delimitedType(delim), tok)
	block.Delimiter = delim
	block.ContentLine = tok.Line() + 1
	if delim == fence {
		block.Style = "source"
		if lang != "" {
			block.Language = lang
		}
	}
	if isAdmonitionLabel(block.Style) && block.BlockType == adast.BlockExample {
		block.BlockType = adast.BlockAdmonition
		block.Label = block.Style
	}

	b.block = block
	b.blockLines = nil
}

// feedBlock accumulates verbatim lines until the closing delimiter.
func (b *builder) feedBlock(tok adast.Token) {
	if tok.Kind == adast.TokBlockDelim && strings.TrimRight(tok.Raw, " \t") == b.block.Delimiter {
		b.block.Terminated = true
		b.block.Raw = strings.Join(b.blockLines, "\n")
		b.block.Span.End = tok.Span.End
		b.block = nil
		b.blockLines = nil
		return
	}
	b.blockLines = append(b.blockLines, tok.Raw)
}

func (b *builder) listItem(tok adast.Token) {
	b.closeParagraph()

	if b.list == nil {
		b.list = b.newBlock(b.container(), adast.BlockList, tok)
	}
	b.continuation = false
	b.blankInList = false

	key := listKey{indent: tok.Indent, level: tok.Level}
	for n := len(b.items); n > 0 && !key.deeper(b.itemKeys[n-1]); n = len(b.items) {
		b.popItem()
	}

	parent := b.list
	if n := len(b.items); n > 0 {
		parent = b.items[n-1]
	}

	item := b.doc.AppendChild(parent, adast.NodeListItem)
	item.Level = len(b.items) + 1
	item.Span = tok.Span
	item.BlankLinesBefore = b.blankRun

	if meta, ok := tok.Meta.(*adast.ListMeta); ok {
		item.Marker = meta.Marker
		item.Text = meta.Text
		b.addInlines(item, scanInline(meta.Text), meta.TextOffset, false)
	}

	b.items = append(b.items, item)
	b.itemKeys = append(b.itemKeys, key)
}

func (b *builder) popItem() {
	n := len(b.items)
	item := b.items[n-1]
	item.Span.End = b.endPosition(item)
	b.items = b.items[:n-1]
	b.itemKeys = b.itemKeys[:n-1]
}

func (b *builder) closeList() {
	if b.list == nil {
		return
	}
	b.closeParagraph()
	for len(b.items) > 0 {
		b.popItem()
	}
	b.list.Span.End = b.endPosition(b.list)
	b.list = nil
	b.continuation = false
	b.blankInList = false
}

func (b *builder) attrEntry(tok adast.Token) {
	b.closeParagraph()
	b.closeList()

	entry := b.doc.AppendChild(b.container(), adast.NodeAttributeEntry)
	entry.Span = tok.Span
	entry.BlankLinesBefore = b.blankRun
	if meta, ok := tok.Meta.(*adast.AttrMeta); ok {
		entry.Name = meta.Name
		entry.Value = meta.Value
		entry.Unset = meta.Unset
	}

	b.doc.Attributes.Add(entry)
	b.pendingAttrs = append(b.pendingAttrs, entry)
}

func (b *builder) text(tok adast.Token) {
	if b.list != nil && b.listText(tok) {
		return
	}

	if b.para != nil {
		b.paraLines = append(b.paraLines, tok)
		return
	}

	parent := b.container()
	trimmed := strings.TrimSpace(tok.Raw)

	if tok.Indent == 0 {
		if block := b.tryBlockMacro(parent, tok, trimmed); block != nil {
			return
		}
	}

	b.startParagraph(parent, tok)
}

// listText handles a text line while a list is open. It returns false when
// the line closes the list.
func (b *builder) listText(tok adast.Token) bool {
	trimmed := strings.TrimSpace(tok.Raw)
	item := b.items[len(b.items)-1]

	switch {
	case trimmed == "+":
		b.closeParagraph()
		b.continuation = true
		return true
	case b.continuation:
		b.continuation = false
		b.startParagraph(item, tok)
		return true
	case b.para != nil:
		b.paraLines = append(b.paraLines, tok)
		return true
	case !b.blankInList && !hasAttachedBlock(item):
		// A wrapped line of the item text.
		item.Text += " " + trimmed
		item.Span.End = tok.Span.End
		offset := tok.Span.Start.Offset + tok.Indent
		b.addInlines(item, scanInline(trimmed), offset, false)
		return true
	}

	b.closeList()
	return false
}

// hasAttachedBlock reports whether a continuation attached a block to item.
// Text after such a block no longer wraps the item text.
func hasAttachedBlock(item *adast.Node) bool {
	return slices.ContainsFunc(item.Children, func(c *adast.Node) bool {
		return c.Kind == adast.NodeBlock
	})
}

// tryBlockMacro recognizes 'image::target[attrs]' and 'include::target[attrs]'.
func (b *builder) tryBlockMacro(parent *adast.Node, tok adast.Token, trimmed string) *adast.Node {
	var blockType adast.BlockType
	var prefix string

	switch {
	case strings.HasPrefix(trimmed, "image::"):
		blockType, prefix = adast.BlockImage, "image::"
	case strings.HasPrefix(trimmed, "include::"):
		blockType, prefix = adast.BlockInclude, "include::"
	default:
		return nil
	}

	open := strings.IndexByte(trimmed, '[')
	if open < len(prefix) || !strings.HasSuffix(trimmed, "]") {
		return nil
	}

	block := b.newBlock(parent, blockType, tok)
	block.Raw = tok.Raw
	block.Target = trimmed[len(prefix):open]
	block.AttrText = trimmed[open+1 : len(trimmed)-1]
	return block
}

func (b *builder) startParagraph(parent *adast.Node, tok adast.Token) {
	blockType := adast.BlockParagraph
	if tok.Indent > 0 {
		blockType = adast.BlockLiteral
	}

	para := b.newBlock(parent, blockType, tok)

	if label := admonitionPrefix(tok.Raw); label != "" {
		para.BlockType = adast.BlockAdmonition
		para.Label = label
	} else if isAdmonitionLabel(para.Style) {
		para.BlockType = adast.BlockAdmonition
		para.Label = para.Style
	}

	b.para = para
	b.paraLines = []adast.Token{tok}
}

func (b *builder) closeParagraph() {
	if b.para == nil {
		return
	}

	para := b.para
	lines := make([]string, len(b.paraLines))
	for i, line := range b.paraLines {
		lines[i] = line.Raw
	}
	para.Raw = strings.Join(lines, "\n")
	para.Span.End = b.paraLines[len(b.paraLines)-1].Span.End

	if para.BlockType != adast.BlockLiteral {
		for i, line := range b.paraLines {
			text := line.Raw
			offset := line.Span.Start.Offset
			if i == 0 && para.Label != "" && strings.HasPrefix(text, para.Label+":") {
				skip := len(para.Label) + 1
				skip += leadingWhitespace(text[skip:])
				text = text[skip:]
				offset += skip
			}
			b.addInlines(para, scanInline(text), offset, false)
		}
	}

	b.para = nil
	b.paraLines = nil
}

// newBlock creates a block and attaches pending metadata.
func (b *builder) newBlock(parent *adast.Node, blockType adast.BlockType, tok adast.Token) *adast.Node {
	block := b.doc.AppendChild(parent, adast.NodeBlock)
	block.BlockType = blockType
	block.Span = tok.Span
	block.ContentLine = tok.Line()
	block.BlankLinesBefore = b.blankRun
	b.attachMetadata(block)
	return block
}

// attachMetadata moves pending attribute entries, block attributes and
// block title onto n.
func (b *builder) attachMetadata(n *adast.Node) {
	n.Metadata = b.pendingAttrs
	b.pendingAttrs = nil

	if tok := b.pendingBlockAttrs; tok != nil {
		inner := strings.TrimSpace(tok.Raw)
		if len(inner) >= 2 && inner[0] == '[' && inner[len(inner)-1] == ']' {
			inner = inner[1 : len(inner)-1]
			n.AttrList = inner
			if !strings.HasPrefix(inner, "[") {
				applyAttrList(n, inner)
			}
		}
		b.pendingBlockAttrs = nil
	}

	if tok := b.pendingTitle; tok != nil {
		n.BlockTitle = strings.TrimSpace(strings.TrimPrefix(tok.Raw, "."))
		b.pendingTitle = nil
	}
}

// applyAttrList reads the style and source language from an attribute
// list such as 'source,go,linenums'.
func applyAttrList(n *adast.Node, list string) {
	var positional []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if strings.Contains(part, "=") {
			name, value, _ := strings.Cut(part, "=")
			if strings.TrimSpace(name) == "language" {
				n.Language = strings.Trim(strings.TrimSpace(value), `"`)
			}
			continue
		}
		positional = append(positional, part)
	}

	if len(positional) > 0 {
		style := positional[0]
		// '#id', '.role' and '%option' shorthands may follow the style.
		if i := strings.IndexAny(style, "#.%"); i >= 0 {
			style = style[:i]
		}
		n.Style = style
	}
	if n.Style == "source" && len(positional) > 1 && n.Language == "" {
		n.Language = positional[1]
	}
}

// endPosition is the end of the most recent content, never before n starts.
func (b *builder) endPosition(n *adast.Node) adast.Position {
	if b.lastEnd < n.Span.End.Offset {
		return n.Span.End
	}
	return b.doc.PositionAt(b.lastEnd)
}

// addInlines converts scanned spans into nodes under parent. Title spans
// go to parent.Title instead of parent.Children.
func (b *builder) addInlines(parent *adast.Node, spans []inlineSpan, base int, title bool) {
	for _, span := range spans {
		n := b.doc.NewNode(adast.NodeInlineSpan, parent)
		n.InlineType = span.typ
		n.Span = b.doc.SpanOf(base+span.start, base+span.end)
		n.Text = span.text
		n.Target = span.target
		n.AttrText = span.attrText
		n.Name = span.name

		if title {
			parent.Title = append(parent.Title, n)
		} else {
			parent.Children = append(parent.Children, n)
		}

		if len(span.children) > 0 {
			b.addInlines(n, span.children, base, false)
		}
	}
}

func delimitedType(delim string) adast.BlockType {
	switch {
	case delim == "--":
		return adast.BlockOpen
	case delim == fence:
		return adast.BlockListing
	case delim == "":
		return adast.BlockOpen
	}

	switch delim[0] {
	case '|', ',', ':', '!':
		return adast.BlockTable
	case '-':
		return adast.BlockListing
	case '.':
		return adast.BlockLiteral
	case '=':
		return adast.BlockExample
	case '*':
		return adast.BlockSidebar
	case '_':
		return adast.BlockQuote
	case '+':
		return adast.BlockPassthrough
	case '/':
		return adast.BlockComment
	default:
		return adast.BlockOpen
	}
}

func isAdmonitionLabel(s string) bool {
	for _, label := range admonitionLabels {
		if s == label {
			return true
		}
	}
	return false
}

// admonitionPrefix returns the label of a 'NOTE: text' line, or "".
func admonitionPrefix(line string) string {
	for _, label := range admonitionLabels {
		if strings.HasPrefix(line, label+": ") {
			return label
		}
	}
	return ""
}
