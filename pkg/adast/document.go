// Package adast provides the structural model of an AsciiDoc document for
// adoclint: positions, line-level tokens, and a tree of typed nodes.
//
// A Document owns its nodes through an arena. Children are owned slices,
// parent links are arena indices, so the tree carries no reference cycles.
package adast

import (
	"strconv"
	"strings"
)

// Document is the root of the structural model for one file.
// It owns the content, the token stream, all nodes and the attribute index.
type Document struct {
	*LineIndex

	// Path is the file path (may be empty for in-memory content).
	Path string

	// Tokens is the line token stream. Token i describes line i+1.
	Tokens []Token

	// Root is the Document node.
	Root *Node

	// Attributes indexes attribute entries in document order.
	Attributes *AttributeIndex

	nodes []*Node
}

// NewDocument creates an empty Document with a root node and line index.
// It does not tokenize or parse; that is the parser's job.
func NewDocument(path string, content []byte) *Document {
	doc := &Document{
		LineIndex:  NewLineIndex(content),
		Path:       path,
		Attributes: NewAttributeIndex(),
	}
	doc.Root = doc.NewNode(NodeDocument, nil)
	doc.Root.Span = doc.SpanOf(0, len(content))
	return doc
}

// NewNode allocates a node in the arena with the given parent.
// The node is not appended to the parent's children.
func (d *Document) NewNode(kind NodeKind, parent *Node) *Node {
	parentID := NoNode
	if parent != nil {
		parentID = parent.ID
	}
	n := &Node{
		ID:       NodeID(len(d.nodes)),
		Kind:     kind,
		ParentID: parentID,
	}
	d.nodes = append(d.nodes, n)
	return n
}

// AppendChild allocates a node and appends it to parent's children.
func (d *Document) AppendChild(parent *Node, kind NodeKind) *Node {
	n := d.NewNode(kind, parent)
	parent.Children = append(parent.Children, n)
	return n
}

// Node returns the node with the given ID, or nil if out of range.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return d.nodes[id]
}

// NodeCount returns the number of nodes in the arena.
func (d *Document) NodeCount() int {
	return len(d.nodes)
}

// Parent returns the parent of n, or nil for the root.
func (d *Document) Parent(n *Node) *Node {
	if n == nil {
		return nil
	}
	return d.Node(n.ParentID)
}

// Ancestors returns the ancestors of n, nearest first.
func (d *Document) Ancestors(n *Node) []*Node {
	var out []*Node
	seen := 0
	for p := d.Parent(n); p != nil && seen <= len(d.nodes); p = d.Parent(p) {
		out = append(out, p)
		seen++
	}
	return out
}

// EnclosingSection returns the nearest Section ancestor of n, or nil.
func (d *Document) EnclosingSection(n *Node) *Node {
	for _, a := range d.Ancestors(n) {
		if a.Kind == NodeSection {
			return a
		}
	}
	return nil
}

// NodePath describes the position of n in the tree, e.g.
// "Document/Section[0]/Block[2]". Used in invariant errors.
func (d *Document) NodePath(n *Node) string {
	chain := append([]*Node{n}, d.Ancestors(n)...)
	parts := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i]
		label := cur.Kind.String()
		if i < len(chain)-1 {
			label += "[" + strconv.Itoa(childIndex(chain[i+1], cur)) + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "/")
}

func childIndex(parent, child *Node) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	for i, c := range parent.Title {
		if c == child {
			return i
		}
	}
	return -1
}

// TokenAt returns the token for a 1-based line.
func (d *Document) TokenAt(line int) (Token, bool) {
	if line < 1 || line > len(d.Tokens) {
		return Token{}, false
	}
	return d.Tokens[line-1], true
}

// Attribute returns the value of a document attribute.
func (d *Document) Attribute(name string) (string, bool) {
	return d.Attributes.Get(name)
}

// AttributeIndex is the order-preserving index of attribute entries.
// Lookups return the last value written; an unset entry removes the name.
type AttributeIndex struct {
	entries []*Node
	values  map[string]string
}

// NewAttributeIndex creates an empty index.
func NewAttributeIndex() *AttributeIndex {
	return &AttributeIndex{values: make(map[string]string)}
}

// Add records an AttributeEntry node.
func (a *AttributeIndex) Add(entry *Node) {
	a.entries = append(a.entries, entry)
	key := strings.ToLower(entry.Name)
	if entry.Unset {
		delete(a.values, key)
		return
	}
	a.values[key] = entry.Value
}

// Get returns the current value of name. Attribute names are case-insensitive.
func (a *AttributeIndex) Get(name string) (string, bool) {
	v, ok := a.values[strings.ToLower(name)]
	return v, ok
}

// Len returns the number of recorded entries.
func (a *AttributeIndex) Len() int {
	return len(a.entries)
}

// DefinedBefore reports whether name is set by an entry that starts before
// offset, taking later unsets into account.
func (a *AttributeIndex) DefinedBefore(name string, offset int) bool {
	key := strings.ToLower(name)
	defined := false
	for _, e := range a.entries {
		if e.Span.Start.Offset >= offset {
			break
		}
		if strings.ToLower(e.Name) == key {
			defined = !e.Unset
		}
	}
	return defined
}
