package adast

import "fmt"

// Position is a location in a document.
// Line and Column are 1-based, Offset is a 0-based byte index.
// Column counts runes from the start of the line.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid returns true if this position has valid (positive) line and column values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// Compare orders positions by line, then column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line != other.Line:
		return p.Line - other.Line
	case p.Column != other.Column:
		return p.Column - other.Column
	default:
		return p.Offset - other.Offset
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a range of source text. End is exclusive and never precedes Start.
type Span struct {
	Start Position
	End   Position
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains returns true if the given byte offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsSingleLine returns true if start and end are on the same line.
func (s Span) IsSingleLine() bool {
	return s.Start.Line == s.End.Line
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}
