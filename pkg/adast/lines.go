package adast

import (
	"sort"
	"unicode/utf8"
)

// LineInfo holds metadata for a single line in a document.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// BuildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Last line, which may be empty after a trailing newline.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineIndex is the position tracker for one document. It maps byte offsets
// to line/column positions and back.
type LineIndex struct {
	// Content is the full document bytes.
	Content []byte

	// Lines contains metadata for each line, including the empty line that
	// follows a trailing newline.
	Lines []LineInfo
}

// NewLineIndex builds the line table for content.
func NewLineIndex(content []byte) *LineIndex {
	return &LineIndex{
		Content: content,
		Lines:   BuildLines(content),
	}
}

// ContentLineCount returns the number of lines that carry content,
// which excludes the empty remainder after a trailing newline.
func (li *LineIndex) ContentLineCount() int {
	n := len(li.Lines)
	if n > 0 && li.Lines[n-1].StartOffset == len(li.Content) &&
		(len(li.Content) == 0 || li.Content[len(li.Content)-1] == '\n') {
		n--
	}
	return n
}

// PositionAt converts a byte offset to a Position.
// Offsets past the end of the content clamp to the end position.
// Negative offsets clamp to the start.
func (li *LineIndex) PositionAt(offset int) Position {
	if len(li.Lines) == 0 {
		return Position{Line: 1, Column: 1, Offset: 0}
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.Content) {
		offset = len(li.Content)
	}

	lineIdx := sort.Search(len(li.Lines), func(i int) bool {
		return li.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(li.Lines) {
		lineIdx = len(li.Lines) - 1
	}

	info := li.Lines[lineIdx]
	end := offset
	if end > info.NewlineStart {
		// Offsets inside a CRLF pair stay on the column after the text.
		end = info.NewlineStart
	}
	col := utf8.RuneCount(li.Content[info.StartOffset:end]) + 1 + (offset - end)

	return Position{Line: lineIdx + 1, Column: col, Offset: offset}
}

// SpanOf builds a Span for the byte range [start, end).
func (li *LineIndex) SpanOf(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Start: li.PositionAt(start), End: li.PositionAt(end)}
}

// LineSpan returns the span of a 1-based line, excluding the newline.
// Returns the zero Span if the line is out of range.
func (li *LineIndex) LineSpan(line int) Span {
	if line < 1 || line > len(li.Lines) {
		return Span{}
	}
	info := li.Lines[line-1]
	return li.SpanOf(info.StartOffset, info.NewlineStart)
}

// Offset converts a 1-based line and rune column to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (li *LineIndex) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(li.Lines) || col < 1 {
		return 0, false
	}

	info := li.Lines[line-1]
	offset := info.StartOffset
	for i := 1; i < col; i++ {
		if offset >= info.NewlineStart {
			return 0, false
		}
		_, size := utf8.DecodeRune(li.Content[offset:info.NewlineStart])
		offset += size
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (li *LineIndex) LineContent(line int) []byte {
	if line < 1 || line > len(li.Lines) {
		return nil
	}

	info := li.Lines[line-1]
	return li.Content[info.StartOffset:info.NewlineStart]
}

// LineText is LineContent as a string.
func (li *LineIndex) LineText(line int) string {
	return string(li.LineContent(line))
}
