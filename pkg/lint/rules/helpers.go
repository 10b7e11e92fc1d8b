package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
)

// metadataTop returns the first line of the metadata stack ('[attrs]',
// '.Title' and comment lines) directly above line. Returns line itself
// when nothing is stacked above it.
func metadataTop(doc *adast.Document, line int) int {
	top := line
	for prev := line - 1; prev >= 1; prev-- {
		tok, ok := doc.TokenAt(prev)
		if !ok {
			break
		}
		switch tok.Kind {
		case adast.TokBlockAttrs, adast.TokBlockTitle, adast.TokComment:
			top = prev
			continue
		}
		break
	}
	return top
}

// headingLine returns the span of the line that opens node.
func headingLine(doc *adast.Document, node *adast.Node) adast.Span {
	return doc.LineSpan(node.Span.Start.Line)
}

// separatedAbove reports whether the line above node's metadata stack is
// a blank line, a heading, a list continuation or the document start.
func separatedAbove(doc *adast.Document, node *adast.Node) bool {
	prev := metadataTop(doc, node.Span.Start.Line) - 1
	if prev < 1 {
		return true
	}
	tok, ok := doc.TokenAt(prev)
	if !ok {
		return true
	}
	return isSeparator(tok)
}

// separatedBelow reports whether the line after node is a blank line, a
// heading, a list continuation or the end of the document.
func separatedBelow(doc *adast.Document, node *adast.Node) bool {
	tok, ok := doc.TokenAt(node.Span.End.Line + 1)
	if !ok {
		return true
	}
	return isSeparator(tok)
}

func isSeparator(tok adast.Token) bool {
	switch tok.Kind {
	case adast.TokBlank, adast.TokHeading:
		return true
	case adast.TokText:
		return strings.TrimSpace(tok.Raw) == "+"
	default:
		return false
	}
}

// insideListItem reports whether node has a list item ancestor.
func insideListItem(doc *adast.Document, node *adast.Node) bool {
	for _, a := range doc.Ancestors(node) {
		if a.Kind == adast.NodeListItem {
			return true
		}
	}
	return false
}

// splitAttrList splits a macro or block attribute list on commas that are
// not inside double quotes. Parts are trimmed.
func splitAttrList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var parts []string
	var current strings.Builder
	inQuotes := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(parts, strings.TrimSpace(current.String()))
}

// namedAttr returns the value of name=value in an attribute list.
func namedAttr(parts []string, name string) (string, bool) {
	for _, part := range parts {
		key, value, ok := strings.Cut(part, "=")
		if ok && strings.TrimSpace(key) == name {
			return unquote(strings.TrimSpace(value)), true
		}
	}
	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// isRemote reports whether target points outside the file system.
func isRemote(target string) bool {
	return strings.Contains(target, "://") || strings.HasPrefix(target, "data:")
}

// hasAttrRef reports whether target contains an attribute reference that
// cannot be resolved without rendering.
func hasAttrRef(target string) bool {
	return strings.Contains(target, "{")
}

// resolveLocal resolves target relative to the directory of the document.
// Returns false for in-memory documents.
func resolveLocal(doc *adast.Document, dir, target string) (string, bool) {
	if doc.Path == "" {
		return "", false
	}
	if filepath.IsAbs(target) {
		return target, true
	}
	base := filepath.Dir(doc.Path)
	if dir != "" {
		if filepath.IsAbs(dir) {
			base = dir
		} else {
			base = filepath.Join(base, dir)
		}
	}
	return filepath.Join(base, filepath.FromSlash(target)), true
}

// fileExists reports whether path names an existing file or directory.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
