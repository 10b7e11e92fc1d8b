package asciidoc

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
)

const (
	// minDelimiterLen is the shortest run of a repeated character that
	// opens or closes a delimited block.
	minDelimiterLen = 4

	// maxHeadingLevel is the deepest section marker ('======').
	maxHeadingLevel = 6

	// maxListDepth is the deepest repeated list marker ('*****').
	maxListDepth = 5

	fence = "```"
)

// tokenizer classifies content line by line.
// It is a total function: every content line yields exactly one token.
type tokenizer struct {
	idx    *adast.LineIndex
	tokens []adast.Token

	// open is the delimiter that closes the currently open block, or "".
	open string
}

// Tokenize splits content into line tokens.
func Tokenize(content []byte) []adast.Token {
	return tokenizeIndex(adast.NewLineIndex(content))
}

func tokenizeIndex(idx *adast.LineIndex) []adast.Token {
	count := idx.ContentLineCount()
	if count == 0 {
		return nil
	}

	tok := &tokenizer{
		idx:    idx,
		tokens: make([]adast.Token, 0, count),
	}

	for line := 1; line <= count; line++ {
		tok.tokenizeLine(line)
	}

	return tok.tokens
}

// tokenizeLine classifies one line and appends its token.
func (t *tokenizer) tokenizeLine(line int) {
	info := t.idx.Lines[line-1]
	raw := string(t.idx.Content[info.StartOffset:info.NewlineStart])

	token := adast.Token{
		Kind:   adast.TokText,
		Raw:    raw,
		Span:   t.idx.SpanOf(info.StartOffset, info.NewlineStart),
		Indent: leadingWhitespace(raw),
	}

	if t.open != "" {
		t.tokenizeVerbatim(&token)
		t.tokens = append(t.tokens, token)
		return
	}

	trimmed := strings.TrimRight(raw, " \t")

	switch {
	case trimmed == "":
		token.Kind = adast.TokBlank
	case t.tryDelimiter(&token, trimmed):
	case t.tryHeading(&token, info.StartOffset):
	case strings.HasPrefix(raw, "//"):
		token.Kind = adast.TokComment
	case t.tryAttrEntry(&token, info.StartOffset):
	case t.tryListMarker(&token, info.StartOffset):
	case isBlockAttrLine(trimmed):
		token.Kind = adast.TokBlockAttrs
	case isBlockTitleLine(raw):
		token.Kind = adast.TokBlockTitle
	}

	t.tokens = append(t.tokens, token)
}

// tokenizeVerbatim classifies a line inside an open delimited block. Only
// the first line identical to the opening delimiter closes the block.
func (t *tokenizer) tokenizeVerbatim(token *adast.Token) {
	token.Verbatim = true

	trimmed := strings.TrimRight(token.Raw, " \t")
	switch {
	case trimmed == t.open:
		token.Kind = adast.TokBlockDelim
		token.Meta = &adast.DelimMeta{Delimiter: t.open, Closing: true}
		t.open = ""
	case trimmed == "":
		token.Kind = adast.TokBlank
	}
}

// tryDelimiter recognizes block delimiter lines and opens the block.
func (t *tokenizer) tryDelimiter(token *adast.Token, trimmed string) bool {
	meta := &adast.DelimMeta{}

	switch {
	case trimmed == "--":
		meta.Delimiter = trimmed
	case strings.HasPrefix(trimmed, fence):
		lang := strings.TrimSpace(strings.TrimLeft(trimmed, "`"))
		if strings.ContainsRune(lang, '`') {
			return false
		}
		meta.Delimiter = fence
		meta.Language = lang
	case isTableDelimiter(trimmed):
		meta.Delimiter = trimmed
	case isRepeatedDelimiter(trimmed):
		meta.Delimiter = trimmed
	default:
		return false
	}

	token.Kind = adast.TokBlockDelim
	token.Meta = meta
	t.open = meta.Delimiter
	return true
}

// isRepeatedDelimiter reports whether s is one delimiter character repeated
// at least minDelimiterLen times.
func isRepeatedDelimiter(s string) bool {
	if len(s) < minDelimiterLen || !strings.ContainsRune("-.=*_+/", rune(s[0])) {
		return false
	}
	return strings.Count(s, s[:1]) == len(s)
}

// isTableDelimiter recognizes '|===', ',===' and ':==='.
func isTableDelimiter(s string) bool {
	if len(s) < minDelimiterLen || !strings.ContainsRune("|,:!", rune(s[0])) {
		return false
	}
	return strings.Count(s[1:], "=") == len(s)-1
}

// tryHeading recognizes '= Title' and '# Title' section lines. A marker
// directly followed by a letter or digit is still a heading with
// MissingSpace set.
func (t *tokenizer) tryHeading(token *adast.Token, lineStart int) bool {
	raw := token.Raw
	if raw == "" || (raw[0] != '=' && raw[0] != '#') {
		return false
	}

	marker := raw[:len(raw)-len(strings.TrimLeft(raw, raw[:1]))]
	if len(marker) > maxHeadingLevel {
		return false
	}

	rest := raw[len(marker):]
	missingSpace := false

	switch {
	case rest == "" || strings.TrimSpace(rest) == "":
		if marker[0] == '#' {
			return false
		}
	case rest[0] == ' ' || rest[0] == '\t':
	default:
		if marker[0] == '#' || !isAlnum(rest[0]) {
			return false
		}
		missingSpace = true
	}

	title := strings.TrimSpace(rest)
	titleOffset := lineStart + len(marker) + (len(rest) - len(strings.TrimLeft(rest, " \t")))

	token.Kind = adast.TokHeading
	token.Level = len(marker)
	token.Meta = &adast.HeadingMeta{
		Marker:       marker,
		Title:        title,
		TitleOffset:  titleOffset,
		MissingSpace: missingSpace,
	}
	return true
}

// tryAttrEntry recognizes ':name: value', ':name!:' and ':!name:'.
func (t *tokenizer) tryAttrEntry(token *adast.Token, lineStart int) bool {
	raw := token.Raw
	if len(raw) < 3 || raw[0] != ':' {
		return false
	}

	end := strings.IndexByte(raw[1:], ':')
	if end < 1 {
		return false
	}
	name := raw[1 : end+1]

	unset := false
	if strings.HasPrefix(name, "!") {
		unset = true
		name = name[1:]
	} else if strings.HasSuffix(name, "!") {
		unset = true
		name = name[:len(name)-1]
	}
	if !isAttrName(name) {
		return false
	}

	rest := raw[end+2:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return false
	}
	value := strings.TrimSpace(rest)

	token.Kind = adast.TokAttrEntry
	token.Meta = &adast.AttrMeta{
		Name:        name,
		Value:       value,
		Unset:       unset,
		ValueOffset: lineStart + len(raw) - len(strings.TrimLeft(rest, " \t")),
	}
	return true
}

// tryListMarker recognizes bullet ('*', '-') and ordered ('.', '1.') list
// items followed by a space and some text.
func (t *tokenizer) tryListMarker(token *adast.Token, lineStart int) bool {
	body := token.Raw[token.Indent:]
	if body == "" {
		return false
	}

	var marker string
	ordered := false

	switch c := body[0]; {
	case c == '*' || c == '.':
		run := len(body) - len(strings.TrimLeft(body, body[:1]))
		if run > maxListDepth {
			return false
		}
		marker = body[:run]
		ordered = c == '.'
	case c == '-':
		marker = "-"
	case c >= '0' && c <= '9':
		digits := len(body) - len(strings.TrimLeft(body, "0123456789"))
		if digits >= len(body) || body[digits] != '.' {
			return false
		}
		marker = body[:digits+1]
		ordered = true
	default:
		return false
	}

	rest := body[len(marker):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return false
	}

	level := 1
	if marker[0] == '*' || marker[0] == '.' {
		level = len(marker)
	}

	token.Kind = adast.TokListMarker
	token.Level = level
	token.Meta = &adast.ListMeta{
		Marker:     marker,
		Ordered:    ordered,
		Text:       text,
		TextOffset: lineStart + token.Indent + len(marker) + (len(rest) - len(strings.TrimLeft(rest, " \t"))),
	}
	return true
}

func isBlockAttrLine(trimmed string) bool {
	return len(trimmed) >= 2 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']'
}

func isBlockTitleLine(raw string) bool {
	return len(raw) >= 2 && raw[0] == '.' && raw[1] != '.' && raw[1] != ' ' && raw[1] != '\t'
}

func isAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case isAlnum(c), c == '_':
		case c == '-' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c >= 0x80
}

func leadingWhitespace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
