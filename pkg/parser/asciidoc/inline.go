package asciidoc

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
)

// inlineSpan is a scanned inline element. Offsets are relative to the
// scanned string.
type inlineSpan struct {
	typ      adast.InlineType
	start    int
	end      int
	text     string
	target   string
	attrText string
	name     string
	children []inlineSpan
}

//nolint:gochecknoglobals // Fixed scheme table.
var urlSchemes = []string{"https://", "http://", "ftp://", "irc://", "mailto:"}

// scanInline splits one line of text into inline spans. Unclosed markers
// are kept as plain text.
func scanInline(s string) []inlineSpan {
	var spans []inlineSpan
	textStart := 0

	flush := func(end int) {
		if end > textStart {
			spans = append(spans, inlineSpan{
				typ:   adast.InlineText,
				start: textStart,
				end:   end,
				text:  s[textStart:end],
			})
		}
	}

	for i := 0; i < len(s); {
		if s[i] == '\\' {
			i += 2
			continue
		}

		span, ok := matchInline(s, i)
		if !ok {
			i++
			continue
		}

		flush(i)
		spans = append(spans, span)
		i = span.end
		textStart = i
	}

	flush(len(s))
	return spans
}

// matchInline tries every inline form at position i.
func matchInline(s string, i int) (inlineSpan, bool) {
	switch s[i] {
	case '{':
		return matchAttrRef(s, i)
	case '<':
		return matchXrefShorthand(s, i)
	case '`':
		return matchFormatted(s, i, '`', adast.InlineMonospace)
	case '*':
		return matchFormatted(s, i, '*', adast.InlineStrong)
	case '_':
		return matchFormatted(s, i, '_', adast.InlineEmphasis)
	}

	if !atWordStart(s, i) {
		return inlineSpan{}, false
	}

	rest := s[i:]
	switch {
	case strings.HasPrefix(rest, "image:") && !strings.HasPrefix(rest, "image::"):
		return matchMacro(s, i, len("image:"), adast.InlineImage)
	case strings.HasPrefix(rest, "link:"):
		return matchMacro(s, i, len("link:"), adast.InlineLink)
	case strings.HasPrefix(rest, "xref:"):
		return matchMacro(s, i, len("xref:"), adast.InlineXref)
	}

	for _, scheme := range urlSchemes {
		if strings.HasPrefix(rest, scheme) {
			return matchURL(s, i)
		}
	}

	return inlineSpan{}, false
}

// matchAttrRef matches '{name}'.
func matchAttrRef(s string, i int) (inlineSpan, bool) {
	end := strings.IndexByte(s[i+1:], '}')
	if end < 1 {
		return inlineSpan{}, false
	}
	name := s[i+1 : i+1+end]
	if !isAttrName(name) {
		return inlineSpan{}, false
	}
	return inlineSpan{
		typ:   adast.InlineAttrRef,
		start: i,
		end:   i + end + 2,
		text:  s[i : i+end+2],
		name:  name,
	}, true
}

// matchXrefShorthand matches '<<id>>' and '<<id,text>>'.
func matchXrefShorthand(s string, i int) (inlineSpan, bool) {
	if !strings.HasPrefix(s[i:], "<<") {
		return inlineSpan{}, false
	}
	end := strings.Index(s[i+2:], ">>")
	if end < 1 {
		return inlineSpan{}, false
	}
	inner := s[i+2 : i+2+end]
	target, text, _ := strings.Cut(inner, ",")
	return inlineSpan{
		typ:    adast.InlineXref,
		start:  i,
		end:    i + end + 4,
		text:   strings.TrimSpace(text),
		target: strings.TrimSpace(target),
	}, true
}

// matchMacro matches 'name:target[attrs]'.
func matchMacro(s string, i, prefixLen int, typ adast.InlineType) (inlineSpan, bool) {
	bodyStart := i + prefixLen
	open := strings.IndexByte(s[bodyStart:], '[')
	if open < 0 {
		return inlineSpan{}, false
	}
	target := s[bodyStart : bodyStart+open]
	if (target == "" && typ != adast.InlineXref) || strings.ContainsAny(target, " \t") {
		return inlineSpan{}, false
	}
	attrStart := bodyStart + open + 1
	closeIdx := strings.IndexByte(s[attrStart:], ']')
	if closeIdx < 0 {
		return inlineSpan{}, false
	}
	attrText := s[attrStart : attrStart+closeIdx]
	return inlineSpan{
		typ:      typ,
		start:    i,
		end:      attrStart + closeIdx + 1,
		text:     attrText,
		target:   target,
		attrText: attrText,
	}, true
}

// matchURL matches a bare URL with an optional '[text]' suffix.
func matchURL(s string, i int) (inlineSpan, bool) {
	end := i
	for end < len(s) && s[end] != ' ' && s[end] != '\t' && s[end] != '[' && s[end] != '<' {
		end++
	}
	target := strings.TrimRight(s[i:end], ".,;:!?)")
	end = i + len(target)

	span := inlineSpan{typ: adast.InlineLink, start: i, end: end, target: target, text: target}
	if end < len(s) && s[end] == '[' {
		if closeIdx := strings.IndexByte(s[end+1:], ']'); closeIdx >= 0 {
			span.attrText = s[end+1 : end+1+closeIdx]
			span.text = span.attrText
			span.end = end + closeIdx + 2
		}
	}
	return span, true
}

// matchFormatted matches constrained ('*x*') and unconstrained ('**x**')
// formatting pairs. Inner text is scanned for nested spans.
func matchFormatted(s string, i int, mark byte, typ adast.InlineType) (inlineSpan, bool) {
	if i+1 < len(s) && s[i+1] == mark {
		pair := string([]byte{mark, mark})
		end := strings.Index(s[i+2:], pair)
		if end > 0 {
			return formattedSpan(s, i, i+2, i+2+end, i+4+end, typ), true
		}
	}

	if !atWordStart(s, i) || i+1 >= len(s) || s[i+1] == ' ' || s[i+1] == mark {
		return inlineSpan{}, false
	}

	for j := i + 1; j < len(s); j++ {
		if s[j] != mark {
			continue
		}
		if s[j-1] == ' ' {
			continue
		}
		if j+1 < len(s) && isAlnum(s[j+1]) {
			continue
		}
		if j == i+1 {
			return inlineSpan{}, false
		}
		return formattedSpan(s, i, i+1, j, j+1, typ), true
	}
	return inlineSpan{}, false
}

func formattedSpan(s string, start, innerStart, innerEnd, end int, typ adast.InlineType) inlineSpan {
	inner := s[innerStart:innerEnd]
	span := inlineSpan{typ: typ, start: start, end: end, text: inner}
	for _, child := range scanInline(inner) {
		span.children = append(span.children, shiftSpan(child, innerStart))
	}
	return span
}

func shiftSpan(span inlineSpan, by int) inlineSpan {
	span.start += by
	span.end += by
	for i := range span.children {
		span.children[i] = shiftSpan(span.children[i], by)
	}
	return span
}

func atWordStart(s string, i int) bool {
	return i == 0 || !isAlnum(s[i-1])
}
