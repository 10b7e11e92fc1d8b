// Package langdetect guesses and validates the language of AsciiDoc source
// blocks. Guessing combines shebangs, a small set of telltale patterns and
// the go-enry classifier; validation resolves names through enry aliases.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Language names as written in a [source,lang] attribute.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
	langConsole    = "console"
)

// classifierCandidates limits the enry classifier to common documentation languages.
//
//nolint:gochecknoglobals // Fixed candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile", "AsciiDoc",
}

// detector recognizes one language from highly indicative patterns.
type detector struct {
	lang  string
	match func(content, trimmed []byte, text string) bool
}

// detectors are tried in order of specificity.
//
//nolint:gochecknoglobals // Fixed detector table.
var detectors = []detector{
	{langConsole, func(_, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("$ "))
	}},
	{langGo, func(_, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{langPython, func(_, _ []byte, text string) bool {
		if strings.Contains(text, "def ") && strings.Contains(text, "):") {
			return true
		}
		if strings.Contains(text, "__name__") || strings.Contains(text, "__main__") {
			return true
		}
		return strings.Contains(text, "import ") && !strings.Contains(text, "import (") &&
			(strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import "))
	}},
	{langHTML, func(_, trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{langJSON, func(_, trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{langDockerfile, func(content, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
			(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")))
	}},
	{langSQL, func(_, _ []byte, text string) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{langRust, func(_, _ []byte, text string) bool {
		return strings.Contains(text, "fn main()") ||
			strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{langJavaScript, func(_, _ []byte, text string) bool {
		return strings.Contains(text, "=>") ||
			strings.Contains(text, "const ") ||
			strings.Contains(text, "console.log")
	}},
	{langYAML, func(content, _ []byte, _ string) bool {
		return yamlKeyCount(content) >= 2
	}},
}

// Detect returns the detected language for source block content.
// Returns Text if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	text := string(content)
	for _, d := range detectors {
		if d.match(content, trimmed, text) {
			return d.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Suggest returns a language to recommend for content, and false when the
// content gives no usable signal.
func Suggest(content string) (string, bool) {
	lang := Detect([]byte(content))
	return lang, lang != Text
}

// Known reports whether name is a language or alias enry recognizes, such
// as "go", "golang", "sh" or "yml". Console transcripts are always known.
func Known(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	switch strings.ToLower(name) {
	case langConsole, Text, "plaintext", "none":
		return true
	}
	_, ok := enry.GetLanguageByAlias(name)
	return ok
}

// yamlKeyCount counts lines that look like 'key: value' or root list items.
func yamlKeyCount(content []byte) int {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count
}

// normalize converts go-enry language names to source block names.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
