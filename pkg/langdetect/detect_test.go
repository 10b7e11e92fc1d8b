package langdetect_test

import (
	"testing"

	"github.com/yaklabco/adoclint/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"sh shebang reads as bash", "#!/bin/sh\nset -eu\nmake docs", "bash"},
		{"env python shebang", "#!/usr/bin/env python3\nprint('built')", "python"},
		{"shebang beats patterns", "#!/bin/bash\ndef build():\n    pass", "bash"},
		{"console prompt", "$ asciidoctor -r asciidoctor-pdf guide.adoc\n", "console"},
		{"go package clause", "package main\n\nfunc main() {}\n", "go"},
		{"python function", "def render(doc):\n    return doc.convert()\n", "python"},
		{"python main guard", "if __name__ == '__main__':\n    main()\n", "python"},
		{"arrow function", "const render = (doc) => doc.convert();\n", "javascript"},
		{"json object", `{"name": "antora", "version": 3}`, "json"},
		{"json array", `["modules/ROOT/nav.adoc", "modules/api/nav.adoc"]`, "json"},
		{"antora yaml", "name: docs\nversion: ~\nnav:\n  - modules/ROOT/nav.adoc\n", "yaml"},
		{"rust main", "fn main() {\n    println!(\"{}\", 1);\n}\n", "rust"},
		{"select statement", "SELECT title FROM pages WHERE draft = 0;", "sql"},
		{"html page", "<!DOCTYPE html>\n<html><body><p>hi</p></body></html>", "html"},
		{"dockerfile", "FROM ruby:3.3\nRUN gem install asciidoctor\n", "dockerfile"},
		{"prose", "just some words with no code in them", langdetect.Text},
		{"blank", "  \n\t\n", langdetect.Text},
		{"empty", "", langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Detect([]byte(tt.src)); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	if lang, ok := langdetect.Suggest("package main\n"); !ok || lang != "go" {
		t.Errorf("Suggest(go) = %q, %v", lang, ok)
	}
	if lang, ok := langdetect.Suggest("   \n"); ok || lang != langdetect.Text {
		t.Errorf("Suggest(blank) = %q, %v", lang, ok)
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"go":        true,
		"golang":    true,
		"Python":    true,
		"yml":       true,
		"console":   true,
		"text":      true,
		"plaintext": true,
		" ruby ":    true,
		"":          false,
		"klingon":   false,
	} {
		if got := langdetect.Known(name); got != want {
			t.Errorf("Known(%q) = %v, want %v", name, got, want)
		}
	}
}
