package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateAttributeRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLines []int
	}{
		{name: "distinct attributes", input: ":a: 1\n:b: 2\n", wantLines: []int{}},
		{name: "redefined", input: ":author: Alice\n:author: Bob\n", wantLines: []int{2}},
		{name: "case-insensitive", input: ":Author: Alice\n:author: Bob\n", wantLines: []int{2}},
		{name: "unset then set again", input: ":toc:\n:toc!:\n:toc: left\n", wantLines: []int{}},
		{name: "three definitions", input: ":v: 1\n:v: 2\n:v: 3\n", wantLines: []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings := runRule(t, NewDuplicateAttributeRule(), tt.input, nil)
			assert.Equal(t, tt.wantLines, findingLines(findings))
		})
	}
}

func TestDuplicateAttributeRule_Message(t *testing.T) {
	t.Parallel()

	findings := runRule(t, NewDuplicateAttributeRule(), ":author: Alice\n\n:author: Bob\n", nil)
	require.Len(t, findings, 1)
	assert.Equal(t, `Attribute "author" is already set at line 1`, findings[0].Message)
}

func TestUndefinedAttributeRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		opts      map[string]any
		wantLines []int
	}{
		{
			name:      "defined above",
			input:     ":product: adoclint\n\nWelcome to {product}.\n",
			wantLines: []int{},
		},
		{
			name:      "undefined",
			input:     "Welcome to {product}.\n",
			wantLines: []int{1},
		},
		{
			name:      "defined below",
			input:     "Welcome to {product}.\n\n:product: adoclint\n",
			wantLines: []int{1},
		},
		{
			name:      "unset before use",
			input:     ":product: x\n:product!:\n\nUse {product}.\n",
			wantLines: []int{4},
		},
		{
			name:      "built-in attributes",
			input:     "A{nbsp}B, {doctitle} and {author}.\n",
			wantLines: []int{},
		},
		{
			name:      "allowed by option",
			input:     "Version {release}.\n",
			opts:      map[string]any{"allowed": []any{"release"}},
			wantLines: []int{},
		},
		{
			name:      "escaped reference",
			input:     `Literal \{product}.` + "\n",
			wantLines: []int{},
		},
		{
			name:      "inside list items and titles",
			input:     "== About {name}\n\n* uses {tool}\n",
			wantLines: []int{1, 3},
		},
		{
			name:      "verbatim blocks are not scanned",
			input:     "----\n{not_an_attribute}\n----\n",
			wantLines: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings := runRule(t, NewUndefinedAttributeRule(), tt.input, tt.opts)
			assert.Equal(t, tt.wantLines, findingLines(findings))
		})
	}
}

func TestUndefinedAttributeRule_Finding(t *testing.T) {
	t.Parallel()

	findings := runRule(t, NewUndefinedAttributeRule(), "Hi {user}!\n", nil)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, `Attribute "user" is referenced but not defined`, f.Message)
	assert.Equal(t, "Define it with :user: value before this line", f.Suggestion)
	assert.Equal(t, 4, f.Column())
	assert.Equal(t, 10, f.Span.End.Column)
}
