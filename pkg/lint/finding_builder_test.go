package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

func TestNewFinding(t *testing.T) {
	t.Parallel()

	node := &adast.Node{Span: adast.Span{
		Start: adast.Position{Line: 3, Column: 2, Offset: 10},
		End:   adast.Position{Line: 3, Column: 8, Offset: 16},
	}}

	f := lint.NewFinding("HEAD001", node, "skipped level").
		WithSeverity(config.SeverityError).
		WithSuggestion("use == instead").
		Build()

	assert.Equal(t, "HEAD001", f.RuleID)
	assert.Equal(t, "skipped level", f.Message)
	assert.Equal(t, node.Span, f.Span)
	assert.Equal(t, 3, f.Line())
	assert.Equal(t, 2, f.Column())
	assert.Equal(t, config.SeverityError, f.Severity)
	assert.Equal(t, "use == instead", f.Suggestion)
	assert.False(t, f.Internal)
}

func TestNewFinding_NilNode(t *testing.T) {
	t.Parallel()

	f := lint.NewFinding("X", nil, "msg").Build()
	assert.Equal(t, adast.Span{}, f.Span)
}

func TestNewFindingAt(t *testing.T) {
	t.Parallel()

	span := adast.Span{Start: adast.Position{Line: 4, Column: 7, Offset: 30}}
	f := lint.NewFindingAt("ATTR002", span, "undefined attribute {product}").Build()

	assert.Equal(t, span, f.Span)
	assert.Equal(t, 4, f.Line())
	assert.Equal(t, 7, f.Column())
	assert.Empty(t, f.RuleName)
	assert.Empty(t, f.FilePath)
}
