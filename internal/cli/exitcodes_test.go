package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/internal/cli"
	"github.com/yaklabco/adoclint/pkg/lint"
)

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	invariant := &lint.InvariantError{Path: "a.adoc", NodePath: "Document/Block[0]", Reason: "child parent link does not point back"}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "issues", err: &cli.IssuesError{Code: cli.ExitLintWarnings}, want: cli.ExitLintWarnings},
		{name: "plain error", err: errors.New("read failed"), want: cli.ExitLintErrors},
		{name: "invariant", err: invariant, want: cli.ExitInternalError},
		{
			name: "wrapped invariant",
			err:  errors.Join(errors.New("lint run failed"), fmt.Errorf("run aborted: %w", invariant)),
			want: cli.ExitInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}
