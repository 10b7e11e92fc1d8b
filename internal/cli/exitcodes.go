package cli

import (
	"errors"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// Exit codes for adoclint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors or could
	// not read some files.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitLintErrors
	}

	if strict && result.AtLeast(config.SeverityWarning) {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// IssuesError reports a finished lint run whose result maps to a non-zero
// exit code. It matches ErrLintIssuesFound under errors.Is.
type IssuesError struct {
	Code int
}

func (e *IssuesError) Error() string { return ErrLintIssuesFound.Error() }

func (e *IssuesError) Unwrap() error { return ErrLintIssuesFound }

// ExitCodeFromError maps an error returned by the root command to a process
// exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var issues *IssuesError
	if errors.As(err, &issues) {
		return issues.Code
	}

	var validation *configloader.ValidationError
	if errors.As(err, &validation) {
		return ExitConfigError
	}

	var invariant *lint.InvariantError
	if errors.As(err, &invariant) {
		return ExitInternalError
	}

	return ExitLintErrors
}
