package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fsutil"
)

// TimeoutRuleID marks the single finding left for a document that ran out
// of time.
const TimeoutRuleID = "internal/timeout"

// Sentinel errors for per-file failures.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrTimeout          = errors.New("processing timed out")
)

// PipelineResult is the outcome of linting one document.
type PipelineResult struct {
	*Evaluation

	Path string

	// Info is the file as it was read; nil for in-memory content.
	Info *fsutil.FileInfo

	// TimedOut documents carry only the TimeoutRuleID finding.
	TimedOut bool

	// Changed reports a file modified while it was being linted.
	Changed bool
}

// Summary is a short status word for logs.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.TimedOut:
		return "timed out"
	case pr.Changed:
		return "changed during linting"
	case pr.Evaluation != nil && pr.HasIssues():
		return "issues found"
	}
	return "ok"
}

// PipelineOptions bound the work done for one document.
type PipelineOptions struct {
	// Timeout covers parsing and evaluation together; zero means
	// config.DefaultTimeout.
	Timeout time.Duration

	// MaxFileSize caps reads from disk. Zero means fsutil.DefaultMaxSize and
	// a negative value means no cap.
	MaxFileSize int64

	DetectChanges bool

	// StrictChangeDetection compares content hashes as well as size and
	// modification time.
	StrictChangeDetection bool
}

func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{Timeout: config.DefaultTimeout, MaxFileSize: fsutil.DefaultMaxSize}
}

// PipelineOptionsFromConfig takes the timeout from cfg, which may be nil.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	opts.Timeout = cfg.EffectiveTimeout()
	return opts
}

// Pipeline reads, parses and evaluates single documents.
type Pipeline struct {
	Engine *Engine
}

func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path and lints it. With DetectChanges set, a document
// that finished in time is compared against the file on disk afterwards.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	limit := opts.MaxFileSize
	if limit == 0 {
		limit = fsutil.DefaultMaxSize
	}

	content, info, err := fsutil.ReadFileLimit(ctx, path, limit)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.Info = info

	if opts.DetectChanges && !result.TimedOut {
		if result.Changed, err = fsutil.Changed(ctx, info, opts.StrictChangeDetection); err != nil {
			return nil, fmt.Errorf("check changed: %w", err)
		}
	}
	return result, nil
}

// ProcessContent lints content under the document timeout. Running out of
// time is not an error: the partial evaluation is dropped and replaced by
// one TimeoutRuleID finding. Cancellation of ctx itself is an error.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	eval, err := p.evaluate(ctx, path, content, cfg, timeout)
	result := &PipelineResult{Path: path, Evaluation: eval}

	switch {
	case err == nil:
		return result, nil
	case ctx.Err() != nil:
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	case errors.Is(err, context.DeadlineExceeded):
		result.TimedOut = true
		result.Evaluation = timeoutEvaluation(path, timeout)
		return result, nil
	}

	var invariant *InvariantError
	if errors.As(err, &invariant) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
}

// evaluate runs the engine in its own goroutine so a rule that ignores its
// context cannot hold the caller past the deadline. A run that ends after
// the deadline counts as timed out.
func (p *Pipeline) evaluate(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	timeout time.Duration,
) (*Evaluation, error) {
	docCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		eval *Evaluation
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		eval, err := p.Engine.LintDocument(docCtx, path, content, cfg)
		done <- outcome{eval, err}
	}()

	select {
	case out := <-done:
		if out.err == nil && docCtx.Err() != nil {
			// Finished, but past the deadline.
			return nil, docCtx.Err()
		}
		return out.eval, out.err
	case <-docCtx.Done():
		return nil, docCtx.Err()
	}
}

func timeoutEvaluation(path string, timeout time.Duration) *Evaluation {
	origin := adast.Position{Line: 1, Column: 1}
	return &Evaluation{
		Findings: []Finding{{
			RuleID:   TimeoutRuleID,
			RuleName: "timeout",
			Severity: config.SeverityError,
			Message:  fmt.Sprintf("%v after %s", ErrTimeout, timeout),
			FilePath: path,
			Span:     adast.Span{Start: origin, End: origin},
			Internal: true,
		}},
		Diagnostics: Diagnostics{Skipped: map[string]int{}},
	}
}

// categorizeError tags read failures with a pipeline sentinel.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError reports whether err carries one of the sentinels above.
func IsPipelineError(err error) bool {
	for _, sentinel := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrTimeout} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
