package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/adoclint/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently with at most opts.Jobs workers
//   - Aggregates results in discovery order, whatever the completion order
//   - Respects context cancellation
//
// A failure on one file is recorded in its outcome and never stops the
// other files. A broken document tree is the exception: an
// *lint.InvariantError cancels the remaining work and is returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	pipelineOpts.DetectChanges = opts.DetectChanges

	// Each worker writes only its own slot.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			outcome := r.processFile(groupCtx, path, opts, pipelineOpts)
			var invariant *lint.InvariantError
			if errors.As(outcome.Error, &invariant) {
				return fmt.Errorf("lint %s: %w", path, outcome.Error)
			}
			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	// Only invariant violations reach the group; other failures live in
	// outcomes.
	fatal := group.Wait()

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if fatal != nil {
		return result, fmt.Errorf("run aborted: %w", fatal)
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// processFile lints one file into an outcome.
func (r *Runner) processFile(
	ctx context.Context,
	path string,
	opts Options,
	pipelineOpts lint.PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = pr
	}

	return outcome
}
