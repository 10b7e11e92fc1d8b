// Package reporter renders lint results as text, tables, JSON, HTML or
// summary tallies.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/adoclint/pkg/analysis"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// Reporter writes a run's results and returns how many findings it showed.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

var _ Reporter = (*analyzed)(nil)

// analyzed adapts a Renderer, which works on an analysis.Report, to the
// Reporter interface.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

// analysisOptions builds every view; anything but alphabetical order lists
// the biggest buckets first.
func analysisOptions(opts Options) analysis.Options {
	out := analysis.DefaultOptions()
	if opts.SortBy.IsValid() {
		out.SortBy = opts.SortBy
	}
	out.SortDesc = out.SortBy != analysis.SortByAlpha
	out.RuleFormat = opts.RuleFormat
	out.WorkingDir = opts.WorkingDir
	return out
}

// New returns the Reporter for opts.Format. An empty format means text and
// a nil Writer means stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	var renderer Renderer
	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		renderer = NewJSONRenderer(opts)
	case FormatHTML:
		renderer = NewHTMLRenderer(opts)
	case FormatSummary:
		renderer = NewSummaryRenderer(opts)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return &analyzed{renderer: renderer, opts: analysisOptions(opts)}, nil
}
