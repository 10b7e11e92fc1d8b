package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/adoclint/pkg/analysis"
	"github.com/yaklabco/adoclint/pkg/config"
)

const bufWriterSize = 64 * 1024

// Options configures every reporter. Fields a format has no use for are
// ignored by it.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line and a caret under each finding.
	ShowContext bool
	ShowSummary bool
	GroupByFile bool

	// Compact turns off JSON indentation.
	Compact bool

	// PerFile gives each file its own table.
	PerFile bool

	RuleFormat   config.RuleFormat
	SummaryOrder SummaryOrder
	SortBy       analysis.SortField

	// Title heads HTML output.
	Title string

	// WorkingDir, when set, makes printed paths relative to it.
	WorkingDir string
}

// DefaultOptions writes colored, grouped text with context to stdout.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: SummaryOrderRules,
		SortBy:       analysis.SortByCount,
		Title:        "adoclint report",
	}
}
