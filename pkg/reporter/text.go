package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// TextReporter writes one block per finding, optionally with the offending
// source line and a caret under the reported column.
type TextReporter struct {
	stream
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{stream: newStream(opts)}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	return r.run(result, func(result *runner.Result) int {
		var total int
		for _, file := range result.Files {
			total += r.writeFile(file)
		}
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
		return total
	})
}

// writeFile writes one file's findings, under a header when grouping.
func (r *TextReporter) writeFile(file runner.FileOutcome) int {
	if file.Error != nil {
		r.fileError(file)
		return 0
	}

	findings := file.Findings()
	if len(findings) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(r.path(file.Path), len(findings)))
	}

	doc := file.Result.Document
	for i := range findings {
		src := r.sourceLine(doc, findings[i].Line())
		fmt.Fprint(r.bw, r.styles.FormatFindingWithFormat(&findings[i], r.opts.ShowContext, src, r.opts.RuleFormat))
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return len(findings)
}

// sourceLine is "" when context is off or no document was kept, as after a
// timeout.
func (r *TextReporter) sourceLine(doc *adast.Document, line int) string {
	if !r.opts.ShowContext || doc == nil || doc.LineIndex == nil {
		return ""
	}
	return doc.LineText(line)
}
