package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/runner"
)

const fallbackTermWidth = 100

// TableReporter writes findings as aligned rows colored by severity, either
// in one table or one table per file.
type TableReporter struct {
	stream
	formatter *pretty.TableFormatter
}

// NewTableReporter creates a new table reporter sized to the terminal.
func NewTableReporter(opts Options) *TableReporter {
	s := newStream(opts)

	formatter := pretty.NewTableFormatter(s.styles, s.color, terminalWidth(opts.Writer))
	if opts.RuleFormat != "" {
		formatter.RuleFormat = opts.RuleFormat
	}
	formatter.WorkingDir = opts.WorkingDir

	return &TableReporter{stream: s, formatter: formatter}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	return r.run(result, r.write)
}

func (r *TableReporter) write(result *runner.Result) int {
	var total int
	for _, file := range result.Files {
		if file.Error != nil {
			r.fileError(file)
		}
		total += len(file.Findings())
	}

	switch {
	case total == 0:
		r.writePassed(result.Stats)
	case r.opts.PerFile:
		r.writePerFile(result)
	default:
		fmt.Fprint(r.bw, r.formatter.FormatTable(result))
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
			fmt.Fprintln(r.bw)
		}
	}
	return total
}

func (r *TableReporter) writePassed(stats runner.Stats) {
	if !r.opts.ShowSummary {
		return
	}
	fmt.Fprintln(r.bw)
	if stats.FilesErrored == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
	}
	fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", stats.FilesProcessed)))
}

func (r *TableReporter) writePerFile(result *runner.Result) {
	for _, file := range result.Files {
		if len(file.Findings()) == 0 {
			continue
		}
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(r.path(file.Path)))
		fmt.Fprint(r.bw, r.formatter.FormatFileTable(file))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("═", 80)))
		fmt.Fprintln(r.bw, r.styles.Bold.Render("Overall Summary"))
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	}
}

// terminalWidth asks the terminal behind w for its width.
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallbackTermWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackTermWidth
}
