package reporter

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// stream is the part shared by the reporters that write findings straight
// from a runner.Result rather than from an analysis.Report.
type stream struct {
	opts   Options
	color  bool
	styles *pretty.Styles
	bw     *bufio.Writer
}

func newStream(opts Options) stream {
	color := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return stream{
		opts:   opts,
		color:  color,
		styles: pretty.NewStyles(color),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// run handles the empty result and flushes the buffer after body writes.
func (s *stream) run(result *runner.Result, body func(*runner.Result) int) (n int, err error) {
	defer func() {
		if flushErr := s.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if s.opts.ShowSummary {
			fmt.Fprintln(s.bw, s.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}
	return body(result), nil
}

func (s *stream) fileError(file runner.FileOutcome) {
	fmt.Fprintf(s.bw, "%s: %s\n",
		s.styles.FilePath.Render(s.path(file.Path)),
		s.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
	)
}

// path is p relative to the working directory when that can be computed.
func (s *stream) path(p string) string {
	if s.opts.WorkingDir == "" {
		return p
	}
	if rel, err := filepath.Rel(s.opts.WorkingDir, p); err == nil {
		return rel
	}
	return p
}
