package reporter

import (
	"bufio"
	"context"
	"fmt"
	"html/template"

	"github.com/yaklabco/adoclint/pkg/analysis"
)

//nolint:gochecknoglobals // Parsed once.
var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"plural": func(n int, word string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, word)
		}
		return fmt.Sprintf("%d %ss", n, word)
	},
}).Parse(htmlSource))

const htmlSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
th, td { text-align: left; padding: .3rem .6rem; border-bottom: 1px solid #ddd; vertical-align: top; }
th { background: #f4f4f4; }
td.num { text-align: right; }
tr.error td.sev { color: #b00020; font-weight: bold; }
tr.warning td.sev { color: #a66300; }
tr.info td.sev { color: #1a5fb4; }
.suggestion { color: #555; font-style: italic; }
.ok { color: #26a269; }
.meta { color: #777; font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.Report.Timestamp.Format "2006-01-02 15:04:05 MST"}}, report format {{.Report.Version}}</p>
{{with .Report.Totals}}
<p>{{plural .Files "file"}} checked, {{plural .Issues "issue"}}
({{.Errors}} errors, {{.Warnings}} warnings, {{.Infos}} info) in {{plural .FilesWithIssues "file"}}.
{{if .FilesUnreadable}}{{plural .FilesUnreadable "file"}} could not be read. {{end}}
{{if .FilesTimedOut}}{{plural .FilesTimedOut "file"}} timed out. {{end}}
{{if .RulesFaulted}}{{plural .RulesFaulted "rule fault"}}. {{end}}</p>
{{if not .Issues}}<p class="ok">No issues found.</p>{{end}}
{{end}}
{{if .Report.FileErrors}}
<h2>Unreadable files</h2>
<table>
<tr><th>File</th><th>Error</th></tr>
{{range .Report.FileErrors}}<tr><td>{{.Path}}</td><td>{{.Message}}</td></tr>
{{end}}</table>
{{end}}
{{if .Report.Findings}}
<h2>Findings</h2>
<table>
<tr><th>File</th><th>Line</th><th>Col</th><th>Severity</th><th>Rule</th><th>Message</th></tr>
{{range .Report.Findings}}<tr class="{{.Severity}}">
<td>{{.FilePath}}</td><td class="num">{{.StartLine}}</td><td class="num">{{.StartColumn}}</td>
<td class="sev">{{.Severity}}</td><td>{{.Rule}}</td>
<td>{{.Message}}{{if .Suggestion}}<div class="suggestion">{{.Suggestion}}</div>{{end}}</td>
</tr>
{{end}}</table>
{{end}}
{{if .Report.ByRule}}
<h2>Rules</h2>
<table>
<tr><th>Rule</th><th>Issues</th><th>Errors</th><th>Warnings</th><th>Info</th><th>Files</th></tr>
{{range .Report.ByRule}}<tr><td>{{.RuleID}} {{.RuleName}}</td><td class="num">{{.Issues}}</td>
<td class="num">{{.Errors}}</td><td class="num">{{.Warnings}}</td><td class="num">{{.Infos}}</td><td class="num">{{len .Files}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`

// htmlData is the template input.
type htmlData struct {
	Title  string
	Report *analysis.Report
}

// HTMLRenderer writes the analysis report as a standalone HTML page.
type HTMLRenderer struct {
	opts Options
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{opts: opts}
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	title := r.opts.Title
	if title == "" {
		title = DefaultOptions().Title
	}

	if err := htmlTemplate.Execute(bw, htmlData{Title: title, Report: report}); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	return nil
}
