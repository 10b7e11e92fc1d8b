package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/analysis"
	"github.com/yaklabco/adoclint/pkg/config"
)

const summaryWidth = 90

// tallyColumns are the numeric columns shared by the rule and file tables.
//
//nolint:gochecknoglobals // Fixed column definitions.
var tallyColumns = []struct {
	title string
	width int
}{
	{"Count", 7},
	{"Errors", 7},
	{"Warnings", 8},
	{"Info", 6},
}

// tallyRow is one line of a summary table.
type tallyRow struct {
	label                           string
	issues, errors, warnings, infos int
}

// tallyTable is a titled table with a label column and the tally columns.
type tallyTable struct {
	title      string
	labelTitle string
	labelWidth int
	shorten    func(string, int) string // fits a label into labelWidth-2 cells
	rows       []tallyRow
}

// SummaryRenderer prints per-rule and per-file tallies instead of findings.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, fe := range report.FileErrors {
		fmt.Fprintf(r.out, "%s: %s\n", r.styles.FilePath.Render(fe.Path), r.styles.Error.Render("error: "+fe.Message))
	}
	if len(report.FileErrors) > 0 {
		fmt.Fprintln(r.out)
	}

	if report.Totals.Issues == 0 {
		if len(report.FileErrors) == 0 {
			fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		}
		return nil
	}

	tables := []tallyTable{r.ruleTable(report.ByRule), r.fileTable(report.ByFile)}
	if r.opts.SummaryOrder == SummaryOrderFiles {
		tables[0], tables[1] = tables[1], tables[0]
	}
	for _, table := range tables {
		if r.renderTable(table) {
			fmt.Fprintln(r.out)
		}
	}

	r.renderTotals(report.Totals)
	return nil
}

func (r *SummaryRenderer) ruleTable(rules []analysis.RuleAnalysis) tallyTable {
	table := tallyTable{title: "Rules Summary", labelTitle: "Rule", labelWidth: 30, shorten: pretty.TruncateTail}
	for _, rule := range rules {
		table.rows = append(table.rows, tallyRow{
			label:    config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName),
			issues:   rule.Issues,
			errors:   rule.Errors,
			warnings: rule.Warnings,
			infos:    rule.Infos,
		})
	}
	return table
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) tallyTable {
	table := tallyTable{title: "Files Summary", labelTitle: "File", labelWidth: 60, shorten: pretty.TruncateHead}
	for _, file := range files {
		table.rows = append(table.rows, tallyRow{
			label:    file.Path,
			issues:   file.Issues,
			errors:   file.Errors,
			warnings: file.Warnings,
			infos:    file.Infos,
		})
	}
	return table
}

// renderTable pads every cell before styling it, since ANSI sequences would
// otherwise count toward the width. Empty tables print nothing.
func (r *SummaryRenderer) renderTable(table tallyTable) bool {
	if len(table.rows) == 0 {
		return false
	}

	separator := r.styles.TableSeparator.Render(strings.Repeat("─", summaryWidth))

	header := []string{r.styles.TableHeader.Render(padRight(table.labelTitle, table.labelWidth))}
	for _, col := range tallyColumns {
		header = append(header, r.styles.TableHeader.Render(padLeft(col.title, col.width)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render(table.title))
	fmt.Fprintln(r.out, separator)
	fmt.Fprintln(r.out, strings.Join(header, " "))
	fmt.Fprintln(r.out, separator)

	for _, row := range table.rows {
		label := padRight(table.shorten(row.label, table.labelWidth-2), table.labelWidth)
		switch {
		case row.errors > 0:
			label = r.styles.TableErrorRow.Render(label)
		case row.warnings > 0:
			label = r.styles.TableWarnRow.Render(label)
		}

		cells := []string{label}
		for i, n := range []int{row.issues, row.errors, row.warnings, row.infos} {
			cells = append(cells, padLeft(strconv.Itoa(n), tallyColumns[i].width))
		}
		fmt.Fprintln(r.out, strings.Join(cells, " "))
	}
	return true
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	line := plural(totals.Issues, "issue", "issues")

	var breakdown []string
	if totals.Errors > 0 {
		breakdown = append(breakdown, r.styles.Error.Render(plural(totals.Errors, "error", "errors")))
	}
	if totals.Warnings > 0 {
		breakdown = append(breakdown, r.styles.Warning.Render(plural(totals.Warnings, "warning", "warnings")))
	}
	if totals.Infos > 0 {
		breakdown = append(breakdown, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(breakdown) > 0 {
		line += " (" + strings.Join(breakdown, ", ") + ")"
	}
	line += " in " + plural(totals.FilesWithIssues, "file", "files")

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)

	if totals.RulesFaulted > 0 {
		fmt.Fprintln(r.out, r.styles.Failure.Render(plural(totals.RulesFaulted, "rule fault", "rule faults")))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
