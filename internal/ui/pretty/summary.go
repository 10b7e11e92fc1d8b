package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryLabelWidth   = 21
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func count(n int, one, many string) string {
	return strconv.Itoa(n) + " " + plural(n, one, many)
}

// FormatSummaryOneLine renders stats as one line, for example
// "12 issues (8 errors, 4 warnings) in 3 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.FindingsTotal == 0 {
		checked := fmt.Sprintf(" (%s checked)", count(stats.FilesProcessed, "file", "files"))
		parts = append(parts, s.Success.Render("No issues found")+s.Dim.Render(checked))
	} else {
		head := count(stats.FindingsTotal, "issue", "issues")
		if breakdown := s.severityBreakdown(stats.FindingsBySeverity); breakdown != "" {
			head += " (" + breakdown + ")"
		}
		parts = append(parts, head, "in "+count(stats.FilesWithIssues, "file", "files"))
	}

	problems := []struct {
		n     int
		text  string
		style lipgloss.Style
	}{
		{stats.FilesErrored, fmt.Sprintf("%d unreadable", stats.FilesErrored), s.Failure},
		{stats.FilesTimedOut, fmt.Sprintf("%d timed out", stats.FilesTimedOut), s.Warning},
		{stats.RulesFaulted, count(stats.RulesFaulted, "rule fault", "rule faults"), s.Warning},
	}
	for _, p := range problems {
		if p.n > 0 {
			parts = append(parts, p.style.Render(p.text))
		}
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(by map[config.Severity]int) string {
	var parts []string
	if n := by[config.SeverityError]; n > 0 {
		parts = append(parts, s.Error.Render(count(n, "error", "errors")))
	}
	if n := by[config.SeverityWarning]; n > 0 {
		parts = append(parts, s.Warning.Render(count(n, "warning", "warnings")))
	}
	if n := by[config.SeverityInfo]; n > 0 {
		parts = append(parts, s.Info.Render(strconv.Itoa(n)+" info"))
	}
	return strings.Join(parts, ", ")
}

// summaryRow is one "label: value" line of the summary block. Rows with a
// zero value are left out unless always is set.
type summaryRow struct {
	indent int
	label  string
	value  int
	style  lipgloss.Style
	always bool
}

// FormatSummary renders stats as a multi-line block ending in a verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	by := stats.FindingsBySeverity
	sections := [][]summaryRow{
		{
			{2, "Files checked:", stats.FilesProcessed, s.SummaryValue, true},
			{2, "Files with issues:", stats.FilesWithIssues, s.Failure, false},
			{2, "Files unreadable:", stats.FilesErrored, s.Failure, false},
			{2, "Files timed out:", stats.FilesTimedOut, s.Warning, false},
			{2, "Files changed:", stats.FilesChanged, s.Warning, false},
		},
		{
			{2, "Total issues:", stats.FindingsTotal, s.SummaryValue, true},
			{4, "Errors:", by[config.SeverityError], s.Error, false},
			{4, "Warnings:", by[config.SeverityWarning], s.Warning, false},
			{4, "Info:", by[config.SeverityInfo], s.Info, false},
			{2, "Rule faults:", stats.RulesFaulted, s.Warning, false},
		},
	}

	var b strings.Builder
	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	for _, rows := range sections {
		for _, row := range rows {
			if row.value == 0 && !row.always {
				continue
			}
			label := strings.Repeat(" ", row.indent) + row.label
			fmt.Fprintf(&b, "%-*s%s\n", summaryLabelWidth, label, row.style.Render(strconv.Itoa(row.value)))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.verdict(stats) + "\n")
	return b.String()
}

// verdict treats unreadable files like errors; info findings still pass.
func (s *Styles) verdict(stats runner.Stats) string {
	switch {
	case stats.FindingsBySeverity[config.SeverityError] > 0 || stats.FilesErrored > 0:
		return s.Failure.Render("Lint failed with errors")
	case stats.FindingsBySeverity[config.SeverityWarning] > 0:
		return s.Warning.Render("Lint completed with warnings")
	default:
		return s.Success.Render("Lint passed")
	}
}
