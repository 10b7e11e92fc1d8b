package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// FormatFinding formats a single finding for terminal output.
// Uses ID format.
func (s *Styles) FormatFinding(finding *lint.Finding, showContext bool, sourceLine string) string {
	return s.FormatFindingWithFormat(finding, showContext, sourceLine, config.RuleFormatID)
}

// FormatFindingWithFormat formats a finding with configurable rule identifier format.
func (s *Styles) FormatFindingWithFormat(finding *lint.Finding, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(finding.FilePath),
		finding.Line(),
		finding.Column(),
	)

	severity := s.FormatSeverity(finding.Severity)

	ruleIdentifier := config.FormatRuleID(ruleFormat, finding.RuleID, finding.RuleName)
	ruleDisplay := s.RuleID.Render("(" + ruleIdentifier + ")")

	// Main line: location  severity  message  (rule-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(finding.Message),
		ruleDisplay,
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, finding.Column()))
	}

	if finding.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(finding.Suggestion) + "\n")
	}

	return builder.String()
}

// tabWidth is the lipgloss default tab expansion.
const tabWidth = 4

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	return s.ForSeverity(sev).Render(string(sev))
}

// FormatSourceContext formats the source line with a caret under the
// 1-based rune column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with finding output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		// Rendering expands tabs to tabWidth spaces; the padding must match.
		var padding strings.Builder
		padding.WriteString(indent)
		col := 1
		for _, r := range line {
			if col >= column {
				break
			}
			if r == '\t' {
				padding.WriteString(strings.Repeat(" ", tabWidth))
			} else {
				padding.WriteRune(' ')
			}
			col++
		}
		for ; col < column; col++ {
			padding.WriteRune(' ')
		}
		builder.WriteString(padding.String() + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 0:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
