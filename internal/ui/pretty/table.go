package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

const (
	hintSymbol       = "+"
	ellipsis         = "..."
	cellGap          = "  "
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the findings table.
type TableRow struct {
	File     string
	Location string
	Message  string
	RuleID   string
	Severity config.Severity
	HasHint  bool
}

// column describes one table column. Flexible columns give up width, in
// order, when the table is wider than the terminal.
type column struct {
	title    string
	min      int
	flexible bool
	keepTail bool // truncate from the left, keeping the file name
	value    func(TableRow) string
}

//nolint:gochecknoglobals // Fixed column definitions.
var (
	fileColumn = column{title: "FILE", min: 20, flexible: true, keepTail: true,
		value: func(r TableRow) string { return r.File }}
	locColumn = column{title: "LOC", min: 10,
		value: func(r TableRow) string { return r.Location }}
	messageColumn = column{title: "MESSAGE", min: 35, flexible: true,
		value: func(r TableRow) string { return r.Message }}
	ruleColumn = column{title: "RULE", min: 8,
		value: func(r TableRow) string { return r.RuleID }}
)

// TableFormatter formats findings as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int

	// RuleFormat controls the RULE column.
	RuleFormat config.RuleFormat

	// WorkingDir makes FILE paths relative when set.
	WorkingDir string
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		RuleFormat:   config.RuleFormatID,
	}
}

// FormatTable renders every file's findings in one table, files separated
// by a light rule, followed by the legend.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if rows := t.rows(file); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	layout := t.layout([]column{fileColumn, locColumn, messageColumn, ruleColumn}, groups...)

	var b strings.Builder
	layout.header(&b, t.styles)
	layout.rule(&b, t.styles, heavySeparator)
	for i, group := range groups {
		if i > 0 {
			layout.rule(&b, t.styles, lightSeparator)
		}
		for _, row := range group {
			layout.row(&b, t.styles, row)
		}
	}
	layout.rule(&b, t.styles, heavySeparator)
	b.WriteString(t.formatLegend())
	b.WriteString("\n")

	return b.String()
}

// FormatFileTable renders one file's findings without a FILE column,
// followed by that file's counts.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := t.rows(file)
	if len(rows) == 0 {
		return ""
	}

	layout := t.layout([]column{locColumn, messageColumn, ruleColumn}, rows)

	var b strings.Builder
	layout.header(&b, t.styles)
	layout.rule(&b, t.styles, heavySeparator)
	for _, row := range rows {
		layout.row(&b, t.styles, row)
	}
	layout.rule(&b, t.styles, heavySeparator)
	b.WriteString(t.formatFileSummary(rows))
	b.WriteString("\n")

	return b.String()
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{count(stats.FilesProcessed, "file", "files") + " checked"}
	parts = append(parts, t.severityCounts(
		stats.FindingsBySeverity[config.SeverityError],
		stats.FindingsBySeverity[config.SeverityWarning],
		stats.FindingsBySeverity[config.SeverityInfo],
	)...)

	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// rows converts a file's findings to table rows.
func (t *TableFormatter) rows(file runner.FileOutcome) []TableRow {
	findings := file.Findings()
	rows := make([]TableRow, 0, len(findings))
	for i := range findings {
		rows = append(rows, t.row(file.Path, &findings[i]))
	}
	return rows
}

// row converts a finding to a table row.
func (t *TableFormatter) row(path string, finding *lint.Finding) TableRow {
	return TableRow{
		File:     t.displayPath(path),
		Location: fmt.Sprintf("%d:%d", finding.Line(), finding.Column()),
		Message:  finding.Message,
		RuleID:   config.FormatRuleID(t.RuleFormat, finding.RuleID, finding.RuleName),
		Severity: finding.Severity,
		HasHint:  finding.Suggestion != "",
	}
}

func (t *TableFormatter) displayPath(path string) string {
	if t.WorkingDir == "" {
		return path
	}
	if rel, err := filepath.Rel(t.WorkingDir, path); err == nil {
		return rel
	}
	return path
}

// formatFileSummary counts one file's rows by severity.
func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	counts := make(map[config.Severity]int, 3)
	var hints int
	for _, row := range rows {
		counts[row.Severity]++
		if row.HasHint {
			hints++
		}
	}

	parts := t.severityCounts(counts[config.SeverityError], counts[config.SeverityWarning], counts[config.SeverityInfo])
	if hints > 0 {
		parts = append(parts, t.styles.TableHint.Render(fmt.Sprintf("%d with suggestions", hints)))
	}

	return " " + strings.Join(parts, " | ")
}

// severityCounts renders the non-zero severity totals.
func (t *TableFormatter) severityCounts(errors, warnings, infos int) []string {
	var parts []string
	if errors > 0 {
		parts = append(parts, t.styles.Error.Render(count(errors, "error", "errors")))
	}
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(count(warnings, "warning", "warnings")))
	}
	if infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", infos)))
	}
	return parts
}

// formatLegend explains the hint symbol and, with color, the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = suggestion available", hintSymbol))
	}

	return t.styles.TableLegend.Render(fmt.Sprintf(
		" Legend: %s = error  %s = warning  %s = info  %s = suggestion available",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableInfoRow.Render(" info "),
		t.styles.TableHint.Render(hintSymbol),
	))
}

// tableLayout is a set of columns with resolved widths.
type tableLayout struct {
	columns []column
	widths  []int
}

// layout sizes columns to their content and then shrinks flexible columns,
// never below their minimum, until the table fits the terminal.
func (t *TableFormatter) layout(columns []column, groups ...[]TableRow) tableLayout {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = col.min
		for _, rows := range groups {
			for _, row := range rows {
				widths[i] = max(widths[i], lipgloss.Width(col.value(row)))
			}
		}
	}

	l := tableLayout{columns: columns, widths: widths}

	// Message gives way before the file path.
	order := []string{messageColumn.title, fileColumn.title}
	for _, title := range order {
		excess := l.width() - t.termWidth
		if excess <= 0 {
			break
		}
		for i, col := range columns {
			if col.flexible && col.title == title {
				widths[i] = max(col.min, widths[i]-excess)
			}
		}
	}

	return l
}

// width is the full line width: a leading space, the cells with gaps, and
// the hint column.
func (l tableLayout) width() int {
	total := 1 + len(cellGap) + len(hintSymbol)
	for i, w := range l.widths {
		total += w
		if i > 0 {
			total += len(cellGap)
		}
	}
	return total
}

func (l tableLayout) header(b *strings.Builder, styles *Styles) {
	cells := make([]string, len(l.columns))
	for i, col := range l.columns {
		cells[i] = pad(col.title, l.widths[i])
	}
	b.WriteString(styles.TableHeader.Render(" " + strings.Join(cells, cellGap) + cellGap + " "))
	b.WriteString("\n")
}

func (l tableLayout) rule(b *strings.Builder, styles *Styles, char string) {
	b.WriteString(styles.TableSeparator.Render(strings.Repeat(char, l.width())))
	b.WriteString("\n")
}

func (l tableLayout) row(b *strings.Builder, styles *Styles, row TableRow) {
	cells := make([]string, len(l.columns))
	for i, col := range l.columns {
		value := col.value(row)
		if col.keepTail {
			value = TruncateHead(value, l.widths[i])
		} else {
			value = TruncateTail(value, l.widths[i])
		}
		cells[i] = pad(value, l.widths[i])
	}

	hint := " "
	if row.HasHint {
		hint = styles.TableHint.Render(hintSymbol)
	}

	b.WriteString(styles.RowFor(row.Severity).Render(" " + strings.Join(cells, cellGap) + cellGap + hint))
	b.WriteString("\n")
}

// pad right-pads s with spaces to width display cells.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// TruncateTail shortens s to width display cells, ending with an ellipsis.
func TruncateTail(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return takeCells([]rune(s), width)
	}
	return takeCells([]rune(s), width-len(ellipsis)) + ellipsis
}

// TruncateHead shortens s to width display cells, keeping the end and
// starting with an ellipsis.
func TruncateHead(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	keep := width - len(ellipsis)
	prefix := ellipsis
	if keep <= 0 {
		keep, prefix = width, ""
	}

	start, used := len(runes), 0
	for start > 0 {
		w := lipgloss.Width(string(runes[start-1]))
		if used+w > keep {
			break
		}
		used += w
		start--
	}
	return prefix + string(runes[start:])
}

// takeCells returns the longest prefix of runes that fits in width cells.
func takeCells(runes []rune, width int) string {
	used := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if used+w > width {
			return string(runes[:i])
		}
		used += w
	}
	return string(runes)
}
