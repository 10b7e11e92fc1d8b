package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// cellSpecPattern matches a cell specifier such as '2+', '3*', '.2+^a' or 'l'.
//
//nolint:gochecknoglobals // Compiled once.
var cellSpecPattern = regexp.MustCompile(`^(\d+)?([+*])?(\.\d+\+)?[<^>]?(\.[<^>])?([adehlmsv])?$`)

// listItemPattern matches the start of a list item inside a cell.
//
//nolint:gochecknoglobals // Compiled once.
var listItemPattern = regexp.MustCompile(`^(\*+|-|\.+|\d+\.)\s+\S`)

// tableCell is one cell opened on a table line.
type tableCell struct {
	pipe    int // byte index of the cell separator
	width   int // columns covered by the specifier
	style   byte
	content string
}

// tableLine is one line of a table body.
type tableLine struct {
	line    int
	raw     string
	leading string // text before the first cell, part of the previous cell
	cells   []tableCell
}

func (tl tableLine) columns() int {
	n := 0
	for _, c := range tl.cells {
		n += c.width
	}
	return n
}

// parseTable splits the body of a table block into lines and cells.
func parseTable(node *adast.Node) []tableLine {
	raw := node.RawLines()
	lines := make([]tableLine, 0, len(raw))
	for i, text := range raw {
		tl := parseTableLine(text)
		tl.line = node.ContentLine + i
		lines = append(lines, tl)
	}
	return lines
}

func parseTableLine(text string) tableLine {
	tl := tableLine{raw: text}

	type sep struct{ specStart, pipe int }
	var seps []sep

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '|':
			specStart := i
			for specStart > 0 && text[specStart-1] != ' ' && text[specStart-1] != '\t' && text[specStart-1] != '|' {
				specStart--
			}
			// Mid-line specifiers must follow whitespace.
			if (specStart > 0 && text[specStart-1] == '|') || !isCellSpec(text[specStart:i]) {
				specStart = i
			}
			seps = append(seps, sep{specStart: specStart, pipe: i})
		}
	}

	if len(seps) == 0 {
		tl.leading = text
		return tl
	}

	tl.leading = text[:seps[0].specStart]
	for k, s := range seps {
		end := len(text)
		if k+1 < len(seps) {
			end = seps[k+1].specStart
		}
		spec := text[s.specStart:s.pipe]
		cell := tableCell{pipe: s.pipe, width: 1, content: text[s.pipe+1 : end]}
		if m := cellSpecPattern.FindStringSubmatch(spec); m != nil {
			if m[1] != "" && m[2] == "+" {
				if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
					cell.width = n
				}
			}
			if m[5] != "" {
				cell.style = m[5][0]
			}
		}
		tl.cells = append(tl.cells, cell)
	}
	return tl
}

// isCellSpec reports whether s is a valid, possibly empty, cell specifier.
// A bare number is content, not a span factor.
func isCellSpec(s string) bool {
	m := cellSpecPattern.FindStringSubmatch(s)
	return m != nil && (m[1] == "") == (m[2] == "")
}

// isTable reports whether node is a table block.
func isTable(node *adast.Node) bool {
	return node.Kind == adast.NodeBlock && node.BlockType == adast.BlockTable
}

// tableOptions returns the attribute list parts of a table.
func tableOptions(node *adast.Node) []string {
	return splitAttrList(node.AttrList)
}

// colsCount returns the number of columns declared by a cols attribute.
func colsCount(parts []string) (int, bool) {
	cols, ok := namedAttr(parts, "cols")
	if !ok || strings.TrimSpace(cols) == "" {
		return 0, false
	}

	// cols="3*" or cols="1,2,1" or cols="2*,1".
	total := 0
	for _, spec := range strings.FieldsFunc(cols, func(r rune) bool { return r == ',' || r == ';' }) {
		spec = strings.TrimSpace(spec)
		if n, _, found := strings.Cut(spec, "*"); found {
			count, err := strconv.Atoi(n)
			if err != nil || count < 1 {
				return 0, false
			}
			total += count
			continue
		}
		total++
	}
	return total, total > 0
}

// colsStyles reports whether any column declared by cols has the AsciiDoc
// or literal style.
func colsStyles(parts []string) bool {
	cols, ok := namedAttr(parts, "cols")
	if !ok {
		return false
	}
	for _, spec := range strings.Split(cols, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		if last := spec[len(spec)-1]; last == 'a' || last == 'l' {
			return true
		}
	}
	return false
}

// hasHeaderOption reports whether the header row is set explicitly.
func hasHeaderOption(parts []string) bool {
	for _, part := range parts {
		if strings.Contains(part, "%header") || strings.Contains(part, "%noheader") {
			return true
		}
	}
	if opts, ok := namedAttr(parts, "options"); ok {
		return strings.Contains(opts, "header")
	}
	return false
}

// TableFormatRule checks the layout of table rows.
type TableFormatRule struct {
	lint.BaseRule
}

// NewTableFormatRule creates a new table format rule.
func NewTableFormatRule() *TableFormatRule {
	return &TableFormatRule{
		BaseRule: lint.NewBaseRule(
			"TABLE001",
			"table-format",
			"Table rows should be laid out consistently",
			[]string{"tables"},
			adast.NodeBlock,
		),
	}
}

// Check reports an implicit header row without a blank line and, when the
// check_alignment option is set, separators that do not line up.
func (r *TableFormatRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if !isTable(node) {
		return nil, nil
	}

	var findings []lint.Finding
	lines := parseTable(node)

	var rows []tableLine
	for _, tl := range lines {
		if len(tl.cells) > 0 && strings.TrimSpace(tl.leading) == "" {
			rows = append(rows, tl)
		}
	}

	if len(rows) > 1 && len(rows[0].cells) > 1 && !hasHeaderOption(tableOptions(node)) {
		first := rows[0]
		idx := first.line - node.ContentLine
		if idx+1 < len(lines) && strings.TrimSpace(lines[idx+1].raw) != "" {
			findings = append(findings,
				lint.NewFindingAt(r.ID(), ctx.Doc.LineSpan(first.line),
					"Header row should be followed by an empty line").
					WithSuggestion(`Add an empty line after the header row or set options="noheader"`).
					Build())
		}
	}

	if ctx.OptionBool("check_alignment", false) {
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1], rows[i]
			if len(prev.cells) != len(cur.cells) || len(cur.cells) < 2 {
				continue
			}
			if !sameSeparators(prev, cur) {
				findings = append(findings,
					lint.NewFindingAt(r.ID(), ctx.Doc.LineSpan(cur.line),
						"Column alignment is inconsistent with previous rows").
						WithSeverity(config.SeverityInfo).
						Build())
			}
		}
	}

	return findings, nil
}

func sameSeparators(a, b tableLine) bool {
	for i := range a.cells {
		if runeIndex(a.raw, a.cells[i].pipe) != runeIndex(b.raw, b.cells[i].pipe) {
			return false
		}
	}
	return true
}

func runeIndex(s string, byteIdx int) int {
	return len([]rune(s[:byteIdx]))
}

// TableStructureRule checks that every table row has the same number of
// columns.
type TableStructureRule struct {
	lint.BaseRule
}

// NewTableStructureRule creates a new table structure rule.
func NewTableStructureRule() *TableStructureRule {
	return &TableStructureRule{
		BaseRule: lint.NewBaseRule(
			"TABLE002",
			"table-structure",
			"Table rows should have a consistent column count",
			[]string{"tables"},
			adast.NodeBlock,
		),
	}
}

// DefaultSeverity reports column count mismatches as errors.
func (r *TableStructureRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Check groups cells into rows and compares each row with the expected
// column count. The count comes from the cols attribute, or else from the
// first line that opens cells.
func (r *TableStructureRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if !isTable(node) {
		return nil, nil
	}

	lines := parseTable(node)

	var cellLines []tableLine
	for _, tl := range lines {
		if len(tl.cells) > 0 {
			cellLines = append(cellLines, tl)
		}
	}

	if len(cellLines) == 0 {
		return []lint.Finding{
			lint.NewFindingAt(r.ID(), headingLine(ctx.Doc, node), "Empty table").
				WithSeverity(config.SeverityWarning).
				Build(),
		}, nil
	}

	expected, ok := colsCount(tableOptions(node))
	if !ok {
		expected = cellLines[0].columns()
	}

	var findings []lint.Finding
	report := func(line, found int) {
		findings = append(findings,
			lint.NewFindingAt(r.ID(), ctx.Doc.LineSpan(line),
				fmt.Sprintf("Inconsistent column count. Expected %d, found %d", expected, found)).
				Build())
	}

	pending, rowStart := 0, 0
	for _, tl := range cellLines {
		n := tl.columns()
		if pending > 0 && pending+n > expected {
			report(rowStart, pending)
			pending = 0
		}
		if pending == 0 {
			rowStart = tl.line
		}
		pending += n
		if pending > expected {
			report(rowStart, pending)
			pending = 0
		} else if pending == expected {
			pending = 0
		}
	}
	if pending > 0 {
		report(rowStart, pending)
	}

	return findings, nil
}

// TableContentRule checks that cells holding block content declare a
// style that renders it.
type TableContentRule struct {
	lint.BaseRule
}

// NewTableContentRule creates a new table content rule.
func NewTableContentRule() *TableContentRule {
	return &TableContentRule{
		BaseRule: lint.NewBaseRule(
			"TABLE003",
			"table-content",
			"Lists in table cells require the AsciiDoc or literal cell style",
			[]string{"tables"},
			adast.NodeBlock,
		),
	}
}

// Check reports at most one finding per line with a list in a plain cell.
func (r *TableContentRule) Check(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
	if !isTable(node) || colsStyles(tableOptions(node)) {
		return nil, nil
	}

	var findings []lint.Finding
	var current byte

	for _, tl := range parseTable(node) {
		flagged := false
		if strings.TrimSpace(tl.leading) != "" && !richStyle(current) &&
			listItemPattern.MatchString(strings.TrimSpace(tl.leading)) {
			flagged = true
		}
		for _, cell := range tl.cells {
			current = cell.style
			if !richStyle(cell.style) && listItemPattern.MatchString(strings.TrimSpace(cell.content)) {
				flagged = true
			}
		}
		if flagged {
			findings = append(findings,
				lint.NewFindingAt(r.ID(), ctx.Doc.LineSpan(tl.line),
					"List in table cell requires 'a|' or 'l|' declaration").
					WithSuggestion("Prefix the cell with a| to render AsciiDoc content").
					Build())
		}
	}

	return findings, nil
}

func richStyle(style byte) bool {
	return style == 'a' || style == 'l'
}
