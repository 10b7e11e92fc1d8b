// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/adoclint/pkg/config"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorGray   = lipgloss.Color("8")
	colorLight  = lipgloss.Color("7")
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Finding components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableHint      lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode. Without color
// every style renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	b := styleBuilder{color: colorEnabled}

	return &Styles{
		Error:   b.fg(colorRed, bold),
		Warning: b.fg(colorYellow, bold),
		Info:    b.fg(colorBlue, bold),

		FilePath:   b.plain(bold),
		Location:   b.fg(colorGray),
		RuleID:     b.fg(colorGray),
		Message:    b.plain(),
		Suggestion: b.fg(colorGreen, italic),
		SourceLine: b.fg(colorLight),
		Caret:      b.fg(colorRed),

		SummaryTitle: b.plain(bold),
		SummaryValue: b.plain(),
		Success:      b.fg(colorGreen, bold),
		Failure:      b.fg(colorRed, bold),

		TableHeader:    b.fg(colorLight, bold),
		TableBorder:    b.fg(colorGray),
		TableErrorRow:  b.fg(colorRed),
		TableWarnRow:   b.fg(colorYellow),
		TableInfoRow:   b.fg(colorBlue),
		TableHint:      b.fg(colorGreen),
		TableLegend:    b.fg(colorGray, italic),
		TableSeparator: b.fg(colorGray),

		Dim:  b.fg(colorGray),
		Bold: b.plain(bold),
	}
}

// ForSeverity returns the label style for a severity.
func (s *Styles) ForSeverity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	default:
		return lipgloss.NewStyle()
	}
}

// RowFor returns the table row style for a severity.
func (s *Styles) RowFor(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.TableErrorRow
	case config.SeverityWarning:
		return s.TableWarnRow
	case config.SeverityInfo:
		return s.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

type attr func(lipgloss.Style) lipgloss.Style

func bold(s lipgloss.Style) lipgloss.Style   { return s.Bold(true) }
func italic(s lipgloss.Style) lipgloss.Style { return s.Italic(true) }

// styleBuilder drops every attribute when color is off.
type styleBuilder struct {
	color bool
}

func (b styleBuilder) plain(attrs ...attr) lipgloss.Style {
	style := lipgloss.NewStyle()
	if !b.color {
		return style
	}
	for _, a := range attrs {
		style = a(style)
	}
	return style
}

func (b styleBuilder) fg(c lipgloss.Color, attrs ...attr) lipgloss.Style {
	if !b.color {
		return lipgloss.NewStyle()
	}
	return b.plain(attrs...).Foreground(c)
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := writer.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
