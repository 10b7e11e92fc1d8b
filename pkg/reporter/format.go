package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output format.
type Format string

// Output formats.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatHTML    Format = "html"
	FormatSummary Format = "summary"
)

//nolint:gochecknoglobals // Fixed list, in help order.
var formats = []Format{FormatText, FormatTable, FormatJSON, FormatHTML, FormatSummary}

// ParseFormat accepts a format name; empty means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool { return slices.Contains(formats, f) }

// SummaryOrder picks which table the summary format prints first.
type SummaryOrder string

// Summary table orders.
const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// ParseSummaryOrder accepts "rules" (also the default) or "files".
func ParseSummaryOrder(s string) (SummaryOrder, error) {
	switch order := SummaryOrder(s); order {
	case "":
		return SummaryOrderRules, nil
	case SummaryOrderRules, SummaryOrderFiles:
		return order, nil
	}
	return "", fmt.Errorf("unknown summary order %q; valid orders: rules, files", s)
}
