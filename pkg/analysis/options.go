package analysis

import (
	"slices"

	"github.com/yaklabco/adoclint/pkg/config"
)

// SortField orders the per-file and per-rule views.
type SortField string

// Sort orders. Count is the only one that honors Options.SortDesc.
const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortBySeverity SortField = "severity"
)

func (s SortField) IsValid() bool {
	return slices.Contains([]SortField{SortByCount, SortByAlpha, SortBySeverity}, s)
}

// Options selects the views Analyze builds and how they look.
type Options struct {
	IncludeFindings bool
	IncludeByFile   bool
	IncludeByRule   bool

	SortBy   SortField
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// DefaultOptions builds every view, biggest buckets first.
func DefaultOptions() Options {
	return Options{
		IncludeFindings: true,
		IncludeByFile:   true,
		IncludeByRule:   true,
		SortBy:          SortByCount,
		SortDesc:        true,
		RuleFormat:      config.RuleFormatName,
	}
}
