package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/runner"
)

func stats(files, withIssues, errs, warnings, infos int) runner.Stats {
	return runner.Stats{
		FilesProcessed:  files,
		FilesWithIssues: withIssues,
		FindingsTotal:   errs + warnings + infos,
		FindingsBySeverity: map[config.Severity]int{
			config.SeverityError:   errs,
			config.SeverityWarning: warnings,
			config.SeverityInfo:    infos,
		},
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	unreadable := stats(1, 0, 0, 0, 0)
	unreadable.FilesErrored = 1

	degraded := stats(4, 0, 0, 0, 0)
	degraded.FilesTimedOut, degraded.FilesChanged, degraded.RulesFaulted = 1, 2, 3

	tests := []struct {
		name    string
		stats   runner.Stats
		want    []string
		notWant []string
	}{
		{
			name:    "errors and warnings",
			stats:   stats(10, 3, 5, 10, 0),
			want:    []string{"Summary", "Files checked:     10", "Files with issues: 3", "Total issues:      15", "    Errors:          5", "Warnings:", "Lint failed with errors"},
			notWant: []string{"Info:"},
		},
		{
			name:    "clean",
			stats:   stats(5, 0, 0, 0, 0),
			want:    []string{"Files checked:     5", "Total issues:      0", "Lint passed"},
			notWant: []string{"Files with issues:", "Errors:"},
		},
		{
			name:  "warnings only",
			stats: stats(10, 2, 0, 5, 0),
			want:  []string{"Lint completed with warnings"},
		},
		{
			name:  "info does not fail",
			stats: stats(10, 1, 0, 0, 3),
			want:  []string{"Info:", "Lint passed"},
		},
		{
			name:  "unreadable file fails",
			stats: unreadable,
			want:  []string{"Files unreadable:", "Lint failed with errors"},
		},
		{
			name:  "timeouts changes and faults",
			stats: degraded,
			want:  []string{"Files timed out:", "Files changed:", "Rule faults:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pretty.NewStyles(false).FormatSummary(tt.stats)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notWant {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	problems := stats(3, 0, 0, 0, 0)
	problems.FilesErrored, problems.FilesTimedOut, problems.RulesFaulted = 1, 1, 2

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"clean", stats(5, 0, 0, 0, 0), "No issues found (5 files checked)\n"},
		{"one file clean", stats(1, 0, 0, 0, 0), "No issues found (1 file checked)\n"},
		{"mixed", stats(10, 3, 4, 8, 0), "12 issues (4 errors, 8 warnings), in 3 files\n"},
		{"single", stats(1, 1, 0, 1, 0), "1 issue (1 warning), in 1 file\n"},
		{"info", stats(2, 1, 0, 0, 2), "2 issues (2 info), in 1 file\n"},
		{"problems", problems, "No issues found (3 files checked), 1 unreadable, 1 timed out, 2 rule faults\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pretty.NewStyles(false).FormatSummaryOneLine(tt.stats)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, strings.Count(got, "\n"))
		})
	}
}
