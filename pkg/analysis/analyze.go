// Package analysis aggregates runner results into the views shared by every
// output format.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// tally is the severity breakdown shared by files, rules and totals.
type tally struct {
	issues, errors, warnings, infos int
}

func (t *tally) add(sev config.Severity) {
	t.issues++
	switch sev {
	case config.SeverityError:
		t.errors++
	case config.SeverityWarning:
		t.warnings++
	case config.SeverityInfo:
		t.infos++
	}
}

// bucket accumulates one file's or one rule's findings.
type bucket struct {
	key    string
	name   string
	counts tally
	seen   map[string]struct{} // rule IDs for a file, paths for a rule
}

func (b *bucket) record(sev config.Severity, other string) {
	b.counts.add(sev)
	b.seen[other] = struct{}{}
}

func (b *bucket) related() []string {
	return slices.Sorted(maps.Keys(b.seen))
}

// buckets are keyed by file path or rule ID.
type buckets map[string]*bucket

func (bs buckets) get(key, name string) *bucket {
	b, ok := bs[key]
	if !ok {
		b = &bucket{key: key, name: name, seen: make(map[string]struct{})}
		bs[key] = b
	}
	return b
}

// Analyze walks every finding once and builds the requested views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	var (
		overall tally
		byFile  = buckets{}
		byRule  = buckets{}
	)

	for _, file := range result.Files {
		report.Totals.Files++
		path := displayPath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesUnreadable++
			report.FileErrors = append(report.FileErrors, FileError{Path: path, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.Evaluation == nil {
			continue
		}

		if file.Result.TimedOut {
			report.Totals.FilesTimedOut++
		}
		report.Totals.RulesFaulted += len(file.Result.Diagnostics.Faulted)

		findings := file.Result.Findings
		if len(findings) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		for i := range findings {
			f := &findings[i]
			sev := f.Severity
			if sev == "" {
				sev = config.SeverityWarning
			}

			overall.add(sev)
			byFile.get(path, "").record(sev, f.RuleID)
			byRule.get(f.RuleID, f.RuleName).record(sev, path)

			if opts.IncludeFindings {
				report.Findings = append(report.Findings, newFindingEntry(path, sev, f, opts.RuleFormat))
			}
		}
	}

	report.Totals.Issues = overall.issues
	report.Totals.Errors = overall.errors
	report.Totals.Warnings = overall.warnings
	report.Totals.Infos = overall.infos

	if opts.IncludeByFile {
		for _, b := range ordered(byFile, opts) {
			report.ByFile = append(report.ByFile, FileAnalysis{
				Path:     b.key,
				Issues:   b.counts.issues,
				Errors:   b.counts.errors,
				Warnings: b.counts.warnings,
				Infos:    b.counts.infos,
				Rules:    b.related(),
			})
		}
	}
	if opts.IncludeByRule {
		report.ByRule = make([]RuleAnalysis, 0, len(byRule))
		for _, b := range ordered(byRule, opts) {
			report.ByRule = append(report.ByRule, RuleAnalysis{
				RuleID:   b.key,
				RuleName: b.name,
				Issues:   b.counts.issues,
				Errors:   b.counts.errors,
				Warnings: b.counts.warnings,
				Infos:    b.counts.infos,
				Files:    b.related(),
			})
		}
	}

	return report
}

// ordered sorts buckets per opts. Alphabetical order is always A-Z and
// severity order always puts errors first; only count order honors SortDesc.
// Ties fall back to the key so output is stable.
func ordered(bs buckets, opts Options) []*bucket {
	list := slices.Collect(maps.Values(bs))

	slices.SortFunc(list, func(a, b *bucket) int {
		var c int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			c = cmp.Or(
				cmp.Compare(b.counts.errors, a.counts.errors),
				cmp.Compare(b.counts.warnings, a.counts.warnings),
				cmp.Compare(b.counts.issues, a.counts.issues),
			)
		default:
			c = cmp.Compare(a.counts.issues, b.counts.issues)
			if opts.SortDesc {
				c = -c
			}
		}
		return cmp.Or(c, cmp.Compare(a.key, b.key))
	})

	return list
}

func newFindingEntry(path string, sev config.Severity, f *lint.Finding, format config.RuleFormat) FindingEntry {
	return FindingEntry{
		FilePath:    path,
		RuleID:      f.RuleID,
		RuleName:    f.RuleName,
		Rule:        config.FormatRuleID(format, f.RuleID, f.RuleName),
		Severity:    string(sev),
		Message:     f.Message,
		StartLine:   f.Span.Start.Line,
		StartColumn: f.Span.Start.Column,
		EndLine:     f.Span.End.Line,
		EndColumn:   f.Span.End.Column,
		Suggestion:  f.Suggestion,
		Internal:    f.Internal,
	}
}

// displayPath is absPath relative to workDir when that can be computed.
func displayPath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	if rel, err := filepath.Rel(workDir, absPath); err == nil {
		return rel
	}
	return absPath
}
