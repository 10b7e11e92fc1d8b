package runner

import (
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of
// Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Findings is nil for a failed file.
func (o FileOutcome) Findings() []lint.Finding {
	if o.Result != nil && o.Result.Evaluation != nil {
		return o.Result.Findings
	}
	return nil
}

// Stats are counters over a whole run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesErrored counts files that could not be read.
	FilesErrored    int
	FilesTimedOut   int
	FilesChanged    int
	FilesWithIssues int

	FindingsTotal      int
	FindingsBySeverity map[config.Severity]int
	FindingsByRule     map[string]int // keyed by rule ID

	RulesFaulted int
}

func newStats() Stats {
	return Stats{FindingsBySeverity: map[config.Severity]int{}, FindingsByRule: map[string]int{}}
}

// Result holds every outcome, sorted by path, and the run's Stats.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures is true for any error finding or unreadable file.
func (r *Result) HasFailures() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || r.Stats.FindingsBySeverity[config.SeverityError] > 0)
}

func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.FindingsTotal > 0
}

// AtLeast reports whether some finding is at threshold or worse.
func (r *Result) AtLeast(threshold config.Severity) bool {
	if r == nil {
		return false
	}
	for sev, n := range r.Stats.FindingsBySeverity {
		if n > 0 && sev.Rank() >= threshold.Rank() {
			return true
		}
	}
	return false
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	stats := &r.Stats

	res := outcome.Result
	switch {
	case outcome.Error != nil:
		stats.FilesErrored++
		return
	case res == nil:
		return
	}

	stats.FilesProcessed++
	if res.TimedOut {
		stats.FilesTimedOut++
	}
	if res.Changed {
		stats.FilesChanged++
	}
	if res.Evaluation == nil {
		return
	}

	stats.RulesFaulted += len(res.Diagnostics.Faulted)
	if len(res.Findings) > 0 {
		stats.FilesWithIssues++
	}
	for _, f := range res.Findings {
		sev := f.Severity
		if sev == "" {
			sev = config.SeverityWarning
		}
		stats.FindingsTotal++
		stats.FindingsBySeverity[sev]++
		stats.FindingsByRule[f.RuleID]++
	}
}
