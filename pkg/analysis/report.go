package analysis

import "time"

// Report is everything a renderer needs, computed once by Analyze. The JSON
// field names are the machine-readable output format.
type Report struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Totals    Totals    `json:"summary"`

	// Findings are in file order, then position order within a file.
	Findings   []FindingEntry `json:"findings,omitempty"`
	FileErrors []FileError    `json:"fileErrors,omitempty"`
	ByFile     []FileAnalysis `json:"byFile,omitempty"`
	ByRule     []RuleAnalysis `json:"byRule,omitempty"`
}

// FindingEntry is one finding with its path made displayable.
type FindingEntry struct {
	FilePath string `json:"filePath"`
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`

	// Rule is the identifier as Options.RuleFormat renders it.
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`

	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`

	Suggestion string `json:"suggestion,omitempty"`

	// Internal marks findings the engine raised about a rule itself.
	Internal bool `json:"internal,omitempty"`
}

// FileError is a file that produced no evaluation at all.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Totals are run-wide counts.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesUnreadable int `json:"filesUnreadable"`
	FilesTimedOut   int `json:"filesTimedOut"`
	RulesFaulted    int `json:"rulesFaulted"`

	Issues   int `json:"totalIssues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (t Totals) HasIssues() bool { return t.Issues > 0 }

func (t Totals) HasErrors() bool { return t.Errors > 0 }

// FileAnalysis is the per-file view. Rules holds the IDs that fired.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis is the per-rule view. Files holds the paths it fired in.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Files    []string `json:"files,omitempty"`
}
