package rules

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/lint"
)

// goldenCase is one input document under testdata/<RULE_ID>/.
type goldenCase struct {
	// Name is the rule directory joined with the case name.
	Name string

	// RuleID is the only rule run against the input.
	RuleID string

	InputPath     string
	DiagsJSONPath string
}

// findingExpectation is the JSON form of an expected finding.
type findingExpectation struct {
	Rule     string `json:"rule"`
	Name     string `json:"name"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func expectationFromFinding(f lint.Finding) findingExpectation {
	return findingExpectation{
		Rule:     f.RuleID,
		Name:     f.RuleName,
		Line:     f.Line(),
		Column:   f.Column(),
		Message:  f.Message,
		Severity: string(f.Severity),
	}
}

// discoverGoldenCases finds every *.input.adoc in a rule-named directory.
func discoverGoldenCases(t *testing.T, baseDir string) []goldenCase {
	t.Helper()

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read testdata directory: %v", err)
	}

	var cases []goldenCase
	for _, entry := range entries {
		if !entry.IsDir() || !isRuleID(entry.Name()) {
			continue
		}

		dirPath := filepath.Join(baseDir, entry.Name())
		inputs, err := filepath.Glob(filepath.Join(dirPath, "*.input.adoc"))
		require.NoError(t, err)

		for _, inputPath := range inputs {
			base := strings.TrimSuffix(filepath.Base(inputPath), ".input.adoc")
			cases = append(cases, goldenCase{
				Name:          entry.Name() + "/" + base,
				RuleID:        entry.Name(),
				InputPath:     inputPath,
				DiagsJSONPath: filepath.Join(dirPath, base+".diags.json"),
			})
		}
	}
	return cases
}

// isRuleID matches upper-case letters followed by digits, e.g. HEAD001.
func isRuleID(name string) bool {
	letters := strings.TrimRight(name, "0123456789")
	if letters == "" || letters == name {
		return false
	}
	return strings.Trim(letters, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") == ""
}

func loadExpectations(t *testing.T, path string) ([]findingExpectation, bool) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		t.Fatalf("failed to read expectations %s: %v", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []findingExpectation{}, true
	}

	var want []findingExpectation
	require.NoError(t, json.Unmarshal(data, &want), "parse %s", path)
	return want, true
}

func writeExpectations(t *testing.T, path string, findings []lint.Finding) {
	t.Helper()

	got := make([]findingExpectation, len(findings))
	for i, f := range findings {
		got[i] = expectationFromFinding(f)
	}

	data, err := json.MarshalIndent(got, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, '\n'), 0o644))
	t.Logf("Updated golden file: %s", path)
}

// compareFindings checks findings against the case's JSON file, or rewrites
// the file when update is set.
func compareFindings(t *testing.T, findings []lint.Finding, tc goldenCase, update bool) {
	t.Helper()

	if update {
		writeExpectations(t, tc.DiagsJSONPath, findings)
		return
	}

	want, ok := loadExpectations(t, tc.DiagsJSONPath)
	if !ok {
		t.Errorf("Expectations file does not exist: %s\nRun with -update flag to create it.", tc.DiagsJSONPath)
		return
	}

	input := filepath.Base(tc.InputPath)
	if len(findings) != len(want) {
		t.Errorf("Finding count mismatch: got %d, want %d", len(findings), len(want))
		for _, f := range findings {
			t.Logf("  %s:%d:%d %s %s (%s)", input, f.Line(), f.Column(), f.Severity, f.Message, f.RuleName)
		}
		return
	}

	for idx, f := range findings {
		assert.Equal(t, want[idx], expectationFromFinding(f), "finding %d of %s", idx, input)
	}
}
