package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/internal/cli"
	"github.com/yaklabco/adoclint/pkg/analysis"
)

// testDocWithTrailingSpaces has trailing spaces on line 1, which triggers
// WS001/trailing-whitespace and nothing else.
const testDocWithTrailingSpaces = "= Title   \n\nSome text.\n"

// testDocClean has no findings under the default rules.
const testDocClean = "= Title\n\nSome text.\n"

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// minimalConfig writes a config file that keeps user and project config
// out of the run.
func minimalConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), ".adoclint.yml", "timeout: 10s\n")
}

// execute runs the root command with args and returns stdout, stderr and the
// command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocWithTrailingSpaces)

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "format name shows rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"trailing-whitespace"},
			wantNotContain: []string{"WS001/"},
		},
		{
			name:           "format id shows rule ID only",
			ruleFormat:     "id",
			wantContains:   []string{"WS001"},
			wantNotContain: []string{"trailing-whitespace"},
		},
		{
			name:         "format combined shows both ID and name",
			ruleFormat:   "combined",
			wantContains: []string{"WS001/trailing-whitespace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t,
				"lint",
				"--config", minimalConfig(t),
				"--rule-format", tt.ruleFormat,
				"--no-context",
				"--color", "never",
				docFile,
			)
			require.NoError(t, err, "warnings alone do not fail the run")

			for _, want := range tt.wantContains {
				assert.Contains(t, stdout, want, "rule-format=%s", tt.ruleFormat)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, stdout, notWant, "rule-format=%s", tt.ruleFormat)
			}
		})
	}
}

func TestIntegration_DefaultRuleFormat(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocWithTrailingSpaces)

	stdout, _, err := execute(t, "lint", "--config", minimalConfig(t), "--no-context", "--color", "never", docFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "trailing-whitespace")
	assert.NotContains(t, stdout, "WS001")
}

func TestIntegration_ConfigDisablesRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "by name", key: "trailing-whitespace"},
		{name: "by ID", key: "WS001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			docFile := writeFile(t, dir, "test.adoc", testDocWithTrailingSpaces)
			configFile := writeFile(t, dir, ".adoclint.yml",
				"rules:\n  "+tt.key+":\n    enabled: false\n")

			stdout, _, err := execute(t, "lint", "--config", configFile, "--no-context", "--color", "never", docFile)
			require.NoError(t, err)

			assert.NotContains(t, stdout, "trailing-whitespace")
			assert.Contains(t, stdout, "No issues found")
		})
	}
}

func TestIntegration_ConfigSeverityOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docFile := writeFile(t, dir, "test.adoc", testDocWithTrailingSpaces)
	configFile := writeFile(t, dir, ".adoclint.yml",
		"rules:\n  trailing-whitespace:\n    severity: error\n")

	_, _, err := execute(t, "lint", "--config", configFile, "--no-context", "--color", "never", docFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCodeFromError(err))
}

func TestIntegration_EnableDisableFlags(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocWithTrailingSpaces)

	for _, ref := range []string{"WS001", "trailing-whitespace"} {
		t.Run(ref, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t,
				"lint", "--config", minimalConfig(t), "--disable", ref,
				"--no-context", "--color", "never", docFile,
			)
			require.NoError(t, err)
			assert.NotContains(t, stdout, "trailing-whitespace")
		})
	}
}

func TestIntegration_StrictExitCode(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocWithTrailingSpaces)

	_, _, err := execute(t, "lint", "--config", minimalConfig(t), "--strict", "--color", "never", docFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintWarnings, cli.ExitCodeFromError(err))
}

func TestIntegration_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.adoc")

	_, _, err := execute(t, "lint", "--config", minimalConfig(t), "--color", "never", missing)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrLintIssuesFound)
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docFile := writeFile(t, dir, "test.adoc", testDocClean)
	configFile := writeFile(t, dir, ".adoclint.yml", "rules: [not, a, map\n")

	_, _, err := execute(t, "lint", "--config", configFile, docFile)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocWithTrailingSpaces)

	stdout, _, err := execute(t, "lint", "--config", minimalConfig(t), "--format", "json", "--color", "never", docFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, `"ruleId"`)
	assert.Contains(t, stdout, `"ruleName"`)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Findings, 1)

	finding := report.Findings[0]
	assert.Equal(t, "WS001", finding.RuleID)
	assert.Equal(t, "trailing-whitespace", finding.RuleName)
	assert.Equal(t, "warning", finding.Severity)
	assert.Equal(t, 1, finding.StartLine)
	assert.Equal(t, 1, report.Totals.Files)
	assert.Equal(t, analysis.ReportVersion, report.Version)
}

func TestIntegration_PackFlag(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocWithTrailingSpaces)

	stdout, _, err := execute(t,
		"lint", "--config", minimalConfig(t), "--pack", "strict",
		"--format", "json", "--color", "never", docFile,
	)
	require.Error(t, err, "the strict pack raises trailing whitespace to an error")
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCodeFromError(err))

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.NotEmpty(t, report.Findings)
	assert.Equal(t, "error", report.Findings[0].Severity)
}

func TestIntegration_UnknownPack(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocClean)

	_, _, err := execute(t, "lint", "--config", minimalConfig(t), "--pack", "nope", docFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docFile := writeFile(t, dir, "test.adoc", testDocWithTrailingSpaces)

	tests := []struct {
		order string
		first string
		last  string
	}{
		{order: "rules", first: "Rules Summary", last: "Files Summary"},
		{order: "files", first: "Files Summary", last: "Rules Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t,
				"lint", "--config", minimalConfig(t), "--format", "summary",
				"--summary-order", tt.order, "--color", "never", docFile,
			)
			require.NoError(t, err)

			first := strings.Index(stdout, tt.first)
			last := strings.Index(stdout, tt.last)
			require.GreaterOrEqual(t, first, 0, "missing %q", tt.first)
			require.GreaterOrEqual(t, last, 0, "missing %q", tt.last)
			assert.Less(t, first, last)
			assert.Contains(t, stdout, "trailing-whitespace")
		})
	}
}

func TestIntegration_SummaryFormatNoIssues(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "clean.adoc", testDocClean)

	stdout, _, err := execute(t, "lint", "--config", minimalConfig(t), "--format", "summary", "--color", "never", docFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found")
}

func TestIntegration_InvalidSummaryOrder(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocClean)

	_, _, err := execute(t, "lint", "--config", minimalConfig(t), "--format", "summary", "--summary-order", "sideways", docFile)
	require.Error(t, err)
}

func TestIntegration_TableFormat(t *testing.T) {
	t.Parallel()

	docFile := writeFile(t, t.TempDir(), "test.adoc", testDocWithTrailingSpaces)

	stdout, _, err := execute(t, "lint", "--config", minimalConfig(t), "--format", "table", "--color", "never", docFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "test.adoc")
	assert.Contains(t, stdout, "1:")
	assert.Contains(t, stdout, "WS001")
}

func TestIntegration_HTMLOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docFile := writeFile(t, dir, "test.adoc", testDocWithTrailingSpaces)
	reportFile := filepath.Join(dir, "report.html")

	stdout, _, err := execute(t,
		"lint", "--config", minimalConfig(t), "--format", "html",
		"--output", reportFile, docFile,
	)
	require.NoError(t, err)
	assert.Empty(t, stdout, "the report goes to the file")

	content, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<!DOCTYPE html>")
	assert.Contains(t, string(content), "trailing-whitespace")
}

func TestIntegration_RulesCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		Enabled bool     `json:"enabled"`
		Tags    []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.NotEmpty(t, rules)

	byID := make(map[string]string, len(rules))
	for _, r := range rules {
		byID[r.ID] = r.Name
		assert.NotNil(t, r.Tags, "%s tags", r.ID)
	}
	assert.Equal(t, "trailing-whitespace", byID["WS001"])
	assert.Equal(t, "heading-increment", byID["HEAD001"])
}

func TestIntegration_RulesCommandTagFilter(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--format", "json", "--tag", "tables")
	require.NoError(t, err)

	var rules []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.True(t, strings.HasPrefix(r.ID, "TABLE"), "unexpected rule %s", r.ID)
	}
}

func TestIntegration_InitCommand(t *testing.T) {
	t.Parallel()

	t.Run("minimal template", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".adoclint.yml")
		_, _, err := execute(t, "init", "--output", path)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "# adoclint configuration")

		_, _, err = execute(t, "init", "--output", path)
		require.Error(t, err, "refuses to overwrite without --force")

		_, _, err = execute(t, "init", "--output", path, "--force")
		require.NoError(t, err)
	})

	t.Run("pack seeded config lints", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, ".adoclint.yml")
		_, _, err := execute(t, "init", "--output", path, "--pack", "relaxed")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "# Pack: relaxed")
		assert.Contains(t, string(content), "WS001")

		docFile := writeFile(t, dir, "test.adoc", testDocWithTrailingSpaces)
		stdout, _, err := execute(t, "lint", "--config", path, "--format", "json", docFile)
		require.NoError(t, err)

		var report analysis.Report
		require.NoError(t, json.Unmarshal([]byte(stdout), &report))
		require.Len(t, report.Findings, 1)
		assert.Equal(t, "info", report.Findings[0].Severity)
	})

	t.Run("unknown pack", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".adoclint.yml")
		_, _, err := execute(t, "init", "--output", path, "--pack", "nope")
		require.Error(t, err)
		assert.NoFileExists(t, path)
	})
}
