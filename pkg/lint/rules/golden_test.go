package rules

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// update rewrites the expectation files instead of comparing.
// Usage: go test ./pkg/lint/rules/... -run TestGoldenPerRule -update.
var update = flag.Bool("update", false, "update golden files")

func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get test file path")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// TestGoldenPerRule runs each testdata/<RULE_ID>/*.input.adoc with only that
// rule enabled and compares the findings with <case>.diags.json.
func TestGoldenPerRule(t *testing.T) {
	cases := discoverGoldenCases(t, testdataDir(t))
	if len(cases) == 0 {
		t.Skip("No golden test cases found. Create testdata/<RULE_ID>/*.input.adoc files to add tests.")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			rule, ok := lint.DefaultRegistry.GetByID(tc.RuleID)
			require.True(t, ok, "no rule %s for testdata directory", tc.RuleID)

			findings := lintWith(t, rule, tc.InputPath, string(input), config.NewConfig())
			compareFindings(t, findings, tc, *update)
		})
	}
}

func TestGoldenCorpus_DirectoriesNameRules(t *testing.T) {
	t.Parallel()

	covered := make(map[string]bool)
	for _, tc := range discoverGoldenCases(t, testdataDir(t)) {
		covered[tc.RuleID] = true
	}
	for id := range covered {
		_, ok := lint.DefaultRegistry.GetByID(id)
		require.True(t, ok, "testdata/%s names no registered rule", id)
	}
}
